package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"ambientefest/internal/model"
	"ambientefest/internal/repository"
	repoMocks "ambientefest/internal/repository/mocks"
	"ambientefest/internal/storage"
)

func ptr[T any](v T) *T { return &v }

func catalogFixture() []model.Service {
	return []model.Service{
		{ID: 1, Name: "DJ", Price: 150000, Rating: 4.5, CategoryID: 1},
		{ID: 2, Name: "Catering", Price: 300000, Rating: 4.9, CategoryID: 2},
		{ID: 3, Name: "Luces", Price: 80000, Rating: 3.8, CategoryID: 1},
		{ID: 4, Name: "Fotografía", Price: 200000, Rating: 4.2, CategoryID: 3},
		{ID: 5, Name: "Decoración", Price: 120000, Rating: 4.7, CategoryID: 3},
	}
}

func ids(svcs []model.Service) []int64 {
	out := make([]int64, 0, len(svcs))
	for _, s := range svcs {
		out = append(out, s.ID)
	}
	return out
}

func TestCatalogService_ListServices(t *testing.T) {
	ctx := context.Background()
	cats := []model.ServiceCategory{{ID: 1, Name: "Música"}, {ID: 2, Name: "Comida"}, {ID: 3, Name: "Ambientación"}}

	tests := []struct {
		name    string
		filter  ServiceFilter
		wantIDs []int64
	}{
		{name: "no filter keeps order", filter: ServiceFilter{}, wantIDs: []int64{1, 2, 3, 4, 5}},
		{name: "Todos means all", filter: ServiceFilter{Category: "Todos"}, wantIDs: []int64{1, 2, 3, 4, 5}},
		{name: "category by id", filter: ServiceFilter{Category: "3"}, wantIDs: []int64{4, 5}},
		{name: "category by name", filter: ServiceFilter{Category: "música"}, wantIDs: []int64{1, 3}},
		{name: "unknown category matches nothing", filter: ServiceFilter{Category: "Nada"}, wantIDs: []int64{}},
		{name: "inclusive price bounds", filter: ServiceFilter{MinPrice: ptr(120000.0), MaxPrice: ptr(200000.0)}, wantIDs: []int64{1, 4, 5}},
		{name: "min rating", filter: ServiceFilter{MinRating: ptr(4.5)}, wantIDs: []int64{1, 2, 5}},
		{name: "rating desc", filter: ServiceFilter{Order: OrderRatingDesc}, wantIDs: []int64{2, 5, 1, 4, 3}},
		{name: "price asc with limit", filter: ServiceFilter{Order: OrderPriceAsc, Limit: 2}, wantIDs: []int64{3, 5}},
		{name: "price desc within category", filter: ServiceFilter{Category: "1", Order: OrderPriceDesc}, wantIDs: []int64{1, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mServices := new(repoMocks.MockServiceRepository)
			mCats := new(repoMocks.MockCategoryRepository)
			mServices.On("List", ctx, time.Minute).Return(catalogFixture(), nil)
			mCats.On("ServiceCategories", ctx).Return(cats, nil).Maybe()

			svc := NewCatalogService(mServices, mCats, nil, time.Minute)
			got, err := svc.ListServices(ctx, tt.filter)

			require.NoError(t, err)
			assert.Equal(t, tt.wantIDs, ids(got))
			mServices.AssertExpectations(t)
		})
	}
}

func TestCatalogService_Featured(t *testing.T) {
	ctx := context.Background()
	mServices := new(repoMocks.MockServiceRepository)
	mServices.On("List", ctx, time.Minute).Return(catalogFixture(), nil)

	svc := NewCatalogService(mServices, new(repoMocks.MockCategoryRepository), nil, time.Minute)

	got, err := svc.Featured(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3, 4}, ids(got))

	got, err = svc.Featured(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2}, ids(got))
}

func TestCatalogService_GetService(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		id         int64
		setupMocks func(m *repoMocks.MockServiceRepository)
		wantErr    error
	}{
		{
			name: "found",
			id:   1,
			setupMocks: func(m *repoMocks.MockServiceRepository) {
				m.On("Get", ctx, int64(1)).Return(&model.Service{ID: 1}, nil)
			},
		},
		{
			name:       "zero id",
			id:         0,
			setupMocks: func(m *repoMocks.MockServiceRepository) {},
			wantErr:    ErrIDRequired,
		},
		{
			name: "missing",
			id:   9,
			setupMocks: func(m *repoMocks.MockServiceRepository) {
				m.On("Get", ctx, int64(9)).Return(nil, repository.ErrNotFound)
			},
			wantErr: ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mServices := new(repoMocks.MockServiceRepository)
			tt.setupMocks(mServices)
			svc := NewCatalogService(mServices, new(repoMocks.MockCategoryRepository), nil, time.Minute)

			got, err := svc.GetService(ctx, tt.id)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.id, got.ID)
			}
			mServices.AssertExpectations(t)
		})
	}
}

func TestCatalogService_CreateService(t *testing.T) {
	ctx := context.Background()
	files := []storage.Upload{{Name: "a.png", ContentType: "image/png", Size: 3}}
	uploaded := []model.UploadedImage{{Path: "/vault/a.png", URL: "https://x/vault/a.png"}}

	tests := []struct {
		name       string
		in         model.ServiceInput
		files      []storage.Upload
		setupMocks func(mServices *repoMocks.MockServiceRepository, mImages *mockImageService)
		wantErr    error
	}{
		{
			name:  "uploads images before creating",
			in:    model.ServiceInput{Name: ptr("DJ"), Price: ptr(1000.0)},
			files: files,
			setupMocks: func(mServices *repoMocks.MockServiceRepository, mImages *mockImageService) {
				mImages.On("Upload", ctx, files).Return(uploaded, nil)
				mServices.On("Create", ctx, mock.MatchedBy(func(in model.ServiceInput) bool {
					return len(in.Images) == 1 && in.Images[0].Path == "/vault/a.png"
				})).Return(&model.Service{ID: 8}, nil)
			},
		},
		{
			name: "without images",
			in:   model.ServiceInput{Name: ptr("DJ")},
			setupMocks: func(mServices *repoMocks.MockServiceRepository, mImages *mockImageService) {
				mServices.On("Create", ctx, mock.Anything).Return(&model.Service{ID: 8}, nil)
			},
		},
		{
			name:       "name required",
			in:         model.ServiceInput{Name: ptr("  ")},
			setupMocks: func(*repoMocks.MockServiceRepository, *mockImageService) {},
			wantErr:    ErrInvalidInput,
		},
		{
			name:  "upload failure aborts",
			in:    model.ServiceInput{Name: ptr("DJ")},
			files: files,
			setupMocks: func(mServices *repoMocks.MockServiceRepository, mImages *mockImageService) {
				mImages.On("Upload", ctx, files).Return(nil, ErrImageTooLarge)
			},
			wantErr: ErrImageTooLarge,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mServices := new(repoMocks.MockServiceRepository)
			mImages := new(mockImageService)
			tt.setupMocks(mServices, mImages)
			svc := NewCatalogService(mServices, new(repoMocks.MockCategoryRepository), mImages, time.Minute)

			got, err := svc.CreateService(ctx, tt.in, tt.files)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, int64(8), got.ID)
			}
			mServices.AssertExpectations(t)
			mImages.AssertExpectations(t)
		})
	}
}

func TestCatalogService_DeleteService(t *testing.T) {
	ctx := context.Background()
	mServices := new(repoMocks.MockServiceRepository)
	mServices.On("Delete", ctx, int64(3)).Return(errors.New("boom"))

	svc := NewCatalogService(mServices, new(repoMocks.MockCategoryRepository), nil, time.Minute)

	assert.EqualError(t, svc.DeleteService(ctx, 3), "boom")
	assert.ErrorIs(t, svc.DeleteService(ctx, 0), ErrIDRequired)
}
