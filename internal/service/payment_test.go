package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ambientefest/internal/model"
	"ambientefest/internal/repository"
	repoMocks "ambientefest/internal/repository/mocks"
)

func TestPaymentService_List(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		setupMocks func(mPay *repoMocks.MockPaymentRepository, mUsers *repoMocks.MockUserRepository, mCarts *repoMocks.MockCartRepository)
		want       []model.PaymentView
		wantErr    bool
	}{
		{
			name: "resolves embedded user, user id and cart owner",
			setupMocks: func(mPay *repoMocks.MockPaymentRepository, mUsers *repoMocks.MockUserRepository, mCarts *repoMocks.MockCartRepository) {
				mPay.On("List", ctx).Return([]model.Payment{
					{ID: 1, EmbeddedUser: &model.User{Name: "Eva", Email: "eva@gmail.com"}},
					{ID: 2, UserID: 4},
					{ID: 3, CartID: 10},
					{ID: 4, CartID: 11},
				}, nil)
				mUsers.On("List", ctx).Return([]model.User{
					{ID: 4, Name: "Ana", LastName: "Díaz", Email: "ana@gmail.com"},
					{ID: 6, Name: "Luis", Email: "luis@duoc.cl"},
				}, nil)
				mCarts.On("Get", ctx, int64(10)).Return(&model.Cart{ID: 10, UserID: 6}, nil)
				mCarts.On("Get", ctx, int64(11)).Return(nil, nil)
			},
			want: []model.PaymentView{
				{Payment: model.Payment{ID: 1, EmbeddedUser: &model.User{Name: "Eva", Email: "eva@gmail.com"}}, UserName: "Eva", UserEmail: "eva@gmail.com"},
				{Payment: model.Payment{ID: 2, UserID: 4}, UserName: "Ana Díaz", UserEmail: "ana@gmail.com"},
				{Payment: model.Payment{ID: 3, CartID: 10, UserID: 6}, UserName: "Luis", UserEmail: "luis@duoc.cl"},
				{Payment: model.Payment{ID: 4, CartID: 11}},
			},
		},
		{
			name: "enrichment failures leave payments bare",
			setupMocks: func(mPay *repoMocks.MockPaymentRepository, mUsers *repoMocks.MockUserRepository, mCarts *repoMocks.MockCartRepository) {
				mPay.On("List", ctx).Return([]model.Payment{{ID: 2, UserID: 4}, {ID: 3, CartID: 10}}, nil)
				mUsers.On("List", ctx).Return(nil, errors.New("down"))
				mCarts.On("Get", ctx, int64(10)).Return(nil, errors.New("down"))
			},
			want: []model.PaymentView{
				{Payment: model.Payment{ID: 2, UserID: 4}},
				{Payment: model.Payment{ID: 3, CartID: 10}},
			},
		},
		{
			name: "payment list failure",
			setupMocks: func(mPay *repoMocks.MockPaymentRepository, mUsers *repoMocks.MockUserRepository, mCarts *repoMocks.MockCartRepository) {
				mPay.On("List", ctx).Return(nil, errors.New("down"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mPay := new(repoMocks.MockPaymentRepository)
			mUsers := new(repoMocks.MockUserRepository)
			mCarts := new(repoMocks.MockCartRepository)
			tt.setupMocks(mPay, mUsers, mCarts)
			svc := NewPaymentService(mPay, mUsers, mCarts, nil)

			got, err := svc.List(ctx)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
			mPay.AssertExpectations(t)
			mUsers.AssertExpectations(t)
			mCarts.AssertExpectations(t)
		})
	}
}

func TestPaymentService_UpdateStatus(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		status     string
		setupMocks func(m *repoMocks.MockPaymentRepository)
		wantErr    error
	}{
		{
			name:   "spanish name",
			status: "Aprobado",
			setupMocks: func(m *repoMocks.MockPaymentRepository) {
				m.On("UpdateStatus", ctx, int64(5), "aprobado", "approved").Return(&model.Payment{ID: 5, Estado: "aprobado"}, nil)
			},
		},
		{
			name:   "english name",
			status: "rejected",
			setupMocks: func(m *repoMocks.MockPaymentRepository) {
				m.On("UpdateStatus", ctx, int64(5), "rechazado", "rejected").Return(&model.Payment{ID: 5}, nil)
			},
		},
		{
			name:       "unknown status",
			status:     "refunded",
			setupMocks: func(*repoMocks.MockPaymentRepository) {},
			wantErr:    ErrInvalidPaymentStatus,
		},
		{
			name:   "missing payment",
			status: "pending",
			setupMocks: func(m *repoMocks.MockPaymentRepository) {
				m.On("UpdateStatus", ctx, int64(5), "pendiente", "pending").Return(nil, repository.ErrNotFound)
			},
			wantErr: ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mPay := new(repoMocks.MockPaymentRepository)
			tt.setupMocks(mPay)
			svc := NewPaymentService(mPay, nil, nil, nil)

			got, err := svc.UpdateStatus(ctx, 5, tt.status)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, int64(5), got.ID)
			}
			mPay.AssertExpectations(t)
		})
	}
}

func TestPaymentService_ListMine(t *testing.T) {
	ctx := context.Background()
	mPay := new(repoMocks.MockPaymentRepository)
	mPay.On("ListByUser", ctx, int64(4)).Return([]model.Payment{{ID: 1, UserID: 4}}, nil)

	got, err := NewPaymentService(mPay, nil, nil, nil).ListMine(ctx, 4)

	require.NoError(t, err)
	assert.Len(t, got, 1)
}
