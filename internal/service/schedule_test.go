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
	repoMocks "ambientefest/internal/repository/mocks"
	"ambientefest/internal/session"
)

// 23:30 in Santiago is already the next day in UTC.
var scheduleNow = time.Date(2026, 5, 10, 23, 30, 0, 0, time.FixedZone("CLT", -4*3600))

func slotIDs(slots []model.TimeSlot) []int64 {
	out := make([]int64, 0, len(slots))
	for _, s := range slots {
		out = append(out, s.ID)
	}
	return out
}

func TestFilterAvailable(t *testing.T) {
	today := "2026-05-11"

	tests := []struct {
		name     string
		slots    []model.TimeSlot
		reserved map[int64]struct{}
		want     []int64
	}{
		{
			name: "past dates dropped, today kept",
			slots: []model.TimeSlot{
				{ID: 1, ServiceID: 7, Date: "2026-05-10", StartTime: "10:00"},
				{ID: 2, ServiceID: 7, Date: "2026-05-11", StartTime: "10:00"},
				{ID: 3, ServiceID: 7, Date: "2026-05-11T00:00:00.000Z", StartTime: "12:00"},
			},
			want: []int64{2, 3},
		},
		{
			name: "reserved slots dropped",
			slots: []model.TimeSlot{
				{ID: 1, ServiceID: 7, Date: "2026-06-01", StartTime: "10:00"},
				{ID: 2, ServiceID: 7, Date: "2026-06-01", StartTime: "11:00"},
			},
			reserved: map[int64]struct{}{1: {}},
			want:     []int64{2},
		},
		{
			name: "placeholder start times dropped",
			slots: []model.TimeSlot{
				{ID: 1, ServiceID: 7, Date: "2026-06-01", StartTime: ""},
				{ID: 2, ServiceID: 7, Date: "2026-06-01", StartTime: "00:00"},
				{ID: 3, ServiceID: 7, Date: "2026-06-01", StartTime: "00:00:00"},
				{ID: 4, ServiceID: 7, Date: "2026-06-01", StartTime: "09:00"},
			},
			want: []int64{4},
		},
		{
			name: "other services and missing dates dropped",
			slots: []model.TimeSlot{
				{ID: 1, ServiceID: 8, Date: "2026-06-01", StartTime: "10:00"},
				{ID: 2, ServiceID: 7, Date: "", StartTime: "10:00"},
				{ID: 3, ServiceID: 7, Date: "2026-06-01", StartTime: "10:00"},
			},
			want: []int64{3},
		},
		{
			name: "sorted by date then start time",
			slots: []model.TimeSlot{
				{ID: 1, ServiceID: 7, Date: "2026-06-02", StartTime: "09:00"},
				{ID: 2, ServiceID: 7, Date: "2026-06-01", StartTime: "15:00"},
				{ID: 3, ServiceID: 7, Date: "2026-06-01T00:00:00Z", StartTime: "10:00"},
			},
			want: []int64{3, 2, 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reserved := tt.reserved
			if reserved == nil {
				reserved = map[int64]struct{}{}
			}
			got := filterAvailable(tt.slots, 7, reserved, today)
			assert.Equal(t, tt.want, slotIDs(got))
		})
	}
}

func TestScheduleService_AvailableSlots(t *testing.T) {
	ctx := context.Background()
	slots := []model.TimeSlot{
		{ID: 1, ServiceID: 7, Date: "2026-05-10", StartTime: "10:00"},
		{ID: 2, ServiceID: 7, Date: "2026-05-11", StartTime: "10:00"},
		{ID: 3, ServiceID: 7, Date: "2026-05-12", StartTime: "10:00"},
	}

	tests := []struct {
		name       string
		setupMocks func(mSlots *repoMocks.MockTimeSlotRepository, mRes *repoMocks.MockReservationRepository)
		want       []int64
		wantErr    bool
	}{
		{
			name: "uses the UTC date and skips reserved slots",
			setupMocks: func(mSlots *repoMocks.MockTimeSlotRepository, mRes *repoMocks.MockReservationRepository) {
				mSlots.On("List", ctx, int64(7)).Return(slots, nil)
				mRes.On("ListByService", ctx, int64(7)).Return([]model.Reservation{{TimeSlotID: 3}}, nil)
			},
			want: []int64{2},
		},
		{
			name: "reservation failure counts nothing as reserved",
			setupMocks: func(mSlots *repoMocks.MockTimeSlotRepository, mRes *repoMocks.MockReservationRepository) {
				mSlots.On("List", ctx, int64(7)).Return(slots, nil)
				mRes.On("ListByService", ctx, int64(7)).Return(nil, errors.New("down"))
			},
			want: []int64{2, 3},
		},
		{
			name: "slot failure is returned",
			setupMocks: func(mSlots *repoMocks.MockTimeSlotRepository, mRes *repoMocks.MockReservationRepository) {
				mSlots.On("List", ctx, int64(7)).Return(nil, errors.New("down"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mSlots := new(repoMocks.MockTimeSlotRepository)
			mRes := new(repoMocks.MockReservationRepository)
			tt.setupMocks(mSlots, mRes)
			svc := NewScheduleService(mSlots, mRes, nil, nil, nil, func() time.Time { return scheduleNow })

			got, err := svc.AvailableSlots(ctx, 7)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, slotIDs(got))
			}
			mSlots.AssertExpectations(t)
			mRes.AssertExpectations(t)
		})
	}
}

func TestScheduleService_Reserve(t *testing.T) {
	ctx := context.Background()
	sess := &session.Session{ID: "sid", UserID: 4, Role: model.RoleNameClient}
	slots := []model.TimeSlot{{ID: 2, ServiceID: 7, Date: "2026-05-20", StartTime: "10:00", EndTime: "11:00"}}

	tests := []struct {
		name       string
		slotID     int64
		setupMocks func(mSlots *repoMocks.MockTimeSlotRepository, mRes *repoMocks.MockReservationRepository)
		wantErr    error
	}{
		{
			name:   "available slot is booked as pending",
			slotID: 2,
			setupMocks: func(mSlots *repoMocks.MockTimeSlotRepository, mRes *repoMocks.MockReservationRepository) {
				mSlots.On("List", ctx, int64(7)).Return(slots, nil)
				mRes.On("ListByService", ctx, int64(7)).Return([]model.Reservation{}, nil)
				mRes.On("Create", ctx, model.Reservation{
					ServiceID: 7, UserID: 4, TimeSlotID: 2, Notes: "cumpleaños", Status: "pendiente",
				}).Return(&model.Reservation{ID: 11, TimeSlotID: 2, Status: "pendiente"}, nil)
			},
		},
		{
			name:   "taken slot",
			slotID: 2,
			setupMocks: func(mSlots *repoMocks.MockTimeSlotRepository, mRes *repoMocks.MockReservationRepository) {
				mSlots.On("List", ctx, int64(7)).Return(slots, nil)
				mRes.On("ListByService", ctx, int64(7)).Return([]model.Reservation{{TimeSlotID: 2}}, nil)
			},
			wantErr: ErrSlotUnavailable,
		},
		{
			name:   "unknown slot",
			slotID: 99,
			setupMocks: func(mSlots *repoMocks.MockTimeSlotRepository, mRes *repoMocks.MockReservationRepository) {
				mSlots.On("List", ctx, int64(7)).Return(slots, nil)
				mRes.On("ListByService", ctx, int64(7)).Return([]model.Reservation{}, nil)
			},
			wantErr: ErrSlotUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mSlots := new(repoMocks.MockTimeSlotRepository)
			mRes := new(repoMocks.MockReservationRepository)
			tt.setupMocks(mSlots, mRes)
			svc := NewScheduleService(mSlots, mRes, nil, nil, nil, func() time.Time { return scheduleNow })

			got, err := svc.Reserve(ctx, sess, 7, tt.slotID, " cumpleaños ")

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, int64(11), got.ID)
			}
			mSlots.AssertExpectations(t)
			mRes.AssertExpectations(t)
		})
	}
}

func TestScheduleService_ReserveToCart(t *testing.T) {
	ctx := context.Background()
	sess := &session.Session{ID: "sid", UserID: 4, Role: model.RoleNameClient}
	slot := model.TimeSlot{ID: 2, ServiceID: 7, Date: "2026-05-20T00:00:00Z", StartTime: "10:00", EndTime: "11:00"}
	svcRecord := &model.Service{ID: 7, Name: "DJ", Price: 150000, Provider: "Sonido Sur"}

	mSlots := new(repoMocks.MockTimeSlotRepository)
	mRes := new(repoMocks.MockReservationRepository)
	mServices := new(repoMocks.MockServiceRepository)
	mCart := new(mockCartService)

	mServices.On("Get", ctx, int64(7)).Return(svcRecord, nil)
	mSlots.On("List", ctx, int64(7)).Return([]model.TimeSlot{slot}, nil)
	mRes.On("ListByService", ctx, int64(7)).Return([]model.Reservation{}, nil)
	mRes.On("Create", ctx, mock.AnythingOfType("model.Reservation")).Return(&model.Reservation{ID: 11, TimeSlotID: 2}, nil)
	mCart.On("AddReservation", ctx, int64(4), *svcRecord, slot).Return(&model.CartDetail{ID: 31, TimeSlotID: 2}, nil)

	svc := NewScheduleService(mSlots, mRes, mServices, mCart, nil, func() time.Time { return scheduleNow })
	got, err := svc.ReserveToCart(ctx, sess, 7, 2, "")

	require.NoError(t, err)
	assert.Equal(t, int64(11), got.Reservation.ID)
	assert.Equal(t, int64(31), got.Detail.ID)
	mCart.AssertExpectations(t)
	mRes.AssertExpectations(t)
}

func TestScheduleService_CreateSlot(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		in         model.TimeSlotInput
		setupMocks func(m *repoMocks.MockTimeSlotRepository)
		wantErr    error
	}{
		{
			name: "valid range",
			in:   model.TimeSlotInput{ServiceID: 7, Date: "2026-06-01", StartTime: "10:00", EndTime: "11:30"},
			setupMocks: func(m *repoMocks.MockTimeSlotRepository) {
				m.On("Create", ctx, mock.Anything).Return(&model.TimeSlot{ID: 5}, nil)
			},
		},
		{
			name:       "start equals end",
			in:         model.TimeSlotInput{ServiceID: 7, Date: "2026-06-01", StartTime: "10:00", EndTime: "10:00"},
			setupMocks: func(*repoMocks.MockTimeSlotRepository) {},
			wantErr:    ErrInvalidTimeRange,
		},
		{
			name:       "start after end",
			in:         model.TimeSlotInput{ServiceID: 7, Date: "2026-06-01", StartTime: "18:00", EndTime: "09:00"},
			setupMocks: func(*repoMocks.MockTimeSlotRepository) {},
			wantErr:    ErrInvalidTimeRange,
		},
		{
			name:       "missing date",
			in:         model.TimeSlotInput{ServiceID: 7, StartTime: "10:00", EndTime: "11:00"},
			setupMocks: func(*repoMocks.MockTimeSlotRepository) {},
			wantErr:    ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mSlots := new(repoMocks.MockTimeSlotRepository)
			tt.setupMocks(mSlots)
			svc := NewScheduleService(mSlots, nil, nil, nil, nil, nil)

			_, err := svc.CreateSlot(ctx, tt.in)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			mSlots.AssertExpectations(t)
		})
	}
}
