package service

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"time"

	"go.uber.org/zap"

	"ambientefest/internal/model"
	"ambientefest/internal/repository"
	"ambientefest/internal/session"
)

// ReserveToCartResult is a reservation together with the cart line that
// carries it.
type ReserveToCartResult struct {
	Reservation model.Reservation `json:"reservation"`
	Detail      model.CartDetail  `json:"detail"`
}

// ScheduleService implements the time slot reservation workflow.
type ScheduleService interface {
	// AvailableSlots returns the bookable slots of a service sorted by date
	// and start time.
	AvailableSlots(ctx context.Context, serviceID int64) ([]model.TimeSlot, error)
	Reserve(ctx context.Context, sess *session.Session, serviceID, slotID int64, notes string) (*model.Reservation, error)
	// ReserveToCart reserves the slot and adds it to the user's server and
	// draft carts.
	ReserveToCart(ctx context.Context, sess *session.Session, serviceID, slotID int64, notes string) (*ReserveToCartResult, error)

	ListSlots(ctx context.Context, serviceID int64) ([]model.TimeSlot, error)
	CreateSlot(ctx context.Context, in model.TimeSlotInput) (*model.TimeSlot, error)
	UpdateSlot(ctx context.Context, id int64, in model.TimeSlotInput) (*model.TimeSlot, error)
	DeleteSlot(ctx context.Context, id int64) error
}

type scheduleService struct {
	slots        repository.TimeSlotRepository
	reservations repository.ReservationRepository
	services     repository.ServiceRepository
	cart         CartService
	logger       *zap.Logger
	now          func() time.Time
}

// NewScheduleService constructs a ScheduleService. now defaults to time.Now.
func NewScheduleService(
	slots repository.TimeSlotRepository,
	reservations repository.ReservationRepository,
	services repository.ServiceRepository,
	cart CartService,
	logger *zap.Logger,
	now func() time.Time,
) ScheduleService {
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &scheduleService{
		slots:        slots,
		reservations: reservations,
		services:     services,
		cart:         cart,
		logger:       logger,
		now:          now,
	}
}

func (s *scheduleService) AvailableSlots(ctx context.Context, serviceID int64) ([]model.TimeSlot, error) {
	if serviceID <= 0 {
		return nil, ErrIDRequired
	}
	slots, err := s.slots.List(ctx, serviceID)
	if err != nil {
		return nil, err
	}

	reserved := make(map[int64]struct{})
	reservations, err := s.reservations.ListByService(ctx, serviceID)
	if err != nil {
		s.logger.Warn("list reservations failed, treating every slot as free",
			zap.Int64("service_id", serviceID), zap.Error(err))
	}
	for _, r := range reservations {
		if r.TimeSlotID > 0 {
			reserved[r.TimeSlotID] = struct{}{}
		}
	}

	return filterAvailable(slots, serviceID, reserved, s.now().UTC().Format(time.DateOnly)), nil
}

// filterAvailable keeps the slots of serviceID that are not reserved, have a
// real start time and fall on today or later. today is YYYY-MM-DD in UTC.
func filterAvailable(slots []model.TimeSlot, serviceID int64, reserved map[int64]struct{}, today string) []model.TimeSlot {
	out := make([]model.TimeSlot, 0, len(slots))
	for _, slot := range slots {
		if slot.ServiceID != serviceID {
			continue
		}
		if _, taken := reserved[slot.ID]; taken {
			continue
		}
		switch strings.TrimSpace(slot.StartTime) {
		case "", "00:00", "00:00:00":
			continue
		}
		day := slot.Day()
		if day == "" || day < today {
			continue
		}
		out = append(out, slot)
	}
	slices.SortStableFunc(out, compareSlots)
	return out
}

func (s *scheduleService) Reserve(ctx context.Context, sess *session.Session, serviceID, slotID int64, notes string) (*model.Reservation, error) {
	r, _, err := s.reserve(ctx, sess, serviceID, slotID, notes)
	return r, err
}

func (s *scheduleService) reserve(ctx context.Context, sess *session.Session, serviceID, slotID int64, notes string) (*model.Reservation, *model.TimeSlot, error) {
	if slotID <= 0 {
		return nil, nil, ErrIDRequired
	}
	available, err := s.AvailableSlots(ctx, serviceID)
	if err != nil {
		return nil, nil, err
	}
	idx := slices.IndexFunc(available, func(t model.TimeSlot) bool { return t.ID == slotID })
	if idx < 0 {
		return nil, nil, ErrSlotUnavailable
	}
	slot := available[idx]

	res, err := s.reservations.Create(ctx, model.Reservation{
		ServiceID:  serviceID,
		UserID:     sess.UserID,
		TimeSlotID: slotID,
		Notes:      strings.TrimSpace(notes),
		Status:     model.ReservationPending,
	})
	if err != nil {
		return nil, nil, err
	}
	return res, &slot, nil
}

func (s *scheduleService) ReserveToCart(ctx context.Context, sess *session.Session, serviceID, slotID int64, notes string) (*ReserveToCartResult, error) {
	svc, err := s.services.Get(ctx, serviceID)
	if err != nil {
		return nil, translate(err)
	}
	res, slot, err := s.reserve(ctx, sess, serviceID, slotID, notes)
	if err != nil {
		return nil, err
	}
	detail, err := s.cart.AddReservation(ctx, sess.UserID, *svc, *slot)
	if err != nil {
		return nil, err
	}
	return &ReserveToCartResult{Reservation: *res, Detail: *detail}, nil
}

func (s *scheduleService) ListSlots(ctx context.Context, serviceID int64) ([]model.TimeSlot, error) {
	slots, err := s.slots.List(ctx, serviceID)
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(slots, compareSlots)
	return slots, nil
}

func (s *scheduleService) CreateSlot(ctx context.Context, in model.TimeSlotInput) (*model.TimeSlot, error) {
	if err := validateSlot(in); err != nil {
		return nil, err
	}
	return s.slots.Create(ctx, in)
}

func (s *scheduleService) UpdateSlot(ctx context.Context, id int64, in model.TimeSlotInput) (*model.TimeSlot, error) {
	if id <= 0 {
		return nil, ErrIDRequired
	}
	if err := validateSlot(in); err != nil {
		return nil, err
	}
	slot, err := s.slots.Update(ctx, id, in)
	if err != nil {
		return nil, translate(err)
	}
	return slot, nil
}

func (s *scheduleService) DeleteSlot(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrIDRequired
	}
	return translate(s.slots.Delete(ctx, id))
}

func compareSlots(a, b model.TimeSlot) int {
	if c := cmp.Compare(a.Day(), b.Day()); c != 0 {
		return c
	}
	return cmp.Compare(a.StartTime, b.StartTime)
}

// validateSlot compares times as text, so both must use the same HH:MM form.
func validateSlot(in model.TimeSlotInput) error {
	if in.ServiceID <= 0 {
		return invalid("service_id is required")
	}
	if strings.TrimSpace(in.Date) == "" {
		return invalid("date is required")
	}
	if strings.TrimSpace(in.StartTime) == "" || strings.TrimSpace(in.EndTime) == "" {
		return invalid("start_time and end_time are required")
	}
	if in.StartTime >= in.EndTime {
		return ErrInvalidTimeRange
	}
	return nil
}
