package xano

import (
	"context"
	"net/url"
	"strconv"

	"ambientefest/internal/baas"
	"ambientefest/internal/model"
	"ambientefest/internal/normalize"
	"ambientefest/internal/repository"
)

// TimeSlotRepo implements repository.TimeSlotRepository over /service_time_slot.
type TimeSlotRepo struct {
	client *baas.Client
}

func NewTimeSlotRepo(c *baas.Client) *TimeSlotRepo {
	return &TimeSlotRepo{client: c}
}

var _ repository.TimeSlotRepository = (*TimeSlotRepo)(nil)

// List filters by service again after the BaaS answer, which may ignore the
// query parameter.
func (r *TimeSlotRepo) List(ctx context.Context, serviceID int64) ([]model.TimeSlot, error) {
	params := url.Values{}
	if serviceID > 0 {
		params.Set("service_id", strconv.FormatInt(serviceID, 10))
	}
	raw, err := r.client.Get(ctx, queryPath(pathTimeSlots, params))
	if err != nil {
		return nil, err
	}
	slots := list(raw, mapTimeSlot)
	if serviceID <= 0 {
		return slots, nil
	}
	out := slots[:0]
	for _, s := range slots {
		if s.ServiceID == serviceID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *TimeSlotRepo) Create(ctx context.Context, in model.TimeSlotInput) (*model.TimeSlot, error) {
	raw, err := r.client.Post(ctx, pathTimeSlots, in)
	if err != nil {
		return nil, err
	}
	r.client.Invalidate(ctx, pathTimeSlots)
	s := mapTimeSlot(object(raw))
	return &s, nil
}

func (r *TimeSlotRepo) Update(ctx context.Context, id int64, in model.TimeSlotInput) (*model.TimeSlot, error) {
	raw, err := r.client.Put(ctx, itemPath(pathTimeSlots, id), in)
	if err != nil {
		return nil, notFound(err)
	}
	r.client.Invalidate(ctx, pathTimeSlots)
	s := mapTimeSlot(object(raw))
	if s.ID == 0 {
		s.ID = id
	}
	return &s, nil
}

func (r *TimeSlotRepo) Delete(ctx context.Context, id int64) error {
	if _, err := r.client.Delete(ctx, itemPath(pathTimeSlots, id)); err != nil {
		return notFound(err)
	}
	r.client.Invalidate(ctx, pathTimeSlots)
	return nil
}

func mapTimeSlot(rec normalize.Record) model.TimeSlot {
	return model.TimeSlot{
		ID:        rec.Int("id"),
		ServiceID: rec.Int("service_id", "serviceId"),
		Date:      rec.Str("date", "fecha"),
		StartTime: rec.Str("start_time", "hora_inicio"),
		EndTime:   rec.Str("end_time", "hora_fin"),
		CreatedBy: rec.Int("created_by"),
	}
}

// ReservationRepo implements repository.ReservationRepository over /service_reservation.
type ReservationRepo struct {
	client *baas.Client
}

func NewReservationRepo(c *baas.Client) *ReservationRepo {
	return &ReservationRepo{client: c}
}

var _ repository.ReservationRepository = (*ReservationRepo)(nil)

func (r *ReservationRepo) ListByService(ctx context.Context, serviceID int64) ([]model.Reservation, error) {
	params := url.Values{}
	params.Set("service_id", strconv.FormatInt(serviceID, 10))
	raw, err := r.client.Get(ctx, queryPath(pathReservations, params))
	if err != nil {
		return nil, err
	}
	return list(raw, mapReservation), nil
}

func (r *ReservationRepo) Create(ctx context.Context, in model.Reservation) (*model.Reservation, error) {
	status := in.Status
	if status == "" {
		status = model.ReservationPending
	}
	raw, err := r.client.Post(ctx, pathReservations, map[string]any{
		"service_id":   in.ServiceID,
		"user_id":      in.UserID,
		"time_slot_id": in.TimeSlotID,
		"notes":        in.Notes,
		"status":       status,
	})
	if err != nil {
		return nil, err
	}
	r.client.Invalidate(ctx, pathReservations)
	res := mapReservation(object(raw))
	if res.ID == 0 {
		in.Status = status
		return &in, nil
	}
	return &res, nil
}

func mapReservation(rec normalize.Record) model.Reservation {
	return model.Reservation{
		ID:         rec.Int("id"),
		ServiceID:  rec.Int("service_id"),
		UserID:     rec.Int("user_id"),
		TimeSlotID: rec.Int("time_slot_id"),
		Notes:      rec.Str("notes"),
		Status:     rec.Str("status", "estado"),
		CreatedAt:  rec.Str("created_at"),
	}
}
