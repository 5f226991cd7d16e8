package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/keymaxprot/backend/internal/events"
	"github.com/keymaxprot/backend/internal/httpx"
	"github.com/keymaxprot/backend/internal/logging"
	"github.com/keymaxprot/backend/internal/servicecat"
)

const dateLayout = "2006-01-02"

type Service struct {
	Repo   *GormRepo
	DB     *gorm.DB
	Events *events.Producer
}

type BookRequest struct {
	ServiceID     uuid.UUID `json:"service_id"`
	Date          string    `json:"date"`
	Slot          string    `json:"slot"`
	CustomerName  string    `json:"customer_name"`
	CustomerPhone string    `json:"customer_phone"`
	CustomerEmail string    `json:"customer_email"`
	VehicleInfo   string    `json:"vehicle_info"`
	Notes         string    `json:"notes"`
}

// AvailableSlots marks each candidate slot against the appointments already
// on the books for that date.
func (s *Service) AvailableSlots(ctx context.Context, date string) ([]SlotStatus, error) {
	if _, err := time.Parse(dateLayout, date); err != nil {
		return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", httpx.ErrValidation)
	}

	appts, err := s.Repo.ListByDate(ctx, date)
	if err != nil {
		return nil, err
	}

	taken := make(map[string]bool, len(appts))
	for _, a := range appts {
		taken[a.Slot] = true
	}

	out := make([]SlotStatus, 0, len(CandidateSlots))
	for _, t := range CandidateSlots {
		out = append(out, SlotStatus{Time: t, Available: !taken[t]})
	}
	return out, nil
}

// Book inserts a pending appointment. The availability listing above is only
// advisory; the unique (date, slot) index is what actually rejects a
// concurrent duplicate, surfaced here as a conflict.
func (s *Service) Book(ctx context.Context, userID uuid.UUID, req BookRequest) (*Appointment, error) {
	l := logging.FromContext(ctx).With("svc", "booking.book")

	if _, err := time.Parse(dateLayout, req.Date); err != nil {
		return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", httpx.ErrValidation)
	}
	if !validSlot(req.Slot) {
		return nil, fmt.Errorf("%w: %q is not a bookable slot", httpx.ErrValidation, req.Slot)
	}
	if req.CustomerName == "" || req.CustomerPhone == "" {
		return nil, fmt.Errorf("%w: customer name and phone required", httpx.ErrValidation)
	}
	if req.ServiceID == uuid.Nil {
		return nil, fmt.Errorf("%w: service_id required", httpx.ErrValidation)
	}

	var offering servicecat.ServiceOffering
	if err := s.DB.WithContext(ctx).Where("id = ?", req.ServiceID).First(&offering).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: service", httpx.ErrNotFound)
		}
		return nil, err
	}

	appt := &Appointment{
		UserID:        userID,
		ServiceID:     req.ServiceID,
		Date:          req.Date,
		Slot:          req.Slot,
		Status:        StatusPending,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		CustomerEmail: req.CustomerEmail,
		VehicleInfo:   req.VehicleInfo,
		Notes:         req.Notes,
	}
	if err := s.Repo.Create(ctx, appt); err != nil {
		if httpx.StatusOf(err) == 409 || errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: slot %s on %s is already booked", httpx.ErrConflict, req.Slot, req.Date)
		}
		return nil, err
	}

	if err := s.Events.Publish(ctx, events.TopicAppointments, appt.ID.String(), map[string]any{
		"type":          "appointment_booked",
		"appointmentID": appt.ID,
		"date":          appt.Date,
		"slot":          appt.Slot,
		"service":       offering.Name,
	}); err != nil {
		l.Error("event publish failed", "error", err)
	}

	l.Info("appointment_booked", "appointment_id", appt.ID, "date", appt.Date, "slot", appt.Slot)
	return appt, nil
}

func (s *Service) ListMine(ctx context.Context, userID uuid.UUID, offset, limit int) (int64, []Appointment, error) {
	return s.Repo.ListByUser(ctx, userID, offset, limit)
}

func (s *Service) ListByDate(ctx context.Context, date string) ([]Appointment, error) {
	if _, err := time.Parse(dateLayout, date); err != nil {
		return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", httpx.ErrValidation)
	}
	return s.Repo.ListByDate(ctx, date)
}

var transitions = map[string][]string{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled},
}

func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*Appointment, error) {
	appt, err := s.Repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: appointment", httpx.ErrNotFound)
		}
		return nil, err
	}

	allowed := false
	for _, next := range transitions[appt.Status] {
		if next == status {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, fmt.Errorf("%w: cannot move %s appointment to %q", httpx.ErrConflict, appt.Status, status)
	}

	appt.Status = status
	if err := s.Repo.Save(ctx, appt); err != nil {
		return nil, err
	}
	return appt, nil
}

// Cancel releases nothing: the row keeps its slot until an admin deletes it.
func (s *Service) Cancel(ctx context.Context, id, requesterID uuid.UUID, isAdmin bool) (*Appointment, error) {
	appt, err := s.Repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: appointment", httpx.ErrNotFound)
		}
		return nil, err
	}
	if !isAdmin && appt.UserID != requesterID {
		return nil, fmt.Errorf("%w: not your appointment", httpx.ErrForbidden)
	}
	return s.UpdateStatus(ctx, id, StatusCancelled)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.Repo.Delete(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: appointment", httpx.ErrNotFound)
	}
	return err
}
