package garage

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/keymaxprot/backend/internal/httpx"
)

type Service struct {
	Repo *GormRepo
}

type CreateVehicleRequest struct {
	Make  string `json:"make"`
	Model string `json:"model"`
	Year  int    `json:"year"`
	Color string `json:"color"`
	VIN   string `json:"vin"`
	Plate string `json:"plate"`
}

type OwnershipRequest struct {
	UserID uuid.UUID `json:"user_id"`
	Role   string    `json:"role"`
}

type CreateRecordRequest struct {
	ServiceID    uuid.UUID           `json:"service_id"`
	Cost         float64             `json:"cost"`
	Technician   string              `json:"technician"`
	PerformedAt  int64               `json:"performed_at"`
	Notes        string              `json:"notes"`
	ProductsUsed []ServiceRecordItem `json:"products_used"`
}

// CreateVehicle registers the creating user as the single owner.
func (s *Service) CreateVehicle(ctx context.Context, ownerID uuid.UUID, req CreateVehicleRequest) (*Vehicle, error) {
	if req.Make == "" || req.Model == "" {
		return nil, fmt.Errorf("%w: make and model required", httpx.ErrValidation)
	}
	if req.VIN == "" || req.Plate == "" {
		return nil, fmt.Errorf("%w: vin and plate required", httpx.ErrValidation)
	}

	v := &Vehicle{
		Make:  req.Make,
		Model: req.Model,
		Year:  req.Year,
		Color: req.Color,
		VIN:   req.VIN,
		Plate: req.Plate,
		Ownerships: []VehicleOwnership{
			{UserID: ownerID, Role: RoleOwner},
		},
	}
	if err := s.Repo.CreateVehicle(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

func (s *Service) GetVehicle(ctx context.Context, id uuid.UUID) (*Vehicle, error) {
	v, err := s.Repo.GetVehicle(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: vehicle", httpx.ErrNotFound)
	}
	return v, err
}

func (s *Service) ListVehicles(ctx context.Context, userID uuid.UUID, isAdmin bool, offset, limit int) (int64, []Vehicle, error) {
	scope := userID
	if isAdmin {
		scope = uuid.Nil
	}
	return s.Repo.ListVehicles(ctx, scope, offset, limit)
}

// AddOwnership appends an entry to the vehicle's people list; a second
// "owner" role fails validation.
func (s *Service) AddOwnership(ctx context.Context, vehicleID uuid.UUID, req OwnershipRequest) (*Vehicle, error) {
	if req.Role != RoleOwner && req.Role != RoleDriver {
		return nil, fmt.Errorf("%w: role must be owner or driver", httpx.ErrValidation)
	}
	if req.UserID == uuid.Nil {
		return nil, fmt.Errorf("%w: user_id required", httpx.ErrValidation)
	}

	v, err := s.GetVehicle(ctx, vehicleID)
	if err != nil {
		return nil, err
	}

	for _, o := range v.Ownerships {
		if o.UserID == req.UserID {
			return nil, fmt.Errorf("%w: user already on vehicle", httpx.ErrConflict)
		}
	}

	v.Ownerships = append(v.Ownerships, VehicleOwnership{VehicleID: v.ID, UserID: req.UserID, Role: req.Role})
	if err := validateOwnerships(v.Ownerships); err != nil {
		return nil, fmt.Errorf("%w: %v", httpx.ErrValidation, err)
	}

	if err := s.Repo.SaveVehicle(ctx, v); err != nil {
		if errors.Is(err, ErrMultipleOwners) {
			return nil, fmt.Errorf("%w: %v", httpx.ErrValidation, err)
		}
		return nil, err
	}
	return v, nil
}

func (s *Service) DeleteVehicle(ctx context.Context, id uuid.UUID) error {
	err := s.Repo.DeleteVehicle(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: vehicle", httpx.ErrNotFound)
	}
	return err
}

func (s *Service) CreateRecord(ctx context.Context, vehicleID uuid.UUID, req CreateRecordRequest) (*ServiceRecord, error) {
	if req.ServiceID == uuid.Nil {
		return nil, fmt.Errorf("%w: service_id required", httpx.ErrValidation)
	}
	if req.Cost < 0 {
		return nil, fmt.Errorf("%w: cost cannot be negative", httpx.ErrValidation)
	}

	if _, err := s.GetVehicle(ctx, vehicleID); err != nil {
		return nil, err
	}

	rec := &ServiceRecord{
		VehicleID:    vehicleID,
		ServiceID:    req.ServiceID,
		Cost:         req.Cost,
		Technician:   req.Technician,
		PerformedAt:  req.PerformedAt,
		Notes:        req.Notes,
		ProductsUsed: req.ProductsUsed,
	}
	if err := s.Repo.CreateRecord(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *Service) ListRecords(ctx context.Context, vehicleID uuid.UUID, offset, limit int) (int64, []ServiceRecord, error) {
	if _, err := s.GetVehicle(ctx, vehicleID); err != nil {
		return 0, nil, err
	}
	return s.Repo.ListRecords(ctx, vehicleID, offset, limit)
}
