package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/offroad-club/backend/internal/domain"
	"github.com/offroad-club/backend/internal/repository"

	"github.com/google/uuid"
)

type garageService struct {
	vehicleRepository repository.Vehicles
}

func newGarageService(vehicleRepository repository.Vehicles) *garageService {
	return &garageService{
		vehicleRepository: vehicleRepository,
	}
}

type VehicleInput struct {
	UserID   string
	Model    string
	Tires    string
	HasWinch bool
}

func (s *garageService) List(ctx context.Context, userID string) ([]domain.Vehicle, error) {
	vehicles, err := s.vehicleRepository.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get vehicles failed: %w", err)
	}

	return vehicles, nil
}

func (s *garageService) Add(ctx context.Context, input VehicleInput) (*domain.Vehicle, error) {
	vehicleID, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generate vehicle id failed: %w", err)
	}

	vehicle := &domain.Vehicle{
		ID:     vehicleID,
		UserID: input.UserID,
		Model:  input.Model,
		Tires: sql.NullString{
			String: input.Tires,
			Valid:  input.Tires != "",
		},
		HasWinch: input.HasWinch,
	}

	if err := s.vehicleRepository.Create(ctx, vehicle); err != nil {
		return nil, fmt.Errorf("create vehicle failed: %w", err)
	}

	return vehicle, nil
}

func (s *garageService) Remove(ctx context.Context, id uuid.UUID, userID string) error {
	if err := s.vehicleRepository.Delete(ctx, id, userID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return ErrVehicleNotFound
		}
		return fmt.Errorf("delete vehicle failed: %w", err)
	}

	return nil
}
