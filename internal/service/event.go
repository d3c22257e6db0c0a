package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/offroad-club/backend/internal/domain"
	"github.com/offroad-club/backend/internal/repository"

	"github.com/google/uuid"
)

type eventService struct {
	eventRepository repository.Events
}

func newEventService(eventRepository repository.Events) *eventService {
	return &eventService{
		eventRepository: eventRepository,
	}
}

type EventInput struct {
	Title           string
	Date            time.Time
	Location        string
	Description     string
	Price           int
	ImageURL        string
	ReportLink      string
	WarningText     string
	ChildrenAllowed bool
	IsArchived      bool
}

func (s *eventService) GetAll(ctx context.Context, includeArchived bool) ([]domain.Event, error) {
	events, err := s.eventRepository.GetAll(ctx, includeArchived)
	if err != nil {
		return nil, fmt.Errorf("get events failed: %w", err)
	}

	return events, nil
}

func (s *eventService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Event, error) {
	event, err := s.eventRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("get event failed: %w", err)
	}

	return event, nil
}

func (s *eventService) Create(ctx context.Context, input EventInput) (*domain.Event, error) {
	eventID, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generate event id failed: %w", err)
	}

	event := eventFromInput(eventID, input)

	if err := s.eventRepository.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("create event failed: %w", err)
	}

	return event, nil
}

func (s *eventService) Update(ctx context.Context, id uuid.UUID, input EventInput) (*domain.Event, error) {
	event := eventFromInput(id, input)

	if err := s.eventRepository.Update(ctx, event); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("update event failed: %w", err)
	}

	return event, nil
}

func (s *eventService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.eventRepository.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return ErrEventNotFound
		}
		return fmt.Errorf("delete event failed: %w", err)
	}

	return nil
}

func eventFromInput(id uuid.UUID, input EventInput) *domain.Event {
	return &domain.Event{
		ID:       id,
		Title:    input.Title,
		Date:     input.Date,
		Location: input.Location,
		Description: sql.NullString{
			String: input.Description,
			Valid:  input.Description != "",
		},
		Price: input.Price,
		ImageURL: sql.NullString{
			String: input.ImageURL,
			Valid:  input.ImageURL != "",
		},
		ReportLink: sql.NullString{
			String: input.ReportLink,
			Valid:  input.ReportLink != "",
		},
		WarningText: sql.NullString{
			String: input.WarningText,
			Valid:  input.WarningText != "",
		},
		ChildrenAllowed: input.ChildrenAllowed,
		IsArchived:      input.IsArchived,
	}
}
