package service

import (
	"context"
	"time"

	"inkwell/internal/models"
	"inkwell/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type EventService struct {
	eventRepo repository.EventRepository
}

type CreateEventInput struct {
	ActorID     primitive.ObjectID
	Title       string
	Description string
	Location    string
	Image       string
	Date        time.Time
}

type UpdateEventInput struct {
	ActorID     primitive.ObjectID
	ActorAdmin  bool
	EventID     primitive.ObjectID
	Title       string
	Description string
	Location    string
	Image       string
	Date        time.Time
}

type DeleteEventInput struct {
	ActorID    primitive.ObjectID
	ActorAdmin bool
	EventID    primitive.ObjectID
}

func NewEventService(eventRepo repository.EventRepository) *EventService {
	return &EventService{eventRepo: eventRepo}
}

func (s *EventService) CreateEvent(ctx context.Context, in CreateEventInput) (*models.Event, error) {
	if in.Title == "" || in.Date.IsZero() {
		return nil, models.NewValidationError("Please provide a title and a date")
	}

	now := time.Now()
	event := &models.Event{
		Title:       in.Title,
		Description: in.Description,
		Location:    in.Location,
		Image:       in.Image,
		Date:        in.Date,
		UserID:      in.ActorID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

func (s *EventService) ListEvents(ctx context.Context, skip, limit int64) ([]models.Event, error) {
	return s.eventRepo.List(ctx, skip, limit)
}

func (s *EventService) GetEvent(ctx context.Context, id primitive.ObjectID) (*models.Event, error) {
	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, models.NewNotFoundError("Event not found")
	}
	return event, nil
}

func (s *EventService) UpdateEvent(ctx context.Context, in UpdateEventInput) (*models.Event, error) {
	event, err := s.eventRepo.GetByID(ctx, in.EventID)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, models.NewNotFoundError("Event not found")
	}
	if !in.ActorAdmin && in.ActorID != event.UserID {
		return nil, models.NewForbiddenError("You are not allowed to update this event")
	}

	set := bson.M{}
	if in.Title != "" {
		set["title"] = in.Title
	}
	if in.Description != "" {
		set["description"] = in.Description
	}
	if in.Location != "" {
		set["location"] = in.Location
	}
	if in.Image != "" {
		set["image"] = in.Image
	}
	if !in.Date.IsZero() {
		set["date"] = in.Date
	}
	if len(set) == 0 {
		return event, nil
	}
	set["updatedAt"] = time.Now()

	updated, err := s.eventRepo.Update(ctx, in.EventID, set)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, models.NewNotFoundError("Event not found")
	}
	return updated, nil
}

func (s *EventService) DeleteEvent(ctx context.Context, in DeleteEventInput) error {
	event, err := s.eventRepo.GetByID(ctx, in.EventID)
	if err != nil {
		return err
	}
	if event == nil {
		return models.NewNotFoundError("Event not found")
	}
	if !in.ActorAdmin && in.ActorID != event.UserID {
		return models.NewForbiddenError("You are not allowed to delete this event")
	}
	return s.eventRepo.Delete(ctx, in.EventID)
}
