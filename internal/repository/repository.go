// Package repository implements the collection-level reads and writes for
// weddings, registrations and accounts on top of the key-value store.
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/weddingwander/weddingwander/internal/database"
	"github.com/weddingwander/weddingwander/internal/model"
)

// ErrNotFound is returned when a requested resource does not exist.
var ErrNotFound = errors.New("not found")

// EventRepository handles persistence for weddings.
type EventRepository struct {
	store database.Store
}

// NewEventRepository constructs an EventRepository.
func NewEventRepository(store database.Store) *EventRepository {
	return &EventRepository{store: store}
}

// List returns every stored wedding in catalog order.
func (r *EventRepository) List(ctx context.Context) ([]model.Event, error) {
	events, err := database.ReadCollection[model.Event](ctx, r.store, database.CollectionWeddings)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}

// GetByID returns a single wedding or ErrNotFound.
func (r *EventRepository) GetByID(ctx context.Context, id string) (*model.Event, error) {
	events, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range events {
		if events[i].ID == id {
			return &events[i], nil
		}
	}
	return nil, ErrNotFound
}

// Save replaces the stored wedding with the same ID.
func (r *EventRepository) Save(ctx context.Context, event model.Event) error {
	events, err := r.List(ctx)
	if err != nil {
		return err
	}
	idx := -1
	for i := range events {
		if events[i].ID == event.ID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return ErrNotFound
	}
	events[idx] = event
	if err := database.WriteCollection(ctx, r.store, database.CollectionWeddings, events); err != nil {
		return fmt.Errorf("save event: %w", err)
	}
	return nil
}

// ReplaceAll overwrites the whole collection.
func (r *EventRepository) ReplaceAll(ctx context.Context, events []model.Event) error {
	if err := database.WriteCollection(ctx, r.store, database.CollectionWeddings, events); err != nil {
		return fmt.Errorf("replace events: %w", err)
	}
	return nil
}

// RegistrationRepository handles persistence for registrations.
type RegistrationRepository struct {
	store database.Store
}

// NewRegistrationRepository constructs a RegistrationRepository.
func NewRegistrationRepository(store database.Store) *RegistrationRepository {
	return &RegistrationRepository{store: store}
}

// List returns every registration, any status.
func (r *RegistrationRepository) List(ctx context.Context) ([]model.Registration, error) {
	regs, err := database.ReadCollection[model.Registration](ctx, r.store, database.CollectionRegistrations)
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	return regs, nil
}

// ReplaceAll overwrites the whole collection.
func (r *RegistrationRepository) ReplaceAll(ctx context.Context, regs []model.Registration) error {
	if err := database.WriteCollection(ctx, r.store, database.CollectionRegistrations, regs); err != nil {
		return fmt.Errorf("replace registrations: %w", err)
	}
	return nil
}

// GetByID returns a single registration or ErrNotFound.
func (r *RegistrationRepository) GetByID(ctx context.Context, id string) (*model.Registration, error) {
	regs, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range regs {
		if regs[i].ID == id {
			return &regs[i], nil
		}
	}
	return nil, ErrNotFound
}

// ListByUser returns all registrations owned by userID.
func (r *RegistrationRepository) ListByUser(ctx context.Context, userID string) ([]model.Registration, error) {
	regs, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	out := []model.Registration{}
	for _, reg := range regs {
		if reg.UserID == userID {
			out = append(out, reg)
		}
	}
	return out, nil
}

// ListByEvent returns all registrations for eventID.
func (r *RegistrationRepository) ListByEvent(ctx context.Context, eventID string) ([]model.Registration, error) {
	regs, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	out := []model.Registration{}
	for _, reg := range regs {
		if reg.WeddingID == eventID {
			out = append(out, reg)
		}
	}
	return out, nil
}
