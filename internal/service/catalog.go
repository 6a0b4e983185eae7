package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/weddingwander/weddingwander/internal/model"
	"github.com/weddingwander/weddingwander/internal/repository"
)

// Catalog answers read queries over the wedding collection.
type Catalog struct {
	events *repository.EventRepository
}

// NewCatalog constructs a Catalog.
func NewCatalog(events *repository.EventRepository) *Catalog {
	return &Catalog{events: events}
}

// ListAll returns every wedding in catalog order.
func (c *Catalog) ListAll(ctx context.Context) ([]model.Event, error) {
	return c.events.List(ctx)
}

// GetByID returns a single wedding by ID.
func (c *Catalog) GetByID(ctx context.Context, id string) (*model.Event, error) {
	if id == "" {
		return nil, repository.ErrNotFound
	}
	event, err := c.events.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return event, nil
}

// Filter returns the weddings matching every set predicate of f, in catalog order.
func (c *Catalog) Filter(ctx context.Context, f model.Filter) ([]model.Event, error) {
	events, err := c.events.List(ctx)
	if err != nil {
		return nil, err
	}
	if f.IsEmpty() {
		return events, nil
	}
	out := []model.Event{}
	for _, e := range events {
		if f.Matches(e) {
			out = append(out, e)
		}
	}
	return out, nil
}

// Countries returns the distinct countries in the catalog, in catalog order.
func (c *Catalog) Countries(ctx context.Context) ([]string, error) {
	events, err := c.events.List(ctx)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{}, len(events))
	out := []string{}
	for _, e := range events {
		country := e.Location.Country
		if _, ok := seen[country]; ok || country == "" {
			continue
		}
		seen[country] = struct{}{}
		out = append(out, country)
	}
	return out, nil
}
