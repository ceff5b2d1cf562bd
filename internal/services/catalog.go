package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"eventra/internal/domain"
)

type catalogService struct {
	eventRepo domain.EventRepository
}

// NewCatalogService creates the public read-side service over events.
func NewCatalogService(eventRepo domain.EventRepository) domain.CatalogService {
	return &catalogService{eventRepo: eventRepo}
}

func (s *catalogService) ListEvents(ctx context.Context, filter domain.EventFilter) ([]*domain.EventWithStats, error) {
	filter.Category = strings.TrimSpace(filter.Category)
	if strings.EqualFold(filter.Category, "All") {
		filter.Category = ""
	}
	filter.Search = strings.TrimSpace(filter.Search)

	events, err := s.eventRepo.ListPublished(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	if events == nil {
		events = []*domain.EventWithStats{}
	}
	return events, nil
}

func (s *catalogService) GetEvent(ctx context.Context, id string) (*domain.EventDetail, error) {
	detail, err := s.eventRepo.GetDetail(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return detail, nil
}
