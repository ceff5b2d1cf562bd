package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"eventra/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCatalogService implements domain.CatalogService for handler tests.
type fakeCatalogService struct {
	listErr    error
	listResult []*domain.EventWithStats
	lastFilter domain.EventFilter

	getErr    error
	getResult *domain.EventDetail
	lastID    string
}

func (f *fakeCatalogService) ListEvents(ctx context.Context, filter domain.EventFilter) ([]*domain.EventWithStats, error) {
	f.lastFilter = filter
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.listResult, nil
}

func (f *fakeCatalogService) GetEvent(ctx context.Context, id string) (*domain.EventDetail, error) {
	f.lastID = id
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getResult, nil
}

func TestListEvents_handler_success(t *testing.T) {
	spots := 90
	svc := &fakeCatalogService{
		listResult: []*domain.EventWithStats{
			{
				Event:           &domain.Event{ID: "ev-1", Title: "Hack Night", Status: domain.EventPublished},
				RegisteredCount: 10,
				AvailableSpots:  &spots,
			},
		},
	}
	ctrl := NewCatalogController(testLogger, svc)

	req := httptest.NewRequest(http.MethodGet, "/events?category=Technical&search=hack", nil)
	rec := httptest.NewRecorder()
	ctrl.ListEvents(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var payload map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, true, payload["success"])
	assert.Equal(t, float64(1), payload["count"])
	data, ok := payload["data"].([]any)
	require.True(t, ok)
	require.Len(t, data, 1)
	first := data[0].(map[string]any)
	assert.Equal(t, "ev-1", first["id"])
	assert.Equal(t, float64(10), first["registeredCount"])
	assert.Equal(t, float64(90), first["availableSpots"])

	assert.Equal(t, "Technical", svc.lastFilter.Category)
	assert.Equal(t, "hack", svc.lastFilter.Search)
}

func TestListEvents_handler_empty_data_is_array(t *testing.T) {
	svc := &fakeCatalogService{listResult: []*domain.EventWithStats{}}
	ctrl := NewCatalogController(testLogger, svc)

	req := httptest.NewRequest(http.MethodGet, "/events", nil)
	rec := httptest.NewRecorder()
	ctrl.ListEvents(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"data":[]`)
	assert.Contains(t, rec.Body.String(), `"count":0`)
}

func TestListEvents_handler_date_params(t *testing.T) {
	svc := &fakeCatalogService{listResult: []*domain.EventWithStats{}}
	ctrl := NewCatalogController(testLogger, svc)

	req := httptest.NewRequest(http.MethodGet, "/events?startDate=2026-03-01&endDate=2026-05-01T00:00:00Z", nil)
	rec := httptest.NewRecorder()
	ctrl.ListEvents(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.lastFilter.StartDate)
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), *svc.lastFilter.StartDate)
	require.NotNil(t, svc.lastFilter.EndDate)
	assert.Equal(t, time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC), *svc.lastFilter.EndDate)
}

func TestListEvents_handler_bad_date(t *testing.T) {
	ctrl := NewCatalogController(testLogger, &fakeCatalogService{})

	req := httptest.NewRequest(http.MethodGet, "/events?startDate=next-tuesday", nil)
	rec := httptest.NewRecorder()
	ctrl.ListEvents(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListEvents_handler_store_error(t *testing.T) {
	svc := &fakeCatalogService{listErr: errors.New("boom")}
	ctrl := NewCatalogController(testLogger, svc)

	req := httptest.NewRequest(http.MethodGet, "/events", nil)
	rec := httptest.NewRecorder()
	ctrl.ListEvents(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "internal server error")
	assert.NotContains(t, rec.Body.String(), "boom")
}

func TestGetEvent_handler_success(t *testing.T) {
	spots := 63
	svc := &fakeCatalogService{
		getResult: &domain.EventDetail{
			Event:           &domain.Event{ID: "ev-1", Title: "Hack Night"},
			OrganizerName:   "Tech Club",
			RegisteredCount: 37,
			AvailableSpots:  &spots,
		},
	}
	ctrl := NewCatalogController(testLogger, svc)

	req := httptest.NewRequest(http.MethodGet, "/events/ev-1", nil)
	req.SetPathValue("id", "ev-1")
	rec := httptest.NewRecorder()
	ctrl.GetEvent(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var payload map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, true, payload["success"])
	event, ok := payload["event"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Tech Club", event["organizerName"])
	assert.Equal(t, float64(37), event["registeredCount"])
	assert.Equal(t, float64(63), event["availableSpots"])
	assert.Equal(t, "ev-1", svc.lastID)
}

func TestGetEvent_handler_not_found(t *testing.T) {
	svc := &fakeCatalogService{getErr: domain.ErrNotFound}
	ctrl := NewCatalogController(testLogger, svc)

	req := httptest.NewRequest(http.MethodGet, "/events/missing", nil)
	req.SetPathValue("id", "missing")
	rec := httptest.NewRecorder()
	ctrl.GetEvent(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "event not found")
}
