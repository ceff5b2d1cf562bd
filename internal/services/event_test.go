package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"eventra/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeEventRepo is an in-memory EventRepository for tests.
type fakeEventRepo struct {
	byID       map[string]*domain.Event
	details    map[string]*domain.EventDetail
	published  []*domain.EventWithStats
	nextID     int
	err        error
	lastFilter domain.EventFilter
	deleted    []string
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{
		byID:    make(map[string]*domain.Event),
		details: make(map[string]*domain.EventDetail),
		nextID:  1,
	}
}

func (f *fakeEventRepo) Create(ctx context.Context, e *domain.Event) error {
	if f.err != nil {
		return f.err
	}
	e.ID = fmt.Sprintf("ev-%d", f.nextID)
	f.nextID++
	f.byID[e.ID] = e
	return nil
}

func (f *fakeEventRepo) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	if e, ok := f.byID[id]; ok {
		return e, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeEventRepo) GetDetail(ctx context.Context, id string) (*domain.EventDetail, error) {
	if f.err != nil {
		return nil, f.err
	}
	if d, ok := f.details[id]; ok {
		return d, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeEventRepo) ListPublished(ctx context.Context, filter domain.EventFilter) ([]*domain.EventWithStats, error) {
	f.lastFilter = filter
	if f.err != nil {
		return nil, f.err
	}
	return f.published, nil
}

func (f *fakeEventRepo) ListByOrganizerID(ctx context.Context, organizerID string) ([]*domain.EventWithStats, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*domain.EventWithStats
	for _, e := range f.byID {
		if e.OrganizerID == organizerID {
			out = append(out, &domain.EventWithStats{Event: e})
		}
	}
	return out, nil
}

func (f *fakeEventRepo) Update(ctx context.Context, id string, upd domain.EventUpdate) (*domain.Event, error) {
	e, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if upd.Title != nil {
		e.Title = *upd.Title
	}
	if upd.StartDate != nil {
		e.StartDate = *upd.StartDate
	}
	if upd.EndDate != nil {
		e.EndDate = *upd.EndDate
	}
	if upd.Capacity != nil {
		e.Capacity = upd.Capacity
	}
	if upd.ClearCapacity {
		e.Capacity = nil
	}
	return e, nil
}

func (f *fakeEventRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	f.deleted = append(f.deleted, id)
	return nil
}

func seedOrganizer(users *fakeUserRepo, id string) {
	users.byID[id] = &domain.User{ID: id, Email: id + "@college.edu", Role: domain.RoleOrganizer}
}

func newTestEventService(events *fakeEventRepo, regs *fakeRegistrationRepo, users *fakeUserRepo) domain.EventService {
	return NewEventService(events, regs, users, time.Second)
}

func validEvent() *domain.Event {
	return &domain.Event{
		Title:     "Hack Night",
		Category:  "Technical",
		Venue:     "Main Auditorium",
		StartDate: time.Date(2026, 4, 1, 18, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 4, 1, 22, 0, 0, 0, time.UTC),
	}
}

func TestCreateEvent_success_applies_defaults(t *testing.T) {
	events := newFakeEventRepo()
	users := newFakeUserRepo()
	seedOrganizer(users, "org-1")
	svc := newTestEventService(events, newFakeRegistrationRepo(), users)

	e := validEvent()
	err := svc.CreateEvent(context.Background(), "org-1", e)
	require.NoError(t, err)
	assert.NotEmpty(t, e.ID)
	assert.Equal(t, "org-1", e.OrganizerID)
	assert.Equal(t, domain.EventDraft, e.Status)
	assert.Equal(t, domain.TicketFree, e.TicketType)
	assert.False(t, e.CreatedAt.IsZero())
}

func TestCreateEvent_requires_organizer_role(t *testing.T) {
	events := newFakeEventRepo()
	users := newFakeUserRepo()
	users.byID["usr-1"] = &domain.User{ID: "usr-1", Role: domain.RoleAttendee}
	svc := newTestEventService(events, newFakeRegistrationRepo(), users)

	err := svc.CreateEvent(context.Background(), "usr-1", validEvent())
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestCreateEvent_unknown_user_is_forbidden(t *testing.T) {
	svc := newTestEventService(newFakeEventRepo(), newFakeRegistrationRepo(), newFakeUserRepo())

	err := svc.CreateEvent(context.Background(), "ghost", validEvent())
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestCreateEvent_validation(t *testing.T) {
	users := newFakeUserRepo()
	seedOrganizer(users, "org-1")
	svc := newTestEventService(newFakeEventRepo(), newFakeRegistrationRepo(), users)

	cases := []struct {
		name   string
		mutate func(*domain.Event)
	}{
		{"empty title", func(e *domain.Event) { e.Title = "  " }},
		{"zero start", func(e *domain.Event) { e.StartDate = time.Time{} }},
		{"start after end", func(e *domain.Event) { e.StartDate = e.EndDate.Add(time.Hour) }},
		{"zero capacity", func(e *domain.Event) { zero := 0; e.Capacity = &zero }},
		{"unknown status", func(e *domain.Event) { e.Status = "publishedd" }},
		{"unknown ticket type", func(e *domain.Event) { e.TicketType = "donation" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := validEvent()
			tc.mutate(e)
			err := svc.CreateEvent(context.Background(), "org-1", e)
			var validation *domain.ValidationError
			assert.ErrorAs(t, err, &validation)
		})
	}
}

func TestUpdateEvent_owner_only(t *testing.T) {
	events := newFakeEventRepo()
	users := newFakeUserRepo()
	seedOrganizer(users, "org-1")
	svc := newTestEventService(events, newFakeRegistrationRepo(), users)

	e := validEvent()
	require.NoError(t, svc.CreateEvent(context.Background(), "org-1", e))

	title := "Renamed"
	_, err := svc.UpdateEvent(context.Background(), e.ID, "org-2", domain.EventUpdate{Title: &title})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestUpdateEvent_not_found(t *testing.T) {
	svc := newTestEventService(newFakeEventRepo(), newFakeRegistrationRepo(), newFakeUserRepo())

	_, err := svc.UpdateEvent(context.Background(), "missing", "org-1", domain.EventUpdate{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdateEvent_validates_merged_window(t *testing.T) {
	events := newFakeEventRepo()
	users := newFakeUserRepo()
	seedOrganizer(users, "org-1")
	svc := newTestEventService(events, newFakeRegistrationRepo(), users)

	e := validEvent()
	require.NoError(t, svc.CreateEvent(context.Background(), "org-1", e))

	// Moving only the start past the stored end must fail.
	late := e.EndDate.Add(2 * time.Hour)
	_, err := svc.UpdateEvent(context.Background(), e.ID, "org-1", domain.EventUpdate{StartDate: &late})
	var validation *domain.ValidationError
	assert.ErrorAs(t, err, &validation)
}

func TestUpdateEvent_rejects_unknown_status(t *testing.T) {
	events := newFakeEventRepo()
	users := newFakeUserRepo()
	seedOrganizer(users, "org-1")
	svc := newTestEventService(events, newFakeRegistrationRepo(), users)

	e := validEvent()
	require.NoError(t, svc.CreateEvent(context.Background(), "org-1", e))

	bad := domain.EventStatus("publishedd")
	_, err := svc.UpdateEvent(context.Background(), e.ID, "org-1", domain.EventUpdate{Status: &bad})
	var validation *domain.ValidationError
	assert.ErrorAs(t, err, &validation)

	badTicket := domain.TicketType("donation")
	_, err = svc.UpdateEvent(context.Background(), e.ID, "org-1", domain.EventUpdate{TicketType: &badTicket})
	assert.ErrorAs(t, err, &validation)
}

func TestUpdateEvent_success(t *testing.T) {
	events := newFakeEventRepo()
	users := newFakeUserRepo()
	seedOrganizer(users, "org-1")
	svc := newTestEventService(events, newFakeRegistrationRepo(), users)

	e := validEvent()
	require.NoError(t, svc.CreateEvent(context.Background(), "org-1", e))

	title := "Renamed"
	updated, err := svc.UpdateEvent(context.Background(), e.ID, "org-1", domain.EventUpdate{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Title)
}

func TestDeleteEvent(t *testing.T) {
	events := newFakeEventRepo()
	users := newFakeUserRepo()
	seedOrganizer(users, "org-1")
	svc := newTestEventService(events, newFakeRegistrationRepo(), users)

	e := validEvent()
	require.NoError(t, svc.CreateEvent(context.Background(), "org-1", e))

	err := svc.DeleteEvent(context.Background(), e.ID, "org-2")
	assert.ErrorIs(t, err, domain.ErrForbidden)

	err = svc.DeleteEvent(context.Background(), e.ID, "org-1")
	require.NoError(t, err)
	assert.Equal(t, []string{e.ID}, events.deleted)
}

func TestListMyEvents_empty_is_not_nil(t *testing.T) {
	svc := newTestEventService(newFakeEventRepo(), newFakeRegistrationRepo(), newFakeUserRepo())

	out, err := svc.ListMyEvents(context.Background(), "org-1")
	require.NoError(t, err)
	assert.NotNil(t, out)
	assert.Empty(t, out)
}

func TestListEventRegistrations(t *testing.T) {
	events := newFakeEventRepo()
	users := newFakeUserRepo()
	seedOrganizer(users, "org-1")
	regs := newFakeRegistrationRepo()
	regs.listRegs = []*domain.Registration{{ID: "reg-1"}, {ID: "reg-2"}}
	regs.listTotal = 12
	svc := newTestEventService(events, regs, users)

	e := validEvent()
	require.NoError(t, svc.CreateEvent(context.Background(), "org-1", e))

	_, _, err := svc.ListEventRegistrations(context.Background(), e.ID, "org-2", domain.PaginationParams{Page: 1, PageSize: 20})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	out, total, err := svc.ListEventRegistrations(context.Background(), e.ID, "org-1", domain.PaginationParams{Page: 1, PageSize: 20})
	require.NoError(t, err)
	assert.Len(t, out, 2)
	assert.Equal(t, 12, total)
}
