package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"eventra/internal/domain"
)

type eventRepository struct {
	DB *sql.DB
}

// NewEventRepository returns a domain.EventRepository implemented with Postgres.
func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{DB: db}
}

const eventColumns = `e.id, e.title, e.description, e.category, e.venue, e.start_date, e.end_date, e.capacity, e.registration_deadline, e.status, e.ticket_type, e.price, e.organizer_id, e.created_at, e.updated_at`

func scanEvent(row interface{ Scan(...any) error }, e *domain.Event) (registeredCount int, err error) {
	var capacity sql.NullInt64
	var deadline sql.NullTime
	err = row.Scan(
		&e.ID, &e.Title, &e.Description, &e.Category, &e.Venue, &e.StartDate, &e.EndDate,
		&capacity, &deadline, &e.Status, &e.TicketType, &e.Price, &e.OrganizerID,
		&e.CreatedAt, &e.UpdatedAt, &registeredCount,
	)
	if err != nil {
		return 0, err
	}
	if capacity.Valid {
		c := int(capacity.Int64)
		e.Capacity = &c
	}
	if deadline.Valid {
		d := deadline.Time
		e.RegistrationDeadline = &d
	}
	return registeredCount, nil
}

// escapeLike neutralizes LIKE/ILIKE metacharacters so a search term matches literally.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// withStats derives the availability figures from capacity and the live count.
func withStats(e *domain.Event, registeredCount int) *domain.EventWithStats {
	stats := &domain.EventWithStats{Event: e, RegisteredCount: registeredCount}
	if e.Capacity != nil {
		available := *e.Capacity - registeredCount
		if available < 0 {
			available = 0
		}
		stats.AvailableSpots = &available
	}
	return stats
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	query := `
		INSERT INTO events (title, description, category, venue, start_date, end_date, capacity, registration_deadline, status, ticket_type, price, organizer_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id
	`
	var capacity any
	if e.Capacity != nil {
		capacity = *e.Capacity
	}
	var deadline any
	if e.RegistrationDeadline != nil {
		deadline = *e.RegistrationDeadline
	}
	return r.DB.QueryRowContext(ctx, query,
		e.Title, e.Description, e.Category, e.Venue, e.StartDate, e.EndDate,
		capacity, deadline, string(e.Status), string(e.TicketType), e.Price,
		e.OrganizerID, e.CreatedAt, e.UpdatedAt,
	).Scan(&e.ID)
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	query := `
		SELECT ` + eventColumns + `, 0
		FROM events e
		WHERE e.id = $1
	`
	e := &domain.Event{}
	if _, err := scanEvent(r.DB.QueryRowContext(ctx, query, id), e); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) GetDetail(ctx context.Context, id string) (*domain.EventDetail, error) {
	query := `
		SELECT ` + eventColumns + `, COUNT(r.id), u.name
		FROM events e
		JOIN users u ON u.id = e.organizer_id
		LEFT JOIN registrations r ON r.event_id = e.id AND r.status <> 'cancelled'
		WHERE e.id = $1 AND e.status = 'published'
		GROUP BY e.id, u.name
	`
	e := &domain.Event{}
	var capacity sql.NullInt64
	var deadline sql.NullTime
	var registeredCount int
	var organizerName string
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&e.ID, &e.Title, &e.Description, &e.Category, &e.Venue, &e.StartDate, &e.EndDate,
		&capacity, &deadline, &e.Status, &e.TicketType, &e.Price, &e.OrganizerID,
		&e.CreatedAt, &e.UpdatedAt, &registeredCount, &organizerName,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if capacity.Valid {
		c := int(capacity.Int64)
		e.Capacity = &c
	}
	if deadline.Valid {
		d := deadline.Time
		e.RegistrationDeadline = &d
	}

	stats := withStats(e, registeredCount)
	return &domain.EventDetail{
		Event:           e,
		OrganizerName:   organizerName,
		RegisteredCount: stats.RegisteredCount,
		AvailableSpots:  stats.AvailableSpots,
	}, nil
}

func (r *eventRepository) ListPublished(ctx context.Context, filter domain.EventFilter) ([]*domain.EventWithStats, error) {
	whereClauses := []string{"e.status = 'published'"}
	args := []any{}
	n := 1
	if filter.Category != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("e.category = $%d", n))
		args = append(args, filter.Category)
		n++
	}
	if filter.Search != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("(e.title ILIKE $%d OR e.description ILIKE $%d OR e.venue ILIKE $%d)", n, n, n))
		args = append(args, "%"+escapeLike(filter.Search)+"%")
		n++
	}
	if filter.StartDate != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("e.start_date >= $%d", n))
		args = append(args, *filter.StartDate)
		n++
	}
	if filter.EndDate != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("e.start_date <= $%d", n))
		args = append(args, *filter.EndDate)
		n++
	}

	query := fmt.Sprintf(`
		SELECT %s, COUNT(r.id)
		FROM events e
		LEFT JOIN registrations r ON r.event_id = e.id AND r.status <> 'cancelled'
		WHERE %s
		GROUP BY e.id
		ORDER BY e.start_date ASC
	`, eventColumns, strings.Join(whereClauses, " AND "))

	return r.listWithStats(ctx, query, args...)
}

func (r *eventRepository) ListByOrganizerID(ctx context.Context, organizerID string) ([]*domain.EventWithStats, error) {
	query := `
		SELECT ` + eventColumns + `, COUNT(r.id)
		FROM events e
		LEFT JOIN registrations r ON r.event_id = e.id AND r.status <> 'cancelled'
		WHERE e.organizer_id = $1
		GROUP BY e.id
		ORDER BY e.created_at DESC
	`
	return r.listWithStats(ctx, query, organizerID)
}

func (r *eventRepository) listWithStats(ctx context.Context, query string, args ...any) ([]*domain.EventWithStats, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]*domain.EventWithStats, 0)
	for rows.Next() {
		e := &domain.Event{}
		registeredCount, err := scanEvent(rows, e)
		if err != nil {
			return nil, err
		}
		events = append(events, withStats(e, registeredCount))
	}
	return events, rows.Err()
}

func (r *eventRepository) Update(ctx context.Context, id string, upd domain.EventUpdate) (*domain.Event, error) {
	setClauses := []string{"updated_at = NOW()"}
	args := []any{}
	n := 1
	add := func(column string, value any) {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, n))
		args = append(args, value)
		n++
	}
	if upd.Title != nil {
		add("title", *upd.Title)
	}
	if upd.Description != nil {
		add("description", *upd.Description)
	}
	if upd.Category != nil {
		add("category", *upd.Category)
	}
	if upd.Venue != nil {
		add("venue", *upd.Venue)
	}
	if upd.StartDate != nil {
		add("start_date", *upd.StartDate)
	}
	if upd.EndDate != nil {
		add("end_date", *upd.EndDate)
	}
	if upd.ClearCapacity {
		setClauses = append(setClauses, "capacity = NULL")
	} else if upd.Capacity != nil {
		add("capacity", *upd.Capacity)
	}
	if upd.ClearDeadline {
		setClauses = append(setClauses, "registration_deadline = NULL")
	} else if upd.RegistrationDeadline != nil {
		add("registration_deadline", *upd.RegistrationDeadline)
	}
	if upd.Status != nil {
		add("status", string(*upd.Status))
	}
	if upd.TicketType != nil {
		add("ticket_type", string(*upd.TicketType))
	}
	if upd.Price != nil {
		add("price", *upd.Price)
	}

	args = append(args, id)
	query := fmt.Sprintf(`
		UPDATE events e SET %s
		WHERE id = $%d
		RETURNING `+eventColumns+`, 0
	`, strings.Join(setClauses, ", "), n)

	e := &domain.Event{}
	if _, err := scanEvent(r.DB.QueryRowContext(ctx, query, args...), e); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM events WHERE id = $1`
	result, err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
