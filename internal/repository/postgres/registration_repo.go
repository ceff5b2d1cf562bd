package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"eventra/internal/domain"
)

// Postgres error code for unique constraint violations.
const uniqueViolation = "23505"

type registrationRepository struct {
	DB *sql.DB
}

// NewRegistrationRepository returns a domain.RegistrationRepository implemented with Postgres.
func NewRegistrationRepository(db *sql.DB) domain.RegistrationRepository {
	return &registrationRepository{DB: db}
}

// Register commits one registration atomically. The event row is locked for
// the duration of the transaction, so concurrent attempts for the same event
// serialize: the seat count is recomputed under the lock and the partial
// unique index on (event_id, lower(email)) catches duplicates that slipped
// past the caller's pre-check.
func (r *registrationRepository) Register(ctx context.Context, reg *domain.Registration, now time.Time) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	var capacity sql.NullInt64
	var deadline sql.NullTime
	var status string
	eventQuery := `
		SELECT capacity, registration_deadline, status
		FROM events
		WHERE id = $1
		FOR UPDATE
	`
	err = tx.QueryRowContext(ctx, eventQuery, reg.EventID).Scan(&capacity, &deadline, &status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound
		}
		return err
	}
	// Draft and cancelled events are not publicly visible, so a registration
	// attempt against them reads the same as a missing event.
	if domain.EventStatus(status) != domain.EventPublished {
		return domain.ErrNotFound
	}

	if capacity.Valid {
		// Capacity is never cached in a counter column; the live count inside
		// the transaction is the single source of truth.
		var count int
		countQuery := `
			SELECT COUNT(*)
			FROM registrations
			WHERE event_id = $1 AND status <> 'cancelled'
		`
		if err := tx.QueryRowContext(ctx, countQuery, reg.EventID).Scan(&count); err != nil {
			return err
		}
		if count >= int(capacity.Int64) {
			return domain.NewConflictError(domain.ConflictEventFull, "event full")
		}
	}

	if deadline.Valid && now.After(deadline.Time) {
		return domain.NewConflictError(domain.ConflictDeadlinePassed, "deadline passed")
	}

	insertQuery := `
		INSERT INTO registrations (event_id, full_name, email, college, department, phone_number, team_name, number_of_members, additional_info, status, registered_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id
	`
	err = tx.QueryRowContext(ctx, insertQuery,
		reg.EventID, reg.FullName, reg.Email, reg.College, reg.Department,
		reg.PhoneNumber, reg.TeamName, reg.NumberOfMembers, reg.AdditionalInfo,
		string(domain.RegistrationConfirmed), now,
	).Scan(&reg.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return domain.NewConflictError(domain.ConflictAlreadyRegistered, "already registered")
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	reg.Status = domain.RegistrationConfirmed
	reg.RegisteredAt = now
	return nil
}

func (r *registrationRepository) GetByEventAndEmail(ctx context.Context, eventID, email string) (*domain.Registration, error) {
	query := `
		SELECT id, event_id, full_name, email, college, department, phone_number, team_name, number_of_members, additional_info, status, registered_at
		FROM registrations
		WHERE event_id = $1 AND lower(email) = lower($2) AND status <> 'cancelled'
	`
	reg := &domain.Registration{}
	err := r.DB.QueryRowContext(ctx, query, eventID, email).Scan(
		&reg.ID, &reg.EventID, &reg.FullName, &reg.Email, &reg.College, &reg.Department,
		&reg.PhoneNumber, &reg.TeamName, &reg.NumberOfMembers, &reg.AdditionalInfo,
		&reg.Status, &reg.RegisteredAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return reg, nil
}

func (r *registrationRepository) ListByEventID(ctx context.Context, eventID string, p domain.PaginationParams) ([]*domain.Registration, int, error) {
	var total int
	countQuery := `
		SELECT COUNT(*)
		FROM registrations
		WHERE event_id = $1 AND status <> 'cancelled'
	`
	if err := r.DB.QueryRowContext(ctx, countQuery, eventID).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT id, event_id, full_name, email, college, department, phone_number, team_name, number_of_members, additional_info, status, registered_at
		FROM registrations
		WHERE event_id = $1 AND status <> 'cancelled'
		ORDER BY registered_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.DB.QueryContext(ctx, query, eventID, p.PageSize, p.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	regs := make([]*domain.Registration, 0)
	for rows.Next() {
		reg := &domain.Registration{}
		if err := rows.Scan(
			&reg.ID, &reg.EventID, &reg.FullName, &reg.Email, &reg.College, &reg.Department,
			&reg.PhoneNumber, &reg.TeamName, &reg.NumberOfMembers, &reg.AdditionalInfo,
			&reg.Status, &reg.RegisteredAt,
		); err != nil {
			return nil, 0, err
		}
		regs = append(regs, reg)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return regs, total, nil
}
