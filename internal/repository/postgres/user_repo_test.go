package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"eventra/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"
)

var userCols = []string{"id", "email", "name", "college", "department", "role", "password_hash", "created_at", "updated_at"}

func TestUserRepository_Create(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		wantID  string
		wantErr error
	}{
		{
			name: "success",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO users`).
					WithArgs("asha@college.edu", "Asha Rao", "NIT", "CSE", "organizer", "hash", now, now).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("usr-uuid-1"))
			},
			wantID: "usr-uuid-1",
		},
		{
			name: "duplicate email",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO users`).
					WillReturnError(&pq.Error{Code: "23505"})
			},
			wantErr: domain.ErrDuplicateEmail,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewUserRepository(db)
			user := &domain.User{
				Email: "asha@college.edu", Name: "Asha Rao", College: "NIT", Department: "CSE",
				Role: domain.RoleOrganizer, PasswordHash: "hash", CreatedAt: now, UpdatedAt: now,
			}
			err = repo.Create(ctx, user)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.wantID, user.ID)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserRepository_GetByEmail(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`WHERE email = \$1`).WithArgs("asha@college.edu").
			WillReturnRows(sqlmock.NewRows(userCols).
				AddRow("usr-1", "asha@college.edu", "Asha Rao", "NIT", "CSE", "organizer", "hash", now, now))

		repo := NewUserRepository(db)
		user, err := repo.GetByEmail(ctx, "asha@college.edu")
		require.NoError(t, err)
		require.Equal(t, "usr-1", user.ID)
		require.Equal(t, domain.RoleOrganizer, user.Role)
	})

	t.Run("not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`WHERE email = \$1`).WithArgs("nobody@college.edu").
			WillReturnError(sql.ErrNoRows)

		repo := NewUserRepository(db)
		_, err = repo.GetByEmail(ctx, "nobody@college.edu")
		require.ErrorIs(t, err, domain.ErrUserNotFound)
	})
}

func TestUserRepository_Update(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	user := &domain.User{
		ID: "usr-1", Email: "asha@college.edu", Name: "Asha Rao",
		College: "NIT", Department: "CSE", UpdatedAt: now,
	}

	t.Run("success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(`UPDATE users`).
			WithArgs("asha@college.edu", "Asha Rao", "NIT", "CSE", now, "usr-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		repo := NewUserRepository(db)
		require.NoError(t, repo.Update(ctx, user))
	})

	t.Run("missing user", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(`UPDATE users`).WillReturnResult(sqlmock.NewResult(0, 0))

		repo := NewUserRepository(db)
		require.ErrorIs(t, repo.Update(ctx, user), domain.ErrUserNotFound)
	})

	t.Run("duplicate email", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(`UPDATE users`).WillReturnError(&pq.Error{Code: "23505"})

		repo := NewUserRepository(db)
		require.ErrorIs(t, repo.Update(ctx, user), domain.ErrDuplicateEmail)
	})
}

func TestUserRepository_Delete(t *testing.T) {
	ctx := context.Background()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`DELETE FROM users`).WithArgs("ghost").
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewUserRepository(db)
	require.ErrorIs(t, repo.Delete(ctx, "ghost"), domain.ErrUserNotFound)
}
