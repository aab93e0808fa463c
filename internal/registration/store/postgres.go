package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"troywings/internal/registration/models"
	dErrors "troywings/pkg/domain-errors"
	"troywings/pkg/platform/sentinel"
)

// Postgres persists user records in PostgreSQL. Writes go through the
// register_user/update_user stored functions; reads use a plain query.
type Postgres struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed user store.
func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

func (s *Postgres) Create(ctx context.Context, user *models.User) error {
	err := s.db.QueryRowContext(ctx,
		`SELECT register_user($1, $2, $3, $4, $5, $6)`,
		user.FullName,
		user.FatherName,
		user.DateOfBirth,
		user.Email,
		user.Address,
		nullPhone(user.Phone),
	).Scan(&user.ID)
	if err != nil {
		return fmt.Errorf("register user: %w", err)
	}
	return nil
}

// List reads every record ordered by id, which is stable within one read.
// A scan failure is schema drift between the table and the model, reported
// as a typed mapping error rather than a blind passthrough.
func (s *Postgres) List(ctx context.Context) ([]models.User, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, full_name, father_name, date_of_birth, email, address, phone_number
		 FROM users
		 ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var u models.User
		var phone sql.NullString
		if err := rows.Scan(&u.ID, &u.FullName, &u.FatherName, &u.DateOfBirth, &u.Email, &u.Address, &phone); err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeMapping, "user row does not match expected columns")
		}
		if phone.Valid {
			u.Phone = &phone.String
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (s *Postgres) Update(ctx context.Context, user models.User) error {
	var updated sql.NullInt64
	err := s.db.QueryRowContext(ctx,
		`SELECT update_user($1, $2, $3, $4, $5, $6, $7)`,
		user.ID,
		user.FullName,
		user.Email,
		nullPhone(user.Phone),
		user.FatherName,
		user.Address,
		nullDate(user.DateOfBirth),
	).Scan(&updated)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if !updated.Valid {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *Postgres) FindByID(ctx context.Context, id int64) (models.User, error) {
	var u models.User
	var phone sql.NullString
	err := s.db.QueryRowContext(ctx,
		`SELECT id, full_name, father_name, date_of_birth, email, address, phone_number
		 FROM users
		 WHERE id = $1`, id).
		Scan(&u.ID, &u.FullName, &u.FatherName, &u.DateOfBirth, &u.Email, &u.Address, &phone)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, sentinel.ErrNotFound
		}
		return models.User{}, fmt.Errorf("find user: %w", err)
	}
	if phone.Valid {
		u.Phone = &phone.String
	}
	return u, nil
}

// nullPhone binds an absent phone as SQL NULL, never as an empty string.
func nullPhone(phone *string) sql.NullString {
	if phone == nil || *phone == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: *phone, Valid: true}
}

// nullDate binds a zero birth date as SQL NULL so update_user keeps the
// stored value.
func nullDate(t time.Time) sql.NullTime {
	if t.IsZero() {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t, Valid: true}
}
