package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/mofahq/tasktracker/internal/services/web/storage"
	"github.com/mofahq/tasktracker/internal/tracker"
)

const userColumns = `id, username, first_name, last_name, email, department,
	phone_number, is_staff, is_superuser, is_active, date_joined, last_login`

// PutUser upserts one user account.
func (s *Store) PutUser(ctx context.Context, user tracker.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(user.ID) == "" {
		return fmt.Errorf("user id is required")
	}
	if strings.TrimSpace(user.Username) == "" {
		return fmt.Errorf("username is required")
	}
	if _, err := tracker.ParseDepartment(string(user.Department)); err != nil {
		return err
	}

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO users (`+userColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   username = excluded.username,
		   first_name = excluded.first_name,
		   last_name = excluded.last_name,
		   email = excluded.email,
		   department = excluded.department,
		   phone_number = excluded.phone_number,
		   is_staff = excluded.is_staff,
		   is_superuser = excluded.is_superuser,
		   is_active = excluded.is_active,
		   last_login = excluded.last_login`,
		user.ID,
		user.Username,
		user.FirstName,
		user.LastName,
		user.Email,
		string(user.Department),
		user.PhoneNumber,
		user.IsStaff,
		user.IsSuperuser,
		user.IsActive,
		toMillis(user.DateJoined),
		nullableMillis(user.LastLogin),
	)
	if err != nil {
		return fmt.Errorf("put user: %w", err)
	}
	return nil
}

// GetUser loads one user by id.
func (s *Store) GetUser(ctx context.Context, id string) (tracker.User, error) {
	if err := ctx.Err(); err != nil {
		return tracker.User{}, err
	}
	if s == nil || s.sqlDB == nil {
		return tracker.User{}, fmt.Errorf("storage is not configured")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return tracker.User{}, fmt.Errorf("user id is required")
	}

	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`,
		id,
	)
	return scanUserRow(row, "get user")
}

// GetUserByUsername loads one user by username.
func (s *Store) GetUserByUsername(ctx context.Context, username string) (tracker.User, error) {
	if err := ctx.Err(); err != nil {
		return tracker.User{}, err
	}
	if s == nil || s.sqlDB == nil {
		return tracker.User{}, fmt.Errorf("storage is not configured")
	}
	username = strings.TrimSpace(username)
	if username == "" {
		return tracker.User{}, fmt.Errorf("username is required")
	}

	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT `+userColumns+` FROM users WHERE username = ?`,
		username,
	)
	return scanUserRow(row, "get user by username")
}

// ListUsers returns all user accounts ordered by username.
func (s *Store) ListUsers(ctx context.Context) ([]tracker.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT `+userColumns+` FROM users ORDER BY username ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []tracker.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("list users: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func scanUserRow(row *sql.Row, op string) (tracker.User, error) {
	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return tracker.User{}, storage.ErrNotFound
		}
		return tracker.User{}, fmt.Errorf("%s: %w", op, err)
	}
	return user, nil
}

func scanUser(row rowScanner) (tracker.User, error) {
	var (
		user       tracker.User
		department string
		dateJoined int64
		lastLogin  sql.NullInt64
	)
	if err := row.Scan(
		&user.ID,
		&user.Username,
		&user.FirstName,
		&user.LastName,
		&user.Email,
		&department,
		&user.PhoneNumber,
		&user.IsStaff,
		&user.IsSuperuser,
		&user.IsActive,
		&dateJoined,
		&lastLogin,
	); err != nil {
		return tracker.User{}, err
	}
	user.Department = tracker.Department(department)
	user.DateJoined = fromMillis(dateJoined)
	user.LastLogin = timePtr(lastLogin)
	return user, nil
}
