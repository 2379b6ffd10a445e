package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/derin/volunteerhub/internal/app/models"
	"github.com/derin/volunteerhub/internal/pkg/apperrors"
	"github.com/derin/volunteerhub/internal/pkg/dberrors"
)

// UserRepository handles database operations for users
type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

var userColumns = []string{
	"id", "email", "password", "first_name", "last_name",
	"role_type", "is_active", "created_at", "updated_at", "last_login_at",
}

func scanUser(row pgx.Row) (*models.User, error) {
	var user models.User
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.Password,
		&user.FirstName,
		&user.LastName,
		&user.RoleType,
		&user.IsActive,
		&user.CreatedAt,
		&user.UpdatedAt,
		&user.LastLoginAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Create inserts a new user and returns its ID.
// Email uniqueness is enforced by the uq_users_email index; a duplicate
// surfaces as ErrEmailAlreadyExists.
func (r *UserRepository) Create(ctx context.Context, user *models.User) (int64, error) {
	query := squirrel.Insert("users").
		Columns("email", "password", "first_name", "last_name", "role_type", "is_active").
		Values(user.Email, user.Password, user.FirstName, user.LastName, user.RoleType, user.IsActive).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building SQL: %w", err)
	}

	var id int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "uq_users_email") {
			return 0, apperrors.ErrEmailAlreadyExists
		}
		return 0, fmt.Errorf("error executing query: %w", err)
	}

	return id, nil
}

// FindByID retrieves a user by ID, returning nil when absent
func (r *UserRepository) FindByID(ctx context.Context, id int64) (*models.User, error) {
	query := squirrel.Select(userColumns...).
		From("users").
		Where("id = ?", id).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	user, err := scanUser(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	return user, nil
}

// FindByEmail retrieves a user by email (case-insensitive), returning nil when absent
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	query := squirrel.Select(userColumns...).
		From("users").
		Where("LOWER(email) = LOWER(?)", email).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	user, err := scanUser(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	return user, nil
}

// EmailExists checks whether an account with the email already exists
func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	query := squirrel.Select("1").
		From("users").
		Where("LOWER(email) = LOWER(?)", email).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return false, fmt.Errorf("error building SQL: %w", err)
	}

	var exists int
	err = r.db.QueryRow(ctx, sql, args...).Scan(&exists)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("error executing query: %w", err)
	}

	return true, nil
}

// GetAllByRole retrieves all users with the given role, ordered by name
func (r *UserRepository) GetAllByRole(ctx context.Context, role models.RoleType) ([]*models.User, error) {
	query := squirrel.Select(userColumns...).
		From("users").
		Where("role_type = ?", role).
		OrderBy("first_name", "last_name").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		users = append(users, user)
	}

	return users, nil
}

// CountByRole counts users with the given role
func (r *UserRepository) CountByRole(ctx context.Context, role models.RoleType) (int, error) {
	query := squirrel.Select("COUNT(*)").
		From("users").
		Where("role_type = ?", role).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building SQL: %w", err)
	}

	var count int
	err = r.db.QueryRow(ctx, sql, args...).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error executing query: %w", err)
	}

	return count, nil
}

// UpdateName updates the user's display name
func (r *UserRepository) UpdateName(ctx context.Context, id int64, firstName, lastName string) error {
	query := squirrel.Update("users").
		Set("first_name", firstName).
		Set("last_name", lastName).
		Set("updated_at", time.Now()).
		Where("id = ?", id).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	result, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}

	return nil
}

// UpdateLastLogin stamps the user's last login time
func (r *UserRepository) UpdateLastLogin(ctx context.Context, id int64) error {
	query := squirrel.Update("users").
		Set("last_login_at", time.Now()).
		Where("id = ?", id).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	_, err = r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}

	return nil
}
