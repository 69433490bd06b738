package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/hasan-mia/the-x-tribune-server/internal/model"

	"github.com/jackc/pgx/v5"
)

// UserRepository defines operations for user data
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByID(ctx context.Context, id int) (*model.User, error)
	List(ctx context.Context) ([]*model.User, error)
	UpdateProfile(ctx context.Context, user *model.User) error
	UpdateStatus(ctx context.Context, id int, status string) error
	UpdateRole(ctx context.Context, id, roleID int) error
}

type userRepository struct {
	db PgxIface
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db PgxIface) UserRepository {
	return &userRepository{db: db}
}

const userColumns = `u.id, u.email, u.first_name, u.last_name, u.password_hash,
            u.avatar, u.phone, u.address, u.status, u.created_at,
            r.id, r.name, r.score`

// Create inserts a new user into the database
func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	sql := `INSERT INTO users (email, first_name, last_name, password_hash, role_id, avatar, phone, address, status, created_at)
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`
	err := r.db.QueryRow(ctx, sql,
		user.Email, user.FirstName, user.LastName, user.PasswordHash,
		user.Role.ID, user.Avatar, user.Phone, user.Address, user.Status, user.CreatedAt,
	).Scan(&user.ID)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *userRepository) scanUser(row pgx.Row) (*model.User, error) {
	user := &model.User{}
	err := row.Scan(
		&user.ID, &user.Email, &user.FirstName, &user.LastName, &user.PasswordHash,
		&user.Avatar, &user.Phone, &user.Address, &user.Status, &user.CreatedAt,
		&user.Role.ID, &user.Role.Name, &user.Role.Score,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// FindByEmail retrieves a user, with their role, by email
func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	sql := `SELECT ` + userColumns + ` FROM users u JOIN roles r ON r.id = u.role_id WHERE u.email = $1`
	user, err := r.scanUser(r.db.QueryRow(ctx, sql, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // User not found is not an error for this method's contract, service layer handles it
		}
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}
	return user, nil
}

// FindByID retrieves a user, with their role, by ID
func (r *userRepository) FindByID(ctx context.Context, id int) (*model.User, error) {
	sql := `SELECT ` + userColumns + ` FROM users u JOIN roles r ON r.id = u.role_id WHERE u.id = $1`
	user, err := r.scanUser(r.db.QueryRow(ctx, sql, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // User not found
		}
		return nil, fmt.Errorf("failed to find user by ID: %w", err)
	}
	return user, nil
}

// List returns all users ordered by creation time
func (r *userRepository) List(ctx context.Context) ([]*model.User, error) {
	sql := `SELECT ` + userColumns + ` FROM users u JOIN roles r ON r.id = u.role_id ORDER BY u.created_at DESC`
	rows, err := r.db.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []*model.User
	for rows.Next() {
		user, err := r.scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading user rows: %w", err)
	}
	return users, nil
}

// UpdateProfile updates the mutable profile fields
func (r *userRepository) UpdateProfile(ctx context.Context, user *model.User) error {
	sql := `UPDATE users SET first_name = $1, last_name = $2, avatar = $3, phone = $4, address = $5 WHERE id = $6`
	tag, err := r.db.Exec(ctx, sql, user.FirstName, user.LastName, user.Avatar, user.Phone, user.Address, user.ID)
	if err != nil {
		return fmt.Errorf("failed to update user profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// UpdateStatus sets the account status
func (r *userRepository) UpdateStatus(ctx context.Context, id int, status string) error {
	tag, err := r.db.Exec(ctx, `UPDATE users SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("failed to update user status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// UpdateRole reassigns the user's role
func (r *userRepository) UpdateRole(ctx context.Context, id, roleID int) error {
	tag, err := r.db.Exec(ctx, `UPDATE users SET role_id = $1 WHERE id = $2`, roleID, id)
	if err != nil {
		return fmt.Errorf("failed to update user role: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
