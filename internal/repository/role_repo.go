package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/hasan-mia/the-x-tribune-server/internal/model"

	"github.com/jackc/pgx/v5"
)

// RoleRepository defines operations for role data
type RoleRepository interface {
	FindByName(ctx context.Context, name string) (*model.Role, error)
	List(ctx context.Context) ([]*model.Role, error)
}

type roleRepository struct {
	db PgxIface
}

// NewRoleRepository creates a new RoleRepository
func NewRoleRepository(db PgxIface) RoleRepository {
	return &roleRepository{db: db}
}

// FindByName retrieves a role by its unique name
func (r *roleRepository) FindByName(ctx context.Context, name string) (*model.Role, error) {
	role := &model.Role{}
	err := r.db.QueryRow(ctx, `SELECT id, name, score FROM roles WHERE name = $1`, name).
		Scan(&role.ID, &role.Name, &role.Score)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // Role not found
		}
		return nil, fmt.Errorf("failed to find role by name: %w", err)
	}
	return role, nil
}

// List returns all roles ordered by score
func (r *roleRepository) List(ctx context.Context) ([]*model.Role, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, score FROM roles ORDER BY score`)
	if err != nil {
		return nil, fmt.Errorf("failed to list roles: %w", err)
	}
	defer rows.Close()

	var roles []*model.Role
	for rows.Next() {
		role := &model.Role{}
		if err := rows.Scan(&role.ID, &role.Name, &role.Score); err != nil {
			return nil, fmt.Errorf("failed to scan role row: %w", err)
		}
		roles = append(roles, role)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading role rows: %w", err)
	}
	return roles, nil
}
