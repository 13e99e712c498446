package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/jwalitptl/patient-portal/internal/apperror"
	"github.com/jwalitptl/patient-portal/internal/model"
	"github.com/jwalitptl/patient-portal/internal/repository"
)

type roleRepository struct {
	BaseRepository
}

func NewRoleRepository(base BaseRepository) repository.RoleRepository {
	return &roleRepository{base}
}

func (r *roleRepository) Create(ctx context.Context, role *model.Role) error {
	if role.ID == uuid.Nil {
		role.ID = uuid.New()
	}

	query := `INSERT INTO roles (id, name) VALUES ($1, $2)`
	_, err := r.db.ExecContext(ctx, query, role.ID, role.Name)
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.Conflict("role already exists")
		}
		return fmt.Errorf("failed to create role: %w", err)
	}
	return nil
}

func (r *roleRepository) GetByName(ctx context.Context, name string) (*model.Role, error) {
	query := `SELECT id, name FROM roles WHERE name = $1`

	var role model.Role
	if err := r.db.GetContext(ctx, &role, query, name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound()
		}
		return nil, fmt.Errorf("failed to get role: %w", err)
	}

	return &role, nil
}

func (r *roleRepository) List(ctx context.Context) ([]*model.Role, error) {
	query := `SELECT id, name FROM roles ORDER BY name`

	var roles []*model.Role
	if err := r.db.SelectContext(ctx, &roles, query); err != nil {
		return nil, fmt.Errorf("failed to list roles: %w", err)
	}

	return roles, nil
}
