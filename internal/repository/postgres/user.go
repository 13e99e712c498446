package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/jwalitptl/patient-portal/internal/apperror"
	"github.com/jwalitptl/patient-portal/internal/model"
	"github.com/jwalitptl/patient-portal/internal/repository"
)

type userRepository struct {
	BaseRepository
}

func NewUserRepository(base BaseRepository) repository.UserRepository {
	return &userRepository{base}
}

const insertUserQuery = `
	INSERT INTO users (
		id, username, password_hash, full_name, email, role_id,
		created_at, updated_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
`

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	user.ID = uuid.New()
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()

	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		return r.insertUser(ctx, tx, user)
	})
}

func (r *userRepository) CreateWithPatientDetails(ctx context.Context, user *model.User, details *model.PatientDetails) error {
	user.ID = uuid.New()
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()

	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		if err := r.insertUser(ctx, tx, user); err != nil {
			return err
		}

		details.ID = uuid.New()
		details.UserID = user.ID
		details.CreatedAt = user.CreatedAt
		details.UpdatedAt = user.UpdatedAt

		query := `
			INSERT INTO patient_details (
				id, user_id, date_of_birth, medical_notes, phone,
				created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7)
		`
		_, err := tx.ExecContext(ctx, query,
			details.ID,
			details.UserID,
			details.DateOfBirth,
			details.MedicalNotes,
			details.Phone,
			details.CreatedAt,
			details.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to create patient details: %w", err)
		}
		return nil
	})
}

func (r *userRepository) insertUser(ctx context.Context, tx *sqlx.Tx, user *model.User) error {
	_, err := tx.ExecContext(ctx, insertUserQuery,
		user.ID,
		user.Username,
		user.PasswordHash,
		user.FullName,
		user.Email,
		user.RoleID,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.Conflict("username or email already in use")
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *userRepository) Get(ctx context.Context, id uuid.UUID) (*model.User, error) {
	query := `
		SELECT u.id, u.username, u.password_hash, u.full_name, u.email,
			   u.role_id, u.created_at, u.updated_at, r.name AS role_name
		FROM users u
		JOIN roles r ON r.id = u.role_id
		WHERE u.id = $1
	`

	var user model.User
	if err := r.db.GetContext(ctx, &user, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound()
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &user, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	query := `
		SELECT u.id, u.username, u.password_hash, u.full_name, u.email,
			   u.role_id, u.created_at, u.updated_at, r.name AS role_name
		FROM users u
		JOIN roles r ON r.id = u.role_id
		WHERE u.username = $1
	`

	var user model.User
	if err := r.db.GetContext(ctx, &user, query, username); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound()
		}
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}

	return &user, nil
}

func (r *userRepository) List(ctx context.Context) ([]*model.User, error) {
	query := `
		SELECT u.id, u.username, u.password_hash, u.full_name, u.email,
			   u.role_id, u.created_at, u.updated_at, r.name AS role_name
		FROM users u
		JOIN roles r ON r.id = u.role_id
		ORDER BY r.name, u.full_name
	`

	var users []*model.User
	if err := r.db.SelectContext(ctx, &users, query); err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	return users, nil
}
