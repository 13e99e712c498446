package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jwalitptl/patient-portal/internal/apperror"
	"github.com/jwalitptl/patient-portal/internal/model"
	"github.com/jwalitptl/patient-portal/internal/repository"
)

type assignmentRepository struct {
	BaseRepository
}

func NewAssignmentRepository(base BaseRepository) repository.AssignmentRepository {
	return &assignmentRepository{base}
}

func (r *assignmentRepository) Create(ctx context.Context, assignment *model.Assignment) error {
	assignment.ID = uuid.New()
	assignment.CreatedAt = time.Now()

	query := `
		INSERT INTO doctor_patient (id, doctor_id, patient_id, created_at)
		VALUES ($1, $2, $3, $4)
	`
	_, err := r.db.ExecContext(ctx, query,
		assignment.ID,
		assignment.DoctorID,
		assignment.PatientID,
		assignment.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.Conflict("doctor is already assigned to this patient")
		}
		return fmt.Errorf("failed to create assignment: %w", err)
	}
	return nil
}

func (r *assignmentRepository) Exists(ctx context.Context, doctorID, patientID uuid.UUID) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM doctor_patient
			WHERE doctor_id = $1 AND patient_id = $2
		)
	`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, doctorID, patientID); err != nil {
		return false, fmt.Errorf("failed to check assignment: %w", err)
	}

	return exists, nil
}

func (r *assignmentRepository) ListDoctorsForPatient(ctx context.Context, patientID uuid.UUID) ([]*model.User, error) {
	query := `
		SELECT u.id, u.username, u.password_hash, u.full_name, u.email,
			   u.role_id, u.created_at, u.updated_at, r.name AS role_name
		FROM users u
		JOIN roles r ON r.id = u.role_id
		JOIN doctor_patient dp ON dp.doctor_id = u.id
		WHERE dp.patient_id = $1
		ORDER BY u.full_name
	`

	var doctors []*model.User
	if err := r.db.SelectContext(ctx, &doctors, query, patientID); err != nil {
		return nil, fmt.Errorf("failed to list doctors for patient: %w", err)
	}

	return doctors, nil
}
