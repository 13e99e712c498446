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

type patientDetailsRepository struct {
	BaseRepository
}

func NewPatientDetailsRepository(base BaseRepository) repository.PatientDetailsRepository {
	return &patientDetailsRepository{base}
}

func (r *patientDetailsRepository) Create(ctx context.Context, details *model.PatientDetails) error {
	details.ID = uuid.New()
	details.CreatedAt = time.Now()
	details.UpdatedAt = time.Now()

	query := `
		INSERT INTO patient_details (
			id, user_id, date_of_birth, medical_notes, phone,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.ExecContext(ctx, query,
		details.ID,
		details.UserID,
		details.DateOfBirth,
		details.MedicalNotes,
		details.Phone,
		details.CreatedAt,
		details.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.Conflict("patient details already exist")
		}
		return fmt.Errorf("failed to create patient details: %w", err)
	}
	return nil
}

func (r *patientDetailsRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*model.PatientDetails, error) {
	query := `
		SELECT id, user_id, date_of_birth, medical_notes, phone,
			   created_at, updated_at
		FROM patient_details
		WHERE user_id = $1
	`

	var details model.PatientDetails
	if err := r.db.GetContext(ctx, &details, query, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound()
		}
		return nil, fmt.Errorf("failed to get patient details: %w", err)
	}

	return &details, nil
}

func (r *patientDetailsRepository) Upsert(ctx context.Context, details *model.PatientDetails) error {
	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		query := `
			UPDATE patient_details
			SET medical_notes = $1, phone = $2, updated_at = $3
			WHERE user_id = $4
		`
		details.UpdatedAt = time.Now()

		result, err := tx.ExecContext(ctx, query,
			details.MedicalNotes,
			details.Phone,
			details.UpdatedAt,
			details.UserID,
		)
		if err != nil {
			return fmt.Errorf("failed to update patient details: %w", err)
		}

		rows, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get rows affected: %w", err)
		}
		if rows > 0 {
			return nil
		}

		// No details row yet: the first edit creates it.
		details.ID = uuid.New()
		details.CreatedAt = details.UpdatedAt

		insert := `
			INSERT INTO patient_details (
				id, user_id, date_of_birth, medical_notes, phone,
				created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7)
		`
		_, err = tx.ExecContext(ctx, insert,
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

func (r *patientDetailsRepository) ListAll(ctx context.Context) ([]*model.PatientSummary, error) {
	query := `
		SELECT u.id AS user_id, u.username, u.full_name, u.email,
			   pd.date_of_birth, COALESCE(pd.medical_notes, '') AS medical_notes,
			   COALESCE(pd.phone, '') AS phone
		FROM users u
		JOIN roles r ON r.id = u.role_id
		LEFT JOIN patient_details pd ON pd.user_id = u.id
		WHERE r.name = 'patient'
		ORDER BY u.full_name
	`

	var summaries []*model.PatientSummary
	if err := r.db.SelectContext(ctx, &summaries, query); err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}

	return summaries, nil
}

func (r *patientDetailsRepository) ListForDoctor(ctx context.Context, doctorID uuid.UUID) ([]*model.PatientSummary, error) {
	query := `
		SELECT u.id AS user_id, u.username, u.full_name, u.email,
			   pd.date_of_birth, COALESCE(pd.medical_notes, '') AS medical_notes,
			   COALESCE(pd.phone, '') AS phone
		FROM users u
		JOIN doctor_patient dp ON dp.patient_id = u.id
		LEFT JOIN patient_details pd ON pd.user_id = u.id
		WHERE dp.doctor_id = $1
		ORDER BY u.full_name
	`

	var summaries []*model.PatientSummary
	if err := r.db.SelectContext(ctx, &summaries, query, doctorID); err != nil {
		return nil, fmt.Errorf("failed to list patients for doctor: %w", err)
	}

	return summaries, nil
}
