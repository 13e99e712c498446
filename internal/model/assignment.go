package model

import (
	"time"

	"github.com/google/uuid"
)

// Assignment links a doctor to a patient and grants the doctor read/write
// access to that patient's details. A (doctor, patient) pair appears at
// most once.
type Assignment struct {
	ID        uuid.UUID `json:"id" db:"id"`
	DoctorID  uuid.UUID `json:"doctor_id" db:"doctor_id"`
	PatientID uuid.UUID `json:"patient_id" db:"patient_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// CreateAssignmentRequest represents assignment provisioning parameters.
type CreateAssignmentRequest struct {
	DoctorID  string `json:"doctor_id" binding:"required,uuid"`
	PatientID string `json:"patient_id" binding:"required,uuid"`
}
