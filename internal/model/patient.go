package model

import (
	"time"

	"github.com/google/uuid"
)

// PatientDetails is the one-to-one extension row for patient-role users.
// Ownership by a patient-role user is enforced at the service layer, the
// schema only enforces the one-to-one shape.
type PatientDetails struct {
	Base
	UserID       uuid.UUID  `json:"user_id" db:"user_id"`
	DateOfBirth  *time.Time `json:"date_of_birth" db:"date_of_birth"`
	MedicalNotes string     `json:"medical_notes" db:"medical_notes"`
	Phone        string     `json:"phone" db:"phone"`
}

// PatientSummary is a patient row joined with its details, as shown on the
// admin and doctor dashboards.
type PatientSummary struct {
	UserID       uuid.UUID  `json:"user_id" db:"user_id"`
	Username     string     `json:"username" db:"username"`
	FullName     string     `json:"full_name" db:"full_name"`
	Email        string     `json:"email" db:"email"`
	DateOfBirth  *time.Time `json:"date_of_birth" db:"date_of_birth"`
	MedicalNotes string     `json:"medical_notes" db:"medical_notes"`
	Phone        string     `json:"phone" db:"phone"`
}

// PatientRecord is the full view of a single patient: the account, the
// details row (possibly absent) and the doctors assigned to them.
type PatientRecord struct {
	Patient *User           `json:"patient"`
	Details *PatientDetails `json:"details,omitempty"`
	Doctors []*User         `json:"doctors"`
}

// UpdatePatientDetailsRequest carries the fields a doctor may edit.
type UpdatePatientDetailsRequest struct {
	MedicalNotes *string `json:"medical_notes"`
	Phone        *string `json:"phone"`
}
