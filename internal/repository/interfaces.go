package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/jwalitptl/patient-portal/internal/model"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	// CreateWithPatientDetails creates the user and its details row in a
	// single transaction, used when provisioning patient-role accounts.
	CreateWithPatientDetails(ctx context.Context, user *model.User, details *model.PatientDetails) error
	Get(ctx context.Context, id uuid.UUID) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	List(ctx context.Context) ([]*model.User, error)
}

type RoleRepository interface {
	Create(ctx context.Context, role *model.Role) error
	GetByName(ctx context.Context, name string) (*model.Role, error)
	List(ctx context.Context) ([]*model.Role, error)
}

type PatientDetailsRepository interface {
	Create(ctx context.Context, details *model.PatientDetails) error
	GetByUserID(ctx context.Context, userID uuid.UUID) (*model.PatientDetails, error)
	// Upsert creates the details row when the patient has none yet,
	// otherwise updates notes and phone.
	Upsert(ctx context.Context, details *model.PatientDetails) error
	ListAll(ctx context.Context) ([]*model.PatientSummary, error)
	ListForDoctor(ctx context.Context, doctorID uuid.UUID) ([]*model.PatientSummary, error)
}

type AssignmentRepository interface {
	Create(ctx context.Context, assignment *model.Assignment) error
	Exists(ctx context.Context, doctorID, patientID uuid.UUID) (bool, error)
	ListDoctorsForPatient(ctx context.Context, patientID uuid.UUID) ([]*model.User, error)
}
