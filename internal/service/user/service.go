// Package user covers account provisioning and the admin directory views.
package user

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jwalitptl/patient-portal/internal/apperror"
	"github.com/jwalitptl/patient-portal/internal/model"
	"github.com/jwalitptl/patient-portal/internal/repository"
	"github.com/jwalitptl/patient-portal/internal/service/auth"
)

type UserService interface {
	CreateUser(ctx context.Context, req *model.CreateUserRequest) (*model.User, error)
	ListUsers(ctx context.Context) ([]*model.User, error)
	CreateAssignment(ctx context.Context, req *model.CreateAssignmentRequest) (*model.Assignment, error)
}

type Service struct {
	users       repository.UserRepository
	roles       repository.RoleRepository
	assignments repository.AssignmentRepository
}

func NewService(users repository.UserRepository, roles repository.RoleRepository,
	assignments repository.AssignmentRepository) *Service {
	return &Service{
		users:       users,
		roles:       roles,
		assignments: assignments,
	}
}

// CreateUser provisions an account. The role is fixed here and never changes
// afterwards; patient-role accounts get their details row in the same
// transaction.
func (s *Service) CreateUser(ctx context.Context, req *model.CreateUserRequest) (*model.User, error) {
	role, err := s.roles.GetByName(ctx, req.Role)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.Validation(fmt.Sprintf("unknown role %q", req.Role))
		}
		return nil, fmt.Errorf("failed to look up role: %w", err)
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username:     req.Username,
		PasswordHash: hash,
		FullName:     req.FullName,
		Email:        req.Email,
		RoleID:       role.ID,
		RoleName:     role.Name,
	}

	if role.Name != model.RolePatient {
		if err := s.users.Create(ctx, user); err != nil {
			return nil, err
		}
		return user, nil
	}

	details := &model.PatientDetails{
		MedicalNotes: "",
		Phone:        req.Phone,
	}
	if req.DateOfBirth != "" {
		dob, err := time.Parse("2006-01-02", req.DateOfBirth)
		if err != nil {
			return nil, apperror.Validation("date_of_birth must be YYYY-MM-DD")
		}
		details.DateOfBirth = &dob
	}

	if err := s.users.CreateWithPatientDetails(ctx, user, details); err != nil {
		return nil, err
	}
	return user, nil
}

// ListUsers returns the full directory ordered by role then name.
func (s *Service) ListUsers(ctx context.Context) ([]*model.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// CreateAssignment pairs a doctor with a patient. Both participants must
// carry the matching role; duplicate pairs are rejected.
func (s *Service) CreateAssignment(ctx context.Context, req *model.CreateAssignmentRequest) (*model.Assignment, error) {
	doctorID, err := uuid.Parse(req.DoctorID)
	if err != nil {
		return nil, apperror.Validation("invalid doctor id")
	}
	patientID, err := uuid.Parse(req.PatientID)
	if err != nil {
		return nil, apperror.Validation("invalid patient id")
	}

	doctor, err := s.users.Get(ctx, doctorID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NotFound()
		}
		return nil, fmt.Errorf("failed to get doctor: %w", err)
	}
	if doctor.RoleName != model.RoleDoctor {
		return nil, apperror.Validation("doctor_id must reference a doctor-role user")
	}

	patient, err := s.users.Get(ctx, patientID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NotFound()
		}
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}
	if patient.RoleName != model.RolePatient {
		return nil, apperror.Validation("patient_id must reference a patient-role user")
	}

	assignment := &model.Assignment{
		DoctorID:  doctorID,
		PatientID: patientID,
	}
	if err := s.assignments.Create(ctx, assignment); err != nil {
		return nil, err
	}

	return assignment, nil
}
