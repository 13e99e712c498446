package patient

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jwalitptl/patient-portal/internal/apperror"
	"github.com/jwalitptl/patient-portal/internal/model"
	"github.com/jwalitptl/patient-portal/internal/repository"
	"github.com/jwalitptl/patient-portal/internal/service/authz"
)

type PatientService interface {
	GetRecord(ctx context.Context, actor model.Identity, targetUserID uuid.UUID) (*model.PatientRecord, error)
	UpdateRecord(ctx context.Context, actor model.Identity, targetUserID uuid.UUID, req *model.UpdatePatientDetailsRequest) (*model.PatientDetails, error)
	ListForDoctor(ctx context.Context, doctorID uuid.UUID) ([]*model.PatientSummary, error)
	ListAll(ctx context.Context) ([]*model.PatientSummary, error)
}

type Service struct {
	users       repository.UserRepository
	details     repository.PatientDetailsRepository
	assignments repository.AssignmentRepository
	policy      *authz.Service
}

func NewService(users repository.UserRepository, details repository.PatientDetailsRepository,
	assignments repository.AssignmentRepository, policy *authz.Service) *Service {
	return &Service{
		users:       users,
		details:     details,
		assignments: assignments,
		policy:      policy,
	}
}

// GetRecord returns a patient's record after the policy check. A denial is
// reported as not found before any protected field is read, so callers
// cannot probe which patient ids exist.
func (s *Service) GetRecord(ctx context.Context, actor model.Identity, targetUserID uuid.UUID) (*model.PatientRecord, error) {
	allowed, err := s.policy.CanReadRecord(ctx, actor, targetUserID)
	if err != nil {
		return nil, fmt.Errorf("policy check failed: %w", err)
	}
	if !allowed {
		return nil, apperror.NotFound()
	}

	user, err := s.users.Get(ctx, targetUserID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NotFound()
		}
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}
	if user.RoleName != model.RolePatient {
		return nil, apperror.NotFound()
	}

	record := &model.PatientRecord{Patient: user, Doctors: []*model.User{}}

	details, err := s.details.GetByUserID(ctx, targetUserID)
	if err != nil && !apperror.IsNotFound(err) {
		return nil, fmt.Errorf("failed to get patient details: %w", err)
	}
	record.Details = details

	doctors, err := s.assignments.ListDoctorsForPatient(ctx, targetUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list assigned doctors: %w", err)
	}
	record.Doctors = doctors

	return record, nil
}

// UpdateRecord applies a doctor's edit of medical notes and phone. The first
// edit of a patient with no details row creates one.
func (s *Service) UpdateRecord(ctx context.Context, actor model.Identity, targetUserID uuid.UUID, req *model.UpdatePatientDetailsRequest) (*model.PatientDetails, error) {
	allowed, err := s.policy.CanWriteRecord(ctx, actor, targetUserID)
	if err != nil {
		return nil, fmt.Errorf("policy check failed: %w", err)
	}
	if !allowed {
		return nil, apperror.NotFound()
	}

	user, err := s.users.Get(ctx, targetUserID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NotFound()
		}
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}
	if user.RoleName != model.RolePatient {
		return nil, apperror.NotFound()
	}

	details, err := s.details.GetByUserID(ctx, targetUserID)
	if err != nil {
		if !apperror.IsNotFound(err) {
			return nil, fmt.Errorf("failed to get patient details: %w", err)
		}
		details = &model.PatientDetails{UserID: targetUserID}
	}

	if req.MedicalNotes != nil {
		details.MedicalNotes = *req.MedicalNotes
	}
	if req.Phone != nil {
		details.Phone = *req.Phone
	}

	if err := s.details.Upsert(ctx, details); err != nil {
		return nil, fmt.Errorf("failed to save patient details: %w", err)
	}

	return details, nil
}

// ListForDoctor returns the records visible to a doctor: exactly their
// assignment set. The filter is the policy of rule 2 applied as a query.
func (s *Service) ListForDoctor(ctx context.Context, doctorID uuid.UUID) ([]*model.PatientSummary, error) {
	summaries, err := s.details.ListForDoctor(ctx, doctorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list assigned patients: %w", err)
	}
	return summaries, nil
}

// ListAll returns every patient record. Reachable only through the admin
// role gate.
func (s *Service) ListAll(ctx context.Context) ([]*model.PatientSummary, error) {
	summaries, err := s.details.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}
	return summaries, nil
}
