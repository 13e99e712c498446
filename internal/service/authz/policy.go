// Package authz is the single decision point for record access. Handlers
// never branch on roles themselves; every read or write of patient data goes
// through CanReadRecord or CanWriteRecord.
package authz

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/jwalitptl/patient-portal/internal/model"
	"github.com/jwalitptl/patient-portal/internal/repository"
)

const (
	decisionCacheTTL     = 30 * time.Second
	decisionCacheCleanup = time.Minute
)

type Service struct {
	assignments repository.AssignmentRepository
	decisions   *cache.Cache
}

func NewService(assignments repository.AssignmentRepository) *Service {
	return &Service{
		assignments: assignments,
		decisions:   cache.New(decisionCacheTTL, decisionCacheCleanup),
	}
}

// CanReadRecord decides whether the actor may read the patient record owned
// by targetUserID:
//   - admin: any record
//   - doctor: only patients in their assignment set
//   - patient: only their own record
//
// Unknown roles and lookup failures deny.
func (s *Service) CanReadRecord(ctx context.Context, actor model.Identity, targetUserID uuid.UUID) (bool, error) {
	switch actor.Role {
	case model.RoleAdmin:
		return true, nil
	case model.RoleDoctor:
		return s.assigned(ctx, actor.UserID, targetUserID)
	case model.RolePatient:
		return actor.UserID == targetUserID, nil
	default:
		return false, nil
	}
}

// CanWriteRecord decides whether the actor may modify the patient record
// owned by targetUserID. Only assigned doctors write; admins have no write
// grant over patient details and patient self-writes are disabled.
func (s *Service) CanWriteRecord(ctx context.Context, actor model.Identity, targetUserID uuid.UUID) (bool, error) {
	if actor.Role != model.RoleDoctor {
		return false, nil
	}
	return s.assigned(ctx, actor.UserID, targetUserID)
}

func (s *Service) assigned(ctx context.Context, doctorID, patientID uuid.UUID) (bool, error) {
	key := doctorID.String() + "|" + patientID.String()
	if cached, found := s.decisions.Get(key); found {
		return cached.(bool), nil
	}

	exists, err := s.assignments.Exists(ctx, doctorID, patientID)
	if err != nil {
		return false, fmt.Errorf("failed to check assignment: %w", err)
	}

	s.decisions.Set(key, exists, cache.DefaultExpiration)
	return exists, nil
}
