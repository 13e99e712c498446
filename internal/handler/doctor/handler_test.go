package doctor

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/patient-portal/internal/apperror"
	"github.com/jwalitptl/patient-portal/internal/middleware"
	"github.com/jwalitptl/patient-portal/internal/model"
)

type fakePatientService struct {
	doctorID uuid.UUID
	patient  *model.User
	details  *model.PatientDetails
}

func (f *fakePatientService) GetRecord(ctx context.Context, actor model.Identity, targetUserID uuid.UUID) (*model.PatientRecord, error) {
	if actor.UserID != f.doctorID || targetUserID != f.patient.ID {
		return nil, apperror.NotFound()
	}
	return &model.PatientRecord{Patient: f.patient, Details: f.details}, nil
}

func (f *fakePatientService) UpdateRecord(ctx context.Context, actor model.Identity, targetUserID uuid.UUID, req *model.UpdatePatientDetailsRequest) (*model.PatientDetails, error) {
	if actor.UserID != f.doctorID || targetUserID != f.patient.ID {
		return nil, apperror.NotFound()
	}
	if req.MedicalNotes != nil {
		f.details.MedicalNotes = *req.MedicalNotes
	}
	return f.details, nil
}

func (f *fakePatientService) ListForDoctor(ctx context.Context, doctorID uuid.UUID) ([]*model.PatientSummary, error) {
	return []*model.PatientSummary{{UserID: f.patient.ID, FullName: f.patient.FullName}}, nil
}

func (f *fakePatientService) ListAll(ctx context.Context) ([]*model.PatientSummary, error) {
	return nil, nil
}

func setupRouter(svc *fakePatientService, actor model.Identity) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(middleware.ErrorHandler())
	engine.Use(func(c *gin.Context) {
		c.Set("identity", actor)
		c.Next()
	})
	NewHandler(svc).RegisterRoutes(engine.Group("/"))
	return engine
}

func newFakeService() *fakePatientService {
	return &fakePatientService{
		doctorID: uuid.New(),
		patient: &model.User{
			Base:     model.Base{ID: uuid.New()},
			FullName: "Jane Wilson",
			RoleName: model.RolePatient,
		},
		details: &model.PatientDetails{MedicalNotes: "stable"},
	}
}

func TestGetPatientAssigned(t *testing.T) {
	svc := newFakeService()
	router := setupRouter(svc, model.Identity{UserID: svc.doctorID, Role: model.RoleDoctor})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/patients/"+svc.patient.ID.String(), nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Status string `json:"status"`
		Data   struct {
			Patient struct {
				FullName string `json:"full_name"`
			} `json:"patient"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "success", resp.Status)
	assert.Equal(t, "Jane Wilson", resp.Data.Patient.FullName)
}

func TestGetPatientUnassignedReadsAsNotFound(t *testing.T) {
	svc := newFakeService()
	otherDoctor := model.Identity{UserID: uuid.New(), Role: model.RoleDoctor}
	router := setupRouter(svc, otherDoctor)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/patients/"+svc.patient.ID.String(), nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), apperror.MsgNotFound)
	assert.NotContains(t, w.Body.String(), "assigned", "denial must not explain itself")
}

func TestGetPatientBadID(t *testing.T) {
	svc := newFakeService()
	router := setupRouter(svc, model.Identity{UserID: svc.doctorID, Role: model.RoleDoctor})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/patients/not-a-uuid", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdatePatientNotes(t *testing.T) {
	svc := newFakeService()
	router := setupRouter(svc, model.Identity{UserID: svc.doctorID, Role: model.RoleDoctor})

	body := `{"medical_notes": "improving"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/patients/"+svc.patient.ID.String(), strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "improving", svc.details.MedicalNotes)
}

func TestListPatients(t *testing.T) {
	svc := newFakeService()
	router := setupRouter(svc, model.Identity{UserID: svc.doctorID, Role: model.RoleDoctor})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/patients", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Jane Wilson")
}
