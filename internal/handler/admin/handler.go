package admin

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jwalitptl/patient-portal/internal/handler"
	"github.com/jwalitptl/patient-portal/internal/model"
)

// UserService is the provisioning surface the admin handler drives.
type UserService interface {
	CreateUser(ctx context.Context, req *model.CreateUserRequest) (*model.User, error)
	ListUsers(ctx context.Context) ([]*model.User, error)
	CreateAssignment(ctx context.Context, req *model.CreateAssignmentRequest) (*model.Assignment, error)
}

// PatientLister is the admin's read-only view over patient records.
type PatientLister interface {
	ListAll(ctx context.Context) ([]*model.PatientSummary, error)
	ListForDoctor(ctx context.Context, doctorID uuid.UUID) ([]*model.PatientSummary, error)
}

type Handler struct {
	users    UserService
	patients PatientLister
}

func NewHandler(users UserService, patients PatientLister) *Handler {
	return &Handler{
		users:    users,
		patients: patients,
	}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/users", h.ListUsers)
	r.POST("/users", h.CreateUser)
	r.GET("/patients", h.ListPatients)
	r.POST("/assignments", h.CreateAssignment)
	r.GET("/doctors/:id/patients", h.ListDoctorPatients)
}

// ListUsers returns every account grouped by role, the admin dashboard view.
func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.users.ListUsers(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(users))
}

func (h *Handler) CreateUser(c *gin.Context) {
	var req model.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	user, err := h.users.CreateUser(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(user))
}

// ListPatients returns every patient with their details. Admin visibility is
// read-only: there is no admin write path over patient details.
func (h *Handler) ListPatients(c *gin.Context) {
	patients, err := h.patients.ListAll(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(patients))
}

func (h *Handler) CreateAssignment(c *gin.Context) {
	var req model.CreateAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	assignment, err := h.users.CreateAssignment(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(assignment))
}

func (h *Handler) ListDoctorPatients(c *gin.Context) {
	doctorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid doctor ID"))
		return
	}

	patients, err := h.patients.ListForDoctor(c.Request.Context(), doctorID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(patients))
}
