package patient

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/patient-portal/internal/handler"
	"github.com/jwalitptl/patient-portal/internal/middleware"
	patientService "github.com/jwalitptl/patient-portal/internal/service/patient"
)

type Handler struct {
	patients patientService.PatientService
}

func NewHandler(patients patientService.PatientService) *Handler {
	return &Handler{patients: patients}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/record", h.GetRecord)
}

// GetRecord returns the logged-in patient's own record, including their
// assigned doctors. Patients have no write path.
func (h *Handler) GetRecord(c *gin.Context) {
	ident, ok := middleware.IdentityFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("authentication required"))
		return
	}

	record, err := h.patients.GetRecord(c.Request.Context(), ident, ident.UserID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(record))
}
