package handler

import (
	"errors"
	"net/http"

	"gramalert/backend/internal/feedhub"
	"gramalert/backend/internal/grievance"
	"gramalert/backend/internal/storage"

	"github.com/gin-gonic/gin"
)

// Handler holds the dependencies shared by all HTTP endpoints. Identity is
// resolved here (JWT → user row) and handed to the grievance service as a
// plain owner ID; the service itself never sees a token.
type Handler struct {
	Hub        *feedhub.ManagerService
	Grievances *grievance.Service
	Storage    storage.Storage
}

func NewHandler(hub *feedhub.ManagerService, grievances *grievance.Service, s storage.Storage) *Handler {
	return &Handler{Hub: hub, Grievances: grievances, Storage: s}
}

// respondError maps the grievance error taxonomy onto HTTP statuses.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, grievance.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, grievance.ErrNotOwner):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, grievance.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
