package handler

import (
	"net/http"

	"gramalert/backend/internal/grievance"

	"github.com/gin-gonic/gin"
)

type createGrievanceRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	// FileURL is the reference returned by the upload endpoint of the file
	// storage collaborator; the grievance core stores it untouched.
	FileURL string `json:"fileUrl"`
}

// CreateGrievance handles POST /grievances.
func (h *Handler) CreateGrievance(c *gin.Context) {
	var req createGrievanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	snapshot, err := h.Grievances.Submit(currentUser(c).ID, grievance.SubmitInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		FileURL:     req.FileURL,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, snapshot)
}

// GetAllGrievances handles GET /grievances.
func (h *Handler) GetAllGrievances(c *gin.Context) {
	snapshots, err := h.Grievances.ListAll()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, snapshots)
}

// GetMyGrievances handles GET /grievances/my-requests.
func (h *Handler) GetMyGrievances(c *gin.Context) {
	snapshots, err := h.Grievances.ListByOwner(currentUser(c).ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, snapshots)
}

type updateGrievanceRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

// UpdateMyGrievance handles PUT /grievances/:id. Only the owner may edit.
func (h *Handler) UpdateMyGrievance(c *gin.Context) {
	var req updateGrievanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	snapshot, err := h.Grievances.UpdateOwned(
		c.Param("id"), currentUser(c).ID,
		req.Title, req.Description, req.Category,
	)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, snapshot)
}

// UpdateGrievanceStatus handles PATCH /grievances/:id, an administrative
// status transition.
func (h *Handler) UpdateGrievanceStatus(c *gin.Context) {
	var updates map[string]string
	if err := c.ShouldBindJSON(&updates); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	snapshot, err := h.Grievances.TransitionStatus(c.Param("id"), updates["status"])
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, snapshot)
}
