// Package grievance implements the grievance lifecycle: submission with
// category-based deadlines, owner edits, administrative status transitions,
// and the recurring escalation sweep over overdue items. Every successful
// mutation publishes exactly one post-mutation snapshot to the Notifier.
package grievance

import (
	"fmt"
	"log"
	"time"

	"gramalert/backend/internal/config"
	"gramalert/backend/internal/models"
	"gramalert/backend/internal/storage"
)

// Notifier receives the post-mutation snapshot of every grievance change.
// Delivery is fire-and-forget: a failing notifier never rolls back or fails
// the mutation that triggered it.
type Notifier interface {
	PublishGrievance(snapshot models.GrievanceSnapshot) error
}

// Service handles the business logic for grievances.
type Service struct {
	Storage  storage.Storage
	Notifier Notifier

	// Now is swappable for tests; defaults to time.Now.
	Now func() time.Time
}

// NewService creates a new grievance service.
func NewService(s storage.Storage, n Notifier) *Service {
	return &Service{Storage: s, Notifier: n, Now: time.Now}
}

// SubmitInput carries the caller-supplied fields of a new grievance. The
// request layer has already authenticated the owner and stored any attachment;
// FileURL is just the opaque reference it got back.
type SubmitInput struct {
	Title       string
	Description string
	Category    string
	Latitude    *float64
	Longitude   *float64
	FileURL     string
}

// Submit files a new grievance for ownerID and returns its snapshot.
func (s *Service) Submit(ownerID string, in SubmitInput) (*models.GrievanceSnapshot, error) {
	if in.Title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	}
	if in.Description == "" {
		return nil, fmt.Errorf("%w: description is required", ErrValidation)
	}
	if in.Category == "" {
		return nil, fmt.Errorf("%w: category is required", ErrValidation)
	}

	now := s.Now()
	deadline := ResolutionDeadline(in.Category, now)

	g := &models.Grievance{
		Title:       in.Title,
		Description: in.Description,
		Category:    in.Category,
		Status:      config.InitialStatus,
		Priority:    config.InitialPriority,
		OwnerID:     ownerID,
		Latitude:    in.Latitude,
		Longitude:   in.Longitude,
		FileURL:     in.FileURL,
		Deadline:    &deadline,
		ReportCount: config.InitialReportCount,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.Storage.CreateGrievance(g); err != nil {
		return nil, err
	}

	snapshot := buildSnapshot(s.Storage, *g)
	publish(s.Notifier, snapshot)
	return &snapshot, nil
}

// UpdateOwned replaces the title, description, and category of a grievance
// the caller owns. The deadline stays as computed at submission even when
// the category changes.
func (s *Service) UpdateOwned(id, ownerID, title, description, category string) (*models.GrievanceSnapshot, error) {
	g, err := s.Storage.GetGrievanceByID(id)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, ErrNotFound
	}
	if g.OwnerID != ownerID {
		return nil, ErrNotOwner
	}

	now := s.Now()
	err = s.Storage.UpdateGrievanceFields(id, map[string]interface{}{
		"title":       title,
		"description": description,
		"category":    category,
		"updated_at":  now,
	})
	if err != nil {
		return nil, err
	}

	g.Title = title
	g.Description = description
	g.Category = category
	g.UpdatedAt = now

	snapshot := buildSnapshot(s.Storage, *g)
	publish(s.Notifier, snapshot)
	return &snapshot, nil
}

// TransitionStatus moves a grievance to newStatus. Statuses form an open
// string set; the only rejected value is the empty one. The first transition
// to the resolved status stamps resolved_at, repeats leave it untouched.
func (s *Service) TransitionStatus(id, newStatus string) (*models.GrievanceSnapshot, error) {
	if newStatus == "" {
		return nil, fmt.Errorf("%w: status is required", ErrValidation)
	}

	g, err := s.Storage.GetGrievanceByID(id)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, ErrNotFound
	}

	now := s.Now()
	fields := map[string]interface{}{
		"status":     newStatus,
		"updated_at": now,
	}
	if newStatus == config.ResolvedStatus && g.ResolvedAt == nil {
		fields["resolved_at"] = now
		g.ResolvedAt = &now
	}

	if err := s.Storage.UpdateGrievanceFields(id, fields); err != nil {
		return nil, err
	}

	g.Status = newStatus
	g.UpdatedAt = now

	snapshot := buildSnapshot(s.Storage, *g)
	publish(s.Notifier, snapshot)
	return &snapshot, nil
}

// ListAll returns every grievance in insertion order, with owner names
// resolved in one batch query.
func (s *Service) ListAll() ([]models.GrievanceSnapshot, error) {
	grievances, err := s.Storage.GetAllGrievances()
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var ownerIDs []string
	for _, g := range grievances {
		if !seen[g.OwnerID] {
			seen[g.OwnerID] = true
			ownerIDs = append(ownerIDs, g.OwnerID)
		}
	}

	userMap, err := s.Storage.GetUsersByIDs(ownerIDs)
	if err != nil {
		return nil, err
	}

	snapshots := make([]models.GrievanceSnapshot, 0, len(grievances))
	for _, g := range grievances {
		snapshots = append(snapshots, toSnapshot(g, displayName(userMap, g.OwnerID)))
	}
	return snapshots, nil
}

// ListByOwner returns the caller's own grievances, most recent first.
func (s *Service) ListByOwner(ownerID string) ([]models.GrievanceSnapshot, error) {
	grievances, err := s.Storage.GetGrievancesByOwner(ownerID)
	if err != nil {
		return nil, err
	}

	name := config.UnknownUserName
	if user, err := s.Storage.GetUserByID(ownerID); err == nil && user != nil {
		name = user.Username
	}

	snapshots := make([]models.GrievanceSnapshot, 0, len(grievances))
	for _, g := range grievances {
		snapshots = append(snapshots, toSnapshot(g, name))
	}
	return snapshots, nil
}

// buildSnapshot resolves the owner's display name and converts the grievance
// to its wire form. A failed lookup degrades to the unknown-user name.
func buildSnapshot(st storage.Storage, g models.Grievance) models.GrievanceSnapshot {
	name := config.UnknownUserName
	if user, err := st.GetUserByID(g.OwnerID); err == nil && user != nil {
		name = user.Username
	}
	return toSnapshot(g, name)
}

func toSnapshot(g models.Grievance, submittedBy string) models.GrievanceSnapshot {
	return models.GrievanceSnapshot{
		ID:              g.ID,
		Title:           g.Title,
		Description:     g.Description,
		Status:          g.Status,
		Priority:        g.Priority,
		Category:        g.Category,
		CreatedAt:       g.CreatedAt.Format(time.RFC3339),
		SubmittedBy:     submittedBy,
		Latitude:        g.Latitude,
		Longitude:       g.Longitude,
		FileURL:         g.FileURL,
		IsOverdue:       g.IsOverdue,
		ReportCount:     g.ReportCount,
		EscalationLevel: g.EscalationLevel,
	}
}

func displayName(userMap map[string]models.User, ownerID string) string {
	if user, ok := userMap[ownerID]; ok {
		return user.Username
	}
	return config.UnknownUserName
}

// publish delivers the snapshot and swallows any failure: the mutation has
// already been persisted and must not be rolled back over a notification.
func publish(n Notifier, snapshot models.GrievanceSnapshot) {
	if err := n.PublishGrievance(snapshot); err != nil {
		log.Printf("ERROR: Failed to publish grievance %s: %v", snapshot.ID, err)
	}
}
