package models

// GrievanceSnapshot is the wire form of a grievance: what API responses
// return and what the feed hub broadcasts after every mutation. Owner
// resolution happens at snapshot time, so SubmittedBy carries a display
// name, not an ID.
type GrievanceSnapshot struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	Status          string   `json:"status"`
	Priority        string   `json:"priority"`
	Category        string   `json:"category"`
	CreatedAt       string   `json:"createdAt"` // ISO-8601
	SubmittedBy     string   `json:"submittedBy"`
	Latitude        *float64 `json:"latitude"`
	Longitude       *float64 `json:"longitude"`
	FileURL         string   `json:"fileUrl"`
	IsOverdue       bool     `json:"isOverdue"`
	ReportCount     int      `json:"reportCount"`
	EscalationLevel int      `json:"escalationLevel"`
}
