package models

import "time"

// Priority ranks a complaint.
type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
	PriorityUrgent Priority = "URGENT"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// ComplaintStatus is where a complaint stands.
type ComplaintStatus string

const (
	ComplaintOpen       ComplaintStatus = "OPEN"
	ComplaintInProgress ComplaintStatus = "IN_PROGRESS"
	ComplaintResolved   ComplaintStatus = "RESOLVED"
)

func (s ComplaintStatus) Valid() bool {
	switch s {
	case ComplaintOpen, ComplaintInProgress, ComplaintResolved:
		return true
	}
	return false
}

// DefaultComplaintCategory is used when a complaint has no category.
const DefaultComplaintCategory = "General"

// Complaint is a maintenance ticket. ResolvedAt is set only when Status is
// RESOLVED.
type Complaint struct {
	ID          string          `json:"id" validate:"required"`
	UserID      string          `json:"userId" validate:"required"`
	UserName    string          `json:"userName"`
	UnitNumber  string          `json:"unitNumber"`
	Title       string          `json:"title" validate:"required"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Priority    Priority        `json:"priority" validate:"required,oneof=LOW MEDIUM HIGH URGENT"`
	Status      ComplaintStatus `json:"status" validate:"required,oneof=OPEN IN_PROGRESS RESOLVED"`
	CreatedAt   time.Time       `json:"createdAt" validate:"required"`
	ResolvedAt  *time.Time      `json:"resolvedAt,omitempty"`
}

// ComplaintPatch is the narrowed update payload for a complaint.
type ComplaintPatch struct {
	Status     ComplaintStatus `json:"status" validate:"required,oneof=OPEN IN_PROGRESS RESOLVED"`
	ResolvedAt *time.Time      `json:"resolvedAt,omitempty"`
}

// Clone returns a deep copy.
func (c Complaint) Clone() Complaint {
	if c.ResolvedAt != nil {
		t := *c.ResolvedAt
		c.ResolvedAt = &t
	}
	return c
}
