package models

import "time"

type VisitorStatus string

const (
	VisitorIn  VisitorStatus = "IN"
	VisitorOut VisitorStatus = "OUT"
)

// Visitor is one entry in the gate log. ExitTime is set once Status is OUT.
type Visitor struct {
	ID           string        `json:"id" validate:"required"`
	Name         string        `json:"name" validate:"required"`
	Phone        string        `json:"phone"`
	Purpose      string        `json:"purpose"`
	ResidentID   string        `json:"residentId"`
	ResidentName string        `json:"residentName"`
	UnitNumber   string        `json:"unitNumber"`
	EntryTime    time.Time     `json:"entryTime" validate:"required"`
	ExitTime     *time.Time    `json:"exitTime,omitempty"`
	Status       VisitorStatus `json:"status" validate:"required,oneof=IN OUT"`
}

// VisitorExit is the update payload sent when a visitor leaves.
type VisitorExit struct {
	Status   VisitorStatus `json:"status"`
	ExitTime time.Time     `json:"exitTime"`
}

// Clone returns a deep copy.
func (v Visitor) Clone() Visitor {
	if v.ExitTime != nil {
		t := *v.ExitTime
		v.ExitTime = &t
	}
	return v
}
