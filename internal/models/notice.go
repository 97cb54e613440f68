package models

import "time"

type NoticeCategory string

const (
	NoticeGeneral     NoticeCategory = "General"
	NoticeUrgent      NoticeCategory = "Urgent"
	NoticeEvent       NoticeCategory = "Event"
	NoticeMaintenance NoticeCategory = "Maintenance"
)

func (c NoticeCategory) Valid() bool {
	switch c {
	case NoticeGeneral, NoticeUrgent, NoticeEvent, NoticeMaintenance:
		return true
	}
	return false
}

// Notice is a bulletin posted by an administrator.
type Notice struct {
	ID        string         `json:"id" validate:"required"`
	Title     string         `json:"title" validate:"required"`
	Content   string         `json:"content"`
	Category  NoticeCategory `json:"category" validate:"required,oneof=General Urgent Event Maintenance"`
	PostedBy  string         `json:"postedBy"`
	CreatedAt time.Time      `json:"createdAt" validate:"required"`
}
