package models

import "time"

// NotificationType says which area of the app raised a notification.
type NotificationType string

const (
	NotificationComplaint NotificationType = "COMPLAINT"
	NotificationNotice    NotificationType = "NOTICE"
	NotificationPayment   NotificationType = "PAYMENT"
	NotificationSecurity  NotificationType = "SECURITY"
	NotificationSystem    NotificationType = "SYSTEM"
)

// Notification is process-local and never sent to a gateway.
type Notification struct {
	ID        string
	UserID    string
	Title     string
	Message   string
	Type      NotificationType
	IsRead    bool
	CreatedAt time.Time
	TargetTab string
}
