package models

type PaymentStatus string

const (
	PaymentPaid    PaymentStatus = "PAID"
	PaymentPending PaymentStatus = "PENDING"
	PaymentOverdue PaymentStatus = "OVERDUE"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPaid, PaymentPending, PaymentOverdue:
		return true
	}
	return false
}

// Payment is a maintenance bill. Status only ever moves to PAID.
type Payment struct {
	ID         string        `json:"id" validate:"required"`
	UserID     string        `json:"userId" validate:"required"`
	UserName   string        `json:"userName"`
	UnitNumber string        `json:"unitNumber"`
	Amount     float64       `json:"amount" validate:"gt=0"`
	Month      string        `json:"month" validate:"required"`
	DueDate    string        `json:"dueDate" validate:"required"`
	Status     PaymentStatus `json:"status" validate:"required,oneof=PAID PENDING OVERDUE"`
}
