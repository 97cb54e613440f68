package services

import (
	"context"

	"github.com/dmitrijs2005/civichub/internal/models"
)

// PayBill marks a payment PAID. There is no way back.
func (m *mutationService) PayBill(ctx context.Context, id string) error {
	ok := m.store.UpdatePayment(id, func(p *models.Payment) {
		p.Status = models.PaymentPaid
	})
	if !ok {
		return ErrNotFound
	}

	if u := m.store.Identity(); u != nil {
		m.notify(u.ID, "Payment Successful",
			"Thank you! Your payment has been marked as received.",
			models.NotificationPayment, "payments")
	}

	m.bg.Go(ctx, "pay bill", func(ctx context.Context) error {
		return m.gw.MarkPaymentPaid(ctx, id)
	})
	return nil
}
