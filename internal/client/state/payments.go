package state

import "github.com/dmitrijs2005/civichub/internal/models"

func (s *Store) Payments() []models.Payment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.payments, nil)
}

func (s *Store) Payment(id string) (models.Payment, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := indexOf(s.payments, id, paymentID)
	if i < 0 {
		return models.Payment{}, false
	}
	return s.payments[i], true
}

func (s *Store) SetPayments(list []models.Payment) {
	s.mu.Lock()
	s.payments = clone(list, nil)
	s.mu.Unlock()
	s.changed()
}

func (s *Store) UpdatePayment(id string, fn func(*models.Payment)) bool {
	s.mu.Lock()
	ok := update(s.payments, id, paymentID, fn)
	s.mu.Unlock()
	if ok {
		s.changed()
	}
	return ok
}
