package state

import "github.com/dmitrijs2005/civichub/internal/models"

// ComplaintsFor returns the complaints raised by userID.
func (s *Store) ComplaintsFor(userID string) []models.Complaint {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Complaint, 0)
	for _, c := range s.complaints {
		if c.UserID == userID {
			out = append(out, c.Clone())
		}
	}
	return out
}

// PaymentsFor returns the bills of userID.
func (s *Store) PaymentsFor(userID string) []models.Payment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Payment, 0)
	for _, p := range s.payments {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out
}

// UnreadNotifications returns the unread notifications of userID.
func (s *Store) UnreadNotifications(userID string) []models.Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Notification, 0)
	for _, n := range s.notifications {
		if n.UserID == userID && !n.IsRead {
			out = append(out, n)
		}
	}
	return out
}

// Stats is what the dashboards show. Resident figures are scoped to the
// user; admin figures cover the whole society.
type Stats struct {
	PendingDues      float64
	ActiveComplaints int
	OpenComplaints   int
	Notices          int
	VisitorsInside   int
	VisitorsExited   int
	Collected        float64
	Outstanding      float64
}

func (s *Store) Stats(u *models.User) Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var st Stats
	if u == nil {
		return st
	}
	admin := u.IsAdmin()
	st.Notices = len(s.notices)

	for _, c := range s.complaints {
		if !admin && c.UserID != u.ID {
			continue
		}
		if c.Status != models.ComplaintResolved {
			st.ActiveComplaints++
		}
		if c.Status == models.ComplaintOpen {
			st.OpenComplaints++
		}
	}

	for _, p := range s.payments {
		if !admin && p.UserID != u.ID {
			continue
		}
		if p.Status == models.PaymentPaid {
			st.Collected += p.Amount
		} else {
			st.Outstanding += p.Amount
		}
	}
	if !admin {
		st.PendingDues = st.Outstanding
	}

	for _, v := range s.visitors {
		if !admin && v.ResidentID != u.ID {
			continue
		}
		switch v.Status {
		case models.VisitorIn:
			st.VisitorsInside++
		case models.VisitorOut:
			st.VisitorsExited++
		}
	}
	return st
}
