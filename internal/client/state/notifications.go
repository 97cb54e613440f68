package state

import "github.com/dmitrijs2005/civichub/internal/models"

func (s *Store) Notifications() []models.Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.notifications, nil)
}

func (s *Store) PrependNotification(n models.Notification) {
	s.mu.Lock()
	s.notifications = prepend(s.notifications, n)
	s.mu.Unlock()
	s.changed()
}

func (s *Store) MarkNotificationRead(id string) bool {
	s.mu.Lock()
	ok := update(s.notifications, id, notificationID, func(n *models.Notification) { n.IsRead = true })
	s.mu.Unlock()
	if ok {
		s.changed()
	}
	return ok
}

// MarkAllNotificationsRead marks every notification of userID as read and
// returns how many changed.
func (s *Store) MarkAllNotificationsRead(userID string) int {
	s.mu.Lock()
	n := 0
	for i := range s.notifications {
		if s.notifications[i].UserID == userID && !s.notifications[i].IsRead {
			s.notifications[i].IsRead = true
			n++
		}
	}
	s.mu.Unlock()
	if n > 0 {
		s.changed()
	}
	return n
}
