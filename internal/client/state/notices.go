package state

import "github.com/dmitrijs2005/civichub/internal/models"

// Notices returns the notice board, newest first.
func (s *Store) Notices() []models.Notice {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.notices, nil)
}

func (s *Store) SetNotices(list []models.Notice) {
	s.mu.Lock()
	s.notices = clone(list, nil)
	s.mu.Unlock()
	s.changed()
}

func (s *Store) PrependNotice(n models.Notice) {
	s.mu.Lock()
	s.notices = prepend(s.notices, n)
	s.mu.Unlock()
	s.changed()
}

// ReconcileNotice replaces the provisional notice tempID with saved.
func (s *Store) ReconcileNotice(tempID string, saved models.Notice) bool {
	s.mu.Lock()
	ok := replace(s.notices, tempID, noticeID, saved)
	s.mu.Unlock()
	if ok {
		s.changed()
	}
	return ok
}

// RemoveNotice reports whether a notice with id was removed.
func (s *Store) RemoveNotice(id string) bool {
	s.mu.Lock()
	var ok bool
	s.notices, ok = remove(s.notices, id, noticeID)
	s.mu.Unlock()
	if ok {
		s.changed()
	}
	return ok
}
