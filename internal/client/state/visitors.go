package state

import "github.com/dmitrijs2005/civichub/internal/models"

func (s *Store) Visitors() []models.Visitor {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.visitors, cloneVisitor)
}

func (s *Store) Visitor(id string) (models.Visitor, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := indexOf(s.visitors, id, visitorID)
	if i < 0 {
		return models.Visitor{}, false
	}
	return s.visitors[i].Clone(), true
}

func (s *Store) SetVisitors(list []models.Visitor) {
	s.mu.Lock()
	s.visitors = clone(list, cloneVisitor)
	s.mu.Unlock()
	s.changed()
}

func (s *Store) PrependVisitor(v models.Visitor) {
	s.mu.Lock()
	s.visitors = prepend(s.visitors, v.Clone())
	s.mu.Unlock()
	s.changed()
}

// UpdateVisitor applies fn to the visitor with id.
func (s *Store) UpdateVisitor(id string, fn func(*models.Visitor)) bool {
	s.mu.Lock()
	ok := update(s.visitors, id, visitorID, fn)
	s.mu.Unlock()
	if ok {
		s.changed()
	}
	return ok
}

// ReconcileVisitor replaces the provisional visitor tempID with saved.
func (s *Store) ReconcileVisitor(tempID string, saved models.Visitor) bool {
	s.mu.Lock()
	ok := replace(s.visitors, tempID, visitorID, saved.Clone())
	s.mu.Unlock()
	if ok {
		s.changed()
	}
	return ok
}
