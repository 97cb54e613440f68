package state

import "github.com/dmitrijs2005/civichub/internal/models"

// ComplaintSnapshot is a deep copy of the complaint collection.
type ComplaintSnapshot struct {
	items []models.Complaint
}

func (s *Store) Complaints() []models.Complaint {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.complaints, cloneComplaint)
}

func (s *Store) Complaint(id string) (models.Complaint, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := indexOf(s.complaints, id, complaintID)
	if i < 0 {
		return models.Complaint{}, false
	}
	return s.complaints[i].Clone(), true
}

func (s *Store) SetComplaints(list []models.Complaint) {
	s.mu.Lock()
	s.complaints = clone(list, cloneComplaint)
	s.mu.Unlock()
	s.changed()
}

func (s *Store) PrependComplaint(c models.Complaint) {
	s.mu.Lock()
	s.complaints = prepend(s.complaints, c.Clone())
	s.mu.Unlock()
	s.changed()
}

// UpdateComplaint applies fn to the complaint with id. It reports whether
// the complaint was present.
func (s *Store) UpdateComplaint(id string, fn func(*models.Complaint)) bool {
	s.mu.Lock()
	ok := update(s.complaints, id, complaintID, fn)
	s.mu.Unlock()
	if ok {
		s.changed()
	}
	return ok
}

// ReconcileComplaint replaces the provisional complaint tempID with saved.
// It is a no-op when tempID is no longer present.
func (s *Store) ReconcileComplaint(tempID string, saved models.Complaint) bool {
	s.mu.Lock()
	ok := replace(s.complaints, tempID, complaintID, saved.Clone())
	s.mu.Unlock()
	if ok {
		s.changed()
	}
	return ok
}

func (s *Store) SnapshotComplaints() ComplaintSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return ComplaintSnapshot{items: clone(s.complaints, cloneComplaint)}
}

func (s *Store) RestoreComplaints(snap ComplaintSnapshot) {
	s.mu.Lock()
	s.complaints = clone(snap.items, cloneComplaint)
	s.mu.Unlock()
	s.changed()
}
