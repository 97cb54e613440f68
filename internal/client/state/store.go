package state

import (
	"slices"
	"sync"

	"github.com/dmitrijs2005/civichub/internal/models"
)

// IdentityListener observes identity transitions. prev and next are copies.
type IdentityListener func(prev, next *models.User)

// Dataset is a full set of collections, used to replace the store at once.
type Dataset struct {
	Residents  []models.User
	Complaints []models.Complaint
	Notices    []models.Notice
	Payments   []models.Payment
	Visitors   []models.Visitor
}

// Store holds the signed-in identity and every entity collection. Readers
// get copies; writers notify change listeners after releasing the lock.
type Store struct {
	mu sync.RWMutex

	identity      *models.User
	residents     []models.User
	complaints    []models.Complaint
	notices       []models.Notice
	payments      []models.Payment
	visitors      []models.Visitor
	notifications []models.Notification

	lmu               sync.Mutex
	identityListeners []IdentityListener
	changeListeners   []func()
}

// NewStore returns an empty store with no identity.
func NewStore() *Store {
	return &Store{}
}

func complaintID(c models.Complaint) string       { return c.ID }
func noticeID(n models.Notice) string             { return n.ID }
func paymentID(p models.Payment) string           { return p.ID }
func visitorID(v models.Visitor) string           { return v.ID }
func notificationID(n models.Notification) string { return n.ID }

func cloneComplaint(c models.Complaint) models.Complaint { return c.Clone() }
func cloneVisitor(v models.Visitor) models.Visitor       { return v.Clone() }

func copyUser(u *models.User) *models.User {
	if u == nil {
		return nil
	}
	cp := *u
	return &cp
}

// OnIdentity registers fn to run after every identity change. Listeners run
// on the goroutine that changed the identity, outside the store lock.
func (s *Store) OnIdentity(fn IdentityListener) {
	s.lmu.Lock()
	s.identityListeners = append(s.identityListeners, fn)
	s.lmu.Unlock()
}

// OnChange registers fn to run after any mutation.
func (s *Store) OnChange(fn func()) {
	s.lmu.Lock()
	s.changeListeners = append(s.changeListeners, fn)
	s.lmu.Unlock()
}

// changed runs the change listeners outside both locks.
func (s *Store) changed() {
	s.lmu.Lock()
	ls := slices.Clone(s.changeListeners)
	s.lmu.Unlock()
	for _, fn := range ls {
		fn()
	}
}

func (s *Store) identityChanged(prev, next *models.User) {
	s.lmu.Lock()
	ls := slices.Clone(s.identityListeners)
	s.lmu.Unlock()
	for _, fn := range ls {
		fn(copyUser(prev), copyUser(next))
	}
}

// Identity returns a copy of the active user, or nil.
func (s *Store) Identity() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyUser(s.identity)
}

// SetIdentity replaces the active user.
func (s *Store) SetIdentity(u *models.User) {
	s.mu.Lock()
	prev := s.identity
	s.identity = copyUser(u)
	s.mu.Unlock()

	s.identityChanged(prev, u)
	s.changed()
}

// Reset clears the identity and every collection.
func (s *Store) Reset() {
	s.mu.Lock()
	prev := s.identity
	s.identity = nil
	s.residents = nil
	s.complaints = nil
	s.notices = nil
	s.payments = nil
	s.visitors = nil
	s.notifications = nil
	s.mu.Unlock()

	if prev != nil {
		s.identityChanged(prev, nil)
	}
	s.changed()
}

// ClearData empties every collection and the notifications but keeps the
// identity.
func (s *Store) ClearData() {
	s.mu.Lock()
	s.residents = nil
	s.complaints = nil
	s.notices = nil
	s.payments = nil
	s.visitors = nil
	s.notifications = nil
	s.mu.Unlock()
	s.changed()
}

// ReplaceAll swaps every entity collection for the ones in d.
func (s *Store) ReplaceAll(d Dataset) {
	s.mu.Lock()
	s.residents = clone(d.Residents, nil)
	s.complaints = clone(d.Complaints, cloneComplaint)
	s.notices = clone(d.Notices, nil)
	s.payments = clone(d.Payments, nil)
	s.visitors = clone(d.Visitors, cloneVisitor)
	s.mu.Unlock()
	s.changed()
}

// Residents returns the resident directory.
func (s *Store) Residents() []models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.residents, nil)
}

func (s *Store) SetResidents(list []models.User) {
	s.mu.Lock()
	s.residents = clone(list, nil)
	s.mu.Unlock()
	s.changed()
}
