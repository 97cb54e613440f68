package services

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/civichub/internal/client/gateway"
	"github.com/dmitrijs2005/civichub/internal/logging"
	"github.com/dmitrijs2005/civichub/internal/models"
)

var testNow = time.Date(2024, 3, 14, 9, 30, 0, 0, time.UTC)

func fixedClock() Clock { return func() time.Time { return testNow } }

// steppingClock advances by step on every call.
func steppingClock(step time.Duration) Clock {
	var mu sync.Mutex
	t := testNow
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		t = t.Add(step)
		return t
	}
}

// fakeGateway records calls and serves canned results. Methods not overridden
// here panic through the nil embedded interface.
type fakeGateway struct {
	gateway.Gateway

	mu    sync.Mutex
	calls []string

	// gate, when set, holds every write until closed.
	gate chan struct{}

	signInSess  *gateway.Session
	signInErr   error
	signUpSess  *gateway.Session
	signUpErr   error
	signOutErr  error
	restoreSess *gateway.Session
	restoreErr  error

	profiles         map[string]models.User
	getProfileErr    error
	insertedProfiles []models.User

	complaints    []models.Complaint
	notices       []models.Notice
	visitors      []models.Visitor
	residents     []models.User
	payments      []models.Payment
	listErrs      map[string]error
	writeErr      error
	patches       []models.ComplaintPatch
	exits         []models.VisitorExit
	deletedNotice []string
	paid          []string
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{profiles: map[string]models.User{}, listErrs: map[string]error{}}
}

func (f *fakeGateway) record(name string) {
	f.mu.Lock()
	f.calls = append(f.calls, name)
	f.mu.Unlock()
}

func (f *fakeGateway) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeGateway) wait() {
	if f.gate != nil {
		<-f.gate
	}
}

func (f *fakeGateway) SignIn(ctx context.Context, email, password string) (*gateway.Session, error) {
	f.record("SignIn")
	return f.signInSess, f.signInErr
}

func (f *fakeGateway) SignUp(ctx context.Context, req gateway.SignUpRequest) (*gateway.Session, error) {
	f.record("SignUp")
	return f.signUpSess, f.signUpErr
}

func (f *fakeGateway) SignOut(ctx context.Context) error {
	f.record("SignOut")
	return f.signOutErr
}

func (f *fakeGateway) RestoreSession(ctx context.Context, token string) (*gateway.Session, error) {
	f.record("RestoreSession")
	return f.restoreSess, f.restoreErr
}

func (f *fakeGateway) GetProfile(ctx context.Context, id string) (*models.User, error) {
	f.record("GetProfile")
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getProfileErr != nil {
		return nil, f.getProfileErr
	}
	u, ok := f.profiles[id]
	if !ok {
		return nil, gateway.ErrNotFound
	}
	return &u, nil
}

func (f *fakeGateway) InsertProfile(ctx context.Context, u models.User) (*models.User, error) {
	f.record("InsertProfile")
	f.mu.Lock()
	defer f.mu.Unlock()
	f.insertedProfiles = append(f.insertedProfiles, u)
	f.profiles[u.ID] = u
	return &u, nil
}

func list[T any](f *fakeGateway, name string, items []T) ([]T, error) {
	f.record(name)
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.listErrs[name]; err != nil {
		return nil, err
	}
	return append([]T(nil), items...), nil
}

func (f *fakeGateway) ListComplaints(ctx context.Context) ([]models.Complaint, error) {
	return list(f, "ListComplaints", f.complaints)
}

func (f *fakeGateway) ListNotices(ctx context.Context) ([]models.Notice, error) {
	return list(f, "ListNotices", f.notices)
}

func (f *fakeGateway) ListVisitors(ctx context.Context) ([]models.Visitor, error) {
	return list(f, "ListVisitors", f.visitors)
}

func (f *fakeGateway) ListProfilesByRole(ctx context.Context, role models.Role) ([]models.User, error) {
	return list(f, "ListProfilesByRole", f.residents)
}

func (f *fakeGateway) ListPayments(ctx context.Context) ([]models.Payment, error) {
	return list(f, "ListPayments", f.payments)
}

func (f *fakeGateway) InsertComplaint(ctx context.Context, c models.Complaint) (*models.Complaint, error) {
	f.record("InsertComplaint")
	f.wait()
	if f.writeErr != nil {
		return nil, f.writeErr
	}
	c.ID = "srv-" + c.Title
	return &c, nil
}

func (f *fakeGateway) UpdateComplaint(ctx context.Context, id string, patch models.ComplaintPatch) error {
	f.record("UpdateComplaint")
	f.wait()
	f.mu.Lock()
	f.patches = append(f.patches, patch)
	f.mu.Unlock()
	return f.writeErr
}

func (f *fakeGateway) InsertNotice(ctx context.Context, n models.Notice) (*models.Notice, error) {
	f.record("InsertNotice")
	f.wait()
	if f.writeErr != nil {
		return nil, f.writeErr
	}
	n.ID = "srv-" + n.Title
	return &n, nil
}

func (f *fakeGateway) DeleteNotice(ctx context.Context, id string) error {
	f.record("DeleteNotice")
	f.wait()
	f.mu.Lock()
	f.deletedNotice = append(f.deletedNotice, id)
	f.mu.Unlock()
	return f.writeErr
}

func (f *fakeGateway) InsertVisitor(ctx context.Context, v models.Visitor) (*models.Visitor, error) {
	f.record("InsertVisitor")
	f.wait()
	if f.writeErr != nil {
		return nil, f.writeErr
	}
	v.ID = "srv-" + v.Name
	return &v, nil
}

func (f *fakeGateway) UpdateVisitorExit(ctx context.Context, id string, exit models.VisitorExit) error {
	f.record("UpdateVisitorExit")
	f.wait()
	f.mu.Lock()
	f.exits = append(f.exits, exit)
	f.mu.Unlock()
	return f.writeErr
}

func (f *fakeGateway) MarkPaymentPaid(ctx context.Context, id string) error {
	f.record("MarkPaymentPaid")
	f.wait()
	f.mu.Lock()
	f.paid = append(f.paid, id)
	f.mu.Unlock()
	return f.writeErr
}

// memMetadata is an in-memory metadata.Repository.
type memMetadata struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemMetadata() *memMetadata { return &memMetadata{data: map[string][]byte{}} }

func (m *memMetadata) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data[key], nil
}

func (m *memMetadata) Set(ctx context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *memMetadata) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *memMetadata) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = map[string][]byte{}
	return nil
}

// alerts collects alert messages.
type alerts struct {
	mu   sync.Mutex
	msgs []string
}

func (a *alerts) Alert(msg string) {
	a.mu.Lock()
	a.msgs = append(a.msgs, msg)
	a.mu.Unlock()
}

func (a *alerts) Messages() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]string(nil), a.msgs...)
}

func discard() logging.Logger { return logging.Discard() }
