package httpapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/civichub/internal/auth"
	"github.com/dmitrijs2005/civichub/internal/common"
	"github.com/dmitrijs2005/civichub/internal/logging"
	"github.com/dmitrijs2005/civichub/internal/models"
	"github.com/dmitrijs2005/civichub/internal/server/services"
	"github.com/stretchr/testify/require"
)

var secret = []byte("k")

type nopLogger struct{}

func (n nopLogger) Debug(context.Context, string, ...any) {}
func (n nopLogger) Info(context.Context, string, ...any)  {}
func (n nopLogger) Warn(context.Context, string, ...any)  {}
func (n nopLogger) Error(context.Context, string, ...any) {}
func (n nopLogger) With(...any) logging.Logger            { return n }

// backend is a single in-memory fake behind every service interface.
type backend struct {
	mu         sync.Mutex
	passwords  map[string]string
	ids        map[string]string
	profiles   map[string]models.User
	complaints []models.Complaint
	notices    []models.Notice
	visitors   []models.Visitor
	payments   []models.Payment
	seq        int
	failLists  bool
	pingErr    error
}

func newBackend() *backend {
	return &backend{
		passwords: map[string]string{},
		ids:       map[string]string{},
		profiles:  map[string]models.User{},
	}
}

func (b *backend) nextID() string {
	b.seq++
	return "srv-" + strconv.Itoa(b.seq)
}

func (b *backend) token(id, email string) string {
	claims := auth.Claims{ID: id, Role: models.RoleResident, Email: email}
	if p, ok := b.profiles[id]; ok {
		claims = auth.ClaimsFor(p)
	}
	tok, _ := auth.GenerateToken(claims, secret, time.Hour)
	return tok
}

func (b *backend) Authenticate(token string) (*auth.Claims, error) {
	return auth.ParseToken(token, secret)
}

func (b *backend) Login(_ context.Context, email, password string) (*services.Session, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if pw, ok := b.passwords[email]; !ok || pw != password {
		return nil, common.ErrorInvalidCredentials
	}
	id := b.ids[email]
	s := &services.Session{Token: b.token(id, email)}
	if p, ok := b.profiles[id]; ok {
		s.User = &p
	}
	return s, nil
}

func (b *backend) Register(_ context.Context, email, password string) (*services.Session, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.passwords[email]; ok {
		return nil, common.ErrorAlreadyExists
	}
	id := b.nextID()
	b.passwords[email] = password
	b.ids[email] = id
	return &services.Session{Token: b.token(id, email)}, nil
}

func (b *backend) Role(_ context.Context, id string) (models.Role, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	p, ok := b.profiles[id]
	if !ok {
		return "", common.ErrorNotFound
	}
	return p.Role, nil
}

func (b *backend) Get(_ context.Context, id string) (*models.User, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	p, ok := b.profiles[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &p, nil
}

func (b *backend) ListByRole(_ context.Context, role models.Role) ([]models.User, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !role.Valid() {
		return nil, common.ErrorValidation
	}
	out := make([]models.User, 0)
	for _, p := range b.profiles {
		if p.Role == role {
			out = append(out, p)
		}
	}
	return out, nil
}

func (b *backend) Residents(ctx context.Context) ([]models.User, error) {
	return b.ListByRole(ctx, models.RoleResident)
}

func (b *backend) Create(_ context.Context, caller *auth.Claims, u models.User) (*models.User, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if u.ID == "" {
		u.ID = caller.ID
	}
	if u.ID != caller.ID {
		return nil, common.ErrorForbidden
	}
	if _, ok := b.profiles[u.ID]; ok {
		return nil, common.ErrorAlreadyExists
	}
	b.profiles[u.ID] = u
	return &u, nil
}

func (b *backend) SetAvatar(id, url string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	p := b.profiles[id]
	p.Avatar = url
	b.profiles[id] = p
}

type complaintsFake struct{ *backend }

func (f complaintsFake) List(context.Context) ([]models.Complaint, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failLists {
		return nil, errors.New("db down")
	}
	return append([]models.Complaint{}, f.complaints...), nil
}

func (f complaintsFake) Create(_ context.Context, caller *auth.Claims, c models.Complaint) (*models.Complaint, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if c.Title == "" {
		return nil, common.ErrorValidation
	}
	c.ID = f.nextID()
	c.UserID = caller.ID
	c.Status = models.ComplaintOpen
	f.complaints = append(f.complaints, c)
	return &c, nil
}

func (f complaintsFake) UpdateStatus(_ context.Context, id string, patch models.ComplaintPatch) (*models.Complaint, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.complaints {
		if f.complaints[i].ID == id {
			f.complaints[i].Status = patch.Status
			f.complaints[i].ResolvedAt = patch.ResolvedAt
			c := f.complaints[i]
			return &c, nil
		}
	}
	return nil, common.ErrorNotFound
}

type noticesFake struct{ *backend }

func (f noticesFake) List(context.Context) ([]models.Notice, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Notice{}, f.notices...), nil
}

func (f noticesFake) Create(_ context.Context, caller *auth.Claims, n models.Notice) (*models.Notice, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n.ID = f.nextID()
	n.PostedBy = caller.Name
	f.notices = append(f.notices, n)
	return &n, nil
}

func (f noticesFake) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.notices {
		if f.notices[i].ID == id {
			f.notices = append(f.notices[:i], f.notices[i+1:]...)
			return nil
		}
	}
	return common.ErrorNotFound
}

type visitorsFake struct{ *backend }

func (f visitorsFake) List(context.Context) ([]models.Visitor, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Visitor{}, f.visitors...), nil
}

func (f visitorsFake) Create(_ context.Context, v models.Visitor) (*models.Visitor, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v.ID = f.nextID()
	v.Status = models.VisitorIn
	f.visitors = append(f.visitors, v)
	return &v, nil
}

func (f visitorsFake) Exit(_ context.Context, id string, exit models.VisitorExit) (*models.Visitor, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.visitors {
		if f.visitors[i].ID == id {
			f.visitors[i].Status = models.VisitorOut
			at := exit.ExitTime
			f.visitors[i].ExitTime = &at
			v := f.visitors[i]
			return &v, nil
		}
	}
	return nil, common.ErrorNotFound
}

type paymentsFake struct{ *backend }

func (f paymentsFake) List(context.Context) ([]models.Payment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Payment{}, f.payments...), nil
}

func (f paymentsFake) Pay(_ context.Context, id string) (*models.Payment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.payments {
		if f.payments[i].ID == id {
			f.payments[i].Status = models.PaymentPaid
			p := f.payments[i]
			return &p, nil
		}
	}
	return nil, common.ErrorNotFound
}

type avatarsFake struct{ *backend }

func (f avatarsFake) RequestUpload(_ context.Context, userID, contentType string) (*services.AvatarUpload, error) {
	key := "avatars/" + userID + "/a.png"
	up := &services.AvatarUpload{URL: "http://s3/put/" + key, Key: key, PublicURL: "http://cdn/" + key}
	f.SetAvatar(userID, up.PublicURL)
	return up, nil
}

func (b *backend) PingContext(context.Context) error { return b.pingErr }

func newTestServer(t *testing.T, b *backend) *httptest.Server {
	t.Helper()
	s := NewServer(Deps{
		Accounts:   b,
		Profiles:   b,
		Complaints: complaintsFake{b},
		Notices:    noticesFake{b},
		Visitors:   visitorsFake{b},
		Payments:   paymentsFake{b},
		Avatars:    avatarsFake{b},
		DB:         b,
	}, []string{"*"}, nopLogger{})
	srv := httptest.NewServer(s.Router())
	t.Cleanup(srv.Close)
	return srv
}

// seedUser registers an account with a profile and returns its token.
func seedUser(t *testing.T, b *backend, email string, role models.Role) (string, string) {
	t.Helper()
	s, err := b.Register(context.Background(), email, "secret1")
	require.NoError(t, err)
	claims, err := b.Authenticate(s.Token)
	require.NoError(t, err)
	b.mu.Lock()
	b.profiles[claims.ID] = models.User{ID: claims.ID, Name: email, Email: email, Role: role}
	b.mu.Unlock()
	return claims.ID, s.Token
}

func doRequest(t *testing.T, method, url, token string, body string) *http.Response {
	t.Helper()
	var req *http.Request
	var err error
	if body == "" {
		req, err = http.NewRequest(method, url, nil)
	} else {
		req, err = http.NewRequest(method, url, stringsReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}
