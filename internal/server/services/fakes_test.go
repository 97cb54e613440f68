package services

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"time"

	"github.com/dmitrijs2005/civichub/internal/common"
	"github.com/dmitrijs2005/civichub/internal/dbx"
	"github.com/dmitrijs2005/civichub/internal/models"
	"github.com/dmitrijs2005/civichub/internal/repositories/accounts"
	"github.com/dmitrijs2005/civichub/internal/repositories/complaints"
	"github.com/dmitrijs2005/civichub/internal/repositories/notices"
	"github.com/dmitrijs2005/civichub/internal/repositories/payments"
	"github.com/dmitrijs2005/civichub/internal/repositories/profiles"
	"github.com/dmitrijs2005/civichub/internal/repositories/visitors"
)

var testNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

// memRepos is an in-memory stand-in for every repository. The dbx handle
// passed in is ignored.
type memRepos struct {
	mu         sync.Mutex
	accounts   map[string]*accounts.Account
	profiles   map[string]models.User
	complaints []models.Complaint
	notices    []models.Notice
	visitors   []models.Visitor
	payments   []models.Payment
	err        error
}

func newMemRepos() *memRepos {
	return &memRepos{
		accounts: map[string]*accounts.Account{},
		profiles: map[string]models.User{},
	}
}

func (m *memRepos) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *memRepos) Accounts(dbx.DBTX) accounts.Repository        { return (*memAccounts)(m) }
func (m *memRepos) Profiles(dbx.DBTX) profiles.Repository        { return (*memProfiles)(m) }
func (m *memRepos) Complaints(dbx.DBTX) complaints.Repository    { return (*memComplaints)(m) }
func (m *memRepos) Notices(dbx.DBTX) notices.Repository          { return (*memNotices)(m) }
func (m *memRepos) Visitors(dbx.DBTX) visitors.Repository        { return (*memVisitors)(m) }
func (m *memRepos) Payments(dbx.DBTX) payments.Repository        { return (*memPayments)(m) }

type memAccounts memRepos

func (r *memAccounts) Create(_ context.Context, a *accounts.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	for _, existing := range r.accounts {
		if existing.Email == a.Email {
			return common.ErrorAlreadyExists
		}
	}
	cp := *a
	r.accounts[a.ID] = &cp
	return nil
}

func (r *memAccounts) GetByEmail(_ context.Context, email string) (*accounts.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	for _, a := range r.accounts {
		if a.Email == email {
			cp := *a
			return &cp, nil
		}
	}
	return nil, common.ErrorNotFound
}

type memProfiles memRepos

func (r *memProfiles) Get(_ context.Context, id string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	u, ok := r.profiles[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &u, nil
}

func (r *memProfiles) ListByRole(_ context.Context, role models.Role) ([]models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.User, 0)
	for _, u := range r.profiles {
		if u.Role == role {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *memProfiles) Insert(_ context.Context, u *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.profiles[u.ID]; ok {
		return nil, common.ErrorAlreadyExists
	}
	r.profiles[u.ID] = *u
	return u, nil
}

func (r *memProfiles) SetAvatar(_ context.Context, id, avatar string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.profiles[id]
	if !ok {
		return common.ErrorNotFound
	}
	u.Avatar = avatar
	r.profiles[id] = u
	return nil
}

type memComplaints memRepos

func (r *memComplaints) List(context.Context) ([]models.Complaint, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.Complaint(nil), r.complaints...), nil
}

func (r *memComplaints) Insert(_ context.Context, c *models.Complaint) (*models.Complaint, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.complaints = append(r.complaints, *c)
	return c, nil
}

func (r *memComplaints) Update(_ context.Context, id string, patch models.ComplaintPatch) (*models.Complaint, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.complaints {
		if r.complaints[i].ID != id {
			continue
		}
		r.complaints[i].Status = patch.Status
		r.complaints[i].ResolvedAt = patch.ResolvedAt
		if patch.Status == models.ComplaintResolved && patch.ResolvedAt == nil {
			at := testNow
			r.complaints[i].ResolvedAt = &at
		}
		c := r.complaints[i]
		return &c, nil
	}
	return nil, common.ErrorNotFound
}

type memNotices memRepos

func (r *memNotices) List(context.Context) ([]models.Notice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.Notice(nil), r.notices...), nil
}

func (r *memNotices) Insert(_ context.Context, n *models.Notice) (*models.Notice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, *n)
	return n, nil
}

func (r *memNotices) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.notices {
		if r.notices[i].ID == id {
			r.notices = append(r.notices[:i], r.notices[i+1:]...)
			return nil
		}
	}
	return common.ErrorNotFound
}

type memVisitors memRepos

func (r *memVisitors) List(context.Context) ([]models.Visitor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.Visitor(nil), r.visitors...), nil
}

func (r *memVisitors) Insert(_ context.Context, v *models.Visitor) (*models.Visitor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.visitors = append(r.visitors, *v)
	return v, nil
}

func (r *memVisitors) MarkExit(_ context.Context, id string, at time.Time) (*models.Visitor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.visitors {
		if r.visitors[i].ID == id {
			r.visitors[i].Status = models.VisitorOut
			r.visitors[i].ExitTime = &at
			v := r.visitors[i]
			return &v, nil
		}
	}
	return nil, common.ErrorNotFound
}

type memPayments memRepos

func (r *memPayments) List(context.Context) ([]models.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.Payment(nil), r.payments...), nil
}

func (r *memPayments) MarkPaid(_ context.Context, id string) (*models.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.payments {
		if r.payments[i].ID == id {
			r.payments[i].Status = models.PaymentPaid
			p := r.payments[i]
			return &p, nil
		}
	}
	return nil, common.ErrorNotFound
}
