package services

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/civichub/internal/auth"
	"github.com/dmitrijs2005/civichub/internal/common"
	"github.com/dmitrijs2005/civichub/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedTime(t *testing.T) {
	t.Helper()
	origNow, origID := now, newID
	n := 0
	now = func() time.Time { return testNow }
	newID = func() string {
		n++
		return "id-" + string(rune('0'+n))
	}
	t.Cleanup(func() {
		now = origNow
		newID = origID
	})
}

var resident = &auth.Claims{ID: "r1", Name: "Ravi", Email: "ravi@society.com", Role: models.RoleResident}

func TestProfileService_Create(t *testing.T) {
	repos := newMemRepos()
	svc := NewProfileService(nil, repos)
	ctx := context.Background()

	t.Run("own profile gets defaults", func(t *testing.T) {
		u, err := svc.Create(ctx, resident, models.User{Name: "Ravi", Role: models.RoleResident})
		require.NoError(t, err)
		assert.Equal(t, "r1", u.ID)
		assert.Equal(t, "ravi@society.com", u.Email)
		assert.Equal(t, common.UnitNotAvailable, u.UnitNumber)
	})

	t.Run("duplicate", func(t *testing.T) {
		_, err := svc.Create(ctx, resident, models.User{ID: "r1", Name: "Ravi", Role: models.RoleResident})
		assert.ErrorIs(t, err, common.ErrorAlreadyExists)
	})

	t.Run("someone else's profile is forbidden", func(t *testing.T) {
		_, err := svc.Create(ctx, resident, models.User{ID: "r9", Name: "X", Role: models.RoleResident})
		assert.ErrorIs(t, err, common.ErrorForbidden)
	})

	t.Run("admin may create others", func(t *testing.T) {
		repos.profiles["a1"] = models.User{ID: "a1", Name: "Admin", Role: models.RoleAdmin}
		admin := &auth.Claims{ID: "a1", Role: models.RoleAdmin}
		u, err := svc.Create(ctx, admin, models.User{ID: "r9", Name: "Nina", Role: models.RoleResident, UnitNumber: "B-2"})
		require.NoError(t, err)
		assert.Equal(t, "B-2", u.UnitNumber)
	})

	t.Run("invalid role", func(t *testing.T) {
		_, err := svc.Create(ctx, &auth.Claims{ID: "z"}, models.User{Name: "Z", Role: "KING"})
		assert.ErrorIs(t, err, common.ErrorValidation)
	})
}

func TestProfileService_ListAndRole(t *testing.T) {
	repos := newMemRepos()
	repos.profiles["a"] = models.User{ID: "a", Name: "Zed", Role: models.RoleResident}
	repos.profiles["b"] = models.User{ID: "b", Name: "Amy", Role: models.RoleResident}
	repos.profiles["c"] = models.User{ID: "c", Name: "Boss", Role: models.RoleAdmin}
	svc := NewProfileService(nil, repos)
	ctx := context.Background()

	res, err := svc.Residents(ctx)
	require.NoError(t, err)
	require.Len(t, res, 2)
	assert.Equal(t, "Amy", res[0].Name)

	_, err = svc.ListByRole(ctx, "")
	assert.ErrorIs(t, err, common.ErrorValidation)

	role, err := svc.Role(ctx, "c")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, role)

	_, err = svc.Role(ctx, "missing")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestComplaintService(t *testing.T) {
	fixedTime(t)
	repos := newMemRepos()
	svc := NewComplaintService(nil, repos)
	ctx := context.Background()

	c, err := svc.Create(ctx, resident, models.Complaint{
		ID:     "tmp-123",
		Title:  "Leaking Tap",
		Status: models.ComplaintResolved,
	})
	require.NoError(t, err)
	assert.Equal(t, "id-1", c.ID, "client ids are replaced")
	assert.Equal(t, "r1", c.UserID)
	assert.Equal(t, "Ravi", c.UserName)
	assert.Equal(t, models.DefaultComplaintCategory, c.Category)
	assert.Equal(t, models.PriorityMedium, c.Priority)
	assert.Equal(t, models.ComplaintOpen, c.Status)
	assert.Equal(t, testNow, c.CreatedAt)
	assert.Nil(t, c.ResolvedAt)

	_, err = svc.Create(ctx, resident, models.Complaint{})
	assert.ErrorIs(t, err, common.ErrorValidation, "title is required")

	updated, err := svc.UpdateStatus(ctx, c.ID, models.ComplaintPatch{Status: models.ComplaintResolved})
	require.NoError(t, err)
	require.NotNil(t, updated.ResolvedAt)

	stamp := testNow.Add(time.Hour)
	updated, err = svc.UpdateStatus(ctx, c.ID, models.ComplaintPatch{Status: models.ComplaintInProgress, ResolvedAt: &stamp})
	require.NoError(t, err)
	assert.Nil(t, updated.ResolvedAt, "only RESOLVED keeps a timestamp")

	_, err = svc.UpdateStatus(ctx, c.ID, models.ComplaintPatch{Status: "DONE"})
	assert.ErrorIs(t, err, common.ErrorValidation)

	_, err = svc.UpdateStatus(ctx, "nope", models.ComplaintPatch{Status: models.ComplaintOpen})
	assert.ErrorIs(t, err, common.ErrorNotFound)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestNoticeService(t *testing.T) {
	fixedTime(t)
	repos := newMemRepos()
	svc := NewNoticeService(nil, repos)
	ctx := context.Background()

	n, err := svc.Create(ctx, resident, models.Notice{Title: "Water cut"})
	require.NoError(t, err)
	assert.Equal(t, models.NoticeGeneral, n.Category)
	assert.Equal(t, "Ravi", n.PostedBy)
	assert.Equal(t, testNow, n.CreatedAt)

	_, err = svc.Create(ctx, resident, models.Notice{Title: "x", Category: "Gossip"})
	assert.ErrorIs(t, err, common.ErrorValidation)

	require.NoError(t, svc.Delete(ctx, n.ID))
	assert.ErrorIs(t, svc.Delete(ctx, n.ID), common.ErrorNotFound)
}

func TestVisitorService(t *testing.T) {
	fixedTime(t)
	repos := newMemRepos()
	svc := NewVisitorService(nil, repos)
	ctx := context.Background()

	out := testNow.Add(-time.Hour)
	v, err := svc.Create(ctx, models.Visitor{Name: "Courier", Status: models.VisitorOut, ExitTime: &out})
	require.NoError(t, err)
	assert.Equal(t, models.VisitorIn, v.Status)
	assert.Nil(t, v.ExitTime)
	assert.Equal(t, testNow, v.EntryTime)

	left, err := svc.Exit(ctx, v.ID, models.VisitorExit{Status: models.VisitorOut})
	require.NoError(t, err)
	assert.Equal(t, models.VisitorOut, left.Status)
	require.NotNil(t, left.ExitTime)
	assert.Equal(t, testNow, *left.ExitTime)

	_, err = svc.Exit(ctx, "nope", models.VisitorExit{})
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestPaymentService(t *testing.T) {
	repos := newMemRepos()
	repos.payments = []models.Payment{{ID: "p1", UserID: "r1", Amount: 2500, Month: "May", DueDate: "2024-05-10", Status: models.PaymentPending}}
	svc := NewPaymentService(nil, repos)
	ctx := context.Background()

	p, err := svc.Pay(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, models.PaymentPaid, p.Status)

	_, err = svc.Pay(ctx, "p2")
	assert.ErrorIs(t, err, common.ErrorNotFound)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentPaid, list[0].Status)
}
