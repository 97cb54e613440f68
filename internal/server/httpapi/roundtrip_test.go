package httpapi

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/civichub/internal/client/gateway"
	"github.com/dmitrijs2005/civichub/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The client's REST gateway is the only consumer of this API, so the
// contract is checked by driving the real gateway against the router.
func TestRESTGatewayRoundTrip(t *testing.T) {
	b := newBackend()
	b.payments = []models.Payment{{ID: "p1", UserID: "x", Amount: 2500, Month: "May", DueDate: "2024-05-10", Status: models.PaymentPending}}
	srv := newTestServer(t, b)
	ctx := context.Background()

	g := gateway.NewRESTGateway(srv.URL, gateway.RESTOptions{Timeout: 2 * time.Second, BreakerFailures: 5, BreakerCooldown: time.Minute})
	t.Cleanup(func() { _ = g.Close() })

	require.NoError(t, g.Ping(ctx))

	sess, err := g.SignUp(ctx, gateway.SignUpRequest{
		Email: "john@example.com", Password: "password", Name: "John", Role: models.RoleResident, UnitNumber: "A-101",
	})
	require.NoError(t, err)
	require.NotNil(t, sess)

	_, err = g.GetProfile(ctx, sess.UserID)
	assert.ErrorIs(t, err, gateway.ErrNotFound)

	me, err := g.InsertProfile(ctx, models.User{ID: sess.UserID, Name: "John", Email: "john@example.com", Role: models.RoleResident, UnitNumber: "A-101"})
	require.NoError(t, err)
	assert.Equal(t, "A-101", me.UnitNumber)

	_, err = g.InsertProfile(ctx, models.User{ID: sess.UserID, Name: "John", Role: models.RoleResident})
	assert.ErrorIs(t, err, gateway.ErrConflict)

	got, err := g.GetProfile(ctx, sess.UserID)
	require.NoError(t, err)
	assert.Equal(t, "John", got.Name)

	residents, err := g.ListProfilesByRole(ctx, models.RoleResident)
	require.NoError(t, err)
	assert.Len(t, residents, 1)

	c, err := g.InsertComplaint(ctx, models.Complaint{
		ID: "tmp-1", UserID: sess.UserID, Title: "Leaking Tap", Priority: models.PriorityHigh,
		Status: models.ComplaintOpen, CreatedAt: time.Now(),
	})
	require.NoError(t, err)
	assert.Equal(t, "srv-2", c.ID)

	now := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, g.UpdateComplaint(ctx, c.ID, models.ComplaintPatch{Status: models.ComplaintResolved, ResolvedAt: &now}))
	assert.ErrorIs(t, g.UpdateComplaint(ctx, "nope", models.ComplaintPatch{Status: models.ComplaintOpen}), gateway.ErrNotFound)

	list, err := g.ListComplaints(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, models.ComplaintResolved, list[0].Status)

	n, err := g.InsertNotice(ctx, models.Notice{ID: "tmp-2", Title: "Water cut", Category: models.NoticeUrgent, CreatedAt: time.Now()})
	require.NoError(t, err)
	assert.ErrorIs(t, g.DeleteNotice(ctx, n.ID), gateway.ErrUnauthorized, "residents cannot delete notices")

	v, err := g.InsertVisitor(ctx, models.Visitor{ID: "tmp-3", Name: "Courier", EntryTime: time.Now(), Status: models.VisitorIn})
	require.NoError(t, err)
	require.NoError(t, g.UpdateVisitorExit(ctx, v.ID, models.VisitorExit{Status: models.VisitorOut, ExitTime: now}))

	visitors, err := g.ListVisitors(ctx)
	require.NoError(t, err)
	require.Len(t, visitors, 1)
	assert.Equal(t, models.VisitorOut, visitors[0].Status)

	require.NoError(t, g.MarkPaymentPaid(ctx, "p1"))
	payments, err := g.ListPayments(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentPaid, payments[0].Status)

	up, err := g.RequestAvatarUpload(ctx, "image/png")
	require.NoError(t, err)
	assert.Equal(t, "http://cdn/avatars/"+sess.UserID+"/a.png", up.PublicURL)

	require.NoError(t, g.SignOut(ctx))
	_, err = g.ListComplaints(ctx)
	assert.ErrorIs(t, err, gateway.ErrUnauthorized)

	relogged, err := g.SignIn(ctx, "john@example.com", "password")
	require.NoError(t, err)
	assert.Equal(t, sess.UserID, relogged.UserID)
}
