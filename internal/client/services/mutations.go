package services

import (
	"context"
	"time"

	"github.com/dmitrijs2005/civichub/internal/client/gateway"
	"github.com/dmitrijs2005/civichub/internal/client/state"
	"github.com/dmitrijs2005/civichub/internal/logging"
	"github.com/dmitrijs2005/civichub/internal/models"
)

// MutationService applies user actions to the store and mirrors them to the
// gateway.
//
// Every action changes the store before returning. Remote writes then run on
// the Background runner: creates replace their provisional entity with the
// server's copy on success, and failures leave the optimistic state in
// place. ResolveComplaint is the exception: it waits for the write and rolls
// back on failure.
type MutationService interface {
	AddComplaint(ctx context.Context, d ComplaintDraft) (models.Complaint, error)
	UpdateComplaintStatus(ctx context.Context, id string, status models.ComplaintStatus) error
	ResolveComplaint(ctx context.Context, id string) error

	AddNotice(ctx context.Context, d NoticeDraft) (models.Notice, error)
	DeleteNotice(ctx context.Context, id string) error

	AddVisitor(ctx context.Context, d VisitorDraft) models.Visitor
	LogVisitorExit(ctx context.Context, id string) error

	PayBill(ctx context.Context, id string) error

	MarkNotificationRead(id string) error
	MarkAllNotificationsRead() int
}

// MutationOptions tunes a MutationService.
type MutationOptions struct {
	Clock Clock
	// SendResolvedAt includes the resolution time in remote status patches.
	// Off by default: the patch carries the status only and the backend
	// stamps resolved_at itself.
	SendResolvedAt bool
}

// mutationService implements MutationService.
type mutationService struct {
	gw      gateway.Gateway
	store   *state.Store
	bg      *Background
	alerter Alerter
	log     logging.Logger
	now     Clock
	opts    MutationOptions
}

// NewMutationService returns a MutationService. A nil opts.Clock means
// time.Now.
func NewMutationService(gw gateway.Gateway, store *state.Store, bg *Background, alerter Alerter, log logging.Logger, opts MutationOptions) MutationService {
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	return &mutationService{
		gw:      gw,
		store:   store,
		bg:      bg,
		alerter: alerter,
		log:     log.With("module", "mutations"),
		now:     opts.Clock,
		opts:    opts,
	}
}

// notify prepends an unread notification for userID.
func (m *mutationService) notify(userID, title, message string, typ models.NotificationType, tab string) {
	now := m.now()
	m.store.PrependNotification(models.Notification{
		ID:        tempID("notif", now),
		UserID:    userID,
		Title:     title,
		Message:   message,
		Type:      typ,
		CreatedAt: now,
		TargetTab: tab,
	})
}

// MarkNotificationRead returns ErrNotFound for an unknown id.
func (m *mutationService) MarkNotificationRead(id string) error {
	if !m.store.MarkNotificationRead(id) {
		return ErrNotFound
	}
	return nil
}

// MarkAllNotificationsRead marks the current user's notifications read and
// returns how many changed.
func (m *mutationService) MarkAllNotificationsRead() int {
	u := m.store.Identity()
	if u == nil {
		return 0
	}
	return m.store.MarkAllNotificationsRead(u.ID)
}
