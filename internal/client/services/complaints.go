package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/civichub/internal/common"
	"github.com/dmitrijs2005/civichub/internal/models"
)

// ComplaintDraft holds the fields a resident fills in. Empty fields take
// defaults.
type ComplaintDraft struct {
	Title       string
	Description string
	Category    string
	Priority    models.Priority
	UnitNumber  string
}

// AddComplaint files a complaint for the current identity. The unit falls
// back to the user's unit and then to "N/A"; category and priority default
// to "General" and MEDIUM. The provisional complaint is swapped for the
// backend copy once the insert succeeds.
func (m *mutationService) AddComplaint(ctx context.Context, d ComplaintDraft) (models.Complaint, error) {
	u := m.store.Identity()
	if u == nil {
		return models.Complaint{}, ErrNoIdentity
	}

	unit := d.UnitNumber
	if unit == "" {
		unit = u.UnitNumber
	}
	if unit == "" {
		unit = common.UnitNotAvailable
	}
	category := d.Category
	if category == "" {
		category = models.DefaultComplaintCategory
	}
	priority := d.Priority
	if priority == "" {
		priority = models.PriorityMedium
	}

	now := m.now()
	c := models.Complaint{
		ID:          tempID("complaint", now),
		UserID:      u.ID,
		UserName:    u.Name,
		UnitNumber:  unit,
		Title:       d.Title,
		Description: d.Description,
		Category:    category,
		Priority:    priority,
		Status:      models.ComplaintOpen,
		CreatedAt:   now,
	}
	m.store.PrependComplaint(c)
	m.notify(u.ID, "Complaint Raised",
		fmt.Sprintf("Ticket has been created successfully for %s.", unit),
		models.NotificationComplaint, "complaints")

	tmp := c.ID
	m.bg.Go(ctx, "insert complaint", func(ctx context.Context) error {
		saved, err := m.gw.InsertComplaint(ctx, c)
		if err != nil {
			return fmt.Errorf("keeping optimistic complaint %s: %w", tmp, err)
		}
		if !m.store.ReconcileComplaint(tmp, *saved) {
			m.log.Debug(ctx, "provisional complaint gone, nothing to reconcile", "temp_id", tmp, "id", saved.ID)
		}
		return nil
	})

	return c, nil
}

// patchFor builds the remote patch for status. ResolvedAt is sent only when
// the backend accepts it.
func (m *mutationService) patchFor(status models.ComplaintStatus, c *models.Complaint) models.ComplaintPatch {
	p := models.ComplaintPatch{Status: status}
	if m.opts.SendResolvedAt && c != nil && c.ResolvedAt != nil {
		t := *c.ResolvedAt
		p.ResolvedAt = &t
	}
	return p
}

// setStatus applies status to the stored complaint and returns the result.
func (m *mutationService) setStatus(id string, status models.ComplaintStatus) (models.Complaint, bool) {
	now := m.now()
	var out models.Complaint
	ok := m.store.UpdateComplaint(id, func(c *models.Complaint) {
		c.Status = status
		if status == models.ComplaintResolved {
			c.ResolvedAt = &now
		}
		out = c.Clone()
	})
	return out, ok
}

// UpdateComplaintStatus applies status locally and writes it in the
// background. Moving to RESOLVED also stamps ResolvedAt.
func (m *mutationService) UpdateComplaintStatus(ctx context.Context, id string, status models.ComplaintStatus) error {
	if !status.Valid() {
		return fmt.Errorf("%w: status %q", models.ErrInvalidEntity, status)
	}
	updated, ok := m.setStatus(id, status)
	if !ok {
		return ErrNotFound
	}

	patch := m.patchFor(status, &updated)
	m.bg.Go(ctx, "update complaint status", func(ctx context.Context) error {
		return m.gw.UpdateComplaint(ctx, id, patch)
	})
	return nil
}

// ResolveComplaint marks a complaint RESOLVED and waits for the backend. If
// the write fails, the complaint collection is restored to its state before
// the call and the user is alerted.
func (m *mutationService) ResolveComplaint(ctx context.Context, id string) error {
	snap := m.store.SnapshotComplaints()

	updated, ok := m.setStatus(id, models.ComplaintResolved)
	if !ok {
		return ErrNotFound
	}

	if err := m.gw.UpdateComplaint(ctx, id, m.patchFor(models.ComplaintResolved, &updated)); err != nil {
		m.log.Error(ctx, "resolve failed, rolling back", "complaint_id", id, "error", err)
		m.store.RestoreComplaints(snap)
		m.alerter.Alert("Failed to resolve complaint: " + err.Error())
		return fmt.Errorf("%w: %v", ErrResolveFailed, err)
	}
	return nil
}
