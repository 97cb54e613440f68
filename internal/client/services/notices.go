package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/civichub/internal/models"
)

// NoticeDraft is what an admin fills in to post a notice.
type NoticeDraft struct {
	Title    string
	Content  string
	Category models.NoticeCategory
}

// AddNotice posts a notice signed by the current identity. An empty
// category becomes GENERAL.
func (m *mutationService) AddNotice(ctx context.Context, d NoticeDraft) (models.Notice, error) {
	u := m.store.Identity()
	if u == nil {
		return models.Notice{}, ErrNoIdentity
	}
	category := d.Category
	if category == "" {
		category = models.NoticeGeneral
	}

	now := m.now()
	n := models.Notice{
		ID:        tempID("notice", now),
		Title:     d.Title,
		Content:   d.Content,
		Category:  category,
		PostedBy:  u.Name,
		CreatedAt: now,
	}
	m.store.PrependNotice(n)

	tmp := n.ID
	m.bg.Go(ctx, "insert notice", func(ctx context.Context) error {
		saved, err := m.gw.InsertNotice(ctx, n)
		if err != nil {
			return fmt.Errorf("keeping optimistic notice %s: %w", tmp, err)
		}
		m.store.ReconcileNotice(tmp, *saved)
		return nil
	})
	return n, nil
}

// DeleteNotice removes the notice locally first. A failed remote delete is
// not rolled back.
func (m *mutationService) DeleteNotice(ctx context.Context, id string) error {
	if !m.store.RemoveNotice(id) {
		return ErrNotFound
	}
	m.bg.Go(ctx, "delete notice", func(ctx context.Context) error {
		return m.gw.DeleteNotice(ctx, id)
	})
	return nil
}
