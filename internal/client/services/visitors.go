package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/civichub/internal/models"
)

// VisitorDraft describes a visitor at the gate and the resident visited.
type VisitorDraft struct {
	Name         string
	Phone        string
	Purpose      string
	ResidentID   string
	ResidentName string
	UnitNumber   string
}

// AddVisitor logs an entry. Status and entry time are always set here.
func (m *mutationService) AddVisitor(ctx context.Context, d VisitorDraft) models.Visitor {
	now := m.now()
	v := models.Visitor{
		ID:           tempID("visitor", now),
		Name:         d.Name,
		Phone:        d.Phone,
		Purpose:      d.Purpose,
		ResidentID:   d.ResidentID,
		ResidentName: d.ResidentName,
		UnitNumber:   d.UnitNumber,
		EntryTime:    now,
		Status:       models.VisitorIn,
	}
	m.store.PrependVisitor(v)

	tmp := v.ID
	m.bg.Go(ctx, "insert visitor", func(ctx context.Context) error {
		saved, err := m.gw.InsertVisitor(ctx, v)
		if err != nil {
			return fmt.Errorf("keeping optimistic visitor %s: %w", tmp, err)
		}
		m.store.ReconcileVisitor(tmp, *saved)
		return nil
	})
	return v
}

// LogVisitorExit sets status OUT and the exit time to now. Calling it again
// moves the exit time forward.
func (m *mutationService) LogVisitorExit(ctx context.Context, id string) error {
	exit := models.VisitorExit{Status: models.VisitorOut, ExitTime: m.now()}
	ok := m.store.UpdateVisitor(id, func(v *models.Visitor) {
		v.Status = exit.Status
		t := exit.ExitTime
		v.ExitTime = &t
	})
	if !ok {
		return ErrNotFound
	}

	m.bg.Go(ctx, "visitor exit", func(ctx context.Context) error {
		return m.gw.UpdateVisitorExit(ctx, id, exit)
	})
	return nil
}
