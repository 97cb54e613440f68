package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/civichub/internal/client/services"
	"github.com/dmitrijs2005/civichub/internal/models"
)

// Visitors lists the visitor log.
func (a *App) Visitors(ctx context.Context) error {
	list := a.store.Visitors()
	rows := make([]string, 0, len(list))
	for _, v := range list {
		exit := "-"
		if v.ExitTime != nil {
			exit = stamp(*v.ExitTime)
		}
		rows = append(rows, fmt.Sprintf("%s\t%s\t%s\t%s\t%s\t%s\t%s",
			v.ID, v.Name, v.Purpose, v.UnitNumber, v.Status, stamp(v.EntryTime), exit))
	}
	a.table("ID\tNAME\tPURPOSE\tUNIT\tSTATUS\tENTRY\tEXIT", rows)
	return nil
}

// LogVisitor records a visitor entering. The host resident is looked up by
// unit number.
func (a *App) LogVisitor(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Visitor name", a.out)
	if err != nil {
		return err
	}
	if name == "" {
		return fmt.Errorf("a name is required")
	}
	phone, err := getSimpleText(a.reader, "Phone", a.out)
	if err != nil {
		return err
	}
	purpose, err := getSimpleText(a.reader, "Purpose", a.out)
	if err != nil {
		return err
	}
	unit, err := getSimpleText(a.reader, "Visiting unit", a.out)
	if err != nil {
		return err
	}

	d := services.VisitorDraft{Name: name, Phone: phone, Purpose: purpose, UnitNumber: unit}
	if host, ok := a.residentByUnit(unit); ok {
		d.ResidentID, d.ResidentName = host.ID, host.Name
	} else {
		a.printf("No resident found for unit %q, logging without a host\n", unit)
	}

	v := a.mutations.AddVisitor(ctx, d)
	a.printf("%s checked in at %s\n", v.Name, stamp(v.EntryTime))
	return nil
}

// residentByUnit finds the resident of unit, ignoring case.
func (a *App) residentByUnit(unit string) (models.User, bool) {
	for _, r := range a.store.Residents() {
		if unit != "" && strings.EqualFold(r.UnitNumber, unit) {
			return r, true
		}
	}
	return models.User{}, false
}

// ExitVisitor checks a visitor out.
func (a *App) ExitVisitor(ctx context.Context, args []string) error {
	id, err := oneArg(args, "exit-visitor <id>")
	if err != nil {
		return err
	}
	if err := a.mutations.LogVisitorExit(ctx, id); err != nil {
		return err
	}
	a.printf("Visitor %s checked out\n", id)
	return nil
}
