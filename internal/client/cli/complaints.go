package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/civichub/internal/client/services"
	"github.com/dmitrijs2005/civichub/internal/models"
)

// Complaints lists complaints: all of them for an administrator, the
// user's own for a resident. An optional status argument filters the list.
func (a *App) Complaints(ctx context.Context, args []string) error {
	u := a.identity()
	list := a.store.Complaints()
	if !u.IsAdmin() {
		list = a.store.ComplaintsFor(u.ID)
	}

	var filter models.ComplaintStatus
	if len(args) > 0 {
		filter = models.ComplaintStatus(strings.ToUpper(args[0]))
		if !filter.Valid() {
			return usageError("complaints [OPEN|IN_PROGRESS|RESOLVED]")
		}
	}

	rows := make([]string, 0, len(list))
	for _, c := range list {
		if filter != "" && c.Status != filter {
			continue
		}
		rows = append(rows, fmt.Sprintf("%s\t%s\t%s\t%s\t%s\t%s\t%s",
			c.ID, c.Title, c.UnitNumber, c.Category, c.Priority, c.Status, stamp(c.CreatedAt)))
	}
	a.table("ID\tTITLE\tUNIT\tCATEGORY\tPRIORITY\tSTATUS\tRAISED", rows)
	return nil
}

// Complain raises a new complaint for the signed-in user.
func (a *App) Complain(ctx context.Context) error {
	title, err := getSimpleText(a.reader, "Title", a.out)
	if err != nil {
		return err
	}
	if title == "" {
		return fmt.Errorf("a title is required")
	}
	desc, err := getMultiline(a.reader, "Description", a.out)
	if err != nil {
		return err
	}
	category, err := getSimpleText(a.reader, "Category (default "+models.DefaultComplaintCategory+")", a.out)
	if err != nil {
		return err
	}
	priority, err := getChoice(a.reader, "Priority",
		[]string{string(models.PriorityLow), string(models.PriorityMedium), string(models.PriorityHigh), string(models.PriorityUrgent)},
		string(models.PriorityMedium), a.out)
	if err != nil {
		return err
	}

	c, err := a.mutations.AddComplaint(ctx, services.ComplaintDraft{
		Title:       title,
		Description: desc,
		Category:    category,
		Priority:    models.Priority(priority),
	})
	if err != nil {
		return err
	}
	a.printf("Complaint raised for %s\n", c.UnitNumber)
	return nil
}

// SetStatus moves a complaint to any status without waiting for the backend.
func (a *App) SetStatus(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return usageError("status <id> <OPEN|IN_PROGRESS|RESOLVED>")
	}
	status := models.ComplaintStatus(strings.ToUpper(args[1]))
	if err := a.mutations.UpdateComplaintStatus(ctx, args[0], status); err != nil {
		return err
	}
	a.printf("Complaint %s is now %s\n", args[0], status)
	return nil
}

// Solve resolves a complaint and waits for the backend to confirm.
func (a *App) Solve(ctx context.Context, args []string) error {
	id, err := oneArg(args, "solve <id>")
	if err != nil {
		return err
	}
	if err := a.mutations.ResolveComplaint(ctx, id); err != nil {
		return err
	}
	a.printf("Complaint %s resolved\n", id)
	return nil
}
