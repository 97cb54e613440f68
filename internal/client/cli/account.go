package cli

import (
	"context"
	"fmt"
)

// Notifications lists the user's notifications, unread ones starred.
func (a *App) Notifications(ctx context.Context) error {
	u := a.identity()
	var rows []string
	for _, n := range a.store.Notifications() {
		if n.UserID != u.ID {
			continue
		}
		mark := " "
		if !n.IsRead {
			mark = "*"
		}
		rows = append(rows, fmt.Sprintf("%s\t%s\t%s\t%s\t%s", mark, n.ID, n.Title, n.Message, stamp(n.CreatedAt)))
	}
	a.table(" \tID\tTITLE\tMESSAGE\tWHEN", rows)
	return nil
}

// Read marks one notification read, or every one with "all".
func (a *App) Read(ctx context.Context, args []string) error {
	id, err := oneArg(args, "read <id|all>")
	if err != nil {
		return err
	}
	if id == "all" {
		n := a.mutations.MarkAllNotificationsRead()
		a.printf("%d notification(s) marked as read\n", n)
		return nil
	}
	return a.mutations.MarkNotificationRead(id)
}

// Stats prints the dashboard figures for the current role.
func (a *App) Stats(ctx context.Context) error {
	u := a.identity()
	s := a.store.Stats(u)
	if u.IsAdmin() {
		a.printf("Open complaints:   %d\n", s.OpenComplaints)
		a.printf("Notices:           %d\n", s.Notices)
		a.printf("Visitors inside:   %d\n", s.VisitorsInside)
		a.printf("Visitors exited:   %d\n", s.VisitorsExited)
		a.printf("Collected:         %.2f\n", s.Collected)
		a.printf("Outstanding:       %.2f\n", s.Outstanding)
		return nil
	}
	a.printf("Pending dues:      %.2f\n", s.PendingDues)
	a.printf("Active complaints: %d\n", s.ActiveComplaints)
	a.printf("Notices:           %d\n", s.Notices)
	return nil
}

// Avatar uploads an image file as the user's profile picture.
func (a *App) Avatar(ctx context.Context, args []string) error {
	path, err := oneArg(args, "avatar <image file>")
	if err != nil {
		return err
	}
	url, err := a.profile.UploadAvatar(ctx, path)
	if err != nil {
		return err
	}
	a.printf("Avatar updated: %s\n", url)
	return nil
}
