package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/civichub/internal/client/services"
	"github.com/dmitrijs2005/civichub/internal/models"
)

// Notices lists every notice, newest first.
func (a *App) Notices(ctx context.Context) error {
	list := a.store.Notices()
	rows := make([]string, 0, len(list))
	for _, n := range list {
		rows = append(rows, fmt.Sprintf("%s\t%s\t%s\t%s\t%s", n.ID, n.Category, n.Title, n.PostedBy, stamp(n.CreatedAt)))
	}
	a.table("ID\tCATEGORY\tTITLE\tPOSTED BY\tDATE", rows)
	return nil
}

// PostNotice prompts for a notice and posts it.
func (a *App) PostNotice(ctx context.Context) error {
	title, err := getSimpleText(a.reader, "Title", a.out)
	if err != nil {
		return err
	}
	if title == "" {
		return fmt.Errorf("a title is required")
	}
	content, err := getMultiline(a.reader, "Content", a.out)
	if err != nil {
		return err
	}
	category, err := getChoice(a.reader, "Category",
		[]string{string(models.NoticeGeneral), string(models.NoticeUrgent), string(models.NoticeEvent), string(models.NoticeMaintenance)},
		string(models.NoticeGeneral), a.out)
	if err != nil {
		return err
	}

	if _, err := a.mutations.AddNotice(ctx, services.NoticeDraft{
		Title:    title,
		Content:  content,
		Category: models.NoticeCategory(category),
	}); err != nil {
		return err
	}
	a.printf("Notice posted\n")
	return nil
}

// DeleteNotice removes a notice by id.
func (a *App) DeleteNotice(ctx context.Context, args []string) error {
	id, err := oneArg(args, "unnotice <id>")
	if err != nil {
		return err
	}
	if err := a.mutations.DeleteNotice(ctx, id); err != nil {
		return err
	}
	a.printf("Notice %s removed\n", id)
	return nil
}
