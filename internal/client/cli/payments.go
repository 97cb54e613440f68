package cli

import (
	"context"
	"fmt"
)

// Payments lists bills: all of them for an administrator, the user's own
// for a resident.
func (a *App) Payments(ctx context.Context) error {
	u := a.identity()
	list := a.store.Payments()
	if !u.IsAdmin() {
		list = a.store.PaymentsFor(u.ID)
	}
	rows := make([]string, 0, len(list))
	for _, p := range list {
		rows = append(rows, fmt.Sprintf("%s\t%s\t%s\t%s\t%.2f\t%s\t%s",
			p.ID, p.UserName, p.UnitNumber, p.Month, p.Amount, p.DueDate, p.Status))
	}
	a.table("ID\tRESIDENT\tUNIT\tMONTH\tAMOUNT\tDUE\tSTATUS", rows)
	return nil
}

// Pay marks a bill paid.
func (a *App) Pay(ctx context.Context, args []string) error {
	id, err := oneArg(args, "pay <id>")
	if err != nil {
		return err
	}
	if err := a.mutations.PayBill(ctx, id); err != nil {
		return err
	}
	a.printf("Payment %s marked as paid\n", id)
	return nil
}
