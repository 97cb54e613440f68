package cli

import (
	"fmt"
	"text/tabwriter"
	"time"
)

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

// table writes tab-separated rows as aligned columns.
func (a *App) table(header string, rows []string) {
	if len(rows) == 0 {
		a.printf("(nothing to show)\n")
		return
	}
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, header)
	for _, r := range rows {
		fmt.Fprintln(tw, r)
	}
	tw.Flush()
}

// stamp formats t in local time, or "-" for the zero time.
func stamp(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04")
}

// getStatus builds the prompt prefix from the user name and the mode.
func (a *App) getStatus() string {
	s := ""
	if u := a.identity(); u != nil {
		s = u.Name + " "
	}
	s += string(a.Mode())
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}
