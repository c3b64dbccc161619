package tui

import (
	"github.com/blackwell-systems/libdesk/internal/circulation"
	"github.com/blackwell-systems/libdesk/internal/normalize"
)

// Date renders an API timestamp as a calendar date, or "-" when it does
// not parse.
func Date(s string) string {
	if normalize.SafeDate(s) == "" {
		return "-"
	}
	return circulation.ParseTime(s).Format("2006-01-02")
}
