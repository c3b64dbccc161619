package normalize

import "github.com/blackwell-systems/libdesk/internal/circulation"

// SafeDate returns s unchanged when it parses as a timestamp and "" when
// it does not, so bad dates render as blank instead of garbage.
func SafeDate(s string) string {
	if circulation.ParseTime(s).IsZero() {
		return ""
	}
	return s
}
