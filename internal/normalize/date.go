package normalize

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	isoDateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	usDateRe  = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`)
)

// looseLayouts is the fallback parse order for free-text dates coming
// out of the legacy schema. First match wins.
var looseLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006/01/02",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
	"2 Jan 2006",
	"01-02-2006",
}

// ToISODate converts any recognized date encoding to strict YYYY-MM-DD.
// Already-ISO input passes through unchanged, M/D/YYYY is zero-padded,
// and anything else gets a best-effort parse. Returns "" on total
// failure; it never errors, because normalization inputs are often
// legacy data that still has to render.
func ToISODate(raw string) string {
	v := strings.TrimSpace(raw)
	if v == "" {
		return ""
	}
	if isoDateRe.MatchString(v) {
		return v
	}
	if m := usDateRe.FindStringSubmatch(v); m != nil {
		month, _ := strconv.Atoi(m[1])
		day, _ := strconv.Atoi(m[2])
		year, _ := strconv.Atoi(m[3])
		return fmt.Sprintf("%04d-%02d-%02d", year, month, day)
	}
	for _, layout := range looseLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t.Format("2006-01-02")
		}
	}
	return ""
}

// FormatDisplayDate renders an ISO date as M/D/YYYY without zero
// padding. Empty input yields "". Input that is non-empty but not a
// parseable ISO date is returned unmodified rather than dropped.
func FormatDisplayDate(iso string) string {
	if iso == "" {
		return ""
	}
	t, err := time.Parse("2006-01-02", iso)
	if err != nil {
		return iso
	}
	return t.Format("1/2/2006")
}
