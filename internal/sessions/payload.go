package sessions

import (
	"strings"

	"github.com/judahn02/Professional-Development/internal/models"
	"github.com/judahn02/Professional-Development/internal/normalize"
)

// CollectPayload sanitizes and validates a client write request into
// the canonical write payload. It is pure and runs before any database
// interaction. Validation is not exhaustive: the first failing rule
// wins, in a fixed order (date, then required text fields).
func CollectPayload(req models.WriteRequest) (models.WritePayload, error) {
	iso := normalize.ToISODate(req.Date)
	if iso == "" {
		return models.WritePayload{}, models.ValidationError(
			models.ReasonInvalidDate, "date", "Invalid session date.")
	}

	length := req.Length
	if length < 0 {
		length = -length
	}

	p := models.WritePayload{
		Date:              iso,
		Title:             sanitizeLine(req.Title),
		Length:            length,
		SType:             sanitizeLine(req.SType),
		CEUWeight:         sanitizeLine(req.CEUWeight),
		CEUConsiderations: sanitizeBlock(req.CEUConsiderations),
		QualifyForCEUs:    normalize.Qualify(req.QualifyForCEUs),
		EventType:         sanitizeLine(req.EventType),
		Presenters:        sanitizeLine(req.Presenters),
	}

	required := []struct {
		field, value, message string
	}{
		{"title", p.Title, "Session title is required."},
		{"stype", p.SType, "Session type is required."},
		{"eventType", p.EventType, "Event type is required."},
		{"presenters", p.Presenters, "Presenter information is required."},
	}
	for _, r := range required {
		if r.value == "" {
			return models.WritePayload{}, models.ValidationError(
				models.ReasonRequiredField, r.field, r.message)
		}
	}

	return p, nil
}

// sanitizeLine strips control characters, collapses runs of whitespace
// to single spaces and trims the result. Single-line fields only.
func sanitizeLine(s string) string {
	return strings.Join(strings.Fields(stripControl(s, false)), " ")
}

// sanitizeBlock strips control characters but preserves newlines and
// tabs, for multi-line fields.
func sanitizeBlock(s string) string {
	return strings.TrimSpace(stripControl(s, true))
}

func stripControl(s string, keepBreaks bool) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r == '\n' || r == '\t' {
			if keepBreaks {
				b.WriteRune(r)
			} else {
				b.WriteRune(' ')
			}
			continue
		}
		if r < 0x20 || r == 0x7f {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
