package normalize

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/judahn02/Professional-Development/internal/models"
)

// Alias resolution order per canonical field. The legacy schema names
// the same column differently across environments; the first present
// key wins and everything unrecognized is dropped.
var (
	idAliases      = []string{"id", "session_id", "ID"}
	dateAliases    = []string{"date", "session_date", "sessionDate"}
	titleAliases   = []string{"title", "session_title"}
	lengthAliases  = []string{"length", "length_minutes", "duration"}
	stypeAliases   = []string{"stype", "session_type", "type"}
	eventAliases   = []string{"eventType", "event_type"}
	weightAliases  = []string{"ceuWeight", "ceu_weight"}
	considAliases  = []string{"ceuConsiderations", "ceu_considerations"}
	qualifyAliases = []string{"qualifyForCeus", "qualify_for_ceus", "qualify"}
	presentAliases = []string{"presenters", "presenter_names"}
)

// Row projects one raw database row onto the canonical session shape.
// It is a deliberately lossy projection: every canonical field resolves
// to a defined default when absent, and malformed values (bad dates,
// unparsable membership JSON) degrade instead of failing, because a
// list or detail response must still render partially migrated data.
func Row(row map[string]any) models.Session {
	var id *int64
	if n, ok := firstInt(row, idAliases...); ok {
		id = &n
	}

	rawDate := firstNonEmpty(row, dateAliases...)
	iso := ToISODate(rawDate)
	display := rawDate
	if iso != "" {
		display = FormatDisplayDate(iso)
	}

	length := 0
	if n, ok := firstInt(row, lengthAliases...); ok {
		length = int(n)
		if length < 0 {
			length = -length
		}
	}

	return models.Session{
		ID:                id,
		Date:              display,
		ISODate:           iso,
		Title:             firstString(row, titleAliases...),
		Length:            length,
		SType:             firstString(row, stypeAliases...),
		EventType:         firstString(row, eventAliases...),
		CEUWeight:         firstString(row, weightAliases...),
		CEUConsiderations: firstString(row, considAliases...),
		QualifyForCEUs:    Qualify(firstString(row, qualifyAliases...)),
		Presenters:        firstString(row, presentAliases...),
		Members:           members(row),
	}
}

// Session re-normalizes an already-typed record. The client mirror runs
// every fetched or saved record through this so the rendered state and
// the server's canonical shape never diverge. Re-normalizing a
// canonical record returns it unchanged.
func Session(s models.Session) models.Session {
	rawDate := strings.TrimSpace(s.ISODate)
	if rawDate == "" {
		rawDate = s.Date
	}
	iso := ToISODate(rawDate)
	display := s.Date
	if iso != "" {
		display = FormatDisplayDate(iso)
	}

	length := s.Length
	if length < 0 {
		length = -length
	}

	out := s
	out.Date = display
	out.ISODate = iso
	out.Length = length
	out.QualifyForCEUs = Qualify(s.QualifyForCEUs)
	if out.Members == nil {
		out.Members = []models.Member{}
	}
	return out
}

// Qualify collapses any casing or trailing noise of "yes" to the
// literal "Yes"; everything else, including empty input, becomes "No".
func Qualify(raw string) string {
	v := strings.TrimSpace(raw)
	if len(v) > 3 {
		v = v[:3]
	}
	if strings.EqualFold(v, "yes") {
		return "Yes"
	}
	return "No"
}

// members resolves membership data from either a native array or a
// serialized JSON string. Any parse failure yields an empty sequence,
// never an error.
func members(row map[string]any) []models.Member {
	if v, ok := row["members"]; ok && v != nil {
		switch m := v.(type) {
		case []models.Member:
			out := make([]models.Member, len(m))
			copy(out, m)
			return out
		case []any:
			return membersFromAny(m)
		case string:
			return membersFromJSON(m)
		case []byte:
			return membersFromJSON(string(m))
		}
	}
	if raw := firstString(row, "members_json"); raw != "" {
		return membersFromJSON(raw)
	}
	return []models.Member{}
}

func membersFromJSON(raw string) []models.Member {
	if strings.TrimSpace(raw) == "" {
		return []models.Member{}
	}
	var decoded []models.Member
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil || decoded == nil {
		return []models.Member{}
	}
	return decoded
}

func membersFromAny(items []any) []models.Member {
	out := make([]models.Member, 0, len(items))
	for _, item := range items {
		entry, ok := item.(map[string]any)
		if !ok {
			continue
		}
		out = append(out, models.Member{
			Name:  stringify(entry["name"]),
			Email: stringify(entry["email"]),
		})
	}
	return out
}

// firstString returns the stringified value of the first key present in
// the row, or "".
func firstString(row map[string]any, keys ...string) string {
	for _, k := range keys {
		if v, ok := row[k]; ok && v != nil {
			return stringify(v)
		}
	}
	return ""
}

// firstNonEmpty is firstString but skips keys whose value stringifies
// to "", matching how the legacy mapper treated dates.
func firstNonEmpty(row map[string]any, keys ...string) string {
	for _, k := range keys {
		if v, ok := row[k]; ok && v != nil {
			if s := stringify(v); s != "" {
				return s
			}
		}
	}
	return ""
}

// firstInt resolves the first present key to an integer. Numeric
// strings are parsed; anything unconvertible reads as absent.
func firstInt(row map[string]any, keys ...string) (int64, bool) {
	for _, k := range keys {
		v, ok := row[k]
		if !ok || v == nil {
			continue
		}
		switch n := v.(type) {
		case int64:
			return n, true
		case int:
			return int64(n), true
		case float64:
			return int64(n), true
		case string:
			if parsed, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64); err == nil {
				return parsed, true
			}
		case []byte:
			if parsed, err := strconv.ParseInt(strings.TrimSpace(string(n)), 10, 64); err == nil {
				return parsed, true
			}
		}
	}
	return 0, false
}

func stringify(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case []byte:
		return string(s)
	case int64:
		return strconv.FormatInt(s, 10)
	case int:
		return strconv.Itoa(s)
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(s)
	default:
		return fmt.Sprint(s)
	}
}
