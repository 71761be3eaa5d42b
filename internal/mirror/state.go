// Package mirror is the client-side counterpart of the sessions
// service: it holds the fetched list and a filtered/sorted view of it,
// re-normalizes every record it receives, and submits validated writes
// through the same REST contract. Sort and filter state is explicit and
// flows through pure functions; there is no ambient mutable state.
package mirror

import (
	"sort"
	"strings"
	"time"

	"github.com/judahn02/Professional-Development/internal/models"
	"github.com/judahn02/Professional-Development/internal/normalize"
)

// SortKey names a sortable column.
type SortKey string

const (
	SortDate       SortKey = "date"
	SortTitle      SortKey = "title"
	SortSType      SortKey = "stype"
	SortLength     SortKey = "length"
	SortEventType  SortKey = "eventType"
	SortPresenters SortKey = "presenters"
)

// SortState is the active sort key and direction as an explicit value.
type SortState struct {
	Key  SortKey
	Desc bool
}

// Toggle returns the state after selecting key: the same key flips
// direction, a new key resets to ascending.
func (s SortState) Toggle(key SortKey) SortState {
	if s.Key == key {
		return SortState{Key: key, Desc: !s.Desc}
	}
	return SortState{Key: key}
}

// State is the mirror's full/filtered list pair plus the view
// parameters that derive one from the other. It is rebuilt wholesale on
// every successful fetch and never persisted.
type State struct {
	All   []models.Session
	View  []models.Session
	Sort  SortState
	Query string
}

// NewState builds a state from freshly fetched records, normalizing
// each one so the rendered shape matches the server's canonical shape.
func NewState(records []models.Session) State {
	st := State{Sort: SortState{Key: SortDate}}
	return st.WithRecords(records)
}

// WithRecords replaces the full list, keeping sort and filter settings.
func (st State) WithRecords(records []models.Session) State {
	all := make([]models.Session, 0, len(records))
	for _, rec := range records {
		all = append(all, normalize.Session(rec))
	}
	st.All = all
	return st.rebuild()
}

// WithSort applies a sort selection.
func (st State) WithSort(key SortKey) State {
	st.Sort = st.Sort.Toggle(key)
	return st.rebuild()
}

// WithQuery applies a search term. An empty term restores the full
// (still sorted) list.
func (st State) WithQuery(query string) State {
	st.Query = query
	return st.rebuild()
}

// Upsert folds a successfully created or updated record back into the
// list, normalized, keyed on id.
func (st State) Upsert(rec models.Session) State {
	rec = normalize.Session(rec)
	all := make([]models.Session, len(st.All))
	copy(all, st.All)

	replaced := false
	if rec.ID != nil {
		for i, existing := range all {
			if existing.ID != nil && *existing.ID == *rec.ID {
				all[i] = rec
				replaced = true
				break
			}
		}
	}
	if !replaced {
		all = append(all, rec)
	}
	st.All = all
	return st.rebuild()
}

func (st State) rebuild() State {
	st.View = Sort(Filter(st.All, st.Query), st.Sort)
	return st
}

// Filter returns the records whose date, title, type, presenters or
// event type contain the term, case-insensitively. An empty term
// returns a copy of the full list.
func Filter(records []models.Session, term string) []models.Session {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		out := make([]models.Session, len(records))
		copy(out, records)
		return out
	}

	out := make([]models.Session, 0, len(records))
	for _, rec := range records {
		haystack := []string{rec.Date, rec.Title, rec.SType, rec.Presenters, rec.EventType}
		for _, field := range haystack {
			if strings.Contains(strings.ToLower(field), term) {
				out = append(out, rec)
				break
			}
		}
	}
	return out
}

// Sort returns a stably sorted copy. Dates compare by parsed timestamp
// (unparsable sorts first), length compares numerically and everything
// else compares as case-insensitive text.
func Sort(records []models.Session, state SortState) []models.Session {
	out := make([]models.Session, len(records))
	copy(out, records)

	less := lessFunc(state.Key)
	sort.SliceStable(out, func(i, j int) bool {
		if state.Desc {
			return less(out[j], out[i])
		}
		return less(out[i], out[j])
	})
	return out
}

func lessFunc(key SortKey) func(a, b models.Session) bool {
	switch key {
	case SortDate:
		return func(a, b models.Session) bool {
			return dateStamp(a) < dateStamp(b)
		}
	case SortLength:
		return func(a, b models.Session) bool {
			return a.Length < b.Length
		}
	case SortTitle:
		return textLess(func(s models.Session) string { return s.Title })
	case SortSType:
		return textLess(func(s models.Session) string { return s.SType })
	case SortEventType:
		return textLess(func(s models.Session) string { return s.EventType })
	case SortPresenters:
		return textLess(func(s models.Session) string { return s.Presenters })
	default:
		return textLess(func(s models.Session) string { return s.Title })
	}
}

func textLess(field func(models.Session) string) func(a, b models.Session) bool {
	return func(a, b models.Session) bool {
		return strings.ToLower(field(a)) < strings.ToLower(field(b))
	}
}

// dateStamp parses the record's ISO date; unparsable dates read as
// epoch zero so they sort first.
func dateStamp(s models.Session) int64 {
	if s.ISODate == "" {
		return 0
	}
	t, err := time.Parse("2006-01-02", s.ISODate)
	if err != nil {
		return 0
	}
	return t.Unix()
}
