package normalize

import (
	"reflect"
	"testing"

	"github.com/judahn02/Professional-Development/internal/models"
)

func TestRowAliasPrecedence(t *testing.T) {
	rec := Row(map[string]any{"session_id": int64(42), "session_title": "Ethics"})
	if rec.ID == nil || *rec.ID != 42 {
		t.Errorf("expected id 42 from session_id alias, got %v", rec.ID)
	}
	if rec.Title != "Ethics" {
		t.Errorf("expected title from session_title alias, got %q", rec.Title)
	}

	// First present key wins.
	rec = Row(map[string]any{"id": "7", "session_id": int64(42)})
	if rec.ID == nil || *rec.ID != 7 {
		t.Errorf("expected id alias to win over session_id, got %v", rec.ID)
	}
}

func TestRowDefaults(t *testing.T) {
	rec := Row(map[string]any{})
	if rec.ID != nil {
		t.Errorf("expected nil id, got %v", rec.ID)
	}
	if rec.ISODate != "" || rec.Date != "" || rec.Title != "" {
		t.Errorf("expected empty string defaults, got %+v", rec)
	}
	if rec.Length != 0 {
		t.Errorf("expected zero length, got %d", rec.Length)
	}
	if rec.QualifyForCEUs != "No" {
		t.Errorf("expected qualify default No, got %q", rec.QualifyForCEUs)
	}
	if rec.Members == nil || len(rec.Members) != 0 {
		t.Errorf("expected empty members slice, got %v", rec.Members)
	}
}

func TestRowDateFallback(t *testing.T) {
	rec := Row(map[string]any{"date": "3/4/2024"})
	if rec.ISODate != "2024-03-04" {
		t.Errorf("expected ISO date, got %q", rec.ISODate)
	}
	if rec.Date != "3/4/2024" {
		t.Errorf("expected display date, got %q", rec.Date)
	}

	// Unparseable raw date: isoDate empty, display falls back to input.
	rec = Row(map[string]any{"session_date": "spring term"})
	if rec.ISODate != "" {
		t.Errorf("expected empty isoDate, got %q", rec.ISODate)
	}
	if rec.Date != "spring term" {
		t.Errorf("expected raw fallback, got %q", rec.Date)
	}
}

func TestRowNegativeLength(t *testing.T) {
	rec := Row(map[string]any{"duration": int64(-90)})
	if rec.Length != 90 {
		t.Errorf("expected abs(length) 90, got %d", rec.Length)
	}
}

func TestRowMembers(t *testing.T) {
	// Serialized JSON string.
	rec := Row(map[string]any{
		"members_json": `[{"name":"Ada Lovelace","email":"ada@example.org"}]`,
	})
	want := []models.Member{{Name: "Ada Lovelace", Email: "ada@example.org"}}
	if !reflect.DeepEqual(rec.Members, want) {
		t.Errorf("expected parsed members, got %v", rec.Members)
	}

	// Native array.
	rec = Row(map[string]any{
		"members": []any{map[string]any{"name": "Grace", "email": "grace@example.org"}},
	})
	if len(rec.Members) != 1 || rec.Members[0].Name != "Grace" {
		t.Errorf("expected array members used as-is, got %v", rec.Members)
	}

	// Malformed JSON never aborts a response.
	rec = Row(map[string]any{"members_json": `{"oops`})
	if rec.Members == nil || len(rec.Members) != 0 {
		t.Errorf("expected empty members on parse failure, got %v", rec.Members)
	}
}

func TestQualify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"yes", "Yes"},
		{"YES", "Yes"},
		{"Yes ", "Yes"},
		{"yessir", "Yes"},
		{"no", "No"},
		{"maybe", "No"},
		{"", "No"},
	}
	for _, c := range cases {
		if got := Qualify(c.in); got != c.want {
			t.Errorf("Qualify(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestSessionIdempotent(t *testing.T) {
	id := int64(5)
	canonical := models.Session{
		ID:             &id,
		Date:           "3/4/2024",
		ISODate:        "2024-03-04",
		Title:          "Ethics Refresher",
		Length:         60,
		SType:          "Workshop",
		EventType:      "Conference",
		QualifyForCEUs: "Yes",
		Presenters:     "Dr. Chen",
		Members:        []models.Member{{Name: "Ada", Email: "ada@example.org"}},
	}
	once := Session(canonical)
	if !reflect.DeepEqual(once, canonical) {
		t.Errorf("normalizing a canonical record changed it:\n got %+v\nwant %+v", once, canonical)
	}
	twice := Session(once)
	if !reflect.DeepEqual(twice, once) {
		t.Errorf("re-normalization is not idempotent:\n got %+v\nwant %+v", twice, once)
	}
}

func TestSessionRepairsLooseRecord(t *testing.T) {
	loose := models.Session{Date: "3/4/2024", QualifyForCEUs: "yes", Length: -30}
	fixed := Session(loose)
	if fixed.ISODate != "2024-03-04" {
		t.Errorf("expected derived isoDate, got %q", fixed.ISODate)
	}
	if fixed.QualifyForCEUs != "Yes" {
		t.Errorf("expected Yes, got %q", fixed.QualifyForCEUs)
	}
	if fixed.Length != 30 {
		t.Errorf("expected abs length, got %d", fixed.Length)
	}
	if fixed.Members == nil {
		t.Error("expected members slice, got nil")
	}
}
