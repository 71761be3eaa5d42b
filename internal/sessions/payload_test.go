package sessions

import (
	"errors"
	"testing"

	"github.com/judahn02/Professional-Development/internal/models"
)

func validRequest() models.WriteRequest {
	return models.WriteRequest{
		Date:           "3/4/2024",
		Title:          "Ethics Refresher",
		Length:         60,
		SType:          "Workshop",
		QualifyForCEUs: "yes",
		EventType:      "Conference",
		Presenters:     "Dr. Chen",
	}
}

func validationDetail(t *testing.T, err error) *models.Error {
	t.Helper()
	var e *models.Error
	if !errors.As(err, &e) {
		t.Fatalf("expected *models.Error, got %v", err)
	}
	if e.Kind != models.ErrValidation {
		t.Fatalf("expected validation_error, got %s", e.Kind)
	}
	return e
}

func TestCollectPayloadValid(t *testing.T) {
	p, err := CollectPayload(validRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Date != "2024-03-04" {
		t.Errorf("expected ISO date, got %q", p.Date)
	}
	if p.QualifyForCEUs != "Yes" {
		t.Errorf("expected Yes, got %q", p.QualifyForCEUs)
	}
}

func TestCollectPayloadInvalidDate(t *testing.T) {
	req := validRequest()
	req.Date = "not-a-date"
	_, err := CollectPayload(req)
	e := validationDetail(t, err)
	if e.Reason != models.ReasonInvalidDate {
		t.Errorf("expected invalid_date, got %q", e.Reason)
	}
}

func TestCollectPayloadNegativeLength(t *testing.T) {
	for _, n := range []int{-1, -90, -3600} {
		req := validRequest()
		req.Length = n
		p, err := CollectPayload(req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.Length != -n {
			t.Errorf("length %d: expected %d, got %d", n, -n, p.Length)
		}
	}
}

func TestCollectPayloadQualifyCasings(t *testing.T) {
	for _, in := range []string{"yes", "YES", "Yes ", " yEs"} {
		req := validRequest()
		req.QualifyForCEUs = in
		p, err := CollectPayload(req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.QualifyForCEUs != "Yes" {
			t.Errorf("qualify %q: expected Yes, got %q", in, p.QualifyForCEUs)
		}
	}
	for _, in := range []string{"", "no", "maybe"} {
		req := validRequest()
		req.QualifyForCEUs = in
		p, err := CollectPayload(req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.QualifyForCEUs != "No" {
			t.Errorf("qualify %q: expected No, got %q", in, p.QualifyForCEUs)
		}
	}
}

func TestCollectPayloadRequiredFieldOrder(t *testing.T) {
	cases := []struct {
		field string
		mut   func(*models.WriteRequest)
	}{
		{"title", func(r *models.WriteRequest) { r.Title = "  " }},
		{"stype", func(r *models.WriteRequest) { r.SType = "" }},
		{"eventType", func(r *models.WriteRequest) { r.EventType = "" }},
		{"presenters", func(r *models.WriteRequest) { r.Presenters = "" }},
	}
	for _, c := range cases {
		req := validRequest()
		c.mut(&req)
		_, err := CollectPayload(req)
		e := validationDetail(t, err)
		if e.Reason != models.ReasonRequiredField {
			t.Errorf("%s: expected required_field, got %q", c.field, e.Reason)
		}
		if e.Field != c.field {
			t.Errorf("expected field %q, got %q", c.field, e.Field)
		}
	}

	// Validation is not exhaustive: with everything missing, title is
	// reported first.
	_, err := CollectPayload(models.WriteRequest{Date: "3/4/2024"})
	if e := validationDetail(t, err); e.Field != "title" {
		t.Errorf("expected first failure on title, got %q", e.Field)
	}
}

func TestSanitization(t *testing.T) {
	req := validRequest()
	req.Title = "  Deep \x00 Dive\n2024  "
	req.CEUConsiderations = "line one\nline two\x07"
	p, err := CollectPayload(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Title != "Deep Dive 2024" {
		t.Errorf("expected collapsed single-line title, got %q", p.Title)
	}
	if p.CEUConsiderations != "line one\nline two" {
		t.Errorf("expected newline preserved, got %q", p.CEUConsiderations)
	}
}
