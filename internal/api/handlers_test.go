package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/judahn02/Professional-Development/internal/models"
	"github.com/judahn02/Professional-Development/internal/sessions"
)

type stubService struct {
	listFn   func() ([]models.Session, error)
	getFn    func(id int64) (models.Session, error)
	createFn func(req models.WriteRequest) (models.Session, error)
	updateFn func(id int64, req models.WriteRequest) (models.Session, error)
}

func (s *stubService) List(context.Context) ([]models.Session, error) {
	return s.listFn()
}

func (s *stubService) Get(_ context.Context, id int64) (models.Session, error) {
	return s.getFn(id)
}

func (s *stubService) Create(_ context.Context, req models.WriteRequest) (models.Session, error) {
	return s.createFn(req)
}

func (s *stubService) Update(_ context.Context, id int64, req models.WriteRequest) (models.Session, error) {
	return s.updateFn(id, req)
}

type allowVerifier struct{}

func (allowVerifier) Verify(nonce, _ string) error {
	if nonce != "good-nonce" {
		return errors.New("denied")
	}
	return nil
}

type stubHealthConn struct{}

func (stubHealthConn) QueryMaps(context.Context, string, ...any) ([]map[string]any, error) {
	return nil, nil
}
func (stubHealthConn) Exec(context.Context, string, ...any) error        { return nil }
func (stubHealthConn) WriteStatus(context.Context) (int64, int64, error) { return 0, 0, nil }
func (stubHealthConn) Close() error                                      { return nil }

func testRouter(svc SessionService) http.Handler {
	dialer := sessions.DialerFunc(func(context.Context) (sessions.Conn, error) {
		return stubHealthConn{}, nil
	})
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewRouter(svc, dialer, allowVerifier{}, logger)
}

func doRequest(t *testing.T, h http.Handler, method, path string, body any, nonce string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if nonce != "" {
		req.Header.Set(NonceHeader, nonce)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeErrorBody(t *testing.T, rec *httptest.ResponseRecorder) models.Error {
	t.Helper()
	var e models.Error
	if err := json.Unmarshal(rec.Body.Bytes(), &e); err != nil {
		t.Fatalf("decode error body %q: %v", rec.Body.String(), err)
	}
	return e
}

func sampleSession(id int64) models.Session {
	return models.Session{
		ID:             &id,
		Date:           "3/4/2024",
		ISODate:        "2024-03-04",
		Title:          "Ethics",
		QualifyForCEUs: "No",
		Members:        []models.Member{},
	}
}

func TestMissingNonceForbidden(t *testing.T) {
	router := testRouter(&stubService{})

	rec := doRequest(t, router, http.MethodGet, "/sessions", nil, "")
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
	if e := decodeErrorBody(t, rec); e.Kind != models.ErrForbidden {
		t.Errorf("expected forbidden kind, got %s", e.Kind)
	}
}

func TestListOK(t *testing.T) {
	router := testRouter(&stubService{
		listFn: func() ([]models.Session, error) {
			return []models.Session{sampleSession(1), sampleSession(2)}, nil
		},
	})

	rec := doRequest(t, router, http.MethodGet, "/sessions", nil, "good-nonce")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var out []models.Session
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(out) != 2 {
		t.Errorf("expected 2 records, got %d", len(out))
	}
}

func TestListMissingProcedure(t *testing.T) {
	router := testRouter(&stubService{
		listFn: func() ([]models.Session, error) {
			return nil, models.NewError(models.ErrMissingProcedure, "proc missing")
		},
	})

	rec := doRequest(t, router, http.MethodGet, "/sessions", nil, "good-nonce")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if e := decodeErrorBody(t, rec); e.Kind != models.ErrMissingProcedure {
		t.Errorf("expected missing_procedure, distinct from query_error, got %s", e.Kind)
	}
}

func TestGetNotFound(t *testing.T) {
	router := testRouter(&stubService{
		getFn: func(int64) (models.Session, error) {
			return models.Session{}, models.NewError(models.ErrNotFound, "Session not found.")
		},
	})

	rec := doRequest(t, router, http.MethodGet, "/sessions/42", nil, "good-nonce")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if e := decodeErrorBody(t, rec); e.Kind != models.ErrNotFound {
		t.Errorf("expected not_found, got %s", e.Kind)
	}
}

func TestGetBadID(t *testing.T) {
	called := false
	router := testRouter(&stubService{
		getFn: func(int64) (models.Session, error) {
			called = true
			return models.Session{}, nil
		},
	})

	for _, path := range []string{"/sessions/abc", "/sessions/-3", "/sessions/0"} {
		rec := doRequest(t, router, http.MethodGet, path, nil, "good-nonce")
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", path, rec.Code)
		}
	}
	if called {
		t.Error("service must not be consulted for a bad id")
	}
}

func TestCreateValidationError(t *testing.T) {
	router := testRouter(&stubService{
		createFn: func(models.WriteRequest) (models.Session, error) {
			return models.Session{}, models.ValidationError(
				models.ReasonRequiredField, "title", "Session title is required.")
		},
	})

	rec := doRequest(t, router, http.MethodPost, "/sessions",
		models.WriteRequest{Date: "3/4/2024"}, "good-nonce")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	e := decodeErrorBody(t, rec)
	if e.Kind != models.ErrValidation || e.Field != "title" {
		t.Errorf("expected title validation error, got %+v", e)
	}
}

func TestCreateCreated(t *testing.T) {
	router := testRouter(&stubService{
		createFn: func(models.WriteRequest) (models.Session, error) {
			return sampleSession(9), nil
		},
	})

	rec := doRequest(t, router, http.MethodPost, "/sessions",
		models.WriteRequest{Date: "3/4/2024", Title: "Ethics"}, "good-nonce")
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	var out models.Session
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if out.ID == nil || *out.ID != 9 {
		t.Errorf("expected created record, got %+v", out)
	}
}

func TestUpdateExecError(t *testing.T) {
	router := testRouter(&stubService{
		updateFn: func(int64, models.WriteRequest) (models.Session, error) {
			return models.Session{}, models.NewError(models.ErrExec,
				"The database reported a failure when saving the session.")
		},
	})

	rec := doRequest(t, router, http.MethodPatch, "/sessions/9",
		models.WriteRequest{Date: "3/4/2024", Title: "Ethics"}, "good-nonce")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if e := decodeErrorBody(t, rec); e.Kind != models.ErrExec {
		t.Errorf("expected exec_error, got %s", e.Kind)
	}
}

func TestHealthBypassesGate(t *testing.T) {
	router := testRouter(&stubService{})

	rec := doRequest(t, router, http.MethodGet, "/health", nil, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 without nonce, got %d", rec.Code)
	}
}
