package sessions

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/judahn02/Professional-Development/internal/models"
	"github.com/judahn02/Professional-Development/internal/normalize"
)

// Dialer opens one database connection per request. The service never
// reuses a connection across requests and closes every connection it
// opens, on every branch.
type Dialer interface {
	Connect(ctx context.Context) (Conn, error)
}

// DialerFunc adapts a function to the Dialer interface.
type DialerFunc func(ctx context.Context) (Conn, error)

func (f DialerFunc) Connect(ctx context.Context) (Conn, error) { return f(ctx) }

// Conn is a single live database session. QueryMaps and Exec must drain
// every pending result set before returning: the stored procedures set
// session variables and leave secondary result sets behind, and an
// undrained set corrupts the next statement on the same connection.
type Conn interface {
	// QueryMaps runs a statement and returns the rows of its first
	// result set as column-keyed maps.
	QueryMaps(ctx context.Context, query string, args ...any) ([]map[string]any, error)
	// Exec runs a statement for its side effects.
	Exec(ctx context.Context, query string, args ...any) error
	// WriteStatus reads back the procedure's success flag and the last
	// insert id via a dedicated follow-up statement.
	WriteStatus(ctx context.Context) (success int64, lastID int64, err error)
	Close() error
}

// Procs names the stored procedures the service drives. The legacy
// deployment allowed overriding each one, so they come from config.
type Procs struct {
	Fetch  string
	Detail string
	Insert string
	Update string
}

// DefaultProcs returns the procedure names of the reference schema.
func DefaultProcs() Procs {
	return Procs{
		Fetch:  "sessions_table_view",
		Detail: "session_profile_view",
		Insert: "add_session",
		Update: "update_session",
	}
}

// Service is the resource controller for session records: list, get,
// create and update over the stored-procedure gateway. It is stateless;
// all state lives in the request payload or the database.
type Service struct {
	dialer Dialer
	procs  Procs
	logger *slog.Logger
}

// NewService creates a session service.
func NewService(dialer Dialer, procs Procs, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{dialer: dialer, procs: procs, logger: logger}
}

// List fetches and normalizes every session row.
func (s *Service) List(ctx context.Context) ([]models.Session, error) {
	conn, err := s.dialer.Connect(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	rows, err := conn.QueryMaps(ctx, fmt.Sprintf("CALL %s()", s.procs.Fetch))
	if err != nil {
		return nil, err
	}

	out := make([]models.Session, 0, len(rows))
	for _, row := range rows {
		out = append(out, normalize.Row(row))
	}
	return out, nil
}

// Get fetches one session by id. Zero rows is a not_found error.
func (s *Service) Get(ctx context.Context, id int64) (models.Session, error) {
	conn, err := s.dialer.Connect(ctx)
	if err != nil {
		return models.Session{}, err
	}
	defer conn.Close()

	row, err := s.fetchRow(ctx, conn, id)
	if err != nil {
		return models.Session{}, err
	}
	if row == nil {
		return models.Session{}, models.NewError(models.ErrNotFound, "Session not found.")
	}
	return normalize.Row(row), nil
}

// Create validates the payload, runs the insert procedure, confirms the
// procedure's own success flag and re-fetches the stored row. The flag
// check exists because a stored procedure can succeed at the SQL level
// while failing its internal business rule, signaled only through @ok.
func (s *Service) Create(ctx context.Context, req models.WriteRequest) (models.Session, error) {
	p, err := CollectPayload(req)
	if err != nil {
		return models.Session{}, err
	}

	conn, err := s.dialer.Connect(ctx)
	if err != nil {
		return models.Session{}, err
	}
	defer conn.Close()

	call := fmt.Sprintf("CALL %s(?, ?, ?, ?, ?, ?, ?, ?, ?, @ok)", s.procs.Insert)
	err = conn.Exec(ctx, call,
		p.Date, p.Title, p.Length, p.SType, p.CEUWeight,
		p.CEUConsiderations, p.QualifyForCEUs, p.EventType, p.Presenters)
	if err != nil {
		return models.Session{}, err
	}

	newID, err := s.confirmWrite(ctx, conn)
	if err != nil {
		return models.Session{}, err
	}

	return s.refetch(ctx, conn, newID)
}

// Update validates the payload and id, runs the update procedure,
// confirms the success flag and re-fetches the row keyed on id.
func (s *Service) Update(ctx context.Context, id int64, req models.WriteRequest) (models.Session, error) {
	p, err := CollectPayload(req)
	if err != nil {
		return models.Session{}, err
	}
	if id <= 0 {
		return models.Session{}, models.ValidationError(
			models.ReasonBadID, "id", "Invalid session identifier.")
	}

	conn, err := s.dialer.Connect(ctx)
	if err != nil {
		return models.Session{}, err
	}
	defer conn.Close()

	call := fmt.Sprintf("CALL %s(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, @ok)", s.procs.Update)
	err = conn.Exec(ctx, call,
		id, p.Date, p.Title, p.Length, p.SType, p.CEUWeight,
		p.CEUConsiderations, p.QualifyForCEUs, p.EventType, p.Presenters)
	if err != nil {
		return models.Session{}, err
	}

	if _, err := s.confirmWrite(ctx, conn); err != nil {
		return models.Session{}, err
	}

	return s.refetch(ctx, conn, id)
}

// confirmWrite reads the @ok flag set by the write procedure on this
// connection. Any value other than the literal 1, including an absent
// one, is a fatal exec_error even when the CALL itself reported no
// error.
func (s *Service) confirmWrite(ctx context.Context, conn Conn) (int64, error) {
	success, lastID, err := conn.WriteStatus(ctx)
	if err != nil {
		return 0, err
	}
	if success != 1 {
		s.logger.Error("stored procedure denied write", "success", success)
		return 0, models.NewError(models.ErrExec,
			"The database reported a failure when saving the session.")
	}
	return lastID, nil
}

// refetch reads the written row back through the normal read path. A
// miss here is a data-consistency fault: the write was confirmed but
// the row is gone. It is reported, not retried.
func (s *Service) refetch(ctx context.Context, conn Conn, id int64) (models.Session, error) {
	row, err := s.fetchRow(ctx, conn, id)
	if err != nil {
		return models.Session{}, err
	}
	if row == nil {
		s.logger.Error("session missing after confirmed write", "id", id)
		return models.Session{}, models.NewError(models.ErrNotFound,
			"Session not found after saving.")
	}
	return normalize.Row(row), nil
}

// fetchRow runs the detail procedure. The identifier is interpolated
// rather than bound because it is an internally validated integer.
func (s *Service) fetchRow(ctx context.Context, conn Conn, id int64) (map[string]any, error) {
	rows, err := conn.QueryMaps(ctx, fmt.Sprintf("CALL %s(%d)", s.procs.Detail, id))
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}
