// Package gateway opens one MySQL connection per request and drives
// stored procedures over it. The procedures signal business-rule
// success through the @ok session variable, so the write path must pin
// a single connection and drain every result set before reusing it.
package gateway

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/go-sql-driver/mysql"

	"github.com/judahn02/Professional-Development/internal/models"
	"github.com/judahn02/Professional-Development/internal/sessions"
)

// erSPDoesNotExist is MySQL's ER_SP_DOES_NOT_EXIST.
const erSPDoesNotExist = 1305

// Credentials are the already-decrypted connection settings. Decryption
// is an external collaborator's responsibility; the gateway only checks
// that every required value is present.
type Credentials struct {
	Host string
	Name string
	User string
	Pass string
}

func (c Credentials) complete() bool {
	return c.Host != "" && c.Name != "" && c.User != ""
}

// Gateway dials the backing store. It is stateless: each Connect call
// yields an independent connection that the caller must close.
type Gateway struct {
	creds  Credentials
	logger *slog.Logger
}

// New creates a gateway over the given credentials.
func New(creds Credentials, logger *slog.Logger) *Gateway {
	if logger == nil {
		logger = slog.Default()
	}
	return &Gateway{creds: creds, logger: logger}
}

// Connect validates credentials and opens a single pinned connection.
// Missing credentials fail fast as credentials_error; an unreachable
// store is connect_error.
func (g *Gateway) Connect(ctx context.Context) (sessions.Conn, error) {
	if !g.creds.complete() {
		return nil, models.NewError(models.ErrCredentials,
			"Database credentials are missing or could not be decrypted.")
	}

	cfg := mysql.NewConfig()
	cfg.Net = "tcp"
	cfg.Addr = g.creds.Host
	cfg.DBName = g.creds.Name
	cfg.User = g.creds.User
	cfg.Passwd = g.creds.Pass
	cfg.Params = map[string]string{"charset": "utf8mb4"}

	connector, err := mysql.NewConnector(cfg)
	if err != nil {
		return nil, models.NewError(models.ErrConnect,
			"Database connection failed: "+err.Error())
	}

	db := sql.OpenDB(connector)
	db.SetMaxOpenConns(1)

	// Pin one driver connection so the @ok session variable set by a
	// write procedure is visible to the follow-up status query.
	conn, err := db.Conn(ctx)
	if err != nil {
		db.Close()
		return nil, models.NewError(models.ErrConnect,
			"Database connection failed: "+err.Error())
	}

	return &procConn{db: db, conn: conn, logger: g.logger}, nil
}

// procConn implements sessions.Conn on one pinned MySQL connection.
type procConn struct {
	db     *sql.DB
	conn   *sql.Conn
	logger *slog.Logger
}

// QueryMaps runs a statement and collects the rows of its first result
// set as column-keyed maps, then drains any remaining sets.
func (c *procConn) QueryMaps(ctx context.Context, query string, args ...any) ([]map[string]any, error) {
	rows, err := c.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapDBError(err, "Query failed.")
	}
	defer rows.Close()

	out, err := collectMaps(rows)
	if err != nil {
		drain(rows)
		return nil, mapDBError(err, "Failed to read query results.")
	}
	if err := drain(rows); err != nil {
		return nil, mapDBError(err, "Failed to drain query results.")
	}
	return out, nil
}

// Exec runs a statement for its side effects. Stored procedure calls
// still produce result sets, so it queries and drains rather than using
// the driver's Exec path.
func (c *procConn) Exec(ctx context.Context, query string, args ...any) error {
	rows, err := c.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return mapDBError(err, "Statement failed.")
	}
	defer rows.Close()
	if err := drain(rows); err != nil {
		return mapDBError(err, "Failed to drain statement results.")
	}
	return nil
}

// WriteStatus reads back the procedure's success flag and last insert
// id. It deliberately uses a fresh statement rather than the
// procedure's own result set, which may already be consumed.
func (c *procConn) WriteStatus(ctx context.Context) (int64, int64, error) {
	rows, err := c.conn.QueryContext(ctx, "SELECT @ok AS success, LAST_INSERT_ID() AS id")
	if err != nil {
		return 0, 0, models.NewError(models.ErrExec,
			"Unable to determine stored procedure status.")
	}
	defer rows.Close()

	var success, id sql.NullInt64
	if rows.Next() {
		if err := rows.Scan(&success, &id); err != nil {
			drain(rows)
			return 0, 0, models.NewError(models.ErrExec,
				"Unable to determine stored procedure status.")
		}
	}
	if err := drain(rows); err != nil {
		c.logger.Warn("drain after write status", "error", err)
	}

	// An absent flag reads as 0 and the controller treats it as failure.
	return success.Int64, id.Int64, nil
}

// Close releases the pinned connection and the handle behind it. It is
// safe on every exit path.
func (c *procConn) Close() error {
	err := c.conn.Close()
	if dbErr := c.db.Close(); err == nil {
		err = dbErr
	}
	return err
}

// collectMaps reads every row of the current result set into maps keyed
// by column name, converting driver byte slices to strings.
func collectMaps(rows *sql.Rows) ([]map[string]any, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var out []map[string]any
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}

		row := make(map[string]any, len(cols))
		for i, col := range cols {
			switch v := values[i].(type) {
			case []byte:
				row[col] = string(v)
			default:
				row[col] = v
			}
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// drain advances through every remaining result set. Stored procedures
// that set session variables leave a trailing status set behind; if it
// is not consumed the next statement on this connection fails.
func drain(rows *sql.Rows) error {
	for rows.NextResultSet() {
		for rows.Next() {
		}
	}
	return rows.Err()
}

// mapDBError converts a driver error into the typed taxonomy. A missing
// stored procedure is distinguished from generic query failures so a
// schema/deployment mismatch is actionable from the error alone.
func mapDBError(err error, message string) error {
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) && myErr.Number == erSPDoesNotExist {
		return models.NewError(models.ErrMissingProcedure,
			"The expected stored procedure is missing. Create it in the database or update the configured procedure names.")
	}
	return models.NewError(models.ErrQuery, message+" "+err.Error())
}
