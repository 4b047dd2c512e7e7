// Package postgres provides an Engine backed by a PostgreSQL database.
// Declarations are executed as SQL statements, and Tables are imported into
// existing SQL tables using COPY
package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/kode4food/frame/engine"
	"github.com/kode4food/frame/engine/config"
	"github.com/kode4food/frame/table"
)

type (
	// Conn is the subset of a pgx connection or pool that the Engine uses
	Conn interface {
		Exec(
			ctx context.Context, sql string, args ...interface{},
		) (pgconn.CommandTag, error)
		CopyFrom(
			ctx context.Context, name pgx.Identifier, cols []string,
			src pgx.CopyFromSource,
		) (int64, error)
	}

	// Engine imports Tables into PostgreSQL
	Engine struct {
		conn   Conn
		pool   *pgxpool.Pool
		logger *slog.Logger
	}
)

// Pool settings
const (
	MaxConns          = 10
	MinConns          = 1
	HealthCheckPeriod = 5 * time.Second
	MaxConnLifetime   = 30 * time.Minute
	MaxConnIdleTime   = 30 * time.Minute
)

// ErrShortCopy is raised when the database accepts fewer rows than the Table
// holds
var ErrShortCopy = errors.New("database copied fewer rows than provided")

// Make wraps an existing connection or pool
func Make(c Conn, o ...config.Option) (*Engine, error) {
	cfg, err := config.Apply(o...)
	if err != nil {
		return nil, err
	}
	return &Engine{
		conn:   c,
		logger: cfg.Logger.With(slog.String("session", cfg.SessionID.String())),
	}, nil
}

// Connect opens a connection pool to the database identified by dsn
func Connect(
	ctx context.Context, dsn string, o ...config.Option,
) (*Engine, error) {
	pc, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}
	pc.MaxConns = MaxConns
	pc.MinConns = MinConns
	pc.HealthCheckPeriod = HealthCheckPeriod
	pc.MaxConnLifetime = MaxConnLifetime
	pc.MaxConnIdleTime = MaxConnIdleTime

	pool, err := pgxpool.ConnectConfig(ctx, pc)
	if err != nil {
		return nil, err
	}
	e, err := Make(pool, o...)
	if err != nil {
		pool.Close()
		return nil, err
	}
	e.pool = pool
	e.logger.Debug("connected to database")
	return e, nil
}

// Close releases the pool opened by Connect. Engines created with Make leave
// their connection alone
func (e *Engine) Close() {
	if e.pool != nil {
		e.pool.Close()
	}
}

func (e *Engine) Declare(ctx context.Context, stmt string) error {
	stmt = strings.TrimSpace(stmt)
	if stmt == "" {
		return engine.ErrEmptyStatement
	}
	tag, err := e.conn.Exec(ctx, stmt)
	if err != nil {
		return err
	}
	e.logger.Debug("declared", slog.String("result", tag.String()))
	return nil
}

// Import copies every row of the Table into the SQL table named by target,
// which may be schema qualified. Column names are used as SQL column names
func (e *Engine) Import(
	ctx context.Context, t table.Table, target string,
) error {
	if target == "" {
		return engine.ErrTargetRequired
	}
	if err := t.Validate(); err != nil {
		return err
	}
	rows, err := t.Rows()
	if err != nil {
		return err
	}

	src := make([][]interface{}, 0, t.RowCount())
	for r := range rows {
		row := make([]interface{}, 0, len(r.Key)+len(r.Values))
		row = append(row, r.Key...)
		src = append(src, append(row, r.Values...))
	}

	cols := t.Columns()
	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = string(c)
	}

	n, err := e.conn.CopyFrom(ctx,
		pgx.Identifier(strings.Split(target, ".")), names,
		pgx.CopyFromRows(src),
	)
	if err != nil {
		return err
	}
	if n != int64(len(src)) {
		return fmt.Errorf("%w: %d of %d", ErrShortCopy, n, len(src))
	}
	e.logger.Info("imported table",
		slog.String("target", target),
		slog.Int64("rows", n),
	)
	return nil
}
