// Package dumpdb writes per-filing-unit results to a SQLite database with a
// base table of unit characteristics, one table per policy scenario and a
// meta table describing the run.
package dumpdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/iwvelando/taxcalc/internal/records"
)

// Table names.
const (
	BaseTable     = "base"
	BaselineTable = "baseline"
	ReformTable   = "reform"
	MetaTable     = "meta"
)

// BaseVars are the unit characteristics written to the base table.
var BaseVars = []records.Var{
	records.RECID, records.S006, records.MARS, records.XTOT, records.DSI,
	records.EIC, records.N24, records.AgeHead, records.AgeSpouse,
}

// Meta describes a run.
type Meta struct {
	RunID     string
	TaxYear   int
	Input     string
	Baseline  string
	Reform    string
	Assump    string
	CreatedAt time.Time
}

// Writer writes a dump database.
type Writer struct {
	logger *zap.Logger
	db     *sql.DB
	path   string
}

// Create opens a new database at path, replacing any existing file.
func Create(logger *zap.Logger, path string) (*Writer, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to remove existing database %s: %w", path, err)
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return &Writer{logger: logger, db: db, path: path}, nil
}

// Close closes the database.
func (w *Writer) Close() error {
	return w.db.Close()
}

// WriteMeta writes the single-row meta table.
func (w *Writer) WriteMeta(ctx context.Context, m Meta) error {
	schema := `CREATE TABLE meta (
		run_id TEXT PRIMARY KEY,
		tax_year INTEGER NOT NULL,
		input TEXT NOT NULL,
		baseline TEXT,
		reform TEXT,
		assump TEXT,
		created_at TEXT NOT NULL
	)`
	if _, err := w.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create meta table: %w", err)
	}
	_, err := w.db.ExecContext(ctx,
		`INSERT INTO meta (run_id, tax_year, input, baseline, reform, assump, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		m.RunID, m.TaxYear, m.Input, m.Baseline, m.Reform, m.Assump, m.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to insert meta row: %w", err)
	}
	return nil
}

// WriteBase writes the base table from r. Its income_group column is zero
// for users to fill in.
func (w *Writer) WriteBase(ctx context.Context, r *records.Records) error {
	return w.writeTable(ctx, BaseTable, r, BaseVars, "income_group")
}

// WriteScenario writes vars of r to the baseline or reform table. RECID is
// always included as the primary key.
func (w *Writer) WriteScenario(ctx context.Context, table string, r *records.Records, vars []records.Var) error {
	if table != BaselineTable && table != ReformTable {
		return fmt.Errorf("unknown scenario table %q", table)
	}
	cols := []records.Var{records.RECID}
	for _, v := range vars {
		if v != records.RECID {
			cols = append(cols, v)
		}
	}
	return w.writeTable(ctx, table, r, cols, "")
}

func sqlType(v records.Var) string {
	if v.Info().Integer {
		return "INTEGER"
	}
	return "REAL"
}

func (w *Writer) writeTable(ctx context.Context, table string, r *records.Records, vars []records.Var, extra string) error {
	defs := make([]string, 0, len(vars)+1)
	names := make([]string, 0, len(vars)+1)
	for _, v := range vars {
		def := fmt.Sprintf("%q %s", v.Name(), sqlType(v))
		if v == records.RECID {
			def += " PRIMARY KEY"
		}
		defs = append(defs, def)
		names = append(names, fmt.Sprintf("%q", v.Name()))
	}
	if extra != "" {
		defs = append(defs, fmt.Sprintf("%q INTEGER NOT NULL DEFAULT 0", extra))
	}
	if _, err := w.db.ExecContext(ctx, fmt.Sprintf("CREATE TABLE %q (%s)", table, strings.Join(defs, ", "))); err != nil {
		return fmt.Errorf("failed to create %s table: %w", table, err)
	}

	tx, err := w.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(vars)), ", ")
	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf("INSERT INTO %q (%s) VALUES (%s)", table, strings.Join(names, ", "), placeholders))
	if err != nil {
		return fmt.Errorf("failed to prepare %s insert: %w", table, err)
	}
	defer stmt.Close()

	cols := make([][]float64, len(vars))
	for j, v := range vars {
		cols[j] = r.Col(v)
	}
	args := make([]any, len(vars))
	for i := 0; i < r.Len(); i++ {
		for j, v := range vars {
			if v.Info().Integer {
				args[j] = int64(cols[j][i])
			} else {
				args[j] = cols[j][i]
			}
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("failed to insert %s row %d: %w", table, i, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit %s table: %w", table, err)
	}
	w.logger.Debug("wrote dump table",
		zap.String("op", "dumpdb.writeTable"),
		zap.String("path", w.path),
		zap.String("table", table),
		zap.Int("rows", r.Len()),
		zap.Int("columns", len(vars)),
	)
	return nil
}
