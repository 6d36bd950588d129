package db

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"

	"github.com/btmxh/dersflix/internal/errs"
	_ "github.com/lib/pq"
)

var DB *sql.DB
var GenericError = errors.New("Unable to access database")

// Tx wraps a transaction so that every failure is reported to the
// handler. Methods return hasErr instead of an error; callers only need
// to stop what they are doing.
type Tx struct {
	transaction *sql.Tx
	handler     errs.ErrorHandler
}

func (tx *Tx) PublicError(statusCode int, err error) {
	tx.handler.PublicError(statusCode, err)
}

func (tx *Tx) PrivateError(err error) {
	tx.handler.PrivateError(err)
}

type QueryRow struct {
	row *sql.Row
	tx  *Tx
}

func InitDB(connStr string) error {
	var err error
	DB, err = sql.Open("postgres", connStr)
	if err != nil {
		return err
	}

	return DB.Ping()
}

func DatabaseError(handler errs.ErrorHandler, err error) {
	handler.PrivateError(err)
	handler.PublicError(http.StatusInternalServerError, GenericError)
}

func BeginTx(handler errs.ErrorHandler) *Tx {
	tx, err := DB.Begin()
	if err != nil {
		DatabaseError(handler, err)
		return nil
	}

	return &Tx{transaction: tx, handler: handler}
}

func (tx *Tx) Exec(result *sql.Result, query string, args ...any) (hasErr bool) {
	res, err := tx.transaction.Exec(query, args...)
	if err != nil {
		DatabaseError(tx.handler, err)
		return true
	}

	if result != nil {
		*result = res
	}

	return false
}

// ExecAffected reports notFoundErr as a public 404 when no row was
// touched by the statement.
func (tx *Tx) ExecAffected(notFoundErr error, query string, args ...any) (hasErr bool) {
	var result sql.Result
	if tx.Exec(&result, query, args...) {
		return true
	}

	affected, err := result.RowsAffected()
	if err != nil {
		DatabaseError(tx.handler, err)
		return true
	}

	if affected == 0 {
		tx.PublicError(http.StatusNotFound, notFoundErr)
		return true
	}

	return false
}

func (tx *Tx) Query(rows **sql.Rows, query string, args ...any) (hasErr bool) {
	r, err := tx.transaction.Query(query, args...)
	if err != nil {
		DatabaseError(tx.handler, err)
		return true
	}

	if rows != nil {
		*rows = r
	}

	return false
}

// ScanRows calls scan for every row and closes rows afterwards.
func (tx *Tx) ScanRows(rows *sql.Rows, scan func(rows *sql.Rows) error) (hasErr bool) {
	defer rows.Close()
	for rows.Next() {
		if err := scan(rows); err != nil {
			DatabaseError(tx.handler, err)
			return true
		}
	}

	if err := rows.Err(); err != nil {
		DatabaseError(tx.handler, err)
		return true
	}

	return false
}

func (tx *Tx) QueryRow(query string, args ...any) *QueryRow {
	return &QueryRow{row: tx.transaction.QueryRow(query, args...), tx: tx}
}

// Scan treats sql.ErrNoRows as an error only when hasRow is nil.
func (row *QueryRow) Scan(hasRow *bool, dest ...any) (hasErr bool) {
	err := row.row.Scan(dest...)
	hasErr = err != nil && (hasRow == nil || err != sql.ErrNoRows)
	if hasErr {
		DatabaseError(row.tx.handler, err)
	}
	if hasRow != nil {
		*hasRow = err == nil
	}
	return hasErr
}

func (tx *Tx) Rollback() {
	tx.transaction.Rollback()
}

func (tx *Tx) Commit() (hasErr bool) {
	err := tx.transaction.Commit()
	if err != nil {
		DatabaseError(tx.handler, err)
		return true
	}

	return false
}

func CloseDB() {
	if err := DB.Close(); err != nil {
		slog.Warn("error while closing database", "err", err)
	}
}
