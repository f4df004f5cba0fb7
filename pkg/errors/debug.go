package errors

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
)

// ErrorDump is the log-only view of an error chain. Driver fields are filled
// for whichever database produced the innermost failure.
type ErrorDump struct {
	TopMessage string   `json:"top_message"`
	Code       Code     `json:"code,omitempty"`
	Chain      []string `json:"chain,omitempty"`

	Driver       string `json:"driver,omitempty"`
	SQLState     string `json:"sql_state,omitempty"`
	Constraint   string `json:"constraint,omitempty"`
	Table        string `json:"table,omitempty"`
	Column       string `json:"column,omitempty"`
	Detail       string `json:"detail,omitempty"`
	DriverReason string `json:"driver_message,omitempty"`
}

func Dump(err error) ErrorDump {
	if err == nil {
		return ErrorDump{}
	}

	d := ErrorDump{TopMessage: err.Error()}
	if te := As(err); te != nil {
		d.Code = te.Code()
	}
	for e := err; e != nil; e = errors.Unwrap(e) {
		d.Chain = append(d.Chain, fmt.Sprintf("%T: %v", e, e))
	}
	d.fillDriver(err)
	return d
}

func (d *ErrorDump) fillDriver(err error) {
	var pgxErr *pgconn.PgError
	if errors.As(err, &pgxErr) {
		d.Driver = "pgx"
		d.SQLState = pgxErr.Code
		d.Constraint = pgxErr.ConstraintName
		d.Table = pgxErr.TableName
		d.Column = pgxErr.ColumnName
		d.Detail = pgxErr.Detail
		d.DriverReason = pgxErr.Message
		return
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		d.Driver = "pq"
		d.SQLState = string(pqErr.Code)
		d.Constraint = pqErr.Constraint
		d.Table = pqErr.Table
		d.Column = pqErr.Column
		d.Detail = pqErr.Detail
		d.DriverReason = pqErr.Message
		return
	}

	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		d.Driver = "sqlite3"
		d.SQLState = fmt.Sprintf("%d/%d", int(liteErr.Code), int(liteErr.ExtendedCode))
		d.DriverReason = liteErr.Error()
	}
}
