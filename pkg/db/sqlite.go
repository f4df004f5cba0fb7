package db

import (
	"database/sql"
	"regexp"
	"sync"

	"github.com/mattn/go-sqlite3"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// SQLiteDriverName is a go-sqlite3 driver with a REGEXP function so catalog
// search behaves the same as the postgres ~* operator.
const SQLiteDriverName = "sqlite3_aperture"

var registerSQLite sync.Once

// SQLiteDialector opens dsn with the REGEXP enabled driver.
func SQLiteDialector(dsn string) gorm.Dialector {
	registerSQLite.Do(func() {
		sql.Register(SQLiteDriverName, &sqlite3.SQLiteDriver{
			ConnectHook: func(conn *sqlite3.SQLiteConn) error {
				return conn.RegisterFunc("regexp", sqliteRegexp, true)
			},
		})
	})
	return sqlite.New(sqlite.Config{DriverName: SQLiteDriverName, DSN: dsn})
}

// sqliteRegexp backs "X REGEXP Y", which sqlite rewrites to regexp(Y, X).
func sqliteRegexp(pattern, value string) (bool, error) {
	return regexp.MatchString(pattern, value)
}
