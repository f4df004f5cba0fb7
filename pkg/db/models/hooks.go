package models

import "github.com/google/uuid"

// ensureID assigns a fresh UUID when the primary key was left unset. Postgres
// also defaults these columns, SQLite does not.
func ensureID(id *uuid.UUID) {
	if id != nil && *id == uuid.Nil {
		*id = uuid.New()
	}
}
