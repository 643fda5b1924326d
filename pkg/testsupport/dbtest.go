package testsupport

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// NewSQLiteMemoryDB opens a shared-cache in-memory SQLite database. A single
// connection keeps the shared cache alive for the lifetime of the handle.
func NewSQLiteMemoryDB() (*sql.DB, error) {
	return NewNamedSQLiteMemoryDB("posts_test")
}

// NewNamedSQLiteMemoryDB opens an isolated in-memory database under the given
// name so parallel tests do not observe each other's tables.
func NewNamedSQLiteMemoryDB(name string) (*sql.DB, error) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_fk=1", name)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	return db, nil
}
