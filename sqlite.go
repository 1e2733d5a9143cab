package formulaic

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite" // pure go sqlite driver
)

// SQLitePersistor is the file-backed SQLPersistor variant. It opens one
// connection to the database file on first use and keeps it for the
// persistor's lifetime, and maps the store's auto-generated row id into the
// declared key field after both INSERT and UPDATE.
type SQLitePersistor struct {
	*SQLPersistor
	path string
}

// NewSQLitePersistor builds a persistor over the SQLite database at path.
func NewSQLitePersistor(path, table, keyField string, opts ...PersistorOption) *SQLitePersistor {
	connector := ConnectorFunc(func() (*sql.DB, error) {
		db, err := sql.Open("sqlite", path)
		if err != nil {
			return nil, fmt.Errorf("open sqlite %s: %w", path, err)
		}
		// one connection, held for the persistor's lifetime
		db.SetMaxOpenConns(1)
		return db, nil
	})
	mapResult := func(result sql.Result) (map[string]interface{}, error) {
		if keyField == "" {
			return nil, nil
		}
		id, err := result.LastInsertId()
		if err != nil {
			return nil, fmt.Errorf("read row id for %s: %w", table, err)
		}
		return map[string]interface{}{keyField: id}, nil
	}
	base := NewSQLPersistor(table, keyField, connector,
		append([]PersistorOption{WithResultMapper(mapResult)}, opts...)...)
	return &SQLitePersistor{SQLPersistor: base, path: path}
}

// Path returns the database file path.
func (p *SQLitePersistor) Path() string {
	return p.path
}
