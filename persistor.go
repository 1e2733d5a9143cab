package formulaic

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/formulaic/formulaic/logger"
	"github.com/formulaic/formulaic/utils"
)

// Persistor stores a flat attribute map and reports the key attributes the
// backing store assigned, or nil when it produced no result.
type Persistor interface {
	Persist(ctx context.Context, attrs map[string]interface{}) (map[string]interface{}, error)
}

// Connector lazily supplies the database handle for a SQLPersistor. Connect
// runs once, on the persistor's first use; failure to open is fatal and
// never retried.
type Connector interface {
	Connect() (*sql.DB, error)
}

// ConnectorFunc adapts a function to the Connector interface.
type ConnectorFunc func() (*sql.DB, error)

// Connect calls fn.
func (fn ConnectorFunc) Connect() (*sql.DB, error) { return fn() }

// ResultMapper translates a driver result into key attribute data. A nil map
// signals no result, which Model.Persist reports as false.
type ResultMapper func(result sql.Result) (map[string]interface{}, error)

// SQLPersistor persists attribute maps as hand-built INSERT and UPDATE
// statements. Values are embedded as naive quoted literals with no escaping
// of embedded quotes; table and field names must be SQL-safe identifiers.
// One persistor holds at most one connection and may serve many models, but
// is not safe for concurrent use.
type SQLPersistor struct {
	table     string
	keyFields map[string]struct{}
	namer     Namer
	log       logger.Interface
	connector Connector
	mapResult ResultMapper
	db        *sql.DB
}

// PersistorOption configures a SQLPersistor at construction time.
type PersistorOption func(*SQLPersistor)

// WithPersistorNamer overrides the default NamingStrategy.
func WithPersistorNamer(namer Namer) PersistorOption {
	return func(p *SQLPersistor) {
		if namer != nil {
			p.namer = namer
		}
	}
}

// WithPersistorLogger overrides the default logger.
func WithPersistorLogger(log logger.Interface) PersistorOption {
	return func(p *SQLPersistor) {
		if log != nil {
			p.log = log
		}
	}
}

// WithResultMapper overrides how driver results map back to key attributes.
func WithResultMapper(mapResult ResultMapper) PersistorOption {
	return func(p *SQLPersistor) {
		if mapResult != nil {
			p.mapResult = mapResult
		}
	}
}

// WithDB supplies a pre-opened handle, bypassing the connector.
func WithDB(db *sql.DB) PersistorOption {
	return func(p *SQLPersistor) { p.db = db }
}

// NewSQLPersistor builds a persistor for table. keyField names the sole key
// attribute; pass "" for a keyless table, which always takes the INSERT
// path. The base result mapping reports no key data.
func NewSQLPersistor(table, keyField string, connector Connector, opts ...PersistorOption) *SQLPersistor {
	p := &SQLPersistor{
		table:     table,
		keyFields: map[string]struct{}{},
		namer:     NamingStrategy{},
		log:       logger.Default,
		connector: connector,
		mapResult: func(sql.Result) (map[string]interface{}, error) {
			return map[string]interface{}{}, nil
		},
	}
	if keyField != "" {
		p.keyFields[keyField] = struct{}{}
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Persist partitions attrs into key and non-key attributes and issues an
// UPDATE when keys are present and every one holds a truthy value, an
// INSERT otherwise.
func (p *SQLPersistor) Persist(ctx context.Context, attrs map[string]interface{}) (map[string]interface{}, error) {
	keyAttrs, nonKeyAttrs := p.partition(attrs)
	query := p.insertSQL(nonKeyAttrs)
	if len(keyAttrs) > 0 && allTruthy(keyAttrs) {
		query = p.updateSQL(keyAttrs, nonKeyAttrs)
	}
	return p.exec(ctx, query)
}

func (p *SQLPersistor) conn() (*sql.DB, error) {
	if p.db != nil {
		return p.db, nil
	}
	if p.connector == nil {
		return nil, ErrMissingConnector
	}
	db, err := p.connector.Connect()
	if err != nil {
		return nil, fmt.Errorf("connect persistor for %s: %w", p.table, err)
	}
	p.db = db
	return p.db, nil
}

func (p *SQLPersistor) exec(ctx context.Context, query string) (map[string]interface{}, error) {
	db, err := p.conn()
	if err != nil {
		return nil, err
	}
	begin := time.Now()
	result, err := db.ExecContext(ctx, query)
	p.log.Trace(ctx, begin, func() (string, int64) {
		if result == nil {
			return query, -1
		}
		rows, rowsErr := result.RowsAffected()
		if rowsErr != nil {
			return query, -1
		}
		return query, rows
	}, err)
	if err != nil {
		return nil, fmt.Errorf("exec on %s: %w", p.table, err)
	}
	return p.mapResult(result)
}

func (p *SQLPersistor) partition(attrs map[string]interface{}) (map[string]interface{}, map[string]interface{}) {
	keyAttrs := map[string]interface{}{}
	nonKeyAttrs := map[string]interface{}{}
	for name, value := range attrs {
		if _, ok := p.keyFields[name]; ok {
			keyAttrs[name] = value
		} else {
			nonKeyAttrs[name] = value
		}
	}
	return keyAttrs, nonKeyAttrs
}

// insertSQL builds "INSERT INTO <table> (<Col>, ...) VALUES (<'v'>, ...)".
// Columns appear in sorted attribute-name order so statements are stable.
func (p *SQLPersistor) insertSQL(nonKeyAttrs map[string]interface{}) string {
	names := sortedNames(nonKeyAttrs)
	columns := make([]string, len(names))
	values := make([]string, len(names))
	for i, name := range names {
		columns[i] = p.namer.ColumnName(name)
		values[i] = columnValue(nonKeyAttrs[name])
	}
	return fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)",
		p.namer.TableName(p.table),
		strings.Join(columns, ", "),
		strings.Join(values, ", "),
	)
}

// updateSQL builds "UPDATE <table> SET <Col> = <'v'>, ... WHERE
// <KeyCol> = <'v'> AND ...", in sorted attribute-name order.
func (p *SQLPersistor) updateSQL(keyAttrs, nonKeyAttrs map[string]interface{}) string {
	assignments := make([]string, 0, len(nonKeyAttrs))
	for _, name := range sortedNames(nonKeyAttrs) {
		assignments = append(assignments, fmt.Sprintf("%s = %s", p.namer.ColumnName(name), columnValue(nonKeyAttrs[name])))
	}
	conditions := make([]string, 0, len(keyAttrs))
	for _, name := range sortedNames(keyAttrs) {
		conditions = append(conditions, fmt.Sprintf("%s = %s", p.namer.ColumnName(name), columnValue(keyAttrs[name])))
	}
	return fmt.Sprintf(
		"UPDATE %s SET %s WHERE %s",
		p.namer.TableName(p.table),
		strings.Join(assignments, ", "),
		strings.Join(conditions, " AND "),
	)
}

// columnValue serializes a value as a SQL literal: NULL for nil, a single
// quoted stringification otherwise. Embedded quotes are not escaped.
func columnValue(value interface{}) string {
	if value == nil {
		return "NULL"
	}
	return "'" + utils.ToString(value) + "'"
}

func sortedNames(attrs map[string]interface{}) []string {
	names := make([]string, 0, len(attrs))
	for name := range attrs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func allTruthy(attrs map[string]interface{}) bool {
	for _, value := range attrs {
		if utils.IsZero(value) {
			return false
		}
	}
	return true
}
