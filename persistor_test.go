package formulaic

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/formulaic/formulaic/logger"
)

func TestInsertSQL(t *testing.T) {
	p := NewSQLPersistor("people", "id", nil)

	sqlText := p.insertSQL(map[string]interface{}{
		"first_name": "Alice",
		"age":        30,
		"email":      nil,
	})
	assert.Equal(t,
		"INSERT INTO people (Age, Email, FirstName) VALUES ('30', NULL, 'Alice')",
		sqlText)
}

func TestUpdateSQL(t *testing.T) {
	p := NewSQLPersistor("people", "id", nil)

	sqlText := p.updateSQL(
		map[string]interface{}{"id": int64(1)},
		map[string]interface{}{"first_name": "Bob", "age": 31},
	)
	assert.Equal(t,
		"UPDATE people SET Age = '31', FirstName = 'Bob' WHERE Id = '1'",
		sqlText)
}

func TestPartition(t *testing.T) {
	p := NewSQLPersistor("people", "id", nil)

	keyAttrs, nonKeyAttrs := p.partition(map[string]interface{}{
		"id":   int64(1),
		"name": "Alice",
	})
	assert.Equal(t, map[string]interface{}{"id": int64(1)}, keyAttrs)
	assert.Equal(t, map[string]interface{}{"name": "Alice"}, nonKeyAttrs)
}

func TestPersistInsertsWhenKeyFalsy(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	p := NewSQLPersistor("people", "id", nil,
		WithDB(db), WithPersistorLogger(logger.Discard))

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO people (Name) VALUES ('Alice')")).
		WillReturnResult(sqlmock.NewResult(7, 1))

	keys, err := p.Persist(context.Background(), map[string]interface{}{
		"id":   nil,
		"name": "Alice",
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{}, keys)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPersistUpdatesWhenKeyTruthy(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	p := NewSQLPersistor("people", "id", nil,
		WithDB(db), WithPersistorLogger(logger.Discard))

	mock.ExpectExec(regexp.QuoteMeta("UPDATE people SET Name = 'Bob' WHERE Id = '7'")).
		WillReturnResult(sqlmock.NewResult(7, 1))

	_, err = p.Persist(context.Background(), map[string]interface{}{
		"id":   int64(7),
		"name": "Bob",
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPersistExecError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	p := NewSQLPersistor("people", "id", nil,
		WithDB(db), WithPersistorLogger(logger.Discard))

	mock.ExpectExec("INSERT INTO people").
		WillReturnError(errors.New("no such table"))

	_, err = p.Persist(context.Background(), map[string]interface{}{"name": "Alice"})
	assert.ErrorContains(t, err, "no such table")
}

func TestPersistResultMapper(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	p := NewSQLPersistor("people", "id", nil,
		WithDB(db), WithPersistorLogger(logger.Discard),
		WithResultMapper(func(result sql.Result) (map[string]interface{}, error) {
			id, mapErr := result.LastInsertId()
			if mapErr != nil {
				return nil, mapErr
			}
			return map[string]interface{}{"id": id}, nil
		}))

	mock.ExpectExec("INSERT INTO people").
		WillReturnResult(sqlmock.NewResult(42, 1))

	keys, err := p.Persist(context.Background(), map[string]interface{}{"name": "Alice"})
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{"id": int64(42)}, keys)
}

func TestPersistMissingConnector(t *testing.T) {
	p := NewSQLPersistor("people", "id", nil)

	_, err := p.Persist(context.Background(), map[string]interface{}{"name": "Alice"})
	assert.ErrorIs(t, err, ErrMissingConnector)
}

func TestConnectFailureIsFatal(t *testing.T) {
	calls := 0
	p := NewSQLPersistor("people", "id", ConnectorFunc(func() (*sql.DB, error) {
		calls++
		return nil, errors.New("refused")
	}))

	_, err := p.Persist(context.Background(), map[string]interface{}{"name": "Alice"})
	assert.ErrorContains(t, err, "refused")
	assert.Equal(t, 1, calls)
}

func TestConnectorRunsOnce(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	calls := 0
	p := NewSQLPersistor("people", "", ConnectorFunc(func() (*sql.DB, error) {
		calls++
		return db, nil
	}), WithPersistorLogger(logger.Discard))

	mock.ExpectExec("INSERT INTO people").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO people").WillReturnResult(sqlmock.NewResult(2, 1))

	_, err = p.Persist(context.Background(), map[string]interface{}{"name": "Alice"})
	require.NoError(t, err)
	_, err = p.Persist(context.Background(), map[string]interface{}{"name": "Bob"})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestColumnValue(t *testing.T) {
	assert.Equal(t, "NULL", columnValue(nil))
	assert.Equal(t, "'Alice'", columnValue("Alice"))
	assert.Equal(t, "'42'", columnValue(42))
	assert.Equal(t, "'true'", columnValue(true))
	// embedded quotes are not escaped
	assert.Equal(t, "'O'Brien'", columnValue("O'Brien"))
}
