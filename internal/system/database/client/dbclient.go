/*
 * Copyright (c) 2025, WSO2 LLC. (https://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

// Package client provides database client implementations for executing queries and managing transactions.
package client

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/asgardeo/tokenengine/internal/system/database/model"
	"github.com/asgardeo/tokenengine/internal/system/log"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// DBClientInterface defines the interface for database operations.
type DBClientInterface interface {
	// Query executes a sql query that returns rows, typically a SELECT, and returns the result as a slice of maps.
	Query(query model.DBQuery, args ...any) ([]map[string]any, error)
	// Execute executes a sql query without returning data in any rows, and returns number of rows affected.
	Execute(query model.DBQuery, args ...any) (int64, error)
	// BeginTx starts a new database transaction.
	BeginTx() (TransactionInterface, error)
	// Ping verifies the database connection.
	Ping() error
	// GetDBType returns the database type the client is connected to.
	GetDBType() string
	// Close closes the database connection.
	Close() error
}

// TransactionInterface defines the operations available inside a database transaction.
type TransactionInterface interface {
	Query(query model.DBQuery, args ...any) ([]map[string]any, error)
	Execute(query model.DBQuery, args ...any) (int64, error)
	Commit() error
	Rollback() error
}

// DBClient is the implementation of DBClientInterface.
type DBClient struct {
	db     model.DBInterface
	dbType string
}

// NewDBClient creates a new instance of DBClient with the provided database connection.
func NewDBClient(db model.DBInterface, dbType string) DBClientInterface {
	return &DBClient{
		db:     db,
		dbType: dbType,
	}
}

// Query executes a sql query that returns rows, typically a SELECT, and returns the result as a slice of maps.
func (client *DBClient) Query(query model.DBQuery, args ...any) ([]map[string]any, error) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "DBClient"))
	logger.Debug("Executing query", log.String("queryID", query.GetID()))

	rows, err := client.db.Query(query.GetQuery(client.dbType), args...)
	if err != nil {
		return nil, err
	}
	return scanRows(rows, logger)
}

// Execute executes a sql query without returning data in any rows, and returns number of rows affected.
func (client *DBClient) Execute(query model.DBQuery, args ...any) (int64, error) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "DBClient"))
	logger.Debug("Executing query", log.String("queryID", query.GetID()))

	res, err := client.db.Exec(query.GetQuery(client.dbType), args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// BeginTx starts a new database transaction.
func (client *DBClient) BeginTx() (TransactionInterface, error) {
	tx, err := client.db.Begin()
	if err != nil {
		return nil, err
	}
	return &transaction{tx: model.NewTx(tx), dbType: client.dbType}, nil
}

// Ping verifies the database connection.
func (client *DBClient) Ping() error {
	return client.db.Ping()
}

// GetDBType returns the database type the client is connected to.
func (client *DBClient) GetDBType() string {
	return client.dbType
}

// Close closes the database connection.
func (client *DBClient) Close() error {
	return client.db.Close()
}

// transaction binds a model.TxInterface to the dialect of the client that opened it.
type transaction struct {
	tx     model.TxInterface
	dbType string
}

func (t *transaction) Query(query model.DBQuery, args ...any) ([]map[string]any, error) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "DBTransaction"))
	logger.Debug("Executing query", log.String("queryID", query.GetID()))

	rows, err := t.tx.Query(query.GetQuery(t.dbType), args...)
	if err != nil {
		return nil, err
	}
	return scanRows(rows, logger)
}

func (t *transaction) Execute(query model.DBQuery, args ...any) (int64, error) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "DBTransaction"))
	logger.Debug("Executing query", log.String("queryID", query.GetID()))

	res, err := t.tx.Exec(query.GetQuery(t.dbType), args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (t *transaction) Commit() error {
	return t.tx.Commit()
}

func (t *transaction) Rollback() error {
	return t.tx.Rollback()
}

// WithTransaction runs fn inside a transaction. The transaction is committed when fn returns nil
// and rolled back otherwise; a failed rollback is joined to the returned error.
func WithTransaction(dbClient DBClientInterface, fn func(tx TransactionInterface) error) error {
	tx, err := dbClient.BeginTx()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := fn(tx); err != nil {
		if rollbackErr := tx.Rollback(); rollbackErr != nil {
			err = errors.Join(err, fmt.Errorf("failed to rollback transaction: %w", rollbackErr))
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// scanRows reads all rows into maps keyed by lower-cased column names and closes the row set.
func scanRows(rows *sql.Rows, logger *log.Logger) ([]map[string]any, error) {
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			logger.Error("Error closing rows", log.Error(closeErr))
		}
	}()

	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var results []map[string]any
	for rows.Next() {
		row := make([]any, len(columns))
		rowPointers := make([]any, len(columns))
		for i := range row {
			rowPointers[i] = &row[i]
		}

		if err := rows.Scan(rowPointers...); err != nil {
			return nil, err
		}

		result := make(map[string]any, len(columns))
		for i, col := range columns {
			result[strings.ToLower(col)] = row[i]
		}
		results = append(results, result)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
