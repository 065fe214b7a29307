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

// Package provider provides functionality for managing database connections and clients.
package provider

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v5"

	"github.com/asgardeo/tokenengine/internal/system/config"
	"github.com/asgardeo/tokenengine/internal/system/constants"
	"github.com/asgardeo/tokenengine/internal/system/database/client"
	"github.com/asgardeo/tokenengine/internal/system/database/migration"
	"github.com/asgardeo/tokenengine/internal/system/database/model"
	"github.com/asgardeo/tokenengine/internal/system/log"
	"github.com/asgardeo/tokenengine/internal/system/metrics"
)

const (
	connectMaxTries       = 5
	connectInitialBackoff = 500 * time.Millisecond
	sqliteForeignKeys     = "_pragma=foreign_keys(1)"
)

// dbConfig represents the local database configuration.
type dbConfig struct {
	dsn        string
	driverName string
}

// DBProviderInterface defines the interface for getting database clients.
type DBProviderInterface interface {
	GetDBClient(dbName string) (client.DBClientInterface, error)
	Close() error
}

// DBProvider is the implementation of DBProviderInterface.
type DBProvider struct {
	serverHome     string
	dbConfig       config.DatabaseConfig
	identityClient client.DBClientInterface
	identityMutex  sync.RWMutex
	runtimeClient  client.DBClientInterface
	runtimeMutex   sync.RWMutex
}

var (
	instance *DBProvider
	once     sync.Once
)

// GetDBProvider returns the instance of DBProvider bound to the server runtime configuration.
func GetDBProvider() DBProviderInterface {
	once.Do(func() {
		runtime := config.GetServerRuntime()
		instance = NewDBProvider(runtime.ServerHome, runtime.Config.Database)
	})
	return instance
}

// NewDBProvider creates a provider for the given database configuration. Clients are opened,
// and their schema migrated, on first use.
func NewDBProvider(serverHome string, dbConfig config.DatabaseConfig) *DBProvider {
	return &DBProvider{
		serverHome: serverHome,
		dbConfig:   dbConfig,
	}
}

// GetDBClient returns a database client based on the provided database name.
// Not required to close the returned client manually since it manages its own connection pool.
func (d *DBProvider) GetDBClient(dbName string) (client.DBClientInterface, error) {
	switch dbName {
	case constants.IdentityDBName:
		return d.getOrInitClient(&d.identityClient, &d.identityMutex, dbName, d.dbConfig.Identity)
	case constants.RuntimeDBName:
		return d.getOrInitClient(&d.runtimeClient, &d.runtimeMutex, dbName, d.dbConfig.Runtime)
	default:
		return nil, fmt.Errorf("unsupported database name: %s", dbName)
	}
}

// getOrInitClient gets or initializes a DB client with locking.
func (d *DBProvider) getOrInitClient(clientPtr *client.DBClientInterface, mutex *sync.RWMutex,
	dbName string, dataSource config.DataSource) (client.DBClientInterface, error) {
	mutex.RLock()
	if *clientPtr != nil {
		dbClient := *clientPtr
		mutex.RUnlock()
		return dbClient, nil
	}
	mutex.RUnlock()

	mutex.Lock()
	defer mutex.Unlock()

	if *clientPtr != nil {
		return *clientPtr, nil
	}

	dbClient, err := d.initializeClient(dbName, dataSource)
	if err != nil {
		return nil, err
	}
	*clientPtr = dbClient
	return dbClient, nil
}

// initializeClient opens the connection pool, waits for the database to accept connections and
// applies the schema migrations.
func (d *DBProvider) initializeClient(dbName string, dataSource config.DataSource) (
	client.DBClientInterface, error) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "DBProvider"))

	dbConfig, err := d.getDBConfig(dataSource)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(dbConfig.driverName, dbConfig.dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database %s: %w", dbName, err)
	}

	if dataSource.MaxOpenConns > 0 {
		db.SetMaxOpenConns(dataSource.MaxOpenConns)
	}
	if dataSource.MaxIdleConns > 0 {
		db.SetMaxIdleConns(dataSource.MaxIdleConns)
	}
	if dataSource.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(time.Duration(dataSource.ConnMaxLifetime) * time.Second)
	}

	if err := pingWithRetry(db, dbName, logger); err != nil {
		return nil, closeOnError(db, fmt.Errorf("failed to ping database %s: %w", dbName, err))
	}

	if err := migration.RunMigrations(db, dbName, dbConfig.driverName); err != nil {
		return nil, closeOnError(db, err)
	}

	if err := metrics.RegisterDBStats(db, dbName); err != nil {
		logger.Warn("Failed to register database pool metrics", log.String("database", dbName), log.Error(err))
	}

	logger.Debug("Database client initialized", log.String("database", dbName),
		log.String("type", dbConfig.driverName))
	return client.NewDBClient(model.NewDB(db), dbConfig.driverName), nil
}

// pingWithRetry retries the initial ping with exponential backoff so the server can start
// alongside a database that is still coming up.
func pingWithRetry(db *sql.DB, dbName string, logger *log.Logger) error {
	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = connectInitialBackoff

	operation := func() (struct{}, error) {
		if err := db.Ping(); err != nil {
			logger.Warn("Database is not reachable yet", log.String("database", dbName), log.Error(err))
			return struct{}{}, err
		}
		return struct{}{}, nil
	}

	_, err := backoff.Retry(context.Background(), operation, backoff.WithBackOff(exp),
		backoff.WithMaxTries(connectMaxTries))
	return err
}

func closeOnError(db *sql.DB, err error) error {
	if closeErr := db.Close(); closeErr != nil {
		return errors.Join(err, fmt.Errorf("close error: %w", closeErr))
	}
	return err
}

// getDBConfig returns the database configuration based on the provided data source.
func (d *DBProvider) getDBConfig(dataSource config.DataSource) (dbConfig, error) {
	var cfg dbConfig

	switch dataSource.Type {
	case model.DBTypePostgres:
		cfg.driverName = model.DBTypePostgres
		cfg.dsn = fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			dataSource.Hostname, dataSource.Port, dataSource.Username, dataSource.Password,
			dataSource.Name, dataSource.SSLMode)
	case model.DBTypeSQLite, "":
		cfg.driverName = model.DBTypeSQLite
		dbPath := dataSource.Path
		if !path.IsAbs(dbPath) {
			dbPath = path.Join(d.serverHome, dbPath)
		}
		cfg.dsn = dbPath + "?" + sqliteOptions(dataSource.Options)
	default:
		return cfg, fmt.Errorf("unsupported database type: %s", dataSource.Type)
	}

	return cfg, nil
}

// sqliteOptions normalizes the configured DSN options and makes sure foreign keys are enforced
// on every pooled connection.
func sqliteOptions(options string) string {
	options = strings.TrimPrefix(options, "?")
	if strings.Contains(options, "foreign_keys") {
		return options
	}
	if options == "" {
		return sqliteForeignKeys
	}
	return options + "&" + sqliteForeignKeys
}

// Close closes the database connections. The server calls it after the HTTP server has drained.
func (d *DBProvider) Close() error {
	identityErr := closeClient(&d.identityClient, &d.identityMutex, constants.IdentityDBName)
	runtimeErr := closeClient(&d.runtimeClient, &d.runtimeMutex, constants.RuntimeDBName)
	return errors.Join(identityErr, runtimeErr)
}

// closeClient is a helper to close a DB client with locking.
func closeClient(clientPtr *client.DBClientInterface, mutex *sync.RWMutex, clientName string) error {
	mutex.Lock()
	defer mutex.Unlock()
	if *clientPtr != nil {
		if err := (*clientPtr).Close(); err != nil {
			return fmt.Errorf("failed to close %s client: %w", clientName, err)
		}
		*clientPtr = nil
	}
	return nil
}
