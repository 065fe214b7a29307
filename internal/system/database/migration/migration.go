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

// Package migration applies the embedded schema migrations to the identity and runtime databases.
package migration

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/asgardeo/tokenengine/internal/system/constants"
	"github.com/asgardeo/tokenengine/internal/system/database/model"
	"github.com/asgardeo/tokenengine/internal/system/log"
)

//go:embed migrations
var migrations embed.FS

// RunMigrations brings the schema of the named logical database up to date.
// The caller keeps ownership of db; it is not closed here.
func RunMigrations(db *sql.DB, dbName, dbType string) error {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "DBMigration"),
		log.String("database", dbName))

	dir, err := migrationDir(dbName, dbType)
	if err != nil {
		return err
	}

	source, err := iofs.New(migrations, dir)
	if err != nil {
		return fmt.Errorf("failed to load migrations for %s: %w", dbName, err)
	}

	target, err := newTarget(db, dbName, dbType)
	if err != nil {
		return fmt.Errorf("failed to create migration target for %s: %w", dbName, err)
	}

	migrator, err := migrate.NewWithInstance("iofs", source, dbName, target)
	if err != nil {
		return fmt.Errorf("failed to create migrator for %s: %w", dbName, err)
	}

	if err := migrator.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			logger.Debug("Database schema is up to date")
			return nil
		}
		return fmt.Errorf("failed to migrate %s database: %w", dbName, err)
	}

	version, dirty, err := migrator.Version()
	if err == nil {
		logger.Info("Database schema migrated", log.Any("version", version), log.Bool("dirty", dirty))
	}
	return nil
}

func migrationDir(dbName, dbType string) (string, error) {
	if dbName != constants.IdentityDBName && dbName != constants.RuntimeDBName {
		return "", fmt.Errorf("unsupported database name: %s", dbName)
	}
	if dbType != model.DBTypePostgres && dbType != model.DBTypeSQLite {
		return "", fmt.Errorf("unsupported database type: %s", dbType)
	}
	return "migrations/" + dbName + "/" + dbType, nil
}

// newTarget wraps db in the golang-migrate driver of its dialect. Each logical database keeps its
// own version table so both can share one physical database.
func newTarget(db *sql.DB, dbName, dbType string) (database.Driver, error) {
	migrationsTable := "schema_migrations_" + dbName
	if dbType == model.DBTypePostgres {
		return postgres.WithInstance(db, &postgres.Config{MigrationsTable: migrationsTable})
	}
	return sqlite.WithInstance(db, &sqlite.Config{MigrationsTable: migrationsTable})
}
