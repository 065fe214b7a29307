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

package provider

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/asgardeo/tokenengine/internal/system/config"
	"github.com/asgardeo/tokenengine/internal/system/constants"
	"github.com/asgardeo/tokenengine/internal/system/database/model"
)

type DBProviderTestSuite struct {
	suite.Suite
	home     string
	provider *DBProvider
}

func TestDBProviderSuite(t *testing.T) {
	suite.Run(t, new(DBProviderTestSuite))
}

func (suite *DBProviderTestSuite) SetupTest() {
	suite.home = suite.T().TempDir()
	suite.provider = NewDBProvider(suite.home, config.DatabaseConfig{
		Identity: config.DataSource{Type: "sqlite", Path: "identity.db"},
		Runtime:  config.DataSource{Type: "sqlite", Path: "runtime.db", Options: "_pragma=busy_timeout(5000)"},
	})
}

func (suite *DBProviderTestSuite) TearDownTest() {
	assert.NoError(suite.T(), suite.provider.Close())
}

func (suite *DBProviderTestSuite) TestGetDBClientReturnsSameInstance() {
	first, err := suite.provider.GetDBClient(constants.RuntimeDBName)
	suite.Require().NoError(err)
	second, err := suite.provider.GetDBClient(constants.RuntimeDBName)
	suite.Require().NoError(err)

	assert.Same(suite.T(), first, second)
	assert.Equal(suite.T(), model.DBTypeSQLite, first.GetDBType())
	assert.NoError(suite.T(), first.Ping())
	assert.FileExists(suite.T(), filepath.Join(suite.home, "runtime.db"))
}

func (suite *DBProviderTestSuite) TestGetDBClientRunsMigrations() {
	dbClient, err := suite.provider.GetDBClient(constants.IdentityDBName)
	suite.Require().NoError(err)

	rows, err := dbClient.Query(model.DBQuery{ID: "TST-01", Query: "SELECT COUNT(*) AS CNT FROM SIGNING_KEY"})
	suite.Require().NoError(err)
	assert.Equal(suite.T(), int64(0), rows[0]["cnt"])
}

func (suite *DBProviderTestSuite) TestGetDBClientUnknownName() {
	dbClient, err := suite.provider.GetDBClient("audit")

	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), dbClient)
}

func (suite *DBProviderTestSuite) TestGetDBConfig() {
	cfg, err := suite.provider.getDBConfig(config.DataSource{
		Type: "postgres", Hostname: "db", Port: 5432, Username: "u", Password: "p", Name: "runtime",
		SSLMode: "disable",
	})
	suite.Require().NoError(err)
	assert.Equal(suite.T(), "postgres", cfg.driverName)
	assert.Equal(suite.T(), "host=db port=5432 user=u password=p dbname=runtime sslmode=disable", cfg.dsn)

	cfg, err = suite.provider.getDBConfig(config.DataSource{Type: "sqlite", Path: "/data/x.db",
		Options: "?_pragma=journal_mode(WAL)"})
	suite.Require().NoError(err)
	assert.Equal(suite.T(), "/data/x.db?_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)", cfg.dsn)

	_, err = suite.provider.getDBConfig(config.DataSource{Type: "oracle"})
	assert.Error(suite.T(), err)
}

func (suite *DBProviderTestSuite) TestSQLiteOptions() {
	assert.Equal(suite.T(), "_pragma=foreign_keys(1)", sqliteOptions(""))
	assert.Equal(suite.T(), "_pragma=foreign_keys(0)", sqliteOptions("_pragma=foreign_keys(0)"))
}
