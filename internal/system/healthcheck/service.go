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

// Package healthcheck provides the liveness and readiness endpoints of the server.
package healthcheck

import (
	"github.com/asgardeo/tokenengine/internal/system/constants"
	dbmodel "github.com/asgardeo/tokenengine/internal/system/database/model"
	"github.com/asgardeo/tokenengine/internal/system/database/provider"
	"github.com/asgardeo/tokenengine/internal/system/log"
)

var queryIdentityDBTable = dbmodel.DBQuery{
	ID:    "HLC-00001",
	Query: "SELECT 1 FROM SIGNING_KEY WHERE 1 = 0",
}

var queryRuntimeDBTable = dbmodel.DBQuery{
	ID:    "HLC-00002",
	Query: "SELECT 1 FROM TOKEN_FAMILY WHERE 1 = 0",
}

// HealthCheckServiceInterface defines the interface for the health check service.
type HealthCheckServiceInterface interface {
	CheckReadiness() ServerStatus
}

// healthCheckService is the default implementation of the HealthCheckServiceInterface.
type healthCheckService struct {
	dbProvider provider.DBProviderInterface
}

// NewHealthCheckService creates a health check service reading both databases through dbProvider.
func NewHealthCheckService(dbProvider provider.DBProviderInterface) HealthCheckServiceInterface {
	return &healthCheckService{dbProvider: dbProvider}
}

// CheckReadiness checks the readiness of the server and its dependencies.
func (hcs *healthCheckService) CheckReadiness() ServerStatus {
	identityDBStatus := ServiceStatus{
		ServiceName: "IdentityDB",
		Status:      hcs.checkDatabaseStatus(constants.IdentityDBName, queryIdentityDBTable),
	}
	runtimeDBStatus := ServiceStatus{
		ServiceName: "RuntimeDB",
		Status:      hcs.checkDatabaseStatus(constants.RuntimeDBName, queryRuntimeDBTable),
	}

	status := StatusUp
	if identityDBStatus.Status == StatusDown || runtimeDBStatus.Status == StatusDown {
		status = StatusDown
	}
	return ServerStatus{
		Status:        status,
		ServiceStatus: []ServiceStatus{identityDBStatus, runtimeDBStatus},
	}
}

// checkDatabaseStatus checks the status of the specified database with the specified query.
func (hcs *healthCheckService) checkDatabaseStatus(dbName string, query dbmodel.DBQuery) Status {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "HealthCheckService"))

	dbClient, err := hcs.dbProvider.GetDBClient(dbName)
	if err != nil {
		logger.Error("Failed to get database client", log.String("database", dbName), log.Error(err))
		return StatusDown
	}

	if _, err := dbClient.Query(query); err != nil {
		logger.Error("Failed to execute query", log.String("database", dbName), log.Error(err))
		return StatusDown
	}
	return StatusUp
}
