/*
 * Copyright (c) 2025, Riskdesk (https://riskdesk.io).
 *
 * Riskdesk licenses this file to you under the Apache License,
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

package service

import (
	"github.com/pkg/errors"

	"github.com/riskdesk/risk-review-service/internal/system/database/provider"
	"github.com/riskdesk/risk-review-service/internal/system/log"
)

// HealthCheckServiceInterface defines the service interface.
type HealthCheckServiceInterface interface {
	CheckReadiness() error
}

// HealthCheckService is the default implementation.
type HealthCheckService struct{}

// GetHealthCheckService returns a new instance.
func GetHealthCheckService() HealthCheckServiceInterface {
	return &HealthCheckService{}
}

func (h HealthCheckService) CheckReadiness() error {

	if log.GetLogger() == nil {
		return errors.New("logger not initialized")
	}

	dbClient, err := provider.NewDBProvider().GetDBClient()
	if err != nil {
		return errors.Wrap(err, "failed to create database client")
	}
	defer dbClient.Close()

	if err := dbClient.Ping(); err != nil {
		return errors.Wrap(err, "database connectivity check failed")
	}
	return nil
}
