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

package provider

import (
	"github.com/riskdesk/risk-review-service/internal/risk/service"
)

// RiskProviderInterface defines the interface for the risk provider.
type RiskProviderInterface interface {
	GetRiskService() service.RiskServiceInterface
}

// RiskProvider is the default implementation of the RiskProviderInterface.
type RiskProvider struct{}

// NewRiskProvider creates a new instance of RiskProvider.
func NewRiskProvider() RiskProviderInterface {

	return &RiskProvider{}
}

// GetRiskService returns the risk service instance.
func (rp *RiskProvider) GetRiskService() service.RiskServiceInterface {

	return service.GetRiskService()
}
