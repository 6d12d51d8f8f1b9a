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
	"github.com/riskdesk/risk-review-service/internal/audits/service"
)

// AuditProviderInterface defines the interface for the audit provider.
type AuditProviderInterface interface {
	GetAuditService() service.AuditServiceInterface
}

// AuditProvider is the default implementation of the AuditProviderInterface.
type AuditProvider struct{}

// NewAuditProvider creates a new instance of AuditProvider.
func NewAuditProvider() AuditProviderInterface {

	return &AuditProvider{}
}

// GetAuditService returns the audit service instance.
func (ap *AuditProvider) GetAuditService() service.AuditServiceInterface {

	return service.GetAuditService()
}
