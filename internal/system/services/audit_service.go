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

package services

import (
	"net/http"
	"strings"

	"github.com/riskdesk/risk-review-service/internal/audits/handler"
	"github.com/riskdesk/risk-review-service/internal/system/constants"
)

// AuditService handles routing for audit endpoints.
type AuditService struct {
	auditHandler *handler.AuditHandler
}

func NewAuditService() *AuditService {
	return &AuditService{
		auditHandler: handler.NewAuditHandler(),
	}
}

// Route dispatches audit requests.
func (s *AuditService) Route(w http.ResponseWriter, r *http.Request) {

	path := strings.TrimPrefix(r.URL.Path, constants.ApiBasePath)
	path = strings.TrimSuffix(path, "/")

	switch {
	case r.Method == http.MethodGet && path == "/audits":
		s.auditHandler.HandleAuditListRequest(w, r)

	default:
		http.NotFound(w, r)
	}
}
