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

package managers

import (
	"net/http"
	"strings"

	"github.com/riskdesk/risk-review-service/internal/system/authn"
	"github.com/riskdesk/risk-review-service/internal/system/authz"
	"github.com/riskdesk/risk-review-service/internal/system/constants"
	syscontext "github.com/riskdesk/risk-review-service/internal/system/context"
	"github.com/riskdesk/risk-review-service/internal/system/log"
	"github.com/riskdesk/risk-review-service/internal/system/metrics"
	"github.com/riskdesk/risk-review-service/internal/system/services"
	"github.com/riskdesk/risk-review-service/internal/system/utils"
)

type ServiceManagerInterface interface {
	RegisterServices(apiBasePath string) error
}

type ServiceManager struct {
	mux *http.ServeMux
}

// NewServiceManager creates a new instance of ServiceManager.
func NewServiceManager(mux *http.ServeMux) ServiceManagerInterface {

	return &ServiceManager{
		mux: mux,
	}
}

func (sm *ServiceManager) RegisterServices(apiBasePath string) error {

	healthService := services.NewHealthService()
	sm.mux.HandleFunc("/health", healthService.Route)
	sm.mux.HandleFunc("/ready", healthService.Route)
	sm.mux.Handle("/metrics", metrics.GetCollector().Handler())

	itemService := services.NewItemService()
	ruleService := services.NewRuleService()
	auditService := services.NewAuditService()
	scoreService := services.NewScoreService()

	// Every API endpoint goes through a single authenticated dispatcher.
	sm.mux.HandleFunc(apiBasePath+"/", func(w http.ResponseWriter, r *http.Request) {

		traceID := syscontext.GetOrGenerateTraceID(r.Context())
		r = r.WithContext(syscontext.WithTraceID(r.Context(), traceID))
		w.Header().Set("X-Trace-Id", traceID)

		session, err := authn.ValidateRequest(r)
		if err != nil {
			log.GetLogger().Audit(log.AuditEvent{
				InitiatorID:   "unknown",
				InitiatorType: log.InitiatorTypeUser,
				ActionID:      log.ActionAuthenticationFailure,
				TraceID:       traceID,
				Data:          map[string]string{"path": r.URL.Path},
			})
			utils.HandleError(w, err)
			return
		}

		path := strings.TrimPrefix(r.URL.Path, apiBasePath)
		path = strings.TrimSuffix(path, "/")

		operation, known := operationFor(path, r.Method)
		if !known {
			http.NotFound(w, r)
			return
		}
		if !authz.ValidatePermission(session.Scopes, operation) {
			utils.HandleError(w, utils.ForbiddenError())
			return
		}

		r = r.WithContext(utils.WithSession(r.Context(), session.UserID, session.Scopes))
		switch {
		case strings.HasPrefix(path, "/items"):
			itemService.Route(w, r)
		case strings.HasPrefix(path, "/rules"):
			ruleService.Route(w, r)
		case strings.HasPrefix(path, "/audits"):
			auditService.Route(w, r)
		case strings.HasPrefix(path, "/score"):
			scoreService.Route(w, r)
		default:
			http.NotFound(w, r)
		}
	})
	return nil
}

// operationFor maps a request to the scope-gated operation it performs.
func operationFor(path, method string) (string, bool) {

	read := method == http.MethodGet
	switch {
	case strings.HasPrefix(path, "/items"):
		if read {
			return constants.OperationItemsRead, true
		}
		return constants.OperationItemsWrite, true
	case strings.HasPrefix(path, "/rules"):
		if read {
			return constants.OperationRulesRead, true
		}
		return constants.OperationRulesWrite, true
	case strings.HasPrefix(path, "/audits"):
		return constants.OperationAuditsRead, true
	case strings.HasPrefix(path, "/score"):
		if read {
			return constants.OperationItemsRead, true
		}
		return constants.OperationItemsWrite, true
	}
	return "", false
}
