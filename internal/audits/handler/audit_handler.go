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

package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/riskdesk/risk-review-service/internal/audits/model"
	"github.com/riskdesk/risk-review-service/internal/audits/provider"
	"github.com/riskdesk/risk-review-service/internal/system/errors"
	"github.com/riskdesk/risk-review-service/internal/system/utils"
)

type AuditHandler struct{}

func NewAuditHandler() *AuditHandler {

	return &AuditHandler{}
}

// HandleAuditListRequest handles GET /audits
func (ah *AuditHandler) HandleAuditListRequest(w http.ResponseWriter, r *http.Request) {

	query, err := auditQueryFromRequest(r)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	auditProvider := provider.NewAuditProvider()
	auditService := auditProvider.GetAuditService()
	page, err := auditService.GetAudits(utils.UserIDFromRequest(r), query)
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	if page.Audits == nil {
		page.Audits = []model.Audit{}
	}
	utils.WriteJSON(w, http.StatusOK, page)
}

func auditQueryFromRequest(r *http.Request) (model.AuditQuery, error) {

	params := r.URL.Query()
	query := model.AuditQuery{
		Action: params.Get("action"),
		ItemID: params.Get("itemId"),
	}

	var err error
	if query.Page, err = intQueryParam(params.Get("page")); err != nil {
		return model.AuditQuery{}, badAuditQueryError("page must be a positive integer")
	}
	if query.Limit, err = intQueryParam(params.Get("limit")); err != nil {
		return model.AuditQuery{}, badAuditQueryError("limit must be a positive integer")
	}
	return query, nil
}

func intQueryParam(raw string) (int, error) {

	if raw == "" {
		return 0, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 1 {
		return 0, fmt.Errorf("invalid query parameter value: %s", raw)
	}
	return value, nil
}

func badAuditQueryError(description string) error {
	return errors.NewClientError(errors.ErrorMessage{
		Code:        errors.ErrBadAuditRequest.Code,
		Message:     errors.ErrBadAuditRequest.Message,
		Description: description,
	}, http.StatusBadRequest)
}
