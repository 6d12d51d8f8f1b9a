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
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/riskdesk/risk-review-service/internal/rules/model"
	"github.com/riskdesk/risk-review-service/internal/rules/provider"
	"github.com/riskdesk/risk-review-service/internal/system/errors"
	"github.com/riskdesk/risk-review-service/internal/system/log"
	"github.com/riskdesk/risk-review-service/internal/system/utils"
)

type RuleHandler struct{}

func NewRuleHandler() *RuleHandler {

	return &RuleHandler{}
}

// HandleRulePostRequest handles POST /rules
func (rh *RuleHandler) HandleRulePostRequest(w http.ResponseWriter, r *http.Request) {

	var request model.RuleRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&request); err != nil {
		utils.HandleError(w, badRulePayloadError(err))
		return
	}

	ruleProvider := provider.NewRuleProvider()
	ruleService := ruleProvider.GetRuleService()
	rule, err := ruleService.AddRule(request, utils.UserIDFromRequest(r))
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	log.GetLogger().Info(fmt.Sprintf("Risk rule: %s created successfully", rule.RuleID))
	utils.WriteJSON(w, http.StatusCreated, rule)
}

// HandleRuleListRequest handles GET /rules
func (rh *RuleHandler) HandleRuleListRequest(w http.ResponseWriter, r *http.Request) {

	ruleProvider := provider.NewRuleProvider()
	ruleService := ruleProvider.GetRuleService()
	rules, err := ruleService.GetRules(utils.UserIDFromRequest(r))
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	if rules == nil {
		rules = []model.Rule{}
	}
	utils.WriteJSON(w, http.StatusOK, rules)
}

// HandleRuleGetRequest handles GET /rules/{rule_id}
func (rh *RuleHandler) HandleRuleGetRequest(w http.ResponseWriter, r *http.Request) {

	ruleID, ok := ruleIDFromPath(w, r)
	if !ok {
		return
	}

	ruleProvider := provider.NewRuleProvider()
	ruleService := ruleProvider.GetRuleService()
	rule, err := ruleService.GetRule(ruleID, utils.UserIDFromRequest(r))
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, rule)
}

// HandleRulePatchRequest handles PATCH /rules/{rule_id}
func (rh *RuleHandler) HandleRulePatchRequest(w http.ResponseWriter, r *http.Request) {

	ruleID, ok := ruleIDFromPath(w, r)
	if !ok {
		return
	}

	var patch model.RulePatch
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&patch); err != nil {
		utils.HandleError(w, badRulePayloadError(err))
		return
	}

	ruleProvider := provider.NewRuleProvider()
	ruleService := ruleProvider.GetRuleService()
	rule, err := ruleService.PatchRule(ruleID, utils.UserIDFromRequest(r), patch)
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	log.GetLogger().Info(fmt.Sprintf("Risk rule: %s updated successfully", ruleID))
	utils.WriteJSON(w, http.StatusOK, rule)
}

// HandleRuleDeleteRequest handles DELETE /rules/{rule_id}
func (rh *RuleHandler) HandleRuleDeleteRequest(w http.ResponseWriter, r *http.Request) {

	ruleID, ok := ruleIDFromPath(w, r)
	if !ok {
		return
	}

	ruleProvider := provider.NewRuleProvider()
	ruleService := ruleProvider.GetRuleService()
	if err := ruleService.DeleteRule(ruleID, utils.UserIDFromRequest(r)); err != nil {
		utils.HandleError(w, err)
		return
	}
	log.GetLogger().Info(fmt.Sprintf("Risk rule: %s deleted successfully", ruleID))
	w.WriteHeader(http.StatusNoContent)
}

func ruleIDFromPath(w http.ResponseWriter, r *http.Request) (string, bool) {

	pathParts := strings.Split(strings.TrimSuffix(r.URL.Path, "/"), "/")
	ruleID := pathParts[len(pathParts)-1]
	if ruleID == "" || ruleID == "rules" {
		http.Error(w, "Invalid path", http.StatusBadRequest)
		return "", false
	}
	return ruleID, true
}

func badRulePayloadError(err error) error {
	return errors.NewClientError(errors.ErrorMessage{
		Code:        errors.ErrBadRuleRequest.Code,
		Message:     errors.ErrBadRuleRequest.Message,
		Description: utils.HandleDecodeError(err, "rule"),
	}, http.StatusBadRequest)
}
