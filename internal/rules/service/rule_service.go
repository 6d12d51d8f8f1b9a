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
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	riskservice "github.com/riskdesk/risk-review-service/internal/risk/service"
	"github.com/riskdesk/risk-review-service/internal/rules/model"
	"github.com/riskdesk/risk-review-service/internal/rules/store"
	"github.com/riskdesk/risk-review-service/internal/system/errors"
	"github.com/riskdesk/risk-review-service/internal/system/log"
	"github.com/riskdesk/risk-review-service/internal/system/workers"
)

// RuleServiceInterface defines the interface for the risk rule service.
type RuleServiceInterface interface {
	AddRule(request model.RuleRequest, userID string) (model.Rule, error)
	GetRules(userID string) ([]model.Rule, error)
	GetRule(ruleID, userID string) (model.Rule, error)
	PatchRule(ruleID, userID string, patch model.RulePatch) (model.Rule, error)
	DeleteRule(ruleID, userID string) error
}

// RuleService is the default implementation of the RuleServiceInterface.
type RuleService struct{}

// GetRuleService creates a new instance of RuleService.
func GetRuleService() RuleServiceInterface {

	return &RuleService{}
}

func (rs *RuleService) AddRule(request model.RuleRequest, userID string) (model.Rule, error) {

	if strings.TrimSpace(request.Name) == "" {
		return model.Rule{}, badRuleError("name is required")
	}
	if strings.TrimSpace(request.Condition) == "" {
		return model.Rule{}, badRuleError("condition is required")
	}
	if request.Score == nil {
		return model.Rule{}, badRuleError("score is required")
	}
	if _, err := ValidateCondition(request.Condition); err != nil {
		return model.Rule{}, err
	}

	isActive := true
	if request.IsActive != nil {
		isActive = *request.IsActive
	}
	priority := 0
	if request.Priority != nil {
		priority = *request.Priority
	}

	currentTime := time.Now().UTC().Unix()
	rule := model.Rule{
		RuleID:      uuid.New().String(),
		Name:        strings.TrimSpace(request.Name),
		Description: request.Description,
		Condition:   request.Condition,
		Score:       *request.Score,
		Priority:    priority,
		IsActive:    isActive,
		UserID:      userID,
		CreatedAt:   currentTime,
		UpdatedAt:   currentTime,
	}

	if err := store.AddRule(rule); err != nil {
		return model.Rule{}, err
	}

	rs.invalidate(rule.UserID)
	log.GetLogger().Audit(log.AuditEvent{
		InitiatorID:   userID,
		InitiatorType: log.InitiatorTypeUser,
		TargetID:      rule.RuleID,
		TargetType:    log.TargetTypeRiskRule,
		ActionID:      log.ActionAddRiskRule,
	})
	return rule, nil
}

func (rs *RuleService) GetRules(userID string) ([]model.Rule, error) {

	return store.GetRulesForUser(userID)
}

// GetRule returns a rule the user owns or a global rule. Global rules are
// readable by everyone but never mutable through the API.
func (rs *RuleService) GetRule(ruleID, userID string) (model.Rule, error) {

	rule, err := store.GetRule(ruleID)
	if err != nil {
		return model.Rule{}, err
	}
	if rule.RuleID == "" {
		return model.Rule{}, ruleNotFoundError()
	}
	if rule.UserID != "" && rule.UserID != userID {
		return model.Rule{}, forbiddenRuleError()
	}
	return rule, nil
}

func (rs *RuleService) PatchRule(ruleID, userID string, patch model.RulePatch) (model.Rule, error) {

	rule, err := rs.getOwnedRule(ruleID, userID)
	if err != nil {
		return model.Rule{}, err
	}

	if patch.Name != nil {
		if strings.TrimSpace(*patch.Name) == "" {
			return model.Rule{}, badRuleError("name must not be empty")
		}
		rule.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Description != nil {
		rule.Description = *patch.Description
	}
	if patch.Condition != nil {
		if _, err := ValidateCondition(*patch.Condition); err != nil {
			return model.Rule{}, err
		}
		rule.Condition = *patch.Condition
	}
	if patch.Score != nil {
		rule.Score = *patch.Score
	}
	if patch.Priority != nil {
		rule.Priority = *patch.Priority
	}
	if patch.IsActive != nil {
		rule.IsActive = *patch.IsActive
	}

	rule.UpdatedAt = time.Now().UTC().Unix()
	if err := store.UpdateRule(rule); err != nil {
		return model.Rule{}, err
	}

	rs.invalidate(rule.UserID)
	log.GetLogger().Audit(log.AuditEvent{
		InitiatorID:   userID,
		InitiatorType: log.InitiatorTypeUser,
		TargetID:      rule.RuleID,
		TargetType:    log.TargetTypeRiskRule,
		ActionID:      log.ActionUpdateRiskRule,
	})
	return rule, nil
}

func (rs *RuleService) DeleteRule(ruleID, userID string) error {

	rule, err := store.GetRule(ruleID)
	if err != nil {
		return err
	}
	if rule.RuleID == "" {
		// Deleting a missing rule is a no-op.
		return nil
	}
	if rule.UserID == "" || rule.UserID != userID {
		return forbiddenRuleError()
	}

	if err := store.DeleteRule(ruleID); err != nil {
		return err
	}

	rs.invalidate(rule.UserID)
	log.GetLogger().Audit(log.AuditEvent{
		InitiatorID:   userID,
		InitiatorType: log.InitiatorTypeUser,
		TargetID:      ruleID,
		TargetType:    log.TargetTypeRiskRule,
		ActionID:      log.ActionDeleteRiskRule,
	})
	return nil
}

func (rs *RuleService) getOwnedRule(ruleID, userID string) (model.Rule, error) {

	rule, err := store.GetRule(ruleID)
	if err != nil {
		return model.Rule{}, err
	}
	if rule.RuleID == "" {
		return model.Rule{}, ruleNotFoundError()
	}
	if rule.UserID == "" || rule.UserID != userID {
		return model.Rule{}, forbiddenRuleError()
	}
	return rule, nil
}

// invalidate drops every cached rule snapshot and queues affected items
// for background rescoring.
func (rs *RuleService) invalidate(ownerUserID string) {

	riskservice.GetRiskService().InvalidateRuleSnapshot()
	workers.EnqueueRescore(ownerUserID)
}

func badRuleError(description string) error {
	return errors.NewClientError(errors.ErrorMessage{
		Code:        errors.ErrBadRuleRequest.Code,
		Message:     errors.ErrBadRuleRequest.Message,
		Description: description,
	}, http.StatusBadRequest)
}

func ruleNotFoundError() error {
	return errors.NewClientError(errors.ErrorMessage{
		Code:        errors.ErrRuleNotFound.Code,
		Message:     errors.ErrRuleNotFound.Message,
		Description: errors.ErrRuleNotFound.Description,
	}, http.StatusNotFound)
}

func forbiddenRuleError() error {
	return errors.NewClientError(errors.ErrorMessage{
		Code:        errors.ErrForbidden.Code,
		Message:     errors.ErrForbidden.Message,
		Description: errors.ErrForbidden.Description,
	}, http.StatusForbidden)
}
