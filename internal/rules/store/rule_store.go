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

package store

import (
	"fmt"

	"github.com/riskdesk/risk-review-service/internal/risk/engine"
	"github.com/riskdesk/risk-review-service/internal/rules/model"
	"github.com/riskdesk/risk-review-service/internal/system/database/client"
	"github.com/riskdesk/risk-review-service/internal/system/database/provider"
	errors2 "github.com/riskdesk/risk-review-service/internal/system/errors"
	"github.com/riskdesk/risk-review-service/internal/system/log"
)

// AddRule inserts a new risk rule.
func AddRule(rule model.Rule) error {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	if err != nil {
		return ruleServerError(errors2.ADD_RULE,
			fmt.Sprintf("Failed to get db client for adding rule: %s", rule.Name), err)
	}
	defer dbClient.Close()

	query := `INSERT INTO risk_rules
		(rule_id, name, description, condition, score, priority, is_active, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NULLIF($8, ''), $9, $10)`

	_, err = dbClient.Exec(query,
		rule.RuleID, rule.Name, rule.Description, rule.Condition, rule.Score, rule.Priority,
		rule.IsActive, rule.UserID, rule.CreatedAt, rule.UpdatedAt)
	if err != nil {
		return ruleServerError(errors2.ADD_RULE,
			fmt.Sprintf("Failed on inserting rule: %s", rule.Name), err)
	}

	log.GetLogger().Info(fmt.Sprintf("Risk rule: %s (%s) added successfully.", rule.RuleID, rule.Name))
	return nil
}

// GetRulesForUser returns the user's own rules plus global rules, ordered by
// priority then recency. Priority only affects listing order, never scoring.
func GetRulesForUser(userID string) ([]model.Rule, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	if err != nil {
		return nil, ruleServerError(errors2.GET_RULE, "Failed to get db client for listing rules", err)
	}
	defer dbClient.Close()

	query := `SELECT rule_id, name, description, condition, score, priority, is_active,
		COALESCE(user_id, '') AS user_id, created_at, updated_at
		FROM risk_rules
		WHERE user_id = $1 OR user_id IS NULL
		ORDER BY priority DESC, created_at DESC`

	rows, err := dbClient.ExecuteQuery(query, userID)
	if err != nil {
		return nil, ruleServerError(errors2.GET_RULE, "Failed on listing rules", err)
	}

	rules := make([]model.Rule, 0, len(rows))
	for _, row := range rows {
		rules = append(rules, buildRuleFromRow(row))
	}
	return rules, nil
}

// GetRule returns a rule by id; a zero rule when no such row exists.
func GetRule(ruleID string) (model.Rule, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	if err != nil {
		return model.Rule{}, ruleServerError(errors2.GET_RULE,
			fmt.Sprintf("Failed to get db client for fetching rule: %s", ruleID), err)
	}
	defer dbClient.Close()

	query := `SELECT rule_id, name, description, condition, score, priority, is_active,
		COALESCE(user_id, '') AS user_id, created_at, updated_at
		FROM risk_rules WHERE rule_id = $1`

	rows, err := dbClient.ExecuteQuery(query, ruleID)
	if err != nil {
		return model.Rule{}, ruleServerError(errors2.GET_RULE,
			fmt.Sprintf("Failed on fetching rule: %s", ruleID), err)
	}
	if len(rows) == 0 {
		return model.Rule{}, nil
	}
	return buildRuleFromRow(rows[0]), nil
}

// UpdateRule rewrites the mutable columns of an existing rule.
func UpdateRule(rule model.Rule) error {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	if err != nil {
		return ruleServerError(errors2.UPDATE_RULE,
			fmt.Sprintf("Failed to get db client for updating rule: %s", rule.RuleID), err)
	}
	defer dbClient.Close()

	query := `UPDATE risk_rules SET name = $1, description = $2, condition = $3, score = $4,
		priority = $5, is_active = $6, updated_at = $7 WHERE rule_id = $8`

	_, err = dbClient.Exec(query, rule.Name, rule.Description, rule.Condition, rule.Score,
		rule.Priority, rule.IsActive, rule.UpdatedAt, rule.RuleID)
	if err != nil {
		return ruleServerError(errors2.UPDATE_RULE,
			fmt.Sprintf("Failed on updating rule: %s", rule.RuleID), err)
	}

	log.GetLogger().Info(fmt.Sprintf("Risk rule: %s updated successfully.", rule.RuleID))
	return nil
}

// DeleteRule removes a rule outright.
func DeleteRule(ruleID string) error {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	if err != nil {
		return ruleServerError(errors2.DELETE_RULE,
			fmt.Sprintf("Failed to get db client for deleting rule: %s", ruleID), err)
	}
	defer dbClient.Close()

	_, err = dbClient.Exec(`DELETE FROM risk_rules WHERE rule_id = $1`, ruleID)
	if err != nil {
		return ruleServerError(errors2.DELETE_RULE,
			fmt.Sprintf("Failed on deleting rule: %s", ruleID), err)
	}

	log.GetLogger().Info(fmt.Sprintf("Risk rule: %s deleted successfully.", ruleID))
	return nil
}

// GetActiveRules returns the compiled active rule set visible to a user: the
// user's own active rules plus active global rules, in any order. Conditions
// that fail to decode are substituted with the engine's safe default.
func GetActiveRules(userID string) ([]model.CompiledRule, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	if err != nil {
		return nil, ruleServerError(errors2.GET_RULE, "Failed to get db client for fetching active rules", err)
	}
	defer dbClient.Close()

	query := `SELECT rule_id, name, condition, score, priority, is_active
		FROM risk_rules
		WHERE is_active = $1 AND (user_id = $2 OR user_id IS NULL)`

	rows, err := dbClient.ExecuteQuery(query, true, userID)
	if err != nil {
		return nil, ruleServerError(errors2.GET_RULE, "Failed on fetching active rules", err)
	}

	compiled := make([]model.CompiledRule, 0, len(rows))
	for _, row := range rows {
		ruleID := client.AsString(row["rule_id"])
		compiled = append(compiled, model.CompiledRule{
			RuleID:    ruleID,
			Name:      client.AsString(row["name"]),
			Score:     client.AsInt(row["score"]),
			Priority:  client.AsInt(row["priority"]),
			IsActive:  client.AsBool(row["is_active"]),
			Condition: engine.CompileCondition(ruleID, client.AsString(row["condition"])),
		})
	}
	return compiled, nil
}

func buildRuleFromRow(row map[string]interface{}) model.Rule {
	return model.Rule{
		RuleID:      client.AsString(row["rule_id"]),
		Name:        client.AsString(row["name"]),
		Description: client.AsString(row["description"]),
		Condition:   client.AsString(row["condition"]),
		Score:       client.AsInt(row["score"]),
		Priority:    client.AsInt(row["priority"]),
		IsActive:    client.AsBool(row["is_active"]),
		UserID:      client.AsString(row["user_id"]),
		CreatedAt:   client.AsInt64(row["created_at"]),
		UpdatedAt:   client.AsInt64(row["updated_at"]),
	}
}

func ruleServerError(msg errors2.ErrorMessage, description string, err error) error {
	log.GetLogger().Debug(description, log.Error(err))
	return errors2.NewServerError(errors2.ErrorMessage{
		Code:        msg.Code,
		Message:     msg.Message,
		Description: description,
	}, err)
}
