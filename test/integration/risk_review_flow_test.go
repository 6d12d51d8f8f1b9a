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

package integration

import (
	"net/http"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	auditmodel "github.com/riskdesk/risk-review-service/internal/audits/model"
	auditservice "github.com/riskdesk/risk-review-service/internal/audits/service"
	itemmodel "github.com/riskdesk/risk-review-service/internal/items/model"
	itemservice "github.com/riskdesk/risk-review-service/internal/items/service"
	itemstore "github.com/riskdesk/risk-review-service/internal/items/store"
	rulemodel "github.com/riskdesk/risk-review-service/internal/rules/model"
	ruleservice "github.com/riskdesk/risk-review-service/internal/rules/service"
	"github.com/riskdesk/risk-review-service/internal/system/constants"
	"github.com/riskdesk/risk-review-service/internal/system/errors"
)

func intPtr(v int) *int { return &v }

func requireClientError(t *testing.T, err error, status int) {
	t.Helper()
	require.Error(t, err)
	clientErr, ok := err.(*errors.ClientError)
	require.True(t, ok, "expected a ClientError, got %T", err)
	assert.Equal(t, status, clientErr.StatusCode)
}

func TestItemLifecycle(t *testing.T) {

	items := itemservice.GetItemService()
	audits := auditservice.GetAuditService()
	userID := "lifecycle-user"

	amount := decimal.NewFromInt(500)
	item, err := items.AddItem(itemmodel.ItemRequest{
		Title:       "office chairs",
		Description: "bulk order",
		Amount:      &amount,
		Tags:        []string{"furniture"},
	}, userID)
	require.NoError(t, err)
	assert.NotEmpty(t, item.ItemID)
	assert.Equal(t, constants.StatusNew, item.Status)
	// No rules for this user: the fixed heuristic scores 500 as low risk.
	assert.Equal(t, 20, item.RiskScore)

	fetched, err := items.GetItem(item.ItemID, userID)
	require.NoError(t, err)
	assert.Equal(t, item.ItemID, fetched.ItemID)

	// Ownership checks.
	_, err = items.GetItem(item.ItemID, "someone-else")
	requireClientError(t, err, http.StatusForbidden)
	_, err = items.GetItem("missing-item", userID)
	requireClientError(t, err, http.StatusNotFound)

	// Patch two fields and verify one audit row per changed field.
	newAmount := decimal.NewFromInt(12000)
	status := constants.StatusInReview
	patched, err := items.PatchItem(item.ItemID, userID, itemmodel.ItemPatch{
		Amount: &newAmount,
		Status: &status,
	})
	require.NoError(t, err)
	assert.Equal(t, constants.StatusInReview, patched.Status)
	// 12000 crosses the heuristic's high-amount band.
	assert.Equal(t, 80, patched.RiskScore)

	page, err := audits.GetAudits(userID, auditmodel.AuditQuery{ItemID: item.ItemID})
	require.NoError(t, err)
	actions := map[string]int{}
	for _, audit := range page.Audits {
		actions[audit.Action]++
	}
	assert.Equal(t, 1, actions[constants.AuditActionItemCreated])
	assert.Equal(t, 2, actions[constants.AuditActionItemUpdated], "amount and status rows")
	assert.GreaterOrEqual(t, actions[constants.AuditActionRiskScoreCalculated], 2)

	// Deleting the item removes it and its audit trail from the listing.
	require.NoError(t, items.DeleteItem(item.ItemID, userID))
	_, err = items.GetItem(item.ItemID, userID)
	requireClientError(t, err, http.StatusNotFound)

	page, err = audits.GetAudits(userID, auditmodel.AuditQuery{ItemID: item.ItemID})
	require.NoError(t, err)
	assert.Zero(t, page.Total)
}

func TestRuleLifecycleAndScoring(t *testing.T) {

	rules := ruleservice.GetRuleService()
	items := itemservice.GetItemService()
	userID := "rule-user"

	rule, err := rules.AddRule(rulemodel.RuleRequest{
		Name:      "large amount",
		Condition: `{"field":"amount","operator":">","value":1000}`,
		Score:     intPtr(45),
	}, userID)
	require.NoError(t, err)
	assert.True(t, rule.IsActive, "rules default to active")

	fetched, err := rules.GetRule(rule.RuleID, userID)
	require.NoError(t, err)
	assert.Equal(t, "large amount", fetched.Name)

	// Other users cannot read or mutate the rule.
	_, err = rules.GetRule(rule.RuleID, "someone-else")
	requireClientError(t, err, http.StatusForbidden)
	err = rules.DeleteRule(rule.RuleID, "someone-else")
	requireClientError(t, err, http.StatusForbidden)

	// New items score against the stored rule set.
	amount := decimal.NewFromInt(5000)
	item, err := items.AddItem(itemmodel.ItemRequest{Title: "venue deposit", Amount: &amount}, userID)
	require.NoError(t, err)
	assert.Equal(t, 45, item.RiskScore)

	score := 70
	_, err = rules.PatchRule(rule.RuleID, userID, rulemodel.RulePatch{Score: &score})
	require.NoError(t, err)

	// The rule mutation queues a background rescore of the owner's items.
	assert.Eventually(t, func() bool {
		current, err := itemstore.GetItem(item.ItemID)
		return err == nil && current.RiskScore == 70
	}, 10*time.Second, 100*time.Millisecond)

	// Deleting a rule twice is a no-op the second time.
	require.NoError(t, rules.DeleteRule(rule.RuleID, userID))
	require.NoError(t, rules.DeleteRule(rule.RuleID, userID))
}

func TestAddRuleRejectsIllegalCondition(t *testing.T) {

	rules := ruleservice.GetRuleService()
	_, err := rules.AddRule(rulemodel.RuleRequest{
		Name:      "bad",
		Condition: `{"field":"amount","operator":"includes","value":5}`,
		Score:     intPtr(10),
	}, "rule-user")
	requireClientError(t, err, http.StatusBadRequest)
}

func TestGlobalRulesApplyToEveryUser(t *testing.T) {

	rules := ruleservice.GetRuleService()
	items := itemservice.GetItemService()

	// A rule owned by nobody is global; the store layer maps "" to NULL.
	global, err := rules.AddRule(rulemodel.RuleRequest{
		Name:      "fraud tag",
		Condition: `{"field":"tags","operator":"includes","value":"fraud"}`,
		Score:     intPtr(60),
	}, "")
	require.NoError(t, err)

	amount := decimal.NewFromInt(100)
	item, err := items.AddItem(itemmodel.ItemRequest{
		Title:  "expense claim",
		Amount: &amount,
		Tags:   []string{"fraud"},
	}, "global-rule-user")
	require.NoError(t, err)
	assert.Equal(t, 60, item.RiskScore)

	// Global rules are readable by any user but not mutable.
	_, err = rules.GetRule(global.RuleID, "global-rule-user")
	require.NoError(t, err)
	err = rules.DeleteRule(global.RuleID, "global-rule-user")
	requireClientError(t, err, http.StatusForbidden)
}
