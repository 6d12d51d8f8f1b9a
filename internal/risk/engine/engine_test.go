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

package engine

import (
	"math/rand"
	"os"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskdesk/risk-review-service/internal/rules/model"
	"github.com/riskdesk/risk-review-service/internal/system/log"
)

func TestMain(m *testing.M) {
	_ = log.Init("ERROR")
	os.Exit(m.Run())
}

func activeRule(score int, cond model.RuleCondition) model.CompiledRule {
	return model.CompiledRule{
		RuleID:    "rule-" + cond.Field,
		Name:      "test rule",
		Score:     score,
		IsActive:  true,
		Condition: cond,
	}
}

// ---------------------------------------------------------------------------
// Evaluate – additive scoring, clamping, fallback activation
// ---------------------------------------------------------------------------

func TestEvaluate_SumsMatchingRules(t *testing.T) {
	rules := []model.CompiledRule{
		activeRule(30, model.RuleCondition{Field: "amount", Operator: ">", Value: float64(5000)}),
		activeRule(-10, model.RuleCondition{Field: "tags", Operator: "contains", Value: "trusted"}),
	}
	subject := Subject{Amount: decimal.NewFromInt(6000), Tags: []string{"trusted"}}

	assert.Equal(t, 20, Evaluate(rules, subject))
}

func TestEvaluate_NonMatchingRuleContributesNothing(t *testing.T) {
	rules := []model.CompiledRule{
		activeRule(30, model.RuleCondition{Field: "amount", Operator: ">", Value: float64(5000)}),
		activeRule(-10, model.RuleCondition{Field: "tags", Operator: "contains", Value: "trusted"}),
	}
	subject := Subject{Amount: decimal.NewFromInt(6000), Tags: []string{}}

	assert.Equal(t, 30, Evaluate(rules, subject))
}

func TestEvaluate_InactiveRulesAreSkipped(t *testing.T) {
	inactive := model.CompiledRule{
		RuleID:    "rule-1",
		Score:     50,
		IsActive:  false,
		Condition: model.RuleCondition{Field: "amount", Operator: ">", Value: float64(0)},
	}
	rules := []model.CompiledRule{
		inactive,
		activeRule(30, model.RuleCondition{Field: "amount", Operator: ">", Value: float64(0)}),
	}
	subject := Subject{Amount: decimal.NewFromInt(100)}

	assert.Equal(t, 30, Evaluate(rules, subject))
}

func TestEvaluate_ClampsToHundred(t *testing.T) {
	rules := []model.CompiledRule{
		activeRule(80, model.RuleCondition{Field: "amount", Operator: ">", Value: float64(0)}),
		activeRule(90, model.RuleCondition{Field: "amount", Operator: ">", Value: float64(0)}),
	}
	subject := Subject{Amount: decimal.NewFromInt(1)}

	assert.Equal(t, 100, Evaluate(rules, subject))
}

func TestEvaluate_ClampsToZero(t *testing.T) {
	rules := []model.CompiledRule{
		activeRule(-40, model.RuleCondition{Field: "amount", Operator: ">", Value: float64(0)}),
		activeRule(-60, model.RuleCondition{Field: "amount", Operator: ">", Value: float64(0)}),
	}
	subject := Subject{Amount: decimal.NewFromInt(1)}

	assert.Equal(t, 0, Evaluate(rules, subject))
}

func TestEvaluate_EmptyRuleSetUsesFallback(t *testing.T) {
	subject := Subject{
		Amount:      decimal.NewFromInt(12000),
		Tags:        []string{"urgent"},
		Description: "a suspicious transfer",
	}

	assert.Equal(t, FallbackScore(subject), Evaluate(nil, subject))
	assert.Equal(t, FallbackScore(subject), Evaluate([]model.CompiledRule{}, subject))
}

func TestEvaluate_OrderIndependentAndIdempotent(t *testing.T) {
	rules := []model.CompiledRule{
		activeRule(30, model.RuleCondition{Field: "amount", Operator: ">", Value: float64(5000)}),
		activeRule(-10, model.RuleCondition{Field: "tags", Operator: "contains", Value: "trusted"}),
		activeRule(25, model.RuleCondition{Field: "title", Operator: "includes", Value: "wire"}),
		activeRule(15, model.RuleCondition{Field: "status", Operator: "==", Value: "IN_REVIEW"}),
	}
	subject := Subject{
		Amount: decimal.NewFromInt(9000),
		Tags:   []string{"TRUSTED"},
		Title:  "International wire transfer",
		Status: "IN_REVIEW",
	}

	want := Evaluate(rules, subject)
	require.Equal(t, want, Evaluate(rules, subject), "evaluation must be idempotent")

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 10; i++ {
		shuffled := make([]model.CompiledRule, len(rules))
		copy(shuffled, rules)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })
		assert.Equal(t, want, Evaluate(shuffled, subject))
	}
}

// ---------------------------------------------------------------------------
// Matches – per-field semantics
// ---------------------------------------------------------------------------

func TestMatches_AmountOperators(t *testing.T) {
	subject := Subject{Amount: decimal.NewFromInt(5000)}

	tests := []struct {
		operator string
		value    float64
		want     bool
	}{
		{">", 4999, true},
		{">", 5000, false},
		{">=", 5000, true},
		{"<", 5001, true},
		{"<", 5000, false},
		{"<=", 5000, true},
		{"==", 5000, true},
		{"==", 4999, false},
	}
	for _, tc := range tests {
		cond := model.RuleCondition{Field: "amount", Operator: tc.operator, Value: tc.value}
		assert.Equal(t, tc.want, Matches(cond, subject), "amount %s %v", tc.operator, tc.value)
	}
}

func TestMatches_AmountMissingDefaultsToZero(t *testing.T) {
	cond := model.RuleCondition{Field: "amount", Operator: "<", Value: float64(1)}
	assert.True(t, Matches(cond, Subject{}))
}

func TestMatches_AmountNonNumericConditionValue(t *testing.T) {
	cond := model.RuleCondition{Field: "amount", Operator: ">", Value: "not a number"}
	assert.False(t, Matches(cond, Subject{Amount: decimal.NewFromInt(100)}))
}

func TestMatches_AmountNumericStringConditionValue(t *testing.T) {
	cond := model.RuleCondition{Field: "amount", Operator: ">", Value: "99.50"}
	assert.True(t, Matches(cond, Subject{Amount: decimal.NewFromInt(100)}))
}

func TestMatches_AmountUnknownOperatorIsNoMatch(t *testing.T) {
	cond := model.RuleCondition{Field: "amount", Operator: "includes", Value: float64(5)}
	assert.False(t, Matches(cond, Subject{Amount: decimal.NewFromInt(100)}))
}

func TestMatches_TagsSubstringCaseInsensitive(t *testing.T) {
	subject := Subject{Tags: []string{"URGENT"}}

	cond := model.RuleCondition{Field: "tags", Operator: "contains", Value: "rg"}
	assert.True(t, Matches(cond, subject), "substring of a tag must match")

	cond = model.RuleCondition{Field: "tags", Operator: "includes", Value: "urgent"}
	assert.True(t, Matches(cond, subject), "exact membership must match")

	cond = model.RuleCondition{Field: "tags", Operator: "contains", Value: "fraud"}
	assert.False(t, Matches(cond, subject))
}

func TestMatches_TagsMissingIsEmpty(t *testing.T) {
	cond := model.RuleCondition{Field: "tags", Operator: "contains", Value: "urgent"}
	assert.False(t, Matches(cond, Subject{}))
}

func TestMatches_TextContainment(t *testing.T) {
	subject := Subject{Description: "Flagged as Suspicious by upstream", Title: "Quarterly Transfer"}

	cond := model.RuleCondition{Field: "description", Operator: "includes", Value: "suspicious"}
	assert.True(t, Matches(cond, subject))

	cond = model.RuleCondition{Field: "title", Operator: "contains", Value: "TRANSFER"}
	assert.True(t, Matches(cond, subject))
}

func TestMatches_TextEqualityFallthrough(t *testing.T) {
	subject := Subject{Title: "Wire Transfer"}

	cond := model.RuleCondition{Field: "title", Operator: "==", Value: "wire transfer"}
	assert.True(t, Matches(cond, subject), "== compares lower-cased strings")

	cond = model.RuleCondition{Field: "title", Operator: "==", Value: "wire"}
	assert.False(t, Matches(cond, subject), "== is not containment")
}

func TestMatches_StatusExactCaseSensitive(t *testing.T) {
	subject := Subject{Status: "APPROVED"}

	cond := model.RuleCondition{Field: "status", Operator: "==", Value: "APPROVED"}
	assert.True(t, Matches(cond, subject))

	cond = model.RuleCondition{Field: "status", Operator: "==", Value: "approved"}
	assert.False(t, Matches(cond, subject), "status matching is case-sensitive")
}

func TestMatches_UnknownFieldIsNoMatch(t *testing.T) {
	cond := model.RuleCondition{Field: "currency", Operator: "==", Value: "EUR"}
	assert.False(t, Matches(cond, Subject{}))
}

// ---------------------------------------------------------------------------
// CompileCondition – malformed stored conditions
// ---------------------------------------------------------------------------

func TestCompileCondition_ValidJSON(t *testing.T) {
	cond := CompileCondition("rule-1", `{"field":"tags","operator":"contains","value":"urgent"}`)
	assert.Equal(t, "tags", cond.Field)
	assert.Equal(t, "contains", cond.Operator)
	assert.Equal(t, "urgent", cond.Value)
}

func TestCompileCondition_MalformedFallsBackToAmountGreaterZero(t *testing.T) {
	for _, raw := range []string{"not json", "", "{}", `{"operator":">"}`} {
		cond := CompileCondition("rule-1", raw)
		require.Equal(t, "amount", cond.Field, "raw=%q", raw)
		require.Equal(t, ">", cond.Operator, "raw=%q", raw)

		// The substituted rule matches any positive amount.
		assert.True(t, Matches(cond, Subject{Amount: decimal.NewFromInt(1)}))
		assert.False(t, Matches(cond, Subject{}))
	}
}
