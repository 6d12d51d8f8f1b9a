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
	"encoding/json"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/riskdesk/risk-review-service/internal/rules/model"
	"github.com/riskdesk/risk-review-service/internal/system/constants"
	"github.com/riskdesk/risk-review-service/internal/system/log"
	"github.com/riskdesk/risk-review-service/internal/system/metrics"
)

// defaultCondition replaces a stored condition that cannot be decoded. The
// rule then matches any item with a positive amount instead of silently
// dropping out of the evaluation. Legacy behavior, kept for compatibility;
// every occurrence is logged and counted.
var defaultCondition = model.RuleCondition{
	Field:    constants.FieldAmount,
	Operator: constants.OperatorGreater,
	Value:    float64(0),
}

// CompileCondition decodes the serialized condition of a stored rule. Decode
// failures substitute the safe default rather than failing the evaluation.
func CompileCondition(ruleID, raw string) model.RuleCondition {
	var cond model.RuleCondition
	if err := json.Unmarshal([]byte(raw), &cond); err != nil || cond.Field == "" {
		log.GetLogger().Warn("Stored rule condition failed to decode; substituting amount > 0",
			log.String("rule_id", ruleID))
		metrics.GetCollector().MalformedConditions.Inc()
		return defaultCondition
	}
	return cond
}

// Evaluate computes the risk score for a subject given the active rule set.
// An empty rule set falls back to the fixed heuristic. Every active rule is
// evaluated; matching rule scores are summed and the total clamped to
// [0, 100]. The result is order independent and the function never fails.
func Evaluate(rules []model.CompiledRule, subject Subject) int {
	if len(rules) == 0 {
		metrics.GetCollector().HeuristicFallbacks.Inc()
		return FallbackScore(subject)
	}

	risk := 0
	for _, rule := range rules {
		// Inactive rules are filtered upstream; skip them anyway.
		if !rule.IsActive {
			continue
		}
		if Matches(rule.Condition, subject) {
			risk += rule.Score
		}
	}
	return clamp(risk)
}

// Matches evaluates a single condition against the subject. Evaluation is
// permissive: an unknown field or an operator that is illegal for the field
// yields no match, never an error.
func Matches(cond model.RuleCondition, subject Subject) bool {
	switch cond.Field {
	case constants.FieldAmount:
		return matchAmount(cond, subject.Amount)
	case constants.FieldTags:
		return matchTags(cond, subject.Tags)
	case constants.FieldDescription:
		return matchText(cond, subject.Description)
	case constants.FieldTitle:
		return matchText(cond, subject.Title)
	case constants.FieldStatus:
		// Only equality is meaningful for status; the operator is ignored.
		return subject.Status == coerceString(cond.Value)
	default:
		return false
	}
}

func matchAmount(cond model.RuleCondition, amount decimal.Decimal) bool {
	target, ok := coerceDecimal(cond.Value)
	if !ok {
		return false
	}
	switch cond.Operator {
	case constants.OperatorGreater:
		return amount.GreaterThan(target)
	case constants.OperatorGreaterEqual:
		return amount.GreaterThanOrEqual(target)
	case constants.OperatorLess:
		return amount.LessThan(target)
	case constants.OperatorLessEqual:
		return amount.LessThanOrEqual(target)
	case constants.OperatorEqual:
		return amount.Equal(target)
	default:
		return false
	}
}

// matchTags treats includes and contains identically: the needle matches when
// it equals a tag or is a substring of one, case-insensitively.
func matchTags(cond model.RuleCondition, tags []string) bool {
	needle := strings.ToLower(coerceString(cond.Value))
	for _, tag := range tags {
		lowered := strings.ToLower(tag)
		if lowered == needle || strings.Contains(lowered, needle) {
			return true
		}
	}
	return false
}

// matchText lower-cases both sides; includes and contains test substring
// containment and every other operator falls through to exact equality.
func matchText(cond model.RuleCondition, text string) bool {
	lowered := strings.ToLower(text)
	needle := strings.ToLower(coerceString(cond.Value))
	if cond.Operator == constants.OperatorIncludes || cond.Operator == constants.OperatorContains {
		return strings.Contains(lowered, needle)
	}
	return lowered == needle
}

// coerceDecimal converts a decoded condition value to a decimal. Condition
// values arrive as float64 from JSON but numeric strings are accepted too.
func coerceDecimal(value interface{}) (decimal.Decimal, bool) {
	switch v := value.(type) {
	case float64:
		return decimal.NewFromFloat(v), true
	case int:
		return decimal.NewFromInt(int64(v)), true
	case int64:
		return decimal.NewFromInt(v), true
	case json.Number:
		d, err := decimal.NewFromString(v.String())
		return d, err == nil
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(v))
		return d, err == nil
	default:
		return decimal.Decimal{}, false
	}
}

func coerceString(value interface{}) string {
	switch v := value.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case bool:
		return strconv.FormatBool(v)
	case json.Number:
		return v.String()
	case nil:
		return ""
	default:
		return ""
	}
}

func clamp(risk int) int {
	if risk < 0 {
		return 0
	}
	if risk > 100 {
		return 100
	}
	return risk
}
