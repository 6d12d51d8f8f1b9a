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

package model

// RuleCondition is the atomic predicate a rule tests: one field, one operator,
// one value. The value is numeric for amount conditions and a string otherwise.
type RuleCondition struct {
	Field    string      `json:"field"`
	Operator string      `json:"operator"`
	Value    interface{} `json:"value"`
}

// Rule is the stored form of a risk rule. Condition holds the serialized
// RuleCondition JSON exactly as validated at authoring time. An empty UserID
// marks a global rule visible to every user's evaluations.
type Rule struct {
	RuleID      string `json:"rule_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Condition   string `json:"condition"`
	Score       int    `json:"score"`
	Priority    int    `json:"priority"`
	IsActive    bool   `json:"is_active"`
	UserID      string `json:"user_id,omitempty"`
	CreatedAt   int64  `json:"created_at,omitempty"`
	UpdatedAt   int64  `json:"updated_at,omitempty"`
}

// CompiledRule is a rule ready for evaluation, with its condition decoded.
type CompiledRule struct {
	RuleID    string
	Name      string
	Score     int
	Priority  int
	IsActive  bool
	Condition RuleCondition
}

// RuleRequest is the create payload. Score is a pointer so that a missing
// score can be told apart from an explicit zero.
type RuleRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Condition   string `json:"condition"`
	Score       *int   `json:"score"`
	IsActive    *bool  `json:"is_active"`
	Priority    *int   `json:"priority"`
}

// RulePatch is the partial update payload. Nil fields are left untouched.
type RulePatch struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Condition   *string `json:"condition"`
	Score       *int    `json:"score"`
	IsActive    *bool   `json:"is_active"`
	Priority    *int    `json:"priority"`
}
