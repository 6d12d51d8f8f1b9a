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

package constants

// ApiBasePath is the prefix under which every HTTP endpoint is mounted.
const ApiBasePath = "/api/v1"

// ContextKey is the type used for request context values.
type ContextKey string

// UserContextKey carries the authenticated user id through the request context.
const UserContextKey ContextKey = "user_id"

// ScopesContextKey carries the granted token scopes through the request context.
const ScopesContextKey ContextKey = "scopes"

// TraceIDContextKey carries the per-request trace id through the request context.
const TraceIDContextKey ContextKey = "trace_id"

// Item statuses form a closed vocabulary; status conditions may only name one of these.
const (
	StatusNew      = "NEW"
	StatusInReview = "IN_REVIEW"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
)

var AllowedStatuses = map[string]bool{
	StatusNew:      true,
	StatusInReview: true,
	StatusApproved: true,
	StatusRejected: true,
}

// Condition fields.
const (
	FieldAmount      = "amount"
	FieldTags        = "tags"
	FieldDescription = "description"
	FieldStatus      = "status"
	FieldTitle       = "title"
)

// Condition operators.
const (
	OperatorGreater      = ">"
	OperatorGreaterEqual = ">="
	OperatorLess         = "<"
	OperatorLessEqual    = "<="
	OperatorEqual        = "=="
	OperatorIncludes     = "includes"
	OperatorContains     = "contains"
)

// AllowedOperatorsByField is the single legality table shared by the condition
// validator and surfaced in validation error messages. The evaluator is more
// lenient at runtime, but nothing outside this table is ever persisted.
var AllowedOperatorsByField = map[string][]string{
	FieldAmount:      {OperatorGreater, OperatorGreaterEqual, OperatorLess, OperatorLessEqual, OperatorEqual},
	FieldStatus:      {OperatorEqual},
	FieldTags:        {OperatorIncludes, OperatorContains},
	FieldDescription: {OperatorIncludes, OperatorContains, OperatorEqual},
	FieldTitle:       {OperatorIncludes, OperatorContains, OperatorEqual},
}

// Audit actions persisted in the audit table.
const (
	AuditActionItemCreated         = "ITEM_CREATED"
	AuditActionItemUpdated         = "ITEM_UPDATED"
	AuditActionItemDeleted         = "ITEM_DELETED"
	AuditActionRiskScoreCalculated = "RISK_SCORE_CALCULATED"
)

// Risk levels derived from a 0-100 risk score.
const (
	RiskLevelHigh    = "HIGH"
	RiskLevelMedium  = "MEDIUM"
	RiskLevelLow     = "LOW"
	RiskLevelVeryLow = "VERY_LOW"
)

// Operations gated by token scopes.
const (
	OperationItemsRead  = "items:read"
	OperationItemsWrite = "items:write"
	OperationRulesRead  = "rules:read"
	OperationRulesWrite = "rules:write"
	OperationAuditsRead = "audits:read"
)

// Supported database driver types in the datasource configuration.
const (
	DBTypePostgres = "postgres"
	DBTypeSQLite   = "sqlite"
)

// Audit query paging defaults.
const (
	DefaultAuditPage  = 1
	DefaultAuditLimit = 50
	MaxAuditLimit     = 500
)

// DefaultQueueSize bounds the rescore worker queue.
const DefaultQueueSize = 100
