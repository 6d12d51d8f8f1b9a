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

// Audit is a single persisted audit row tied to an item mutation or a risk
// score change.
type Audit struct {
	AuditID   string `json:"audit_id"`
	Action    string `json:"action"`
	Field     string `json:"field,omitempty"`
	OldValue  string `json:"old_value,omitempty"`
	NewValue  string `json:"new_value,omitempty"`
	ItemID    string `json:"item_id"`
	UserID    string `json:"user_id"`
	CreatedAt int64  `json:"created_at"`
}

// AuditQuery carries the paging and filter parameters of an audit listing.
type AuditQuery struct {
	Page   int
	Limit  int
	Action string
	ItemID string
}

// AuditPage is the paged listing response.
type AuditPage struct {
	Audits []Audit `json:"audits"`
	Total  int     `json:"total"`
	Page   int     `json:"page"`
	Limit  int     `json:"limit"`
}
