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

import "github.com/shopspring/decimal"

// Item is a record under review. RiskScore is derived; everything else is
// caller supplied.
type Item struct {
	ItemID      string          `json:"item_id"`
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	Tags        []string        `json:"tags"`
	Status      string          `json:"status"`
	RiskScore   int             `json:"risk_score"`
	UserID      string          `json:"user_id"`
	CreatedAt   int64           `json:"created_at,omitempty"`
	UpdatedAt   int64           `json:"updated_at,omitempty"`
}

// ItemRequest is the create payload.
type ItemRequest struct {
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Amount      *decimal.Decimal `json:"amount"`
	Tags        []string         `json:"tags"`
	Status      string           `json:"status"`
}

// ItemPatch is the partial update payload. Nil fields are left untouched.
type ItemPatch struct {
	Title       *string          `json:"title"`
	Description *string          `json:"description"`
	Amount      *decimal.Decimal `json:"amount"`
	Tags        *[]string        `json:"tags"`
	Status      *string          `json:"status"`
}
