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
	"github.com/shopspring/decimal"

	itemmodel "github.com/riskdesk/risk-review-service/internal/items/model"
)

// Subject is the read-only view of an item that conditions are matched
// against. Fields form a closed set; each carries a defined default so that
// evaluation never has to guess at runtime types:
//
//	Amount      missing → 0
//	Tags        missing → empty slice
//	Description missing → ""
//	Title       missing → ""
//	Status      missing → ""
type Subject struct {
	Amount      decimal.Decimal
	Tags        []string
	Description string
	Title       string
	Status      string
}

// SubjectFromItem builds the evaluation view of an item.
func SubjectFromItem(item itemmodel.Item) Subject {
	return Subject{
		Amount:      item.Amount,
		Tags:        item.Tags,
		Description: item.Description,
		Title:       item.Title,
		Status:      item.Status,
	}
}
