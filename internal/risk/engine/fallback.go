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
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	fallbackHighAmount   = decimal.NewFromInt(10000)
	fallbackMediumAmount = decimal.NewFromInt(5000)
)

// FallbackScore is the fixed heuristic used when no active rules exist. The
// steps mutate a running total in a fixed order that callers depend on: the
// fraud override replaces whatever the amount and urgency steps produced, but
// the trusted discount and the description adjustments still apply after it.
func FallbackScore(subject Subject) int {
	risk := 20
	if subject.Amount.GreaterThan(fallbackHighAmount) {
		risk = 80
	} else if subject.Amount.GreaterThan(fallbackMediumAmount) {
		risk = 50
	}

	tags := make([]string, 0, len(subject.Tags))
	for _, tag := range subject.Tags {
		tags = append(tags, strings.ToLower(tag))
	}
	if slices.Contains(tags, "urgent") {
		risk += 20
	}
	if slices.Contains(tags, "fraud") {
		risk = 100
	}
	if slices.Contains(tags, "trusted") {
		risk -= 20
	}

	description := strings.ToLower(subject.Description)
	if strings.Contains(description, "suspicious") {
		risk += 30
	}
	if strings.Contains(description, "verified") {
		risk -= 10
	}

	return clamp(risk)
}
