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

package service

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/riskdesk/risk-review-service/internal/rules/model"
	"github.com/riskdesk/risk-review-service/internal/system/constants"
	"github.com/riskdesk/risk-review-service/internal/system/errors"
)

// ValidateCondition checks a serialized condition against the field/operator
// legality table before it may be persisted. Unlike evaluation, authoring is
// strict: a condition that does not decode is rejected, never defaulted.
func ValidateCondition(raw string) (model.RuleCondition, error) {

	var cond model.RuleCondition
	if err := json.Unmarshal([]byte(raw), &cond); err != nil {
		return model.RuleCondition{}, malformedConditionError("condition must be a valid JSON object")
	}

	allowedOperators, known := constants.AllowedOperatorsByField[cond.Field]
	if !known {
		return model.RuleCondition{}, illegalConditionError(fmt.Sprintf(
			"field '%s' is invalid; valid fields: %s, %s, %s, %s, %s", cond.Field,
			constants.FieldAmount, constants.FieldTags, constants.FieldDescription,
			constants.FieldStatus, constants.FieldTitle))
	}

	operatorAllowed := false
	for _, op := range allowedOperators {
		if cond.Operator == op {
			operatorAllowed = true
			break
		}
	}
	if !operatorAllowed {
		return model.RuleCondition{}, illegalConditionError(fmt.Sprintf(
			"operator '%s' is not allowed for field '%s'; allowed operators: %s",
			cond.Operator, cond.Field, strings.Join(allowedOperators, ", ")))
	}

	if err := validateConditionValue(cond); err != nil {
		return model.RuleCondition{}, err
	}

	return cond, nil
}

func validateConditionValue(cond model.RuleCondition) error {

	switch cond.Field {
	case constants.FieldAmount:
		if _, ok := cond.Value.(float64); !ok {
			return illegalConditionError("amount conditions require a numeric value")
		}
	case constants.FieldStatus:
		status, ok := cond.Value.(string)
		if !ok || !constants.AllowedStatuses[status] {
			return illegalConditionError(fmt.Sprintf(
				"status value must be one of %s, %s, %s, %s", constants.StatusNew,
				constants.StatusInReview, constants.StatusApproved, constants.StatusRejected))
		}
	default:
		// tags, description and title take a non-empty string needle.
		text, ok := cond.Value.(string)
		if !ok || strings.TrimSpace(text) == "" {
			return illegalConditionError(fmt.Sprintf(
				"%s conditions require a non-empty string value", cond.Field))
		}
	}
	return nil
}

func malformedConditionError(description string) error {
	return errors.NewClientError(errors.ErrorMessage{
		Code:        errors.ErrMalformedCondition.Code,
		Message:     errors.ErrMalformedCondition.Message,
		Description: description,
	}, http.StatusBadRequest)
}

func illegalConditionError(description string) error {
	return errors.NewClientError(errors.ErrorMessage{
		Code:        errors.ErrIllegalCondition.Code,
		Message:     errors.ErrIllegalCondition.Message,
		Description: description,
	}, http.StatusBadRequest)
}
