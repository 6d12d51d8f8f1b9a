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

package errors

const errorPrefix = "RRS-"

var (
	// Server error codes

	ADD_ITEM = ErrorMessage{
		Code:    errorPrefix + "15001",
		Message: "Error while adding item.",
	}

	GET_ITEM = ErrorMessage{
		Code:    errorPrefix + "15002",
		Message: "Error while fetching item(s).",
	}

	UPDATE_ITEM = ErrorMessage{
		Code:    errorPrefix + "15003",
		Message: "Error while updating item.",
	}

	DELETE_ITEM = ErrorMessage{
		Code:    errorPrefix + "15004",
		Message: "Error while deleting item.",
	}

	ADD_RULE = ErrorMessage{
		Code:    errorPrefix + "15005",
		Message: "Error while adding risk rule.",
	}

	GET_RULE = ErrorMessage{
		Code:    errorPrefix + "15006",
		Message: "Error while fetching risk rule(s).",
	}

	UPDATE_RULE = ErrorMessage{
		Code:    errorPrefix + "15007",
		Message: "Error while updating risk rule.",
	}

	DELETE_RULE = ErrorMessage{
		Code:    errorPrefix + "15008",
		Message: "Error while deleting risk rule.",
	}

	ADD_AUDIT = ErrorMessage{
		Code:    errorPrefix + "15009",
		Message: "Error while writing audit record.",
	}

	GET_AUDITS = ErrorMessage{
		Code:    errorPrefix + "15010",
		Message: "Error while fetching audit records.",
	}

	CALCULATE_RISK_SCORE = ErrorMessage{
		Code:    errorPrefix + "15011",
		Message: "Error while calculating risk score.",
	}

	PARSING_ERROR = ErrorMessage{
		Code:    errorPrefix + "15012",
		Message: "Error while parsing token claims.",
	}

	HEALTH_CHECK = ErrorMessage{
		Code:    errorPrefix + "15013",
		Message: "Error while checking service health.",
	}

	// Client error codes

	ErrBadItemRequest = ErrorMessage{
		Code:        errorPrefix + "10001",
		Message:     "Invalid item request.",
		Description: "The item payload failed validation.",
	}

	ErrBadRuleRequest = ErrorMessage{
		Code:        errorPrefix + "10002",
		Message:     "Invalid risk rule request.",
		Description: "The risk rule payload failed validation.",
	}

	ErrMalformedCondition = ErrorMessage{
		Code:        errorPrefix + "10003",
		Message:     "Malformed condition.",
		Description: "The rule condition must be a valid JSON object with field, operator and value.",
	}

	ErrIllegalCondition = ErrorMessage{
		Code:        errorPrefix + "10004",
		Message:     "Illegal condition.",
		Description: "The field, operator and value combination is not allowed.",
	}

	ErrItemNotFound = ErrorMessage{
		Code:        errorPrefix + "10005",
		Message:     "Item not found.",
		Description: "No item exists for the given identifier.",
	}

	ErrRuleNotFound = ErrorMessage{
		Code:        errorPrefix + "10006",
		Message:     "Risk rule not found.",
		Description: "No risk rule exists for the given identifier.",
	}

	ErrForbidden = ErrorMessage{
		Code:        errorPrefix + "10007",
		Message:     "Forbidden.",
		Description: "The authenticated user does not own this resource.",
	}

	ErrUnauthorized = ErrorMessage{
		Code:        errorPrefix + "10008",
		Message:     "Unauthorized.",
		Description: "A valid bearer token is required.",
	}

	ErrBadAuditRequest = ErrorMessage{
		Code:        errorPrefix + "10009",
		Message:     "Invalid audit query.",
		Description: "The audit query parameters failed validation.",
	}
)
