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
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskdesk/risk-review-service/internal/rules/model"
	"github.com/riskdesk/risk-review-service/internal/system/errors"
)

// ---------------------------------------------------------------------------
// AddRule – early-return validation (no DB required)
// ---------------------------------------------------------------------------

func TestAddRule_MissingName_Rejected(t *testing.T) {
	svc := &RuleService{}
	score := 30
	_, err := svc.AddRule(model.RuleRequest{
		Condition: `{"field":"amount","operator":">","value":1000}`,
		Score:     &score,
	}, "user-1")
	require.Error(t, err)

	clientErr, ok := err.(*errors.ClientError)
	require.True(t, ok, "expected a ClientError")
	assert.Equal(t, http.StatusBadRequest, clientErr.StatusCode)
	assert.Equal(t, errors.ErrBadRuleRequest.Code, clientErr.ErrorMessage.Code)
}

func TestAddRule_MissingCondition_Rejected(t *testing.T) {
	svc := &RuleService{}
	score := 30
	_, err := svc.AddRule(model.RuleRequest{Name: "high amount", Score: &score}, "user-1")
	require.Error(t, err)

	clientErr, ok := err.(*errors.ClientError)
	require.True(t, ok, "expected a ClientError")
	assert.Equal(t, http.StatusBadRequest, clientErr.StatusCode)
}

func TestAddRule_MissingScore_Rejected(t *testing.T) {
	svc := &RuleService{}
	_, err := svc.AddRule(model.RuleRequest{
		Name:      "high amount",
		Condition: `{"field":"amount","operator":">","value":1000}`,
	}, "user-1")
	require.Error(t, err)

	clientErr, ok := err.(*errors.ClientError)
	require.True(t, ok, "expected a ClientError")
	assert.Equal(t, http.StatusBadRequest, clientErr.StatusCode)
}

func TestAddRule_IllegalCondition_Rejected(t *testing.T) {
	svc := &RuleService{}
	score := 30
	_, err := svc.AddRule(model.RuleRequest{
		Name:      "bad operator",
		Condition: `{"field":"amount","operator":"includes","value":5}`,
		Score:     &score,
	}, "user-1")
	require.Error(t, err)

	clientErr, ok := err.(*errors.ClientError)
	require.True(t, ok, "expected a ClientError")
	assert.Equal(t, errors.ErrIllegalCondition.Code, clientErr.ErrorMessage.Code)
}