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

package authz

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/riskdesk/risk-review-service/internal/system/config"
	"github.com/riskdesk/risk-review-service/internal/system/constants"
	"github.com/riskdesk/risk-review-service/internal/system/log"
)

func TestMain(m *testing.M) {
	_ = log.Init("ERROR")
	os.Exit(m.Run())
}

func overrideScopes(required map[string][]string) {
	config.OverrideRRSRuntime(config.Config{
		Auth: config.AuthConfig{RequiredScopes: required},
	})
}

func TestValidatePermissionOpenWhenNoScopesConfigured(t *testing.T) {
	overrideScopes(nil)
	assert.True(t, ValidatePermission("", constants.OperationItemsRead))
}

func TestValidatePermissionOpenForUnlistedOperation(t *testing.T) {
	overrideScopes(map[string][]string{
		constants.OperationRulesWrite: {"rules:write"},
	})
	assert.True(t, ValidatePermission("", constants.OperationItemsRead))
}

func TestValidatePermissionGrantedScope(t *testing.T) {
	overrideScopes(map[string][]string{
		constants.OperationRulesWrite: {"rules:write"},
	})
	assert.True(t, ValidatePermission("items:read rules:write", constants.OperationRulesWrite))
}

func TestValidatePermissionMissingScope(t *testing.T) {
	overrideScopes(map[string][]string{
		constants.OperationRulesWrite: {"rules:write"},
	})
	assert.False(t, ValidatePermission("items:read", constants.OperationRulesWrite))
	assert.False(t, ValidatePermission("", constants.OperationRulesWrite))
}

func TestValidatePermissionRequiresEveryExpectedScope(t *testing.T) {
	overrideScopes(map[string][]string{
		constants.OperationAuditsRead: {"audits:read", "items:read"},
	})
	assert.False(t, ValidatePermission("audits:read", constants.OperationAuditsRead))
	assert.True(t, ValidatePermission("audits:read items:read", constants.OperationAuditsRead))
}
