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
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskdesk/risk-review-service/internal/risk/engine"
	rulemodel "github.com/riskdesk/risk-review-service/internal/rules/model"
	rulestore "github.com/riskdesk/risk-review-service/internal/rules/store"
	"github.com/riskdesk/risk-review-service/internal/system/config"
	"github.com/riskdesk/risk-review-service/internal/system/constants"
	"github.com/riskdesk/risk-review-service/internal/system/database/provider"
	"github.com/riskdesk/risk-review-service/internal/system/log"
)

func TestMain(m *testing.M) {
	_ = log.Init("ERROR")
	os.Exit(m.Run())
}

func TestRiskLevelBuckets(t *testing.T) {
	assert.Equal(t, constants.RiskLevelHigh, RiskLevel(100))
	assert.Equal(t, constants.RiskLevelHigh, RiskLevel(80))
	assert.Equal(t, constants.RiskLevelMedium, RiskLevel(79))
	assert.Equal(t, constants.RiskLevelMedium, RiskLevel(50))
	assert.Equal(t, constants.RiskLevelLow, RiskLevel(49))
	assert.Equal(t, constants.RiskLevelLow, RiskLevel(20))
	assert.Equal(t, constants.RiskLevelVeryLow, RiskLevel(19))
	assert.Equal(t, constants.RiskLevelVeryLow, RiskLevel(0))
}

func setupRiskServiceDB(t *testing.T) {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "risk_test.db")
	config.OverrideRRSRuntime(config.Config{
		DataSource: config.DataSourceConfig{
			Type: constants.DBTypeSQLite,
			Path: dbPath,
		},
	})

	dbClient, err := provider.NewDBProvider().GetDBClient()
	require.NoError(t, err)
	defer dbClient.Close()
	require.NoError(t, dbClient.InitDatabase("../../..", "dbscripts/schema.sql"))

	// The snapshot cache is shared across tests; start each test cold.
	GetRiskService().InvalidateRuleSnapshot()
}

func TestCalculateRiskAgainstStoredRules(t *testing.T) {
	setupRiskServiceDB(t)

	require.NoError(t, rulestore.AddRule(rulemodel.Rule{
		RuleID:    "rule-amount",
		Name:      "high amount",
		Condition: `{"field":"amount","operator":">","value":1000}`,
		Score:     30,
		IsActive:  true,
		UserID:    "user-1",
		CreatedAt: 1700000000,
		UpdatedAt: 1700000000,
	}))
	require.NoError(t, rulestore.AddRule(rulemodel.Rule{
		RuleID:    "rule-fraud",
		Name:      "fraud tag",
		Condition: `{"field":"tags","operator":"includes","value":"fraud"}`,
		Score:     40,
		IsActive:  true,
		UserID:    "", // global
		CreatedAt: 1700000000,
		UpdatedAt: 1700000000,
	}))

	svc := GetRiskService()
	score := svc.CalculateRisk("user-1", engine.Subject{
		Amount: decimal.NewFromInt(5000),
		Tags:   []string{"fraud"},
	})
	assert.Equal(t, 70, score)

	// Only the matching rule contributes for a calmer subject.
	score = svc.CalculateRisk("user-1", engine.Subject{Amount: decimal.NewFromInt(5000)})
	assert.Equal(t, 30, score)
}

func TestCalculateRiskEmptyRuleSetUsesHeuristic(t *testing.T) {
	setupRiskServiceDB(t)

	svc := GetRiskService()
	subject := engine.Subject{Amount: decimal.NewFromInt(12000), Tags: []string{"urgent"}}
	assert.Equal(t, engine.FallbackScore(subject), svc.CalculateRisk("user-1", subject))
}

func TestInvalidateRuleSnapshotPicksUpRuleChanges(t *testing.T) {
	setupRiskServiceDB(t)

	svc := GetRiskService()
	subject := engine.Subject{Amount: decimal.NewFromInt(5000)}

	// No rules yet: heuristic path, and the empty snapshot is cached.
	assert.Equal(t, engine.FallbackScore(subject), svc.CalculateRisk("user-1", subject))

	require.NoError(t, rulestore.AddRule(rulemodel.Rule{
		RuleID:    "rule-amount",
		Name:      "high amount",
		Condition: `{"field":"amount","operator":">","value":1000}`,
		Score:     30,
		IsActive:  true,
		UserID:    "user-1",
		CreatedAt: 1700000000,
		UpdatedAt: 1700000000,
	}))

	// The cached snapshot still answers until it is invalidated.
	assert.Equal(t, engine.FallbackScore(subject), svc.CalculateRisk("user-1", subject))

	svc.InvalidateRuleSnapshot()
	assert.Equal(t, 30, svc.CalculateRisk("user-1", subject))
}
