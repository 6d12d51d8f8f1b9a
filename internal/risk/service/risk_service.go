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
	"sync"
	"time"

	"github.com/riskdesk/risk-review-service/internal/risk/engine"
	"github.com/riskdesk/risk-review-service/internal/rules/model"
	"github.com/riskdesk/risk-review-service/internal/rules/store"
	"github.com/riskdesk/risk-review-service/internal/system/cache"
	"github.com/riskdesk/risk-review-service/internal/system/config"
	"github.com/riskdesk/risk-review-service/internal/system/constants"
	"github.com/riskdesk/risk-review-service/internal/system/log"
	"github.com/riskdesk/risk-review-service/internal/system/metrics"
)

// RiskServiceInterface is the scoring entry point exposed to item handlers
// and the rescore worker.
type RiskServiceInterface interface {
	CalculateRisk(userID string, subject engine.Subject) int
	InvalidateRuleSnapshot()
}

// RiskService is the default implementation of the RiskServiceInterface.
type RiskService struct{}

var (
	snapshotCache     *cache.Cache
	snapshotCacheOnce sync.Once
)

// GetRiskService creates a new instance of RiskService.
func GetRiskService() RiskServiceInterface {

	return &RiskService{}
}

// CalculateRisk fetches the active rule snapshot visible to the user and runs
// the evaluation engine against the subject. Scoring never fails: when the
// rule fetch is unavailable the fixed heuristic takes over, exactly as it
// does for an empty rule set.
func (rs *RiskService) CalculateRisk(userID string, subject engine.Subject) int {

	started := time.Now()
	rules := rs.activeRules(userID)
	score := engine.Evaluate(rules, subject)

	collector := metrics.GetCollector()
	collector.EvaluationDuration.Observe(time.Since(started).Seconds())
	collector.RiskScoreDistribution.Observe(float64(score))
	return score
}

// InvalidateRuleSnapshot drops every cached rule snapshot. Called on any rule
// mutation; a global rule change invalidates all users at once, so the whole
// cache goes.
func (rs *RiskService) InvalidateRuleSnapshot() {
	ruleSnapshotCache().Flush()
}

func (rs *RiskService) activeRules(userID string) []model.CompiledRule {

	cacheKey := "active_rules:" + userID
	if cached, found := ruleSnapshotCache().Get(cacheKey); found {
		if rules, ok := cached.([]model.CompiledRule); ok {
			return rules
		}
	}

	rules, err := store.GetActiveRules(userID)
	if err != nil {
		log.GetLogger().Warn("Active rule fetch failed; scoring with the fallback heuristic",
			log.String("user_id", userID), log.Error(err))
		return nil
	}

	ruleSnapshotCache().Set(cacheKey, rules)
	return rules
}

func ruleSnapshotCache() *cache.Cache {
	snapshotCacheOnce.Do(func() {
		ttlSeconds := config.GetRRSRuntime().Config.Cache.RuleSnapshotTTLSeconds
		if ttlSeconds <= 0 {
			ttlSeconds = 30
		}
		snapshotCache = cache.NewCache(time.Duration(ttlSeconds) * time.Second)
	})
	return snapshotCache
}

// RiskLevel buckets a 0-100 risk score into the display level used by the
// score endpoint.
func RiskLevel(score int) string {
	switch {
	case score >= 80:
		return constants.RiskLevelHigh
	case score >= 50:
		return constants.RiskLevelMedium
	case score >= 20:
		return constants.RiskLevelLow
	default:
		return constants.RiskLevelVeryLow
	}
}
