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

package workers

import (
	"fmt"
	"strconv"
	"time"

	auditService "github.com/riskdesk/risk-review-service/internal/audits/service"
	itemStore "github.com/riskdesk/risk-review-service/internal/items/store"
	"github.com/riskdesk/risk-review-service/internal/risk/engine"
	riskService "github.com/riskdesk/risk-review-service/internal/risk/service"
	"github.com/riskdesk/risk-review-service/internal/system/constants"
	"github.com/riskdesk/risk-review-service/internal/system/log"
	"github.com/riskdesk/risk-review-service/internal/system/metrics"
)

// RescoreQueue receives the owner user id of a changed rule. An empty
// owner means a global rule changed and every item must be rescored.
var RescoreQueue chan string

func StartRescoreWorker() {

	RescoreQueue = make(chan string, constants.DefaultQueueSize)

	go func() {
		for ownerUserID := range RescoreQueue {
			rescoreItems(ownerUserID)
		}
	}()
}

func EnqueueRescore(ownerUserID string) {
	if RescoreQueue != nil {
		RescoreQueue <- ownerUserID
	}
}

// rescoreItems replays the risk calculation over every item a rule change
// can affect, persisting and auditing only the scores that moved.
func rescoreItems(ownerUserID string) {

	logger := log.GetLogger()
	items, err := itemStore.GetItemsForRescore(ownerUserID)
	if err != nil {
		logger.Error("Failed to fetch items for rescoring", log.Error(err))
		return
	}
	if len(items) == 0 {
		return
	}

	risk := riskService.GetRiskService()
	audits := auditService.GetAuditService()
	changed := 0
	for _, item := range items {
		newScore := risk.CalculateRisk(item.UserID, engine.SubjectFromItem(item))
		if newScore == item.RiskScore {
			continue
		}

		updatedAt := time.Now().UTC().Unix()
		if err := itemStore.UpdateRiskScore(item.ItemID, newScore, updatedAt); err != nil {
			logger.Error(fmt.Sprintf("Failed to persist rescored item: %s", item.ItemID), log.Error(err))
			continue
		}
		audits.RecordItemAudit(constants.AuditActionRiskScoreCalculated, "risk_score",
			strconv.Itoa(item.RiskScore), strconv.Itoa(newScore), item.ItemID, item.UserID)
		changed++
	}

	metrics.GetCollector().RescoreRuns.Inc()
	logger.Audit(log.AuditEvent{
		InitiatorID:   "rescore-worker",
		InitiatorType: log.InitiatorTypeSystem,
		TargetID:      ownerUserID,
		TargetType:    log.TargetTypeItem,
		ActionID:      log.ActionRescoreItems,
		Data:          map[string]int{"evaluated": len(items), "changed": changed},
	})
}
