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
	"time"

	"github.com/google/uuid"

	"github.com/riskdesk/risk-review-service/internal/audits/model"
	"github.com/riskdesk/risk-review-service/internal/audits/store"
	"github.com/riskdesk/risk-review-service/internal/system/constants"
	"github.com/riskdesk/risk-review-service/internal/system/log"
)

// AuditServiceInterface defines the interface for the audit service.
type AuditServiceInterface interface {
	RecordItemAudit(action, field, oldValue, newValue, itemID, userID string)
	GetAudits(userID string, query model.AuditQuery) (model.AuditPage, error)
}

// AuditService is the default implementation of the AuditServiceInterface.
type AuditService struct{}

// GetAuditService creates a new instance of AuditService.
func GetAuditService() AuditServiceInterface {

	return &AuditService{}
}

// RecordItemAudit appends an audit row for an item mutation. Audit writes are
// best effort: a failed write is logged but never fails the mutation that
// triggered it.
func (as *AuditService) RecordItemAudit(action, field, oldValue, newValue, itemID, userID string) {

	audit := model.Audit{
		AuditID:   uuid.New().String(),
		Action:    action,
		Field:     field,
		OldValue:  oldValue,
		NewValue:  newValue,
		ItemID:    itemID,
		UserID:    userID,
		CreatedAt: time.Now().UTC().UnixNano(),
	}
	if err := store.AddAudit(audit); err != nil {
		log.GetLogger().Error("Failed to write audit row",
			log.String("action", action), log.String("item_id", itemID), log.Error(err))
	}
}

// GetAudits returns a page of the audit rows belonging to the user's items.
func (as *AuditService) GetAudits(userID string, query model.AuditQuery) (model.AuditPage, error) {

	if query.Page < 1 {
		query.Page = constants.DefaultAuditPage
	}
	if query.Limit < 1 {
		query.Limit = constants.DefaultAuditLimit
	}
	if query.Limit > constants.MaxAuditLimit {
		query.Limit = constants.MaxAuditLimit
	}

	audits, total, err := store.GetAuditsForUser(userID, query)
	if err != nil {
		return model.AuditPage{}, err
	}
	return model.AuditPage{
		Audits: audits,
		Total:  total,
		Page:   query.Page,
		Limit:  query.Limit,
	}, nil
}
