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
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	auditservice "github.com/riskdesk/risk-review-service/internal/audits/service"
	"github.com/riskdesk/risk-review-service/internal/items/model"
	"github.com/riskdesk/risk-review-service/internal/items/store"
	"github.com/riskdesk/risk-review-service/internal/risk/engine"
	riskservice "github.com/riskdesk/risk-review-service/internal/risk/service"
	"github.com/riskdesk/risk-review-service/internal/system/constants"
	"github.com/riskdesk/risk-review-service/internal/system/errors"
)

// ItemServiceInterface defines the interface for the item service.
type ItemServiceInterface interface {
	AddItem(request model.ItemRequest, userID string) (model.Item, error)
	GetItems(userID string) ([]model.Item, error)
	GetItem(itemID, userID string) (model.Item, error)
	PatchItem(itemID, userID string, patch model.ItemPatch) (model.Item, error)
	DeleteItem(itemID, userID string) error
	RescoreItem(itemID, userID string) (model.Item, error)
}

// ItemService is the default implementation of the ItemServiceInterface.
type ItemService struct{}

// GetItemService creates a new instance of ItemService.
func GetItemService() ItemServiceInterface {

	return &ItemService{}
}

func (is *ItemService) AddItem(request model.ItemRequest, userID string) (model.Item, error) {

	if err := validateItemRequest(request); err != nil {
		return model.Item{}, err
	}

	status := request.Status
	if status == "" {
		status = constants.StatusNew
	}

	currentTime := time.Now().UTC().Unix()
	item := model.Item{
		ItemID:      uuid.New().String(),
		Title:       strings.TrimSpace(request.Title),
		Description: request.Description,
		Amount:      *request.Amount,
		Tags:        request.Tags,
		Status:      status,
		UserID:      userID,
		CreatedAt:   currentTime,
		UpdatedAt:   currentTime,
	}
	item.RiskScore = riskservice.GetRiskService().CalculateRisk(userID, engine.SubjectFromItem(item))

	if err := store.AddItem(item); err != nil {
		return model.Item{}, err
	}

	auditService := auditservice.GetAuditService()
	auditService.RecordItemAudit(constants.AuditActionItemCreated, "", "", item.Title, item.ItemID, userID)
	auditService.RecordItemAudit(constants.AuditActionRiskScoreCalculated, "risk_score", "",
		strconv.Itoa(item.RiskScore), item.ItemID, userID)
	return item, nil
}

func (is *ItemService) GetItems(userID string) ([]model.Item, error) {

	return store.GetItemsForUser(userID)
}

func (is *ItemService) GetItem(itemID, userID string) (model.Item, error) {

	item, err := store.GetItem(itemID)
	if err != nil {
		return model.Item{}, err
	}
	if item.ItemID == "" {
		return model.Item{}, itemNotFoundError()
	}
	if item.UserID != userID {
		return model.Item{}, forbiddenItemError()
	}
	return item, nil
}

// PatchItem applies a partial update, writes one audit row per changed field
// and recomputes the risk score against the updated fields.
func (is *ItemService) PatchItem(itemID, userID string, patch model.ItemPatch) (model.Item, error) {

	item, err := is.GetItem(itemID, userID)
	if err != nil {
		return model.Item{}, err
	}

	changes := applyItemPatch(&item, patch)
	if err := validateItem(item); err != nil {
		return model.Item{}, err
	}

	item.UpdatedAt = time.Now().UTC().Unix()
	if err := store.UpdateItem(item); err != nil {
		return model.Item{}, err
	}

	auditService := auditservice.GetAuditService()
	for _, change := range changes {
		auditService.RecordItemAudit(constants.AuditActionItemUpdated, change.field,
			change.oldValue, change.newValue, itemID, userID)
	}

	return is.rescore(item, userID)
}

func (is *ItemService) DeleteItem(itemID, userID string) error {

	item, err := is.GetItem(itemID, userID)
	if err != nil {
		return err
	}

	if err := store.DeleteItem(itemID); err != nil {
		return err
	}

	auditservice.GetAuditService().RecordItemAudit(constants.AuditActionItemDeleted, "",
		item.Title, "", itemID, userID)
	return nil
}

// RescoreItem recomputes and persists an item's risk score on demand.
func (is *ItemService) RescoreItem(itemID, userID string) (model.Item, error) {

	item, err := is.GetItem(itemID, userID)
	if err != nil {
		return model.Item{}, err
	}
	return is.rescore(item, userID)
}

func (is *ItemService) rescore(item model.Item, userID string) (model.Item, error) {

	newScore := riskservice.GetRiskService().CalculateRisk(item.UserID, engine.SubjectFromItem(item))
	if newScore == item.RiskScore {
		return item, nil
	}

	oldScore := item.RiskScore
	item.RiskScore = newScore
	item.UpdatedAt = time.Now().UTC().Unix()
	if err := store.UpdateRiskScore(item.ItemID, newScore, item.UpdatedAt); err != nil {
		return model.Item{}, err
	}

	auditservice.GetAuditService().RecordItemAudit(constants.AuditActionRiskScoreCalculated,
		"risk_score", strconv.Itoa(oldScore), strconv.Itoa(newScore), item.ItemID, userID)
	return item, nil
}

type fieldChange struct {
	field    string
	oldValue string
	newValue string
}

func applyItemPatch(item *model.Item, patch model.ItemPatch) []fieldChange {

	var changes []fieldChange
	record := func(field, oldValue, newValue string) {
		if oldValue != newValue {
			changes = append(changes, fieldChange{field: field, oldValue: oldValue, newValue: newValue})
		}
	}

	if patch.Title != nil {
		record("title", item.Title, *patch.Title)
		item.Title = *patch.Title
	}
	if patch.Description != nil {
		record("description", item.Description, *patch.Description)
		item.Description = *patch.Description
	}
	if patch.Amount != nil {
		record("amount", item.Amount.String(), patch.Amount.String())
		item.Amount = *patch.Amount
	}
	if patch.Tags != nil {
		oldTags, _ := json.Marshal(item.Tags)
		newTags, _ := json.Marshal(*patch.Tags)
		record("tags", string(oldTags), string(newTags))
		item.Tags = *patch.Tags
	}
	if patch.Status != nil {
		record("status", item.Status, *patch.Status)
		item.Status = *patch.Status
	}
	return changes
}

func validateItemRequest(request model.ItemRequest) error {

	if strings.TrimSpace(request.Title) == "" {
		return badItemError("title is required")
	}
	if request.Amount == nil {
		return badItemError("amount is required")
	}
	if request.Amount.IsNegative() {
		return badItemError("amount must not be negative")
	}
	if request.Status != "" && !constants.AllowedStatuses[request.Status] {
		return badItemError("status must be one of NEW, IN_REVIEW, APPROVED, REJECTED")
	}
	return nil
}

func validateItem(item model.Item) error {

	if strings.TrimSpace(item.Title) == "" {
		return badItemError("title is required")
	}
	if item.Amount.IsNegative() {
		return badItemError("amount must not be negative")
	}
	if !constants.AllowedStatuses[item.Status] {
		return badItemError("status must be one of NEW, IN_REVIEW, APPROVED, REJECTED")
	}
	return nil
}

func badItemError(description string) error {
	return errors.NewClientError(errors.ErrorMessage{
		Code:        errors.ErrBadItemRequest.Code,
		Message:     errors.ErrBadItemRequest.Message,
		Description: description,
	}, http.StatusBadRequest)
}

func itemNotFoundError() error {
	return errors.NewClientError(errors.ErrorMessage{
		Code:        errors.ErrItemNotFound.Code,
		Message:     errors.ErrItemNotFound.Message,
		Description: errors.ErrItemNotFound.Description,
	}, http.StatusNotFound)
}

func forbiddenItemError() error {
	return errors.NewClientError(errors.ErrorMessage{
		Code:        errors.ErrForbidden.Code,
		Message:     errors.ErrForbidden.Message,
		Description: errors.ErrForbidden.Description,
	}, http.StatusForbidden)
}
