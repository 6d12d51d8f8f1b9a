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

package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/riskdesk/risk-review-service/internal/items/model"
	"github.com/riskdesk/risk-review-service/internal/items/provider"
	"github.com/riskdesk/risk-review-service/internal/system/errors"
	"github.com/riskdesk/risk-review-service/internal/system/log"
	"github.com/riskdesk/risk-review-service/internal/system/utils"
)

type ItemHandler struct{}

func NewItemHandler() *ItemHandler {

	return &ItemHandler{}
}

// HandleItemPostRequest handles POST /items
func (ih *ItemHandler) HandleItemPostRequest(w http.ResponseWriter, r *http.Request) {

	var request model.ItemRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&request); err != nil {
		utils.HandleError(w, badItemPayloadError(err))
		return
	}

	itemProvider := provider.NewItemProvider()
	itemService := itemProvider.GetItemService()
	item, err := itemService.AddItem(request, utils.UserIDFromRequest(r))
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	log.GetLogger().Info(fmt.Sprintf("Item: %s created successfully", item.ItemID))
	utils.WriteJSON(w, http.StatusCreated, item)
}

// HandleItemListRequest handles GET /items
func (ih *ItemHandler) HandleItemListRequest(w http.ResponseWriter, r *http.Request) {

	itemProvider := provider.NewItemProvider()
	itemService := itemProvider.GetItemService()
	items, err := itemService.GetItems(utils.UserIDFromRequest(r))
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	if items == nil {
		items = []model.Item{}
	}
	utils.WriteJSON(w, http.StatusOK, items)
}

// HandleItemGetRequest handles GET /items/{item_id}
func (ih *ItemHandler) HandleItemGetRequest(w http.ResponseWriter, r *http.Request) {

	itemID, ok := itemIDFromPath(w, r)
	if !ok {
		return
	}

	itemProvider := provider.NewItemProvider()
	itemService := itemProvider.GetItemService()
	item, err := itemService.GetItem(itemID, utils.UserIDFromRequest(r))
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, item)
}

// HandleItemPatchRequest handles PATCH /items/{item_id}
func (ih *ItemHandler) HandleItemPatchRequest(w http.ResponseWriter, r *http.Request) {

	itemID, ok := itemIDFromPath(w, r)
	if !ok {
		return
	}

	var patch model.ItemPatch
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&patch); err != nil {
		utils.HandleError(w, badItemPayloadError(err))
		return
	}

	itemProvider := provider.NewItemProvider()
	itemService := itemProvider.GetItemService()
	item, err := itemService.PatchItem(itemID, utils.UserIDFromRequest(r), patch)
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	log.GetLogger().Info(fmt.Sprintf("Item: %s updated successfully", itemID))
	utils.WriteJSON(w, http.StatusOK, item)
}

// HandleItemDeleteRequest handles DELETE /items/{item_id}
func (ih *ItemHandler) HandleItemDeleteRequest(w http.ResponseWriter, r *http.Request) {

	itemID, ok := itemIDFromPath(w, r)
	if !ok {
		return
	}

	itemProvider := provider.NewItemProvider()
	itemService := itemProvider.GetItemService()
	if err := itemService.DeleteItem(itemID, utils.UserIDFromRequest(r)); err != nil {
		utils.HandleError(w, err)
		return
	}
	log.GetLogger().Info(fmt.Sprintf("Item: %s deleted successfully", itemID))
	w.WriteHeader(http.StatusNoContent)
}

func itemIDFromPath(w http.ResponseWriter, r *http.Request) (string, bool) {

	pathParts := strings.Split(strings.TrimSuffix(r.URL.Path, "/"), "/")
	itemID := pathParts[len(pathParts)-1]
	if itemID == "" || itemID == "items" {
		http.Error(w, "Invalid path", http.StatusBadRequest)
		return "", false
	}
	return itemID, true
}

func badItemPayloadError(err error) error {
	return errors.NewClientError(errors.ErrorMessage{
		Code:        errors.ErrBadItemRequest.Code,
		Message:     errors.ErrBadItemRequest.Message,
		Description: utils.HandleDecodeError(err, "item"),
	}, http.StatusBadRequest)
}
