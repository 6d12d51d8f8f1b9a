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
	"fmt"
	"net/http"
	"strings"

	itemProvider "github.com/riskdesk/risk-review-service/internal/items/provider"
	riskService "github.com/riskdesk/risk-review-service/internal/risk/service"
	"github.com/riskdesk/risk-review-service/internal/system/log"
	"github.com/riskdesk/risk-review-service/internal/system/utils"
)

type ScoreHandler struct{}

func NewScoreHandler() *ScoreHandler {

	return &ScoreHandler{}
}

// scoreResponse is the wire shape of a score lookup.
type scoreResponse struct {
	ItemID    string `json:"itemId"`
	RiskScore int    `json:"riskScore"`
	RiskLevel string `json:"riskLevel"`
}

// HandleScorePostRequest handles POST /score/{item_id}. It recomputes the
// item's risk score against the current rule set and persists the result.
func (sh *ScoreHandler) HandleScorePostRequest(w http.ResponseWriter, r *http.Request) {

	itemID, ok := scoreItemIDFromPath(w, r)
	if !ok {
		return
	}

	itemService := itemProvider.NewItemProvider().GetItemService()
	item, err := itemService.RescoreItem(itemID, utils.UserIDFromRequest(r))
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	log.GetLogger().Info(fmt.Sprintf("Item: %s rescored to %d", itemID, item.RiskScore))
	utils.WriteJSON(w, http.StatusOK, scoreResponse{
		ItemID:    item.ItemID,
		RiskScore: item.RiskScore,
		RiskLevel: riskService.RiskLevel(item.RiskScore),
	})
}

// HandleScoreGetRequest handles GET /score/{item_id}
func (sh *ScoreHandler) HandleScoreGetRequest(w http.ResponseWriter, r *http.Request) {

	itemID, ok := scoreItemIDFromPath(w, r)
	if !ok {
		return
	}

	itemService := itemProvider.NewItemProvider().GetItemService()
	item, err := itemService.GetItem(itemID, utils.UserIDFromRequest(r))
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, scoreResponse{
		ItemID:    item.ItemID,
		RiskScore: item.RiskScore,
		RiskLevel: riskService.RiskLevel(item.RiskScore),
	})
}

func scoreItemIDFromPath(w http.ResponseWriter, r *http.Request) (string, bool) {

	pathParts := strings.Split(strings.TrimSuffix(r.URL.Path, "/"), "/")
	itemID := pathParts[len(pathParts)-1]
	if itemID == "" || itemID == "score" {
		http.Error(w, "Invalid path", http.StatusBadRequest)
		return "", false
	}
	return itemID, true
}
