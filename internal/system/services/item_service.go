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

package services

import (
	"net/http"
	"strings"

	"github.com/riskdesk/risk-review-service/internal/items/handler"
	"github.com/riskdesk/risk-review-service/internal/system/constants"
)

// ItemService handles routing for item endpoints.
type ItemService struct {
	itemHandler *handler.ItemHandler
}

func NewItemService() *ItemService {
	return &ItemService{
		itemHandler: handler.NewItemHandler(),
	}
}

// Route dispatches item requests.
func (s *ItemService) Route(w http.ResponseWriter, r *http.Request) {

	path := strings.TrimPrefix(r.URL.Path, constants.ApiBasePath)
	path = strings.TrimSuffix(path, "/")
	method := r.Method

	switch {
	case method == http.MethodPost && path == "/items":
		s.itemHandler.HandleItemPostRequest(w, r)

	case method == http.MethodGet && path == "/items":
		s.itemHandler.HandleItemListRequest(w, r)

	case method == http.MethodGet && strings.HasPrefix(path, "/items/"):
		s.itemHandler.HandleItemGetRequest(w, r)

	case method == http.MethodPatch && strings.HasPrefix(path, "/items/"):
		s.itemHandler.HandleItemPatchRequest(w, r)

	case method == http.MethodDelete && strings.HasPrefix(path, "/items/"):
		s.itemHandler.HandleItemDeleteRequest(w, r)

	default:
		http.NotFound(w, r)
	}
}
