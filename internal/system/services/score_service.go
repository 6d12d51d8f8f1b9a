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

	"github.com/riskdesk/risk-review-service/internal/risk/handler"
	"github.com/riskdesk/risk-review-service/internal/system/constants"
)

// ScoreService handles routing for risk score endpoints.
type ScoreService struct {
	scoreHandler *handler.ScoreHandler
}

func NewScoreService() *ScoreService {
	return &ScoreService{
		scoreHandler: handler.NewScoreHandler(),
	}
}

// Route dispatches risk score requests.
func (s *ScoreService) Route(w http.ResponseWriter, r *http.Request) {

	path := strings.TrimPrefix(r.URL.Path, constants.ApiBasePath)
	path = strings.TrimSuffix(path, "/")
	method := r.Method

	switch {
	case method == http.MethodPost && strings.HasPrefix(path, "/score/"):
		s.scoreHandler.HandleScorePostRequest(w, r)

	case method == http.MethodGet && strings.HasPrefix(path, "/score/"):
		s.scoreHandler.HandleScoreGetRequest(w, r)

	default:
		http.NotFound(w, r)
	}
}
