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

package utils

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/riskdesk/risk-review-service/internal/system/constants"
	customerrors "github.com/riskdesk/risk-review-service/internal/system/errors"
	"github.com/riskdesk/risk-review-service/internal/system/log"
)

// HandleError sends an HTTP error response based on the provided error
func HandleError(w http.ResponseWriter, err error) {
	var clientError *customerrors.ClientError
	w.Header().Set("Content-Type", "application/json")
	if ok := errors.As(err, &clientError); ok {
		w.WriteHeader(clientError.StatusCode)
		_ = json.NewEncoder(w).Encode(struct {
			Code        string `json:"code"`
			Message     string `json:"message"`
			Description string `json:"description"`
		}{
			Code:        clientError.ErrorMessage.Code,
			Message:     clientError.ErrorMessage.Message,
			Description: clientError.ErrorMessage.Description,
		})
		return
	}

	logger := log.GetLogger()
	logger.Error(err.Error())
	w.WriteHeader(http.StatusInternalServerError)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error": "Internal server error",
	})
}

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		_ = json.NewEncoder(w).Encode(body)
	}
}

// WithSession stores the authenticated user id and scopes in the request context.
func WithSession(ctx context.Context, userID, scopes string) context.Context {
	ctx = context.WithValue(ctx, constants.UserContextKey, userID)
	return context.WithValue(ctx, constants.ScopesContextKey, scopes)
}

// UserIDFromRequest returns the authenticated user id placed in the request
// context by the service dispatcher.
func UserIDFromRequest(r *http.Request) string {
	userID, _ := r.Context().Value(constants.UserContextKey).(string)
	return userID
}

// ScopesFromRequest returns the granted token scopes from the request context.
func ScopesFromRequest(r *http.Request) string {
	scopes, _ := r.Context().Value(constants.ScopesContextKey).(string)
	return scopes
}

// ForbiddenError builds the standard 403 client error.
func ForbiddenError() error {
	return customerrors.NewClientError(customerrors.ErrorMessage{
		Code:        customerrors.ErrForbidden.Code,
		Message:     customerrors.ErrForbidden.Message,
		Description: customerrors.ErrForbidden.Description,
	}, http.StatusForbidden)
}
