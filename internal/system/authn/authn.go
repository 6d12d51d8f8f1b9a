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

package authn

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/riskdesk/risk-review-service/internal/system/config"
	errors2 "github.com/riskdesk/risk-review-service/internal/system/errors"
	"github.com/riskdesk/risk-review-service/internal/system/log"
)

// Session describes an authenticated caller.
type Session struct {
	UserID string
	Scopes string
}

// ValidateRequest validates the Authorization: Bearer token of an HTTP request
// and returns the caller's session.
func ValidateRequest(r *http.Request) (Session, error) {

	token, err := extractBearerToken(r)
	if err != nil {
		return Session{}, err
	}

	claims, err := validateToken(token)
	if err != nil {
		return Session{}, err
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		log.GetLogger().Debug("Token does not carry a subject claim.")
		return Session{}, unauthorizedError()
	}

	scopes, _ := claims["scope"].(string)
	return Session{UserID: sub, Scopes: scopes}, nil
}

func extractBearerToken(r *http.Request) (string, error) {

	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", unauthorizedError()
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return "", unauthorizedError()
	}
	return parts[1], nil
}

// validateToken verifies the JWT signature with the configured HMAC secret and
// checks the standard expiry and audience claims.
func validateToken(tokenString string) (jwt.MapClaims, error) {

	logger := log.GetLogger()
	authConfig := config.GetRRSRuntime().Config.Auth

	parserOptions := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if authConfig.Audience != "" {
		parserOptions = append(parserOptions, jwt.WithAudience(authConfig.Audience))
	}

	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(authConfig.JWTSecret), nil
	}, parserOptions...)
	if err != nil {
		logger.Debug("Token validation failed.", log.Error(err))
		return nil, unauthorizedError()
	}
	if !token.Valid {
		logger.Debug("Token is not valid.")
		return nil, unauthorizedError()
	}

	return claims, nil
}

func unauthorizedError() error {
	return errors2.NewClientError(errors2.ErrorMessage{
		Code:        errors2.ErrUnauthorized.Code,
		Message:     errors2.ErrUnauthorized.Message,
		Description: errors2.ErrUnauthorized.Description,
	}, http.StatusUnauthorized)
}
