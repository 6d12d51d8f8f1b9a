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

package provider

import (
	"github.com/riskdesk/risk-review-service/internal/items/service"
)

// ItemProviderInterface defines the interface for the item provider.
type ItemProviderInterface interface {
	GetItemService() service.ItemServiceInterface
}

// ItemProvider is the default implementation of the ItemProviderInterface.
type ItemProvider struct{}

// NewItemProvider creates a new instance of ItemProvider.
func NewItemProvider() ItemProviderInterface {

	return &ItemProvider{}
}

// GetItemService returns the item service instance.
func (ip *ItemProvider) GetItemService() service.ItemServiceInterface {

	return service.GetItemService()
}
