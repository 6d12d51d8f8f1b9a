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
	"net/http"
	"os"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskdesk/risk-review-service/internal/items/model"
	"github.com/riskdesk/risk-review-service/internal/system/errors"
	"github.com/riskdesk/risk-review-service/internal/system/log"
)

func TestMain(m *testing.M) {
	_ = log.Init("ERROR")
	os.Exit(m.Run())
}

// ---------------------------------------------------------------------------
// AddItem – early-return validation (no DB required)
// ---------------------------------------------------------------------------

func TestAddItem_MissingTitle_Rejected(t *testing.T) {
	svc := &ItemService{}
	amount := decimal.NewFromInt(100)
	_, err := svc.AddItem(model.ItemRequest{Title: "   ", Amount: &amount}, "user-1")
	require.Error(t, err)

	clientErr, ok := err.(*errors.ClientError)
	require.True(t, ok, "expected a ClientError")
	assert.Equal(t, http.StatusBadRequest, clientErr.StatusCode)
	assert.Equal(t, errors.ErrBadItemRequest.Code, clientErr.ErrorMessage.Code)
}

func TestAddItem_MissingAmount_Rejected(t *testing.T) {
	svc := &ItemService{}
	_, err := svc.AddItem(model.ItemRequest{Title: "laptop purchase"}, "user-1")
	require.Error(t, err)

	clientErr, ok := err.(*errors.ClientError)
	require.True(t, ok, "expected a ClientError")
	assert.Equal(t, http.StatusBadRequest, clientErr.StatusCode)
}

func TestAddItem_NegativeAmount_Rejected(t *testing.T) {
	svc := &ItemService{}
	amount := decimal.NewFromInt(-5)
	_, err := svc.AddItem(model.ItemRequest{Title: "refund", Amount: &amount}, "user-1")
	require.Error(t, err)

	clientErr, ok := err.(*errors.ClientError)
	require.True(t, ok, "expected a ClientError")
	assert.Equal(t, http.StatusBadRequest, clientErr.StatusCode)
}

func TestAddItem_UnknownStatus_Rejected(t *testing.T) {
	svc := &ItemService{}
	amount := decimal.NewFromInt(100)
	_, err := svc.AddItem(model.ItemRequest{
		Title:  "laptop purchase",
		Amount: &amount,
		Status: "CLOSED",
	}, "user-1")
	require.Error(t, err)

	clientErr, ok := err.(*errors.ClientError)
	require.True(t, ok, "expected a ClientError")
	assert.Equal(t, http.StatusBadRequest, clientErr.StatusCode)
}

// ---------------------------------------------------------------------------
// applyItemPatch – change tracking
// ---------------------------------------------------------------------------

func TestApplyItemPatchRecordsChangedFieldsOnly(t *testing.T) {
	item := model.Item{
		Title:       "laptop purchase",
		Description: "old",
		Amount:      decimal.NewFromInt(100),
		Tags:        []string{"hardware"},
		Status:      "NEW",
	}

	title := "laptop purchase" // unchanged
	description := "new"
	amount := decimal.NewFromInt(250)
	changes := applyItemPatch(&item, model.ItemPatch{
		Title:       &title,
		Description: &description,
		Amount:      &amount,
	})

	require.Len(t, changes, 2)
	assert.Equal(t, "description", changes[0].field)
	assert.Equal(t, "old", changes[0].oldValue)
	assert.Equal(t, "new", changes[0].newValue)
	assert.Equal(t, "amount", changes[1].field)
	assert.Equal(t, "100", changes[1].oldValue)
	assert.Equal(t, "250", changes[1].newValue)
	assert.True(t, item.Amount.Equal(decimal.NewFromInt(250)))
}

func TestApplyItemPatchTagsChange(t *testing.T) {
	item := model.Item{
		Title:  "wire transfer",
		Amount: decimal.NewFromInt(100),
		Tags:   []string{"urgent"},
		Status: "NEW",
	}

	tags := []string{"urgent", "fraud"}
	changes := applyItemPatch(&item, model.ItemPatch{Tags: &tags})

	require.Len(t, changes, 1)
	assert.Equal(t, "tags", changes[0].field)
	assert.Equal(t, `["urgent"]`, changes[0].oldValue)
	assert.Equal(t, `["urgent","fraud"]`, changes[0].newValue)
}
