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

package store

import (
	"encoding/json"
	"fmt"

	"github.com/riskdesk/risk-review-service/internal/items/model"
	"github.com/riskdesk/risk-review-service/internal/system/database/client"
	"github.com/riskdesk/risk-review-service/internal/system/database/provider"
	errors2 "github.com/riskdesk/risk-review-service/internal/system/errors"
	"github.com/riskdesk/risk-review-service/internal/system/log"
)

// AddItem inserts a new item.
func AddItem(item model.Item) error {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	if err != nil {
		return itemServerError(errors2.ADD_ITEM,
			fmt.Sprintf("Failed to get db client for adding item: %s", item.Title), err)
	}
	defer dbClient.Close()

	query := `INSERT INTO items
		(item_id, title, description, amount, tags, status, risk_score, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err = dbClient.Exec(query,
		item.ItemID, item.Title, item.Description, item.Amount, encodeTags(item.Tags),
		item.Status, item.RiskScore, item.UserID, item.CreatedAt, item.UpdatedAt)
	if err != nil {
		return itemServerError(errors2.ADD_ITEM,
			fmt.Sprintf("Failed on inserting item: %s", item.Title), err)
	}

	log.GetLogger().Info(fmt.Sprintf("Item: %s added successfully.", item.ItemID))
	return nil
}

// GetItemsForUser returns the user's items, newest first.
func GetItemsForUser(userID string) ([]model.Item, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	if err != nil {
		return nil, itemServerError(errors2.GET_ITEM, "Failed to get db client for listing items", err)
	}
	defer dbClient.Close()

	query := itemSelectColumns + ` FROM items WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := dbClient.ExecuteQuery(query, userID)
	if err != nil {
		return nil, itemServerError(errors2.GET_ITEM, "Failed on listing items", err)
	}

	items := make([]model.Item, 0, len(rows))
	for _, row := range rows {
		items = append(items, buildItemFromRow(row))
	}
	return items, nil
}

// GetItem returns an item by id; a zero item when no such row exists.
func GetItem(itemID string) (model.Item, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	if err != nil {
		return model.Item{}, itemServerError(errors2.GET_ITEM,
			fmt.Sprintf("Failed to get db client for fetching item: %s", itemID), err)
	}
	defer dbClient.Close()

	query := itemSelectColumns + ` FROM items WHERE item_id = $1`

	rows, err := dbClient.ExecuteQuery(query, itemID)
	if err != nil {
		return model.Item{}, itemServerError(errors2.GET_ITEM,
			fmt.Sprintf("Failed on fetching item: %s", itemID), err)
	}
	if len(rows) == 0 {
		return model.Item{}, nil
	}
	return buildItemFromRow(rows[0]), nil
}

// UpdateItem rewrites the mutable columns of an existing item.
func UpdateItem(item model.Item) error {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	if err != nil {
		return itemServerError(errors2.UPDATE_ITEM,
			fmt.Sprintf("Failed to get db client for updating item: %s", item.ItemID), err)
	}
	defer dbClient.Close()

	query := `UPDATE items SET title = $1, description = $2, amount = $3, tags = $4,
		status = $5, risk_score = $6, updated_at = $7 WHERE item_id = $8`

	_, err = dbClient.Exec(query, item.Title, item.Description, item.Amount, encodeTags(item.Tags),
		item.Status, item.RiskScore, item.UpdatedAt, item.ItemID)
	if err != nil {
		return itemServerError(errors2.UPDATE_ITEM,
			fmt.Sprintf("Failed on updating item: %s", item.ItemID), err)
	}

	log.GetLogger().Info(fmt.Sprintf("Item: %s updated successfully.", item.ItemID))
	return nil
}

// UpdateRiskScore persists a recomputed risk score.
func UpdateRiskScore(itemID string, score int, updatedAt int64) error {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	if err != nil {
		return itemServerError(errors2.UPDATE_ITEM,
			fmt.Sprintf("Failed to get db client for scoring item: %s", itemID), err)
	}
	defer dbClient.Close()

	_, err = dbClient.Exec(`UPDATE items SET risk_score = $1, updated_at = $2 WHERE item_id = $3`,
		score, updatedAt, itemID)
	if err != nil {
		return itemServerError(errors2.UPDATE_ITEM,
			fmt.Sprintf("Failed on scoring item: %s", itemID), err)
	}
	return nil
}

// DeleteItem removes an item.
func DeleteItem(itemID string) error {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	if err != nil {
		return itemServerError(errors2.DELETE_ITEM,
			fmt.Sprintf("Failed to get db client for deleting item: %s", itemID), err)
	}
	defer dbClient.Close()

	_, err = dbClient.Exec(`DELETE FROM items WHERE item_id = $1`, itemID)
	if err != nil {
		return itemServerError(errors2.DELETE_ITEM,
			fmt.Sprintf("Failed on deleting item: %s", itemID), err)
	}

	log.GetLogger().Info(fmt.Sprintf("Item: %s deleted successfully.", itemID))
	return nil
}

// GetItemsForRescore returns the items affected by a rule change: the owner's
// items for a user rule, every item for a global rule (empty userID).
func GetItemsForRescore(userID string) ([]model.Item, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	if err != nil {
		return nil, itemServerError(errors2.GET_ITEM, "Failed to get db client for rescore listing", err)
	}
	defer dbClient.Close()

	query := itemSelectColumns + ` FROM items`
	args := []interface{}{}
	if userID != "" {
		query += ` WHERE user_id = $1`
		args = append(args, userID)
	}

	rows, err := dbClient.ExecuteQuery(query, args...)
	if err != nil {
		return nil, itemServerError(errors2.GET_ITEM, "Failed on rescore listing", err)
	}

	items := make([]model.Item, 0, len(rows))
	for _, row := range rows {
		items = append(items, buildItemFromRow(row))
	}
	return items, nil
}

const itemSelectColumns = `SELECT item_id, title, description, amount, tags, status,
	risk_score, user_id, created_at, updated_at`

func buildItemFromRow(row map[string]interface{}) model.Item {
	return model.Item{
		ItemID:      client.AsString(row["item_id"]),
		Title:       client.AsString(row["title"]),
		Description: client.AsString(row["description"]),
		Amount:      client.AsDecimal(row["amount"]),
		Tags:        decodeTags(client.AsString(row["tags"])),
		Status:      client.AsString(row["status"]),
		RiskScore:   client.AsInt(row["risk_score"]),
		UserID:      client.AsString(row["user_id"]),
		CreatedAt:   client.AsInt64(row["created_at"]),
		UpdatedAt:   client.AsInt64(row["updated_at"]),
	}
}

// Tags are stored as a JSON array in a text column so the same schema works
// on both supported drivers.
func encodeTags(tags []string) string {
	if tags == nil {
		tags = []string{}
	}
	encoded, err := json.Marshal(tags)
	if err != nil {
		return "[]"
	}
	return string(encoded)
}

func decodeTags(raw string) []string {
	if raw == "" {
		return []string{}
	}
	var tags []string
	if err := json.Unmarshal([]byte(raw), &tags); err != nil {
		log.GetLogger().Warn("Stored item tags failed to decode", log.String("raw", raw))
		return []string{}
	}
	return tags
}

func itemServerError(msg errors2.ErrorMessage, description string, err error) error {
	log.GetLogger().Debug(description, log.Error(err))
	return errors2.NewServerError(errors2.ErrorMessage{
		Code:        msg.Code,
		Message:     msg.Message,
		Description: description,
	}, err)
}
