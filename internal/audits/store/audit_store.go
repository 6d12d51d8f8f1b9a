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
	"fmt"

	"github.com/riskdesk/risk-review-service/internal/audits/model"
	"github.com/riskdesk/risk-review-service/internal/system/database/client"
	"github.com/riskdesk/risk-review-service/internal/system/database/provider"
	errors2 "github.com/riskdesk/risk-review-service/internal/system/errors"
	"github.com/riskdesk/risk-review-service/internal/system/log"
)

// AddAudit appends an audit row.
func AddAudit(audit model.Audit) error {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	if err != nil {
		return auditServerError(errors2.ADD_AUDIT,
			fmt.Sprintf("Failed to get db client for audit action: %s", audit.Action), err)
	}
	defer dbClient.Close()

	query := `INSERT INTO audits
		(audit_id, action, field, old_value, new_value, item_id, user_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err = dbClient.Exec(query,
		audit.AuditID, audit.Action, audit.Field, audit.OldValue, audit.NewValue,
		audit.ItemID, audit.UserID, audit.CreatedAt)
	if err != nil {
		return auditServerError(errors2.ADD_AUDIT,
			fmt.Sprintf("Failed on inserting audit row for item: %s", audit.ItemID), err)
	}
	return nil
}

// GetAuditsForUser returns a page of audit rows scoped to the given user's
// items, newest first, together with the total row count for the filter.
func GetAuditsForUser(userID string, query model.AuditQuery) ([]model.Audit, int, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	if err != nil {
		return nil, 0, auditServerError(errors2.GET_AUDITS, "Failed to get db client for listing audits", err)
	}
	defer dbClient.Close()

	where := ` FROM audits a JOIN items i ON i.item_id = a.item_id WHERE i.user_id = $1`
	args := []interface{}{userID}
	if query.Action != "" {
		args = append(args, query.Action)
		where += fmt.Sprintf(" AND a.action = $%d", len(args))
	}
	if query.ItemID != "" {
		args = append(args, query.ItemID)
		where += fmt.Sprintf(" AND a.item_id = $%d", len(args))
	}

	countRows, err := dbClient.ExecuteQuery(`SELECT COUNT(*) AS total`+where, args...)
	if err != nil {
		return nil, 0, auditServerError(errors2.GET_AUDITS, "Failed on counting audit rows", err)
	}
	total := 0
	if len(countRows) > 0 {
		total = client.AsInt(countRows[0]["total"])
	}

	offset := (query.Page - 1) * query.Limit
	args = append(args, query.Limit, offset)
	listQuery := `SELECT a.audit_id, a.action, a.field, a.old_value, a.new_value, a.item_id,
		a.user_id, a.created_at` + where +
		fmt.Sprintf(` ORDER BY a.created_at DESC LIMIT $%d OFFSET $%d`, len(args)-1, len(args))

	rows, err := dbClient.ExecuteQuery(listQuery, args...)
	if err != nil {
		return nil, 0, auditServerError(errors2.GET_AUDITS, "Failed on listing audit rows", err)
	}

	audits := make([]model.Audit, 0, len(rows))
	for _, row := range rows {
		audits = append(audits, model.Audit{
			AuditID:   client.AsString(row["audit_id"]),
			Action:    client.AsString(row["action"]),
			Field:     client.AsString(row["field"]),
			OldValue:  client.AsString(row["old_value"]),
			NewValue:  client.AsString(row["new_value"]),
			ItemID:    client.AsString(row["item_id"]),
			UserID:    client.AsString(row["user_id"]),
			CreatedAt: client.AsInt64(row["created_at"]),
		})
	}
	return audits, total, nil
}

func auditServerError(msg errors2.ErrorMessage, description string, err error) error {
	log.GetLogger().Debug(description, log.Error(err))
	return errors2.NewServerError(errors2.ErrorMessage{
		Code:        msg.Code,
		Message:     msg.Message,
		Description: description,
	}, err)
}
