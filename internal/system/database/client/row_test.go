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

package client

import (
	"os"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/riskdesk/risk-review-service/internal/system/log"
)

func TestMain(m *testing.M) {
	_ = log.Init("ERROR")
	os.Exit(m.Run())
}

func TestAsString(t *testing.T) {
	assert.Equal(t, "abc", AsString("abc"))
	assert.Equal(t, "abc", AsString([]byte("abc")))
	assert.Equal(t, "42", AsString(int64(42)))
	assert.Equal(t, "1.5", AsString(1.5))
	assert.Equal(t, "true", AsString(true))
	assert.Equal(t, "", AsString(nil))
}

func TestAsInt(t *testing.T) {
	assert.Equal(t, 42, AsInt(int64(42)))
	assert.Equal(t, 42, AsInt(42))
	assert.Equal(t, 42, AsInt(42.0))
	assert.Equal(t, 42, AsInt([]byte("42")))
	assert.Equal(t, 42, AsInt("42"))
	assert.Equal(t, 0, AsInt(nil))
	assert.Equal(t, 0, AsInt("not-a-number"))
}

func TestAsInt64(t *testing.T) {
	assert.EqualValues(t, 1700000000, AsInt64(int64(1700000000)))
	assert.EqualValues(t, 1700000000, AsInt64("1700000000"))
	assert.EqualValues(t, 1700000000, AsInt64([]byte("1700000000")))
	assert.EqualValues(t, 0, AsInt64(nil))
}

func TestAsBool(t *testing.T) {
	assert.True(t, AsBool(true))
	assert.True(t, AsBool(int64(1)))
	assert.True(t, AsBool("true"))
	assert.True(t, AsBool([]byte("true")))
	assert.False(t, AsBool(int64(0)))
	assert.False(t, AsBool(false))
	assert.False(t, AsBool(nil))
}

func TestAsDecimal(t *testing.T) {
	// lib/pq hands NUMERIC back as []byte, sqlite as float64 or string.
	assert.True(t, AsDecimal([]byte("1200.50")).Equal(decimal.NewFromFloat(1200.50)))
	assert.True(t, AsDecimal("1200.50").Equal(decimal.NewFromFloat(1200.50)))
	assert.True(t, AsDecimal(1200.50).Equal(decimal.NewFromFloat(1200.50)))
	assert.True(t, AsDecimal(int64(1200)).Equal(decimal.NewFromInt(1200)))
	assert.True(t, AsDecimal(nil).IsZero())
	assert.True(t, AsDecimal([]byte("garbage")).IsZero())
}
