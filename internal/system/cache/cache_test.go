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

package cache

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/riskdesk/risk-review-service/internal/system/log"
)

func TestMain(m *testing.M) {
	_ = log.Init("ERROR")
	os.Exit(m.Run())
}

func TestSetAndGet(t *testing.T) {
	c := NewCache(time.Minute)
	c.Set("key", "value")

	got, found := c.Get("key")
	assert.True(t, found)
	assert.Equal(t, "value", got)
}

func TestGetMissing(t *testing.T) {
	c := NewCache(time.Minute)
	_, found := c.Get("missing")
	assert.False(t, found)
}

func TestExpiration(t *testing.T) {
	c := NewCache(10 * time.Millisecond)
	c.Set("key", "value")

	time.Sleep(20 * time.Millisecond)
	_, found := c.Get("key")
	assert.False(t, found)
}

func TestDelete(t *testing.T) {
	c := NewCache(time.Minute)
	c.Set("key", "value")
	c.Delete("key")

	_, found := c.Get("key")
	assert.False(t, found)
}

func TestFlushDropsEverything(t *testing.T) {
	c := NewCache(time.Minute)
	c.Set("a", 1)
	c.Set("b", 2)
	c.Flush()

	_, foundA := c.Get("a")
	_, foundB := c.Get("b")
	assert.False(t, foundA)
	assert.False(t, foundB)
}
