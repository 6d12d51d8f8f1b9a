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
	"strconv"

	"github.com/shopspring/decimal"
)

// Row value coercion helpers. ExecuteQuery returns driver-typed values that
// differ between postgres and sqlite (for example NUMERIC arrives as []byte
// from lib/pq and as float64 or string from sqlite); stores normalize through
// these instead of asserting driver types directly.

// AsString converts a row value to a string.
func AsString(value interface{}) string {
	switch v := value.(type) {
	case string:
		return v
	case []byte:
		return string(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	case nil:
		return ""
	default:
		return ""
	}
}

// AsInt converts a row value to an int.
func AsInt(value interface{}) int {
	switch v := value.(type) {
	case int64:
		return int(v)
	case int:
		return v
	case float64:
		return int(v)
	case []byte:
		parsed, _ := strconv.Atoi(string(v))
		return parsed
	case string:
		parsed, _ := strconv.Atoi(v)
		return parsed
	default:
		return 0
	}
}

// AsInt64 converts a row value to an int64.
func AsInt64(value interface{}) int64 {
	switch v := value.(type) {
	case int64:
		return v
	case int:
		return int64(v)
	case float64:
		return int64(v)
	case []byte:
		parsed, _ := strconv.ParseInt(string(v), 10, 64)
		return parsed
	case string:
		parsed, _ := strconv.ParseInt(v, 10, 64)
		return parsed
	default:
		return 0
	}
}

// AsBool converts a row value to a bool.
func AsBool(value interface{}) bool {
	switch v := value.(type) {
	case bool:
		return v
	case int64:
		return v != 0
	case float64:
		return v != 0
	case []byte:
		parsed, _ := strconv.ParseBool(string(v))
		return parsed
	case string:
		parsed, _ := strconv.ParseBool(v)
		return parsed
	default:
		return false
	}
}

// AsDecimal converts a row value to a decimal, defaulting to zero.
func AsDecimal(value interface{}) decimal.Decimal {
	switch v := value.(type) {
	case []byte:
		parsed, err := decimal.NewFromString(string(v))
		if err != nil {
			return decimal.Decimal{}
		}
		return parsed
	case string:
		parsed, err := decimal.NewFromString(v)
		if err != nil {
			return decimal.Decimal{}
		}
		return parsed
	case float64:
		return decimal.NewFromFloat(v)
	case int64:
		return decimal.NewFromInt(v)
	default:
		return decimal.Decimal{}
	}
}
