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

package config

import "sync"

// RRSRuntime holds the runtime configuration for the risk review server.
type RRSRuntime struct {
	RRSHome string `yaml:"rrs_home"`
	Config  Config `yaml:"config"`
}

var (
	runtimeConfig *RRSRuntime
	once          sync.Once
)

// InitializeRRSRuntime initializes the RRSRuntime configuration.
func InitializeRRSRuntime(rrsHome string, config *Config) error {

	once.Do(func() {
		runtimeConfig = &RRSRuntime{
			RRSHome: rrsHome,
			Config:  *config,
		}
	})

	return nil
}

// GetRRSRuntime returns the RRSRuntime configuration.
func GetRRSRuntime() *RRSRuntime {

	if runtimeConfig == nil {
		panic("RRSRuntime is not initialized")
	}
	return runtimeConfig
}
