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

package main

import (
	"flag"
	"fmt"
	stdlog "log"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"github.com/riskdesk/risk-review-service/internal/system/config"
	"github.com/riskdesk/risk-review-service/internal/system/constants"
	dbprovider "github.com/riskdesk/risk-review-service/internal/system/database/provider"
	"github.com/riskdesk/risk-review-service/internal/system/log"
	"github.com/riskdesk/risk-review-service/internal/system/managers"
	"github.com/riskdesk/risk-review-service/internal/system/workers"
)

const configFile = "config/deployment.yaml"

func main() {

	rrsHome := getRRSHome()

	envFiles, _ := filepath.Glob(filepath.Join(rrsHome, "config", "*.env"))
	_ = godotenv.Load(envFiles...)

	conf, err := config.LoadConfig(rrsHome, configFile)
	if err != nil {
		stdlog.Fatalf("Failed to load configuration: %v", err)
	}
	if err := config.InitializeRRSRuntime(rrsHome, conf); err != nil {
		stdlog.Fatalf("Failed to initialize runtime: %v", err)
	}

	log.Init(conf.Log.LogLevel)
	logger := log.GetLogger()

	checkDatabase()

	workers.StartRescoreWorker()

	serverAddr := fmt.Sprintf("%s:%d", conf.Addr.Host, conf.Addr.Port)
	mux := enableCORS(initMultiplexer(), conf.Auth.CORSAllowedOrigins)

	ln, err := net.Listen("tcp", serverAddr)
	if err != nil {
		logger.Fatal("Failed to start listener", log.Error(err))
	}
	logger.Info("Risk review service started", log.String("address", serverAddr))

	server := &http.Server{Handler: mux}
	if err := server.Serve(ln); err != nil {
		logger.Fatal("Failed to serve requests", log.Error(err))
	}
}

// checkDatabase verifies connectivity before serving traffic.
func checkDatabase() {

	logger := log.GetLogger()
	dbClient, err := dbprovider.NewDBProvider().GetDBClient()
	if err != nil {
		logger.Fatal("Failed to create database client", log.Error(err))
	}
	defer dbClient.Close()

	if err := dbClient.Ping(); err != nil {
		logger.Fatal("Database is not reachable", log.Error(err))
	}
	logger.Info("Database connectivity verified")
}

// initMultiplexer initializes the HTTP multiplexer and registers the services.
func initMultiplexer() *http.ServeMux {

	mux := http.NewServeMux()
	serviceManager := managers.NewServiceManager(mux)
	if err := serviceManager.RegisterServices(constants.ApiBasePath); err != nil {
		log.GetLogger().Fatal("Failed to register the services", log.Error(err))
	}
	return mux
}

func enableCORS(next http.Handler, allowedOrigins []string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin != "" && originAllowed(origin, allowedOrigins) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS, PATCH")
			w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")
			w.Header().Set("Access-Control-Allow-Credentials", "true")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func originAllowed(origin string, allowedOrigins []string) bool {

	if len(allowedOrigins) == 0 {
		return true
	}
	for _, allowed := range allowedOrigins {
		if allowed == "*" || strings.EqualFold(allowed, origin) {
			return true
		}
	}
	return false
}

func getRRSHome() string {

	homeFlag := flag.String("rrsHome", "", "Path to the risk review service home directory")
	flag.Parse()

	if *homeFlag != "" {
		return *homeFlag
	}
	dir, err := os.Getwd()
	if err != nil {
		stdlog.Fatalf("Failed to get current working directory: %v", err)
	}
	return dir
}
