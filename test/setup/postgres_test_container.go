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

package setup

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strconv"

	_ "github.com/lib/pq"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	testDBName     = "riskreview_test"
	testDBUser     = "testuser"
	testDBPassword = "testpass"
)

// TestPostgres holds a running postgres container and its connection details.
type TestPostgres struct {
	Container *postgres.PostgresContainer
	DB        *sql.DB
	Host      string
	Port      int
}

// SetupTestPostgres starts a postgres container and applies the service schema.
func SetupTestPostgres(ctx context.Context, schemaFile string) (*TestPostgres, error) {

	container, err := postgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		postgres.WithDatabase(testDBName),
		postgres.WithUsername(testDBUser),
		postgres.WithPassword(testDBPassword),
		testcontainers.WithWaitStrategy(wait.ForListeningPort("5432/tcp")),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to start container: %w", err)
	}

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, err
	}

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = container.Terminate(ctx)
		return nil, err
	}

	schemaBytes, err := os.ReadFile(schemaFile)
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, fmt.Errorf("failed to read schema file: %w", err)
	}
	if _, err := db.Exec(string(schemaBytes)); err != nil {
		_ = container.Terminate(ctx)
		return nil, fmt.Errorf("failed to execute schema: %w", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, err
	}
	mappedPort, err := container.MappedPort(ctx, "5432")
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, err
	}
	port, _ := strconv.Atoi(mappedPort.Port())

	return &TestPostgres{
		Container: container,
		DB:        db,
		Host:      host,
		Port:      port,
	}, nil
}

// DBName returns the database name used by the container.
func (tp *TestPostgres) DBName() string { return testDBName }

// DBUser returns the database user used by the container.
func (tp *TestPostgres) DBUser() string { return testDBUser }

// DBPassword returns the database password used by the container.
func (tp *TestPostgres) DBPassword() string { return testDBPassword }

// Teardown closes the connection and terminates the container.
func (tp *TestPostgres) Teardown(ctx context.Context) {
	if tp.DB != nil {
		_ = tp.DB.Close()
	}
	if tp.Container != nil {
		_ = tp.Container.Terminate(ctx)
	}
}
