// Package testenv starts the backing containers (MariaDB, Authorizer) used
// by the integration tests and the local dev harness in cmd/testcontainers.
package testenv

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	_ "github.com/go-sql-driver/mysql"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/network"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/catnipgames/catpacks/data"
)

// Containers tracks everything CreateAll started so it can be torn down.
type Containers struct {
	Network             *testcontainers.DockerNetwork
	DBContainer         testcontainers.Container
	AuthorizerContainer testcontainers.Container

	// Host-mapped endpoints for processes outside the docker network.
	DBHost    string
	DBPort    string
	AuthzURL  string
	RootDSN   string
	AppDBName string
}

// Terminate tears down all started containers and the network.
func (tc *Containers) Terminate(t *testing.T) {
	ctx := context.Background()
	if tc.AuthorizerContainer != nil {
		if err := tc.AuthorizerContainer.Terminate(ctx); err != nil {
			logMessage(t, "Failed to terminate Authorizer: %v", err)
		}
	}
	if tc.DBContainer != nil {
		if err := tc.DBContainer.Terminate(ctx); err != nil {
			logMessage(t, "Failed to terminate MariaDB: %v", err)
		}
	}
	if tc.Network != nil {
		if err := tc.Network.Remove(ctx); err != nil {
			logMessage(t, "Failed to remove network: %v", err)
		}
	}
}

// CreateAll starts MariaDB and Authorizer on a shared network, initializes
// the application database, and returns the mapped endpoints.
func CreateAll(t *testing.T) (*Containers, error) {
	ctx := context.Background()
	tc := &Containers{AppDBName: getenv("DB_DATABASE", "catpacks")}

	nw, err := network.New(ctx)
	if err != nil {
		return nil, exitWithError(t, tc, err, "Failed to create network")
	}
	tc.Network = nw

	if err := startMariaDB(ctx, t, tc, nw.Name); err != nil {
		return nil, err
	}

	if err := startAuthorizer(ctx, t, tc, nw.Name); err != nil {
		return nil, err
	}

	logMessage(t, "DB=%s:%s AUTHZ_URL=%s", tc.DBHost, tc.DBPort, tc.AuthzURL)
	return tc, nil
}

// StartMariaDB starts a standalone MariaDB container (no network, no
// Authorizer) and initializes the application database. Used by the
// integration tests, which stub the identity provider.
func StartMariaDB(ctx context.Context, t *testing.T) (*Containers, error) {
	tc := &Containers{AppDBName: getenv("DB_DATABASE", "catpacks")}
	if err := startMariaDB(ctx, t, tc, ""); err != nil {
		return nil, err
	}
	return tc, nil
}

func startMariaDB(ctx context.Context, t *testing.T, tc *Containers, networkName string) error {
	rootPassword := getenv("DB_ROOT_PASSWORD", "rootpass")

	req := testcontainers.ContainerRequest{
		Image:        getenv("DB_IMAGE", "mariadb:11"),
		ExposedPorts: []string{"3306/tcp"},
		Env: map[string]string{
			"MYSQL_ROOT_PASSWORD": rootPassword,
			"MYSQL_DATABASE":      tc.AppDBName,
		},
		WaitingFor: wait.ForLog("ready for connections").WithStartupTimeout(60 * time.Second),
	}
	if networkName != "" {
		req.Networks = []string{networkName}
		req.NetworkAliases = map[string][]string{networkName: {"mariadb"}}
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return exitWithError(t, tc, err, "Failed to start MariaDB")
	}
	tc.DBContainer = container

	host, err := container.Host(ctx)
	if err != nil {
		return exitWithError(t, tc, err, "Failed to get MariaDB host")
	}
	mappedPort, err := container.MappedPort(ctx, nat.Port("3306/tcp"))
	if err != nil {
		return exitWithError(t, tc, err, "Failed to get MariaDB port")
	}
	tc.DBHost = host
	tc.DBPort = mappedPort.Port()
	tc.RootDSN = fmt.Sprintf("root:%s@tcp(%s:%s)/", rootPassword, tc.DBHost, tc.DBPort)

	if err := initMariaDB(tc.RootDSN); err != nil {
		return exitWithError(t, tc, err, "Failed to initialize MariaDB")
	}
	return nil
}

func startAuthorizer(ctx context.Context, t *testing.T, tc *Containers, networkName string) error {
	authzPort := getenv("AUTHZ_PORT", "8080")
	tcpAuthzPort, err := nat.NewPort("tcp", authzPort)
	if err != nil {
		return exitWithError(t, tc, err, "Failed to create Authorizer port")
	}

	authzDB := getenv("AUTHZ_DATABASE", "authorizer")
	dbConnection := fmt.Sprintf("root:%s@tcp(mariadb:3306)/%s",
		getenv("DB_ROOT_PASSWORD", "rootpass"), authzDB)

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        getenv("AUTHZ_IMAGE", "lakhansamani/authorizer:latest"),
			ExposedPorts: []string{string(tcpAuthzPort)},
			Env: map[string]string{
				"ENV":           "production",
				"CLIENT_ID":     getenv("AUTHZ_CLIENT_ID", "catpacks_test"),
				"PORT":          authzPort,
				"DATABASE_TYPE": "mariadb",
				"DATABASE_NAME": authzDB,
				"DATABASE_URL":  dbConnection,
				"ADMIN_SECRET":  getenv("AUTHZ_ADMIN_SECRET", "admin_secret"),
				"ROLES":         "user",
				"DEFAULT_ROLES": "user",
			},
			WaitingFor: wait.ForLog("Authorizer running at PORT:").WithStartupTimeout(30 * time.Second),
			Networks:   []string{networkName},
			NetworkAliases: map[string][]string{
				networkName: {"authorizer"},
			},
		},
		Started: true,
	})
	if err != nil {
		return exitWithError(t, tc, err, "Failed to start Authorizer")
	}
	tc.AuthorizerContainer = container

	host, _ := container.Host(ctx)
	mappedPort, _ := container.MappedPort(ctx, tcpAuthzPort)
	tc.AuthzURL = fmt.Sprintf("http://%s:%s", host, mappedPort.Port())
	return nil
}

// initMariaDB creates the databases, users and grants the service expects.
func initMariaDB(rootDSN string) error {
	db, err := sql.Open("mysql", rootDSN)
	if err != nil {
		return fmt.Errorf("failed to connect to MariaDB for setup: %w", err)
	}
	defer db.Close()

	// Wait for the connection to be really ready
	for i := 0; i < 30; i++ {
		err = db.Ping()
		if err == nil {
			break
		}
		time.Sleep(1 * time.Second)
	}
	if err != nil {
		return fmt.Errorf("MariaDB not ready after 30 seconds: %w", err)
	}

	authzDB := getenv("AUTHZ_DATABASE", "authorizer")
	if _, err := db.Exec(fmt.Sprintf("CREATE DATABASE IF NOT EXISTS %s", authzDB)); err != nil {
		return fmt.Errorf("failed to create %s: %w", authzDB, err)
	}

	return executeSQL(db, data.InitdbMariaDBPrivileges)
}

// executeSQL runs a multi-statement init script, statement by statement.
func executeSQL(db *sql.DB, script string) error {
	var stripped []string
	for _, line := range strings.Split(script, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "--") {
			continue
		}
		stripped = append(stripped, line)
	}

	queries := strings.Split(strings.Join(stripped, " "), ";")
	for _, q := range queries {
		q = strings.TrimSpace(q)
		if q == "" {
			continue
		}
		if _, err := db.Exec(q); err != nil {
			return fmt.Errorf("%s : when executing > %s", err.Error(), q)
		}
	}
	return nil
}

func getenv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func exitWithError(t *testing.T, tc *Containers, err error, msg string) error {
	tc.Terminate(t)
	wrapped := fmt.Errorf("%s: %w", msg, err)
	if t != nil {
		t.Fatal(wrapped)
	}
	return wrapped
}

func logMessage(t *testing.T, format string, args ...any) {
	if t != nil {
		t.Logf(format, args...)
	} else {
		fmt.Printf(format+"\n", args...)
	}
}
