//go:build integration

package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/catnipgames/catpacks/internal/config"
	"github.com/catnipgames/catpacks/internal/database"
	"github.com/catnipgames/catpacks/internal/testenv"
	"github.com/catnipgames/catpacks/internal/types"
)

// TestEndToEndMariaDB runs the full claim/open/collect flow against a real
// MariaDB instance, including migrations and the embedded catalog seed.
func TestEndToEndMariaDB(t *testing.T) {
	ctx := context.Background()
	tc, err := testenv.StartMariaDB(ctx, t)
	if err != nil {
		t.Fatalf("failed to start MariaDB: %v", err)
	}
	defer tc.Terminate(t)

	cfg := &config.Config{
		DBType:            "mariadb",
		DBHost:            tc.DBHost,
		DBPort:            tc.DBPort,
		DBDatabase:        tc.AppDBName,
		DBUser:            "catpacks",
		DBPassword:        "catpacks",
		DBConnectionLimit: 5,
	}

	db, err := database.Connect(cfg)
	if err != nil {
		t.Fatalf("failed to connect: %v", err)
	}
	defer database.Close(db)

	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	if err := database.SeedCatalog(db); err != nil {
		t.Fatalf("failed to seed catalog: %v", err)
	}

	app := newAppWithDB(db)

	// Catalog is seeded and public
	status, body := doRequest(t, app, http.MethodGet, "/api/catalog", false)
	if status != http.StatusOK {
		t.Fatalf("catalog: expected 200, got %d: %v", status, body)
	}
	if cats, ok := body["cats"].([]interface{}); !ok || len(cats) == 0 {
		t.Fatalf("catalog: expected seeded entries, got %v", body["cats"])
	}

	// One daily claim funds exactly two packs
	status, body = doRequest(t, app, http.MethodPost, "/api/claim-daily", true)
	if status != http.StatusOK || body["credits"] != float64(20) {
		t.Fatalf("claim: expected 200 with 20 credits, got %d %v", status, body)
	}

	status, body = doRequest(t, app, http.MethodPost, "/api/claim-daily", true)
	if status != http.StatusOK || body["claimed"] != false {
		t.Fatalf("repeat claim: expected claimed=false, got %d %v", status, body)
	}

	status, body = doRequest(t, app, http.MethodPost, "/api/open-pack", true)
	if status != http.StatusOK || body["credits"] != float64(10) {
		t.Fatalf("first open: expected 200 with 10 credits, got %d %v", status, body)
	}

	status, body = doRequest(t, app, http.MethodPost, "/api/open-pack", true)
	if status != http.StatusOK || body["credits"] != float64(0) {
		t.Fatalf("second open: expected 200 with 0 credits, got %d %v", status, body)
	}

	status, body = doRequest(t, app, http.MethodPost, "/api/open-pack", true)
	if status != http.StatusBadRequest || body["kind"] != types.KindInsufficientCredits {
		t.Fatalf("broke open: expected 400 insufficient_credits, got %d %v", status, body)
	}

	// Profile and collection reflect the two grants
	status, body = doRequest(t, app, http.MethodGet, "/api/me", true)
	if status != http.StatusOK {
		t.Fatalf("me: expected 200, got %d: %v", status, body)
	}
	if body["credits"] != float64(0) || body["cats_owned"] != float64(2) {
		t.Fatalf("me: expected 0 credits and 2 cats, got %v", body)
	}

	status, body = doRequest(t, app, http.MethodGet, "/api/collection", true)
	if status != http.StatusOK {
		t.Fatalf("collection: expected 200, got %d: %v", status, body)
	}
	cats, ok := body["cats"].([]interface{})
	if !ok || len(cats) == 0 {
		t.Fatalf("collection: expected entries, got %v", body["cats"])
	}
	var total float64
	for _, raw := range cats {
		entry := raw.(map[string]interface{})
		total += entry["count"].(float64)
	}
	if total != 2 {
		t.Fatalf("collection: expected 2 units total, got %v", total)
	}
}
