package handlers

import (
	"net/http"
	"testing"
	"time"
)

func TestGetMeFreshAccount(t *testing.T) {
	app, _ := newTestApp(t)

	status, body := doRequest(t, app, http.MethodGet, "/api/me", true)
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d: %v", status, body)
	}
	if body["user_id"] != testUserID {
		t.Errorf("expected user_id %q, got %v", testUserID, body["user_id"])
	}
	if body["email"] != testUserEmail {
		t.Errorf("expected email %q, got %v", testUserEmail, body["email"])
	}
	if body["credits"] != float64(0) {
		t.Errorf("expected 0 credits, got %v", body["credits"])
	}
	if body["last_daily_claim"] != nil {
		t.Errorf("expected null last_daily_claim, got %v", body["last_daily_claim"])
	}
	if body["cats_owned"] != float64(0) {
		t.Errorf("expected 0 cats owned, got %v", body["cats_owned"])
	}
}

func TestGetMeAfterClaimAndOpen(t *testing.T) {
	app, db := newTestApp(t)
	seedTestCatalog(t, db)

	doRequest(t, app, http.MethodPost, "/api/claim-daily", true)
	doRequest(t, app, http.MethodPost, "/api/open-pack", true)

	status, body := doRequest(t, app, http.MethodGet, "/api/me", true)
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d: %v", status, body)
	}
	if body["credits"] != float64(10) {
		t.Errorf("expected 10 credits, got %v", body["credits"])
	}
	if body["cats_owned"] != float64(1) {
		t.Errorf("expected 1 cat owned, got %v", body["cats_owned"])
	}

	today := time.Now().UTC().Format("2006-01-02")
	if body["last_daily_claim"] != today {
		t.Errorf("expected last_daily_claim %q, got %v", today, body["last_daily_claim"])
	}
}
