package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/atelier-ia/server/internal/assetbank"
	"github.com/atelier-ia/server/internal/blueprint"
	"github.com/atelier-ia/server/internal/db"
	"github.com/atelier-ia/server/internal/gateway"
)

const testSecret = "test-secret"

func setupTestServer(t *testing.T) *Server {
	t.Helper()

	database, err := db.NewDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	generator := blueprint.NewGenerator(assetbank.DefaultCatalog())
	return NewServer(database, generator, gateway.NewClient("test-key"), testSecret, 100)
}

func signToken(t *testing.T, subject string) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	signed, err := token.SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("Failed to sign token: %v", err)
	}
	return signed
}

// createTestBlueprint posts a brief, anonymously when token is empty
func createTestBlueprint(t *testing.T, server *Server, token string) string {
	t.Helper()

	body, _ := json.Marshal(map[string]interface{}{
		"brief": blueprint.GameBrief{
			Title:       "Les Dunes",
			Description: "Une bataille dans un désert brûlant. Des monstres rôdent.",
		},
	})
	req := httptest.NewRequest("POST", "/api/blueprints", bytes.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp Response
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	data, ok := resp.Data.(map[string]interface{})
	if !ok {
		t.Fatal("Expected blueprint data in response")
	}
	id, _ := data["id"].(string)
	if id == "" {
		t.Fatal("Expected a blueprint id")
	}
	return id
}

// TestCreateBlueprint tests the public generation endpoint
func TestCreateBlueprint(t *testing.T) {
	server := setupTestServer(t)

	id := createTestBlueprint(t, server, "")
	if id == "" {
		t.Fatal("Expected a blueprint id")
	}
}

// TestCreateBlueprintAuthenticated tests that a presented token attributes
// ownership to its subject
func TestCreateBlueprintAuthenticated(t *testing.T) {
	server := setupTestServer(t)
	token := signToken(t, "user-1")
	id := createTestBlueprint(t, server, token)

	// The creation appears in the user's own list
	req := httptest.NewRequest("GET", "/api/blueprints", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp Response
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	ids, _ := resp.Data.([]interface{})
	if len(ids) != 1 || ids[0] != id {
		t.Errorf("Expected list [%s], got %v", id, resp.Data)
	}

	// And the creator can fetch it
	req = httptest.NewRequest("GET", "/api/blueprints/"+id, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	server.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("Expected status 200 for owner fetch, got %d", rec.Code)
	}
}

// TestCreateBlueprintInvalidToken tests that a bad token is rejected even
// though creation allows anonymous requests
func TestCreateBlueprintInvalidToken(t *testing.T) {
	server := setupTestServer(t)

	body, _ := json.Marshal(map[string]interface{}{"brief": blueprint.GameBrief{}})
	req := httptest.NewRequest("POST", "/api/blueprints", bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer garbage")
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401 for invalid token, got %d", rec.Code)
	}
}

// TestCreateBlueprintInvalidBody tests malformed request rejection
func TestCreateBlueprintInvalidBody(t *testing.T) {
	server := setupTestServer(t)

	req := httptest.NewRequest("POST", "/api/blueprints", strings.NewReader("not json"))
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

// TestProtectedEndpointsRequireAuth tests that reads need a bearer token
func TestProtectedEndpointsRequireAuth(t *testing.T) {
	server := setupTestServer(t)
	id := createTestBlueprint(t, server, "")

	for _, path := range []string{
		"/api/blueprints",
		"/api/blueprints/" + id,
		"/api/blueprints/" + id + "/game",
		"/api/blueprints/" + id + "/history",
	} {
		req := httptest.NewRequest("GET", path, nil)
		rec := httptest.NewRecorder()
		server.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("Expected 401 for %s without token, got %d", path, rec.Code)
		}
	}

	req := httptest.NewRequest("GET", "/api/blueprints/"+id, nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 for invalid token, got %d", rec.Code)
	}
}

// TestGetBlueprint tests the authenticated fetch, including ownership
func TestGetBlueprint(t *testing.T) {
	server := setupTestServer(t)
	id := createTestBlueprint(t, server, "")

	// Anonymous creations are owned by "public"
	req := httptest.NewRequest("GET", "/api/blueprints/"+id, nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "public"))
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	// A different user must be denied
	req = httptest.NewRequest("GET", "/api/blueprints/"+id, nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "intruder"))
	rec = httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("Expected status 403 for non-owner, got %d", rec.Code)
	}
}

// TestGetGamePayload tests the HTML game endpoint
func TestGetGamePayload(t *testing.T) {
	server := setupTestServer(t)
	id := createTestBlueprint(t, server, "")

	req := httptest.NewRequest("GET", "/api/blueprints/"+id+"/game", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "public"))
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Expected text/html content type, got '%s'", ct)
	}
	if !strings.HasPrefix(rec.Body.String(), "<!DOCTYPE html>") {
		t.Error("Expected the emitted game document")
	}
}

// TestRefineAndHistory tests refinement chaining and lineage retrieval
func TestRefineAndHistory(t *testing.T) {
	server := setupTestServer(t)
	id := createTestBlueprint(t, server, "")
	token := signToken(t, "public")

	body, _ := json.Marshal(map[string]string{"instruction": "ajoute une forêt"})
	req := httptest.NewRequest("POST", "/api/blueprints/"+id+"/refine", bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp Response
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	refined, _ := resp.Data.(map[string]interface{})
	refinedID, _ := refined["id"].(string)
	if refinedID == "" || refinedID == id {
		t.Fatalf("Expected a new blueprint id, got '%s'", refinedID)
	}

	req = httptest.NewRequest("GET", "/api/blueprints/"+refinedID+"/history", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var history Response
	if err := json.Unmarshal(rec.Body.Bytes(), &history); err != nil {
		t.Fatalf("Failed to decode history: %v", err)
	}
	entries, _ := history.Data.([]interface{})
	if len(entries) != 2 {
		t.Errorf("Expected lineage of 2, got %d", len(entries))
	}
}

// TestRefineEmptyInstruction tests rejection of empty refinement requests
func TestRefineEmptyInstruction(t *testing.T) {
	server := setupTestServer(t)
	id := createTestBlueprint(t, server, "")

	body, _ := json.Marshal(map[string]string{"instruction": ""})
	req := httptest.NewRequest("POST", "/api/blueprints/"+id+"/refine", bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+signToken(t, "public"))
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

// TestInvalidBlueprintID tests path-parameter validation
func TestInvalidBlueprintID(t *testing.T) {
	server := setupTestServer(t)

	req := httptest.NewRequest("GET", "/api/blueprints/"+strings.Repeat("a", 65), nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "public"))
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

// TestGenerateContentValidation tests gateway endpoint input checks
func TestGenerateContentValidation(t *testing.T) {
	server := setupTestServer(t)
	token := signToken(t, "public")

	body, _ := json.Marshal(map[string]string{"prompt": "un site vitrine", "category": "video"})
	req := httptest.NewRequest("POST", "/api/generate", bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 for unknown category, got %d", rec.Code)
	}

	body, _ = json.Marshal(map[string]string{"prompt": "", "category": "music"})
	req = httptest.NewRequest("POST", "/api/generate", bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 for empty prompt, got %d", rec.Code)
	}
}
