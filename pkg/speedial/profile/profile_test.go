package profile

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/reinieltalplacido/speedial/pkg/speedial/links"
	"github.com/reinieltalplacido/speedial/pkg/speedial/logging"
	"github.com/reinieltalplacido/speedial/pkg/speedial/models"
	"github.com/reinieltalplacido/speedial/pkg/speedial/store"
)

type profilePayload struct {
	Username string        `json:"username"`
	Links    []models.Link `json:"links"`
}

func setupTestRouter(t *testing.T) (*gin.Engine, *links.Service) {
	gin.SetMode(gin.TestMode)
	st := store.New(filepath.Join(t.TempDir(), "links.json"), logging.NewLogger(logging.LevelError))
	service := links.NewService(st)

	r := gin.New()
	NewHandler(service).RegisterRoutes(r)
	return r, service
}

func getProfile(t *testing.T, router *gin.Engine, username string) profilePayload {
	req, _ := http.NewRequest("GET", "/u/"+username, nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var payload profilePayload
	json.Unmarshal(resp.Body.Bytes(), &payload)
	return payload
}

func TestViewProfile(t *testing.T) {
	router, service := setupTestRouter(t)
	if _, err := service.Create("Docs", "https://docs.test", "Work", "alice"); err != nil {
		t.Fatalf("Failed to seed link: %v", err)
	}
	if _, err := service.Create("Other", "https://other.test", "", "bob"); err != nil {
		t.Fatalf("Failed to seed link: %v", err)
	}

	payload := getProfile(t, router, "alice")
	if payload.Username != "alice" {
		t.Errorf("Expected username 'alice', got %s", payload.Username)
	}
	if len(payload.Links) != 1 || payload.Links[0].Title != "Docs" {
		t.Errorf("Expected only alice's links, got %+v", payload.Links)
	}
}

func TestViewEmptyProfile(t *testing.T) {
	router, _ := setupTestRouter(t)

	payload := getProfile(t, router, "newcomer")
	if payload.Links == nil {
		t.Fatal("Expected empty links array, got null")
	}
	if len(payload.Links) != 0 {
		t.Errorf("Expected no links, got %d", len(payload.Links))
	}
}
