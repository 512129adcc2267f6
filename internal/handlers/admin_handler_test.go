package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"finbot/internal/middleware"
	"finbot/internal/services"
	"finbot/internal/testutil"
	"finbot/internal/validator"
)

func adminRouter(t *testing.T) (*gin.Engine, func()) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	validator.Register()

	db := testutil.SetupTestDB(t)
	h := NewAdminHandler(services.NewUserService(db))

	router := gin.New()
	internal := router.Group("/internal", middleware.AdminAuth("admin-key"))
	internal.POST("/users", h.RegisterUser)

	return router, func() { testutil.TeardownTestDB(t, db) }
}

func postJSON(router *gin.Engine, path, apiKey string, payload any) *httptest.ResponseRecorder {
	body, _ := json.Marshal(payload)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if apiKey != "" {
		req.Header.Set("X-API-Key", apiKey)
	}
	router.ServeHTTP(w, req)
	return w
}

func TestAdminHandler_RegisterUser(t *testing.T) {
	router, teardown := adminRouter(t)
	defer teardown()

	t.Run("creates_user", func(t *testing.T) {
		w := postJSON(router, "/internal/users", "admin-key", gin.H{
			"name":             "Ana",
			"telegram_chat_id": 555123,
		})

		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
		}

		var resp struct {
			User struct {
				ID             uint   `json:"id"`
				Name           string `json:"name"`
				TelegramChatID int64  `json:"telegram_chat_id"`
			} `json:"user"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decoding response: %v", err)
		}
		if resp.User.ID == 0 || resp.User.Name != "Ana" || resp.User.TelegramChatID != 555123 {
			t.Errorf("unexpected user %+v", resp.User)
		}
	})

	t.Run("duplicate_chat_id_conflicts", func(t *testing.T) {
		w := postJSON(router, "/internal/users", "admin-key", gin.H{
			"name":             "Outra Ana",
			"telegram_chat_id": 555123,
		})

		if w.Code != http.StatusConflict {
			t.Errorf("expected 409, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("missing_api_key", func(t *testing.T) {
		w := postJSON(router, "/internal/users", "", gin.H{
			"name":             "Bruno",
			"telegram_chat_id": 555124,
		})

		if w.Code != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", w.Code)
		}
	})

	t.Run("wrong_api_key", func(t *testing.T) {
		w := postJSON(router, "/internal/users", "not-the-key", gin.H{
			"name":             "Bruno",
			"telegram_chat_id": 555124,
		})

		if w.Code != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", w.Code)
		}
	})

	t.Run("blank_name_rejected", func(t *testing.T) {
		w := postJSON(router, "/internal/users", "admin-key", gin.H{
			"name":             "   ",
			"telegram_chat_id": 555125,
		})

		if w.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("missing_chat_id_rejected", func(t *testing.T) {
		w := postJSON(router, "/internal/users", "admin-key", gin.H{"name": "Carla"})

		if w.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", w.Code)
		}
	})
}

func TestAdminAuth_Unconfigured(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/internal/users", middleware.AdminAuth(""), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := postJSON(router, "/internal/users", "any", gin.H{})
	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("expected 503 when admin key is unconfigured, got %d", w.Code)
	}
}
