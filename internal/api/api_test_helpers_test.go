package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/healthbook/internal/metrics"
	"github.com/terraincognita07/healthbook/internal/models"
	"github.com/terraincognita07/healthbook/internal/services"
	"github.com/terraincognita07/healthbook/internal/storage"
)

const (
	testIdentity = "123456789012"
	testSecret   = "correct horse battery"
)

var testNow = time.Date(2024, time.March, 5, 9, 30, 0, 0, time.UTC)

type testApp struct {
	app     *fiber.App
	handler *Handler
	kv      *storage.MemoryKV
}

func newTestApp(t *testing.T, attemptLimit int) testApp {
	t.Helper()

	kv := storage.NewMemoryKV()
	handler, err := NewHandler(Dependencies{
		Accounts:           services.NewAccountService(kv),
		Sessions:           services.NewSessionManager(kv),
		Records:            services.NewRecordStore(kv),
		Metrics:            metrics.New("healthbook"),
		LoginAttemptLimit:  attemptLimit,
		LoginAttemptWindow: time.Hour,
	})
	if err != nil {
		t.Fatalf("NewHandler returned error: %v", err)
	}
	handler.now = func() time.Time { return testNow }

	return testApp{app: NewApp(handler), handler: handler, kv: kv}
}

func doJSON(t *testing.T, app *fiber.App, method string, path string, payload any) (int, []byte, http.Header) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(encoded)
	}

	request := httptest.NewRequest(method, path, body)
	if payload != nil {
		request.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}

	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	defer response.Body.Close()

	raw, err := io.ReadAll(response.Body)
	if err != nil {
		t.Fatalf("%s %s read body failed: %v", method, path, err)
	}
	return response.StatusCode, raw, response.Header
}

func expectStatus(t *testing.T, app *fiber.App, method string, path string, payload any, expected int) []byte {
	t.Helper()

	status, body, _ := doJSON(t, app, method, path, payload)
	if status != expected {
		t.Fatalf("%s %s expected status %d, got %d: %s", method, path, expected, status, body)
	}
	return body
}

func decodeBody[T any](t *testing.T, body []byte) T {
	t.Helper()

	var decoded T
	if err := json.Unmarshal(body, &decoded); err != nil {
		t.Fatalf("decode response body %s: %v", body, err)
	}
	return decoded
}

func readAPIError(t *testing.T, body []byte) errorResponse {
	t.Helper()
	return decodeBody[errorResponse](t, body)
}

func registerAndLogin(t *testing.T, app *fiber.App) models.Account {
	t.Helper()

	expectStatus(t, app, http.MethodPost, "/api/auth/register", models.AccountCandidate{
		IdentityNumber: testIdentity,
		Secret:         testSecret,
		Name:           "Asha Rao",
		Role:           models.RolePatient,
	}, http.StatusCreated)

	body := expectStatus(t, app, http.MethodPost, "/api/auth/login", loginInput{
		IdentityNumber: testIdentity,
		Secret:         testSecret,
	}, http.StatusOK)
	return decodeBody[struct {
		Account models.Account `json:"account"`
	}](t, body).Account
}
