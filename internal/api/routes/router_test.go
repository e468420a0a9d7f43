package routes_test

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecogai/pollution-backend/internal/adapters/database"
	"github.com/ecogai/pollution-backend/internal/adapters/providers/geolocation"
	"github.com/ecogai/pollution-backend/internal/adapters/providers/identity"
	"github.com/ecogai/pollution-backend/internal/api/handlers"
	"github.com/ecogai/pollution-backend/internal/api/routes"
	"github.com/ecogai/pollution-backend/internal/application/services"
	"github.com/ecogai/pollution-backend/internal/domain/providers"
	"github.com/ecogai/pollution-backend/internal/infrastructure/notifications"
)

type cannedAdvisor struct {
	text string
}

func (a *cannedAdvisor) GenerateAdvice(ctx context.Context, req providers.AdviceRequest) (string, error) {
	return a.text, nil
}

type nullMediaStore struct{}

func (nullMediaStore) PutObject(ctx context.Context, key string, body []byte, contentType string, metadata map[string]string) (string, error) {
	return "https://media.test/" + key, nil
}

func (nullMediaStore) PresignPut(ctx context.Context, key, contentType string, ttl time.Duration) (string, error) {
	return "https://media.test/presigned/" + key, nil
}

// newTestServer wires the full API against in-memory adapters, the same
// shape main assembles for production.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	users := database.NewMemoryUserRepository()
	reports := database.NewMemoryReportRepository()
	alerts := database.NewMemoryAlertRepository()
	verifications := database.NewMemoryVerificationRepository()
	geo := geolocation.NewMockGeolocationProvider()
	advisor := &cannedAdvisor{text: "Keep your windows closed tonight."}

	authService := services.NewAuthService(identity.NewMockAdapter(), users, verifications, notifications.NoopSender{})
	profileService := services.NewProfileService(users)
	reportService := services.NewReportService(reports, nullMediaStore{}, nil, nil)
	adviceService := services.NewAdviceService(users, reports, geo, advisor, nil)
	voiceService := services.NewVoiceService("app-id", "app-cert", reportService, adviceService, geo, nil)
	mediaService := services.NewMediaService(nullMediaStore{})
	alertService := services.NewAlertService(nil, adviceService, reports, alerts, nil, nil)

	router := routes.NewRouter(
		handlers.NewAuthHandler(authService),
		handlers.NewProfileHandler(profileService),
		handlers.NewReportHandler(reportService),
		handlers.NewLocationHandler(geo),
		handlers.NewAdviceHandler(adviceService),
		handlers.NewVoiceHandler(voiceService),
		handlers.NewMediaHandler(mediaService),
		handlers.NewAlertHandler(alertService),
		nil,
		nil,
		"*",
	)

	server := httptest.NewServer(router.SetupRoutes())
	t.Cleanup(server.Close)
	return server
}

func postJSON(t *testing.T, url string, body any) (*http.Response, map[string]any) {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	resp, err := http.Post(url, "application/json", bytes.NewReader(payload))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	var decoded map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp, decoded
}

func getJSON(t *testing.T, url string) (*http.Response, map[string]any) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	var decoded map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp, decoded
}

func TestHealthEndpoint(t *testing.T) {
	server := newTestServer(t)

	resp, err := http.Get(server.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestUnknownRouteGetsEnvelope(t *testing.T) {
	server := newTestServer(t)

	resp, body := getJSON(t, server.URL+"/no/such/route")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "route not found", body["error"])
	assert.Equal(t, "/no/such/route", body["path"])
}

func TestCORSHeadersPresent(t *testing.T) {
	server := newTestServer(t)

	req, err := http.NewRequest(http.MethodOptions, server.URL+"/reports", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "https://app.example.com")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestSignupLoginReportFlow(t *testing.T) {
	server := newTestServer(t)

	resp, body := postJSON(t, server.URL+"/auth/signup", map[string]any{
		"email":    "maria@example.com",
		"password": "password123",
		"name":     "Maria Santos",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	data := body["data"].(map[string]any)
	userID := data["userId"].(string)
	require.NotEmpty(t, userID)

	resp, body = postJSON(t, server.URL+"/auth/login", map[string]any{
		"email":    "maria@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	login := body["data"].(map[string]any)
	assert.Equal(t, userID, login["userId"])
	assert.NotEmpty(t, login["accessToken"])

	resp, body = postJSON(t, server.URL+"/reports", map[string]any{
		"userId": userID,
		"location": map[string]any{
			"latitude":  14.6760,
			"longitude": 121.0437,
			"barangay":  "Commonwealth",
		},
		"pollutionType": "air",
		"severity":      "high",
		"description":   "Haze over the avenue",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	receipt := body["data"].(map[string]any)
	reportID := receipt["reportId"].(string)
	assert.Equal(t, "pending", receipt["status"])

	resp, body = getJSON(t, server.URL+"/reports/"+reportID)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	report := body["data"].(map[string]any)
	assert.Equal(t, "air", report["pollutionType"])

	resp, body = getJSON(t, server.URL+"/reports/user/"+userID)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	listing := body["data"].(map[string]any)
	assert.Equal(t, float64(1), listing["count"])
}

func TestCreateReport_ValidationErrorEnvelope(t *testing.T) {
	server := newTestServer(t)

	resp, body := postJSON(t, server.URL+"/reports", map[string]any{
		"userId":        "user-1",
		"pollutionType": "air",
		"severity":      "high",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "location is required", body["error"])
}

func TestLocationSearch(t *testing.T) {
	server := newTestServer(t)

	resp, body := getJSON(t, server.URL+"/location/search?text=Commonwealth")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	data := body["data"].(map[string]any)
	places := data["places"].([]any)
	require.NotEmpty(t, places)
	first := places[0].(map[string]any)
	assert.Contains(t, first["label"], "Commonwealth")
}

func TestLocationSearch_RequiresText(t *testing.T) {
	server := newTestServer(t)

	resp, body := getJSON(t, server.URL+"/location/search")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, false, body["success"])
}

func TestHealthAdviceEndpoint(t *testing.T) {
	server := newTestServer(t)

	resp, body := postJSON(t, server.URL+"/health-advice", map[string]any{
		"message": "Is it safe to jog this morning?",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	data := body["data"].(map[string]any)
	assert.Equal(t, "Keep your windows closed tonight.", data["response"])
	assert.Equal(t, "bedrock", data["generatedBy"])
}

func TestHealthAdviceEndpoint_RequiresMessageOrLocation(t *testing.T) {
	server := newTestServer(t)

	resp, body := postJSON(t, server.URL+"/health-advice", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, false, body["success"])
}

func TestUploadImageEndpoint(t *testing.T) {
	server := newTestServer(t)

	encoded := base64.StdEncoding.EncodeToString([]byte("jpeg-bytes"))
	resp, body := postJSON(t, server.URL+"/upload/image", map[string]any{
		"userId":      "user-1",
		"imageBase64": encoded,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	data := body["data"].(map[string]any)
	assert.Contains(t, data["imageUrl"], "https://media.test/pollution-images/")
}

func TestUploadImageEndpoint_PresignsWithoutPayload(t *testing.T) {
	server := newTestServer(t)

	resp, body := postJSON(t, server.URL+"/upload/image", map[string]any{
		"userId": "user-1",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	data := body["data"].(map[string]any)
	assert.Contains(t, data["uploadUrl"], "https://media.test/presigned/")
	assert.Equal(t, float64(900), data["expiresIn"])
}

func TestUploadImageEndpoint_RequiresUser(t *testing.T) {
	server := newTestServer(t)

	resp, body := postJSON(t, server.URL+"/upload/image", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "userId is required", body["error"])
}

func TestListUserAlertsEndpoint(t *testing.T) {
	server := newTestServer(t)

	resp, body := getJSON(t, server.URL+"/alerts/user-1")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	data := body["data"].(map[string]any)
	assert.Equal(t, float64(0), data["count"])
}

func TestAgoraTokenEndpoint(t *testing.T) {
	server := newTestServer(t)

	resp, body := postJSON(t, server.URL+"/agora/token", map[string]any{
		"userId": "user-1",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	data := body["data"].(map[string]any)
	assert.Len(t, data["token"], 64)
	assert.Equal(t, "publisher", data["role"])
}
