package main

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"veriport/internal/admin"
	appealhandler "veriport/internal/appeal/handler"
	authhandler "veriport/internal/auth/handler"
	"veriport/internal/platform/config"
	reporthandler "veriport/internal/report/handler"
	verificationhandler "veriport/internal/verification/handler"
	"veriport/pkg/testutil"
)

const adminEmail = "admin@veriport.com"

func memoryConfig() config.Config {
	return config.Config{
		Server: config.Server{
			Environment:    "test",
			MetricsEnabled: true,
		},
		Storage: config.Storage{
			Backend:   config.BackendMemory,
			TxTimeout: time.Second,
		},
		Kafka: config.KafkaConfig{Topic: "veriport.lifecycle"},
		ObjectStore: config.ObjectStoreConfig{
			PresignTTL: time.Minute,
		},
		Auth: config.AuthConfig{
			JWTSigningKey: "test-signing-key-at-least-32-characters",
			Issuer:        "veriport-test",
			TokenTTL:      time.Hour,
		},
		Seed: config.SeedConfig{
			EmployeesFile: "../../internal/employee/testdata/employees.yaml",
			AdminEmail:    adminEmail,
			AdminPassword: "admin-password",
		},
	}
}

type client struct {
	t       *testing.T
	handler http.Handler
	token   string
}

func (c *client) do(method, path string, body any) *httptest.ResponseRecorder {
	c.t.Helper()
	var req *http.Request
	if body != nil {
		req = testutil.NewJSONRequest(c.t, method, path, body)
	} else {
		req = testutil.NewRequest(c.t, method, path)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	return testutil.DoRequest(c.handler, req)
}

func (c *client) login(email, password string) {
	c.t.Helper()
	rr := c.do(http.MethodPost, "/api/auth/login", map[string]string{"email": email, "password": password})
	require.Equal(c.t, http.StatusOK, rr.Code, rr.Body.String())
	c.token = testutil.UnmarshalResponse[authhandler.LoginResponse](c.t, rr).AccessToken
	require.NotEmpty(c.t, c.token)
}

func TestVerificationAppealLifecycle(t *testing.T) {
	defer goleak.VerifyNone(t)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	app, err := buildApp(context.Background(), memoryConfig(), logger)
	require.NoError(t, err)
	defer app.close()

	verifier := &client{t: t, handler: app.handler}
	reviewer := &client{t: t, handler: app.handler}

	t.Run("health", func(t *testing.T) {
		rr := verifier.do(http.MethodGet, "/health", nil)
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("unauthenticated requests are rejected", func(t *testing.T) {
		rr := verifier.do(http.MethodGet, "/api/verifications", nil)
		testutil.AssertError(t, rr, http.StatusUnauthorized, "unauthorized")
	})

	t.Run("personal email cannot register", func(t *testing.T) {
		rr := verifier.do(http.MethodPost, "/api/auth/register", map[string]string{
			"email":     "someone@gmail.com",
			"password":  "verifier-password",
			"full_name": "Someone",
		})
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	rr := verifier.do(http.MethodPost, "/api/auth/register", map[string]string{
		"email":        "checks@acme-screening.com",
		"password":     "verifier-password",
		"full_name":    "Priya Nair",
		"company_name": "Acme Screening",
	})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	verifier.login("checks@acme-screening.com", "verifier-password")

	rr = verifier.do(http.MethodPost, "/api/verifications", map[string]any{
		"employee_id":     "emp001",
		"name":            "Ravi Kumar",
		"entity_name":     "TVSCSHIB",
		"date_of_joining": "2019-06-01",
		"date_of_leaving": "2023-03-31",
		"designation":     "Executive",
		"exit_reason":     "Resigned",
		"consent_given":   true,
	})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	submitted := testutil.UnmarshalResponse[verificationhandler.SubmitResponse](t, rr)
	verificationID := submitted.Verification.VerificationID
	require.True(t, strings.HasPrefix(verificationID, "VER"), verificationID)
	assert.Equal(t, "partial_match", string(submitted.Verification.OverallStatus))
	assert.Equal(t, 86, submitted.Verification.MatchScore)
	assert.Equal(t, "EMP001", submitted.Verification.EmployeeID)

	t.Run("missing consent is rejected", func(t *testing.T) {
		rr := verifier.do(http.MethodPost, "/api/verifications", map[string]any{
			"employee_id": "EMP001",
		})
		testutil.AssertError(t, rr, http.StatusBadRequest, "missing_consent")
	})

	t.Run("report is generated once and reused", func(t *testing.T) {
		path := "/api/verifications/" + verificationID + "/report"
		rr := verifier.do(http.MethodPost, path, nil)
		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
		first := testutil.UnmarshalResponse[reporthandler.GenerateResponse](t, rr)
		assert.True(t, strings.HasPrefix(first.DownloadURL, "memory://reports/"), first.DownloadURL)
		assert.False(t, first.Reused)

		rr = verifier.do(http.MethodPost, path, nil)
		require.Equal(t, http.StatusOK, rr.Code)
		second := testutil.UnmarshalResponse[reporthandler.GenerateResponse](t, rr)
		assert.True(t, second.Reused)
		assert.Equal(t, first.DownloadURL, second.DownloadURL)
	})

	rr = verifier.do(http.MethodPost, "/api/verifications/"+verificationID+"/appeals", map[string]any{
		"reason": "The employee was promoted to Manager before leaving.",
	})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	appeal := testutil.UnmarshalResponse[appealhandler.AppealResponse](t, rr)
	assert.Equal(t, "pending", string(appeal.Status))
	assert.Equal(t, verificationID, appeal.VerificationID)

	t.Run("second appeal is rejected", func(t *testing.T) {
		rr := verifier.do(http.MethodPost, "/api/verifications/"+verificationID+"/appeals", map[string]any{
			"reason": "Filing the same appeal a second time.",
		})
		assert.Equal(t, http.StatusConflict, rr.Code)
	})

	t.Run("verifiers cannot reach admin routes", func(t *testing.T) {
		rr := verifier.do(http.MethodGet, "/api/admin/dashboard", nil)
		assert.Equal(t, http.StatusForbidden, rr.Code)
	})

	reviewer.login(adminEmail, "admin-password")

	t.Run("admins cannot submit verifications", func(t *testing.T) {
		rr := reviewer.do(http.MethodGet, "/api/verifications", nil)
		assert.Equal(t, http.StatusForbidden, rr.Code)
	})

	rr = reviewer.do(http.MethodGet, "/api/admin/appeals?status=pending", nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	listed := testutil.UnmarshalResponse[appealhandler.ListResponse](t, rr)
	require.Equal(t, 1, listed.Total)
	assert.Equal(t, appeal.AppealID, listed.Appeals[0].AppealID)

	resolvePath := "/api/admin/appeals/" + appeal.AppealID + "/resolve"
	rr = reviewer.do(http.MethodPost, resolvePath, map[string]string{
		"decision": "approved",
		"response": "Directory record corrected.",
	})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	resolved := testutil.UnmarshalResponse[appealhandler.AppealResponse](t, rr)
	assert.Equal(t, "approved", string(resolved.Status))
	assert.NotNil(t, resolved.ReviewedAt)

	t.Run("resolved appeals cannot be resolved again", func(t *testing.T) {
		rr := reviewer.do(http.MethodPost, resolvePath, map[string]string{
			"decision": "rejected",
			"response": "Changed our minds.",
		})
		assert.Equal(t, http.StatusConflict, rr.Code)
	})

	rr = reviewer.do(http.MethodGet, "/api/admin/dashboard", nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	dashboard := testutil.UnmarshalResponse[admin.DashboardResponse](t, rr)
	assert.Equal(t, 2, dashboard.TotalEmployees)
	assert.Equal(t, 1, dashboard.TotalVerifications)
	assert.Equal(t, 0, dashboard.PendingAppeals)
	assert.Equal(t, 1, dashboard.AppealsStatus["approved"])
	require.Len(t, dashboard.Recent, 1)
	assert.Equal(t, verificationID, dashboard.Recent[0].VerificationID)
}

func TestAuthEndpointsAreThrottled(t *testing.T) {
	defer goleak.VerifyNone(t)

	cfg := memoryConfig()
	cfg.RateLimit = config.RateLimitConfig{Enabled: true, AuthRequests: 2, AuthWindow: time.Minute}
	app, err := buildApp(context.Background(), cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	defer app.close()

	body := map[string]string{"email": "nobody@acme-screening.com", "password": "wrong-password"}
	testutil.Given(t, "a client that exhausted its login budget", func(t *testing.T) {
		c := &client{t: t, handler: app.handler}
		for range 2 {
			assert.Equal(t, http.StatusUnauthorized, c.do(http.MethodPost, "/api/auth/login", body).Code)
		}

		testutil.When(t, "it logs in again", func(t *testing.T) {
			rr := c.do(http.MethodPost, "/api/auth/login", body)

			testutil.Then(t, "the request is throttled", func(t *testing.T) {
				testutil.AssertError(t, rr, http.StatusTooManyRequests, "rate_limited")
				assert.NotEmpty(t, rr.Header().Get("Retry-After"))
			})
		})

		testutil.When(t, "it calls an unthrottled route", func(t *testing.T) {
			testutil.Then(t, "the request is served", func(t *testing.T) {
				assert.Equal(t, http.StatusOK, c.do(http.MethodGet, "/health", nil).Code)
			})
		})
	})
}

func TestMetricsRequireOpsToken(t *testing.T) {
	defer goleak.VerifyNone(t)

	cfg := memoryConfig()
	cfg.Server.MetricsToken = "scrape-token"
	app, err := buildApp(context.Background(), cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	defer app.close()

	c := &client{t: t, handler: app.handler}
	testutil.AssertError(t, c.do(http.MethodGet, "/metrics", nil), http.StatusUnauthorized, "unauthorized")

	req := testutil.NewRequest(t, http.MethodGet, "/metrics")
	req.Header.Set("X-Ops-Token", "scrape-token")
	rr := testutil.DoRequest(app.handler, req)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "go_goroutines")
}

func TestBuildAppRejectsBadSeedFile(t *testing.T) {
	defer goleak.VerifyNone(t)

	cfg := memoryConfig()
	cfg.Seed.EmployeesFile = "testdata/does-not-exist.yaml"
	_, err := buildApp(context.Background(), cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.Error(t, err)
}
