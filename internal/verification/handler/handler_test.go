package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"veriport/internal/comparison"
	"veriport/internal/verification/handler/mocks"
	"veriport/internal/verification/models"
	"veriport/internal/verification/service"
	id "veriport/pkg/domain"
	dErrors "veriport/pkg/domain-errors"
	"veriport/pkg/requestcontext"
)

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service
type HandlerSuite struct {
	suite.Suite
	service  *mocks.MockService
	router   chi.Router
	verifier id.AccountID
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupTest() {
	ctrl := gomock.NewController(s.T())
	s.service = mocks.NewMockService(ctrl)
	s.verifier = id.NewAccountID()

	h := New(s.service, slog.New(slog.NewTextHandler(io.Discard, nil)))
	s.router = chi.NewRouter()
	s.router.Group(func(r chi.Router) {
		r.Use(s.authenticate)
		h.Register(r)
	})
}

func (s *HandlerSuite) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Test-Anonymous") == "" {
			ctx := requestcontext.WithPrincipal(r.Context(), s.verifier, id.RoleVerifier, nil)
			r = r.WithContext(ctx)
		}
		next.ServeHTTP(w, r)
	})
}

func (s *HandlerSuite) do(method, path string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func sampleRecord(verifier id.AccountID) *models.Record {
	fields := []comparison.FieldResult{
		comparison.CompareField(comparison.FieldEmployeeID, "EMP001", "EMP001"),
		comparison.CompareField(comparison.FieldName, "Ravi Kumar", "Ravi Kumar"),
		comparison.CompareField(comparison.FieldDesignation, "Manager", "Consultant"),
	}
	summary := comparison.Summarize(fields)
	return &models.Record{
		ID:            "VER000001",
		EmployeeID:    "EMP001",
		VerifierID:    verifier,
		Claim:         comparison.Claim{EmployeeID: "EMP001", Name: "Ravi Kumar", Designation: "Manager"},
		Results:       fields,
		OverallStatus: summary.OverallStatus,
		MatchScore:    summary.MatchScore,
		ConsentGiven:  true,
		CompletedAt:   time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
	}
}

func (s *HandlerSuite) TestSubmit() {
	s.Run("creates a verification", func() {
		record := sampleRecord(s.verifier)
		s.service.EXPECT().Submit(gomock.Any(), service.SubmitCommand{
			VerifierID:   s.verifier,
			Claim:        comparison.Claim{EmployeeID: "EMP001", Name: "Ravi Kumar", Designation: "Manager"},
			ConsentGiven: true,
		}).Return(&service.SubmitResult{
			Record:   record,
			Employee: models.EmployeeView{EmployeeID: "EMP001", Name: "Ravi Kumar"},
			Result:   record.Result(),
		}, nil)

		w := s.do(http.MethodPost, "/verifications", map[string]any{
			"employee_id":   " emp001 ",
			"name":          "Ravi Kumar",
			"designation":   "Manager",
			"consent_given": true,
		})

		s.Require().Equal(http.StatusCreated, w.Code)
		var resp SubmitResponse
		s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
		s.Equal("VER000001", resp.Verification.VerificationID)
		s.Equal(record.MatchScore, resp.Verification.MatchScore)
		s.Equal(record.OverallStatus, resp.Verification.OverallStatus)
		s.Require().Len(resp.Verification.Results, 3)
		s.Equal("green", resp.Verification.Results[0].Color)
		s.Equal("red", resp.Verification.Results[2].Color)
		s.Require().Len(resp.Verification.Mismatched, 1)
		s.Equal(comparison.FieldDesignation, resp.Verification.Mismatched[0].Field)
		s.Equal("Ravi Kumar", resp.Employee.Name)
	})

	s.Run("rejects missing consent before calling the service", func() {
		w := s.do(http.MethodPost, "/verifications", map[string]any{"employee_id": "EMP001"})
		s.Equal(http.StatusBadRequest, w.Code)
		s.Contains(w.Body.String(), string(dErrors.CodeMissingConsent))
	})

	s.Run("rejects unknown fields", func() {
		w := s.do(http.MethodPost, "/verifications", map[string]any{
			"employee_id":   "EMP001",
			"consent_given": true,
			"salary":        "1",
		})
		s.Equal(http.StatusBadRequest, w.Code)
	})

	s.Run("rejects malformed dates", func() {
		w := s.do(http.MethodPost, "/verifications", map[string]any{
			"employee_id":     "EMP001",
			"date_of_joining": "01/06/2019",
			"consent_given":   true,
		})
		s.Equal(http.StatusBadRequest, w.Code)
		s.Contains(w.Body.String(), string(dErrors.CodeValidation))
	})

	s.Run("maps unknown employee to 404", func() {
		s.service.EXPECT().Submit(gomock.Any(), gomock.Any()).
			Return(nil, dErrors.New(dErrors.CodeNotFound, "employee not found"))

		w := s.do(http.MethodPost, "/verifications", map[string]any{
			"employee_id":   "EMP999",
			"consent_given": true,
		})
		s.Equal(http.StatusNotFound, w.Code)
	})

	s.Run("requires an authenticated verifier", func() {
		req := httptest.NewRequest(http.MethodPost, "/verifications", bytes.NewReader([]byte(`{}`)))
		req.Header.Set("X-Test-Anonymous", "1")
		w := httptest.NewRecorder()
		s.router.ServeHTTP(w, req)
		s.Equal(http.StatusUnauthorized, w.Code)
	})
}

func (s *HandlerSuite) TestList() {
	s.service.EXPECT().ListByVerifier(gomock.Any(), s.verifier).
		Return([]*models.Record{sampleRecord(s.verifier)}, nil)

	w := s.do(http.MethodGet, "/verifications", nil)

	s.Require().Equal(http.StatusOK, w.Code)
	var resp ListResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Equal(1, resp.Total)
	s.Equal("VER000001", resp.Verifications[0].VerificationID)
	s.False(resp.Verifications[0].HasReport)
}

func (s *HandlerSuite) TestGet() {
	s.Run("returns an owned record", func() {
		s.service.EXPECT().GetOwned(gomock.Any(), id.VerificationID("VER000001"), s.verifier).
			Return(sampleRecord(s.verifier), nil)

		w := s.do(http.MethodGet, "/verifications/VER000001", nil)
		s.Equal(http.StatusOK, w.Code)
	})

	s.Run("invalid id is a bad request", func() {
		w := s.do(http.MethodGet, "/verifications/nope", nil)
		s.Equal(http.StatusBadRequest, w.Code)
	})

	s.Run("foreign record is not found", func() {
		s.service.EXPECT().GetOwned(gomock.Any(), id.VerificationID("VER000002"), s.verifier).
			Return(nil, dErrors.New(dErrors.CodeNotFound, "verification not found"))

		w := s.do(http.MethodGet, "/verifications/VER000002", nil)
		s.Equal(http.StatusNotFound, w.Code)
	})
}

func TestSubmitRequestNormalize(t *testing.T) {
	req := &SubmitRequest{EmployeeID: " emp001 ", Name: "  Ravi  ", ConsentGiven: true}
	req.Normalize()
	assert.Equal(t, "EMP001", req.EmployeeID)
	assert.Equal(t, "Ravi", req.Name)
	require.NoError(t, req.Validate())

	var nilReq *SubmitRequest
	nilReq.Normalize()
	assert.Equal(t, dErrors.CodeBadRequest, dErrors.GetCode(nilReq.Validate()))
}
