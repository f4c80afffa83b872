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
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"veriport/internal/auth/handler/mocks"
	"veriport/internal/auth/models"
	"veriport/internal/auth/service"
	id "veriport/pkg/domain"
	dErrors "veriport/pkg/domain-errors"
	"veriport/pkg/requestcontext"
)

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service
type HandlerSuite struct {
	suite.Suite
	service *mocks.MockService
	handler *Handler
	router  chi.Router
	account *models.Account
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupTest() {
	ctrl := gomock.NewController(s.T())
	s.service = mocks.NewMockService(ctrl)
	s.account = &models.Account{
		ID:        id.NewAccountID(),
		Email:     "anita@checkr.in",
		FullName:  "Anita Rao",
		Role:      id.RoleVerifier,
		Active:    true,
		CreatedAt: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
	}

	s.handler = New(s.service, slog.New(slog.NewTextHandler(io.Discard, nil)))
	s.router = chi.NewRouter()
	s.handler.RegisterPublic(s.router)
	s.router.Group(func(r chi.Router) {
		r.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				ctx := requestcontext.WithPrincipal(r.Context(), s.account.ID, s.account.Role, nil)
				next.ServeHTTP(w, r.WithContext(ctx))
			})
		})
		s.handler.Register(r)
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

func (s *HandlerSuite) TestRegister() {
	s.Run("normalizes and creates", func() {
		s.service.EXPECT().Register(gomock.Any(), service.RegisterCommand{
			Email:       "anita@checkr.in",
			Password:    "correct-horse",
			FullName:    "Anita Rao",
			CompanyName: "Checkr",
		}).Return(s.account, nil)

		w := s.do(http.MethodPost, "/auth/register", map[string]string{
			"email":        " Anita@Checkr.IN ",
			"password":     "correct-horse",
			"full_name":    " Anita Rao ",
			"company_name": "Checkr",
		})
		s.Equal(http.StatusCreated, w.Code)

		var body AccountResponse
		s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
		s.Equal(s.account.ID.String(), body.ID)
		s.Equal(id.RoleVerifier, body.Role)
		s.NotNil(body.Permissions)
		s.NotContains(w.Body.String(), "password")
	})

	s.Run("missing fields never reach the service", func() {
		w := s.do(http.MethodPost, "/auth/register", map[string]string{"email": "a@acme.com"})
		s.Equal(http.StatusBadRequest, w.Code)
	})

	s.Run("unknown fields are rejected", func() {
		w := s.do(http.MethodPost, "/auth/register", map[string]string{
			"email": "a@acme.com", "password": "correct-horse", "full_name": "A", "role": "super_admin",
		})
		s.Equal(http.StatusBadRequest, w.Code)
	})

	s.Run("duplicate email is a conflict", func() {
		s.service.EXPECT().Register(gomock.Any(), gomock.Any()).
			Return(nil, dErrors.New(dErrors.CodeConflict, "an account with this email already exists"))
		w := s.do(http.MethodPost, "/auth/register", map[string]string{
			"email": "a@acme.com", "password": "correct-horse", "full_name": "A",
		})
		s.Equal(http.StatusConflict, w.Code)
	})
}

func (s *HandlerSuite) TestLogin() {
	s.Run("returns a bearer token", func() {
		expires := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
		s.service.EXPECT().Login(gomock.Any(), service.LoginCommand{Email: "anita@checkr.in", Password: "correct-horse"}).
			Return(&service.LoginResult{Account: s.account, AccessToken: "signed.jwt.token", ExpiresAt: expires}, nil)

		w := s.do(http.MethodPost, "/auth/login", map[string]string{"email": "ANITA@checkr.in", "password": "correct-horse"})
		s.Equal(http.StatusOK, w.Code)

		var body LoginResponse
		s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
		s.Equal("signed.jwt.token", body.AccessToken)
		s.Equal("Bearer", body.TokenType)
		s.True(expires.Equal(body.ExpiresAt))
		s.Equal(s.account.Email, body.Account.Email)
	})

	s.Run("bad credentials are unauthorized", func() {
		s.service.EXPECT().Login(gomock.Any(), gomock.Any()).
			Return(nil, dErrors.New(dErrors.CodeUnauthorized, "invalid email or password"))
		w := s.do(http.MethodPost, "/auth/login", map[string]string{"email": "a@acme.com", "password": "wrong-one"})
		s.Equal(http.StatusUnauthorized, w.Code)
	})

	s.Run("malformed json", func() {
		req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewBufferString("{"))
		w := httptest.NewRecorder()
		s.router.ServeHTTP(w, req)
		s.Equal(http.StatusBadRequest, w.Code)
	})
}

func (s *HandlerSuite) TestMe() {
	s.service.EXPECT().Me(gomock.Any(), s.account.ID).Return(s.account, nil)
	w := s.do(http.MethodGet, "/auth/me", nil)
	s.Equal(http.StatusOK, w.Code)

	var body AccountResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	s.Equal("Anita Rao", body.FullName)
}

func (s *HandlerSuite) TestAccessDeniedForwardsToService() {
	s.service.EXPECT().RecordAccessDenied(gomock.Any(), "role hr_staff not permitted")
	req := httptest.NewRequest(http.MethodGet, "/admin/appeals", nil)
	s.handler.AccessDenied(req, "role hr_staff not permitted")
}
