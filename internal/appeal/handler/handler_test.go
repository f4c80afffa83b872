package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"veriport/internal/appeal/handler/mocks"
	"veriport/internal/appeal/models"
	"veriport/internal/appeal/service"
	"veriport/internal/comparison"
	vmodels "veriport/internal/verification/models"
	id "veriport/pkg/domain"
	dErrors "veriport/pkg/domain-errors"
	"veriport/pkg/requestcontext"
)

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service
type HandlerSuite struct {
	suite.Suite
	service   *mocks.MockService
	router    chi.Router
	principal id.AccountID
	role      id.Role
	denyAll   bool
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupTest() {
	ctrl := gomock.NewController(s.T())
	s.service = mocks.NewMockService(ctrl)
	s.principal = id.NewAccountID()
	s.role = id.RoleVerifier
	s.denyAll = false

	h := New(s.service, slog.New(slog.NewTextHandler(io.Discard, nil)))
	s.router = chi.NewRouter()
	s.router.Use(s.authenticate)
	h.Register(s.router)
	h.RegisterAdmin(s.router, passthrough, s.manage)
}

func passthrough(next http.Handler) http.Handler { return next }

func (s *HandlerSuite) manage(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.denyAll {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *HandlerSuite) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := requestcontext.WithPrincipal(r.Context(), s.principal, s.role, id.DefaultPermissions[s.role])
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *HandlerSuite) serve(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *HandlerSuite) doJSON(method, path string, body any) *httptest.ResponseRecorder {
	raw, err := json.Marshal(body)
	s.Require().NoError(err)
	req := httptest.NewRequest(method, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	return s.serve(req)
}

func sampleAppeal() *models.Appeal {
	return &models.Appeal{
		ID:             "APP000001",
		VerificationID: "VER000001",
		EmployeeID:     "6002056",
		VerifierID:     id.NewAccountID(),
		Reason:         "Relieving letter shows March",
		MismatchedFields: []comparison.MismatchedField{{
			Field:         comparison.FieldDateOfLeaving,
			Submitted:     "02 Apr 2024",
			Authoritative: "31 Mar 2024",
		}},
		Status:    models.StatusPending,
		CreatedAt: time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC),
	}
}

func (s *HandlerSuite) TestCreateJSON() {
	s.service.EXPECT().Create(gomock.Any(), service.CreateCommand{
		VerificationID: "VER000001",
		VerifierID:     s.principal,
		Reason:         "Relieving letter shows March",
		DocumentRefs:   []string{"https://files.example.com/letter.pdf"},
	}).Return(sampleAppeal(), nil)

	w := s.doJSON(http.MethodPost, "/verifications/VER000001/appeals", map[string]any{
		"reason":        "  Relieving letter shows March ",
		"document_refs": []string{"https://files.example.com/letter.pdf"},
	})

	s.Require().Equal(http.StatusCreated, w.Code)
	var resp AppealResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Equal("APP000001", resp.AppealID)
	s.Equal(models.StatusPending, resp.Status)
	s.Require().Len(resp.MismatchedFields, 1)
	s.Equal("Date of Leaving", resp.MismatchedFields[0].Label)
	s.NotNil(resp.DocumentRefs)
}

func (s *HandlerSuite) TestCreateMultipart() {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	s.Require().NoError(mw.WriteField("reason", "Relieving letter attached"))
	part, err := mw.CreateFormFile("documents", "letter.pdf")
	s.Require().NoError(err)
	_, err = part.Write([]byte("%PDF-1.4 letter"))
	s.Require().NoError(err)
	s.Require().NoError(mw.Close())

	s.service.EXPECT().Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ any, cmd service.CreateCommand) (*models.Appeal, error) {
			s.Equal("Relieving letter attached", cmd.Reason)
			s.Require().Len(cmd.Documents, 1)
			s.Equal("letter.pdf", cmd.Documents[0].Filename)
			s.Equal([]byte("%PDF-1.4 letter"), cmd.Documents[0].Body)
			s.Equal("application/pdf", cmd.Documents[0].ContentType)
			return sampleAppeal(), nil
		})

	req := httptest.NewRequest(http.MethodPost, "/verifications/VER000001/appeals", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := s.serve(req)
	s.Equal(http.StatusCreated, w.Code)
}

func (s *HandlerSuite) TestCreateRejections() {
	s.Run("short reason", func() {
		w := s.doJSON(http.MethodPost, "/verifications/VER000001/appeals", map[string]any{"reason": "wrong"})
		s.Equal(http.StatusBadRequest, w.Code)
		s.Contains(w.Body.String(), string(dErrors.CodeValidation))
	})

	s.Run("bad verification id", func() {
		w := s.doJSON(http.MethodPost, "/verifications/123/appeals", map[string]any{"reason": "long enough reason"})
		s.Equal(http.StatusBadRequest, w.Code)
	})

	s.Run("no mismatches is a conflict", func() {
		s.service.EXPECT().Create(gomock.Any(), gomock.Any()).
			Return(nil, dErrors.New(dErrors.CodeInvalidState, "verification has no mismatched fields to appeal"))
		w := s.doJSON(http.MethodPost, "/verifications/VER000001/appeals", map[string]any{"reason": "long enough reason"})
		s.Equal(http.StatusConflict, w.Code)
		s.Contains(w.Body.String(), string(dErrors.CodeInvalidState))
	})
}

func (s *HandlerSuite) TestListMine() {
	s.service.EXPECT().ListByVerifier(gomock.Any(), s.principal).Return([]*models.Appeal{sampleAppeal()}, nil)

	w := s.serve(httptest.NewRequest(http.MethodGet, "/appeals/mine", nil))
	s.Require().Equal(http.StatusOK, w.Code)
	var resp ListResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Equal(1, resp.Total)
}

func (s *HandlerSuite) TestAdminList() {
	s.role = id.RoleHRStaff
	s.service.EXPECT().List(gomock.Any(), models.Filter{Status: models.StatusPending, EmployeeID: "EMP001"}).
		Return([]*models.Appeal{}, nil)

	w := s.serve(httptest.NewRequest(http.MethodGet, "/admin/appeals?status=PENDING&employee_id=emp001", nil))
	s.Equal(http.StatusOK, w.Code)

	w = s.serve(httptest.NewRequest(http.MethodGet, "/admin/appeals?status=closed", nil))
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *HandlerSuite) TestAdminGet() {
	s.role = id.RoleHRStaff
	appeal := sampleAppeal()
	s.service.EXPECT().GetDetail(gomock.Any(), id.AppealID("APP000001")).Return(&service.Detail{
		Appeal: appeal,
		Verification: &vmodels.Record{
			ID:         appeal.VerificationID,
			EmployeeID: appeal.EmployeeID,
			VerifierID: appeal.VerifierID,
		},
		Employee: &vmodels.EmployeeView{EmployeeID: "6002056", Name: "S Sathish"},
	}, nil)

	w := s.serve(httptest.NewRequest(http.MethodGet, "/admin/appeals/APP000001", nil))
	s.Require().Equal(http.StatusOK, w.Code)
	var resp DetailResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Equal("APP000001", resp.Appeal.AppealID)
	s.Require().NotNil(resp.Verification)
	s.Equal("VER000001", resp.Verification.VerificationID)
	s.Require().NotNil(resp.Employee)
	s.Equal("S Sathish", resp.Employee.Name)
}

func (s *HandlerSuite) TestResolve() {
	s.role = id.RoleHRManager

	s.Run("passes the reviewer identity", func() {
		resolved := sampleAppeal()
		resolved.Status = models.StatusApproved
		s.service.EXPECT().Resolve(gomock.Any(), service.ResolveCommand{
			AppealID:    "APP000001",
			Decision:    "approved",
			Response:    "Payroll confirms",
			ReviewerID:  s.principal,
			Role:        id.RoleHRManager,
			Permissions: id.DefaultPermissions[id.RoleHRManager],
		}).Return(resolved, nil)

		w := s.doJSON(http.MethodPost, "/admin/appeals/APP000001/resolve", map[string]any{
			"decision": "Approved",
			"response": "Payroll confirms",
		})
		s.Require().Equal(http.StatusOK, w.Code)
		s.Contains(w.Body.String(), `"status":"approved"`)
	})

	s.Run("second resolution conflicts", func() {
		s.service.EXPECT().Resolve(gomock.Any(), gomock.Any()).
			Return(nil, dErrors.New(dErrors.CodeInvalidState, "appeal has already been resolved"))
		w := s.doJSON(http.MethodPost, "/admin/appeals/APP000001/resolve", map[string]any{
			"decision": "rejected",
			"response": "Too late",
		})
		s.Equal(http.StatusConflict, w.Code)
	})

	s.Run("invalid decision", func() {
		w := s.doJSON(http.MethodPost, "/admin/appeals/APP000001/resolve", map[string]any{
			"decision": "pending",
			"response": "Not yet",
		})
		s.Equal(http.StatusBadRequest, w.Code)
	})

	s.Run("manage middleware guards resolution", func() {
		s.denyAll = true
		defer func() { s.denyAll = false }()
		w := s.doJSON(http.MethodPost, "/admin/appeals/APP000001/resolve", map[string]any{
			"decision": "approved",
			"response": "Payroll confirms",
		})
		s.Equal(http.StatusForbidden, w.Code)
	})
}
