// Package service registers accounts, checks passwords and issues access
// tokens.
package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/crypto/bcrypt"

	"veriport/internal/auth/models"
	jwttoken "veriport/internal/jwt_token"
	id "veriport/pkg/domain"
	dErrors "veriport/pkg/domain-errors"
	"veriport/pkg/email"
	"veriport/pkg/platform/audit"
	"veriport/pkg/platform/sentinel"
	"veriport/pkg/requestcontext"
)

type Store interface {
	Create(ctx context.Context, account *models.Account) error
	FindByID(ctx context.Context, accountID id.AccountID) (*models.Account, error)
	FindByEmail(ctx context.Context, email string) (*models.Account, error)
	RecordLogin(ctx context.Context, accountID id.AccountID, at time.Time) error
}

type TokenIssuer interface {
	GenerateAccessToken(sub jwttoken.Subject, now time.Time) (string, time.Time, error)
}

// AuditPublisher receives security events. Failures are logged, never
// returned to the caller.
type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

type RegisterCommand struct {
	Email       string
	Password    string
	FullName    string
	CompanyName string
}

type LoginCommand struct {
	Email    string
	Password string
}

// CreateAccountCommand is the operator path used by the CLI. Any role may be
// created and the email domain is not restricted.
type CreateAccountCommand struct {
	Email       string
	Password    string
	FullName    string
	CompanyName string
	Role        id.Role
	Permissions []id.Permission
}

type LoginResult struct {
	Account     *models.Account
	AccessToken string
	ExpiresAt   time.Time
}

type Service struct {
	store    Store
	tokens   TokenIssuer
	auditor  AuditPublisher
	logger   *slog.Logger
	hashCost int

	dummyOnce sync.Once
	dummyHash []byte
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithHashCost sets the bcrypt cost. Tests use bcrypt.MinCost.
func WithHashCost(cost int) Option {
	return func(s *Service) {
		s.hashCost = cost
	}
}

func New(store Store, tokens TokenIssuer, auditor AuditPublisher, opts ...Option) *Service {
	s := &Service{
		store:    store,
		tokens:   tokens,
		auditor:  auditor,
		logger:   slog.Default(),
		hashCost: bcrypt.DefaultCost,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

var tracer = otel.Tracer("veriport/auth")

// Register creates a verifier account. The address must belong to a company
// domain.
func (s *Service) Register(ctx context.Context, cmd RegisterCommand) (*models.Account, error) {
	ctx, span := tracer.Start(ctx, "auth.Register")
	defer span.End()

	address := email.Normalize(cmd.Email)
	if err := models.ValidateCompanyEmail(address); err != nil {
		return nil, err
	}
	account, err := s.newAccount(ctx, address, cmd.Password, cmd.FullName, cmd.CompanyName, id.RoleVerifier, nil)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.String("account.id", account.ID.String()))

	s.emit(ctx, audit.Event{
		ActorID:  account.ID.String(),
		Action:   string(audit.EventAccountRegistered),
		Decision: string(account.Role),
	})
	s.logger.InfoContext(ctx, "account registered", "account_id", account.ID, "role", account.Role)
	return account, nil
}

// CreateAccount creates an account with an explicit role. Permissions default
// to the role's defaults when none are given.
func (s *Service) CreateAccount(ctx context.Context, cmd CreateAccountCommand) (*models.Account, error) {
	if !cmd.Role.IsValid() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "unknown role "+string(cmd.Role))
	}
	for _, p := range cmd.Permissions {
		if !p.IsValid() {
			return nil, dErrors.New(dErrors.CodeInvalidInput, "unknown permission "+string(p))
		}
	}
	address := email.Normalize(cmd.Email)
	if !email.IsValid(address) {
		return nil, dErrors.New(dErrors.CodeValidation, "invalid email address")
	}
	account, err := s.newAccount(ctx, address, cmd.Password, cmd.FullName, cmd.CompanyName, cmd.Role, cmd.Permissions)
	if err != nil {
		return nil, err
	}
	s.emit(ctx, audit.Event{
		ActorID:  account.ID.String(),
		Action:   string(audit.EventAccountRegistered),
		Decision: string(account.Role),
		Reason:   "operator",
	})
	return account, nil
}

func (s *Service) newAccount(ctx context.Context, address, password, fullName, company string, role id.Role, perms []id.Permission) (*models.Account, error) {
	if err := models.ValidatePassword(password); err != nil {
		return nil, err
	}
	fullName = strings.TrimSpace(fullName)
	if err := models.ValidateName(fullName); err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to hash password")
	}
	if perms == nil {
		perms = id.DefaultPermissions[role]
	}
	account := &models.Account{
		ID:           id.NewAccountID(),
		Email:        address,
		PasswordHash: string(hash),
		FullName:     fullName,
		CompanyName:  strings.TrimSpace(company),
		Role:         role,
		Permissions:  perms,
		Active:       true,
		CreatedAt:    requestcontext.Now(ctx),
	}
	if err := s.store.Create(ctx, account); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return nil, dErrors.New(dErrors.CodeConflict, "an account with this email already exists")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create account")
	}
	return account, nil
}

// Login checks the password and issues an access token. Unknown emails and
// wrong passwords produce the same error.
func (s *Service) Login(ctx context.Context, cmd LoginCommand) (*LoginResult, error) {
	ctx, span := tracer.Start(ctx, "auth.Login")
	defer span.End()

	address := email.Normalize(cmd.Email)
	if address == "" || cmd.Password == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "email and password are required")
	}

	account, err := s.store.FindByEmail(ctx, address)
	if err != nil {
		if !errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load account")
		}
		s.burnCompare(cmd.Password)
		s.loginFailed(ctx, "", "unknown email")
		return nil, errInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(cmd.Password)); err != nil {
		if !errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to verify password")
		}
		s.loginFailed(ctx, account.ID.String(), "wrong password")
		return nil, errInvalidCredentials
	}
	if !account.Active {
		s.loginFailed(ctx, account.ID.String(), "account disabled")
		return nil, dErrors.New(dErrors.CodeForbidden, "account is disabled")
	}

	now := requestcontext.Now(ctx)
	token, expiresAt, err := s.tokens.GenerateAccessToken(jwttoken.Subject{
		AccountID:   account.ID,
		Email:       account.Email,
		Role:        account.Role,
		Permissions: account.Permissions,
	}, now)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to issue access token")
	}

	if err := s.store.RecordLogin(ctx, account.ID, now); err != nil {
		s.logger.WarnContext(ctx, "failed to record login", "account_id", account.ID, "error", err)
	} else {
		account.LastLoginAt = &now
	}
	s.emit(ctx, audit.Event{
		ActorID: account.ID.String(),
		Action:  string(audit.EventLoginSucceeded),
	})
	return &LoginResult{Account: account, AccessToken: token, ExpiresAt: expiresAt}, nil
}

var errInvalidCredentials = dErrors.New(dErrors.CodeUnauthorized, "invalid email or password")

// burnCompare spends one bcrypt comparison so unknown emails take as long as
// wrong passwords.
func (s *Service) burnCompare(password string) {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = bcrypt.GenerateFromPassword([]byte("veriport-dummy-password"), s.hashCost)
	})
	_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
}

func (s *Service) loginFailed(ctx context.Context, actor, reason string) {
	s.emit(ctx, audit.Event{
		ActorID: actor,
		Action:  string(audit.EventLoginFailed),
		Reason:  reason,
	})
	s.logger.InfoContext(ctx, "login failed", "account_id", actor, "reason", reason)
}

// Me returns the account behind an access token.
func (s *Service) Me(ctx context.Context, accountID id.AccountID) (*models.Account, error) {
	if accountID.IsNil() {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "authentication required")
	}
	account, err := s.store.FindByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "account not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load account")
	}
	return account, nil
}

// Email returns the address of an account. It serves notification lookups.
func (s *Service) Email(ctx context.Context, accountID id.AccountID) (string, error) {
	account, err := s.Me(ctx, accountID)
	if err != nil {
		return "", err
	}
	return account.Email, nil
}

// RecordAccessDenied audits an authenticated request refused by role or
// permission checks.
func (s *Service) RecordAccessDenied(ctx context.Context, reason string) {
	actor := requestcontext.AccountID(ctx)
	s.emit(ctx, audit.Event{
		ActorID:  actor.String(),
		Action:   string(audit.EventAccessDenied),
		Decision: "denied",
		Reason:   reason,
	})
	s.logger.WarnContext(ctx, "access denied",
		"account_id", actor,
		"role", requestcontext.Role(ctx),
		"reason", reason,
	)
}

func (s *Service) emit(ctx context.Context, event audit.Event) {
	if s.auditor == nil {
		return
	}
	event.Timestamp = requestcontext.Now(ctx)
	event = event.WithRequestContext(ctx)
	if err := s.auditor.Emit(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "failed to emit security event",
			"action", event.Action,
			"error", err,
		)
	}
}
