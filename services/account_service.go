package services

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"go.uber.org/zap"

	"hotel-pms/events"
	"hotel-pms/models"
	"hotel-pms/repository"
	"hotel-pms/utils"
)

const minPasswordLength = 8

// AccountService covers first-run setup, staff accounts and login.
type AccountService struct {
	core
	jwtSecret string
	tokenTTL  time.Duration
}

func NewAccountService(store repository.Store, pub events.Publisher, log *zap.Logger, jwtSecret string, tokenTTL time.Duration) *AccountService {
	if tokenTTL <= 0 {
		tokenTTL = 8 * time.Hour
	}
	return &AccountService{core: newCore(store, pub, log), jwtSecret: jwtSecret, tokenTTL: tokenTTL}
}

func (s *AccountService) SetupRequired(ctx context.Context) (bool, error) {
	var n int64
	err := s.runUnscoped(ctx, "setup.check", func(tx repository.Tx) error {
		var err error
		n, err = tx.CountOrganizations()
		return fromRepo(err, "organization")
	})
	return n == 0, err
}

type SetupInput struct {
	HotelName     string `json:"hotelName"`
	Address       string `json:"address"`
	Phone         string `json:"phone"`
	AdminName     string `json:"adminName"`
	AdminEmail    string `json:"adminEmail"`
	AdminPassword string `json:"adminPassword"`
}

type SetupResult struct {
	Organization *models.Organization `json:"organization"`
	Admin        *models.User         `json:"admin"`
}

// Setup creates the first organization and its admin. It works exactly once.
func (s *AccountService) Setup(ctx context.Context, in SetupInput) (*SetupResult, error) {
	in.HotelName = strings.TrimSpace(in.HotelName)
	in.AdminName = strings.TrimSpace(in.AdminName)
	if in.HotelName == "" || in.AdminName == "" {
		return nil, invalidInput("hotelName and adminName are required")
	}
	if err := validateCredentials(in.AdminEmail, in.AdminPassword); err != nil {
		return nil, err
	}
	hash, err := utils.HashPassword(in.AdminPassword)
	if err != nil {
		return nil, &Error{Kind: KindInternal, Message: "internal error", Err: err}
	}

	out := &SetupResult{}
	err = s.runUnscoped(ctx, "setup", func(tx repository.Tx) error {
		n, err := tx.CountOrganizations()
		if err != nil {
			return fromRepo(err, "organization")
		}
		if n > 0 {
			return conflict("setup has already been completed")
		}
		org := &models.Organization{
			Name:           in.HotelName,
			Address:        strings.TrimSpace(in.Address),
			Phone:          strings.TrimSpace(in.Phone),
			Email:          strings.ToLower(strings.TrimSpace(in.AdminEmail)),
			CurrencyCode:   "NGN",
			CurrencySymbol: "₦",
		}
		if err := tx.CreateOrganization(org); err != nil {
			return fromRepo(err, "organization")
		}
		admin := &models.User{
			OrganizationID: org.ID,
			Email:          in.AdminEmail,
			PasswordHash:   hash,
			FullName:       in.AdminName,
			Role:           models.RoleAdmin,
			IsActive:       true,
		}
		if err := tx.CreateUser(admin); err != nil {
			return fromRepo(err, "user")
		}
		out.Organization, out.Admin = org, admin
		return s.audit(tx, Scope{TenantID: org.ID, UserID: admin.ID}, "setup.completed", "organization", org.ID, nil)
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("organization created", zap.String("tenant_id", out.Organization.ID))
	return out, nil
}

type CreateUserInput struct {
	Email    string          `json:"email"`
	Password string          `json:"password"`
	FullName string          `json:"fullName"`
	Role     models.UserRole `json:"role"`
}

// CreateUser adds a staff account to the caller's organization. The new user
// must change the initial password.
func (s *AccountService) CreateUser(ctx context.Context, scope Scope, in CreateUserInput) (*models.User, error) {
	if err := validateCredentials(in.Email, in.Password); err != nil {
		return nil, err
	}
	if _, err := models.ParseUserRole(string(in.Role)); err != nil {
		return nil, invalidInput("%v", err)
	}
	hash, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, &Error{Kind: KindInternal, Message: "internal error", Err: err}
	}
	user := &models.User{
		OrganizationID:     scope.TenantID,
		Email:              in.Email,
		PasswordHash:       hash,
		FullName:           strings.TrimSpace(in.FullName),
		Role:               in.Role,
		IsActive:           true,
		MustChangePassword: true,
	}
	err = s.run(ctx, "user.create", scope, func(tx repository.Tx) error {
		if err := tx.CreateUser(user); err != nil {
			return fromRepo(err, "user")
		}
		return s.audit(tx, scope, "user.created", "user", user.ID, map[string]interface{}{"role": user.Role})
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

type LoginResult struct {
	AccessToken utils.AccessToken `json:"accessToken"`
	User        *models.User      `json:"user"`
}

var errBadCredentials = &Error{Kind: KindUnauthorized, Message: "invalid credentials"}

func (s *AccountService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return nil, invalidInput("email and password are required")
	}
	var user *models.User
	err := s.runUnscoped(ctx, "login", func(tx repository.Tx) error {
		var err error
		user, err = tx.FindUserByEmail(email)
		if errors.Is(err, repository.ErrNotFound) {
			return errBadCredentials
		}
		return fromRepo(err, "user")
	})
	if err != nil {
		return nil, err
	}
	if !user.IsActive || !utils.VerifyPassword(user.PasswordHash, password) {
		return nil, errBadCredentials
	}
	tok, err := utils.NewAccessToken(s.jwtSecret, user.ID, user.OrganizationID, string(user.Role), s.tokenTTL)
	if err != nil {
		return nil, &Error{Kind: KindInternal, Message: "internal error", Err: err}
	}
	return &LoginResult{AccessToken: tok, User: user}, nil
}

func validateCredentials(email, password string) error {
	if _, err := mail.ParseAddress(strings.TrimSpace(email)); err != nil {
		return invalidInput("a valid email is required")
	}
	if len(password) < minPasswordLength {
		return invalidInput("password must be at least %d characters", minPasswordLength)
	}
	return nil
}
