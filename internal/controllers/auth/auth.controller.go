package authController

import (
	"context"
	"errors"
	"time"

	"gearguard/internal/apperrors"
	. "gearguard/internal/models"
	"gearguard/internal/repositories"
	"gearguard/internal/services"
	"gearguard/internal/validation"

	logger "github.com/Bparsons0904/goLogger"
	"gorm.io/gorm"
)

type TokenIssuer interface {
	CheckPassword(hash, password string) bool
	IssueToken(accountID int, username string) (string, time.Time, error)
}

type LoginInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token     string         `json:"token"`
	ExpiresAt time.Time      `json:"expires_at"`
	Account   AccountSummary `json:"account"`
}

type MeResponse struct {
	Account AccountSummary       `json:"account"`
	Profile *UserProfileResponse `json:"profile"`
}

type AuthController struct {
	accountRepo repositories.AccountRepository
	profileRepo repositories.UserProfileRepository
	transaction services.Transactor
	tokens      TokenIssuer
	validator   *validation.Validator
	log         logger.Logger
}

type AuthControllerInterface interface {
	Login(ctx context.Context, input LoginInput) (*LoginResponse, error)
	Me(ctx context.Context, accountID int) (*MeResponse, error)
}

func New(
	repos repositories.Repository,
	transaction services.Transactor,
	tokens TokenIssuer,
	validator *validation.Validator,
) AuthControllerInterface {
	return &AuthController{
		accountRepo: repos.Account,
		profileRepo: repos.UserProfile,
		transaction: transaction,
		tokens:      tokens,
		validator:   validator,
		log:         logger.New("authController"),
	}
}

var errBadCredentials = apperrors.Unauthorized("Unable to log in with provided credentials.")

// Login never says which of username or password was wrong.
func (ac *AuthController) Login(ctx context.Context, input LoginInput) (*LoginResponse, error) {
	log := ac.log.TraceFromContext(ctx).Function("Login")

	if err := ac.validator.Struct(input); err != nil {
		return nil, err
	}

	var account *Account
	err := ac.transaction.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		var err error
		account, err = ac.accountRepo.GetByUsername(ctx, tx, input.Username)
		return err
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			log.Info("Login rejected", "reason", "unknown username")
			return nil, errBadCredentials
		}
		return nil, err
	}

	if !account.IsActive || !ac.tokens.CheckPassword(account.PasswordHash, input.Password) {
		log.Info("Login rejected", "accountID", account.ID)
		return nil, errBadCredentials
	}

	token, expiresAt, err := ac.tokens.IssueToken(account.ID, account.Username)
	if err != nil {
		return nil, err
	}

	log.Info("Login succeeded", "accountID", account.ID)
	return &LoginResponse{Token: token, ExpiresAt: expiresAt, Account: account.ToSummary()}, nil
}

// Me returns the account and, when one exists, its profile.
func (ac *AuthController) Me(ctx context.Context, accountID int) (*MeResponse, error) {
	var (
		account *Account
		profile *UserProfile
	)
	err := ac.transaction.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		var err error
		account, err = ac.accountRepo.GetByID(ctx, tx, accountID)
		if err != nil {
			return err
		}
		profile, err = ac.profileRepo.GetByAccountID(ctx, tx, accountID)
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil
		}
		return err
	})
	if err != nil {
		return nil, err
	}

	resp := &MeResponse{Account: account.ToSummary()}
	if profile != nil {
		profileResp := profile.ToResponse()
		resp.Profile = &profileResp
	}
	return resp, nil
}
