package services

import (
	"errors"
	"strconv"
	"time"

	"gearguard/config"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const tokenIssuer = "gearguard"

var ErrInvalidToken = errors.New("invalid token")

type TokenClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

type AuthService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
	log    logger.Logger
}

func NewAuthService(cfg config.Config) *AuthService {
	return &AuthService{
		secret: []byte(cfg.JWTSecret),
		ttl:    cfg.JWTTTL(),
		now:    time.Now,
		log:    logger.New("authService"),
	}
}

func (s *AuthService) HashPassword(password string) (string, error) {
	log := s.log.Function("HashPassword")

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", log.Err("failed to hash password", err)
	}
	return string(hash), nil
}

func (s *AuthService) CheckPassword(hash, password string) bool {
	if hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// IssueToken signs an HS256 token whose subject is the account id.
func (s *AuthService) IssueToken(accountID int, username string) (string, time.Time, error) {
	log := s.log.Function("IssueToken")

	now := s.now()
	expiresAt := now.Add(s.ttl)

	claims := TokenClaims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   strconv.Itoa(accountID),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, log.Err("failed to sign token", err, "accountID", accountID)
	}

	return token, expiresAt, nil
}

// ParseToken verifies the token and returns the account id it carries.
func (s *AuthService) ParseToken(tokenString string) (int, error) {
	claims := &TokenClaims{}

	_, err := jwt.ParseWithClaims(
		tokenString,
		claims,
		func(token *jwt.Token) (any, error) {
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return 0, ErrInvalidToken
	}

	accountID, err := strconv.Atoi(claims.Subject)
	if err != nil || accountID <= 0 {
		return 0, ErrInvalidToken
	}

	return accountID, nil
}
