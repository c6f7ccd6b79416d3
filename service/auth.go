package service

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
)

type AuthConfig struct {
	Username     string
	Password     string
	PasswordHash string // bcrypt hash, preferred over Password when set
	Secret       string
	TokenTTL     time.Duration
	BcryptCost   int
}

// AdminClaims is the payload of an admin token.
type AdminClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// AuthService guards the single admin identity. Its configuration is fixed at construction.
type AuthService struct {
	username     string
	passwordHash []byte
	secret       []byte
	ttl          time.Duration
	now          func() time.Time
}

func NewAuthService(cfg AuthConfig) (*AuthService, error) {
	if cfg.Username == "" {
		return nil, errors.New("admin username is not configured")
	}
	if cfg.Secret == "" {
		return nil, errors.New("token signing secret is not configured")
	}
	if cfg.TokenTTL <= 0 {
		return nil, fmt.Errorf("token ttl must be positive, got %v", cfg.TokenTTL)
	}

	hash := []byte(cfg.PasswordHash)
	if len(hash) == 0 {
		if cfg.Password == "" {
			return nil, errors.New("admin password is not configured")
		}
		cost := cfg.BcryptCost
		if cost == 0 {
			cost = bcrypt.DefaultCost
		}
		var err error
		hash, err = bcrypt.GenerateFromPassword([]byte(cfg.Password), cost)
		if err != nil {
			return nil, fmt.Errorf("hash admin password: %w", err)
		}
	} else if _, err := bcrypt.Cost(hash); err != nil {
		return nil, fmt.Errorf("invalid admin password hash: %w", err)
	}

	return &AuthService{
		username:     cfg.Username,
		passwordHash: hash,
		secret:       []byte(cfg.Secret),
		ttl:          cfg.TokenTTL,
		now:          time.Now,
	}, nil
}

func (s *AuthService) Login(username, password string) (string, error) {
	if username == "" || password == "" {
		return "", validationError("username & password required")
	}

	// both checks always run
	userOk := subtle.ConstantTimeCompare([]byte(username), []byte(s.username)) == 1
	passOk := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password)) == nil
	if !userOk || !passOk {
		return "", ErrInvalidCredentials
	}

	issuedAt := s.now()
	claims := AdminClaims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(s.ttl)),
		},
	}
	t, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign admin token: %w", err)
	}
	return t, nil
}

// Authorize verifies a raw token and returns the admin username it was issued to.
func (s *AuthService) Authorize(token string) (string, error) {
	if token == "" {
		return "", ErrUnauthorized
	}
	parsed, err := jwt.ParseWithClaims(token, &AdminClaims{}, s.KeyFunc)
	if err != nil || !parsed.Valid {
		return "", ErrUnauthorized
	}
	return s.Identity(parsed)
}

// KeyFunc accepts HS256 tokens only.
func (s *AuthService) KeyFunc(t *jwt.Token) (interface{}, error) {
	if t.Method != jwt.SigningMethodHS256 {
		return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
	}
	return s.secret, nil
}

func (s *AuthService) SigningKey() []byte {
	return s.secret
}

// Identity checks the claims of an already verified token.
func (s *AuthService) Identity(token *jwt.Token) (string, error) {
	claims, ok := token.Claims.(*AdminClaims)
	if !ok || claims.ExpiresAt == nil {
		return "", ErrUnauthorized
	}
	if subtle.ConstantTimeCompare([]byte(claims.Username), []byte(s.username)) != 1 {
		return "", ErrUnauthorized
	}
	return claims.Username, nil
}
