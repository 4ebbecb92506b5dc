package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gamebalance/internal/identity"
	"gamebalance/internal/utils"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailTaken         = errors.New("email is already registered")
	ErrInvalidEmail       = errors.New("invalid email format")
	ErrWeakPassword       = errors.New("password must be at least 6 characters")
	ErrMissingName        = errors.New("name and username are required")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

// ProfileInitializer creates the profile and default settings of a new account.
type ProfileInitializer interface {
	Initialize(ctx context.Context, ident identity.Identity) error
}

type Service interface {
	Signup(ctx context.Context, req SignupRequest) (*identity.Identity, error)
	// Signin returns a signed access token for valid credentials.
	Signin(ctx context.Context, req SigninRequest) (string, *identity.Identity, error)
	ValidateToken(token string) (*identity.Identity, error)
}

type Options struct {
	Secret     []byte
	TokenTTL   time.Duration
	BcryptCost int
}

type service struct {
	repo     CredentialRepository
	profiles ProfileInitializer
	clock    utils.Clock
	opts     Options
	validate *validator.Validate
	logger   *zap.SugaredLogger
}

func NewService(repo CredentialRepository, profiles ProfileInitializer, clock utils.Clock, opts Options, logger *zap.Logger) Service {
	if opts.BcryptCost == 0 {
		opts.BcryptCost = bcrypt.DefaultCost
	}
	return &service{
		repo:     repo,
		profiles: profiles,
		clock:    clock,
		opts:     opts,
		validate: validator.New(),
		logger:   logger.Sugar(),
	}
}

func (s *service) Signup(ctx context.Context, req SignupRequest) (*identity.Identity, error) {
	email := normalizeEmail(req.Email)
	if err := s.validate.Var(email, "required,email"); err != nil {
		return nil, ErrInvalidEmail
	}
	if len(req.Password) < 6 {
		return nil, ErrWeakPassword
	}
	name := strings.TrimSpace(req.Name)
	username := strings.TrimSpace(req.Username)
	if name == "" || username == "" {
		return nil, ErrMissingName
	}

	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, ErrCredentialNotFound) {
		return nil, fmt.Errorf("failed to look up email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.opts.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	credential := &Credential{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
		Username:     username,
	}
	if err := s.repo.Create(ctx, credential); err != nil {
		if errors.Is(err, ErrEmailTaken) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	ident := credential.Identity()
	if err := s.profiles.Initialize(ctx, *ident); err != nil {
		return nil, fmt.Errorf("failed to initialize profile: %w", err)
	}

	s.logger.Infow("Account created", "user_id", ident.UserID, "username", ident.Username)
	return ident, nil
}

func (s *service) Signin(ctx context.Context, req SigninRequest) (string, *identity.Identity, error) {
	credential, err := s.repo.GetByEmail(ctx, normalizeEmail(req.Email))
	if errors.Is(err, ErrCredentialNotFound) {
		return "", nil, ErrInvalidCredentials
	}
	if err != nil {
		return "", nil, fmt.Errorf("failed to look up email: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(credential.PasswordHash), []byte(req.Password)); err != nil {
		s.logger.Infow("Signin: wrong password", "user_id", credential.ID)
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.issueToken(credential)
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign token: %w", err)
	}
	return token, credential.Identity(), nil
}

func (s *service) ValidateToken(tokenString string) (*identity.Identity, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return s.opts.Secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.clock.Now),
	)
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}

	return &identity.Identity{
		UserID:   claims.Subject,
		Email:    claims.Email,
		Name:     claims.Name,
		Username: claims.Username,
	}, nil
}

func (s *service) issueToken(c *Credential) (string, error) {
	now := s.clock.Now()
	claims := &Claims{
		Email:    c.Email,
		Name:     c.Name,
		Username: c.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   c.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.opts.TokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.opts.Secret)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
