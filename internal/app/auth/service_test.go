package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"gamebalance/internal/app/auth"
	"gamebalance/internal/app/auth/mocks"
	"gamebalance/internal/identity"
	utilmocks "gamebalance/internal/utils/mocks"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type fakeProfiles struct {
	initialized []identity.Identity
	err         error
}

func (f *fakeProfiles) Initialize(_ context.Context, ident identity.Identity) error {
	f.initialized = append(f.initialized, ident)
	return f.err
}

type AuthServiceTestSuite struct {
	suite.Suite
	mockCtrl  *gomock.Controller
	mockRepo  *mocks.MockCredentialRepository
	mockClock *utilmocks.MockClock
	profiles  *fakeProfiles
	service   auth.Service
	ctx       context.Context

	now    time.Time
	secret []byte
}

func (s *AuthServiceTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockRepo = mocks.NewMockCredentialRepository(s.mockCtrl)
	s.mockClock = utilmocks.NewMockClock(s.mockCtrl)
	s.now = time.Date(2025, 4, 16, 18, 0, 0, 0, time.UTC)
	s.mockClock.EXPECT().Now().DoAndReturn(func() time.Time { return s.now }).AnyTimes()

	s.profiles = &fakeProfiles{}
	s.secret = []byte("test-secret")
	s.service = auth.NewService(s.mockRepo, s.profiles, s.mockClock, auth.Options{
		Secret:     s.secret,
		TokenTTL:   time.Hour,
		BcryptCost: bcrypt.MinCost,
	}, zap.NewNop())
	s.ctx = context.Background()
}

func TestAuthServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}

func (s *AuthServiceTestSuite) storedCredential(password string) *auth.Credential {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	s.Require().NoError(err)
	return &auth.Credential{
		ID:           "3f0c7a52-9a4e-4d0f-a0a1-1b2c3d4e5f60",
		Email:        "ana@example.com",
		PasswordHash: string(hash),
		Name:         "Ana",
		Username:     "ana",
	}
}

func (s *AuthServiceTestSuite) TestSignupCreatesAccountAndProfile() {
	var created *auth.Credential
	s.mockRepo.EXPECT().GetByEmail(gomock.Any(), "ana@example.com").Return(nil, auth.ErrCredentialNotFound)
	s.mockRepo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, c *auth.Credential) error {
		created = c
		return nil
	})

	ident, err := s.service.Signup(s.ctx, auth.SignupRequest{
		Email: " Ana@Example.com ", Password: "secret1", Name: "Ana", Username: "ana",
	})
	s.Require().NoError(err)

	s.Require().NotNil(created)
	s.NotEmpty(created.ID)
	s.Equal(created.ID, ident.UserID)
	s.Equal("ana@example.com", created.Email)
	s.NotEqual("secret1", created.PasswordHash)
	s.NoError(bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("secret1")))

	s.Require().Len(s.profiles.initialized, 1)
	s.Equal(*ident, s.profiles.initialized[0])
}

func (s *AuthServiceTestSuite) TestSignupRejectsInvalidInput() {
	cases := map[error]auth.SignupRequest{
		auth.ErrInvalidEmail: {Email: "not-an-email", Password: "secret1", Name: "Ana", Username: "ana"},
		auth.ErrWeakPassword: {Email: "ana@example.com", Password: "12345", Name: "Ana", Username: "ana"},
		auth.ErrMissingName:  {Email: "ana@example.com", Password: "secret1", Name: " ", Username: "ana"},
	}
	for want, req := range cases {
		_, err := s.service.Signup(s.ctx, req)
		s.ErrorIs(err, want)
	}
	s.Empty(s.profiles.initialized)
}

func (s *AuthServiceTestSuite) TestSignupDuplicateEmail() {
	s.mockRepo.EXPECT().GetByEmail(gomock.Any(), "ana@example.com").Return(s.storedCredential("secret1"), nil)

	_, err := s.service.Signup(s.ctx, auth.SignupRequest{
		Email: "ana@example.com", Password: "secret1", Name: "Ana", Username: "ana",
	})
	s.ErrorIs(err, auth.ErrEmailTaken)
	s.Empty(s.profiles.initialized)
}

func (s *AuthServiceTestSuite) TestSignupDuplicateOnInsert() {
	s.mockRepo.EXPECT().GetByEmail(gomock.Any(), gomock.Any()).Return(nil, auth.ErrCredentialNotFound)
	s.mockRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(auth.ErrEmailTaken)

	_, err := s.service.Signup(s.ctx, auth.SignupRequest{
		Email: "ana@example.com", Password: "secret1", Name: "Ana", Username: "ana",
	})
	s.ErrorIs(err, auth.ErrEmailTaken)
}

func (s *AuthServiceTestSuite) TestSignupProfileFailure() {
	s.profiles.err = errors.New("redis down")
	s.mockRepo.EXPECT().GetByEmail(gomock.Any(), gomock.Any()).Return(nil, auth.ErrCredentialNotFound)
	s.mockRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

	_, err := s.service.Signup(s.ctx, auth.SignupRequest{
		Email: "ana@example.com", Password: "secret1", Name: "Ana", Username: "ana",
	})
	s.Error(err)
	s.ErrorIs(err, s.profiles.err)
}

func (s *AuthServiceTestSuite) TestSigninIssuesValidToken() {
	credential := s.storedCredential("secret1")
	s.mockRepo.EXPECT().GetByEmail(gomock.Any(), "ana@example.com").Return(credential, nil)

	token, ident, err := s.service.Signin(s.ctx, auth.SigninRequest{Email: "ANA@example.com", Password: "secret1"})
	s.Require().NoError(err)
	s.NotEmpty(token)
	s.Equal(credential.ID, ident.UserID)

	validated, err := s.service.ValidateToken(token)
	s.Require().NoError(err)
	s.Equal(*ident, *validated)
	s.Equal("ana", validated.Username)
}

func (s *AuthServiceTestSuite) TestSigninWrongPassword() {
	s.mockRepo.EXPECT().GetByEmail(gomock.Any(), gomock.Any()).Return(s.storedCredential("secret1"), nil)

	_, _, err := s.service.Signin(s.ctx, auth.SigninRequest{Email: "ana@example.com", Password: "wrong"})
	s.ErrorIs(err, auth.ErrInvalidCredentials)
}

func (s *AuthServiceTestSuite) TestSigninUnknownEmail() {
	s.mockRepo.EXPECT().GetByEmail(gomock.Any(), gomock.Any()).Return(nil, auth.ErrCredentialNotFound)

	_, _, err := s.service.Signin(s.ctx, auth.SigninRequest{Email: "nobody@example.com", Password: "secret1"})
	s.ErrorIs(err, auth.ErrInvalidCredentials)
}

func (s *AuthServiceTestSuite) TestValidateTokenExpires() {
	s.mockRepo.EXPECT().GetByEmail(gomock.Any(), gomock.Any()).Return(s.storedCredential("secret1"), nil)
	token, _, err := s.service.Signin(s.ctx, auth.SigninRequest{Email: "ana@example.com", Password: "secret1"})
	s.Require().NoError(err)

	s.now = s.now.Add(2 * time.Hour)
	_, err = s.service.ValidateToken(token)
	s.ErrorIs(err, auth.ErrInvalidToken)
}

func (s *AuthServiceTestSuite) TestValidateTokenRejectsForeignTokens() {
	_, err := s.service.ValidateToken("garbage")
	s.ErrorIs(err, auth.ErrInvalidToken)

	claims := &auth.Claims{RegisteredClaims: jwt.RegisteredClaims{
		Subject:   "user-1",
		ExpiresAt: jwt.NewNumericDate(s.now.Add(time.Hour)),
	}}
	otherKey, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("other-secret"))
	s.Require().NoError(err)
	_, err = s.service.ValidateToken(otherKey)
	s.ErrorIs(err, auth.ErrInvalidToken)

	noSubject, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &auth.Claims{RegisteredClaims: jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(s.now.Add(time.Hour)),
	}}).SignedString(s.secret)
	s.Require().NoError(err)
	_, err = s.service.ValidateToken(noSubject)
	s.ErrorIs(err, auth.ErrInvalidToken)
}
