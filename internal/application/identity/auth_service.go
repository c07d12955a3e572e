package identity

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/carobar/backend/internal/domain/identity"
	"github.com/carobar/backend/internal/domain/shared"
	"github.com/carobar/backend/internal/infrastructure/auth"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned for an unknown user or a wrong password alike
var ErrInvalidCredentials = shared.NewDomainError(shared.CodeUnauthorized, "Invalid username or password")

// dummyHash is compared against when the user does not exist so both paths cost one bcrypt round
var dummyHash = sync.OnceValue(func() []byte {
	h, _ := bcrypt.GenerateFromPassword([]byte("carobar-unknown-user"), identity.PasswordCost)
	return h
})

// AuthService handles authentication operations
type AuthService struct {
	userRepo    identity.UserRepository
	jwtService  *auth.JWTService
	revocations *auth.Revocations
	logger      *zap.Logger
	now         func() time.Time
}

// NewAuthService creates a new authentication service
func NewAuthService(
	userRepo identity.UserRepository,
	jwtService *auth.JWTService,
	revocations *auth.Revocations,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		jwtService:  jwtService,
		revocations: revocations,
		logger:      logger,
		now:         time.Now,
	}
}

// Login authenticates a user and issues an access token
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	username := strings.ToLower(strings.TrimSpace(input.Username))
	if username == "" || input.Password == "" {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Username and password are required")
	}

	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			s.logger.Error("Failed to load user during login", zap.String("username", username), zap.Error(err))
			return nil, shared.NewInternalError("Failed to sign in", err)
		}
		_ = bcrypt.CompareHashAndPassword(dummyHash(), []byte(input.Password))
		s.logger.Warn("Login attempt for unknown user", zap.String("username", username), zap.String("ip", input.IP))
		return nil, ErrInvalidCredentials
	}

	if !user.CheckPassword(input.Password) {
		s.logger.Warn("Invalid password attempt", zap.String("username", username), zap.String("ip", input.IP))
		return nil, ErrInvalidCredentials
	}

	token, err := s.jwtService.GenerateToken(auth.GenerateTokenInput{
		CompanyID: user.CompanyID,
		UserID:    user.ID,
		Username:  user.Username,
		Role:      user.Role,
	})
	if err != nil {
		s.logger.Error("Failed to generate token", zap.Error(err))
		return nil, shared.NewInternalError("Failed to generate authentication token", err)
	}

	s.logger.Info("User logged in",
		zap.String("user_id", user.ID.String()),
		zap.String("company_id", user.CompanyID.String()))

	return &LoginResult{
		AccessToken: token.AccessToken,
		ExpiresAt:   token.ExpiresAt,
		TokenType:   token.TokenType,
		User:        toUserInfo(user),
	}, nil
}

// Logout revokes the presented token for the rest of its lifetime
func (s *AuthService) Logout(ctx context.Context, input LogoutInput) error {
	ttl := input.ExpiresAt.Sub(s.now())
	if err := s.revocations.Revoke(ctx, input.TokenID, ttl); err != nil {
		s.logger.Error("Failed to revoke token on logout", zap.String("user_id", input.UserID.String()), zap.Error(err))
		return shared.NewInternalError("Failed to sign out", err)
	}

	s.logger.Info("User logged out",
		zap.String("user_id", input.UserID.String()),
		zap.String("company_id", input.CompanyID.String()))
	return nil
}

// CreateUser registers a user for a company
func (s *AuthService) CreateUser(ctx context.Context, input CreateUserInput) (*UserInfo, error) {
	user, err := identity.NewUser(input.CompanyID, input.Username, input.Password, identity.Role(input.RoleID))
	if err != nil {
		return nil, err
	}
	user.DisplayName = strings.TrimSpace(input.DisplayName)

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, shared.ErrAlreadyExists) {
			return nil, shared.NewDomainError(shared.CodeAlreadyExists, "Username "+user.Username+" is already taken")
		}
		return nil, shared.NewInternalError("Failed to create user", err)
	}

	info := toUserInfo(user)
	return &info, nil
}

func toUserInfo(u *identity.User) UserInfo {
	name := u.DisplayName
	if name == "" {
		name = u.Username
	}
	return UserInfo{
		ID:          u.ID,
		CompanyID:   u.CompanyID,
		Username:    u.Username,
		DisplayName: name,
		RoleID:      int(u.Role),
		Role:        u.Role.String(),
	}
}
