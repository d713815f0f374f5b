package identity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	domainidentity "github.com/freshmart/backend/internal/domain/identity"
	"github.com/freshmart/backend/internal/domain/shared"
	"github.com/freshmart/backend/internal/domain/vendor"
)

// TokenPair holds an issued access/refresh token pair
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64
}

// TokenIssuer mints token pairs for authenticated users
type TokenIssuer interface {
	GenerateTokenPair(userID uuid.UUID, email string, role domainidentity.Role, vendorID *uuid.UUID) (*TokenPair, error)
}

// TokenRevoker invalidates issued tokens until their natural expiry
type TokenRevoker interface {
	Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error
}

// RefreshVerifier checks a refresh token and reports the user it was issued to
type RefreshVerifier interface {
	VerifyRefreshToken(token string) (uuid.UUID, error)
}

// AuthService handles registration, login, logout and profile reads
type AuthService struct {
	users    domainidentity.UserRepository
	vendors  vendor.ProfileRepository
	tokens   TokenIssuer
	refresh  RefreshVerifier
	revoker  TokenRevoker
	eventBus shared.EventBus
	logger   *zap.Logger
}

// NewAuthService creates an auth service
func NewAuthService(
	users domainidentity.UserRepository,
	vendors vendor.ProfileRepository,
	tokens TokenIssuer,
	refresh RefreshVerifier,
	revoker TokenRevoker,
	eventBus shared.EventBus,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		users:    users,
		vendors:  vendors,
		tokens:   tokens,
		refresh:  refresh,
		revoker:  revoker,
		eventBus: eventBus,
		logger:   logger,
	}
}

// Register creates a user account. VENDOR registrations also create a
// pending vendor profile that an admin must approve before the vendor
// may list products.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	role := domainidentity.Role(req.Role)
	if role == domainidentity.RoleAdmin {
		return nil, shared.NewDomainError(shared.ErrCodeForbidden, "admin accounts cannot be self-registered")
	}

	exists, err := s.users.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewAlreadyExistsError("email")
	}

	user, err := domainidentity.NewUser(req.Email, req.Password, req.Name, role)
	if err != nil {
		return nil, err
	}

	var profile *vendor.Profile
	if role == domainidentity.RoleVendor {
		profile, err = vendor.NewProfile(user.ID, req.ShopName, req.Description)
		if err != nil {
			return nil, err
		}
	}

	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}
	if profile != nil {
		if err := s.vendors.Save(ctx, profile); err != nil {
			return nil, err
		}
	}

	if err := s.eventBus.Publish(ctx, user.DomainEvents()...); err != nil {
		s.logger.Warn("failed to publish registration events", zap.Error(err))
	}
	user.ClearDomainEvents()

	return s.buildAuthResponse(user, profile)
}

// Login authenticates a user by email and password
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	user, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		// Same error for unknown email and bad password
		return nil, shared.NewDomainError(shared.ErrCodeUnauthorized, "invalid email or password")
	}
	if !user.VerifyPassword(req.Password) {
		return nil, shared.NewDomainError(shared.ErrCodeUnauthorized, "invalid email or password")
	}

	profile, err := s.vendorProfileFor(ctx, user)
	if err != nil {
		return nil, err
	}
	return s.buildAuthResponse(user, profile)
}

// Refresh exchanges a valid refresh token for a fresh token pair
func (s *AuthService) Refresh(ctx context.Context, req RefreshRequest) (*AuthResponse, error) {
	userID, err := s.refresh.VerifyRefreshToken(req.RefreshToken)
	if err != nil {
		return nil, shared.NewDomainError(shared.ErrCodeUnauthorized, "invalid refresh token")
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, shared.NewDomainError(shared.ErrCodeUnauthorized, "invalid refresh token")
	}

	profile, err := s.vendorProfileFor(ctx, user)
	if err != nil {
		return nil, err
	}
	return s.buildAuthResponse(user, profile)
}

// Logout revokes the presented token until it would have expired
func (s *AuthService) Logout(ctx context.Context, tokenID string, expiresAt time.Time) error {
	if tokenID == "" {
		return shared.NewValidationError("token id is required")
	}
	return s.revoker.Revoke(ctx, tokenID, expiresAt)
}

// Profile returns the caller's account together with the views the
// session may open.
func (s *AuthService) Profile(ctx context.Context, principal Principal) (*ProfileResponse, error) {
	user, err := s.users.FindByID(ctx, principal.UserID)
	if err != nil {
		return nil, err
	}
	profile, err := s.vendorProfileFor(ctx, user)
	if err != nil {
		return nil, err
	}

	vendorApproved := profile != nil && profile.IsApproved()
	permitted := domainidentity.PermittedViews(user.Role, vendorApproved, true)
	views := make([]string, 0, len(permitted))
	for view := range permitted {
		views = append(views, string(view))
	}

	return &ProfileResponse{
		User:           toUserResponse(user),
		Vendor:         toVendorSummary(profile),
		PermittedViews: views,
	}, nil
}

func (s *AuthService) vendorProfileFor(ctx context.Context, user *domainidentity.User) (*vendor.Profile, error) {
	if !user.IsVendor() {
		return nil, nil
	}
	profile, err := s.vendors.FindByUserID(ctx, user.ID)
	if err != nil {
		// a vendor account without a profile row still may log in
		if errors.Is(err, shared.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return profile, nil
}

func (s *AuthService) buildAuthResponse(user *domainidentity.User, profile *vendor.Profile) (*AuthResponse, error) {
	var vendorID *uuid.UUID
	if profile != nil {
		id := profile.ID
		vendorID = &id
	}

	pair, err := s.tokens.GenerateTokenPair(user.ID, user.Email, user.Role, vendorID)
	if err != nil {
		return nil, shared.NewDomainError(shared.ErrCodeInternal, "failed to issue tokens")
	}

	return &AuthResponse{
		User:         toUserResponse(user),
		Vendor:       toVendorSummary(profile),
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresIn:    pair.ExpiresIn,
	}, nil
}
