package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/clickerrealm/community-api/internal/core/domain"
	"github.com/clickerrealm/community-api/internal/core/ports"
)

// AuthConfig carries the scalar knobs of the authorization service.
type AuthConfig struct {
	JWTSecret     string
	TokenTTL      time.Duration
	AdminUsername string
	AdminPassword string
}

// AuthService implements login, invite-gated registration, sessions, and
// role/ban administration. It is the sole owner of the credential store and
// the key ledger.
type AuthService struct {
	users    ports.UserRepository
	keys     ports.KeyRepository
	sessions ports.SessionStore
	limiter  ports.LoginLimiter
	audit    ports.AuditRecorder
	cfg      AuthConfig
	log      zerolog.Logger
}

func NewAuthService(
	users ports.UserRepository,
	keys ports.KeyRepository,
	sessions ports.SessionStore,
	limiter ports.LoginLimiter,
	audit ports.AuditRecorder,
	cfg AuthConfig,
	log zerolog.Logger,
) *AuthService {
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = 24 * time.Hour
	}
	return &AuthService{
		users:    users,
		keys:     keys,
		sessions: sessions,
		limiter:  limiter,
		audit:    audit,
		cfg:      cfg,
		log:      log,
	}
}

func (s *AuthService) Login(ctx context.Context, username, password string) (*ports.AuthResult, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	allowed, err := s.limiter.Allow(ctx, username)
	if err != nil {
		s.log.Warn().Err(err).Str("username", username).Msg("login limiter check failed, allowing attempt")
	} else if !allowed {
		return nil, domain.ErrTooManyAttempts
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	if user.IsBanned() {
		return nil, domain.ErrAccountBanned
	}

	if err := s.limiter.Reset(ctx, username); err != nil {
		s.log.Warn().Err(err).Str("username", username).Msg("failed to reset login attempts")
	}

	token, err := s.openSession(ctx, user)
	if err != nil {
		return nil, err
	}

	s.record(user, domain.AuditLogin, "", "")
	s.log.Info().Str("username", username).Msg("user logged in")
	return &ports.AuthResult{Token: token, User: user}, nil
}

// Register redeems the key first (compare-and-set in the ledger), then
// inserts the user. Losing the username race after a successful redemption
// releases the key again, so a rejected registration never burns an invite.
func (s *AuthService) Register(ctx context.Context, username, password, keyValue string) (*ports.AuthResult, error) {
	if username == "" || password == "" || keyValue == "" {
		return nil, domain.ErrMissingField
	}

	userID := uuid.NewString()
	key, err := s.keys.Redeem(ctx, keyValue, userID)
	if err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:           userID,
		Username:     username,
		PasswordHash: string(hash),
		Roles:        []domain.Role{domain.RoleUser},
		Status:       domain.StatusActive,
		JoinDate:     time.Now().UTC(),
	}

	if err := s.users.Insert(ctx, user); err != nil {
		if errors.Is(err, domain.ErrUsernameTaken) {
			if relErr := s.keys.Release(ctx, key.ID); relErr != nil {
				s.log.Error().Err(relErr).Str("key_id", key.ID).Msg("failed to release key after lost username race")
			}
		}
		return nil, err
	}

	token, err := s.openSession(ctx, user)
	if err != nil {
		return nil, err
	}

	s.record(user, domain.AuditRegister, key.ID, "key "+key.Value)
	s.log.Info().Str("username", username).Str("key_id", key.ID).Msg("user registered")
	return &ports.AuthResult{Token: token, User: user}, nil
}

func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if err := s.sessions.Delete(ctx, sessionID); err != nil && !errors.Is(err, domain.ErrSessionExpired) {
		return err
	}
	return nil
}

// Authenticate resolves a bearer token to the live user record. The JWT
// signature proves provenance, the session lookup provides revocation, and
// the user load keeps roles and ban status current rather than frozen in
// the claims.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*domain.User, string, error) {
	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !parsed.Valid {
		return nil, "", domain.ErrSessionExpired
	}

	sessionID, _ := claims["jti"].(string)
	if sessionID == "" {
		return nil, "", domain.ErrSessionExpired
	}

	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, "", err
	}

	user, err := s.users.FindByID(ctx, sess.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, "", domain.ErrSessionExpired
		}
		return nil, "", err
	}

	if user.IsBanned() {
		if revErr := s.sessions.DeleteAllForUser(ctx, user.ID); revErr != nil {
			s.log.Warn().Err(revErr).Str("user_id", user.ID).Msg("failed to revoke sessions of banned user")
		}
		return nil, "", domain.ErrAccountBanned
	}

	return user, sessionID, nil
}

func (s *AuthService) GrantRole(ctx context.Context, actor *domain.User, targetID string, role domain.Role) (*domain.User, error) {
	if actor == nil || !actor.IsAdmin() {
		return nil, domain.ErrUnauthorized
	}
	if !domain.ValidRole(role) {
		return nil, domain.ErrInvalidRole
	}

	target, err := s.users.FindByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	roles := domain.WithRole(target.Roles, role)
	updated, err := s.users.Update(ctx, targetID, ports.UserPatch{Roles: &roles})
	if err != nil {
		return nil, err
	}

	s.record(actor, domain.AuditRoleGrant, targetID, string(role))
	s.log.Info().Str("actor", actor.Username).Str("target_id", targetID).Str("role", string(role)).Msg("role granted")
	return updated, nil
}

func (s *AuthService) RevokeRole(ctx context.Context, actor *domain.User, targetID string, role domain.Role) (*domain.User, error) {
	if actor == nil || !actor.IsAdmin() {
		return nil, domain.ErrUnauthorized
	}
	if !domain.ValidRole(role) {
		return nil, domain.ErrInvalidRole
	}
	if role == domain.RoleAdmin && actor.ID == targetID {
		return nil, domain.ErrCannotSelfDemote
	}

	target, err := s.users.FindByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	roles := domain.WithoutRole(target.Roles, role)
	updated, err := s.users.Update(ctx, targetID, ports.UserPatch{Roles: &roles})
	if err != nil {
		return nil, err
	}

	s.record(actor, domain.AuditRoleRevoke, targetID, string(role))
	s.log.Info().Str("actor", actor.Username).Str("target_id", targetID).Str("role", string(role)).Msg("role revoked")
	return updated, nil
}

func (s *AuthService) SetBanStatus(ctx context.Context, actor *domain.User, targetID string, banned bool) (*domain.User, error) {
	if actor == nil || !actor.IsAdmin() {
		return nil, domain.ErrUnauthorized
	}

	status := domain.StatusActive
	if banned {
		status = domain.StatusBanned
	}

	updated, err := s.users.Update(ctx, targetID, ports.UserPatch{Status: &status})
	if err != nil {
		return nil, err
	}

	// Banning kills every live session of the target, the actor's own
	// included when an admin bans themselves.
	if banned {
		if err := s.sessions.DeleteAllForUser(ctx, targetID); err != nil {
			s.log.Warn().Err(err).Str("user_id", targetID).Msg("failed to revoke sessions on ban")
		}
	}

	s.record(actor, domain.AuditStatusSet, targetID, string(status))
	s.log.Info().Str("actor", actor.Username).Str("target_id", targetID).Str("status", string(status)).Msg("user status changed")
	return updated, nil
}

func (s *AuthService) ListUsers(ctx context.Context, actor *domain.User) ([]*domain.User, error) {
	if actor == nil || !actor.IsAdmin() {
		return nil, domain.ErrUnauthorized
	}
	return s.users.List(ctx)
}

// EnsureBootstrapAdmin inserts the distinguished admin account when the
// credential store lacks it. Called once at startup.
func (s *AuthService) EnsureBootstrapAdmin(ctx context.Context) error {
	_, err := s.users.FindByUsername(ctx, s.cfg.AdminUsername)
	if err == nil {
		return nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(s.cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := &domain.User{
		ID:           "admin-" + s.cfg.AdminUsername,
		Username:     s.cfg.AdminUsername,
		PasswordHash: string(hash),
		Roles:        []domain.Role{domain.RoleUser, domain.RoleAdmin},
		Status:       domain.StatusActive,
		JoinDate:     time.Now().UTC(),
	}

	if err := s.users.Insert(ctx, admin); err != nil {
		// Another replica won the race; the account exists either way.
		if errors.Is(err, domain.ErrUsernameTaken) {
			return nil
		}
		return err
	}

	s.log.Info().Str("username", admin.Username).Msg("bootstrap admin created")
	return nil
}

func (s *AuthService) openSession(ctx context.Context, user *domain.User) (string, error) {
	sess := &ports.Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		Username:  user.Username,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.sessions.Put(ctx, sess); err != nil {
		return "", err
	}

	claims := jwt.MapClaims{
		"jti":      sess.ID,
		"sub":      user.ID,
		"username": user.Username,
		"exp":      time.Now().Add(s.cfg.TokenTTL).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.cfg.JWTSecret))
}

func (s *AuthService) record(actor *domain.User, action domain.AuditAction, targetID, detail string) {
	s.audit.Record(domain.AuditEvent{
		ID:        uuid.NewString(),
		ActorID:   actor.ID,
		Actor:     actor.Username,
		Action:    action,
		TargetID:  targetID,
		Detail:    detail,
		Timestamp: time.Now().UTC(),
	})
}
