// Package identity resolves who is using the platform: login, registration,
// logout and the current-session lookup.
package identity

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"time"

	"private-chef-api/models"
	"private-chef-api/store"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

const (
	AdminEmail = "admin@luxeplate.com"
	AdminID    = "admin-id-99"
)

var (
	ErrIdentityNotRecognized = errors.New("identity not recognized")
	ErrInvalidCredentials    = errors.New("invalid email or password")
	ErrEmailRegistered       = errors.New("email already registered")
	ErrInvalidRole           = errors.New("role must be DINER or CHEF")
	ErrNoSession             = errors.New("no active session")
	ErrAdminPasswordRequired = errors.New("admin account has no password set")
)

type Service struct {
	store         *store.Store
	adminPassword string
	now           func() time.Time
}

func NewService(s *store.Store, adminPassword string) *Service {
	return &Service{store: s, adminPassword: adminPassword, now: time.Now}
}

// EnsureAdmin provisions the platform director account if it is missing.
// Without a configured password a random one is generated and logged once.
func (s *Service) EnsureAdmin(ctx context.Context) error {
	if _, ok := s.store.FindUserByEmail(ctx, AdminEmail); ok {
		return nil
	}
	admin := models.User{
		ID:              AdminID,
		Name:            "System Director",
		Email:           AdminEmail,
		Role:            models.RoleAdmin,
		Avatar:          "https://ui-avatars.com/api/?name=Admin&background=0f172a&color=d4af37",
		FavoriteChefIDs: []string{},
	}
	password := s.adminPassword
	if password == "" {
		password = strings.ReplaceAll(uuid.NewString(), "-", "")
		logrus.WithField("email", AdminEmail).Warnf("ADMIN_PASSWORD not set, generated admin password: %s", password)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin.PasswordHash = string(hash)
	return s.store.Users.Save(ctx, admin)
}

// Login opens a session for the user registered under email. Accounts that
// carry a password hash must present the matching password. Legacy diner and
// chef rows stored without one are let in on email alone; admin rows never are.
func (s *Service) Login(ctx context.Context, email, password string) (models.User, models.Session, error) {
	if err := s.EnsureAdmin(ctx); err != nil {
		return models.User{}, models.Session{}, err
	}

	user, ok := s.store.FindUserByEmail(ctx, email)
	if !ok {
		return models.User{}, models.Session{}, ErrIdentityNotRecognized
	}

	if user.PasswordHash != "" {
		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
			return models.User{}, models.Session{}, ErrInvalidCredentials
		}
	} else if user.Role == models.RoleAdmin {
		return models.User{}, models.Session{}, ErrAdminPasswordRequired
	} else {
		logrus.WithField("user_id", user.ID).Warn("login accepted without password check: account has no stored hash")
	}

	user.LastActive = s.now().UTC().Format(time.RFC3339)
	if err := s.store.Users.Save(ctx, user); err != nil {
		return models.User{}, models.Session{}, err
	}

	session, err := s.openSession(ctx, user)
	if err != nil {
		return models.User{}, models.Session{}, err
	}
	return user.Public(), session, nil
}

// Register creates a new account and signs it in.
func (s *Service) Register(ctx context.Context, name, email, password string, role models.UserRole) (models.User, models.Session, error) {
	if role == "" {
		role = models.RoleDiner
	}
	if role != models.RoleDiner && role != models.RoleChef {
		return models.User{}, models.Session{}, ErrInvalidRole
	}
	if _, exists := s.store.FindUserByEmail(ctx, email); exists {
		return models.User{}, models.Session{}, ErrEmailRegistered
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, models.Session{}, err
	}

	user := models.User{
		ID:              uuid.NewString(),
		Name:            name,
		Email:           email,
		Role:            role,
		Avatar:          AvatarURL(name),
		FavoriteChefIDs: []string{},
		PasswordHash:    string(hash),
	}
	if err := s.store.Users.Save(ctx, user); err != nil {
		return models.User{}, models.Session{}, err
	}

	session, err := s.openSession(ctx, user)
	if err != nil {
		return models.User{}, models.Session{}, err
	}
	return user.Public(), session, nil
}

// CurrentUser returns the user snapshot held by the session.
func (s *Service) CurrentUser(ctx context.Context, sessionID string) (models.User, error) {
	session, ok := s.store.Sessions.Get(ctx, sessionID)
	if !ok {
		return models.User{}, ErrNoSession
	}
	return session.User, nil
}

// UpdateCurrentUser persists profile edits and refreshes the session snapshot.
func (s *Service) UpdateCurrentUser(ctx context.Context, sessionID string, user models.User) (models.User, error) {
	session, ok := s.store.Sessions.Get(ctx, sessionID)
	if !ok {
		return models.User{}, ErrNoSession
	}
	stored, ok := s.store.Users.Get(ctx, session.User.ID)
	if !ok {
		return models.User{}, ErrIdentityNotRecognized
	}

	// identity fields stay with the stored record
	user.ID = stored.ID
	user.Role = stored.Role
	user.PasswordHash = stored.PasswordHash
	if user.FavoriteChefIDs == nil {
		user.FavoriteChefIDs = []string{}
	}
	if err := s.store.Users.Save(ctx, user); err != nil {
		return models.User{}, err
	}

	session.User = user.Public()
	if err := s.store.Sessions.Save(ctx, session); err != nil {
		return models.User{}, err
	}
	return session.User, nil
}

func (s *Service) Logout(ctx context.Context, sessionID string) error {
	_, err := s.store.Sessions.Remove(ctx, sessionID)
	return err
}

func (s *Service) openSession(ctx context.Context, user models.User) (models.Session, error) {
	session := models.Session{
		ID:        uuid.NewString(),
		User:      user.Public(),
		CreatedAt: s.now().UTC().Format(time.RFC3339),
	}
	if err := s.store.Sessions.Save(ctx, session); err != nil {
		return models.Session{}, err
	}
	return session, nil
}

// AvatarURL builds the generated initials avatar for a display name.
func AvatarURL(name string) string {
	return "https://ui-avatars.com/api/?name=" + url.QueryEscape(strings.TrimSpace(name)) + "&background=d4af37&color=fff"
}
