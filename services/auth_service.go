package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"mealplanner/models"
	"mealplanner/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ValidationError lists the problems per form field.
type ValidationError struct {
	Fields map[string][]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return "validation failed: " + strings.Join(keys, ", ")
}

// Mailer delivers password reset codes.
type Mailer interface {
	SendResetEmail(ctx context.Context, to, code string) error
}

type AuthResult struct {
	Token string         `json:"token"`
	User  models.Session `json:"user"`
}

type AuthService struct {
	db     *gorm.DB
	log    *zap.Logger
	secret []byte
	ttl    time.Duration
	events Publisher
	mailer Mailer
	now    func() time.Time
}

var _ Mailer = (*utils.SESMailer)(nil)

func NewAuthService(db *gorm.DB, log *zap.Logger, secret []byte, ttl time.Duration, events Publisher, mailer Mailer) *AuthService {
	if log == nil {
		log = zap.NewNop()
	}
	return &AuthService{db: db, log: log, secret: secret, ttl: ttl, events: events, mailer: mailer, now: time.Now}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *AuthService) issue(user *models.User) (*AuthResult, error) {
	token, _, err := utils.GenerateJWT(s.secret, user.UID, user.Email, s.ttl)
	if err != nil {
		return nil, fmt.Errorf("could not generate token: %w", err)
	}
	sess := models.Session{UserID: user.UID, Email: user.Email}
	if s.events != nil {
		s.events.Publish(user.UID, Event{Kind: EventSignedIn, Payload: sess})
	}
	return &AuthResult{Token: token, User: sess}, nil
}

// SignUp creates an account and signs it in.
func (s *AuthService) SignUp(ctx context.Context, email, password, confirm string) (*AuthResult, error) {
	email = normalizeEmail(email)
	if fields := utils.ValidateSignUp(email, password, confirm); len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrEmailTaken
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}
	user := models.User{UID: uuid.NewString(), Email: email, Password: hashed}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	s.log.Info("user registered", zap.String("uid", user.UID))
	return s.issue(&user)
}

// SignIn checks credentials and returns a fresh token.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (*AuthResult, error) {
	email = normalizeEmail(email)
	if r := utils.ValidateEmail(email); !r.IsValid {
		return nil, &ValidationError{Fields: map[string][]string{"email": r.Errors}}
	}

	var user models.User
	err := s.db.WithContext(ctx).Where("email = ? AND disabled = ?", email, false).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !utils.CheckPasswordHash(password, user.Password) {
		return nil, ErrInvalidCredentials
	}
	return s.issue(&user)
}

// SignOut revokes the token the session was authenticated with.
func (s *AuthService) SignOut(ctx context.Context, sess models.Session) error {
	if !sess.Authenticated() || sess.TokenID == "" {
		return ErrNotAuthenticated
	}
	rt := models.RevokedToken{JTI: sess.TokenID, ExpiresAt: s.now().Add(s.ttl)}
	if err := s.db.WithContext(ctx).Where(models.RevokedToken{JTI: rt.JTI}).FirstOrCreate(&rt).Error; err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	if s.events != nil {
		s.events.Publish(sess.UserID, Event{Kind: EventSignedOut, Payload: sess})
	}
	return nil
}

// Authenticate turns a bearer token into a session.
func (s *AuthService) Authenticate(ctx context.Context, token string) (models.Session, error) {
	claims, err := utils.ParseJWT(s.secret, token)
	if err != nil {
		return models.Session{}, fmt.Errorf("%w: %v", ErrNotAuthenticated, err)
	}

	var revoked int64
	if err := s.db.WithContext(ctx).Model(&models.RevokedToken{}).Where("jti = ?", claims.ID).Count(&revoked).Error; err != nil {
		return models.Session{}, err
	}
	if revoked > 0 {
		return models.Session{}, fmt.Errorf("%w: token revoked", ErrNotAuthenticated)
	}

	var user models.User
	if err := s.db.WithContext(ctx).Where("uid = ? AND disabled = ?", claims.Subject, false).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Session{}, fmt.Errorf("%w: user not found", ErrNotAuthenticated)
		}
		return models.Session{}, err
	}
	return models.Session{UserID: user.UID, Email: user.Email, TokenID: claims.ID}, nil
}

// ForgotPassword mails a reset code. Unknown emails succeed silently.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ? AND disabled = ?", normalizeEmail(email), false).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	code, err := utils.GenerateRandomToken(6)
	if err != nil {
		return err
	}
	user.ResetToken = code
	user.ResetTokenExp = s.now().Add(15 * time.Minute)
	if err := s.db.WithContext(ctx).Save(&user).Error; err != nil {
		return err
	}
	if s.mailer == nil {
		s.log.Warn("no mailer configured, reset code not sent", zap.String("uid", user.UID))
		return nil
	}
	return s.mailer.SendResetEmail(ctx, user.Email, user.ResetToken)
}

// ResetPassword swaps the password of the account holding token.
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if token == "" {
		return ErrInvalidResetToken
	}
	if r := utils.ValidatePassword(newPassword); !r.IsValid {
		return &ValidationError{Fields: map[string][]string{"new_password": r.Errors}}
	}

	var user models.User
	err := s.db.WithContext(ctx).Where("reset_token = ?", token).First(&user).Error
	if err != nil || s.now().After(user.ResetTokenExp) {
		return ErrInvalidResetToken
	}

	hashed, err := utils.HashPassword(newPassword)
	if err != nil {
		return err
	}
	user.Password = hashed
	user.ResetToken = ""
	user.ResetTokenExp = time.Time{}
	return s.db.WithContext(ctx).Save(&user).Error
}

// PurgeRevoked removes revocations whose token would have expired anyway.
func (s *AuthService) PurgeRevoked(ctx context.Context) (int64, error) {
	res := s.db.WithContext(ctx).Where("expires_at < ?", s.now()).Delete(&models.RevokedToken{})
	return res.RowsAffected, res.Error
}
