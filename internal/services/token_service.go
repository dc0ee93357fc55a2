package services

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base32"
	"encoding/hex"
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "fittrack/internal/errors"
	"fittrack/internal/models"
)

// tokenEntropyBytes is the amount of randomness in every plaintext token.
const tokenEntropyBytes = 16

// tokenService issues opaque bearer tokens and resolves them back to users.
type tokenService struct {
	db  *gorm.DB
	now func() time.Time
}

// NewTokenService creates a new TokenServicer.
func NewTokenService(db *gorm.DB) TokenServicer {
	return &tokenService{db: db, now: func() time.Time { return time.Now().UTC() }}
}

// HashToken returns the hex SHA-256 digest stored in place of a plaintext token.
func HashToken(plaintext string) string {
	sum := sha256.Sum256([]byte(plaintext))
	return hex.EncodeToString(sum[:])
}

// Issue creates a token for the user and returns its plaintext. The
// plaintext is never stored and cannot be recovered later.
func (s *tokenService) Issue(userID string, ttl time.Duration, scope models.TokenScope) (string, *models.Token, error) {
	buf := make([]byte, tokenEntropyBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	plaintext := base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(buf)

	token := &models.Token{
		Hash:   HashToken(plaintext),
		UserID: userID,
		Expiry: s.now().Add(ttl),
		Scope:  scope,
	}
	if err := s.db.Create(token).Error; err != nil {
		return "", nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return plaintext, token, nil
}

// UserForToken returns the active user owning an unexpired token of the scope.
func (s *tokenService) UserForToken(scope models.TokenScope, plaintext string) (*models.User, error) {
	if plaintext == "" {
		return nil, apperrors.ErrInvalidToken
	}

	var token models.Token
	err := s.db.Preload("User").
		Where("hash = ? AND scope = ?", HashToken(plaintext), scope).
		First(&token).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvalidToken
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if token.Expired(s.now()) || token.User == nil || !token.User.Active {
		return nil, apperrors.ErrInvalidToken
	}

	return token.User, nil
}

// DeleteAllForUser revokes every token of the scope held by the user.
func (s *tokenService) DeleteAllForUser(scope models.TokenScope, userID string) error {
	if err := s.db.Where("scope = ? AND user_id = ?", scope, userID).Delete(&models.Token{}).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// DeleteExpired prunes the user's expired tokens of any scope.
func (s *tokenService) DeleteExpired(userID string) (int64, error) {
	result := s.db.Where("user_id = ? AND expiry <= ?", userID, s.now()).Delete(&models.Token{})
	if result.Error != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	return result.RowsAffected, nil
}
