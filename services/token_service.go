package services

import (
	"errors"
	"time"

	"github.com/99hyeon/beour-be/models"
	"github.com/99hyeon/beour-be/utils"

	"github.com/kataras/iris/v12/middleware/jwt"
	"gorm.io/gorm"
)

// RefreshTokenStore is the active-token set consulted on reissue. The Redis
// implementation lives in the storage package.
type RefreshTokenStore interface {
	Save(loginID, token string, ttl time.Duration) error
	Exists(token string) (bool, error)
	Delete(token string) error
}

// TokenService covers account recovery and refresh-token rotation.
type TokenService struct {
	DB     *gorm.DB
	Tokens RefreshTokenStore
}

func NewTokenService(db *gorm.DB, tokens RefreshTokenStore) *TokenService {
	return &TokenService{DB: db, Tokens: tokens}
}

// FindLoginID recovers a login id from the user's name, phone and email.
func (s *TokenService) FindLoginID(name, phone, email string) (string, error) {
	var user models.User
	err := s.DB.
		Where("name = ? AND phone = ? AND email = ?", name, phone, email).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrUserNotFound
		}
		return "", err
	}

	return user.LoginID, nil
}

// ResetPassword verifies the full identity tuple against a live account,
// replaces the password with a random temporary one and returns the
// plaintext. Only the bcrypt hash is persisted.
func (s *TokenService) ResetPassword(loginID, name, phone, email string) (string, error) {
	var user models.User
	err := s.DB.
		Where("login_id = ? AND name = ? AND phone = ? AND email = ?",
			loginID, name, phone, email).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrUserNotFound
		}
		return "", err
	}

	tempPassword, err := utils.GenerateTempPassword(10)
	if err != nil {
		return "", err
	}

	hashed, err := utils.HashAndSaltPassword(tempPassword)
	if err != nil {
		return "", err
	}

	if err := s.DB.Model(&user).Update("password", hashed).Error; err != nil {
		return "", err
	}

	return tempPassword, nil
}

// Reissue validates an incoming refresh credential and rotates it: a new
// access/refresh pair is issued, the old stored token is deleted and the new
// one saved. The old token is single-use; the delete and the save are two
// separate store operations, so a crash in between forces the client to log
// in again.
func (s *TokenService) Reissue(refresh string) (*utils.TokenPair, error) {
	if refresh == "" {
		return nil, ErrRefreshTokenNotFound
	}

	claims, err := utils.VerifyRefreshToken(refresh)
	if err != nil {
		if errors.Is(err, jwt.ErrExpired) {
			return nil, ErrRefreshTokenExpired
		}
		return nil, ErrRefreshTokenNotFound
	}

	if claims.Category != utils.TokenCategoryRefresh {
		return nil, ErrRefreshTokenNotFound
	}

	active, err := s.Tokens.Exists(refresh)
	if err != nil {
		return nil, err
	}
	if !active {
		return nil, ErrRefreshTokenNotFound
	}

	pair, err := utils.CreateTokenPair(claims.LoginID, claims.Role)
	if err != nil {
		return nil, err
	}

	if err := s.Tokens.Delete(refresh); err != nil {
		return nil, err
	}
	if err := s.Tokens.Save(claims.LoginID, pair.RefreshToken, utils.RefreshTokenTTL); err != nil {
		return nil, err
	}

	return pair, nil
}
