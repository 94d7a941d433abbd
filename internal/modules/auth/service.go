package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"fikhidmatik/internal/domain"
)

type Service struct {
	users         UserRepository
	refreshTokens RefreshTokenRepository
	jwt           tokenGenerator

	refreshTokenPepper string
	refreshTTL         time.Duration
}

type LoginResult struct {
	User         *domain.User
	AccessToken  string
	RefreshToken string
}

func NewService(
	users UserRepository,
	refreshTokens RefreshTokenRepository,
	jwt tokenGenerator,
	refreshTokenPepper string,
	refreshTTL time.Duration,
) *Service {
	return &Service{
		users:              users,
		refreshTokens:      refreshTokens,
		jwt:                jwt,
		refreshTokenPepper: refreshTokenPepper,
		refreshTTL:         refreshTTL,
	}
}

func (s *Service) Register(ctx context.Context, req RegisterRequest) (*domain.User, error) {
	if err := s.validateUnique(ctx, req.Email, req.Phone); err != nil {
		return nil, err
	}

	hashed, err := hashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	role := domain.UserRole(req.Role)
	if role == "" {
		role = domain.RoleCustomer
	}
	lang := req.PreferredLanguage
	if lang == "" {
		lang = "fr"
	}

	user := &domain.User{
		Email:             strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:             req.Phone,
		PasswordHash:      hashed,
		FullName:          req.FullName,
		Role:              role,
		IsActive:          true,
		PreferredLanguage: lang,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrEmailExists
		}
		return nil, err
	}

	user.PasswordHash = ""
	return user, nil
}

// RegisterArtisan creates the user, its artisan profile and the initial
// services in one transaction.
func (s *Service) RegisterArtisan(ctx context.Context, req RegisterArtisanRequest) (*domain.User, error) {
	if err := s.validateUnique(ctx, req.User.Email, req.User.Phone); err != nil {
		return nil, err
	}

	hashed, err := hashPassword(req.User.Password)
	if err != nil {
		return nil, err
	}

	lang := req.User.PreferredLanguage
	if lang == "" {
		lang = "fr"
	}

	user := &domain.User{
		Email:             strings.ToLower(strings.TrimSpace(req.User.Email)),
		Phone:             req.User.Phone,
		PasswordHash:      hashed,
		FullName:          req.User.FullName,
		Role:              domain.RoleArtisan,
		IsActive:          true,
		PreferredLanguage: lang,
	}

	err = s.users.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}

		radius := req.Artisan.ServiceRadiusKm
		if radius <= 0 {
			radius = 20
		}

		artisan := &domain.Artisan{
			UserID:          user.ID,
			Bio:             req.Artisan.Bio,
			ExperienceYears: req.Artisan.ExperienceYears,
			City:            req.Artisan.City,
			Address:         req.Artisan.Address,
			Latitude:        req.Artisan.Latitude,
			Longitude:       req.Artisan.Longitude,
			ServiceRadiusKm: radius,
			IsAvailable:     true,
			WorkingHours:    req.Artisan.WorkingHours,
		}
		if err := tx.Create(artisan).Error; err != nil {
			return err
		}

		for _, sv := range req.Artisan.Services {
			priceType := domain.PriceType(sv.PriceType)
			if priceType == "" {
				priceType = domain.PriceFixed
			}
			service := &domain.ArtisanService{
				ArtisanID:   artisan.ID,
				Category:    sv.Category,
				Name:        sv.Name,
				Description: sv.Description,
				PriceMin:    sv.PriceMin,
				PriceMax:    sv.PriceMax,
				PriceType:   priceType,
			}
			if err := tx.Create(service).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrEmailExists
		}
		return nil, err
	}

	user.PasswordHash = ""
	return user, nil
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, ErrAccountInactive
	}

	access, err := s.jwt.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, err
	}

	refresh, err := s.issueRefreshToken(ctx, user.ID, nil)
	if err != nil {
		return nil, err
	}

	user.PasswordHash = ""
	return &LoginResult{User: user, AccessToken: access, RefreshToken: refresh}, nil
}

// Refresh rotates the refresh token: the presented token is revoked and
// replaced. Presenting an already-revoked token revokes the whole user's
// tokens, since it means the token leaked or was replayed.
func (s *Service) Refresh(ctx context.Context, raw string) (*TokenPair, error) {
	hash := hashTokenWithPepper(raw, s.refreshTokenPepper)

	current, err := s.refreshTokens.GetByHash(ctx, hash)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidRefreshToken
		}
		return nil, err
	}

	now := time.Now().UTC()
	if current.IsExpired(now) {
		return nil, ErrInvalidRefreshToken
	}
	if current.IsRevoked() {
		_ = s.refreshTokens.RevokeByUser(ctx, current.UserID)
		return nil, ErrInvalidRefreshToken
	}

	user, err := s.users.GetByID(ctx, current.UserID)
	if err != nil {
		return nil, ErrInvalidRefreshToken
	}
	if !user.IsActive {
		return nil, ErrAccountInactive
	}

	access, err := s.jwt.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, err
	}

	newRaw, err := s.issueRefreshToken(ctx, user.ID, &current.ID)
	if err != nil {
		return nil, err
	}

	return &TokenPair{AccessToken: access, RefreshToken: newRaw, TokenType: "bearer"}, nil
}

func (s *Service) GetCurrentUser(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = ""
	return user, nil
}

// issueRefreshToken creates a new opaque token. When replaces is given the
// presented token is rotated out atomically with the insert.
func (s *Service) issueRefreshToken(ctx context.Context, userID int64, replaces *int64) (string, error) {
	raw, hash, err := generateOpaqueToken(s.refreshTokenPepper)
	if err != nil {
		return "", err
	}

	token := &domain.RefreshToken{
		UserID:    userID,
		TokenHash: hash,
		ExpiresAt: time.Now().UTC().Add(s.refreshTTL),
	}

	if replaces != nil {
		if err := s.refreshTokens.Rotate(ctx, *replaces, token); err != nil {
			return "", err
		}
		return raw, nil
	}
	if err := s.refreshTokens.Create(ctx, token); err != nil {
		return "", err
	}
	return raw, nil
}

func (s *Service) validateUnique(ctx context.Context, email, phone string) error {
	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return err
	}
	if exists {
		return ErrEmailExists
	}

	if phone != "" {
		exists, err = s.users.ExistsByPhone(ctx, phone)
		if err != nil {
			return err
		}
		if exists {
			return ErrPhoneExists
		}
	}
	return nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func generateOpaqueToken(pepper string) (raw string, hash string, err error) {
	buf := make([]byte, 32)
	if _, err = rand.Read(buf); err != nil {
		return "", "", err
	}
	raw = hex.EncodeToString(buf)
	hash = hashTokenWithPepper(raw, pepper)
	return raw, hash, nil
}

func hashTokenWithPepper(raw, pepper string) string {
	sum := sha256.Sum256([]byte(raw + pepper))
	return hex.EncodeToString(sum[:])
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed") ||
		strings.Contains(err.Error(), "23505")
}
