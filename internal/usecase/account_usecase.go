package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/gabinork/Gabi-Nork-Tech-2/internal/domain"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

const AdminDisplayName = "Administrator"

var _ domain.AccountUseCase = (*accountUseCase)(nil)

type accountUseCase struct {
	sessions          domain.SessionUseCase
	adminEmail        string
	adminPasswordHash []byte
	log               *logrus.Logger
}

// NewAccountUseCase hashes the admin password once; it is never kept in clear.
func NewAccountUseCase(sessions domain.SessionUseCase, adminEmail, adminPassword string, logger *logrus.Logger) (domain.AccountUseCase, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash admin password: %w", err)
	}
	return &accountUseCase{
		sessions:          sessions,
		adminEmail:        strings.ToLower(strings.TrimSpace(adminEmail)),
		adminPasswordHash: hash,
		log:               logger,
	}, nil
}

func (uc *accountUseCase) Register(_ context.Context, registration domain.Registration) error {
	if strings.TrimSpace(registration.Name) == "" {
		return errors.New("invalid registration: name cannot be empty")
	}
	if !isValidEmail(registration.Email) {
		return errors.New("invalid registration: invalid email format")
	}
	if registration.Password != registration.ConfirmPassword {
		return errors.New("invalid registration: passwords do not match")
	}
	if err := validatePassword(registration.Password); err != nil {
		return fmt.Errorf("invalid registration: %w", err)
	}
	uc.log.Infof("Use Case: Registration accepted for %s", registration.Email)
	return nil
}

func (uc *accountUseCase) AdminLogin(ctx context.Context, clientID, email, password string) (*domain.Identity, error) {
	if strings.ToLower(strings.TrimSpace(email)) != uc.adminEmail {
		uc.log.Warnf("Use Case: Admin login rejected for %s", email)
		return nil, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(uc.adminPasswordHash, []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			uc.log.Warnf("Use Case: Admin login rejected for %s", email)
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to verify admin password: %w", err)
	}
	identity := uc.sessions.Login(ctx, clientID, strings.TrimSpace(email), AdminDisplayName)
	return &identity, nil
}

func isValidEmail(email string) bool {
	parts := strings.Split(strings.TrimSpace(email), "@")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return false
	}
	domainParts := strings.Split(parts[1], ".")
	return len(domainParts) >= 2 && domainParts[0] != "" && domainParts[len(domainParts)-1] != ""
}

func validatePassword(password string) error {
	if len(password) < 8 {
		return errors.New("password must be at least 8 characters long")
	}
	hasUpper := false
	hasLower := false
	hasDigit := false
	for _, char := range password {
		switch {
		case unicode.IsUpper(char):
			hasUpper = true
		case unicode.IsLower(char):
			hasLower = true
		case unicode.IsDigit(char):
			hasDigit = true
		}
	}
	if !hasUpper {
		return errors.New("password must contain at least one uppercase letter")
	}
	if !hasLower {
		return errors.New("password must contain at least one lowercase letter")
	}
	if !hasDigit {
		return errors.New("password must contain at least one digit")
	}
	return nil
}
