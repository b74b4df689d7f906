package store

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jinzhu/gorm"
	"github.com/lib/pq"

	"github.com/dumpwatch/dumpwatch-api/schema"
)

const uniqueViolationCode = "23505"

var (
	ErrEmailTaken      = fmt.Errorf("this email is already registered")
	ErrAccountNotFound = fmt.Errorf("account not found")
)

// normalizeEmail makes lookups insensitive to surrounding spaces and case
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// CreateAccount registers an identity with an already hashed password
func (s *IdentityStore) CreateAccount(email, passwordHash, displayName string) (*schema.Account, error) {
	a := schema.Account{
		ID:           uuid.New(),
		Email:        normalizeEmail(email),
		PasswordHash: passwordHash,
		DisplayName:  displayName,
	}

	if err := s.ormDB.Create(&a).Error; err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == uniqueViolationCode {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	return &a, nil
}

// GetAccount returns an account by its id
func (s *IdentityStore) GetAccount(id string) (*schema.Account, error) {
	accountID, err := parseAccountID(id)
	if err != nil {
		return nil, err
	}

	var a schema.Account
	if err := s.ormDB.Where("id = ?", accountID).First(&a).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return &a, nil
}

// GetAccountByEmail returns an account by its email
func (s *IdentityStore) GetAccountByEmail(email string) (*schema.Account, error) {
	var a schema.Account
	if err := s.ormDB.Where("email = ?", normalizeEmail(email)).First(&a).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return &a, nil
}

// DeleteAccount removes an identity permanently. Reports and the profile
// document are left untouched.
func (s *IdentityStore) DeleteAccount(id string) error {
	accountID, err := parseAccountID(id)
	if err != nil {
		return err
	}

	result := s.ormDB.Delete(schema.Account{}, "id = ?", accountID)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrAccountNotFound
	}

	return nil
}
