package store

import (
	"github.com/google/uuid"
	"github.com/jinzhu/gorm"

	"github.com/dumpwatch/dumpwatch-api/schema"
)

// IdentityCore is the email / password identity service
type IdentityCore interface {
	Ping() error

	// Account
	CreateAccount(email, passwordHash, displayName string) (*schema.Account, error)
	GetAccount(id string) (*schema.Account, error)
	GetAccountByEmail(email string) (*schema.Account, error)
	DeleteAccount(id string) error
}

// IdentityStore is an implementation of IdentityCore on top of postgres
type IdentityStore struct {
	ormDB *gorm.DB
}

func NewIdentityStore(ormDB *gorm.DB) *IdentityStore {
	return &IdentityStore{
		ormDB: ormDB,
	}
}

// Ping is to check the storage health status
func (s *IdentityStore) Ping() error {
	return s.ormDB.DB().Ping()
}

func parseAccountID(id string) (uuid.UUID, error) {
	accountID, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, ErrAccountNotFound
	}
	return accountID, nil
}
