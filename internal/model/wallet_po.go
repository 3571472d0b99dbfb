package model

import (
	"database/sql"
	"time"
)

// Wallets corresponds to the wallets table. Each row is one everpay account
// whose key signs everpay messages and deposit transactions.
type Wallets struct {
	Id                  int64          `gorm:"column:id;primaryKey;autoIncrement"`
	Address             string         `gorm:"column:address;uniqueIndex;size:128"`
	ChainType           string         `gorm:"column:chain_type;size:32"`
	Name                string         `gorm:"column:name;size:128"`
	EncryptedPrivateKey string         `gorm:"column:encrypted_private_key"`
	PhoneNumber         sql.NullString `gorm:"column:phone_number"`
	Email               sql.NullString `gorm:"column:email"`
	CreatedAt           time.Time      `gorm:"column:created_at"`
	UpdatedAt           time.Time      `gorm:"column:updated_at"`
}

func (Wallets) TableName() string {
	return "wallets"
}
