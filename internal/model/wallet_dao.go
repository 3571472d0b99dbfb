package model

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
)

var ErrNotFound = gorm.ErrRecordNotFound

// WalletsDao defines the interface for database operations on the wallets table.
type WalletsDao interface {
	Insert(ctx context.Context, data *Wallets) error
	FindOneByAddress(ctx context.Context, address string) (*Wallets, error)
	FindAll(ctx context.Context) ([]*Wallets, error)
}

type walletsDao struct {
	db *gorm.DB
}

// NewWalletsDao creates a new instance of WalletsDao.
func NewWalletsDao(db *gorm.DB) WalletsDao {
	return &walletsDao{
		db: db,
	}
}

// Migrate creates or updates the wallets table.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Wallets{})
}

// Insert adds a new record to the wallets table. Addresses are stored lower-cased.
func (d *walletsDao) Insert(ctx context.Context, data *Wallets) error {
	data.Address = strings.ToLower(data.Address)
	return d.db.WithContext(ctx).Create(data).Error
}

// FindOneByAddress retrieves a single wallet record by its address, ignoring case.
func (d *walletsDao) FindOneByAddress(ctx context.Context, address string) (*Wallets, error) {
	var resp Wallets
	err := d.db.WithContext(ctx).Where("address = ?", strings.ToLower(address)).First(&resp).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &resp, nil
}

// FindAll retrieves all wallet records.
func (d *walletsDao) FindAll(ctx context.Context) ([]*Wallets, error) {
	var wallets []*Wallets
	err := d.db.WithContext(ctx).Order("id").Find(&wallets).Error
	if err != nil {
		return nil, err
	}
	return wallets, nil
}
