package models

import (
	"encoding/json"
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// IndexingConfig describes which transaction types and custom addresses a
// user wants indexed. WebhookID holds the external subscription handle that
// materializes this selection at the provider.
type IndexingConfig struct {
	ID               uint           `gorm:"primaryKey" json:"id"`
	UserID           uint           `gorm:"index;not null" json:"user_id"`
	Name             string         `gorm:"type:varchar(150)" json:"name" validate:"required,min=1,max=150"`
	NftBids          bool           `gorm:"default:false" json:"nft_bids"`
	TokenPrices      bool           `gorm:"default:false" json:"token_prices"`
	BorrowableTokens bool           `gorm:"default:false" json:"borrowable_tokens"`
	CustomAddresses  datatypes.JSON `gorm:"type:json" json:"custom_addresses"`
	WebhookID        string         `gorm:"type:varchar(100)" json:"webhook_id,omitempty"`
	IsActive         bool           `gorm:"default:false;index" json:"is_active"`
	CreatedAt        time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`
}

func (c *IndexingConfig) Validate() error {
	v := validator.New()

	return v.Struct(c)
}

// TypeEnabled reports whether the given transaction type is selected.
func (c *IndexingConfig) TypeEnabled(t TransactionType) bool {
	switch t {
	case TransactionTypeNFTBid:
		return c.NftBids
	case TransactionTypeTokenPrice:
		return c.TokenPrices
	case TransactionTypeBorrowableToken:
		return c.BorrowableTokens
	default:
		return false
	}
}

// EnabledTypes returns the selected transaction types in a stable order.
func (c *IndexingConfig) EnabledTypes() []TransactionType {
	var types []TransactionType
	for _, t := range AllTransactionTypes() {
		if c.TypeEnabled(t) {
			types = append(types, t)
		}
	}
	return types
}

// Addresses decodes the custom address list. A missing or malformed column
// yields an empty list rather than an error; addresses are advisory input.
func (c *IndexingConfig) Addresses() []string {
	if len(c.CustomAddresses) == 0 {
		return nil
	}
	var addrs []string
	if err := json.Unmarshal(c.CustomAddresses, &addrs); err != nil {
		return nil
	}
	return addrs
}

// SetAddresses encodes the custom address list into the JSON column.
func (c *IndexingConfig) SetAddresses(addrs []string) error {
	if addrs == nil {
		addrs = []string{}
	}
	raw, err := json.Marshal(addrs)
	if err != nil {
		return err
	}
	c.CustomAddresses = datatypes.JSON(raw)
	return nil
}

// SelectionEmpty reports whether neither a transaction type nor a custom
// address is selected. Such a config would never index anything.
func (c *IndexingConfig) SelectionEmpty() bool {
	return !c.NftBids && !c.TokenPrices && !c.BorrowableTokens && len(c.Addresses()) == 0
}
