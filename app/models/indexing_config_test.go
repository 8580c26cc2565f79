package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestIndexingConfigTypeEnabled(t *testing.T) {
	config := &IndexingConfig{NftBids: true, BorrowableTokens: true}

	assert.True(t, config.TypeEnabled(TransactionTypeNFTBid))
	assert.False(t, config.TypeEnabled(TransactionTypeTokenPrice))
	assert.True(t, config.TypeEnabled(TransactionTypeBorrowableToken))
	assert.False(t, config.TypeEnabled(TransactionType("TOKEN_SWAP")))
}

func TestIndexingConfigEnabledTypes(t *testing.T) {
	config := &IndexingConfig{NftBids: true, BorrowableTokens: true}
	assert.Equal(t, []TransactionType{
		TransactionTypeNFTBid,
		TransactionTypeBorrowableToken,
	}, config.EnabledTypes())

	empty := &IndexingConfig{}
	assert.Empty(t, empty.EnabledTypes())
}

func TestIndexingConfigAddressesRoundTrip(t *testing.T) {
	config := &IndexingConfig{}
	require.NoError(t, config.SetAddresses([]string{"addr1", "addr2"}))
	assert.Equal(t, []string{"addr1", "addr2"}, config.Addresses())
}

func TestIndexingConfigAddressesMalformed(t *testing.T) {
	config := &IndexingConfig{CustomAddresses: datatypes.JSON(`{"not":"a list"}`)}
	assert.Nil(t, config.Addresses())

	config.CustomAddresses = nil
	assert.Nil(t, config.Addresses())
}

func TestIndexingConfigSelectionEmpty(t *testing.T) {
	config := &IndexingConfig{}
	assert.True(t, config.SelectionEmpty())

	config.TokenPrices = true
	assert.False(t, config.SelectionEmpty())

	config.TokenPrices = false
	require.NoError(t, config.SetAddresses([]string{"addr1"}))
	assert.False(t, config.SelectionEmpty())

	require.NoError(t, config.SetAddresses(nil))
	assert.True(t, config.SelectionEmpty())
}

func TestIndexingConfigValidate(t *testing.T) {
	config := &IndexingConfig{UserID: 1, Name: "bids", NftBids: true}
	assert.NoError(t, config.Validate())

	config.Name = ""
	assert.Error(t, config.Validate())
}
