package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransactionTypeTargetTable(t *testing.T) {
	cases := []struct {
		transactionType TransactionType
		table           string
	}{
		{TransactionTypeNFTBid, "nft_bids"},
		{TransactionTypeTokenPrice, "token_prices"},
		{TransactionTypeBorrowableToken, "borrowable_tokens"},
	}
	for _, tc := range cases {
		table, ok := tc.transactionType.TargetTable()
		require.True(t, ok)
		assert.Equal(t, tc.table, table)
	}
}

func TestTransactionTypeUnknown(t *testing.T) {
	unknown := TransactionType("TOKEN_SWAP")
	_, ok := unknown.TargetTable()
	assert.False(t, ok)
	assert.False(t, unknown.IsValid())
	assert.True(t, TransactionTypeNFTBid.IsValid())
}

func TestAllTransactionTypesOrder(t *testing.T) {
	assert.Equal(t, []TransactionType{
		TransactionTypeNFTBid,
		TransactionTypeTokenPrice,
		TransactionTypeBorrowableToken,
	}, AllTransactionTypes())
}
