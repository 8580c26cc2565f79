package models

// TransactionType identifies one of the supported webhook transaction kinds.
type TransactionType string

const (
	TransactionTypeNFTBid          TransactionType = "NFT_BID"
	TransactionTypeTokenPrice      TransactionType = "TOKEN_PRICE"
	TransactionTypeBorrowableToken TransactionType = "BORROWABLE_TOKEN"
)

// targetTables maps each supported transaction type to its destination table.
// Adding a type means adding a table here; this is a code-level mapping, not
// user configuration.
var targetTables = map[TransactionType]string{
	TransactionTypeNFTBid:          "nft_bids",
	TransactionTypeTokenPrice:      "token_prices",
	TransactionTypeBorrowableToken: "borrowable_tokens",
}

// TargetTable returns the destination table for the transaction type.
func (t TransactionType) TargetTable() (string, bool) {
	table, ok := targetTables[t]
	return table, ok
}

// IsValid reports whether the transaction type is one of the supported kinds.
func (t TransactionType) IsValid() bool {
	_, ok := targetTables[t]
	return ok
}

// AllTransactionTypes lists the supported types in a stable order.
func AllTransactionTypes() []TransactionType {
	return []TransactionType{
		TransactionTypeNFTBid,
		TransactionTypeTokenPrice,
		TransactionTypeBorrowableToken,
	}
}
