package queryguard

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateAcceptsSelect(t *testing.T) {
	queries := []string{
		"select * from nft_bids limit 10",
		"SELECT * FROM nft_bids LIMIT 10",
		"  select signature, timestamp from token_prices where price > 1  ",
		"select created_at from borrowable_tokens",
	}
	for _, q := range queries {
		assert.NoError(t, Validate(q), "query: %s", q)
	}
}

func TestValidateRejectsMutatingStatements(t *testing.T) {
	queries := []string{
		"update nft_bids set price = 0",
		"UPDATE nft_bids SET price = 0",
		"delete from token_prices",
		"drop table nft_bids",
		"insert into nft_bids (price) values (1)",
		"alter table nft_bids add column x int",
		"create table evil (id int)",
	}
	for _, q := range queries {
		err := Validate(q)
		require.Error(t, err, "query: %s", q)
		assert.True(t, errors.Is(err, ErrRejected))
	}
}

func TestValidateRejectsStackedStatement(t *testing.T) {
	err := Validate("SELECT 1; DROP TABLE nft_bids")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrRejected))
}

func TestValidateRejectsEmptyQuery(t *testing.T) {
	for _, q := range []string{"", "   ", "\n\t"} {
		err := Validate(q)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrRejected))
	}
}

func TestValidateRejectsNonSelectPrefix(t *testing.T) {
	err := Validate("show tables")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrRejected))
}

func TestValidateAllowsMutatingWordsInsideIdentifiers(t *testing.T) {
	// Column names containing a forbidden word as a substring must not trip
	// the denylist.
	assert.NoError(t, Validate("select created_at, updated_at from nft_bids"))
	assert.NoError(t, Validate("select last_update_id from token_prices"))
}
