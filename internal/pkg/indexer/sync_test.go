package indexer

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitgajera/Blockchain-indexer/app/models"
	"github.com/mitgajera/Blockchain-indexer/internal/pkg/helius"
)

type fakeSubscriptionAPI struct {
	creates   []helius.WebhookParams
	deletes   []string
	nextID    int
	createErr error
	deleteErr error
}

func (f *fakeSubscriptionAPI) CreateWebhook(_ context.Context, params helius.WebhookParams) (string, error) {
	if f.createErr != nil {
		return "", f.createErr
	}
	f.creates = append(f.creates, params)
	f.nextID++
	return fmt.Sprintf("wh-%d", f.nextID), nil
}

func (f *fakeSubscriptionAPI) DeleteWebhook(_ context.Context, webhookID string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deletes = append(f.deletes, webhookID)
	return nil
}

func bidSelection() Selection {
	return Selection{
		Types:     []models.TransactionType{models.TransactionTypeNFTBid},
		Addresses: []string{"addr1"},
	}
}

func TestReconcileCreatesSubscriptionForNewConfig(t *testing.T) {
	api := &fakeSubscriptionAPI{}
	sync := NewSubscriptionSync(api, "https://indexer.example.com")

	handle, err := sync.Reconcile(context.Background(), 42, "", Selection{}, bidSelection())
	require.NoError(t, err)
	assert.Equal(t, "wh-1", handle)

	require.Len(t, api.creates, 1)
	assert.Empty(t, api.deletes)
	assert.Equal(t, "https://indexer.example.com/api/v1/webhook/42", api.creates[0].WebhookURL)
	assert.Equal(t, []string{"NFT_BID"}, api.creates[0].TransactionTypes)
	assert.Equal(t, []string{"addr1"}, api.creates[0].AccountAddresses)
}

func TestReconcileUnchangedSelectionIsNoOp(t *testing.T) {
	api := &fakeSubscriptionAPI{}
	sync := NewSubscriptionSync(api, "https://indexer.example.com")

	handle, err := sync.Reconcile(context.Background(), 42, "wh-existing", bidSelection(), bidSelection())
	require.NoError(t, err)
	assert.Equal(t, "wh-existing", handle)
	assert.Empty(t, api.creates)
	assert.Empty(t, api.deletes)
}

func TestReconcileChangedSelectionReplacesSubscription(t *testing.T) {
	api := &fakeSubscriptionAPI{}
	sync := NewSubscriptionSync(api, "https://indexer.example.com")

	desired := Selection{
		Types: []models.TransactionType{models.TransactionTypeNFTBid, models.TransactionTypeTokenPrice},
	}
	handle, err := sync.Reconcile(context.Background(), 42, "wh-old", bidSelection(), desired)
	require.NoError(t, err)
	assert.Equal(t, "wh-1", handle)

	assert.Equal(t, []string{"wh-old"}, api.deletes)
	require.Len(t, api.creates, 1)
	assert.Equal(t, []string{"NFT_BID", "TOKEN_PRICE"}, api.creates[0].TransactionTypes)
}

func TestReconcileDeleteFailureKeepsOldHandle(t *testing.T) {
	api := &fakeSubscriptionAPI{deleteErr: errors.New("provider down")}
	sync := NewSubscriptionSync(api, "https://indexer.example.com")
	handle, err := sync.Reconcile(context.Background(), 42, "wh-old", bidSelection(), Selection{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUpstream))
	assert.Equal(t, "wh-old", handle)
	assert.Empty(t, api.creates)
}

func TestReconcileCreateFailureLosesHandle(t *testing.T) {
	api := &fakeSubscriptionAPI{createErr: errors.New("provider down")}
	sync := NewSubscriptionSync(api, "https://indexer.example.com")

	handle, err := sync.Reconcile(context.Background(), 42, "wh-old", bidSelection(), Selection{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUpstream))
	assert.Equal(t, "", handle)
	assert.Equal(t, []string{"wh-old"}, api.deletes)
}

func TestTeardown(t *testing.T) {
	api := &fakeSubscriptionAPI{}
	sync := NewSubscriptionSync(api, "https://indexer.example.com")

	require.NoError(t, sync.Teardown(context.Background(), "wh-gone"))
	assert.Equal(t, []string{"wh-gone"}, api.deletes)

	// An empty handle means nothing was ever provisioned.
	require.NoError(t, sync.Teardown(context.Background(), ""))
	assert.Len(t, api.deletes, 1)
}

func TestSelectionEqual(t *testing.T) {
	a := bidSelection()
	assert.True(t, a.Equal(bidSelection()))

	reordered := Selection{
		Types:     []models.TransactionType{models.TransactionTypeNFTBid},
		Addresses: []string{"addr2"},
	}
	assert.False(t, a.Equal(reordered))
	assert.False(t, a.Equal(Selection{}))
	assert.True(t, Selection{}.Equal(Selection{}))
}

func TestSelectionFromConfig(t *testing.T) {
	config := &models.IndexingConfig{NftBids: true, BorrowableTokens: true}
	require.NoError(t, config.SetAddresses([]string{"addr1", "addr2"}))

	sel := SelectionFromConfig(config)
	assert.Equal(t, []models.TransactionType{
		models.TransactionTypeNFTBid,
		models.TransactionTypeBorrowableToken,
	}, sel.Types)
	assert.Equal(t, []string{"addr1", "addr2"}, sel.Addresses)
}
