package indexer

import (
	"context"
	"fmt"

	"github.com/mitgajera/Blockchain-indexer/app/models"
	"github.com/mitgajera/Blockchain-indexer/internal/pkg/helius"
)

// SubscriptionAPI is the slice of the provider client the sync needs.
type SubscriptionAPI interface {
	CreateWebhook(ctx context.Context, params helius.WebhookParams) (string, error)
	DeleteWebhook(ctx context.Context, webhookID string) error
}

// Selection is the set of transaction types and custom addresses a config
// wants delivered.
type Selection struct {
	Types     []models.TransactionType
	Addresses []string
}

// SelectionFromConfig reads the current selection out of a config record.
func SelectionFromConfig(config *models.IndexingConfig) Selection {
	return Selection{
		Types:     config.EnabledTypes(),
		Addresses: config.Addresses(),
	}
}

// Equal compares two selections including order; the provider materializes
// the lists as given.
func (s Selection) Equal(other Selection) bool {
	if len(s.Types) != len(other.Types) || len(s.Addresses) != len(other.Addresses) {
		return false
	}
	for i, t := range s.Types {
		if other.Types[i] != t {
			return false
		}
	}
	for i, a := range s.Addresses {
		if other.Addresses[i] != a {
			return false
		}
	}
	return true
}

func (s Selection) typeNames() []string {
	names := make([]string, 0, len(s.Types))
	for _, t := range s.Types {
		names = append(names, string(t))
	}
	return names
}

// SubscriptionSync keeps one provider webhook aligned with a user's
// selection.
type SubscriptionSync struct {
	api         SubscriptionAPI
	callbackURL string
}

// NewSubscriptionSync creates a sync against the given provider API.
// callbackBase is the public base URL of this service.
func NewSubscriptionSync(api SubscriptionAPI, callbackBase string) *SubscriptionSync {
	return &SubscriptionSync{api: api, callbackURL: callbackBase + "/api/v1/webhook/"}
}

// Reconcile brings the provider subscription in line with the desired
// selection and returns the handle that materializes it.
//
// The provider offers no partial update, so a changed selection is a
// delete-then-create saga. The swap is deliberately not atomic: a failure
// after the delete leaves the user briefly unsubscribed, and the caller must
// surface that as an audit error rather than swallow it. An unchanged
// selection is a no-op and performs zero provider calls.
func (s *SubscriptionSync) Reconcile(ctx context.Context, userID uint, handle string, current, desired Selection) (string, error) {
	if handle != "" && current.Equal(desired) {
		return handle, nil
	}

	if handle != "" {
		if err := s.api.DeleteWebhook(ctx, handle); err != nil {
			return handle, fmt.Errorf("%w: deleting subscription: %v", ErrUpstream, err)
		}
	}

	newHandle, err := s.api.CreateWebhook(ctx, helius.WebhookParams{
		WebhookURL:       fmt.Sprintf("%s%d", s.callbackURL, userID),
		TransactionTypes: desired.typeNames(),
		AccountAddresses: desired.Addresses,
	})
	if err != nil {
		// The old subscription is already gone at this point.
		return "", fmt.Errorf("%w: creating subscription: %v", ErrUpstream, err)
	}
	return newHandle, nil
}

// Teardown removes a provider subscription. Used on config deletion, where
// failure is reported but does not block local cleanup.
func (s *SubscriptionSync) Teardown(ctx context.Context, handle string) error {
	if handle == "" {
		return nil
	}
	if err := s.api.DeleteWebhook(ctx, handle); err != nil {
		return fmt.Errorf("%w: deleting subscription: %v", ErrUpstream, err)
	}
	return nil
}
