package indexer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mitgajera/Blockchain-indexer/app/models"
)

// Per-event outcomes inside a batch.
const (
	OutcomeInserted = "inserted"
	OutcomeSkipped  = "skipped"
	OutcomeRejected = "rejected"
	OutcomeFailed   = "failed"
)

// EventResult is the outcome of one event in a batch.
type EventResult struct {
	Signature string                 `json:"signature"`
	Type      models.TransactionType `json:"type"`
	Outcome   string                 `json:"outcome"`
	Error     string                 `json:"error,omitempty"`
}

// BatchReport enumerates per-event outcomes of one webhook delivery.
type BatchReport struct {
	BatchID  string        `json:"batch_id"`
	Received int           `json:"received"`
	Inserted int           `json:"inserted"`
	Skipped  int           `json:"skipped"`
	Rejected int           `json:"rejected"`
	Failed   int           `json:"failed"`
	Events   []EventResult `json:"events"`
}

func (r *BatchReport) record(result EventResult) {
	switch result.Outcome {
	case OutcomeInserted:
		r.Inserted++
	case OutcomeSkipped:
		r.Skipped++
	case OutcomeRejected:
		r.Rejected++
	case OutcomeFailed:
		r.Failed++
	}
	r.Events = append(r.Events, result)
}

// Ingest processes one webhook delivery for a user. Events are handled
// independently: one bad event is audited and counted but never aborts the
// rest of the batch, since upstream redelivers whole batches and a poison
// record would amplify load without fixing anything. Per-event results land
// in the audit log and in the returned report; Ingest itself only errors on
// infrastructure problems resolving the user's state.
func (s *Service) Ingest(ctx context.Context, userID uint, events []TransactionEvent) (*BatchReport, error) {
	report := &BatchReport{
		BatchID:  uuid.NewString(),
		Received: len(events),
	}

	s.audit(userID, models.EventWebhookReceived, models.LogStatusSuccess,
		fmt.Sprintf("Received %d transactions", len(events)),
		map[string]any{"batch_id": report.BatchID, "count": len(events)})

	config, conn, err := s.resolveActiveState(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.audit(userID, models.EventWebhookProcessingError, models.LogStatusError,
				"No active configuration or connection",
				map[string]any{"batch_id": report.BatchID})
			return report, nil
		}
		return nil, err
	}

	for _, event := range events {
		report.record(s.processEvent(ctx, config, conn, event))
	}

	s.audit(userID, models.EventWebhookProcessed, models.LogStatusSuccess,
		fmt.Sprintf("Processed %d transactions", len(events)),
		map[string]any{
			"batch_id": report.BatchID,
			"inserted": report.Inserted,
			"skipped":  report.Skipped,
			"rejected": report.Rejected,
			"failed":   report.Failed,
		})
	return report, nil
}

// processEvent routes one event to its destination table. Filtered events
// are skipped silently; rejections and insert failures each produce their
// own audit record.
func (s *Service) processEvent(ctx context.Context, config *models.IndexingConfig, conn *models.DbConnection, event TransactionEvent) EventResult {
	result := EventResult{Signature: event.Signature, Type: event.Type}
	meta := map[string]any{"signature": event.Signature, "type": string(event.Type)}

	// Custom addresses are always indexable regardless of type flags.
	if !config.TypeEnabled(event.Type) && !matchesCustomAddress(config, event) {
		result.Outcome = OutcomeSkipped
		return result
	}

	stmt, err := BuildInsert(event)
	if err != nil {
		result.Outcome = OutcomeRejected
		result.Error = err.Error()
		s.audit(config.UserID, models.EventDataIndexingError, models.LogStatusError,
			fmt.Sprintf("Failed to index %s data: %v", event.Type, err), meta)
		return result
	}

	if err := s.targets.Exec(ctx, conn, stmt.SQL(), stmt.Values...); err != nil {
		result.Outcome = OutcomeFailed
		result.Error = err.Error()
		s.audit(config.UserID, models.EventDataIndexingError, models.LogStatusError,
			fmt.Sprintf("Failed to index %s data: %v", event.Type, err), meta)
		return result
	}

	result.Outcome = OutcomeInserted
	s.audit(config.UserID, models.EventDataIndexed, models.LogStatusSuccess,
		fmt.Sprintf("Indexed %s data", event.Type), meta)
	return result
}

// matchesCustomAddress reports whether any top-level string value of the
// event payload equals one of the config's tracked addresses.
func matchesCustomAddress(config *models.IndexingConfig, event TransactionEvent) bool {
	addrs := config.Addresses()
	if len(addrs) == 0 || len(event.Data) == 0 {
		return false
	}

	var payload map[string]any
	if err := json.Unmarshal(event.Data, &payload); err != nil {
		return false
	}

	tracked := make(map[string]struct{}, len(addrs))
	for _, a := range addrs {
		tracked[a] = struct{}{}
	}
	for _, v := range payload {
		if str, ok := v.(string); ok {
			if _, hit := tracked[str]; hit {
				return true
			}
		}
	}
	return false
}

// activeState is the cached pair of active config and connection IDs.
type activeState struct {
	ConfigID     uint `json:"config_id"`
	ConnectionID uint `json:"connection_id"`
}

// resolveActiveState loads the user's active config and connection, through
// the cache when one is configured.
func (s *Service) resolveActiveState(userID uint) (*models.IndexingConfig, *models.DbConnection, error) {
	if s.cache != nil {
		if raw, err := s.cache.Get(activeStateKey(userID)); err == nil && raw != "" {
			var state activeState
			if err := json.Unmarshal([]byte(raw), &state); err == nil {
				config, cErr := s.configs.GetByID(userID, state.ConfigID)
				conn, nErr := s.conns.GetByID(userID, state.ConnectionID)
				if cErr == nil && nErr == nil && config.IsActive && conn.IsActive {
					return config, conn, nil
				}
			}
		}
	}

	config, err := s.configs.GetActiveByUser(userID)
	if err != nil {
		return nil, nil, err
	}
	conn, err := s.conns.GetActiveByUser(userID)
	if err != nil {
		return nil, nil, err
	}

	if s.cache != nil {
		state := activeState{ConfigID: config.ID, ConnectionID: conn.ID}
		if raw, err := json.Marshal(state); err == nil {
			s.cache.Set(activeStateKey(userID), string(raw), activeStateTTL)
		}
	}
	return config, conn, nil
}
