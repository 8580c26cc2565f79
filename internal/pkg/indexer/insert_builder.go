package indexer

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// safeIdentifier is the gate every payload key must pass before it is used
// as a column name. Payload keys come from externally supplied data and are
// the only place where identifiers reach SQL text, so anything outside this
// pattern rejects the whole event.
var safeIdentifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]{0,63}$`)

// reservedColumns are appended by the builder itself; a payload key colliding
// with one of them would silently shadow pipeline metadata.
var reservedColumns = map[string]struct{}{
	"signature":        {},
	"transaction_type": {},
	"timestamp":        {},
}

// Builder rejection reasons.
var (
	ErrUnknownType      = fmt.Errorf("%w: unknown transaction type", ErrValidation)
	ErrUnsafeColumnName = fmt.Errorf("%w: unsafe column name", ErrUnsafeInput)
	ErrReservedColumn   = fmt.Errorf("%w: reserved column name in payload", ErrUnsafeInput)
	ErrMalformedPayload = fmt.Errorf("%w: malformed payload", ErrValidation)
)

// InsertStatement is a fully parameterized insert for one target table.
// Column identifiers have passed the safe-identifier gate; values are only
// ever bound via placeholders.
type InsertStatement struct {
	Table   string
	Columns []string
	Values  []any
}

// SQL renders the statement text with positional placeholders.
func (s *InsertStatement) SQL() string {
	placeholders := make([]string, len(s.Columns))
	for i := range s.Columns {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		s.Table, strings.Join(s.Columns, ", "), strings.Join(placeholders, ", "))
}

// BuildInsert turns one transaction event into an insert statement for its
// destination table. It is pure and deterministic: the same event always
// yields the same table, column order and values. Payload columns keep their
// document order, followed by the fixed signature, transaction_type and
// timestamp columns.
func BuildInsert(event TransactionEvent) (*InsertStatement, error) {
	table, ok := event.Type.TargetTable()
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownType, string(event.Type))
	}

	keys, values, err := decodeOrderedObject(event.Data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}

	for _, key := range keys {
		if !safeIdentifier.MatchString(key) {
			return nil, fmt.Errorf("%w %q", ErrUnsafeColumnName, key)
		}
		if _, reserved := reservedColumns[strings.ToLower(key)]; reserved {
			return nil, fmt.Errorf("%w %q", ErrReservedColumn, key)
		}
	}

	columns := append(keys, "signature", "transaction_type", "timestamp")
	values = append(values,
		event.Signature,
		string(event.Type),
		time.UnixMilli(event.Timestamp).UTC(),
	)

	return &InsertStatement{
		Table:   table,
		Columns: columns,
		Values:  values,
	}, nil
}
