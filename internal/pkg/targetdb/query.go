package targetdb

import (
	"context"
	"time"
)

const queryTimeout = 30 * time.Second

// RunQuery executes a read query on a short-lived connection and returns the
// rows as generic maps. The connection never outlives the call; callers must
// validate the query text first (see the queryguard package).
func RunQuery(ctx context.Context, params ConnectionParams, query string) ([]map[string]any, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	db, err := open(params)
	if err != nil {
		return nil, err
	}
	defer closeHandle(db)

	rows, err := db.WithContext(ctx).Raw(query).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var results []map[string]any
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		row := make(map[string]any, len(cols))
		for i, col := range cols {
			v := values[i]
			if b, ok := v.([]byte); ok {
				v = string(b)
			}
			row[col] = v
		}
		results = append(results, row)
	}
	return results, rows.Err()
}
