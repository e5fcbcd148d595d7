// SPDX-License-Identifier: MIT

package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// QuickCheck runs PRAGMA quick_check and fails unless it reports exactly "ok".
func QuickCheck(ctx context.Context, db *sql.DB) error {
	rows, err := db.QueryContext(ctx, "PRAGMA quick_check;")
	if err != nil {
		return fmt.Errorf("sqlite: quick_check failed: %w", err)
	}
	defer rows.Close()

	var results []string
	for rows.Next() {
		var res string
		if err := rows.Scan(&res); err != nil {
			return fmt.Errorf("sqlite: scan quick_check row: %w", err)
		}
		results = append(results, res)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("sqlite: quick_check rows: %w", err)
	}

	if len(results) == 1 && strings.EqualFold(results[0], "ok") {
		return nil
	}
	if len(results) == 0 {
		return fmt.Errorf("sqlite: quick_check returned no rows")
	}
	return fmt.Errorf("sqlite: integrity problems: %s", strings.Join(results, "; "))
}
