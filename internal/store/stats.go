package store

import (
	"context"
	"fmt"
)

// Tables lists every table the schema creates, parents before children.
var Tables = []string{
	"playlists",
	"playlist_songs",
	"favorites",
	"listen_history",
	"ratings",
	"liked_songs",
}

// TableCount is the row count of one table.
type TableCount struct {
	Table string `json:"table"`
	Rows  int64  `json:"rows"`
}

// TableCounts reports the row count of every table in Tables.
func (s *DB) TableCounts(ctx context.Context) ([]TableCount, error) {
	counts := make([]TableCount, 0, len(Tables))
	for _, table := range Tables {
		var n int64
		// Table names come from the fixed list above.
		if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(&n); err != nil {
			return nil, fmt.Errorf("count %s: %w", table, err)
		}
		counts = append(counts, TableCount{Table: table, Rows: n})
	}
	return counts, nil
}
