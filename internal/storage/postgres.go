package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/stor-a-gentic/server/internal/agent/model"
	errx "github.com/stor-a-gentic/server/internal/core/error"
)

// liveBackend reads and writes a PostgreSQL database. Rows are fetched as
// JSON so every collection shares one code path.
type liveBackend struct {
	db *sql.DB
}

func (b *liveBackend) mode() string { return ModeLive }

func selectQuery(spec collectionSpec, limit int) string {
	var q strings.Builder
	q.WriteString("SELECT row_to_json(t)::text FROM ")
	q.WriteString(spec.table())
	q.WriteString(" t")
	if spec.orderBy != "" {
		q.WriteString(" ORDER BY ")
		q.WriteString(spec.orderBy)
	}
	if limit > 0 {
		q.WriteString(" LIMIT ")
		q.WriteString(strconv.Itoa(limit))
	}
	return q.String()
}

func insertQuery(c model.Collection, r row) string {
	placeholders := make([]string, len(r.columns))
	for i := range r.columns {
		placeholders[i] = "$" + strconv.Itoa(i+1)
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING id::text",
		c, strings.Join(r.columns, ", "), strings.Join(placeholders, ", "))
}

func (b *liveBackend) fetch(ctx context.Context, spec collectionSpec, limit int) ([]json.RawMessage, error) {
	rows, err := b.db.QueryContext(ctx, selectQuery(spec, limit))
	if err != nil {
		return nil, errx.WrapStore(err)
	}
	defer rows.Close()

	out := []json.RawMessage{}
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, errx.WrapStore(err)
		}
		doc, err := normalizeRow([]byte(s))
		if err != nil {
			return nil, errx.Malformed(fmt.Errorf("row of %s: %w", spec.collection, err))
		}
		out = append(out, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, errx.WrapStore(err)
	}
	return out, nil
}

func (b *liveBackend) insert(ctx context.Context, spec collectionSpec, r row) (string, error) {
	var id string
	if err := b.db.QueryRowContext(ctx, insertQuery(spec.collection, r), r.values...).Scan(&id); err != nil {
		return "", errx.WrapStore(err)
	}
	if id == "" {
		return "", errx.Malformed(fmt.Errorf("insert into %s returned no id", spec.collection))
	}
	return id, nil
}

func (b *liveBackend) probe(ctx context.Context) error {
	_, err := b.fetch(ctx, specs[model.CollectionInquiries], 1)
	return err
}

func (b *liveBackend) close() error {
	return b.db.Close()
}
