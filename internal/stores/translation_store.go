package stores

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/lib/pq"
)

// TranslationStore looks up display names for dishes and menu sections in a
// requested language. Entities without a translation are simply absent from
// the returned map; the engine falls back to the raw id.
//
//go:generate mockgen -source=translation_store.go -destination=./mocks/translation_store_mock.go -package=mocks
type TranslationStore interface {
	DishNames(ctx context.Context, dishIDs []string, lang string) (map[string]string, error)
	SectionNames(ctx context.Context, sectionIDs []string, lang string) (map[string]string, error)
}

type translationStore struct {
	db *sql.DB
}

func NewTranslationStore(db *sql.DB) TranslationStore {
	return &translationStore{db: db}
}

func (s *translationStore) DishNames(ctx context.Context, dishIDs []string, lang string) (map[string]string, error) {
	return s.names(ctx, "dish_translations", "dish_id", dishIDs, lang)
}

func (s *translationStore) SectionNames(ctx context.Context, sectionIDs []string, lang string) (map[string]string, error) {
	return s.names(ctx, "section_translations", "section_id", sectionIDs, lang)
}

func (s *translationStore) names(ctx context.Context, table, idColumn string, ids []string, lang string) (map[string]string, error) {
	names := make(map[string]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}

	query, args, err := psq.Select(idColumn, "name").
		From(table).
		Where(sq.Expr(fmt.Sprintf("%s = ANY(?)", idColumn), pq.Array(ids))).
		Where(sq.Eq{"language_code": lang}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building %s lookup: %w", table, err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying %s: %w", table, err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var id, name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, fmt.Errorf("scanning %s row: %w", table, err)
		}
		names[id] = name
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating %s rows: %w", table, err)
	}
	return names, nil
}
