package database

import (
	"context"
	"fmt"

	"github.com/arangodb/go-driver/v2/arangodb"
	"go.uber.org/multierr"
)

// readOne runs query and decodes its first result. A query without results,
// or whose first result is null, yields nil without error.
func readOne[T any](ctx context.Context, db arangodb.Database, query string, bindVars map[string]interface{}) (doc *T, err error) {
	cursor, err := db.Query(ctx, query, &arangodb.QueryOptions{BindVars: bindVars})
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer func() {
		err = multierr.Append(err, cursor.Close())
	}()

	if !cursor.HasMore() {
		return nil, nil
	}
	if _, err := cursor.ReadDocument(ctx, &doc); err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}
	return doc, nil
}

// readAll runs query and decodes every result.
func readAll[T any](ctx context.Context, db arangodb.Database, query string, bindVars map[string]interface{}) (docs []T, err error) {
	cursor, err := db.Query(ctx, query, &arangodb.QueryOptions{BindVars: bindVars})
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer func() {
		err = multierr.Append(err, cursor.Close())
	}()

	docs = make([]T, 0)
	for cursor.HasMore() {
		var doc T
		if _, err := cursor.ReadDocument(ctx, &doc); err != nil {
			return nil, fmt.Errorf("failed to read document: %w", err)
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// exec runs a write query and reports how many results it returned.
func exec(ctx context.Context, db arangodb.Database, query string, bindVars map[string]interface{}) (int, error) {
	keys, err := readAll[string](ctx, db, query, bindVars)
	if err != nil {
		return 0, err
	}
	return len(keys), nil
}
