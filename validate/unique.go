package validate

import (
	"context"
	"strings"

	"github.com/jacentio/storefront/model"
	"github.com/jacentio/storefront/store"
)

// checkUnique rejects a candidate value already held by another record of
// the same entity. This is a read-then-decide check; the write-time shadow
// constraint in the store closes the remaining race between two concurrent
// creates.
func checkUnique(ctx context.Context, st Storage, entity model.Entity, field, value, excludeID string) error {
	page, err := st.QueryByEntity(ctx, store.Query{
		Entity:      string(entity),
		FilterField: field,
		FilterValue: value,
		ExcludeID:   excludeID,
		Limit:       1,
	})
	if err != nil {
		return err
	}
	if len(page.Items) > 0 {
		return &ConflictError{
			Entity: strings.ToLower(string(entity)),
			Field:  field,
			Value:  value,
		}
	}
	return nil
}
