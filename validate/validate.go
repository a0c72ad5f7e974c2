// Package validate implements the sanitization and referential-integrity
// layer for customer, product, and order mutations.
//
// Each entity validator turns an untrusted payload into either a complete
// sanitized draft (create path) or a minimal typed patch (update path),
// failing with a typed error on the first problem encountered. Uniqueness
// of customer email and product SKU is checked against the (entity,
// createdAt) index; order references are resolved against live records at
// validation time only.
package validate

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/jacentio/storefront/store"
)

// Storage is the slice of the store the validators read from.
type Storage interface {
	Get(ctx context.Context, id string) (map[string]types.AttributeValue, error)
	QueryByEntity(ctx context.Context, q store.Query) (*store.Page, error)
}
