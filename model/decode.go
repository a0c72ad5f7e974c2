package model

import (
	"fmt"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/jacentio/storefront/store"
)

// Decode converts a raw table item into its typed record based on the
// entity discriminator.
func Decode(item map[string]types.AttributeValue) (store.Record, error) {
	var probe struct {
		Entity Entity `dynamodbav:"entity"`
	}
	if err := attributevalue.UnmarshalMap(item, &probe); err != nil {
		return nil, fmt.Errorf("decode entity tag: %w", err)
	}

	switch probe.Entity {
	case EntityCustomer:
		var c Customer
		if err := attributevalue.UnmarshalMap(item, &c); err != nil {
			return nil, fmt.Errorf("decode customer: %w", err)
		}
		return c, nil
	case EntityProduct:
		var p Product
		if err := attributevalue.UnmarshalMap(item, &p); err != nil {
			return nil, fmt.Errorf("decode product: %w", err)
		}
		return p, nil
	case EntityOrder:
		var o Order
		if err := attributevalue.UnmarshalMap(item, &o); err != nil {
			return nil, fmt.Errorf("decode order: %w", err)
		}
		return o, nil
	default:
		return nil, fmt.Errorf("unknown entity %q", probe.Entity)
	}
}
