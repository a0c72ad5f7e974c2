package validate

import (
	"context"
	"errors"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"golang.org/x/sync/errgroup"

	"github.com/jacentio/storefront/model"
	"github.com/jacentio/storefront/store"
)

// resolveCustomer confirms a customer id references a live customer record.
func resolveCustomer(ctx context.Context, st Storage, id string) (model.Customer, error) {
	item, err := st.Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return model.Customer{}, &ReferenceNotFoundError{Kind: "customer", Value: id}
	}
	if err != nil {
		return model.Customer{}, err
	}
	rec, err := model.Decode(item)
	if err != nil {
		return model.Customer{}, &ReferenceNotFoundError{Kind: "customer", Value: id}
	}
	customer, ok := rec.(model.Customer)
	if !ok {
		return model.Customer{}, &ReferenceNotFoundError{Kind: "customer", Value: id}
	}
	return customer, nil
}

// resolveProductBySku walks the product index pages until a record with the
// SKU is found or pages are exhausted. Linear in catalog size per call.
func resolveProductBySku(ctx context.Context, st Storage, sku string) (model.Product, error) {
	var startKey map[string]types.AttributeValue
	for {
		page, err := st.QueryByEntity(ctx, store.Query{
			Entity:      string(model.EntityProduct),
			FilterField: "sku",
			FilterValue: sku,
			StartKey:    startKey,
		})
		if err != nil {
			return model.Product{}, err
		}
		if len(page.Items) > 0 {
			rec, err := model.Decode(page.Items[0])
			if err != nil {
				return model.Product{}, err
			}
			if product, ok := rec.(model.Product); ok {
				return product, nil
			}
		}
		if page.LastKey == nil {
			break
		}
		startKey = page.LastKey
	}
	return model.Product{}, &ReferenceNotFoundError{Kind: "product", Value: sku}
}

// resolveProducts resolves distinct SKUs concurrently; the first failure
// cancels the remaining lookups.
func resolveProducts(ctx context.Context, st Storage, skus []string) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, sku := range skus {
		g.Go(func() error {
			_, err := resolveProductBySku(gctx, st, sku)
			return err
		})
	}
	return g.Wait()
}
