package validate

import (
	"context"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/jacentio/storefront/model"
	"github.com/jacentio/storefront/store"
)

// fakeStorage serves seeded records from memory, applying the same
// entity/filter/exclude semantics the index query would.
type fakeStorage struct {
	mu      sync.Mutex
	items   map[string]map[string]types.AttributeValue
	queries int
	err     error
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{items: map[string]map[string]types.AttributeValue{}}
}

func (f *fakeStorage) seed(t *testing.T, rec store.Record) {
	t.Helper()
	item, err := attributevalue.MarshalMap(rec)
	if err != nil {
		t.Fatalf("marshal %s: %v", rec.EntityType(), err)
	}
	f.items[rec.RecordID()] = item
}

func (f *fakeStorage) Get(ctx context.Context, id string) (map[string]types.AttributeValue, error) {
	if f.err != nil {
		return nil, f.err
	}
	item, ok := f.items[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return item, nil
}

func (f *fakeStorage) QueryByEntity(ctx context.Context, q store.Query) (*store.Page, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries++
	if f.err != nil {
		return nil, f.err
	}

	var matches []map[string]types.AttributeValue
	for id, item := range f.items {
		if attrString(item, "entity") != q.Entity {
			continue
		}
		if q.FilterField != "" && attrString(item, q.FilterField) != q.FilterValue {
			continue
		}
		if q.ExcludeID != "" && id == q.ExcludeID {
			continue
		}
		matches = append(matches, item)
		if q.Limit > 0 && len(matches) >= int(q.Limit) {
			break
		}
	}
	return &store.Page{Items: matches}, nil
}

func attrString(item map[string]types.AttributeValue, name string) string {
	if v, ok := item[name].(*types.AttributeValueMemberS); ok {
		return v.Value
	}
	return ""
}

func seedCatalog(t *testing.T, f *fakeStorage) {
	t.Helper()
	f.seed(t, model.Customer{
		ID:     "c1",
		Entity: model.EntityCustomer,
		Name:   "Alice",
		Email:  "alice@example.com",
		Active: true,
	})
	f.seed(t, model.Product{
		ID:     "p1",
		Entity: model.EntityProduct,
		Name:   "Widget",
		Price:  9.99,
		Sku:    "W-1",
		Active: true,
	})
	f.seed(t, model.Product{
		ID:     "p2",
		Entity: model.EntityProduct,
		Name:   "Gadget",
		Price:  24.5,
		Sku:    "G-7",
		Active: true,
	})
}
