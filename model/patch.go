package model

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/jacentio/storefront/store"
)

// NullString is an optional string assignment in a patch: either a new
// value or an explicit clear of the attribute.
type NullString struct {
	Value string
	Clear bool
}

// SetString returns a NullString assignment, clearing when the value is empty.
func SetString(value string) *NullString {
	if value == "" {
		return &NullString{Clear: true}
	}
	return &NullString{Value: value}
}

// CustomerPatch is a minimal customer update. Nil fields are untouched.
type CustomerPatch struct {
	Name    *string
	Email   *string
	Phone   *NullString
	Address *NullString
	Active  *bool
}

// IsZero reports whether the patch changes nothing.
func (p *CustomerPatch) IsZero() bool {
	return p.Name == nil && p.Email == nil && p.Phone == nil &&
		p.Address == nil && p.Active == nil
}

// Changes lowers the patch to store field changes.
func (p *CustomerPatch) Changes() ([]store.FieldChange, error) {
	var changes []store.FieldChange
	changes = appendString(changes, "name", p.Name)
	changes = appendString(changes, "email", p.Email)
	changes = appendNullString(changes, "phone", p.Phone)
	changes = appendNullString(changes, "address", p.Address)
	changes = appendBool(changes, "active", p.Active)
	return changes, nil
}

// UniqueSwaps returns the email constraint move when the patch changes it.
func (p *CustomerPatch) UniqueSwaps(current Customer) []store.UniqueSwap {
	if p.Email == nil {
		return nil
	}
	old := strings.ToLower(strings.TrimSpace(current.Email))
	if *p.Email == old {
		return nil
	}
	return []store.UniqueSwap{{Field: "email", Old: old, New: *p.Email}}
}

// ProductPatch is a minimal product update. Nil fields are untouched.
type ProductPatch struct {
	Name        *string
	Price       *float64
	Sku         *string
	Description *NullString
	Active      *bool
}

// IsZero reports whether the patch changes nothing.
func (p *ProductPatch) IsZero() bool {
	return p.Name == nil && p.Price == nil && p.Sku == nil &&
		p.Description == nil && p.Active == nil
}

// Changes lowers the patch to store field changes.
func (p *ProductPatch) Changes() ([]store.FieldChange, error) {
	var changes []store.FieldChange
	changes = appendString(changes, "name", p.Name)
	changes = appendNumber(changes, "price", p.Price)
	changes = appendString(changes, "sku", p.Sku)
	changes = appendNullString(changes, "description", p.Description)
	changes = appendBool(changes, "active", p.Active)
	return changes, nil
}

// UniqueSwaps returns the SKU constraint move when the patch changes it.
func (p *ProductPatch) UniqueSwaps(current Product) []store.UniqueSwap {
	if p.Sku == nil {
		return nil
	}
	old := strings.ToUpper(strings.TrimSpace(current.Sku))
	if *p.Sku == old {
		return nil
	}
	return []store.UniqueSwap{{Field: "sku", Old: old, New: *p.Sku}}
}

// OrderPatch is a minimal order update. Nil fields are untouched; a
// non-nil Products replaces the entire line-item list.
type OrderPatch struct {
	CustomerID *string
	Products   []OrderLine
	Total      *float64
	Status     *OrderStatus
	Notes      *NullString
}

// IsZero reports whether the patch changes nothing.
func (p *OrderPatch) IsZero() bool {
	return p.CustomerID == nil && p.Products == nil && p.Total == nil &&
		p.Status == nil && p.Notes == nil
}

// Changes lowers the patch to store field changes. Replacing the line-item
// list also rewrites the derived productSkus attribute.
func (p *OrderPatch) Changes() ([]store.FieldChange, error) {
	var changes []store.FieldChange
	changes = appendString(changes, "customerId", p.CustomerID)

	if p.Products != nil {
		lines, err := attributevalue.Marshal(p.Products)
		if err != nil {
			return nil, fmt.Errorf("marshal products: %w", err)
		}
		changes = append(changes, store.FieldChange{Name: "products", Value: lines})

		skus := make([]string, len(p.Products))
		for i, line := range p.Products {
			skus[i] = line.Sku
		}
		skuList, err := attributevalue.Marshal(skus)
		if err != nil {
			return nil, fmt.Errorf("marshal productSkus: %w", err)
		}
		changes = append(changes, store.FieldChange{Name: "productSkus", Value: skuList})
	}

	changes = appendNumber(changes, "total", p.Total)
	if p.Status != nil {
		changes = append(changes, store.FieldChange{
			Name:  "status",
			Value: &types.AttributeValueMemberS{Value: string(*p.Status)},
		})
	}
	changes = appendNullString(changes, "notes", p.Notes)
	return changes, nil
}

func appendString(changes []store.FieldChange, name string, v *string) []store.FieldChange {
	if v == nil {
		return changes
	}
	return append(changes, store.FieldChange{
		Name:  name,
		Value: &types.AttributeValueMemberS{Value: *v},
	})
}

func appendNullString(changes []store.FieldChange, name string, v *NullString) []store.FieldChange {
	if v == nil {
		return changes
	}
	if v.Clear {
		return append(changes, store.FieldChange{Name: name, Remove: true})
	}
	return append(changes, store.FieldChange{
		Name:  name,
		Value: &types.AttributeValueMemberS{Value: v.Value},
	})
}

func appendBool(changes []store.FieldChange, name string, v *bool) []store.FieldChange {
	if v == nil {
		return changes
	}
	return append(changes, store.FieldChange{
		Name:  name,
		Value: &types.AttributeValueMemberBOOL{Value: *v},
	})
}

func appendNumber(changes []store.FieldChange, name string, v *float64) []store.FieldChange {
	if v == nil {
		return changes
	}
	return append(changes, store.FieldChange{
		Name:  name,
		Value: &types.AttributeValueMemberN{Value: strconv.FormatFloat(*v, 'f', -1, 64)},
	})
}
