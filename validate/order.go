package validate

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/jacentio/storefront/model"
)

// Orders validates order create and update payloads. Orders are the
// heaviest validator: beyond field shape, the customer reference and every
// distinct line-item SKU must resolve to a live record.
type Orders struct {
	st Storage
}

// NewOrders creates an order validator backed by st.
func NewOrders(st Storage) *Orders {
	return &Orders{st: st}
}

// ValidateCreate sanitizes a full order payload, resolving the customer
// reference and all line-item SKUs. Status defaults to NEW; the total is
// caller-supplied and never recomputed from line items.
func (v *Orders) ValidateCreate(ctx context.Context, payload map[string]any) (*model.OrderDraft, error) {
	if payload == nil {
		return nil, ErrInvalidBody
	}

	customerID, err := v.customerReference(ctx, payload["customer"], true)
	if err != nil {
		return nil, err
	}
	products, err := v.lineItems(ctx, payload["products"], true)
	if err != nil {
		return nil, err
	}
	total, _, err := normalizeAmount("total", payload["total"], true)
	if err != nil {
		return nil, err
	}
	status, err := normalizeStatus(payload["status"], false)
	if err != nil {
		return nil, err
	}
	if status == "" {
		status = model.OrderStatusNew
	}
	notes, err := normalizeOptionalString("notes", payload["notes"])
	if err != nil {
		return nil, err
	}

	return &model.OrderDraft{
		CustomerID:  customerID,
		Products:    products,
		ProductSkus: skusOf(products),
		Total:       total,
		Status:      status,
		Notes:       notes,
	}, nil
}

// ValidateUpdate builds a minimal patch from the keys present in the
// payload. A new products list replaces the existing line items entirely.
func (v *Orders) ValidateUpdate(ctx context.Context, payload map[string]any) (*model.OrderPatch, error) {
	if payload == nil {
		return nil, ErrInvalidBody
	}

	patch := &model.OrderPatch{}

	if raw, ok := payload["customer"]; ok {
		customerID, err := v.customerReference(ctx, raw, true)
		if err != nil {
			return nil, err
		}
		patch.CustomerID = &customerID
	}
	if raw, ok := payload["products"]; ok {
		products, err := v.lineItems(ctx, raw, true)
		if err != nil {
			return nil, err
		}
		patch.Products = products
	}
	if raw, ok := payload["total"]; ok {
		total, _, err := normalizeAmount("total", raw, true)
		if err != nil {
			return nil, err
		}
		patch.Total = &total
	}
	if raw, ok := payload["status"]; ok {
		status, err := normalizeStatus(raw, true)
		if err != nil {
			return nil, err
		}
		patch.Status = &status
	}
	if raw, ok := payload["notes"]; ok {
		notes, err := normalizeOptionalString("notes", raw)
		if err != nil {
			return nil, err
		}
		patch.Notes = model.SetString(notes)
	}

	if patch.IsZero() {
		return nil, ErrNoChange
	}
	return patch, nil
}

// customerReference validates a {id} reference object and confirms the
// customer exists.
func (v *Orders) customerReference(ctx context.Context, raw any, required bool) (string, error) {
	if raw == nil {
		if required {
			return "", missingField("customer")
		}
		return "", nil
	}
	obj, ok := raw.(map[string]any)
	if !ok {
		return "", &FieldError{Field: "customer", Reason: "invalid customer object"}
	}
	id := sanitizeString(obj["id"])
	if id == "" {
		return "", missingField("customer.id")
	}
	if _, err := resolveCustomer(ctx, v.st, id); err != nil {
		return "", err
	}
	return id, nil
}

// lineItems validates the products list: SKUs upper-cased and unique
// within the list, quantities positive integers. All distinct SKUs are
// then resolved concurrently.
func (v *Orders) lineItems(ctx context.Context, raw any, required bool) ([]model.OrderLine, error) {
	if raw == nil {
		if required {
			return nil, missingField("products")
		}
		return nil, nil
	}
	list, ok := raw.([]any)
	if !ok || len(list) == 0 {
		return nil, &FieldError{Field: "products", Reason: "products must be a non-empty array"}
	}

	seen := map[string]bool{}
	lines := make([]model.OrderLine, 0, len(list))
	for i, entry := range list {
		obj, ok := entry.(map[string]any)
		if !ok {
			return nil, &FieldError{
				Field:  "products",
				Reason: fmt.Sprintf("product entry #%d must be an object", i+1),
			}
		}
		sku := strings.ToUpper(sanitizeString(obj["sku"]))
		if sku == "" {
			return nil, &FieldError{
				Field:  "products",
				Reason: fmt.Sprintf("product entry #%d is missing sku", i+1),
			}
		}
		if seen[sku] {
			return nil, &FieldError{
				Field:  "products",
				Reason: "duplicate sku in products: " + sku,
			}
		}
		qty, ok := numericValue(obj["qty"])
		if !ok || qty <= 0 || qty != math.Trunc(qty) {
			return nil, &FieldError{
				Field:  "products",
				Reason: fmt.Sprintf("product entry #%d has an invalid qty", i+1),
			}
		}
		seen[sku] = true
		lines = append(lines, model.OrderLine{Sku: sku, Qty: int(qty)})
	}

	if err := resolveProducts(ctx, v.st, skusOf(lines)); err != nil {
		return nil, err
	}
	return lines, nil
}

func skusOf(lines []model.OrderLine) []string {
	skus := make([]string, len(lines))
	for i, line := range lines {
		skus[i] = line.Sku
	}
	return skus
}
