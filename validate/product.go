package validate

import (
	"context"
	"strings"

	"github.com/jacentio/storefront/model"
)

// Products validates product create and update payloads.
type Products struct {
	st Storage
}

// NewProducts creates a product validator backed by st.
func NewProducts(st Storage) *Products {
	return &Products{st: st}
}

// ValidateCreate sanitizes a full product payload and checks SKU
// uniqueness against the whole product population.
func (v *Products) ValidateCreate(ctx context.Context, payload map[string]any) (*model.ProductDraft, error) {
	if payload == nil {
		return nil, ErrInvalidBody
	}

	draft := &model.ProductDraft{}
	var err error

	if draft.Name, err = normalizeName(payload["name"], true); err != nil {
		return nil, err
	}
	if draft.Price, _, err = normalizeAmount("price", payload["price"], true); err != nil {
		return nil, err
	}
	if draft.Sku, err = normalizeSku(payload["sku"], true); err != nil {
		return nil, err
	}
	if draft.Description, err = normalizeOptionalString("description", payload["description"]); err != nil {
		return nil, err
	}
	if draft.Active, err = normalizeBoolean("active", payload["active"], false, true); err != nil {
		return nil, err
	}

	if err := checkUnique(ctx, v.st, model.EntityProduct, "sku", draft.Sku, ""); err != nil {
		return nil, err
	}
	return draft, nil
}

// ValidateUpdate builds a minimal patch from the keys present in the
// payload; the SKU uniqueness guard re-runs only when the SKU changes.
func (v *Products) ValidateUpdate(ctx context.Context, payload map[string]any, current model.Product) (*model.ProductPatch, error) {
	if payload == nil {
		return nil, ErrInvalidBody
	}

	patch := &model.ProductPatch{}

	if raw, ok := payload["name"]; ok {
		name, err := normalizeName(raw, true)
		if err != nil {
			return nil, err
		}
		patch.Name = &name
	}
	if raw, ok := payload["price"]; ok {
		price, _, err := normalizeAmount("price", raw, true)
		if err != nil {
			return nil, err
		}
		patch.Price = &price
	}
	if raw, ok := payload["sku"]; ok {
		sku, err := normalizeSku(raw, true)
		if err != nil {
			return nil, err
		}
		patch.Sku = &sku
	}
	if raw, ok := payload["description"]; ok {
		description, err := normalizeOptionalString("description", raw)
		if err != nil {
			return nil, err
		}
		patch.Description = model.SetString(description)
	}
	if raw, ok := payload["active"]; ok {
		active, err := normalizeBoolean("active", raw, true, false)
		if err != nil {
			return nil, err
		}
		patch.Active = &active
	}

	if patch.IsZero() {
		return nil, ErrNoChange
	}

	if patch.Sku != nil {
		currentSku := strings.ToUpper(strings.TrimSpace(current.Sku))
		if *patch.Sku != currentSku {
			if err := checkUnique(ctx, v.st, model.EntityProduct, "sku", *patch.Sku, current.ID); err != nil {
				return nil, err
			}
		}
	}
	return patch, nil
}
