package validate

import (
	"context"
	"strings"

	"github.com/jacentio/storefront/model"
)

// Customers validates customer create and update payloads.
type Customers struct {
	st Storage
}

// NewCustomers creates a customer validator backed by st.
func NewCustomers(st Storage) *Customers {
	return &Customers{st: st}
}

// ValidateCreate sanitizes a full customer payload and checks email
// uniqueness against the whole customer population.
func (v *Customers) ValidateCreate(ctx context.Context, payload map[string]any) (*model.CustomerDraft, error) {
	if payload == nil {
		return nil, ErrInvalidBody
	}

	draft := &model.CustomerDraft{}
	var err error

	if draft.Name, err = normalizeName(payload["name"], true); err != nil {
		return nil, err
	}
	if draft.Email, err = normalizeEmail(payload["email"], true); err != nil {
		return nil, err
	}
	if draft.Phone, err = normalizeOptionalString("phone", payload["phone"]); err != nil {
		return nil, err
	}
	if draft.Address, err = normalizeOptionalString("address", payload["address"]); err != nil {
		return nil, err
	}
	if draft.Active, err = normalizeBoolean("active", payload["active"], false, true); err != nil {
		return nil, err
	}

	if err := checkUnique(ctx, v.st, model.EntityCustomer, "email", draft.Email, ""); err != nil {
		return nil, err
	}
	return draft, nil
}

// ValidateUpdate builds a minimal patch from the keys present in the
// payload. A mentioned field must carry a valid value; the email uniqueness
// guard re-runs only when the email actually changes.
func (v *Customers) ValidateUpdate(ctx context.Context, payload map[string]any, current model.Customer) (*model.CustomerPatch, error) {
	if payload == nil {
		return nil, ErrInvalidBody
	}

	patch := &model.CustomerPatch{}

	if raw, ok := payload["name"]; ok {
		name, err := normalizeName(raw, true)
		if err != nil {
			return nil, err
		}
		patch.Name = &name
	}
	if raw, ok := payload["email"]; ok {
		email, err := normalizeEmail(raw, true)
		if err != nil {
			return nil, err
		}
		patch.Email = &email
	}
	if raw, ok := payload["phone"]; ok {
		phone, err := normalizeOptionalString("phone", raw)
		if err != nil {
			return nil, err
		}
		patch.Phone = model.SetString(phone)
	}
	if raw, ok := payload["address"]; ok {
		address, err := normalizeOptionalString("address", raw)
		if err != nil {
			return nil, err
		}
		patch.Address = model.SetString(address)
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

	if patch.Email != nil {
		currentEmail := strings.ToLower(strings.TrimSpace(current.Email))
		if *patch.Email != currentEmail {
			if err := checkUnique(ctx, v.st, model.EntityCustomer, "email", *patch.Email, current.ID); err != nil {
				return nil, err
			}
		}
	}
	return patch, nil
}
