package auth

import (
	"testing"

	"github.com/jacentio/storefront/model"
)

func TestNewPolicy_DefaultGroup(t *testing.T) {
	p := NewPolicy("")
	if p.AdminGroup != "admin" {
		t.Errorf("expected default group 'admin', got %q", p.AdminGroup)
	}
}

func TestIsAdmin(t *testing.T) {
	p := NewPolicy("admin")

	if !p.IsAdmin(Claims{Sub: "u1", Groups: []string{"staff", "admin"}}) {
		t.Error("expected admin membership to be detected")
	}
	if p.IsAdmin(Claims{Sub: "u1", Groups: []string{"staff"}}) {
		t.Error("expected non-member to not be admin")
	}
	if p.IsAdmin(Claims{Sub: "u1"}) {
		t.Error("expected caller without groups to not be admin")
	}
}

func TestIsAdmin_CustomGroup(t *testing.T) {
	p := NewPolicy("superusers")

	if p.IsAdmin(Claims{Groups: []string{"admin"}}) {
		t.Error("expected the default group to not match a custom policy")
	}
	if !p.IsAdmin(Claims{Groups: []string{"superusers"}}) {
		t.Error("expected custom group membership to be detected")
	}
}

func TestCanMutate(t *testing.T) {
	p := NewPolicy("admin")
	admin := Claims{Sub: "admin-1", Groups: []string{"admin"}}
	owner := Claims{Sub: "owner-1"}
	other := Claims{Sub: "other-1"}
	anonymous := Claims{}

	tests := []struct {
		name     string
		claims   Claims
		entity   model.Entity
		ownerSub string
		action   Action
		allowed  bool
	}{
		{"anyone authenticated creates customers", owner, model.EntityCustomer, "", ActionCreate, true},
		{"anonymous cannot create customers", anonymous, model.EntityCustomer, "", ActionCreate, false},
		{"owner updates own customer", owner, model.EntityCustomer, "owner-1", ActionUpdate, true},
		{"non-owner cannot update customer", other, model.EntityCustomer, "owner-1", ActionUpdate, false},
		{"admin updates any customer", admin, model.EntityCustomer, "owner-1", ActionUpdate, true},
		{"ownerless record only admin-updatable", other, model.EntityCustomer, "", ActionUpdate, false},
		{"owner cannot delete customer", owner, model.EntityCustomer, "owner-1", ActionDelete, false},
		{"admin deletes customer", admin, model.EntityCustomer, "owner-1", ActionDelete, true},

		{"only admin creates products", owner, model.EntityProduct, "", ActionCreate, false},
		{"admin creates products", admin, model.EntityProduct, "", ActionCreate, true},
		{"product owner cannot update product", owner, model.EntityProduct, "owner-1", ActionUpdate, false},
		{"admin updates products", admin, model.EntityProduct, "", ActionUpdate, true},
		{"only admin deletes products", other, model.EntityProduct, "", ActionDelete, false},

		{"anyone authenticated creates orders", other, model.EntityOrder, "", ActionCreate, true},
		{"anonymous cannot create orders", anonymous, model.EntityOrder, "", ActionCreate, false},
		{"owner updates own order", owner, model.EntityOrder, "owner-1", ActionUpdate, true},
		{"non-owner cannot update order", other, model.EntityOrder, "owner-1", ActionUpdate, false},
		{"admin deletes orders", admin, model.EntityOrder, "", ActionDelete, true},
		{"owner cannot delete order", owner, model.EntityOrder, "owner-1", ActionDelete, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := p.CanMutate(tt.claims, tt.entity, tt.ownerSub, tt.action)
			if got != tt.allowed {
				t.Errorf("CanMutate(%s, %s, %q, %s) = %v, want %v",
					tt.claims.Sub, tt.entity, tt.ownerSub, tt.action, got, tt.allowed)
			}
		})
	}
}

func TestCanMutate_UnknownEntity(t *testing.T) {
	p := NewPolicy("admin")
	admin := Claims{Sub: "admin-1", Groups: []string{"admin"}}

	if p.CanMutate(admin, model.Entity("WIDGET"), "", ActionCreate) {
		t.Error("expected unknown entity to be denied")
	}
}
