// Package model defines the record kinds stored in the shared table and the
// typed partial-update representations applied to them.
package model

// Entity discriminates record kinds within the shared table.
type Entity string

const (
	EntityCustomer Entity = "CUSTOMER"
	EntityProduct  Entity = "PRODUCT"
	EntityOrder    Entity = "ORDER"
)

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	OrderStatusNew       OrderStatus = "NEW"
	OrderStatusPaid      OrderStatus = "PAID"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// OrderStatuses lists the allowed order statuses in declaration order.
func OrderStatuses() []OrderStatus {
	return []OrderStatus{OrderStatusNew, OrderStatusPaid, OrderStatusCancelled}
}

// Valid reports whether the status is a member of the allowed set.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusNew, OrderStatusPaid, OrderStatusCancelled:
		return true
	}
	return false
}
