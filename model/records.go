package model

import "time"

// Customer is a customer record. Email is unique across all customers.
type Customer struct {
	ID        string `dynamodbav:"id" json:"id"`
	Entity    Entity `dynamodbav:"entity" json:"entity"`
	Name      string `dynamodbav:"name" json:"name"`
	Email     string `dynamodbav:"email" json:"email"`
	Phone     string `dynamodbav:"phone,omitempty" json:"phone,omitempty"`
	Address   string `dynamodbav:"address,omitempty" json:"address,omitempty"`
	Active    bool   `dynamodbav:"active" json:"active"`
	CreatedAt string `dynamodbav:"createdAt" json:"createdAt"`
	OwnerSub  string `dynamodbav:"ownerSub,omitempty" json:"ownerSub,omitempty"`
}

func (c Customer) RecordID() string   { return c.ID }
func (c Customer) EntityType() string { return string(EntityCustomer) }

func (c Customer) UniqueFields() map[string]string {
	return map[string]string{"email": c.Email}
}

// Product is a catalog record. SKU is unique across all products.
type Product struct {
	ID          string  `dynamodbav:"id" json:"id"`
	Entity      Entity  `dynamodbav:"entity" json:"entity"`
	Name        string  `dynamodbav:"name" json:"name"`
	Price       float64 `dynamodbav:"price" json:"price"`
	Sku         string  `dynamodbav:"sku" json:"sku"`
	Description string  `dynamodbav:"description,omitempty" json:"description,omitempty"`
	Active      bool    `dynamodbav:"active" json:"active"`
	CreatedAt   string  `dynamodbav:"createdAt" json:"createdAt"`
	OwnerSub    string  `dynamodbav:"ownerSub,omitempty" json:"ownerSub,omitempty"`
}

func (p Product) RecordID() string   { return p.ID }
func (p Product) EntityType() string { return string(EntityProduct) }

func (p Product) UniqueFields() map[string]string {
	return map[string]string{"sku": p.Sku}
}

// OrderLine is one line item of an order.
type OrderLine struct {
	Sku string `dynamodbav:"sku" json:"sku"`
	Qty int    `dynamodbav:"qty" json:"qty"`
}

// Order references a customer by id and products by SKU. References are
// soft: they are checked at validation time only, and nothing prevents the
// referenced records from being deleted afterward.
type Order struct {
	ID          string      `dynamodbav:"id" json:"id"`
	Entity      Entity      `dynamodbav:"entity" json:"entity"`
	CustomerID  string      `dynamodbav:"customerId" json:"customerId"`
	Products    []OrderLine `dynamodbav:"products" json:"products"`
	ProductSkus []string    `dynamodbav:"productSkus" json:"productSkus"`
	Total       float64     `dynamodbav:"total" json:"total"`
	Status      OrderStatus `dynamodbav:"status" json:"status"`
	Notes       string      `dynamodbav:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt   string      `dynamodbav:"createdAt" json:"createdAt"`
	OwnerSub    string      `dynamodbav:"ownerSub" json:"ownerSub"`
}

func (o Order) RecordID() string   { return o.ID }
func (o Order) EntityType() string { return string(EntityOrder) }

// CustomerDraft is a sanitized customer create payload. Server-assigned
// metadata (id, entity, createdAt, ownerSub) is attached by the caller.
type CustomerDraft struct {
	Name    string
	Email   string
	Phone   string
	Address string
	Active  bool
}

// Record combines the draft with server-assigned metadata.
func (d CustomerDraft) Record(id, ownerSub string, createdAt time.Time) Customer {
	return Customer{
		ID:        id,
		Entity:    EntityCustomer,
		Name:      d.Name,
		Email:     d.Email,
		Phone:     d.Phone,
		Address:   d.Address,
		Active:    d.Active,
		CreatedAt: createdAt.UTC().Format(time.RFC3339),
		OwnerSub:  ownerSub,
	}
}

// ProductDraft is a sanitized product create payload.
type ProductDraft struct {
	Name        string
	Price       float64
	Sku         string
	Description string
	Active      bool
}

// Record combines the draft with server-assigned metadata.
func (d ProductDraft) Record(id, ownerSub string, createdAt time.Time) Product {
	return Product{
		ID:          id,
		Entity:      EntityProduct,
		Name:        d.Name,
		Price:       d.Price,
		Sku:         d.Sku,
		Description: d.Description,
		Active:      d.Active,
		CreatedAt:   createdAt.UTC().Format(time.RFC3339),
		OwnerSub:    ownerSub,
	}
}

// OrderDraft is a sanitized order create payload.
type OrderDraft struct {
	CustomerID  string
	Products    []OrderLine
	ProductSkus []string
	Total       float64
	Status      OrderStatus
	Notes       string
}

// Record combines the draft with server-assigned metadata.
func (d OrderDraft) Record(id, ownerSub string, createdAt time.Time) Order {
	return Order{
		ID:          id,
		Entity:      EntityOrder,
		CustomerID:  d.CustomerID,
		Products:    d.Products,
		ProductSkus: d.ProductSkus,
		Total:       d.Total,
		Status:      d.Status,
		Notes:       d.Notes,
		CreatedAt:   createdAt.UTC().Format(time.RFC3339),
		OwnerSub:    ownerSub,
	}
}
