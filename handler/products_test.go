package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/jacentio/storefront/model"
)

func widgetItem(t *testing.T) map[string]types.AttributeValue {
	t.Helper()
	return marshalItem(t, model.Product{
		ID:        "p1",
		Entity:    model.EntityProduct,
		Name:      "Widget",
		Price:     9.99,
		Sku:       "W-1",
		Active:    true,
		CreatedAt: "2026-03-15T10:30:00Z",
	})
}

func TestCreateProduct_NonAdminForbidden(t *testing.T) {
	api := newTestAPI(&fakeDynamo{}, &fakeCognito{}, Config{})

	req := request("POST", "/products", `{"name":"Widget","price":9.99,"sku":"W-1"}`, userClaims("sub-1"))
	resp := api.CreateProduct(context.Background(), req)

	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("expected 403, got %d", resp.StatusCode)
	}
}

func TestCreateProduct_Admin(t *testing.T) {
	fake := &fakeDynamo{}
	api := newTestAPI(fake, &fakeCognito{}, Config{})

	req := request("POST", "/products", `{"name":"Widget","price":9.99,"sku":" w-1 "}`, adminClaims("admin-1"))
	resp := api.CreateProduct(context.Background(), req)

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d (%s)", resp.StatusCode, resp.Body)
	}

	var body model.Product
	decodeBody(t, resp, &body)
	if body.Sku != "W-1" {
		t.Errorf("expected normalized sku, got %q", body.Sku)
	}
	// SKU uniqueness means the write goes through a transaction.
	if fake.transactIn == nil || len(fake.transactIn.TransactItems) != 2 {
		t.Error("expected a constraint-backed transactional write")
	}
}

func TestCreateProduct_CustomAdminGroup(t *testing.T) {
	api := newTestAPI(&fakeDynamo{}, &fakeCognito{}, Config{AdminGroup: "catalog-admins"})

	req := request("POST", "/products", `{"name":"Widget","price":9.99,"sku":"W-1"}`, adminClaims("admin-1"))
	resp := api.CreateProduct(context.Background(), req)

	// "admin" membership does not grant the custom group.
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("expected 403, got %d", resp.StatusCode)
	}
}

func TestGetProduct_Found(t *testing.T) {
	fake := &fakeDynamo{getOut: &dynamodb.GetItemOutput{Item: widgetItem(t)}}
	api := newTestAPI(fake, &fakeCognito{}, Config{})

	req := request("GET", "/products/{id}", "", nil)
	req.PathParameters = map[string]string{"id": "p1"}
	resp := api.GetProduct(context.Background(), req)

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var body model.Product
	decodeBody(t, resp, &body)
	if body.Sku != "W-1" || body.Price != 9.99 {
		t.Errorf("unexpected product %+v", body)
	}
}

func TestUpdateProduct_NonAdminForbidden(t *testing.T) {
	fake := &fakeDynamo{getOut: &dynamodb.GetItemOutput{Item: widgetItem(t)}}
	api := newTestAPI(fake, &fakeCognito{}, Config{})

	req := request("PUT", "/products/{id}", `{"price":12.0}`, userClaims("sub-1"))
	req.PathParameters = map[string]string{"id": "p1"}
	resp := api.UpdateProduct(context.Background(), req)

	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("expected 403, got %d", resp.StatusCode)
	}
}

func TestUpdateProduct_Admin(t *testing.T) {
	updated := widgetItem(t)
	updated["price"] = &types.AttributeValueMemberN{Value: "12"}
	fake := &fakeDynamo{
		getOut:    &dynamodb.GetItemOutput{Item: widgetItem(t)},
		updateOut: &dynamodb.UpdateItemOutput{Attributes: updated},
	}
	api := newTestAPI(fake, &fakeCognito{}, Config{})

	req := request("PUT", "/products/{id}", `{"price":12.0}`, adminClaims("admin-1"))
	req.PathParameters = map[string]string{"id": "p1"}
	resp := api.UpdateProduct(context.Background(), req)

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", resp.StatusCode, resp.Body)
	}
	var body model.Product
	decodeBody(t, resp, &body)
	if body.Price != 12 {
		t.Errorf("expected post-update price 12, got %v", body.Price)
	}
}

func TestDeleteProduct_Admin(t *testing.T) {
	fake := &fakeDynamo{getOut: &dynamodb.GetItemOutput{Item: widgetItem(t)}}
	api := newTestAPI(fake, &fakeCognito{}, Config{})

	req := request("DELETE", "/products/{id}", "", adminClaims("admin-1"))
	req.PathParameters = map[string]string{"id": "p1"}
	resp := api.DeleteProduct(context.Background(), req)

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var body map[string]bool
	decodeBody(t, resp, &body)
	if !body["deleted"] {
		t.Errorf("expected deleted flag, got %s", resp.Body)
	}
}

func TestDeleteProduct_NonAdminForbidden(t *testing.T) {
	api := newTestAPI(&fakeDynamo{}, &fakeCognito{}, Config{})

	req := request("DELETE", "/products/{id}", "", userClaims("sub-1"))
	req.PathParameters = map[string]string{"id": "p1"}
	resp := api.DeleteProduct(context.Background(), req)

	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("expected 403, got %d", resp.StatusCode)
	}
}
