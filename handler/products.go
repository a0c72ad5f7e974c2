package handler

import (
	"context"
	"errors"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/google/uuid"

	"github.com/jacentio/storefront/auth"
	"github.com/jacentio/storefront/model"
	"github.com/jacentio/storefront/store"
)

// CreateProduct handles POST /products. Admin only.
func (a *API) CreateProduct(ctx context.Context, req events.APIGatewayProxyRequest) events.APIGatewayProxyResponse {
	claims := auth.FromRequest(req)
	if !a.policy.CanMutate(claims, model.EntityProduct, "", auth.ActionCreate) {
		return forbidden("only admin can create products")
	}

	payload, errResp := parseBody(req)
	if errResp != nil {
		return *errResp
	}

	draft, err := a.products.ValidateCreate(ctx, payload)
	if err != nil {
		return a.errorResponse(err)
	}

	rec := draft.Record(uuid.NewString(), claims.Sub, time.Now())
	if err := a.store.PutRecord(ctx, rec); err != nil {
		return a.errorResponse(err)
	}

	a.logger.Info("product created", "id", rec.ID, "sku", rec.Sku)
	return created(rec)
}

// GetProduct handles GET /products/{id}.
func (a *API) GetProduct(ctx context.Context, req events.APIGatewayProxyRequest) events.APIGatewayProxyResponse {
	product, errResp := a.fetchProduct(ctx, req)
	if errResp != nil {
		return *errResp
	}
	return ok(product)
}

// ListProducts handles GET /products: latest 50, newest first.
func (a *API) ListProducts(ctx context.Context, req events.APIGatewayProxyRequest) events.APIGatewayProxyResponse {
	return a.listEntity(ctx, model.EntityProduct)
}

// UpdateProduct handles PUT /products/{id}. Admin only.
func (a *API) UpdateProduct(ctx context.Context, req events.APIGatewayProxyRequest) events.APIGatewayProxyResponse {
	claims := auth.FromRequest(req)
	if !a.policy.CanMutate(claims, model.EntityProduct, "", auth.ActionUpdate) {
		return forbidden("only admin can update products")
	}

	payload, errResp := parseBody(req)
	if errResp != nil {
		return *errResp
	}

	current, errResp := a.fetchProduct(ctx, req)
	if errResp != nil {
		return *errResp
	}

	patch, err := a.products.ValidateUpdate(ctx, payload, current)
	if err != nil {
		return a.errorResponse(err)
	}

	changes, err := patch.Changes()
	if err != nil {
		return a.errorResponse(err)
	}

	item, err := a.store.UpdateRecord(ctx, current, changes, patch.UniqueSwaps(current))
	if err != nil {
		return a.errorResponse(err)
	}

	updated, err := model.Decode(item)
	if err != nil {
		return a.errorResponse(err)
	}

	a.logger.Info("product updated", "id", current.ID)
	return ok(updated)
}

// DeleteProduct handles DELETE /products/{id}. Admin only.
func (a *API) DeleteProduct(ctx context.Context, req events.APIGatewayProxyRequest) events.APIGatewayProxyResponse {
	claims := auth.FromRequest(req)
	if !a.policy.CanMutate(claims, model.EntityProduct, "", auth.ActionDelete) {
		return forbidden("only admin can delete products")
	}

	current, errResp := a.fetchProduct(ctx, req)
	if errResp != nil {
		return *errResp
	}

	if err := a.store.DeleteRecord(ctx, current); err != nil {
		return a.errorResponse(err)
	}

	a.logger.Info("product deleted", "id", current.ID, "sku", current.Sku)
	return ok(map[string]bool{"deleted": true})
}

// fetchProduct loads the record at {id} and verifies its entity tag.
func (a *API) fetchProduct(ctx context.Context, req events.APIGatewayProxyRequest) (model.Product, *events.APIGatewayProxyResponse) {
	id := req.PathParameters["id"]
	if id == "" {
		resp := badRequest("missing path parameter: id")
		return model.Product{}, &resp
	}

	item, err := a.store.Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		resp := notFound("product not found")
		return model.Product{}, &resp
	}
	if err != nil {
		resp := a.errorResponse(err)
		return model.Product{}, &resp
	}

	rec, err := model.Decode(item)
	if err != nil {
		resp := notFound("product not found")
		return model.Product{}, &resp
	}
	product, ok := rec.(model.Product)
	if !ok {
		resp := notFound("product not found")
		return model.Product{}, &resp
	}
	return product, nil
}
