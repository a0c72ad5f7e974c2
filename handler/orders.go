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

// CreateOrder handles POST /orders. Orders always carry the creator's
// subject, so an anonymous caller is rejected before validation.
func (a *API) CreateOrder(ctx context.Context, req events.APIGatewayProxyRequest) events.APIGatewayProxyResponse {
	claims := auth.FromRequest(req)
	if !a.policy.CanMutate(claims, model.EntityOrder, "", auth.ActionCreate) {
		return forbidden("a valid caller identity is required")
	}

	payload, errResp := parseBody(req)
	if errResp != nil {
		return *errResp
	}

	draft, err := a.orders.ValidateCreate(ctx, payload)
	if err != nil {
		return a.errorResponse(err)
	}

	rec := draft.Record(uuid.NewString(), claims.Sub, time.Now())
	if err := a.store.PutRecord(ctx, rec); err != nil {
		return a.errorResponse(err)
	}

	a.logger.Info("order created", "id", rec.ID, "customerId", rec.CustomerID)
	return created(rec)
}

// GetOrder handles GET /orders/{id}.
func (a *API) GetOrder(ctx context.Context, req events.APIGatewayProxyRequest) events.APIGatewayProxyResponse {
	order, errResp := a.fetchOrder(ctx, req)
	if errResp != nil {
		return *errResp
	}
	return ok(order)
}

// ListOrders handles GET /orders: latest 50, newest first.
func (a *API) ListOrders(ctx context.Context, req events.APIGatewayProxyRequest) events.APIGatewayProxyResponse {
	return a.listEntity(ctx, model.EntityOrder)
}

// UpdateOrder handles PUT /orders/{id}. Owner or admin.
func (a *API) UpdateOrder(ctx context.Context, req events.APIGatewayProxyRequest) events.APIGatewayProxyResponse {
	payload, errResp := parseBody(req)
	if errResp != nil {
		return *errResp
	}

	current, errResp := a.fetchOrder(ctx, req)
	if errResp != nil {
		return *errResp
	}

	claims := auth.FromRequest(req)
	if !a.policy.CanMutate(claims, model.EntityOrder, current.OwnerSub, auth.ActionUpdate) {
		return forbidden("not allowed to update this order")
	}

	patch, err := a.orders.ValidateUpdate(ctx, payload)
	if err != nil {
		return a.errorResponse(err)
	}

	changes, err := patch.Changes()
	if err != nil {
		return a.errorResponse(err)
	}

	item, err := a.store.UpdateRecord(ctx, current, changes, nil)
	if err != nil {
		return a.errorResponse(err)
	}

	updated, err := model.Decode(item)
	if err != nil {
		return a.errorResponse(err)
	}

	a.logger.Info("order updated", "id", current.ID)
	return ok(updated)
}

// DeleteOrder handles DELETE /orders/{id}. Admin only.
func (a *API) DeleteOrder(ctx context.Context, req events.APIGatewayProxyRequest) events.APIGatewayProxyResponse {
	claims := auth.FromRequest(req)
	if !a.policy.CanMutate(claims, model.EntityOrder, "", auth.ActionDelete) {
		return forbidden("only admin can delete orders")
	}

	current, errResp := a.fetchOrder(ctx, req)
	if errResp != nil {
		return *errResp
	}

	if err := a.store.DeleteRecord(ctx, current); err != nil {
		return a.errorResponse(err)
	}

	a.logger.Info("order deleted", "id", current.ID)
	return noContent()
}

// fetchOrder loads the record at {id} and verifies its entity tag.
func (a *API) fetchOrder(ctx context.Context, req events.APIGatewayProxyRequest) (model.Order, *events.APIGatewayProxyResponse) {
	id := req.PathParameters["id"]
	if id == "" {
		resp := badRequest("missing path parameter: id")
		return model.Order{}, &resp
	}

	item, err := a.store.Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		resp := notFound("order not found")
		return model.Order{}, &resp
	}
	if err != nil {
		resp := a.errorResponse(err)
		return model.Order{}, &resp
	}

	rec, err := model.Decode(item)
	if err != nil {
		resp := notFound("order not found")
		return model.Order{}, &resp
	}
	order, ok := rec.(model.Order)
	if !ok {
		resp := notFound("order not found")
		return model.Order{}, &resp
	}
	return order, nil
}
