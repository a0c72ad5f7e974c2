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

// CreateCustomer handles POST /customers.
func (a *API) CreateCustomer(ctx context.Context, req events.APIGatewayProxyRequest) events.APIGatewayProxyResponse {
	payload, errResp := parseBody(req)
	if errResp != nil {
		return *errResp
	}

	claims := auth.FromRequest(req)
	if !a.policy.CanMutate(claims, model.EntityCustomer, "", auth.ActionCreate) {
		return forbidden("a valid caller identity is required")
	}

	draft, err := a.customers.ValidateCreate(ctx, payload)
	if err != nil {
		return a.errorResponse(err)
	}

	rec := draft.Record(uuid.NewString(), claims.Sub, time.Now())
	if err := a.store.PutRecord(ctx, rec); err != nil {
		return a.errorResponse(err)
	}

	a.logger.Info("customer created", "id", rec.ID)
	return created(rec)
}

// GetCustomer handles GET /customers/{id}.
func (a *API) GetCustomer(ctx context.Context, req events.APIGatewayProxyRequest) events.APIGatewayProxyResponse {
	customer, errResp := a.fetchCustomer(ctx, req)
	if errResp != nil {
		return *errResp
	}
	return ok(customer)
}

// ListCustomers handles GET /customers: latest 50, newest first.
func (a *API) ListCustomers(ctx context.Context, req events.APIGatewayProxyRequest) events.APIGatewayProxyResponse {
	return a.listEntity(ctx, model.EntityCustomer)
}

// UpdateCustomer handles PUT /customers/{id}.
func (a *API) UpdateCustomer(ctx context.Context, req events.APIGatewayProxyRequest) events.APIGatewayProxyResponse {
	payload, errResp := parseBody(req)
	if errResp != nil {
		return *errResp
	}

	current, errResp := a.fetchCustomer(ctx, req)
	if errResp != nil {
		return *errResp
	}

	claims := auth.FromRequest(req)
	if !a.policy.CanMutate(claims, model.EntityCustomer, current.OwnerSub, auth.ActionUpdate) {
		return forbidden("not allowed to update this customer")
	}

	patch, err := a.customers.ValidateUpdate(ctx, payload, current)
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

	a.logger.Info("customer updated", "id", current.ID)
	return ok(updated)
}

// DeleteCustomer handles DELETE /customers/{id}. Admin only.
func (a *API) DeleteCustomer(ctx context.Context, req events.APIGatewayProxyRequest) events.APIGatewayProxyResponse {
	claims := auth.FromRequest(req)
	if !a.policy.CanMutate(claims, model.EntityCustomer, "", auth.ActionDelete) {
		return forbidden("only admin can delete customers")
	}

	current, errResp := a.fetchCustomer(ctx, req)
	if errResp != nil {
		return *errResp
	}

	if err := a.store.DeleteRecord(ctx, current); err != nil {
		return a.errorResponse(err)
	}

	a.logger.Info("customer deleted", "id", current.ID)
	return noContent()
}

// fetchCustomer loads the record at {id} and verifies its entity tag.
func (a *API) fetchCustomer(ctx context.Context, req events.APIGatewayProxyRequest) (model.Customer, *events.APIGatewayProxyResponse) {
	id := req.PathParameters["id"]
	if id == "" {
		resp := badRequest("missing path parameter: id")
		return model.Customer{}, &resp
	}

	item, err := a.store.Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		resp := notFound("customer not found")
		return model.Customer{}, &resp
	}
	if err != nil {
		resp := a.errorResponse(err)
		return model.Customer{}, &resp
	}

	rec, err := model.Decode(item)
	if err != nil {
		resp := notFound("customer not found")
		return model.Customer{}, &resp
	}
	customer, ok := rec.(model.Customer)
	if !ok {
		resp := notFound("customer not found")
		return model.Customer{}, &resp
	}
	return customer, nil
}

// listEntity returns one newest-first page of an entity's records.
func (a *API) listEntity(ctx context.Context, entity model.Entity) events.APIGatewayProxyResponse {
	page, err := a.store.QueryByEntity(ctx, store.Query{
		Entity:     string(entity),
		Descending: true,
		Limit:      50,
	})
	if err != nil {
		return a.errorResponse(err)
	}

	items := make([]any, 0, len(page.Items))
	for _, raw := range page.Items {
		rec, err := model.Decode(raw)
		if err != nil {
			a.logger.Warn("skipping undecodable item", "entity", entity, "error", err)
			continue
		}
		items = append(items, rec)
	}
	return ok(listBody{Items: items, Count: len(items)})
}
