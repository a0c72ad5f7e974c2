package handler

import (
	"context"

	"github.com/aws/aws-lambda-go/events"
)

// Route dispatches an API Gateway proxy event to its handler based on the
// resource template and HTTP method. Designed to be passed to lambda.Start.
func (a *API) Route(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	switch req.HTTPMethod + " " + req.Resource {
	case "POST /auth/login":
		return a.Login(ctx, req), nil

	case "POST /customers":
		return a.CreateCustomer(ctx, req), nil
	case "GET /customers":
		return a.ListCustomers(ctx, req), nil
	case "GET /customers/{id}":
		return a.GetCustomer(ctx, req), nil
	case "PUT /customers/{id}":
		return a.UpdateCustomer(ctx, req), nil
	case "DELETE /customers/{id}":
		return a.DeleteCustomer(ctx, req), nil

	case "POST /products":
		return a.CreateProduct(ctx, req), nil
	case "GET /products":
		return a.ListProducts(ctx, req), nil
	case "GET /products/{id}":
		return a.GetProduct(ctx, req), nil
	case "PUT /products/{id}":
		return a.UpdateProduct(ctx, req), nil
	case "DELETE /products/{id}":
		return a.DeleteProduct(ctx, req), nil

	case "POST /orders":
		return a.CreateOrder(ctx, req), nil
	case "GET /orders":
		return a.ListOrders(ctx, req), nil
	case "GET /orders/{id}":
		return a.GetOrder(ctx, req), nil
	case "PUT /orders/{id}":
		return a.UpdateOrder(ctx, req), nil
	case "DELETE /orders/{id}":
		return a.DeleteOrder(ctx, req), nil
	}

	return notFound("route not found"), nil
}
