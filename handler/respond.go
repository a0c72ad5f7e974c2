package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/aws/aws-lambda-go/events"

	"github.com/jacentio/storefront/store"
	"github.com/jacentio/storefront/validate"
)

type messageBody struct {
	Message string `json:"message"`
}

type listBody struct {
	Items any `json:"items"`
	Count int `json:"count"`
}

func jsonResponse(status int, body any) events.APIGatewayProxyResponse {
	data, err := json.Marshal(body)
	if err != nil {
		return events.APIGatewayProxyResponse{
			StatusCode: http.StatusInternalServerError,
			Headers:    map[string]string{"Content-Type": "application/json"},
			Body:       `{"message":"internal error"}`,
		}
	}
	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       string(data),
	}
}

func ok(body any) events.APIGatewayProxyResponse {
	return jsonResponse(http.StatusOK, body)
}

func created(body any) events.APIGatewayProxyResponse {
	return jsonResponse(http.StatusCreated, body)
}

func noContent() events.APIGatewayProxyResponse {
	return events.APIGatewayProxyResponse{StatusCode: http.StatusNoContent}
}

func badRequest(message string) events.APIGatewayProxyResponse {
	return jsonResponse(http.StatusBadRequest, messageBody{Message: message})
}

func unauthorized(message string) events.APIGatewayProxyResponse {
	return jsonResponse(http.StatusUnauthorized, messageBody{Message: message})
}

func forbidden(message string) events.APIGatewayProxyResponse {
	return jsonResponse(http.StatusForbidden, messageBody{Message: message})
}

func notFound(message string) events.APIGatewayProxyResponse {
	return jsonResponse(http.StatusNotFound, messageBody{Message: message})
}

func conflict(message string) events.APIGatewayProxyResponse {
	return jsonResponse(http.StatusConflict, messageBody{Message: message})
}

// parseBody decodes a JSON object payload, returning a ready error
// response for missing or malformed bodies.
func parseBody(req events.APIGatewayProxyRequest) (map[string]any, *events.APIGatewayProxyResponse) {
	if req.Body == "" {
		resp := badRequest("missing body")
		return nil, &resp
	}
	var payload map[string]any
	if err := json.Unmarshal([]byte(req.Body), &payload); err != nil {
		resp := badRequest("invalid JSON body")
		return nil, &resp
	}
	return payload, nil
}

// errorResponse maps typed validation and store failures to HTTP statuses.
// Anything unrecognized is an unexpected failure and surfaces as a 500.
func (a *API) errorResponse(err error) events.APIGatewayProxyResponse {
	var fieldErr *validate.FieldError
	var conflictErr *validate.ConflictError
	var refErr *validate.ReferenceNotFoundError

	switch {
	case errors.Is(err, validate.ErrInvalidBody), errors.Is(err, validate.ErrNoChange):
		return badRequest(err.Error())
	case errors.As(err, &fieldErr):
		return badRequest(err.Error())
	case errors.As(err, &refErr):
		return notFound(err.Error())
	case errors.As(err, &conflictErr):
		return conflict(err.Error())
	case errors.Is(err, store.ErrDuplicateValue), errors.Is(err, store.ErrAlreadyExists):
		return conflict("duplicate value for unique field")
	case errors.Is(err, store.ErrNotFound):
		return notFound("not found")
	}

	a.logger.Error("request failed", "error", err)
	return jsonResponse(http.StatusInternalServerError, messageBody{Message: "internal error"})
}
