// Package auth extracts verified caller identity from API Gateway requests
// and decides whether a mutation is permitted.
package auth

import (
	"strings"

	"github.com/aws/aws-lambda-go/events"
)

// Claims are the identity attributes verified upstream by the authorizer:
// the caller's subject and group memberships.
type Claims struct {
	Sub    string
	Groups []string
}

// FromRequest extracts claims from the API Gateway authorizer context.
// Cognito delivers groups either as a list or comma-joined in one string.
func FromRequest(req events.APIGatewayProxyRequest) Claims {
	raw, ok := req.RequestContext.Authorizer["claims"].(map[string]any)
	if !ok {
		return Claims{}
	}

	c := Claims{}
	if sub, ok := raw["sub"].(string); ok {
		c.Sub = sub
	}
	switch groups := raw["cognito:groups"].(type) {
	case string:
		for _, g := range strings.Split(groups, ",") {
			if g = strings.TrimSpace(g); g != "" {
				c.Groups = append(c.Groups, g)
			}
		}
	case []any:
		for _, g := range groups {
			if s, ok := g.(string); ok {
				c.Groups = append(c.Groups, s)
			}
		}
	}
	return c
}
