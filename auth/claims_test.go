package auth

import (
	"reflect"
	"testing"

	"github.com/aws/aws-lambda-go/events"
)

func requestWithClaims(claims map[string]any) events.APIGatewayProxyRequest {
	return events.APIGatewayProxyRequest{
		RequestContext: events.APIGatewayProxyRequestContext{
			Authorizer: map[string]any{"claims": claims},
		},
	}
}

func TestFromRequest_NoAuthorizer(t *testing.T) {
	c := FromRequest(events.APIGatewayProxyRequest{})
	if c.Sub != "" || c.Groups != nil {
		t.Errorf("expected empty claims, got %+v", c)
	}
}

func TestFromRequest_SubOnly(t *testing.T) {
	c := FromRequest(requestWithClaims(map[string]any{"sub": "user-1"}))
	if c.Sub != "user-1" {
		t.Errorf("expected sub 'user-1', got %q", c.Sub)
	}
	if c.Groups != nil {
		t.Errorf("expected no groups, got %v", c.Groups)
	}
}

func TestFromRequest_GroupsAsString(t *testing.T) {
	c := FromRequest(requestWithClaims(map[string]any{
		"sub":            "user-1",
		"cognito:groups": "admin, staff ,",
	}))
	if !reflect.DeepEqual(c.Groups, []string{"admin", "staff"}) {
		t.Errorf("expected [admin staff], got %v", c.Groups)
	}
}

func TestFromRequest_GroupsAsList(t *testing.T) {
	c := FromRequest(requestWithClaims(map[string]any{
		"sub":            "user-1",
		"cognito:groups": []any{"admin", "staff"},
	}))
	if !reflect.DeepEqual(c.Groups, []string{"admin", "staff"}) {
		t.Errorf("expected [admin staff], got %v", c.Groups)
	}
}

func TestFromRequest_NonStringSub(t *testing.T) {
	c := FromRequest(requestWithClaims(map[string]any{"sub": 42}))
	if c.Sub != "" {
		t.Errorf("expected empty sub for non-string claim, got %q", c.Sub)
	}
}
