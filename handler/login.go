package handler

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	cogtypes "github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"
)

// CognitoAuth is the slice of the Cognito client used by the login handler.
type CognitoAuth interface {
	InitiateAuth(ctx context.Context, params *cognitoidentityprovider.InitiateAuthInput, optFns ...func(*cognitoidentityprovider.Options)) (*cognitoidentityprovider.InitiateAuthOutput, error)
}

type loginRequest struct {
	Username     string `json:"username"`
	Password     string `json:"password"`
	RefreshToken string `json:"refreshToken"`
}

type loginResponse struct {
	IDToken      string `json:"idToken,omitempty"`
	AccessToken  string `json:"accessToken,omitempty"`
	RefreshToken string `json:"refreshToken,omitempty"`
	TokenType    string `json:"tokenType"`
	ExpiresIn    int32  `json:"expiresIn,omitempty"`
}

// Login handles POST /auth/login: password auth, or token refresh when a
// refresh token is supplied.
func (a *API) Login(ctx context.Context, req events.APIGatewayProxyRequest) events.APIGatewayProxyResponse {
	if a.clientID == "" {
		a.logger.Error("missing USER_POOL_CLIENT_ID configuration")
		return badRequest("user pool client not configured")
	}
	if req.Body == "" {
		return badRequest("missing body")
	}

	var payload loginRequest
	if err := json.Unmarshal([]byte(req.Body), &payload); err != nil {
		return badRequest("invalid JSON body")
	}

	input := &cognitoidentityprovider.InitiateAuthInput{
		ClientId: aws.String(a.clientID),
	}
	if payload.RefreshToken != "" {
		input.AuthFlow = cogtypes.AuthFlowTypeRefreshTokenAuth
		input.AuthParameters = map[string]string{"REFRESH_TOKEN": payload.RefreshToken}
	} else {
		if payload.Username == "" || payload.Password == "" {
			return badRequest("username and password are required")
		}
		input.AuthFlow = cogtypes.AuthFlowTypeUserPasswordAuth
		input.AuthParameters = map[string]string{
			"USERNAME": payload.Username,
			"PASSWORD": payload.Password,
		}
	}

	result, err := a.cognito.InitiateAuth(ctx, input)
	if err != nil {
		return a.loginError(err)
	}

	authn := result.AuthenticationResult
	if authn == nil || (authn.IdToken == nil && authn.AccessToken == nil) {
		a.logger.Error("unexpected authentication response")
		return unauthorized("authentication failed")
	}

	refreshToken := aws.ToString(authn.RefreshToken)
	if refreshToken == "" {
		refreshToken = payload.RefreshToken
	}
	tokenType := aws.ToString(authn.TokenType)
	if tokenType == "" {
		tokenType = "Bearer"
	}

	return ok(loginResponse{
		IDToken:      aws.ToString(authn.IdToken),
		AccessToken:  aws.ToString(authn.AccessToken),
		RefreshToken: refreshToken,
		TokenType:    tokenType,
		ExpiresIn:    authn.ExpiresIn,
	})
}

// loginError classifies Cognito failures into caller-facing statuses.
func (a *API) loginError(err error) events.APIGatewayProxyResponse {
	var notAuthorized *cogtypes.NotAuthorizedException
	var userNotFound *cogtypes.UserNotFoundException
	var notConfirmed *cogtypes.UserNotConfirmedException
	var resetRequired *cogtypes.PasswordResetRequiredException
	if errors.As(err, &notAuthorized) || errors.As(err, &userNotFound) ||
		errors.As(err, &notConfirmed) || errors.As(err, &resetRequired) {
		return unauthorized("invalid username or password")
	}

	var invalidParam *cogtypes.InvalidParameterException
	if errors.As(err, &invalidParam) {
		return badRequest("invalid parameters for authentication")
	}

	a.logger.Error("authentication request failed", "error", err)
	return badRequest("authentication request failed")
}
