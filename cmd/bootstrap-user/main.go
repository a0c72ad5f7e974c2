// Command bootstrap-user provisions an initial account after deployment:
// it ensures the user exists, sets a permanent password, and optionally
// adds it to the admin group. Cognito user creation is eventually
// consistent, so the follow-up calls retry on user-not-found.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	cogtypes "github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"
)

const (
	maxAttempts   = 3
	retryInterval = 1500 * time.Millisecond
)

func main() {
	var (
		userPoolID = flag.String("user-pool-id", os.Getenv("USER_POOL_ID"), "Cognito user pool id")
		clientID   = flag.String("client-id", os.Getenv("USER_POOL_CLIENT_ID"), "Cognito app client id (for the token check)")
		username   = flag.String("username", "juan@example.com", "username (email) to provision")
		password   = flag.String("password", "P@ssw0rd!", "permanent password to set")
		admin      = flag.Bool("admin", true, "add the user to the admin group")
		adminGroup = flag.String("admin-group", "admin", "admin group name")
	)
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	if *userPoolID == "" {
		logger.Error("missing -user-pool-id")
		os.Exit(1)
	}

	ctx := context.Background()
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		logger.Error("failed to load AWS configuration", "error", err)
		os.Exit(1)
	}
	client := cognitoidentityprovider.NewFromConfig(awsCfg)

	if err := ensureUser(ctx, client, *userPoolID, *username); err != nil {
		logger.Error("failed to ensure user", "username", *username, "error", err)
		os.Exit(1)
	}

	if err := setPermanentPassword(ctx, client, *userPoolID, *username, *password); err != nil {
		logger.Error("failed to set password", "username", *username, "error", err)
		os.Exit(1)
	}

	if *admin {
		if err := addToGroup(ctx, client, *userPoolID, *username, *adminGroup); err != nil {
			// A missing group should not fail provisioning.
			logger.Warn("could not add user to admin group", "group", *adminGroup, "error", err)
		}
	}

	logger.Info("bootstrap complete", "username", *username, "admin", *admin)

	if *clientID != "" {
		token, err := fetchIDToken(ctx, client, *clientID, *username, *password)
		if err != nil {
			logger.Warn("could not obtain a token", "error", err)
			return
		}
		fmt.Println(token)
	}
}

// ensureUser creates the user if it does not already exist.
func ensureUser(ctx context.Context, client *cognitoidentityprovider.Client, userPoolID, username string) error {
	_, err := client.AdminGetUser(ctx, &cognitoidentityprovider.AdminGetUserInput{
		UserPoolId: aws.String(userPoolID),
		Username:   aws.String(username),
	})
	if err == nil {
		return nil
	}
	var notFound *cogtypes.UserNotFoundException
	if !errors.As(err, &notFound) {
		return err
	}

	_, err = client.AdminCreateUser(ctx, &cognitoidentityprovider.AdminCreateUserInput{
		UserPoolId:    aws.String(userPoolID),
		Username:      aws.String(username),
		MessageAction: cogtypes.MessageActionTypeSuppress,
		UserAttributes: []cogtypes.AttributeType{
			{Name: aws.String("email"), Value: aws.String(username)},
			{Name: aws.String("email_verified"), Value: aws.String("true")},
		},
	})
	var exists *cogtypes.UsernameExistsException
	if err != nil && !errors.As(err, &exists) {
		return err
	}

	// Newly created users may not be visible immediately.
	time.Sleep(retryInterval)
	return nil
}

// setPermanentPassword retries on user-not-found while the new user
// propagates.
func setPermanentPassword(ctx context.Context, client *cognitoidentityprovider.Client, userPoolID, username, password string) error {
	var lastErr error
	for i := 0; i < maxAttempts; i++ {
		_, err := client.AdminSetUserPassword(ctx, &cognitoidentityprovider.AdminSetUserPasswordInput{
			UserPoolId: aws.String(userPoolID),
			Username:   aws.String(username),
			Password:   aws.String(password),
			Permanent:  true,
		})
		if err == nil {
			return nil
		}
		var notFound *cogtypes.UserNotFoundException
		if !errors.As(err, &notFound) {
			return err
		}
		lastErr = err
		time.Sleep(retryInterval)
	}
	return lastErr
}

func addToGroup(ctx context.Context, client *cognitoidentityprovider.Client, userPoolID, username, group string) error {
	_, err := client.AdminAddUserToGroup(ctx, &cognitoidentityprovider.AdminAddUserToGroupInput{
		UserPoolId: aws.String(userPoolID),
		Username:   aws.String(username),
		GroupName:  aws.String(group),
	})
	return err
}

// fetchIDToken retries the password auth briefly; it can be rejected right
// after the password was set.
func fetchIDToken(ctx context.Context, client *cognitoidentityprovider.Client, clientID, username, password string) (string, error) {
	var lastErr error
	for i := 0; i < maxAttempts; i++ {
		result, err := client.InitiateAuth(ctx, &cognitoidentityprovider.InitiateAuthInput{
			ClientId: aws.String(clientID),
			AuthFlow: cogtypes.AuthFlowTypeUserPasswordAuth,
			AuthParameters: map[string]string{
				"USERNAME": username,
				"PASSWORD": password,
			},
		})
		if err == nil && result.AuthenticationResult != nil && result.AuthenticationResult.IdToken != nil {
			return *result.AuthenticationResult.IdToken, nil
		}
		if err != nil {
			lastErr = err
		} else {
			lastErr = errors.New("no id token in authentication result")
		}
		time.Sleep(retryInterval)
	}
	return "", lastErr
}
