// Command api is the Lambda entrypoint serving the records API behind
// API Gateway.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"

	"github.com/jacentio/storefront/handler"
	"github.com/jacentio/storefront/store"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	storeCfg, err := store.LoadConfig()
	if err != nil {
		logger.Error("invalid store configuration", "error", err)
		os.Exit(1)
	}
	handlerCfg, err := handler.LoadConfig()
	if err != nil {
		logger.Error("invalid handler configuration", "error", err)
		os.Exit(1)
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background())
	if err != nil {
		logger.Error("failed to load AWS configuration", "error", err)
		os.Exit(1)
	}

	st := store.New(dynamodb.NewFromConfig(awsCfg), storeCfg)
	cognito := cognitoidentityprovider.NewFromConfig(awsCfg)

	api := handler.New(st, cognito, handlerCfg, logger)
	lambda.Start(api.Route)
}
