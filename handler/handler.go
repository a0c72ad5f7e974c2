// Package handler adapts API Gateway proxy events to the validation core:
// it parses payloads, extracts claims, evaluates the access policy, runs
// the entity validators, and performs the resulting store writes.
package handler

import (
	"log/slog"

	"github.com/kelseyhightower/envconfig"

	"github.com/jacentio/storefront/auth"
	"github.com/jacentio/storefront/store"
	"github.com/jacentio/storefront/validate"
)

// Config holds handler-level configuration.
type Config struct {
	// AdminGroup is the Cognito group granting admin privileges.
	AdminGroup string `envconfig:"ADMIN_GROUP" default:"admin"`

	// UserPoolClientID is the Cognito app client used by the login handler.
	UserPoolClientID string `envconfig:"USER_POOL_CLIENT_ID"`
}

// LoadConfig reads the handler configuration from the environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// API holds the request handlers for all entity routes.
type API struct {
	store     *store.Store
	customers *validate.Customers
	products  *validate.Products
	orders    *validate.Orders
	policy    auth.Policy
	cognito   CognitoAuth
	clientID  string
	logger    *slog.Logger
}

// New creates the API with its validators and access policy.
func New(st *store.Store, cognito CognitoAuth, cfg Config, logger *slog.Logger) *API {
	if logger == nil {
		logger = slog.Default()
	}
	return &API{
		store:     st,
		customers: validate.NewCustomers(st),
		products:  validate.NewProducts(st),
		orders:    validate.NewOrders(st),
		policy:    auth.NewPolicy(cfg.AdminGroup),
		cognito:   cognito,
		clientID:  cfg.UserPoolClientID,
		logger:    logger,
	}
}
