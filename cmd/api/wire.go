//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"goflare.io/merchant/audit"
	"goflare.io/merchant/config"
	"goflare.io/merchant/customer"
	"goflare.io/merchant/discount"
	"goflare.io/merchant/driver"
	"goflare.io/merchant/handlers"
	"goflare.io/merchant/order"
	"goflare.io/merchant/password"
	"goflare.io/merchant/product"
	"goflare.io/merchant/report"
	"goflare.io/merchant/server"
	"goflare.io/merchant/token"
	"goflare.io/merchant/user"
)

func InitializeServer() (*server.Server, error) {

	wire.Build(
		config.ProvideApplicationConfig,
		config.NewLogger,
		config.ProvidePostgresConn,
		config.ProvideRedis,
		config.ProvideTokenManager,
		config.ProvidePasswordHasher,
		config.ProvideCookieConfig,
		driver.NewTransactionManager,
		audit.NewRepository,
		audit.NewDispatcher,
		wire.Bind(new(audit.Recorder), new(*audit.Dispatcher)),
		wire.Bind(new(user.TokenIssuer), new(*token.Manager)),
		wire.Bind(new(user.PasswordHasher), new(*password.Hasher)),
		wire.Bind(new(handlers.AccessParser), new(*token.Manager)),
		wire.Bind(new(server.AuditDrainer), new(*audit.Dispatcher)),
		user.NewRepository,
		user.NewService,
		product.NewRepository,
		product.NewService,
		customer.NewRepository,
		customer.NewService,
		order.NewRepository,
		order.NewService,
		discount.NewRepository,
		discount.NewService,
		report.NewService,
		handlers.NewUserHandler,
		handlers.NewProductHandler,
		handlers.NewCustomerHandler,
		handlers.NewOrderHandler,
		handlers.NewDiscountHandler,
		handlers.NewReportHandler,
		server.NewServer,
	)

	return &server.Server{}, nil
}
