package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"goflare.io/merchant/handlers"
)

// AuditDrainer flushes queued audit writes during shutdown. Satisfied by
// *audit.Dispatcher.
type AuditDrainer interface {
	Stop()
}

type Server struct {
	echo     *echo.Echo
	tokens   handlers.AccessParser
	audits   AuditDrainer
	User     handlers.UserHandler
	Product  handlers.ProductHandler
	Customer handlers.CustomerHandler
	Order    handlers.OrderHandler
	Discount handlers.DiscountHandler
	Report   handlers.ReportHandler
}

func NewServer(
	tokens handlers.AccessParser,
	audits AuditDrainer,
	User handlers.UserHandler,
	Product handlers.ProductHandler,
	Customer handlers.CustomerHandler,
	Order handlers.OrderHandler,
	Discount handlers.DiscountHandler,
	Report handlers.ReportHandler,
) *Server {
	return &Server{
		echo:     echo.New(),
		tokens:   tokens,
		audits:   audits,
		User:     User,
		Product:  Product,
		Customer: Customer,
		Order:    Order,
		Discount: Discount,
		Report:   Report,
	}
}

// Start initializes the server by registering middlewares and routes, and
// starts listening for connections on the provided address.
func (s *Server) Start(address string) error {
	s.registerMiddlewares()
	s.registerRoutes()
	return s.echo.Start(address)
}

// Run starts the server in a goroutine, then waits for an interrupt or
// SIGTERM and shuts down gracefully with a five second deadline.
func (s *Server) Run(address string) error {

	go func() {
		if err := s.Start(address); err != nil {
			s.echo.Logger.Fatal(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	return s.shutdown()
}

// shutdown stops accepting connections first, then drains the audit queue so
// no queued event is lost on the way out.
func (s *Server) shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := s.echo.Shutdown(ctx)
	s.audits.Stop()
	return err
}

func (s *Server) registerMiddlewares() {
	s.echo.Use(middleware.Recover())
}

func (s *Server) registerRoutes() {
	gate := handlers.AuthGate(s.tokens)

	s.echo.POST("/users/register", s.User.Register)
	s.echo.POST("/users/login", s.User.Login)
	s.echo.POST("/users/logout", s.User.Logout, gate)

	s.echo.POST("/product", s.Product.CreateProduct, gate)
	s.echo.GET("/product/:id", s.Product.GetProduct, gate)
	s.echo.PUT("/product/:id", s.Product.UpdateProduct, gate)
	s.echo.DELETE("/product/:id", s.Product.DeleteProduct, gate)
	s.echo.GET("/product", s.Product.ListProducts, gate)

	s.echo.POST("/customer", s.Customer.CreateCustomer, gate)
	s.echo.GET("/customer/:id", s.Customer.GetCustomer, gate)
	s.echo.PUT("/customer/:id", s.Customer.UpdateCustomer, gate)
	s.echo.DELETE("/customer/:id", s.Customer.DeleteCustomer, gate)
	s.echo.GET("/customer", s.Customer.ListCustomers, gate)

	s.echo.POST("/order", s.Order.CreateOrder, gate)
	s.echo.GET("/order/:id", s.Order.GetOrder, gate)
	s.echo.PUT("/order/:id/status", s.Order.UpdateOrderStatus, gate)
	s.echo.GET("/order", s.Order.ListOrders, gate)

	s.echo.POST("/discount", s.Discount.CreateDiscount, gate)
	s.echo.GET("/discount/:code", s.Discount.GetDiscount, gate)
	s.echo.PUT("/discount/:id", s.Discount.UpdateDiscount, gate)
	s.echo.DELETE("/discount/:id", s.Discount.DeleteDiscount, gate)
	s.echo.GET("/discount", s.Discount.ListDiscounts, gate)

	s.echo.GET("/reports/sales", s.Report.SalesSummary, gate)
}
