package api

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/vietanh2810/ticket-order-api/docs"
	v1 "github.com/vietanh2810/ticket-order-api/internal/api/handler/v1"
	"github.com/vietanh2810/ticket-order-api/internal/api/middleware"
	"github.com/vietanh2810/ticket-order-api/internal/config"
	"github.com/vietanh2810/ticket-order-api/internal/pkg/jwthelper"
	"github.com/vietanh2810/ticket-order-api/internal/repository"
	"github.com/vietanh2810/ticket-order-api/internal/repository/dao"
	"github.com/vietanh2810/ticket-order-api/internal/service"
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine
}

// NewServer wires the handlers. ticketCache may be nil to read tickets straight
// from the store.
func NewServer(conf *config.AppConfig, db *gorm.DB, ticketCache repository.TicketCache, mailer service.MailDispatcher) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config: conf,
		Router: engine,
	}

	s.MountMiddlewares()

	userRepo := repository.NewUserRepository(dao.NewUserDAO(db))
	ticketRepo := repository.NewTicketRepository(dao.NewTicketDAO(db), ticketCache)
	orderRepo := repository.NewOrderRepository(dao.NewOrderDAO(db))

	authHandler := s.initAuthHandler(userRepo, mailer)
	userHandler := v1.NewUserHandler(service.NewUserService(userRepo))
	ticketHandler := v1.NewTicketHandler(service.NewTicketService(ticketRepo))
	orderHandler := v1.NewOrderHandler(service.NewOrderService(orderRepo, ticketRepo, userRepo))
	s.MountHandlers(authHandler, userHandler, ticketHandler, orderHandler)

	return s
}

func (s *Server) initAuthHandler(repo *repository.UserRepository, mailer service.MailDispatcher) *v1.AuthHandler {
	issuer := jwthelper.NewIssuer(s.Config.API.JWTSigningKey, s.Config.API.JWTTTL)
	svc := service.NewAuthService(repo, issuer, mailer)
	handler := v1.NewAuthHandler(svc)

	return handler
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
	if s.Config.Metrics.Enabled {
		s.Router.Use(middleware.Metrics())
	}
}

func (s *Server) MountHandlers(authHandler *v1.AuthHandler, userHandler *v1.UserHandler, ticketHandler *v1.TicketHandler, orderHandler *v1.OrderHandler) {
	const basePath = "/"

	authenticator := middleware.NewAuthenticator(s.Config.API.JWTSigningKey)

	auth := s.Router.Group(basePath)
	{
		auth.POST("/register", authHandler.HandleRegister)
		auth.POST("/login", authHandler.HandleLogin)
		auth.POST("/sendVerificationMail", authHandler.HandleSendVerificationMail)
	}

	users := s.Router.Group(basePath, authenticator.VerifyJWT())
	{
		users.POST("/verifyUser", authHandler.HandleVerifyUser)
		users.GET("/getUser", userHandler.HandleGetUser)
	}

	tickets := s.Router.Group(basePath)
	{
		tickets.POST("/createTicket", ticketHandler.HandleCreateTicket)
		tickets.GET("/displayTicketById", ticketHandler.HandleGetTicket)
		tickets.GET("/displayAllTickets", ticketHandler.HandleGetTickets)
		tickets.POST("/updateTicketById", ticketHandler.HandleUpdateTicket)
		tickets.POST("/deleteTicketById", ticketHandler.HandleDeleteTicket)
	}

	// Order routes check the request shape before the caller, so the token is
	// only parsed here and enforced by the handlers.
	orders := s.Router.Group(basePath, authenticator.ParseJWT())
	{
		orders.POST("/addOrder", orderHandler.HandleAddOrder)
		orders.GET("/displayOrders", orderHandler.HandleGetOrders)
		orders.POST("/updateOrderById", orderHandler.HandleUpdateOrder)
		orders.POST("/deleteOrderById", orderHandler.HandleDeleteOrder)
	}

	s.Router.GET("/", v1.HandleHealthcheck)

	if s.Config.Metrics.Enabled {
		s.Router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "Ticket Order API"
	docs.SwaggerInfo.Description = "Register, verify, and order tickets."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
