package app

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/vietanh2810/ticket-order-api/internal/api"
	"github.com/vietanh2810/ticket-order-api/internal/cache"
	"github.com/vietanh2810/ticket-order-api/internal/config"
	"github.com/vietanh2810/ticket-order-api/internal/db"
	"github.com/vietanh2810/ticket-order-api/internal/logger"
	"github.com/vietanh2810/ticket-order-api/internal/mail"
	"github.com/vietanh2810/ticket-order-api/internal/mq"
	"github.com/vietanh2810/ticket-order-api/internal/repository"
	"github.com/vietanh2810/ticket-order-api/internal/service"
)

const configPath = "./cmd/app/config.yml"

func Start() error {
	conf, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to initialize config -> %w", err)
	}

	if err = logger.Init(conf.API.Environment); err != nil {
		return fmt.Errorf("failed to initialize logger -> %w", err)
	}
	defer func() { _ = zap.L().Sync() }()

	config.Watch(configPath, func(c *config.AppConfig) {
		logger.SetEnvironment(c.API.Environment)
	})

	dbURL := os.Getenv("DATABASE_URL")
	var postgresDB *gorm.DB
	if dbURL != "" {
		postgresDB, err = db.OpenPostgresWithURL(dbURL)
	} else {
		postgresDB, err = db.OpenPostgres(conf.Postgres)
	}
	if err != nil {
		return fmt.Errorf("failed to initialize database -> %w", err)
	}

	ticketCache, closeCache := openTicketCache(conf.Redis)
	defer closeCache()

	mailer, stop, err := startMailer(conf)
	if err != nil {
		return fmt.Errorf("failed to initialize mailer -> %w", err)
	}
	defer stop()

	s := api.NewServer(conf, postgresDB, ticketCache, mailer)

	addr := ":" + s.Config.API.Port
	zap.L().Info(fmt.Sprintf("starting server at %v", addr))
	if err = s.Router.Run(addr); err != nil {
		return fmt.Errorf("failed to start the server -> %w", err)
	}

	return nil
}

// openTicketCache connects to Redis when an address is configured. An
// unreachable server disables the cache instead of failing startup.
func openTicketCache(conf *config.RedisConfig) (repository.TicketCache, func()) {
	if conf == nil || conf.Addr == "" {
		return nil, func() {}
	}

	redisCache, err := cache.NewRedisCache(conf.Addr, conf.Password, conf.DB, conf.TicketTTL)
	if err != nil {
		zap.L().Warn("ticket cache disabled", zap.String("addr", conf.Addr), zap.Error(err))
		return nil, func() {}
	}

	return redisCache, func() { _ = redisCache.Close() }
}

// startMailer queues verification mails on RabbitMQ when it is configured and
// falls back to the in-process dispatcher otherwise.
func startMailer(conf *config.AppConfig) (service.MailDispatcher, func(), error) {
	sender := mail.NewSender(conf.Mail)

	if conf.RabbitMQ.URL == "" {
		dispatcher := mail.NewAsyncDispatcher(sender, conf.Mail.Workers, conf.Mail.Buffer)
		dispatcher.Start()
		return dispatcher, dispatcher.Stop, nil
	}

	conn, err := mq.NewMQConn(conf.RabbitMQ.URL)
	if err != nil {
		return nil, nil, fmt.Errorf("mq.NewMQConn -> %w", err)
	}

	ch, err := mq.NewChannel(conn)
	if err != nil {
		_ = conn.Close()
		return nil, nil, fmt.Errorf("mq.NewChannel -> %w", err)
	}

	if err = mq.SetupImmediateQueue(ch, conf.RabbitMQ.MailQueue); err != nil {
		_ = conn.Close()
		return nil, nil, fmt.Errorf("mq.SetupImmediateQueue -> %w", err)
	}

	if err = mail.NewConsumer(sender, conf.RabbitMQ.MailQueue).Start(conn); err != nil {
		_ = conn.Close()
		return nil, nil, fmt.Errorf("consumer.Start -> %w", err)
	}

	stop := func() {
		if err := conn.Close(); err != nil {
			zap.L().Warn("failed to close rabbitmq connection", zap.Error(err))
		}
	}

	return mail.NewQueueDispatcher(ch, conf.RabbitMQ.MailQueue), stop, nil
}
