package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	controllers "comanda-service/internal/controllers/http"
	"comanda-service/internal/config"
	"comanda-service/internal/infra/excel"
	mmysql "comanda-service/internal/infra/mysql"
	"comanda-service/internal/infra/rabbitmq"
	"comanda-service/internal/infra/redisstore"
	"comanda-service/internal/logger"
	mysqlrepo "comanda-service/internal/repository/mysql"
	"comanda-service/internal/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadServer()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	lg, err := logger.New(cfg.LogMode, cfg.LogFile)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer lg.Sync()

	db, err := mmysql.NewMySQL(cfg.MySQL)
	if err != nil {
		lg.Fatal("db: connect", zap.Error(err))
	}

	orderRepo := mysqlrepo.NewOrderRepository(db)
	catalogRepo := mysqlrepo.NewCatalogRepository(db)
	userRepo := mysqlrepo.NewUserRepository(db)

	rdb := redisstore.NewClient(cfg.RedisHost)
	defer rdb.Close()

	var publisher rabbitmq.PublisherInterface = rabbitmq.NopPublisher{}
	if cfg.RabbitMQURL != "" {
		p, err := rabbitmq.NewPublisher(cfg.RabbitMQURL, cfg.Exchange)
		if err != nil {
			lg.Fatal("failed to init publisher", zap.Error(err))
		}
		defer p.Close()
		publisher = p
	} else {
		lg.Warn("RABBITMQ_URL not set, order events are not published")
	}

	exporter := excel.NewExporter(cfg.ExportDir, cfg.PublicBaseURL)

	handler := controllers.NewHandler(
		services.NewOrderService(orderRepo, catalogRepo, publisher),
		services.NewDashboardService(orderRepo, catalogRepo, userRepo),
		services.NewSessionService(userRepo, redisstore.NewSessionStore(rdb), cfg.JWTSecret, cfg.SessionTTL),
		services.NewCatalogService(catalogRepo, userRepo, redisstore.NewCache(rdb)),
		services.NewReportService(orderRepo, catalogRepo, userRepo, exporter),
		cfg.ExportDir,
	)

	if cfg.LogMode == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), controllers.RequestLogger())
	handler.RegisterRoutes(r)

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		lg.Info("starting comanda service", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			lg.Fatal("server run", zap.Error(err))
		}
	}()

	<-ctx.Done()
	lg.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		lg.Error("shutdown", zap.Error(err))
	}
}
