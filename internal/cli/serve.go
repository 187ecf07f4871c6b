package cli

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ukemeuu/mani24-kds/internal/adapter/glovo"
	httpAdapter "github.com/ukemeuu/mani24-kds/internal/adapter/http"
	"github.com/ukemeuu/mani24-kds/internal/adapter/insights"
	"github.com/ukemeuu/mani24-kds/internal/adapter/logger"
	"github.com/ukemeuu/mani24-kds/internal/adapter/postgres"
	"github.com/ukemeuu/mani24-kds/internal/adapter/rabbitmq"
	"github.com/ukemeuu/mani24-kds/internal/app/auth"
	"github.com/ukemeuu/mani24-kds/internal/app/board"
	"github.com/ukemeuu/mani24-kds/internal/app/ingest"
	"github.com/ukemeuu/mani24-kds/internal/app/lifecycle"
	"github.com/ukemeuu/mani24-kds/internal/config"
)

// NewServeCommand runs the KDS HTTP service.
func NewServeCommand(opts *RootOptions) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the kitchen display service",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(opts.ConfigPath, port)
		},
	}

	cmd.Flags().IntVar(&port, "port", 0, "HTTP port (overrides config)")
	return cmd
}

func runServe(configPath string, portOverride int) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if portOverride != 0 {
		cfg.HTTP.Port = portOverride
	}

	lgr := logger.New("kds-service")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := postgres.Connect(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	defer db.Close()

	lgr.Info("db_connected", "Connected to PostgreSQL database", "startup", map[string]interface{}{
		"host": cfg.Database.Host,
		"db":   cfg.Database.Database,
	})

	mqConn, err := rabbitmq.Connect(cfg.RabbitMQ)
	if err != nil {
		return fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}
	defer mqConn.Close()

	lgr.Info("rabbitmq_connected", "Connected to RabbitMQ", "startup", map[string]interface{}{
		"host": cfg.RabbitMQ.Host,
	})

	orderRepo := postgres.NewOrderRepository(db)
	publisher := rabbitmq.NewPublisher(mqConn)
	consumer := rabbitmq.NewConsumer(mqConn)

	orderBoard := board.New(orderRepo, lgr)
	syncer := glovo.NewClient(cfg.Glovo, lgr)
	engine := lifecycle.NewEngine(orderBoard, orderRepo, publisher, syncer, lgr)

	ingestService := ingest.NewService(orderRepo, publisher, lgr,
		ingest.ManualSource{},
		ingest.SimulatedSource{},
		ingest.GlovoSource{},
		ingest.PartnerSource{},
	)
	authService := auth.NewService(cfg.Roster(), cfg.ShiftWindow(), lgr)
	insightsClient := insights.NewClient(cfg.Insights)

	// Keep the board current off the store change feed.
	go func() {
		if err := orderBoard.Start(ctx, consumer); err != nil && ctx.Err() == nil {
			lgr.Error("board_feed_stopped", "Store change feed stopped", "runtime", nil, err)
		}
	}()

	handler := httpAdapter.NewRouter(
		httpAdapter.NewAuthHandler(authService, lgr),
		httpAdapter.NewBoardHandler(orderBoard, lgr),
		httpAdapter.NewOrderHandler(ingestService, engine, lgr),
		httpAdapter.NewWebhookHandler(ingestService, cfg.Glovo.AuthToken, lgr),
		httpAdapter.NewExportHandler(orderBoard, insightsClient, lgr),
	)
	handler = httpAdapter.LoggingMiddleware(lgr)(handler)
	handler = httpAdapter.RecoveryMiddleware(lgr)(handler)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	lgr.Info("service_started", fmt.Sprintf("KDS service started on port %d", cfg.HTTP.Port), "startup", map[string]interface{}{
		"port": cfg.HTTP.Port,
	})

	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt, syscall.SIGTERM)
		<-sigint

		lgr.Info("shutdown_initiated", "Shutting down KDS service", "shutdown", nil)
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			lgr.Error("shutdown_error", "Error during shutdown", "shutdown", nil, err)
		}
	}()

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}
