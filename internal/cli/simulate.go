package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ukemeuu/mani24-kds/internal/adapter/logger"
	"github.com/ukemeuu/mani24-kds/internal/adapter/postgres"
	"github.com/ukemeuu/mani24-kds/internal/adapter/rabbitmq"
	"github.com/ukemeuu/mani24-kds/internal/app/ingest"
	"github.com/ukemeuu/mani24-kds/internal/config"
)

// NewSimulateCommand ingests generated test orders, the same path a running
// service uses for its simulate endpoint.
func NewSimulateCommand(opts *RootOptions) *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Ingest simulated orders",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimulate(cmd, opts.ConfigPath, count)
		},
	}

	cmd.Flags().IntVar(&count, "count", 1, "number of orders to generate")
	return cmd
}

func runSimulate(cmd *cobra.Command, configPath string, count int) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	lgr := logger.New("kds-simulate")
	ctx := context.Background()

	db, err := postgres.Connect(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	defer db.Close()

	mqConn, err := rabbitmq.Connect(cfg.RabbitMQ)
	if err != nil {
		return fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}
	defer mqConn.Close()

	service := ingest.NewService(
		postgres.NewOrderRepository(db),
		rabbitmq.NewPublisher(mqConn),
		lgr,
		ingest.SimulatedSource{},
	)

	for i := 0; i < count; i++ {
		order, err := service.Ingest(ctx, "simulated", nil)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "created %s for %s (%d items)\n",
			order.OrderNumber, order.CustomerName, len(order.Items))
	}
	return nil
}
