package main

import (
	"fmt"

	"github.com/appbridge/migration-backend/events/modules/jobs"
	"github.com/appbridge/migration-backend/internal/config"
	"github.com/appbridge/migration-backend/internal/kafka"
	"github.com/appbridge/migration-backend/model"
	"github.com/spf13/cobra"
)

func newEmitCmd() *cobra.Command {
	var (
		outcome      string
		errorMessage string
	)

	cmd := &cobra.Command{
		Use:   "emit JOB_ID",
		Short: "Publish a packaging job terminal event",
		Long: `Publish a packaging job terminal event to the configured Kafka topic, as the
packaging pipeline does when a job finishes.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			event := jobs.NewJobTerminalEvent(model.PackagingJob{Key: args[0]}, model.JobOutcome(outcome), errorMessage)
			if err := event.Validate(); err != nil {
				return err
			}

			cfg := config.Load(config.New())
			producer := jobs.NewJobProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic, kafka.NewTransport(cfg.Kafka))
			defer producer.Close()

			if err := producer.PublishJobTerminal(cmd.Context(), event); err != nil {
				return fmt.Errorf("publishing event: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Published %s for job %s (%s)\n", event.EventID, event.JobID, event.Outcome)
			return nil
		},
	}

	cmd.Flags().StringVar(&outcome, "outcome", string(model.JobOutcomeDeployed), "deployed, duplicate_skipped, failed or cancelled")
	cmd.Flags().StringVar(&errorMessage, "error-message", "", "failure detail recorded on the history")
	return cmd
}
