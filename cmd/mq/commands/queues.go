package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fivetwenty-io/mqueue/pkg/mqueue"
)

// NewQueuesCommand creates the queues command group.
func NewQueuesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "queues",
		Aliases: []string{"queue", "q"},
		Short:   "Manage queues",
		Long:    "List, create, inspect, and delete queues on the service",
	}

	cmd.AddCommand(newQueuesListCommand())
	cmd.AddCommand(newQueuesCreateCommand())
	cmd.AddCommand(newQueuesGetCommand())
	cmd.AddCommand(newQueuesDeleteCommand())
	cmd.AddCommand(newQueuesMetadataCommand())

	return cmd
}

func newQueuesListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List queues",
		Long:  "List all queues visible to the configured client",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			session, err := createSession(ctx)
			if err != nil {
				return err
			}

			it, err := session.GetQueues(ctx, nil)
			if err != nil {
				return fmt.Errorf("failed to list queues: %w", err)
			}

			queues, err := it.Collect()
			if err != nil {
				return fmt.Errorf("failed to list queues: %w", err)
			}

			return outputQueues(queues)
		},
	}
}

func outputQueues(queues []*mqueue.Queue) error {
	output := viper.GetString("output")
	switch output {
	case OutputFormatJSON:
		return StandardJSONRenderer(queues)
	case OutputFormatYAML:
		return StandardYAMLRenderer(queues)
	default:
		return renderQueueTable(queues)
	}
}

func renderQueueTable(queues []*mqueue.Queue) error {
	if len(queues) == 0 {
		_, _ = os.Stdout.WriteString("No queues found\n")

		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Name", "Href")

	for _, queue := range queues {
		_ = table.Append(queue.Name, queue.Href)
	}

	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

func newQueuesCreateCommand() *cobra.Command {
	var ttl int

	cmd := &cobra.Command{
		Use:   "create QUEUE_NAME",
		Short: "Create a queue",
		Long:  "Create a queue with a default message time-to-live",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			session, err := createSession(ctx)
			if err != nil {
				return err
			}

			queue, err := session.CreateQueue(ctx, args[0], ttl, nil)
			if err != nil {
				return fmt.Errorf("failed to create queue: %w", err)
			}

			fmt.Printf("Created queue '%s' at %s\n", queue.Name, queue.Href)

			return nil
		},
	}

	cmd.Flags().IntVar(&ttl, "ttl", 3600, "default message time-to-live in seconds")

	return cmd
}

func newQueuesGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get QUEUE_NAME",
		Short: "Show a queue",
		Long:  "Fetch a single queue by name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			session, err := createSession(ctx)
			if err != nil {
				return err
			}

			queue, err := session.GetQueue(ctx, args[0], nil)
			if err != nil {
				if mqueue.IsNotFound(err) {
					return fmt.Errorf("queue '%s' not found", args[0])
				}

				return fmt.Errorf("failed to get queue: %w", err)
			}

			return outputQueues([]*mqueue.Queue{queue})
		},
	}
}

func newQueuesDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete QUEUE_NAME",
		Short: "Delete a queue",
		Long:  "Delete a queue and all of its messages",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			session, err := createSession(ctx)
			if err != nil {
				return err
			}

			err = session.DeleteQueue(ctx, args[0], nil)
			if err != nil {
				if mqueue.IsNotFound(err) {
					return fmt.Errorf("queue '%s' not found", args[0])
				}

				return fmt.Errorf("failed to delete queue: %w", err)
			}

			fmt.Printf("Deleted queue '%s'\n", args[0])

			return nil
		},
	}
}

func newQueuesMetadataCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "metadata QUEUE_NAME",
		Short: "Show queue metadata",
		Long:  "Fetch the raw metadata document for a queue",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			session, err := createSession(ctx)
			if err != nil {
				return err
			}

			metadata, err := session.GetQueueMetadata(ctx, args[0], nil)
			if err != nil {
				return fmt.Errorf("failed to get queue metadata: %w", err)
			}

			output := viper.GetString("output")
			if output == OutputFormatYAML {
				return StandardYAMLRenderer(metadata)
			}

			return StandardJSONRenderer(metadata)
		},
	}
}
