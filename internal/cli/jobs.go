package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/spf13/cobra"

	"github.com/marmotkit/asset-mgmt-accounting/internal/core/domain"
	"github.com/marmotkit/asset-mgmt-accounting/internal/jobs"
	"github.com/marmotkit/asset-mgmt-accounting/internal/platform/config"
)

func newJobsCommand() *cobra.Command {
	jobsCmd := &cobra.Command{
		Use:   "jobs",
		Short: "Queue background tasks and inspect the worker queue",
	}
	jobsCmd.AddCommand(newJobsTriggerCommand(), newJobsStatsCommand())
	return jobsCmd
}

func redisOpts() (asynq.RedisClientOpt, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return asynq.RedisClientOpt{}, err
	}
	if !cfg.Redis.Enabled() {
		return asynq.RedisClientOpt{}, errors.New("REDIS_ADDR is not set")
	}
	return jobs.RedisOpts(cfg.Redis), nil
}

func newJobsTriggerCommand() *cobra.Command {
	var actor string

	cmd := &cobra.Command{
		Use:       "trigger <" + jobs.TaskSyncAll + "|" + jobs.TaskMarkOverdue + ">",
		Short:     "Enqueue a task for the worker",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{jobs.TaskSyncAll, jobs.TaskMarkOverdue},
		RunE: func(cmd *cobra.Command, args []string) error {
			if args[0] != jobs.TaskSyncAll && args[0] != jobs.TaskMarkOverdue {
				return fmt.Errorf("unsupported task %s", args[0])
			}
			opts, err := redisOpts()
			if err != nil {
				return err
			}
			client := jobs.NewClient(opts)
			defer client.Close()

			var taskID string
			switch args[0] {
			case jobs.TaskSyncAll:
				taskID, err = client.EnqueueSyncAll(cmd.Context(), actor)
			case jobs.TaskMarkOverdue:
				taskID, err = client.EnqueueMarkOverdue(cmd.Context(), actor, time.Time{})
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "queued %s as %s\n", args[0], taskID)
			return nil
		},
	}
	cmd.Flags().StringVar(&actor, "actor", domain.SystemActor, "user id recorded as creator")
	return cmd
}

func newJobsStatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show the default queue counters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := redisOpts()
			if err != nil {
				return err
			}
			stats, err := jobs.InspectQueue(opts)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), stats)
		},
	}
}
