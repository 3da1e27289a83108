package main

import (
	"encoding/json"
	"fmt"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/stor-a-gentic/server/internal/app"
	logx "github.com/stor-a-gentic/server/pkg/logger"
)

type cli struct {
	envFile string
	cfg     app.Config
}

func newRootCmd() *cobra.Command {
	c := &cli{}
	root := &cobra.Command{
		Use:           "storagentic",
		Short:         "Support chat assistant for a storage rental business",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := app.LoadConfig(c.envFile)
			if err != nil {
				return fmt.Errorf("processing environment config: %w", err)
			}
			logx.Init(logx.LoggerOpts{Environment: cfg.Environment, Output: cmd.ErrOrStderr()})
			c.cfg = cfg
			return nil
		},
	}
	root.PersistentFlags().StringVar(&c.envFile, "env-file", ".env", "dotenv file to load before reading the environment")

	root.AddCommand(c.serveCmd(), c.askCmd(), c.probeCmd())
	return root
}

func (c *cli) serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			a, err := app.New(ctx, c.cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			a.Start(ctx)
			return a.Serve(ctx)
		},
	}
}

func (c *cli) askCmd() *cobra.Command {
	var userID string
	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: "Answer one question and log the exchange",
		Example: `  storagentic ask "What are your hours?"
  storagentic ask --user u-42 "Can I book a collection for Friday?"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := app.New(ctx, c.cfg)
			if err != nil {
				return err
			}
			defer a.Close()
			a.Knowledge.Load(ctx)

			res, ok := a.Chat.Ask(ctx, strings.Join(args, " "), userID)
			if !ok {
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "[%s] %s\n", res.Source, res.Text)
			return nil
		},
	}
	cmd.Flags().StringVar(&userID, "user", "", "user id recorded with the inquiry")
	return cmd
}

func (c *cli) probeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "probe",
		Short: "Check whether the live store answers",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := app.New(cmd.Context(), c.cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(a.Health.Probe(cmd.Context()))
		},
	}
}
