package cmd

import (
	"context"
	"fmt"
	"os"

	"prefixctl/internal/adapter/dispatch"
	"prefixctl/internal/adapter/infrastructure/file"
	"prefixctl/internal/adapter/infrastructure/remote"
	"prefixctl/internal/pkg/logging"
	"prefixctl/internal/pkg/maskcodec"
	"prefixctl/internal/pkg/roster"
	"prefixctl/internal/pkg/secret"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/ssh"
)

var (
	fleetRosterFlag string
	fleetPrefixFlag string
	fleetReportFlag string
	fleetConfigFlag string
)

var fleetCmd = &cobra.Command{
	Use:   "fleet",
	Short: "Reconfigure every target in a roster, sequentially, with a per-target report",
	RunE: func(cmd *cobra.Command, args []string) error {
		// Pre-dispatch validation: a bad prefix aborts the entire run with
		// zero mutations and no report file.
		desiredPrefix, err := maskcodec.ParsePrefix(fleetPrefixFlag)
		if err != nil {
			return err
		}

		cfg, err := loadConfig(fleetConfigFlag)
		if err != nil {
			return err
		}
		logging.InitLogger(cfg.Logging)
		logger := logging.WithComponent("fleet")

		hostname, err := os.Hostname()
		if err != nil {
			return fmt.Errorf("failed to determine local hostname: %w", err)
		}

		targets, err := roster.NewResolver(hostname).LoadCSV(fleetRosterFlag, cfg.Fleet.TargetColumn)
		if err != nil {
			return err
		}
		if len(targets) == 0 {
			return fmt.Errorf("roster %s contains no targets", fleetRosterFlag)
		}

		var signer ssh.Signer
		if cfg.SSH.KeyFile != "" {
			keyData, err := os.ReadFile(cfg.SSH.KeyFile)
			if err != nil {
				return fmt.Errorf("failed to read SSH key %s: %w", cfg.SSH.KeyFile, err)
			}
			signer, err = ssh.ParsePrivateKey(keyData)
			if err != nil {
				return fmt.Errorf("failed to parse SSH key %s: %w", cfg.SSH.KeyFile, err)
			}
		}

		var password *secret.Secret
		if cfg.SSH.AskPassword {
			password, err = secret.Prompt(fmt.Sprintf("SSH password for %s: ", cfg.SSH.User))
			if err != nil {
				return err
			}
			// Released on every exit path once orchestration finishes.
			defer password.Clear()
		}

		runner := remote.NewRunner(cfg.SSH.User, cfg.SSH.Port, signer, password, cfg.SSH.Command)
		dispatcher := dispatch.NewDispatcher(newLocalEngine(cfg), runner)

		logger.WithFields(map[string]interface{}{
			"targets":        len(targets),
			"desired_prefix": desiredPrefix,
		}).Info("Starting fleet run")

		fleetReport := dispatcher.Run(context.Background(), targets, desiredPrefix)

		reportPath := fleetReportFlag
		if reportPath == "" {
			reportPath = cfg.Fleet.ReportPath
		}
		if err := fleetReport.WriteCSV(file.NewManagerAdapter(), reportPath); err != nil {
			return err
		}
		logger.WithField("path", reportPath).Info("Report written")

		fleetReport.RenderTable(os.Stdout)
		return nil
	},
}

func init() {
	fleetCmd.Flags().StringVarP(&fleetRosterFlag, "roster", "r", "", "Path to roster file (CSV)")
	fleetCmd.Flags().StringVarP(&fleetPrefixFlag, "prefix", "p", "", "Desired prefix length (1-32)")
	fleetCmd.Flags().StringVarP(&fleetReportFlag, "report", "o", "", "Report file destination (overrides config)")
	fleetCmd.Flags().StringVarP(&fleetConfigFlag, "config", "f", "", "Path to config file (YAML)")
	if err := fleetCmd.MarkFlagRequired("roster"); err != nil {
		panic(err) // This should never happen during initialization
	}
	if err := fleetCmd.MarkFlagRequired("prefix"); err != nil {
		panic(err) // This should never happen during initialization
	}
	rootCmd.AddCommand(fleetCmd)
}
