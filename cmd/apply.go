package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"prefixctl/internal/adapter/infrastructure/clock"
	"prefixctl/internal/adapter/infrastructure/file"
	"prefixctl/internal/adapter/infrastructure/network"
	"prefixctl/internal/adapter/infrastructure/probe"
	"prefixctl/internal/adapter/infrastructure/resolvconf"
	"prefixctl/internal/adapter/reconfig"
	"prefixctl/internal/pkg/config"
	"prefixctl/internal/pkg/logging"
	"prefixctl/internal/pkg/maskcodec"
	"prefixctl/internal/types"

	"github.com/spf13/cobra"
)

var (
	applyPrefixFlag string
	applyJSONFlag   bool
	applyConfigFlag string
)

// newLocalEngine wires the reconfiguration engine with the real
// infrastructure adapters.
func newLocalEngine(cfg *config.Config) *reconfig.Engine {
	fileMgr := file.NewManagerAdapter()
	return reconfig.NewEngine(
		network.NewManagerAdapter(),
		resolvconf.NewManagerAdapter(fileMgr, ""),
		probe.NewProberAdapter(cfg.ProbeTimeout(), cfg.Reconfig.PrivilegedProbes),
		clock.NewSleeperAdapter(),
		cfg.SettleWindow(),
		cfg.Reconfig.ProbeCount,
	)
}

// loadConfig loads the given config file, or the defaults when no file is
// given.
func loadConfig(path string) (*config.Config, error) {
	cfg := config.Default()
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Reconfigure the local machine's prefix length with verified rollback",
	RunE: func(cmd *cobra.Command, args []string) error {
		desiredPrefix, err := maskcodec.ParsePrefix(applyPrefixFlag)
		if err != nil {
			return err
		}

		cfg, err := loadConfig(applyConfigFlag)
		if err != nil {
			return err
		}
		logging.InitLogger(cfg.Logging)

		engine := newLocalEngine(cfg)
		outcome := engine.Reconfigure(context.Background(), desiredPrefix)

		if applyJSONFlag {
			// stdout carries only the wire record for the remote boundary;
			// the exit code stays zero so the orchestrator always gets the
			// structured outcome, including failures.
			encoder := json.NewEncoder(os.Stdout)
			if err := encoder.Encode(outcome); err != nil {
				return fmt.Errorf("failed to encode outcome: %w", err)
			}
			return nil
		}

		fmt.Printf("%s: %s\n", outcome.Kind, outcome.Message)
		if outcome.Kind.Category() == types.CategoryFailed {
			os.Exit(1)
		}
		return nil
	},
}

func init() {
	applyCmd.Flags().StringVarP(&applyPrefixFlag, "prefix", "p", "", "Desired prefix length (1-32)")
	applyCmd.Flags().BoolVar(&applyJSONFlag, "json", false, "Emit the outcome as JSON on stdout")
	applyCmd.Flags().StringVarP(&applyConfigFlag, "config", "f", "", "Path to config file (YAML)")
	if err := applyCmd.MarkFlagRequired("prefix"); err != nil {
		panic(err) // This should never happen during initialization
	}
	rootCmd.AddCommand(applyCmd)
}
