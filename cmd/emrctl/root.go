package main

import (
	"emr-service/internal/app/contracts"
	"emr-service/internal/app/drivers/logger"
	"emr-service/internal/app/services/emr_api/patient_records"
	"emr-service/internal/pkg/utils"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Version and Tag are set at build time with -ldflags "-X main.Version=...".
var (
	Version = "develop"
	Tag     = "0.0.1-rc"
)

const (
	envPrefix = "EMR"

	flagConfig   = "config"
	flagBaseURL  = "base-url"
	flagTimeout  = "timeout"
	flagLogLevel = "log-level"
	flagTimezone = "timezone"
	flagFile     = "file"
)

// app holds what every subcommand needs once flags and environment have
// been resolved.
type app struct {
	v        *viper.Viper
	log      *zap.Logger
	client   contracts.PatientRecordClient
	location *time.Location
	timeout  time.Duration
}

func newRootCommand() *cobra.Command {
	a := &app{v: viper.New()}

	rootCmd := &cobra.Command{
		Use:           "emrctl",
		Short:         "Search patients and submit encounters against the EMR record backend",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.String(flagConfig, "", "optional config file (yaml, json or env)")
	flags.String(flagBaseURL, "https://emr-project-imeds-backend.vercel.app", "record backend base url")
	flags.Duration(flagTimeout, 15*time.Second, "timeout of a single backend call")
	flags.String(flagLogLevel, "warn", "log level written to stderr")
	flags.String(flagTimezone, "Asia/Jakarta", "timezone used to decide what today is")

	a.v.SetEnvPrefix(envPrefix)
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()
	_ = a.v.BindPFlags(flags)

	rootCmd.AddCommand(a.searchCmd())
	rootCmd.AddCommand(a.validateCmd())
	rootCmd.AddCommand(a.submitCmd())
	rootCmd.AddCommand(versionCmd())

	return rootCmd
}

func (a *app) init() error {
	if configFile := a.v.GetString(flagConfig); configFile != "" {
		a.v.SetConfigFile(configFile)
		if err := a.v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config %s: %w", configFile, err)
		}
	}

	a.log = logger.NewCLILogger(a.v.GetString(flagLogLevel))
	a.location = utils.LoadLocationOrDefault(a.v.GetString(flagTimezone))
	a.timeout = a.v.GetDuration(flagTimeout)
	a.client = patient_records.NewPatientRecordClient(a.v.GetString(flagBaseURL), a.timeout, 0, a.log)

	a.log.Debug("emrctl configured",
		zap.String("base_url", a.v.GetString(flagBaseURL)),
		zap.Duration("timeout", a.timeout),
		zap.String("timezone", a.location.String()),
	)
	return nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the build version",
		Args:  cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "Version: %s\nTag: %s\n", Version, Tag)
		},
	}
}

func writeJSON(out io.Writer, value interface{}) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(value)
}

// readInput reads path, or stdin when path is "-".
func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "" {
		return nil, fmt.Errorf("--%s is required", flagFile)
	}
	if path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	return os.ReadFile(path)
}
