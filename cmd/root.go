// Package cmd provides the entrypoint for the emeritus-bridge cli.
package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/emeritus-labs/emeritus-bridge/internal/config"
	"github.com/emeritus-labs/emeritus-bridge/internal/emeritus"
	"github.com/emeritus-labs/emeritus-bridge/internal/handler"
	"github.com/emeritus-labs/emeritus-bridge/internal/runtime"
	"github.com/emeritus-labs/emeritus-bridge/internal/validation"
	pkgerrors "github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	configFilePath string
	logger         *slog.Logger
	bridgeRuntime  *runtime.Runtime
)

type boundEnvVar[T argType] struct {
	Name, Description string
	Env, Short        *string
	Hidden            bool
}

// New returns the root command for the emeritus-bridge.
func New() *cobra.Command {
	cmd := &cobra.Command{
		Use: "emeritus-bridge",
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			config.Global.Mode = strings.TrimSpace(config.Global.Mode)
			// stderr keeps stdout free for the MCP stdio transport
			logger = slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
				AddSource: config.Global.Logging.CallerTrace,
				Level:     slog.LevelWarn - slog.Level(config.Global.Logging.Verbosity*4),
			})).With("mode", config.Global.Mode)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			switch config.Global.Mode {
			case config.ModeService:
				return cmdService().RunE(cmd, args)
			case config.ModeMCP:
				return cmdMCP().RunE(cmd, args)
			case config.ModeLambdaHTTP:
				return chainCommands(cmd, args, cmdLambda().PersistentPreRunE, cmdLambdaHTTP().RunE)
			case config.ModeLambdaEvent:
				return chainCommands(cmd, args, cmdLambda().PersistentPreRunE, cmdLambdaEvent().RunE)
			default:
				return fmt.Errorf("invalid mode: %s", config.Global.Mode)
			}
		},
	}

	// Root command flags
	cmd.PersistentFlags().StringVarP(&configFilePath, "config", "c", "config.yaml", "path to the configuration file")

	// Configuration loading & defaults
	if err := errors.Join(
		config.LoadFromFile(configFilePath),
		config.SetDefaults(),
	); err != nil {
		panic(err)
	}

	// Dynamic flags
	setupDynamicFlags(cmd)

	// Subcommands
	cmd.AddCommand(
		cmdLambda(),
		cmdService(),
		cmdMCP(),
	)

	return cmd
}

func setupDynamicFlags(cmd *cobra.Command) {
	viper.AutomaticEnv()
	viper.EnvKeyReplacer(replacer)

	bindEnvMap(cmd, envMapString)
	bindEnvMap(cmd, envMapBool)
	bindEnvMap(cmd, envMapCount)
	bindEnvMap(cmd, envMapDuration)
}

func chainCommands(cmd *cobra.Command, args []string, fns ...func(*cobra.Command, []string) error) error {
	for _, fn := range fns {
		if err := fn(cmd, args); err != nil {
			return err
		}
	}
	return nil
}

// setup builds the bridge handler and runtime shared by every mode.
func setup(cmd *cobra.Command) error {
	logger.Debug("creating bridge handler...")
	hdl, err := handler.New(
		handler.WithCredentials(emeritus.Credentials{
			Host:   config.Emeritus.Host,
			UserID: config.Emeritus.UserID,
			Secret: config.Emeritus.APISecret,
		}),
		handler.WithAuthMode(config.Emeritus.AuthMode),
		handler.WithSSMKey(config.Emeritus.SSMKey),
		handler.WithTimeout(config.Emeritus.Timeout),
		handler.WithAuditBucket(auditBucket()),
		handler.WithContext(cmd.Context()),
		handler.WithLogger(logger.With("component", "bridge-handler")))
	if err != nil {
		return pkgerrors.Wrap(err, "failed to create bridge handler")
	}

	logger.Debug("creating runtime...")
	bridgeRuntime = runtime.NewRuntime(hdl,
		runtime.WithBearerKey(validation.NewBearerKey(config.Auth.BearerKey)),
		runtime.WithLambdaPayloadType(config.Lambda.PayloadType),
		runtime.WithLogger(logger.With("component", "runtime")))
	return nil
}

func auditBucket() string {
	if !config.Global.S3.Audit.Enabled {
		return ""
	}
	return config.Global.S3.Audit.BucketName
}
