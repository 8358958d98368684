package cmd

import (
	"net"
	"net/http"

	"github.com/emeritus-labs/emeritus-bridge/internal/config"
	"github.com/spf13/cobra"
)

func cmdService() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "service",
		Aliases: []string{"s", "serve", "standalone", "server"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := setup(cmd); err != nil {
				return err
			}

			logger.Debug("creating HTTP server...")
			h := http.NewServeMux()
			h.HandleFunc("/", bridgeRuntime.ServeHTTP)

			s := &http.Server{
				Handler:      h,
				Addr:         net.JoinHostPort(config.Service.Addr, config.Service.Port),
				WriteTimeout: config.Service.Timeout,
				ReadTimeout:  config.Service.Timeout,
				IdleTimeout:  config.Service.Timeout,
			}

			logger.Info("serving...", "address", s.Addr, "timeout", config.Service.Timeout.String())
			return s.ListenAndServe()
		},
	}

	return cmd
}
