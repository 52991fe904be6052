package main

import (
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"fprint/server"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the index over HTTP (POST /v1/index, POST /v1/query, GET /metrics)",
	RunE: func(cmd *cobra.Command, args []string) error {
		addr := serveAddr
		if addr == "" {
			addr = cfg.HTTPAddr
		}

		srv, err := server.New(resolveIndexPath(cmd), resolveWorkers(cmd), cfg.RedisAddr)
		if err != nil {
			return err
		}

		log.Info("serving", "addr", addr)
		return srv.Router().Run(addr)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "HTTP listen address (overrides FPRINT_HTTP_ADDR)")
}
