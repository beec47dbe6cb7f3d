package cmd

import (
	"log"
	"os"

	"github.com/jsphweid/arckit/server"
	"github.com/spf13/cobra"
)

var serveAddr string

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config)")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the chart parser over HTTP",
	Long: `Serves POST /parse, POST /charts, GET /charts/{id},
GET /charts/{id}/summary and DELETE /charts/{id}.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if serveAddr != "" {
			cfg.Addr = serveAddr
		}
		st, _ := cfg.SortType()
		s := server.New(server.NewStore(), server.Options{
			Sort:           st,
			AllowedOrigins: cfg.AllowedOrigins,
			Logger:         log.New(os.Stderr, "", log.LstdFlags),
		})
		return s.ListenAndServe(cfg.Addr)
	},
}
