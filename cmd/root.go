package cmd

import (
	"io"
	"log"
	"os"

	"github.com/jsphweid/arckit/chart"
	"github.com/jsphweid/arckit/config"
	"github.com/jsphweid/arckit/constants"
	"github.com/jsphweid/arckit/model"
	"github.com/spf13/cobra"
)

var (
	configPath string
	sortFlag   string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "arckit",
	Short: "Reads arc chart (.aff) files",
	Long: `arckit parses arc chart (.aff) files into a sorted event model and
inspects, serves, watches or previews them.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", constants.GetConfigPath(), "YAML config file")
	rootCmd.PersistentFlags().StringVar(&sortFlag, "sort", "", "event order within groups: timing or type")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log parse diagnostics")
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

// loadConfig reads the config file and applies the root flags on top.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if sortFlag != "" {
		cfg.Sort = sortFlag
		if _, err := cfg.SortType(); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

func newLogger() *log.Logger {
	if !verbose {
		return log.New(io.Discard, "", 0)
	}
	return log.New(os.Stderr, "", log.LstdFlags)
}

func readerOptions(logger *log.Logger) []chart.Option {
	if !verbose {
		return nil
	}
	return []chart.Option{chart.WithLogger(logger)}
}

func parseFile(path string, st model.SortType, logger *log.Logger) (*model.Chart, error) {
	return chart.ParseFile(path, st, readerOptions(logger)...)
}
