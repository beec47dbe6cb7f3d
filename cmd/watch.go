package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/bep/debounce"
	"github.com/jsphweid/arckit/model"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(watchCmd)
}

var watchCmd = &cobra.Command{
	Use:   "watch <file>",
	Short: "Re-parses a chart whenever it changes",
	Long:  `Polls a chart file and prints its summary or its parse error after each change.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		st, _ := cfg.SortType()
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		w := &watcher{
			path:     args[0],
			interval: cfg.WatchInterval,
			debounce: cfg.Debounce,
			onChange: func() { reparse(args[0], st, newLogger()) },
		}
		reparse(args[0], st, newLogger())
		return w.run(ctx)
	},
}

// watcher polls path and calls onChange, debounced, when its size or
// modification time changes.
type watcher struct {
	path     string
	interval time.Duration
	debounce time.Duration
	onChange func()
}

type fileStamp struct {
	size    int64
	modTime time.Time
}

func stamp(path string) (fileStamp, error) {
	info, err := os.Stat(path)
	if err != nil {
		return fileStamp{}, err
	}
	return fileStamp{size: info.Size(), modTime: info.ModTime()}, nil
}

func (w *watcher) run(ctx context.Context) error {
	last, err := stamp(w.path)
	if err != nil {
		return err
	}
	debounced := debounce.New(w.debounce)
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			cur, err := stamp(w.path)
			if err != nil {
				// the file may be mid-save; try again on the next tick
				continue
			}
			if cur != last {
				last = cur
				debounced(w.onChange)
			}
		}
	}
}

func reparse(path string, st model.SortType, logger *log.Logger) {
	res := inspect(path, st, logger)
	fmt.Printf("[%s] ", time.Now().Format("15:04:05"))
	if res.err != nil {
		fmt.Printf("%s: %v\n", path, res.err)
		return
	}
	printInspection(res)
}
