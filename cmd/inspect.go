package cmd

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/hako/durafmt"
	"github.com/jsphweid/arckit/model"
	"github.com/pkg/errors"
	"github.com/remeh/sizedwaitgroup"
	"github.com/spf13/cobra"
)

var inspectJobs int

func init() {
	inspectCmd.Flags().IntVarP(&inspectJobs, "jobs", "j", 0, "files parsed in parallel (default from config)")
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <file>...",
	Short: "Prints a summary of each chart",
	Long:  `Parses each chart and prints its header values, group count, note counts and length.`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if inspectJobs > 0 {
			cfg.Jobs = inspectJobs
		}
		st, _ := cfg.SortType()
		results := inspectFiles(args, cfg.Jobs, st, newLogger())

		failed := 0
		for _, res := range results {
			if res.err != nil {
				failed++
				fmt.Printf("%s: %v\n", res.path, res.err)
				continue
			}
			printInspection(res)
		}
		if failed > 0 {
			return errors.Errorf("%d of %d charts failed to parse", failed, len(results))
		}
		return nil
	},
}

type inspection struct {
	path    string
	size    int64
	summary model.Summary
	// params lists the modifiers of every custom timing group.
	params []string
	err    error
}

// inspectFiles parses paths with at most jobs in flight. Results keep the
// order of paths.
func inspectFiles(paths []string, jobs int, st model.SortType, logger *log.Logger) []inspection {
	results := make([]inspection, len(paths))
	wg := sizedwaitgroup.New(jobs)
	for i, path := range paths {
		wg.Add()
		go func(i int, path string) {
			defer wg.Done()
			results[i] = inspect(path, st, logger)
		}(i, path)
	}
	wg.Wait()
	return results
}

func inspect(path string, st model.SortType, logger *log.Logger) inspection {
	res := inspection{path: path}
	info, err := os.Stat(path)
	if err != nil {
		res.err = err
		return res
	}
	res.size = info.Size()
	c, err := parseFile(path, st, logger)
	if err != nil {
		res.err = err
		return res
	}
	res.summary = model.NewSummary(c)
	for _, g := range c.Groups[1:] {
		res.params = append(res.params, g.Params...)
	}
	return res
}

func formatLength(ms int) string {
	return durafmt.Parse(time.Duration(ms) * time.Millisecond).LimitFirstN(2).String()
}

func printInspection(res inspection) {
	s := res.summary
	fmt.Printf("%s (%s)\n", res.path, humanize.Bytes(uint64(res.size)))
	fmt.Printf("  audio offset:   %d ms\n", s.AudioOffset)
	fmt.Printf("  density factor: %g\n", s.TimingPointDensityFactor)
	fmt.Printf("  timing groups:  %d\n", s.GroupCount)
	fmt.Printf("  notes:          %s (%s judgable)\n", humanize.Comma(int64(s.NoteCount)), humanize.Comma(int64(s.JudgableNoteCount)))
	fmt.Printf("  arctaps:        %s\n", humanize.Comma(int64(s.ArcTapCount)))
	fmt.Printf("  length:         %s\n", formatLength(s.Duration))
}
