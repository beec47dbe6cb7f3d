package cmd

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/jsphweid/arckit/constants"
	"github.com/jsphweid/arckit/util"
	"github.com/spf13/cobra"
)

var reportMax int

func init() {
	reportCmd.Flags().IntVar(&reportMax, "max", 0, "stop after this many charts (0 for all)")
	rootCmd.AddCommand(reportCmd)
}

var reportCmd = &cobra.Command{
	Use:   "report <dir>",
	Short: "Aggregates statistics over a chart directory",
	Long:  `Walks a directory for .aff files, parses them all and prints totals.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		paths, err := util.GatherChartPaths(args[0], constants.ChartExt, reportMax)
		if err != nil {
			return err
		}
		st, _ := cfg.SortType()
		rep := buildReport(inspectFiles(paths, cfg.Jobs, st, newLogger()))
		printReport(rep)
		return nil
	},
}

type chartReport struct {
	numFiles    int
	failed      []inspection
	totalBytes  int64
	notes       int
	judgable    int
	arcTaps     int
	groups      int
	totalLength int
	longest     int
	params      map[string]int
}

func buildReport(results []inspection) chartReport {
	rep := chartReport{numFiles: len(results), params: make(map[string]int)}
	for _, res := range results {
		if res.err != nil {
			rep.failed = append(rep.failed, res)
			continue
		}
		s := res.summary
		rep.totalBytes += res.size
		rep.notes += s.NoteCount
		rep.judgable += s.JudgableNoteCount
		rep.arcTaps += s.ArcTapCount
		rep.groups += s.GroupCount
		rep.totalLength += s.Duration
		rep.longest = util.Max(rep.longest, s.Duration)
		for _, p := range res.params {
			rep.params[strings.ToLower(p)]++
		}
	}
	return rep
}

func printReport(rep chartReport) {
	parsed := rep.numFiles - len(rep.failed)
	fmt.Printf("charts: %d parsed, %d failed (%s)\n", parsed, len(rep.failed), humanize.Bytes(uint64(rep.totalBytes)))
	fmt.Printf("notes: %s (%s judgable), arctaps: %s\n",
		humanize.Comma(int64(rep.notes)), humanize.Comma(int64(rep.judgable)), humanize.Comma(int64(rep.arcTaps)))
	fmt.Printf("timing groups: %d\n", rep.groups)
	fmt.Printf("total length: %s, longest: %s\n", formatLength(rep.totalLength), formatLength(rep.longest))
	for _, p := range util.GetKeys(rep.params) {
		fmt.Printf("  group modifier %s: %d\n", p, rep.params[p])
	}
	for _, res := range rep.failed {
		fmt.Printf("failed %s: %v\n", res.path, res.err)
	}
}
