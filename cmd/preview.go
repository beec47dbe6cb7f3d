package cmd

import (
	"fmt"
	"os"

	"github.com/jsphweid/arckit/preview"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(previewCmd)
}

var previewCmd = &cobra.Command{
	Use:   "preview <file> <out.mid>",
	Short: "Writes the chart hit sounds as a MIDI file",
	Long: fmt.Sprintf(`Writes a MIDI file at %d BPM with a percussion hit at every tap,
hold start and arctap, leaving out noinput timing groups.`, preview.BPM),
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		st, _ := cfg.SortType()
		c, err := parseFile(args[0], st, newLogger())
		if err != nil {
			return err
		}
		f, err := os.Create(args[1])
		if err != nil {
			return err
		}
		if err := preview.Write(f, c); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
		fmt.Printf("wrote %d hits to %s\n", len(preview.Hits(c)), args[1])
		return nil
	},
}
