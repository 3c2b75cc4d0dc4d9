package stress

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"gopkg.in/yaml.v3"
)

// Report of one run.
type Report struct {
	Seed       int64         `json:"seed" yaml:"seed"`
	Ops        int           `json:"ops" yaml:"ops"`
	Inserts    int           `json:"inserts" yaml:"inserts"`
	Duplicates int           `json:"duplicates" yaml:"duplicates"`
	Removes    int           `json:"removes" yaml:"removes"`
	Checks     int           `json:"checks" yaml:"checks"`
	MaxSize    int           `json:"maxSize" yaml:"maxSize"`
	MaxHeight  int           `json:"maxHeight" yaml:"maxHeight"`
	FinalSize  int           `json:"finalSize" yaml:"finalSize"`
	Elapsed    time.Duration `json:"elapsed" yaml:"elapsed"`
}

const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Encode writes the reports to w in the given format.
func Encode(w io.Writer, format string, reps []*Report) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(reps)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(reps); err != nil {
			return err
		}
		return enc.Close()
	case FormatText, "":
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "SEED\tOPS\tINSERTS\tDUPLICATES\tREMOVES\tCHECKS\tMAX SIZE\tMAX HEIGHT\tELAPSED")
		for _, r := range reps {
			if r == nil {
				continue
			}
			fmt.Fprintf(tw, "%d\t%d\t%d\t%d\t%d\t%d\t%d\t%d\t%v\n", r.Seed, r.Ops, r.Inserts, r.Duplicates, r.Removes, r.Checks, r.MaxSize, r.MaxHeight, r.Elapsed.Round(time.Millisecond))
		}
		return tw.Flush()
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}
