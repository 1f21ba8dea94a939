package main

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/psidex/citygraph/internal/errors"
	"github.com/psidex/citygraph/internal/highlight"
)

var mergeCmd = &cobra.Command{
	Use:   "merge [start:length ...]",
	Short: "Merge overlapping highlight intervals",
	Long: `Merge intervals given as start:length arguments, or as a JSON array of
{"start","length"} objects on stdin with --json. Touching intervals are merged too.

With --text the merged intervals are applied to the text and the marked-up HTML is
printed instead.`,
	Example: `  citygraph merge 0:5 3:4 10:2
  echo '[{"start":1,"length":2}]' | citygraph merge --json`,
	RunE: runMerge,
}

var (
	mergeJSON bool
	mergeText string
)

func init() {
	mergeCmd.Flags().BoolVar(&mergeJSON, "json", false, "read intervals as JSON from stdin")
	mergeCmd.Flags().StringVar(&mergeText, "text", "", "render the merged intervals over this text")
}

func runMerge(cmd *cobra.Command, args []string) error {
	var spans []highlight.Interval
	if mergeJSON {
		b, err := readInput("-")
		if err != nil {
			return err
		}
		if err := json.Unmarshal(b, &spans); err != nil {
			return errors.Mark(errors.Wrap(err, "decode intervals"), errors.ErrInvalidRequest)
		}
	}
	for _, arg := range args {
		i, err := parseInterval(arg)
		if err != nil {
			return err
		}
		spans = append(spans, i)
	}

	merged, err := highlight.MergeValues(spans)
	if err != nil {
		return errors.WithHint(err, "pass intervals as start:length, e.g. 0:5")
	}

	if mergeText != "" {
		out, err := highlight.Render(mergeText, merged)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	return enc.Encode(merged)
}

func parseInterval(s string) (highlight.Interval, error) {
	start, length, ok := strings.Cut(s, ":")
	if !ok {
		return highlight.Interval{}, errors.InvalidRequestf("interval %q is not start:length", s)
	}
	a, err := strconv.Atoi(start)
	if err != nil {
		return highlight.Interval{}, errors.InvalidRequestf("interval %q: bad start", s)
	}
	b, err := strconv.Atoi(length)
	if err != nil {
		return highlight.Interval{}, errors.InvalidRequestf("interval %q: bad length", s)
	}
	return highlight.Interval{Start: a, Length: b}, nil
}
