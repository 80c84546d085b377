package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/tsawler/anchorage"
	"github.com/tsawler/anchorage/internal/config"
	"github.com/tsawler/anchorage/selector"
)

var anchorCmd = &cobra.Command{
	Use:   "anchor [flags] file.html targets.json",
	Short: "Anchor stored selectors in a document",
	Long: `Anchor resolves annotation targets against a document. The targets file
holds a JSON array of targets, a single target, or a bare JSON selector
array. Files ending in .msgpack hold a selector set in binary form.`,
	Args: cobra.ExactArgs(2),
	RunE: runAnchor,
}

func init() {
	anchorCmd.Flags().String("format", config.FormatJSON, "output format (json|msgpack|pretty)")
	anchorCmd.Flags().Int("hint", -1, "expected start offset for quote search")
	anchorCmd.Flags().Int("concurrency", 0, "targets to resolve at once (default GOMAXPROCS)")
	anchorCmd.Flags().Bool("strict", false, "exit with an error when a target is orphaned")
}

// report is the outcome of one target as printed by anchor.
type report struct {
	ID       string `json:"id" msgpack:"id"`
	Anchored bool   `json:"anchored" msgpack:"anchored"`
	Start    int    `json:"start" msgpack:"start"`
	End      int    `json:"end" msgpack:"end"`
	Text     string `json:"text,omitempty" msgpack:"text,omitempty"`
	Error    string `json:"error,omitempty" msgpack:"error,omitempty"`
}

func runAnchor(cmd *cobra.Command, args []string) error {
	e, err := loadEnv(cmd)
	if err != nil {
		return err
	}
	hint, err := cmd.Flags().GetInt("hint")
	if err != nil {
		return fmt.Errorf("failed to get hint flag: %w", err)
	}
	strict, err := cmd.Flags().GetBool("strict")
	if err != nil {
		return fmt.Errorf("failed to get strict flag: %w", err)
	}

	doc, err := e.open(args[0])
	if err != nil {
		return err
	}
	targets, err := readTargets(args[1])
	if err != nil {
		return err
	}

	opts := []anchorage.Option{
		anchorage.WithLogger(e.logger),
		anchorage.WithConcurrency(e.cfg.Concurrency),
	}
	if hint >= 0 {
		opts = append(opts, anchorage.WithHint(hint))
	}

	results, err := anchorage.AnchorAll(doc, targets, opts...)
	if err != nil {
		return err
	}

	reports := make([]report, len(results))
	orphaned := 0
	for i, r := range results {
		rep := report{ID: r.Target.ID}
		if r.Err == nil {
			rep.Anchored = true
			rep.Start = r.Range.Start()
			rep.End = r.Range.End()
			rep.Text = r.Range.String()
		} else {
			rep.Error = r.Err.Error()
			if r.Orphaned() {
				orphaned++
			}
		}
		reports[i] = rep
	}

	out := cmd.OutOrStdout()
	switch e.cfg.Format {
	case config.FormatJSON:
		err = writeJSON(out, reports)
	case config.FormatMsgpack:
		err = msgpack.NewEncoder(out).Encode(reports)
	default:
		err = writeReportsPretty(out, reports)
	}
	if err != nil {
		return err
	}

	if strict && orphaned > 0 {
		return fmt.Errorf("%d of %d targets orphaned", orphaned, len(targets))
	}
	return nil
}

func writeReportsPretty(w io.Writer, reports []report) error {
	for _, r := range reports {
		var err error
		if r.Anchored {
			_, err = fmt.Fprintf(w, "%s %s  [%d, %d)  %q\n",
				okColor.Sprint("anchored"), r.ID, r.Start, r.End, truncate(r.Text, quoteWidth))
		} else {
			_, err = fmt.Fprintf(w, "%s %s  %s\n",
				orphanColor.Sprint("orphaned"), r.ID, dimColor.Sprint(r.Error))
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// readTargets loads the targets file in any of the accepted shapes. Bare
// selector sets become a single target named after the file.
func readTargets(path string) ([]selector.Target, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading targets: %w", err)
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	if filepath.Ext(path) == ".msgpack" {
		set, err := selector.DecodeSet(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return []selector.Target{{ID: name, Selectors: set}}, nil
	}

	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		var t selector.Target
		if err := json.Unmarshal(data, &t); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		if t.ID == "" {
			t.ID = name
		}
		return []selector.Target{t}, nil
	}
	if len(items) == 0 {
		return nil, nil
	}

	var probe struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(items[0], &probe); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if probe.Type != "" {
		var set selector.Set
		if err := json.Unmarshal(data, &set); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return []selector.Target{{ID: name, Selectors: set}}, nil
	}

	var targets []selector.Target
	if err := json.Unmarshal(data, &targets); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	for i := range targets {
		if targets[i].ID == "" {
			targets[i].ID = fmt.Sprintf("%s#%d", name, i)
		}
	}
	return targets, nil
}
