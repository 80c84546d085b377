package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tsawler/anchorage"
	"github.com/tsawler/anchorage/internal/config"
	"github.com/tsawler/anchorage/selector"
)

var describeCmd = &cobra.Command{
	Use:   "describe [flags] file.html",
	Short: "Describe a text range as selectors",
	Long: `Describe derives a RangeSelector, TextPositionSelector and TextQuoteSelector
for the text between --start and --end, counted in code points of the
document's text.`,
	Args: cobra.ExactArgs(1),
	RunE: runDescribe,
}

func init() {
	describeCmd.Flags().Int("start", 0, "start offset of the range")
	describeCmd.Flags().Int("end", -1, "end offset of the range (required)")
	describeCmd.Flags().String("format", config.FormatJSON, "output format (json|msgpack|pretty)")
	describeCmd.Flags().Bool("target", false, "wrap the selectors in an annotation target")
}

func runDescribe(cmd *cobra.Command, args []string) error {
	e, err := loadEnv(cmd)
	if err != nil {
		return err
	}

	start, err := cmd.Flags().GetInt("start")
	if err != nil {
		return fmt.Errorf("failed to get start flag: %w", err)
	}
	end, err := cmd.Flags().GetInt("end")
	if err != nil {
		return fmt.Errorf("failed to get end flag: %w", err)
	}
	if end < 0 {
		return errors.New("--end is required")
	}
	wrap, err := cmd.Flags().GetBool("target")
	if err != nil {
		return fmt.Errorf("failed to get target flag: %w", err)
	}

	doc, err := e.open(args[0])
	if err != nil {
		return err
	}
	r, err := doc.Range(start, end)
	if err != nil {
		return fmt.Errorf("range [%d, %d): %w", start, end, err)
	}

	sels, err := anchorage.Describe(doc, r,
		anchorage.WithIgnoreSelector(e.cfg.IgnoreSelector),
		anchorage.WithLogger(e.logger),
	)
	if err != nil {
		return err
	}
	if len(sels) == 0 {
		e.logger.Warn().Int("start", start).Int("end", end).Msg("no selector could describe the range")
	}

	out := cmd.OutOrStdout()
	switch e.cfg.Format {
	case config.FormatJSON:
		if wrap {
			return writeJSON(out, selector.NewTarget(args[0], doc.Fingerprint(), sels))
		}
		return writeJSON(out, sels)
	case config.FormatMsgpack:
		if wrap {
			return errors.New("msgpack output does not support --target")
		}
		return selector.EncodeSet(out, sels)
	default:
		return writeSelectorsPretty(out, sels)
	}
}
