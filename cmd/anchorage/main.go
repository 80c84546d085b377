// Command anchorage describes ranges of HTML documents as annotation
// selectors and anchors stored selectors back into documents.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "anchorage",
	Short: "Anchor annotation selectors in HTML documents",
	Long: `anchorage converts between text ranges of an HTML document and the
RangeSelector, TextPositionSelector and TextQuoteSelector descriptions that
annotation tools store, and resolves stored selectors against new versions
of a document.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(describeCmd)
	rootCmd.AddCommand(anchorCmd)
	rootCmd.AddCommand(fingerprintCmd)

	rootCmd.PersistentFlags().String("config", "", "path to a TOML config file")
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().String("root", "", "XPath of the anchoring root (default <body>)")
	rootCmd.PersistentFlags().String("ignore", "", "XPath of elements that may not host range containers")
	rootCmd.PersistentFlags().String("log-level", "", "log level (trace|debug|info|warn|error|off)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
