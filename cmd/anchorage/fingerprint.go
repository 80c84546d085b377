package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var fingerprintCmd = &cobra.Command{
	Use:   "fingerprint file.html...",
	Short: "Print the text fingerprint of documents",
	Long: `Fingerprint prints the BLAKE3 digest of each document's text. Targets
created with "describe --target" record it, and "anchor" reports targets
whose document text has changed since.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runFingerprint,
}

func runFingerprint(cmd *cobra.Command, args []string) error {
	e, err := loadEnv(cmd)
	if err != nil {
		return err
	}
	for _, path := range args {
		doc, err := e.open(path)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", doc.Fingerprint(), path)
	}
	return nil
}
