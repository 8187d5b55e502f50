package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/relkit/relkit"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <archive-name> [dir]",
	Short: "Check a split manifest against the parts on disk",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := "."
		if len(args) == 2 {
			dir = args[1]
		}
		verify, _ := cmd.Flags().GetBool("digests")

		report, err := relkit.Inspect(dir, args[0], relkit.InspectWithVerifyDigests(verify))
		if err != nil {
			return err
		}
		m := report.Manifest
		fmt.Printf("archive:     %s\n", m.Archive)
		if m.Version != "" {
			fmt.Printf("version:     %s\n", m.Version)
		}
		fmt.Printf("created:     %s\n", m.Created)
		fmt.Printf("compression: %s\n", m.Compression)
		fmt.Printf("parts:       %d (%d on disk)\n", m.PartCount, report.PartsOnDisk)
		fmt.Printf("total size:  %d (%d on disk)\n", m.TotalSize, report.SizeOnDisk)
		if report.Consistent() {
			fmt.Println("manifest and disk agree")
			return nil
		}
		for _, p := range report.Problems {
			fmt.Printf("problem: %s\n", p)
		}
		return fmt.Errorf("%d problem(s) found", len(report.Problems))
	},
}

func init() {
	inspectCmd.Flags().Bool("digests", false, "re-hash parts and verify content digests")
}
