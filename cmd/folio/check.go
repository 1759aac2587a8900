package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/eringen/folio/content"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validate every article and report invalid files",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Report every invalid file whatever the configured policy.
			res, err := ctx.loadWith(cmd, discardLogger(), func(lc *content.LoaderConfig) {
				lc.Policy = content.SkipInvalid
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%d article(s) OK\n", len(res.Articles))
			if len(res.Skipped) == 0 {
				return nil
			}

			rows := make([][]string, 0, len(res.Skipped))
			for _, perr := range res.Skipped {
				rows = append(rows, []string{perr.File, reason(perr.Err)})
			}
			fmt.Fprintln(out, renderTable([]string{"File", "Reason"}, rows))
			return fmt.Errorf("%d invalid article(s)", len(res.Skipped))
		},
	}
}

// reason flattens a parse error onto one table cell.
func reason(err error) string {
	if err == nil {
		return ""
	}
	return strings.Join(strings.Fields(err.Error()), " ")
}
