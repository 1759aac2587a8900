package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/eringen/folio/content"
)

func newListCommand(ctx *commandContext) *cobra.Command {
	var tag string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List published articles, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := ctx.load(cmd, discardLogger())
			if err != nil {
				return err
			}
			list := content.NewIndex(res.Articles).ListByTag(tag)

			out := cmd.OutOrStdout()
			if len(list) == 0 {
				fmt.Fprintln(out, "No articles.")
				return nil
			}
			rows := make([][]string, 0, len(list))
			for _, a := range list {
				rows = append(rows, []string{
					a.PublishedDate.Format(content.DateLayout),
					a.ID,
					a.Title,
					strings.Join(a.Tags, ", "),
				})
			}
			fmt.Fprintln(out, renderTable([]string{"Date", "ID", "Title", "Tags"}, rows))
			if n := len(res.Skipped); n > 0 {
				fmt.Fprintf(out, "%d invalid file(s) skipped; run `folio check` for details\n", n)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&tag, "tag", "t", "", "Only list articles with this tag")
	return cmd
}
