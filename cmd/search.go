package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/kasuboski/marquee/pkg/logger"
	"github.com/kasuboski/marquee/pkg/media"
	"github.com/kasuboski/marquee/pkg/pagination"
	"github.com/spf13/cobra"
)

var (
	searchPages int
	searchLimit int
)

// discoverSearchCmd searches titles, loading more pages like an infinite scroll would
var discoverSearchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "search movies or tv by title",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		query := pagination.NormalizeQuery(strings.Join(args, " "))
		if query == "" {
			logger.Get().Fatal("query is empty")
		}

		a, err := newApp()
		if err != nil {
			logger.Get().Fatal(err)
		}

		ctx := logger.WithCtx(context.Background(), a.log)
		kind := media.ParseKind(discoverKind)
		session := pagination.NewSession(query, kind, a.manager.SearchPage, pagination.WithLimit(a.searchLimit(searchLimit)))

		records, err := session.Load(ctx)
		if err != nil {
			a.log.Fatalw("failed to search", "query", query, "error", err)
		}
		printRecords(cmd.OutOrStdout(), records)

		for i := 1; i < searchPages; i++ {
			records, err = session.LoadMore(ctx)
			if errors.Is(err, pagination.ErrExhausted) {
				break
			}
			if err != nil {
				a.log.Errorw("failed to load more results", "page", session.State().NextPage(), "error", err)
				break
			}

			fmt.Fprintln(cmd.OutOrStdout())
			printRecords(cmd.OutOrStdout(), records)
		}

		state := session.State()
		fmt.Fprintf(cmd.OutOrStdout(), "\n%s results from %d of %s pages, %d per page (%s)\n",
			humanize.Comma(int64(len(state.Accumulated))),
			state.CurrentPage, humanize.Comma(int64(state.TotalPages)), session.Limit(), session.Status())
	},
}

func init() {
	discoverCmd.AddCommand(discoverSearchCmd)
	discoverSearchCmd.Flags().IntVar(&searchPages, "pages", 1, "number of pages to load")
	discoverSearchCmd.Flags().IntVarP(&searchLimit, "limit", "l", 0, "results kept per page (defaults to search.defaultLimit)")
}
