package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/kasuboski/marquee/pkg/logger"
	"github.com/kasuboski/marquee/pkg/media"
	"github.com/kasuboski/marquee/pkg/pagination"
	"github.com/spf13/cobra"
)

var browseLimit int

// discoverBrowseCmd is an interactive search. Typing a query searches, an empty line loads more.
var discoverBrowseCmd = &cobra.Command{
	Use:   "browse",
	Short: "search interactively, an empty line loads more results",
	Run: func(cmd *cobra.Command, args []string) {
		a, err := newApp()
		if err != nil {
			logger.Get().Fatal(err)
		}

		ctx := logger.WithCtx(context.Background(), a.log)
		b := browser{
			kind:  media.ParseKind(discoverKind),
			limit: a.searchLimit(browseLimit),
			fetch: a.manager.SearchPage,
		}
		if err := b.run(ctx, cmd.InOrStdin(), cmd.OutOrStdout()); err != nil {
			a.log.Fatalw("failed to read input", "error", err)
		}
	},
}

type browser struct {
	kind    media.Kind
	limit   int
	fetch   pagination.Fetcher
	session *pagination.Session
}

func (b *browser) run(ctx context.Context, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	fmt.Fprint(out, "> ")
	for scanner.Scan() {
		records, err := b.handle(ctx, scanner.Text())
		switch {
		case errors.Is(err, pagination.ErrExhausted):
			fmt.Fprintln(out, "no more results")
		case err != nil:
			fmt.Fprintf(out, "error: %v\n", err)
		case len(records) > 0:
			printRecords(out, records)
		}
		fmt.Fprint(out, "> ")
	}
	return scanner.Err()
}

// handle answers one line of input. The same query again shows what was
// already loaded instead of starting over.
func (b *browser) handle(ctx context.Context, line string) ([]media.Record, error) {
	query := pagination.NormalizeQuery(line)

	switch {
	case query == "" && b.session == nil:
		return nil, nil
	case query == "":
		return b.session.LoadMore(ctx)
	case b.session != nil && b.session.Matches(query, b.kind):
		return b.session.State().Accumulated, nil
	}

	b.session = pagination.NewSession(query, b.kind, b.fetch, pagination.WithLimit(b.limit))
	return b.session.Load(ctx)
}

func init() {
	discoverCmd.AddCommand(discoverBrowseCmd)
	discoverBrowseCmd.Flags().IntVarP(&browseLimit, "limit", "l", 0, "results kept per page (defaults to search.defaultLimit)")
}
