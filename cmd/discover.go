package cmd

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/kasuboski/marquee/pkg/logger"
	"github.com/kasuboski/marquee/pkg/media"
	"github.com/spf13/cobra"
)

var (
	discoverKind string
	discoverPage int
)

// discoverCmd represents the discover command
var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Discover movies and tv from TMDB",
}

var discoverGenresCmd = &cobra.Command{
	Use:   "genres",
	Short: "list movie and tv genres",
	Run: func(cmd *cobra.Command, args []string) {
		a, err := newApp()
		if err != nil {
			logger.Get().Fatal(err)
		}

		ctx := logger.WithCtx(context.Background(), a.log)
		genres := a.manager.Genres(ctx)

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tLISTS")
		for _, g := range genres {
			fmt.Fprintf(w, "%d\t%s\t%d\n", g.ID, g.Name, g.OccurrenceCount)
		}
		w.Flush()
	},
}

var discoverPopularCmd = &cobra.Command{
	Use:   "popular",
	Short: "list popular movies or tv",
	Run: func(cmd *cobra.Command, args []string) {
		a, err := newApp()
		if err != nil {
			logger.Get().Fatal(err)
		}

		ctx := logger.WithCtx(context.Background(), a.log)
		kind := media.ParseKind(discoverKind)

		result, err := a.manager.Popular(ctx, kind, discoverPage)
		if err != nil {
			a.log.Fatalw("failed to list popular titles", "kind", kind.String(), "error", err)
		}

		printRecords(cmd.OutOrStdout(), result.Results)
		fmt.Fprintf(cmd.OutOrStdout(), "\npage %d of %s, %s titles\n",
			result.Page, humanize.Comma(int64(result.TotalPages)), humanize.Comma(int64(result.TotalResults)))
	},
}

func printRecords(out io.Writer, records []media.Record) {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tDATE\tRATING")
	for _, r := range records {
		rating := "-"
		if r.VoteAverage.IsSpecified() && !r.VoteAverage.IsNull() {
			rating = humanize.FtoaWithDigits(r.Rating(), 1)
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", r.ID, r.Title, humanDate(r.Date()), rating)
	}
	w.Flush()
}

// humanDate renders a TMDB date with its distance from now, like "1999-03-31 (25 years ago)".
func humanDate(date string) string {
	if date == "" {
		return "TBA"
	}

	t, err := time.Parse(time.DateOnly, date)
	if err != nil {
		return date
	}
	return fmt.Sprintf("%s (%s)", date, humanize.Time(t))
}

func init() {
	rootCmd.AddCommand(discoverCmd)
	discoverCmd.AddCommand(discoverGenresCmd)
	discoverCmd.AddCommand(discoverPopularCmd)

	discoverCmd.PersistentFlags().StringVarP(&discoverKind, "type", "t", "movie", "movie or tv")
	discoverPopularCmd.Flags().IntVarP(&discoverPage, "page", "p", 1, "page to list")
}
