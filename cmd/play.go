package cmd

import (
	"context"
	"fmt"

	"github.com/kasuboski/marquee/pkg/logger"
	"github.com/kasuboski/marquee/pkg/player"
	"github.com/spf13/cobra"
)

var playRequest player.Request

// playCmd prints the embed link for a movie, episode or anime episode
var playCmd = &cobra.Command{
	Use:   "play",
	Short: "build a play link",
	Example: `  marquee play --type movie --tmdb-id 603
  marquee play --type tv --tmdb-id 1399 --season 1 --episode 1
  marquee play --type anime --mal-id 5114 --number 1 --sub-or-dub sub`,
	Run: func(cmd *cobra.Command, args []string) {
		a, err := newApp()
		if err != nil {
			logger.Get().Fatal(err)
		}

		ctx := logger.WithCtx(context.Background(), a.log)
		link, err := a.manager.Play(ctx, playRequest)
		if err != nil {
			a.log.Fatalw("failed to build play link", "error", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), link)
	},
}

func init() {
	rootCmd.AddCommand(playCmd)

	playCmd.Flags().StringVar(&playRequest.Type, "type", "movie", "movie, tv or anime")
	playCmd.Flags().StringVar(&playRequest.TMDBID, "tmdb-id", "", "TMDB id of the movie or show")
	playCmd.Flags().StringVar(&playRequest.Season, "season", "", "season number")
	playCmd.Flags().StringVar(&playRequest.Episode, "episode", "", "episode number")
	playCmd.Flags().StringVar(&playRequest.MALID, "mal-id", "", "MyAnimeList id")
	playCmd.Flags().StringVar(&playRequest.Number, "number", "", "anime episode number")
	playCmd.Flags().StringVar(&playRequest.SubOrDub, "sub-or-dub", "", "sub or dub")
}
