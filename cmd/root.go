package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	mhttp "github.com/kasuboski/marquee/pkg/http"
	"github.com/kasuboski/marquee/pkg/pagination"
	"github.com/kasuboski/marquee/pkg/player"
	"github.com/kasuboski/marquee/pkg/tmdb"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	envFile string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "marquee",
	Short: "marquee cli",
	Long:  `marquee serves a discovery API over TMDB and builds play links for the embed provider`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before reading the environment")
}

func initConfig() {
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "failed to load env file %s: %v\n", envFile, err)
	}

	viper.SetConfigFile(cfgFile)

	viper.SetEnvPrefix("MARQUEE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", ""))
	viper.AutomaticEnv()

	// the names the web frontend used
	viper.BindEnv("tmdb.accessToken", "MARQUEE_TMDB_ACCESSTOKEN", "TMDB_ACCESS_TOKEN")
	viper.BindEnv("tmdb.apiURL", "MARQUEE_TMDB_APIURL", "TMDB_API_URL")
	viper.BindEnv("tmdb.imageBaseURL", "MARQUEE_TMDB_IMAGEBASEURL", "TMDB_IMAGE_BASE_URL")

	viper.SetDefault("tmdb.apiURL", tmdb.DefaultBaseURL)
	viper.SetDefault("tmdb.accessToken", "")
	viper.SetDefault("tmdb.imageBaseURL", tmdb.DefaultImageBaseURL)
	viper.SetDefault("tmdb.language", tmdb.DefaultLanguage)
	viper.SetDefault("tmdb.timeout", tmdb.DefaultTimeout)
	viper.SetDefault("tmdb.requestsPerSecond", mhttp.DefaultRequestsPerSecond)
	viper.SetDefault("tmdb.burst", mhttp.DefaultBurst)

	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.corsOrigins", []string{"*"})
	viper.SetDefault("server.requestsPerMinute", 120)
	viper.SetDefault("server.shutdownTimeout", "3s")
	viper.SetDefault("server.trustProxy", false)

	options := player.DefaultOptions()
	viper.SetDefault("embed.baseURL", player.DefaultBaseURL)
	viper.SetDefault("embed.allowedHosts", player.DefaultAllowedHosts)
	viper.SetDefault("embed.options.primaryColor", options.PrimaryColor)
	viper.SetDefault("embed.options.secondaryColor", options.SecondaryColor)
	viper.SetDefault("embed.options.iconColor", options.IconColor)
	viper.SetDefault("embed.options.icons", options.Icons)
	viper.SetDefault("embed.options.title", options.Title)
	viper.SetDefault("embed.options.poster", options.Poster)
	viper.SetDefault("embed.options.autoplay", options.Autoplay)
	viper.SetDefault("embed.options.nextButton", options.NextButton)

	viper.SetDefault("search.defaultLimit", pagination.DefaultPageSize)

	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.json", false)
}
