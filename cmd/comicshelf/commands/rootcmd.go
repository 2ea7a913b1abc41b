package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/danielkitchener/ComicShelf/pkg/thumbnail/constant"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/thediveo/enumflag/v2"
)

// Map zerolog levels to their textual representations
var LogLevelIds = map[zerolog.Level][]string{
	zerolog.PanicLevel: {"panic"},
	zerolog.FatalLevel: {"fatal"},
	zerolog.ErrorLevel: {"error"},
	zerolog.WarnLevel:  {"warn", "warning"},
	zerolog.InfoLevel:  {"info"},
	zerolog.DebugLevel: {"debug"},
	zerolog.TraceLevel: {"trace"},
}

// Global log level variable with default
var logLevel zerolog.Level = zerolog.InfoLevel

var thumbFormat = constant.DefaultFormat

var rootCmd = &cobra.Command{
	Use:   "comicshelf",
	Short: "Serve and publish a comic gallery described by data.xml and playlists.xml",
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		ConfigureLogging()
	},
	SilenceUsage: true,
}

func SetVersionInfo(version, commit, date string) {
	rootCmd.Version = fmt.Sprintf("%s (Built on %s from Git SHA %s)", version, date, commit)
}

func getPath() string {
	return filepath.Join(map[string]string{
		"windows": filepath.Join(os.Getenv("APPDATA")),
		"darwin":  filepath.Join(os.Getenv("HOME"), ".config"),
		"linux":   filepath.Join(os.Getenv("HOME"), ".config"),
	}[runtime.GOOS], "ComicShelf")
}

func init() {
	configFolder := getPath()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configFolder)
	viper.SetEnvPrefix("COMICSHELF")
	viper.AutomaticEnv()

	// Add log level flag (accepts zerolog levels: panic, fatal, error, warn, info, debug, trace)
	rootCmd.PersistentFlags().VarP(
		enumflag.New(&logLevel, "log", LogLevelIds, enumflag.EnumCaseInsensitive),
		"log", "l",
		"Set log level; can be 'panic', 'fatal', 'error', 'warn', 'info', 'debug', or 'trace'")
	_ = viper.BindEnv("log_level", "LOG_LEVEL")

	flags := rootCmd.PersistentFlags()
	flags.String("data", "data.xml", "Path or http(s) URL of the comics document")
	flags.String("playlists", "playlists.xml", "Path or http(s) URL of the playlists document")
	flags.String("pictures", "pictures", "Folder holding the comic pictures")
	flags.String("thumbs", "", "Folder holding the preview thumbnails, previews use full pictures when empty")
	formatFlag := enumflag.New(&thumbFormat, "thumb-format", constant.CommandValue, enumflag.EnumCaseInsensitive)
	flags.Var(formatFlag, "thumb-format", fmt.Sprintf("Format of the preview thumbnails: %s", constant.ListAll()))
	_ = formatFlag.RegisterCompletion(rootCmd, "thumb-format", constant.HelpText)
	flags.String("site-name", "", "Title shown on every page")
	flags.Int("random-tags", 0, "Random tag groups on the home page, 0 for the default, negative to disable")

	for key, flag := range map[string]string{
		"data":         "data",
		"playlists":    "playlists",
		"pictures":     "pictures",
		"thumbs":       "thumbs",
		"thumb_format": "thumb-format",
		"site_name":    "site-name",
		"random_tags":  "random-tags",
	} {
		_ = viper.BindPFlag(key, flags.Lookup(flag))
	}

	err := os.MkdirAll(configFolder, os.ModePerm)
	if err != nil {
		panic(fmt.Errorf("fatal error config file: %w", err))
	}
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			err := viper.SafeWriteConfig()
			if err != nil {
				panic(fmt.Errorf("fatal error config file: %w", err))
			}
		} else {
			panic(fmt.Errorf("fatal error config file: %w", err))
		}
	}
}

// Execute executes the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal().Err(err).Msg("Command execution failed")
	}
}

func AddCommand(cmd *cobra.Command) {
	rootCmd.AddCommand(cmd)
}

// ConfigureLogging sets up zerolog based on command-line flags and environment variables
func ConfigureLogging() {
	level := zerolog.InfoLevel

	if envLogLevel := viper.GetString("log_level"); envLogLevel != "" {
		if parsedLevel, err := zerolog.ParseLevel(envLogLevel); err == nil {
			level = parsedLevel
		}
	}

	// The flag wins over the environment once it moved away from the default.
	if logLevel != zerolog.InfoLevel {
		level = logLevel
	}

	zerolog.SetGlobalLevel(level)

	log.Logger = log.Output(zerolog.ConsoleWriter{
		Out:     os.Stderr,
		NoColor: false,
	})
}
