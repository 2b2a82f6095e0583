package main

import (
	"fmt"
	"os"

	"github.com/franz/soundbot/internal/util"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// Version is set at build time
	Version = "dev"

	cfgFile string

	rootCmd = &cobra.Command{
		Use:   "soundbot",
		Short: "Soundbot - manage and browse a searchable soundboard catalog",
		Long: `soundbot maintains a catalog of short audio clips: add and tag sounds,
search them with fuzzy full-text matching, pin favourites, and page
through the catalog the same way the board UI does.

All state lives in a single SQLite database next to an audio directory
holding the MPEG files themselves.`,
		Version: Version,
	}
)

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./configs/soundbot.yaml)")
	rootCmd.PersistentFlags().String("db", "soundbot.db", "catalog database file")
	rootCmd.PersistentFlags().String("audio-dir", "audio", "directory holding the audio files")
	rootCmd.PersistentFlags().Int("page-size", 20, "sounds per page in paged output")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "quiet output (errors only)")

	// Bind flags to viper
	viper.BindPFlag("db", rootCmd.PersistentFlags().Lookup("db"))
	viper.BindPFlag("audio_dir", rootCmd.PersistentFlags().Lookup("audio-dir"))
	viper.BindPFlag("page_size", rootCmd.PersistentFlags().Lookup("page-size"))
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))
}

func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Search for config in common locations
		viper.AddConfigPath("./configs")
		viper.AddConfigPath(".")
		viper.SetConfigName("soundbot")
		viper.SetConfigType("yaml")
	}

	// Read in environment variables that match
	viper.SetEnvPrefix("SOUNDBOT")
	viper.AutomaticEnv()

	// If a config file is found, read it in
	if err := viper.ReadInConfig(); err == nil && !viper.GetBool("quiet") {
		util.InfoLog("Using config file: %s", viper.ConfigFileUsed())
	}

	util.SetVerbose(viper.GetBool("verbose"))
	util.SetQuiet(viper.GetBool("quiet"))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
