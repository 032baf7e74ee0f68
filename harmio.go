package main

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/phil-mansfield/harmio/lib/config"
	"github.com/phil-mansfield/harmio/lib/dumpio"
	errs "github.com/phil-mansfield/harmio/lib/error"
	"github.com/phil-mansfield/harmio/lib/logger"
)

var (
	cfgFile string
	cfg     = config.NewConfig()

	rootCmd = &cobra.Command{
		Use:   "harmio",
		Short: "harmio reads GRMHD simulation dumps",
		Long: "harmio inspects GRMHD simulation dump files: it prints their " +
			"times and params, resolves primitive variable names to " +
			"indices, summarizes variables, and converts dumps to " +
			"harmio's compressed raw format.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.Load(viper.GetViper(), cfgFile)
			if err != nil {
				return err
			}
			cfg = loaded
			return logger.SetLogLevel(cfg.Log.Level, cfg.Log.Format)
		},
	}
)

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file")
	flags.String("log-level", "info", "logging level debug|info|warn|error")
	flags.String("log-format", "text", "logging format [text|json]")
	flags.Bool("ghost-zones", false, "include ghost zones when reading variables")
	flags.Int("workers", 0, "files read at once (<= 0 means one per CPU)")

	binds := []struct{ key, flag string }{
		{"log.level", "log-level"},
		{"log.format", "log-format"},
		{"ghost_zones", "ghost-zones"},
		{"workers", "workers"},
	}
	for _, b := range binds {
		if err := viper.BindPFlag(b.key, flags.Lookup(b.flag)); err != nil {
			log.Fatal().Err(err).Msg("")
		}
	}

	rootCmd.AddCommand(timeCmd(), paramsCmd(), indexCmd(), statsCmd(),
		convertCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		errs.External("%s", err.Error())
	}
}

// options returns the dumpio options selected by the config.
func options() dumpio.Options {
	return dumpio.Options{GhostZones: cfg.GhostZones}
}
