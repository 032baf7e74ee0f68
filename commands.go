package main

/* commands.go contains harmio's subcommands. */

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/phil-mansfield/harmio/lib/dumpio"
	"github.com/phil-mansfield/harmio/lib/stats"
)

func timeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "time FILE...",
		Short: "print the simulation time of each dump",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			times, err := dumpio.DumpTimes(cmd.Context(), args, cfg.Workers)
			if err != nil {
				return err
			}
			for i := range args {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %.8g\n", args[i], times[i])
			}
			return nil
		},
	}
}

func paramsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "params FILE",
		Short: "print the params of a dump",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := dumpio.Open(args[0], options())
			if err != nil {
				return err
			}
			defer d.Close()

			printParams(cmd.OutOrStdout(), d.Params())
			return nil
		},
	}
}

func printParams(w io.Writer, p dumpio.Params) {
	for _, key := range p.Keys() {
		fmt.Fprintf(w, "%s = %v\n", key, p[key])
	}
}

func indexCmd() *cobra.Command {
	var eprims []string
	cmd := &cobra.Command{
		Use:   "index NAME",
		Short: "resolve a primitive variable name to its index",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			names, indices, err := parseEprims(eprims)
			if err != nil {
				return err
			}
			idx := dumpio.IndexOf(args[0], names, indices)
			fmt.Fprintln(cmd.OutOrStdout(), idx)
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&eprims, "eprim", nil,
		"extra primitive present in the file, as NAME=INDEX (repeatable)")
	return cmd
}

// parseEprims converts NAME=INDEX pairs into the parallel lists IndexOf
// takes. No pairs gives nil lists, meaning "not supplied".
func parseEprims(pairs []string) ([]string, []int, error) {
	if len(pairs) == 0 {
		return nil, nil, nil
	}
	names, indices := []string{}, []int{}
	for _, pair := range pairs {
		tok := strings.SplitN(pair, "=", 2)
		if len(tok) != 2 {
			return nil, nil, fmt.Errorf("The extra primitive '%s' isn't "+
				"of the form NAME=INDEX.", pair)
		}
		i, err := strconv.Atoi(tok[1])
		if err != nil {
			return nil, nil, fmt.Errorf("The extra primitive '%s' has a "+
				"non-integer index.", pair)
		}
		names = append(names, strings.ToUpper(tok[0]))
		indices = append(indices, i)
	}
	return names, indices, nil
}

func statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats FILE VAR",
		Short: "summarize a variable",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := dumpio.Open(args[0], options())
			if err != nil {
				return err
			}
			defer d.Close()

			arr, err := d.ReadVar(args[1], nil)
			if err != nil {
				return err
			} else if arr == nil {
				return fmt.Errorf("The variable '%s' is not in %s.",
					args[1], args[0])
			}

			w := cmd.OutOrStdout()
			if len(arr.Shape) == 4 {
				for i, s := range stats.Components(arr) {
					fmt.Fprintf(w, "%s[%d] %s\n", args[1], i, s)
				}
			} else {
				fmt.Fprintf(w, "%s %s\n", args[1], stats.Summarize(arr))
			}
			return nil
		},
	}
}

func convertCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert IN OUT",
		Short: "rewrite a dump in harmio's raw format",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := dumpio.Open(args[0], dumpio.Options{GhostZones: true})
			if err != nil {
				return err
			}
			defer d.Close()

			opts := dumpio.WriteOptions{Compress: cfg.Compress}
			if err := dumpio.WriteRaw(args[1], d, opts); err != nil {
				return err
			}
			log.Info().Str("in", args[0]).Str("out", args[1]).
				Bool("compress", cfg.Compress).Msg("converted")
			return nil
		},
	}
	cmd.Flags().Bool("compress", false, "zstd-compress each variable")
	if err := viper.BindPFlag("compress", cmd.Flags().Lookup("compress")); err != nil {
		log.Fatal().Err(err).Msg("")
	}
	return cmd
}
