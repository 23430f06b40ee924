package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/lmichalski/dimfield/internal/dimfield"
)

func main() {
	dimfield.Debug = os.Getenv("DEBUG") != ""

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "dimfield",
		Short: "Dimensional interaction/energy engine",
		Long: "dimfield computes per-vertex interaction signals and multi-channel\n" +
			"energy snapshots over the corners of a d-dimensional hypercube lattice.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.String("config", "", "optional YAML config file")
	pf.Int("max-dimensions", dimfield.DefaultMaxDimensions, "dimension ceiling (1..20)")
	pf.Int("cap", dimfield.DefaultVertexCap, "vertex cap")
	pf.Float64("influence", 1, "interaction influence")

	root.AddCommand(newRunCmd(), newSweepCmd())
	return root
}

func initConfig(cmd *cobra.Command) error {
	viper.SetDefault("engine.max_dimensions", dimfield.DefaultMaxDimensions)
	viper.SetDefault("engine.cap", dimfield.DefaultVertexCap)
	viper.SetDefault("params.influence", 1.0)
	viper.SetDefault("output.csv", "")
	viper.SetDefault("output.chart", "")

	pf := cmd.Root().PersistentFlags()
	if err := viper.BindPFlag("engine.max_dimensions", pf.Lookup("max-dimensions")); err != nil {
		return err
	}
	if err := viper.BindPFlag("engine.cap", pf.Lookup("cap")); err != nil {
		return err
	}
	if err := viper.BindPFlag("params.influence", pf.Lookup("influence")); err != nil {
		return err
	}

	viper.SetEnvPrefix("DIMFIELD")
	viper.AutomaticEnv()

	if cfg, _ := pf.GetString("config"); cfg != "" {
		viper.SetConfigFile(cfg)
		viper.SetConfigType("yaml")
		if err := viper.ReadInConfig(); err != nil {
			return fmt.Errorf("read config %s: %w", cfg, err)
		}
	}
	return nil
}

func engineFromConfig() (*dimfield.Engine, error) {
	params := dimfield.DefaultParameters()
	params.Influence = viper.GetFloat64("params.influence")
	return dimfield.New(dimfield.Options{
		MaxDimensions: viper.GetInt("engine.max_dimensions"),
		VertexCap:     viper.GetInt("engine.cap"),
		Params:        &params,
		Navigator:     &dimfield.StaticNavigator{W: 1920, H: 1080},
	})
}

func newRunCmd() *cobra.Command {
	var dim int
	var csvOut string
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Compute one energy snapshot at a fixed dimension",
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := engineFromConfig()
			if err != nil {
				return err
			}
			if err := eng.SetCurrentDimension(dim); err != nil {
				return err
			}
			r := eng.Compute()
			fmt.Printf("dimension=%d observable=%.6g potential=%.6g matter=%.6g energy=%.6g wave=%.6g\n",
				eng.CurrentDimension(), r.Observable, r.Potential, r.Matter, r.Energy, r.Wave)
			if csvOut != "" {
				return eng.ExportCSV(csvOut)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&dim, "dimension", 3, "lattice dimension")
	cmd.Flags().StringVar(&csvOut, "csv", "", "append the snapshot to this CSV file")
	return cmd
}

func newSweepCmd() *cobra.Command {
	var from, to int
	var csvOut, chartOut string
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Compute snapshots across a dimension range",
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := engineFromConfig()
			if err != nil {
				return err
			}
			if to == 0 {
				to = eng.MaxDimensions()
			}
			snaps, err := eng.Sweep(from, to)
			if err != nil {
				return err
			}
			for _, s := range snaps {
				fmt.Printf("d=%-2d observable=%.6g potential=%.6g\n",
					s.Dimension, s.Result.Observable, s.Result.Potential)
			}
			if csvOut == "" {
				csvOut = viper.GetString("output.csv")
			}
			if chartOut == "" {
				chartOut = viper.GetString("output.chart")
			}
			if csvOut != "" {
				if err := dimfield.ExportCSV(csvOut, snaps); err != nil {
					return err
				}
			}
			if chartOut != "" {
				if err := dimfield.RenderEnergyChart(chartOut, snaps); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&from, "from", 1, "first dimension")
	cmd.Flags().IntVar(&to, "to", 0, "last dimension (default: max)")
	cmd.Flags().StringVar(&csvOut, "csv", "", "append snapshots to this CSV file")
	cmd.Flags().StringVar(&chartOut, "chart", "", "render a PNG energy chart to this file")
	return cmd
}
