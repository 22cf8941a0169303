// Command modusc is the outer driver for the build planner: it owns no
// grammar of its own, the way the teacher's cmd/example wires the
// minikanren library into a runnable demonstration without parsing
// anything itself. modusc instead accepts a pre-parsed surface program
// as JSON, the shape a real frontend's grammar parser would produce,
// and drives internal/engine's Solve and Plan over it.
package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mayhemheroes/modus/internal/engine"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "modusc",
	Short: "Solve and plan Horn-clause image-build programs",
}

func loadEngine() (*engine.Engine, error) {
	cfg := engine.DefaultConfig()
	if configPath != "" {
		loaded, err := engine.LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	return engine.New(cfg, logrus.StandardLogger()), nil
}

func main() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML engine config file")
	rootCmd.AddCommand(solveCmd, planCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
