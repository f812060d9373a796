// Package cmd provides the command-line interface of hbmsim.
package cmd

import (
	"errors"
	"io/fs"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"
)

// Environment variables that supply flag defaults. They can also be set in a
// .env file in the working directory.
const (
	envConfig = "HBMSIM_CONFIG"
	envDB     = "HBMSIM_DB"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "hbmsim",
	Short: "hbmsim simulates the memory front-end of an HBM stack.",
	Long: `hbmsim simulates the memory front-end of an HBM stack. It maps ` +
		`addresses onto channels, translates pages, estimates the data ` +
		`movement of processing-in-memory units, and reports the ` +
		`statistics of a run.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags
// appropriately.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		atexit.Exit(1)
	}

	atexit.Exit(0)
}

func init() {
	loadEnv(".env")
}

func loadEnv(filename string) {
	err := godotenv.Load(filename)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("ignoring %s: %v", filename, err)
	}
}

func envOr(key, def string) string {
	if v, found := os.LookupEnv(key); found {
		return v
	}

	return def
}
