package main

import (
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ezrec/lsvm/vm"
)

const (
	EXIT_FAILURE = 1 // I/O or usage failure.
	EXIT_DECODE  = 2 // Bytecode or source failed to decode.
	EXIT_FAULT   = 3 // Runtime fault.
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "lsvm",
	Short: "A bytecode virtual machine for LED strips.",
	Long:  "Runs, assembles and lists bytecode programs driving a network attached LED strip controller.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if getFlag(cmd, "verbose") {
			log.SetLevel(log.DebugLevel)
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		if getFlag(cmd, "version") {
			fmt.Print("lsvm ")
			if info, ok := debug.ReadBuildInfo(); ok {
				fmt.Printf("%s", info.Main.Version)
			} else {
				fmt.Printf("(unknown version)")
			}
			fmt.Println()
			return
		}
		_ = cmd.Help()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(EXIT_FAILURE)
	}
}

func init() {
	rootCmd.Flags().Bool("version", false, "Report version of this executable")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "increase logging verbosity")
	rootCmd.PersistentFlags().String("config", "", "TOML configuration file")
}

// Get an expected flag, or exit if an error arises.
func getFlag(cmd *cobra.Command, flag string) bool {
	r, err := cmd.Flags().GetBool(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(EXIT_FAILURE)
	}

	return r
}

// Get an expected string flag, or exit if an error arises.
func getString(cmd *cobra.Command, flag string) string {
	r, err := cmd.Flags().GetString(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(EXIT_FAILURE)
	}

	return r
}

// exitCode maps a load or run error to a process exit code.
func exitCode(err error) int {
	var decode *vm.ErrDecode
	var syntax *vm.ErrSyntax
	var runtime *vm.ErrRuntime

	switch {
	case errors.As(err, &runtime):
		return EXIT_FAULT
	case errors.As(err, &decode), errors.As(err, &syntax):
		return EXIT_DECODE
	default:
		return EXIT_FAILURE
	}
}

// fatal logs err and exits with its exit code.
func fatal(name string, err error) {
	log.Errorf("%v: %v", name, err)
	os.Exit(exitCode(err))
}

// openInput opens a file for reading, where "-" is stdin.
func openInput(name string) (*os.File, error) {
	if name == "-" {
		return os.Stdin, nil
	}

	return os.Open(name)
}

// createOutput creates a file for writing, where "-" is stdout.
func createOutput(name string) (*os.File, error) {
	if name == "-" {
		return os.Stdout, nil
	}

	return os.Create(name)
}
