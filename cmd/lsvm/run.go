package main

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/ezrec/lsvm/config"
	"github.com/ezrec/lsvm/emulator"
)

var runCmd = &cobra.Command{
	Use:   "run [flags]",
	Short: "Run a bytecode program against an LED strip controller.",
	Long: `Decode and run a bytecode program, sending its commands to the LED
strip controller. The process exit code is the exit code of the program.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := runConfig(cmd)
		if err != nil {
			fatal("config", err)
		}

		input := getString(cmd, "input")
		inf, err := openInput(input)
		if err != nil {
			fatal(input, err)
		}
		defer inf.Close()

		emu := emulator.Connect(cfg)

		if getFlag(cmd, "source") || filepath.Ext(input) == ".lsa" {
			err = emu.LoadSource(inf)
		} else {
			err = emu.Load(inf)
		}
		if err != nil {
			emu.Close()
			fatal(input, err)
		}

		exit, err := emu.Run()
		emu.Close()
		if err != nil {
			fatal(input, err)
		}

		os.Exit(int(exit))
	},
}

// runConfig loads the configuration file, then applies flag overrides.
func runConfig(cmd *cobra.Command) (cfg config.Config, err error) {
	cfg = config.Default()

	if path := getString(cmd, "config"); len(path) != 0 {
		cfg, err = config.Load(path)
		if err != nil {
			return
		}
	}

	flags := cmd.Flags()
	if flags.Changed("address") {
		cfg.Address = getString(cmd, "address")
	}
	if flags.Changed("port") {
		cfg.Port, _ = flags.GetInt("port")
	}
	if flags.Changed("dial-timeout") {
		var timeout time.Duration
		timeout, _ = flags.GetDuration("dial-timeout")
		cfg.DialTimeout = config.Duration{Duration: timeout}
	}
	if flags.Changed("offline") {
		cfg.Offline = getFlag(cmd, "offline")
	}
	if getFlag(cmd, "verbose") {
		cfg.Verbose = true
	}

	err = cfg.Validate()
	return
}

func init() {
	runCmd.Flags().StringP("input", "i", "-", "bytecode file to run")
	runCmd.Flags().StringP("address", "a", config.DEFAULT_ADDRESS, "strip controller address")
	runCmd.Flags().IntP("port", "p", config.DEFAULT_PORT, "strip controller port")
	runCmd.Flags().Duration("dial-timeout", config.DEFAULT_DIAL_TIMEOUT, "strip controller connection timeout")
	runCmd.Flags().Bool("offline", false, "echo commands instead of connecting")
	runCmd.Flags().BoolP("source", "s", false, "input is assembler source")
	rootCmd.AddCommand(runCmd)
}
