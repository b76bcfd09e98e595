package main

import (
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ezrec/lsvm/vm"
)

var asmCmd = &cobra.Command{
	Use:   "asm [flags]",
	Short: "Assemble mnemonic source into bytecode.",
	Run: func(cmd *cobra.Command, args []string) {
		input := getString(cmd, "input")
		inf, err := openInput(input)
		if err != nil {
			fatal(input, err)
		}
		defer inf.Close()

		defines, _ := cmd.Flags().GetStringArray("define")
		asm := newAssembler(defines, getFlag(cmd, "verbose"))

		data, err := asm.Assemble(inf)
		if err != nil {
			fatal(input, err)
		}

		output := getString(cmd, "output")
		ouf, err := createOutput(output)
		if err != nil {
			fatal(output, err)
		}
		defer ouf.Close()

		_, err = ouf.Write(data)
		if err != nil {
			fatal(output, err)
		}

		log.Debugf("%v: assembled %d bytes", input, len(data))
	},
}

// newAssembler creates an assembler with NAME=VALUE predefines.
// A bare NAME is defined as 1.
func newAssembler(defines []string, verbose bool) (asm *vm.Assembler) {
	asm = &vm.Assembler{Verbose: verbose}
	for _, define := range defines {
		name, value, ok := strings.Cut(define, "=")
		if !ok {
			value = "1"
		}
		asm.Predefine(name, value)
	}

	return
}

func init() {
	asmCmd.Flags().StringP("input", "i", "-", "assembler source file")
	asmCmd.Flags().StringP("output", "o", "-", "bytecode output file")
	asmCmd.Flags().StringArrayP("define", "D", nil, "predefine an equate, as NAME=VALUE")
	rootCmd.AddCommand(asmCmd)
}
