package main

import (
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/ezrec/lsvm/vm"
)

var dumpCmd = &cobra.Command{
	Use:   "dump [flags]",
	Short: "Decode bytecode and print its listing.",
	Run: func(cmd *cobra.Command, args []string) {
		input := getString(cmd, "input")
		inf, err := openInput(input)
		if err != nil {
			fatal(input, err)
		}
		defer inf.Close()

		prog, err := vm.DecodeReader(inf)
		if err != nil {
			fatal(input, err)
		}

		dump(os.Stdout, prog)
	},
}

// dump writes the listing and label table of prog.
func dump(w io.Writer, prog *vm.Program) {
	for pc, code := range prog.Codes {
		fmt.Fprintf(w, "%4d %04x  %v\n", pc, prog.Offsets[pc], code)
	}

	if len(prog.Labels) == 0 {
		return
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "labels:")

	ids := make([]uint32, 0, len(prog.Labels))
	for id := range prog.Labels {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	for _, id := range ids {
		fmt.Fprintf(w, "%#010x %4d\n", id, prog.Labels[id])
	}
}

func init() {
	dumpCmd.Flags().StringP("input", "i", "-", "bytecode file to list")
	rootCmd.AddCommand(dumpCmd)
}
