// Command cc2ir compiles a source file in the supported C subset to
// textual LLVM-style SSA IR. Flag parsing and phase sequencing follow the
// teacher's former src/main.go/src/util/args.go shape (read source, run
// the pipeline, report errors, write output); the flag library itself is
// Cobra, the CLI dependency the example pack's reference C-compiler
// manifest (raymyers-ralph-cc-go) uses instead of the teacher's hand-
// rolled os.Args parser.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"cc2ir/src/compiler"
	"cc2ir/src/frontend"
	"cc2ir/src/util"
)

var (
	outPath      string
	targetTriple string
	verify       bool
	tokens       bool
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cc2ir [source]",
		Short: "Compile a C subset program to textual LLVM-style IR",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runCompile,
	}
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "output file path (default stdout)")
	cmd.Flags().StringVar(&targetTriple, "target-triple", "", "target triple emitted as the module's `target triple` directive")
	cmd.Flags().BoolVar(&verify, "verify", false, "round-trip the emitted IR through LLVM's parser and verifier")
	cmd.Flags().BoolVar(&tokens, "tokens", false, "dump the token stream and exit, without parsing or codegen")
	return cmd
}

func runCompile(cmd *cobra.Command, args []string) error {
	var srcPath string
	if len(args) == 1 {
		srcPath = args[0]
	}
	src, err := util.ReadSource(srcPath)
	if err != nil {
		return fmt.Errorf("could not read source: %w", err)
	}

	if tokens {
		return util.WriteOutput(outPath, frontend.DumpTokens(src))
	}

	result, diags, err := compiler.Compile(src, compiler.Options{Triple: targetTriple, Verify: verify})
	if len(diags) > 0 {
		for _, d := range diags {
			fmt.Fprintln(os.Stderr, d.String())
		}
	}
	if err != nil {
		return err
	}

	return util.WriteOutput(outPath, result.IR)
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "cc2ir:", err)
		os.Exit(1)
	}
}
