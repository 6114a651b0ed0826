package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kursarscript/kspl/ext/economy"
	"github.com/kursarscript/kspl/ext/vr"
	"github.com/kursarscript/kspl/kspl"
)

func main() {
	if err := runCLI(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runCLI(args []string) error {
	if len(args) < 2 {
		return usageError()
	}
	switch args[1] {
	case "run":
		return runCommand(args[2:])
	case "fmt":
		return fmtCommand(args[2:])
	case "repl":
		return runREPL()
	case "help", "-h", "--help":
		printUsage()
		return nil
	default:
		return usageError()
	}
}

func runCommand(args []string) error {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	fs.SetOutput(new(flagErrorSink))
	checkOnly := fs.Bool("check", false, "only compile the script without executing")
	ledgerPath := fs.String("ledger", "", "sqlite ledger file for the virtual economy")
	vrURL := fs.String("vr", "", "websocket URL of a VR world server to mirror events to")
	if err := fs.Parse(args); err != nil {
		return err
	}
	remaining := fs.Args()
	if len(remaining) == 0 {
		return errors.New("kspl run: script path required")
	}
	scriptPath := remaining[0]
	input, err := os.ReadFile(scriptPath)
	if err != nil {
		return fmt.Errorf("read script: %w", err)
	}
	source := string(input)

	interp := kspl.New(kspl.Config{})
	if *checkOnly {
		if _, err := interp.Compile(source); err != nil {
			return errors.New(kspl.FormatErrorWithSource(err, source))
		}
		return nil
	}

	var ledger *economy.Ledger
	if *ledgerPath != "" {
		ledger, err = economy.OpenLedger(*ledgerPath)
		if err != nil {
			return err
		}
		defer ledger.Close()
	}
	economy.Register(interp, ledger)

	var env vr.Environment
	if *vrURL != "" {
		remote, err := vr.Dial(*vrURL, vr.NewLocalEnvironment(os.Stdout))
		if err != nil {
			return err
		}
		defer remote.Close()
		env = remote
	} else {
		env = vr.NewLocalEnvironment(os.Stdout)
	}
	vr.Register(interp, env)

	if err := interp.Run(context.Background(), source); err != nil {
		return errors.New(kspl.FormatErrorWithSource(err, source))
	}
	return nil
}

func usageError() error {
	printUsage()
	return errors.New("invalid command")
}

func printUsage() {
	prog := filepath.Base(os.Args[0])
	fmt.Fprintf(os.Stderr, "Usage: %s <command> [flags] [args]\n", prog)
	fmt.Fprintln(os.Stderr, "Commands:")
	fmt.Fprintln(os.Stderr, "  run [-check] [-ledger file] [-vr url] <script>")
	fmt.Fprintln(os.Stderr, "    execute a .kspl script with the economy and VR hosts bound")
	fmt.Fprintln(os.Stderr, "  fmt [-w] [-check] <paths>")
	fmt.Fprintln(os.Stderr, "    canonically format .kspl files")
	fmt.Fprintln(os.Stderr, "  repl")
	fmt.Fprintln(os.Stderr, "    interactive session (requires a terminal)")
}

type flagErrorSink struct{}

func (flagErrorSink) Write(p []byte) (int, error) {
	return len(p), nil
}
