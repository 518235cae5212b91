package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/ownership/resource"
)

func main() {
	var (
		name        = flag.String("scenario", "", "Scenario to run (default: all)")
		label       = flag.String("label", "S", "Label of the stub resource")
		list        = flag.Bool("list", false, "List scenarios and exit")
		verbose     = flag.Bool("v", false, "Log table activity")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
	)
	flag.Parse()

	if *verbose {
		logger, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer logger.Sync()
		resource.SetLogger(logger)
	}

	if *list {
		for _, sc := range scenarios {
			fmt.Printf("%-14s %s\n", sc.name, sc.description)
		}
		return
	}

	if *interactive {
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			fmt.Fprintln(os.Stderr, "Error: interactive mode needs a terminal")
			os.Exit(1)
		}
		if err := runInteractive(*label); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	styled := term.IsTerminal(int(os.Stdout.Fd()))
	if failed := run(context.Background(), *name, *label, styled); failed > 0 {
		os.Exit(1)
	}
}

// run executes the named scenario, or all of them, and returns the number
// of failures.
func run(ctx context.Context, name, label string, styled bool) int {
	selected := scenarios
	if name != "" {
		sc, ok := findScenario(name)
		if !ok {
			fmt.Fprintf(os.Stderr, "Error: unknown scenario %q (use -list)\n", name)
			return 1
		}
		selected = []scenario{sc}
	}

	failed := 0
	for _, sc := range selected {
		detail, err := sc.run(ctx, label)
		fmt.Println(formatResult(sc, detail, err, styled))
		if err != nil {
			failed++
		}
	}
	return failed
}

func formatResult(sc scenario, detail string, err error, styled bool) string {
	status, text := "PASS", detail
	if err != nil {
		status, text = "FAIL", err.Error()
	}
	if !styled {
		return fmt.Sprintf("%s %-14s %s", status, sc.name, text)
	}
	if err != nil {
		return failStyle.Render(status) + " " + nameStyle.Render(fmt.Sprintf("%-14s", sc.name)) + " " + failStyle.Render(text)
	}
	return passStyle.Render(status) + " " + nameStyle.Render(fmt.Sprintf("%-14s", sc.name)) + " " + text
}
