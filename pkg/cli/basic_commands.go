package cli

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/ringstack/deploy/pkg/compose"
)

// parseDirFlag parses the shared --dir flag for the orchestrator
// delegation commands.
func parseDirFlag(name string, args []string) (string, []string) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	dir := fs.String("dir", ".", "Platform checkout directory")
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}
	return *dir, fs.Args()
}

// HandleStatusCommand prints a single health snapshot.
func HandleStatusCommand(args []string) {
	dir, _ := parseDirFlag("status", args)
	driver := compose.NewDriver(dir)

	statuses, err := driver.Ps(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}
	if len(statuses) == 0 {
		fmt.Println("No services found. Is the platform installed in this directory?")
		return
	}

	report := compose.EvaluateHealth(statuses)
	fmt.Print(report.Summary())
}

// HandleLogsCommand streams orchestrator logs.
func HandleLogsCommand(args []string) {
	fs := flag.NewFlagSet("logs", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	dir := fs.String("dir", ".", "Platform checkout directory")
	follow := fs.Bool("f", false, "Follow log output")
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}

	driver := compose.NewDriver(*dir)
	if err := driver.Logs(context.Background(), *follow, fs.Args()...); err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}
}

// HandleDownCommand stops all platform services.
func HandleDownCommand(args []string) {
	dir, _ := parseDirFlag("down", args)
	driver := compose.NewDriver(dir)

	if err := driver.Down(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}
	fmt.Println("✅ All services stopped")
}
