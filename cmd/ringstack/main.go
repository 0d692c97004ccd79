package main

import (
	"fmt"
	"os"

	"github.com/ringstack/deploy/pkg/cli"
)

// version metadata populated via -ldflags at build time
var (
	version = "dev"
	commit  = ""
	date    = ""
)

func main() {
	if len(os.Args) < 2 {
		showHelp()
		return
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "version":
		fmt.Printf("ringstack %s", version)
		if commit != "" {
			fmt.Printf(" (commit %s)", commit)
		}
		if date != "" {
			fmt.Printf(" built %s", date)
		}
		fmt.Println()

	case "install":
		cli.HandleInstallCommand(args)

	case "setup":
		cli.HandleSetupCommand(args)

	case "status":
		cli.HandleStatusCommand(args)

	case "logs":
		cli.HandleLogsCommand(args)

	case "down":
		cli.HandleDownCommand(args)

	case "infra":
		cli.HandleInfraCommand(args)

	case "help", "-h", "--help":
		showHelp()

	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		showHelp()
		os.Exit(1)
	}
}

func showHelp() {
	fmt.Println(`ringstack - RingStack platform deployment tool

Usage:
  ringstack <command> [flags]

Commands:
  install    Install the platform on this server (Docker, firewall, clone, start)
  setup      Set up an existing checkout (config, images, bootstrap, start)
  status     Show a health snapshot of all services
  logs       Show service logs (-f to follow)
  down       Stop all services
  infra      Provision supporting AWS infrastructure
  version    Print version information
  help       Show this help

Install flags:
  --domain   Platform domain (interactive prompt when unset)
  --ip       Public IP for SIP/RTP (auto-detected when unset)
  --repo     Platform repository URL
  --branch   Git branch to install (default main)
  --dir      Installation directory (default /opt/ringstack)

Run 'ringstack <command> -h' for command-specific flags.`)
}
