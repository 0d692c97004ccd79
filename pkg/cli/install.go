package cli

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/ringstack/deploy/pkg/installer"
	"github.com/ringstack/deploy/pkg/netcheck"
	"github.com/ringstack/deploy/pkg/setup"
)

// Defaults for the remote-install flow
const (
	DefaultRepoURL    = "https://github.com/ringstack/ringstack.git"
	DefaultBranch     = "main"
	DefaultInstallDir = "/opt/ringstack"
)

// InstallFlags represents install command flags
type InstallFlags struct {
	Domain       string
	IP           string
	RepoURL      string
	Branch       string
	Dir          string
	SkipFirewall bool
	SkipChecks   bool
}

// ParseInstallFlags parses install command flags
func ParseInstallFlags(args []string) (*InstallFlags, error) {
	fs := flag.NewFlagSet("install", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	flags := &InstallFlags{}
	fs.StringVar(&flags.Domain, "domain", "", "Platform domain (interactive prompt when unset)")
	fs.StringVar(&flags.IP, "ip", "", "Public IP for SIP/RTP (auto-detected when unset)")
	fs.StringVar(&flags.RepoURL, "repo", DefaultRepoURL, "Platform repository URL")
	fs.StringVar(&flags.Branch, "branch", DefaultBranch, "Git branch to install")
	fs.StringVar(&flags.Dir, "dir", DefaultInstallDir, "Installation directory")
	fs.BoolVar(&flags.SkipFirewall, "skip-firewall", false, "Skip UFW firewall setup")
	fs.BoolVar(&flags.SkipChecks, "skip-checks", false, "Skip minimum resource checks (disk/RAM)")

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, err
		}
		return nil, fmt.Errorf("failed to parse flags: %w", err)
	}
	return flags, nil
}

// isTerminal reports whether stdin is attached to a terminal.
func isTerminal() bool {
	info, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}

// HandleInstallCommand runs the remote-install flow end to end.
func HandleInstallCommand(args []string) {
	flags, err := ParseInstallFlags(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	// Interactive wizard when no domain was supplied and we have a TTY
	if flags.Domain == "" {
		if !isTerminal() {
			fmt.Fprintf(os.Stderr, "❌ --domain is required when not running interactively\n")
			os.Exit(1)
		}
		detected := ""
		if flags.IP == "" {
			detected = netcheck.NewDetector().Detect(ctx)
		} else {
			detected = flags.IP
		}
		config, err := installer.Run(detected)
		if err != nil {
			fmt.Fprintf(os.Stderr, "❌ %v\n", err)
			os.Exit(1)
		}
		flags.Domain = config.Domain
		flags.IP = config.PublicIP
		flags.Branch = config.Branch
	}

	flow := setup.NewFlow(setup.Config{
		Domain:       flags.Domain,
		PublicIP:     flags.IP,
		RepoURL:      flags.RepoURL,
		Branch:       flags.Branch,
		InstallDir:   flags.Dir,
		SkipFirewall: flags.SkipFirewall,
		SkipChecks:   flags.SkipChecks,
	}, os.Stdout)

	fmt.Printf("🚀 Starting platform installation...\n\n")

	if err := flow.Phase2DetectEnvironment(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}
	if err := flow.Phase3InstallDocker(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}
	if err := flow.ConfigureFirewall(); err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}
	if err := flow.Phase4SyncRepository(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}
	if err := flow.Phase1CheckPrerequisites(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}
	if err := flow.Phase5MaterializeConfig(); err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}
	if err := flow.Phase6PullImages(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}
	if err := flow.Phase7Bootstrap(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}
	if err := flow.Phase8StartServices(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}

	report := flow.Phase9VerifyHealth(ctx)
	flow.ReportCredentials()

	if report.Healthy() {
		fmt.Printf("\n✅ Installation complete. Platform is reachable at https://%s\n", flags.Domain)
	} else {
		fmt.Printf("\n⚠️  Installation finished but some services are unhealthy; see the summary above.\n")
	}
}
