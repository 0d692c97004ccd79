package cli

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/ringstack/deploy/pkg/setup"
)

// SetupFlags represents setup command flags
type SetupFlags struct {
	Domain     string
	IP         string
	Dir        string
	SkipChecks bool
}

// ParseSetupFlags parses setup command flags
func ParseSetupFlags(args []string) (*SetupFlags, error) {
	fs := flag.NewFlagSet("setup", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	flags := &SetupFlags{}
	fs.StringVar(&flags.Domain, "domain", "", "Platform domain (written to the env file on first run)")
	fs.StringVar(&flags.IP, "ip", "", "Public IP for SIP/RTP (written to the env file on first run)")
	fs.StringVar(&flags.Dir, "dir", ".", "Platform checkout directory")
	fs.BoolVar(&flags.SkipChecks, "skip-checks", false, "Skip minimum resource checks (disk/RAM)")

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, err
		}
		return nil, fmt.Errorf("failed to parse flags: %w", err)
	}
	return flags, nil
}

// HandleSetupCommand runs the local-setup flow: prerequisites,
// configuration, images, bootstrap, services.
func HandleSetupCommand(args []string) {
	flags, err := ParseSetupFlags(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	flow := setup.NewFlow(setup.Config{
		Domain:     flags.Domain,
		PublicIP:   flags.IP,
		InstallDir: flags.Dir,
		SkipChecks: flags.SkipChecks,
	}, os.Stdout)

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

	flow.ReportCredentials()
	fmt.Printf("\n✅ Platform is up. Run 'ringstack status' to check service health.\n")
}
