package cli

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/ringstack/deploy/pkg/infra"
	"github.com/ringstack/deploy/pkg/logging"
)

// HandleInfraCommand handles the infra subcommands.
func HandleInfraCommand(args []string) {
	if len(args) < 1 {
		fmt.Fprintf(os.Stderr, "Usage: ringstack infra backup-instance --config <file>\n")
		os.Exit(1)
	}

	switch args[0] {
	case "backup-instance":
		handleBackupInstance(args[1:])
	default:
		fmt.Fprintf(os.Stderr, "Unknown infra subcommand: %s\n", args[0])
		os.Exit(1)
	}
}

func handleBackupInstance(args []string) {
	fs := flag.NewFlagSet("backup-instance", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	configPath := fs.String("config", "backup-instance.yaml", "Path to the provisioning config")
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}

	cfg, err := infra.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.NewDefaultLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	provisioner, err := infra.NewProvisioner(ctx, cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}

	result, err := provisioner.Provision(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ Provisioning failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("\n✅ Backup instance provisioned\n")
	fmt.Printf("  Instance ID:       %s\n", result.InstanceID)
	fmt.Printf("  AMI:               %s\n", result.AMI)
	fmt.Printf("  Security groups:   %v\n", result.AttachedGroups)
	fmt.Printf("  IAM role:          %s\n", result.RoleName)
	fmt.Printf("  Backup bucket:     %s\n", result.BackupBucket)
	fmt.Printf("  Password param:    %s\n", result.PasswordParameter)
}
