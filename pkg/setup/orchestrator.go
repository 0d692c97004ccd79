package setup

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"runtime"
	"time"

	"github.com/ringstack/deploy/pkg/compose"
	"github.com/ringstack/deploy/pkg/envfile"
	"github.com/ringstack/deploy/pkg/netcheck"
)

// healthSnapshotDelay is how long the verify phase waits after start
// before taking its single health snapshot.
const healthSnapshotDelay = 15 * time.Second

// Config carries the operator-supplied inputs through the pipeline
// stages. Nothing else is read from the process environment.
type Config struct {
	Domain       string
	PublicIP     string
	RepoURL      string
	Branch       string
	InstallDir   string
	SkipFirewall bool
	SkipChecks   bool
}

// Flow orchestrates the setup and install pipelines. All phases are
// sequential and blocking; cancellation is the caller's interrupt.
type Flow struct {
	config    Config
	logWriter io.Writer
	driver    *compose.Driver

	privChecker     *PrivilegeChecker
	osDetector      *OSDetector
	depChecker      *DependencyChecker
	resourceChecker *ResourceChecker
	detector        *netcheck.Detector

	// Credentials captured during the bootstrap phase for final display
	Credentials compose.Credentials
}

// NewFlow creates a flow for the given configuration.
func NewFlow(config Config, logWriter io.Writer) *Flow {
	return &Flow{
		config:          config,
		logWriter:       logWriter,
		driver:          compose.NewDriver(config.InstallDir),
		privChecker:     &PrivilegeChecker{},
		osDetector:      &OSDetector{},
		depChecker:      &DependencyChecker{},
		resourceChecker: NewResourceChecker(),
		detector:        netcheck.NewDetector(),
	}
}

// logf writes a formatted message to the log writer
func (f *Flow) logf(format string, args ...interface{}) {
	if f.logWriter != nil {
		fmt.Fprintf(f.logWriter, format+"\n", args...)
	}
}

// EnvFilePath returns the path of the materialized configuration.
func (f *Flow) EnvFilePath() string {
	return filepath.Join(f.config.InstallDir, ".env")
}

// Phase1CheckPrerequisites validates the container runtime and basic tools.
func (f *Flow) Phase1CheckPrerequisites(ctx context.Context) error {
	f.logf("Phase 1: Checking prerequisites...")

	if err := compose.Available(ctx); err != nil {
		return err
	}
	f.logf("  ✓ Docker and compose plugin available")

	if missing, err := f.depChecker.CheckAll(); err != nil {
		f.logf("  ❌ Missing dependencies:")
		for _, dep := range missing {
			f.logf("     - %s: %s", dep.Name, dep.InstallHint)
		}
		return err
	}
	f.logf("  ✓ Basic dependencies available")

	if !f.config.SkipChecks {
		if err := f.resourceChecker.CheckDiskSpace(f.config.InstallDir); err != nil {
			return err
		}
		f.logf("  ✓ Sufficient disk space available")

		if err := f.resourceChecker.CheckRAM(); err != nil {
			return err
		}
		f.logf("  ✓ Sufficient RAM available")
	}

	return nil
}

// Phase2DetectEnvironment detects OS and public IP (install flow only).
// The detected IP fills Config.PublicIP when the operator supplied none;
// failing to determine any IP is fatal.
func (f *Flow) Phase2DetectEnvironment(ctx context.Context) error {
	f.logf("Phase 2: Detecting environment...")

	if err := f.privChecker.CheckLinuxOS(); err != nil {
		return err
	}
	if err := f.privChecker.CheckRoot(); err != nil {
		return err
	}

	osInfo, err := f.osDetector.Detect()
	if err != nil {
		return err
	}
	f.logf("  ✓ Detected OS: %s (%s)", osInfo.Name, runtime.GOARCH)
	if !f.osDetector.IsSupportedOS(osInfo) {
		f.logf("  ⚠️  OS %s is not officially supported (Ubuntu 22.04/24.04, Debian 11/12)", osInfo.Name)
		f.logf("     Proceeding anyway, but issues may occur")
	}

	if f.config.PublicIP == "" {
		ip := f.detector.Detect(ctx)
		if ip == "" {
			return fmt.Errorf("could not determine public IP: pass it explicitly with --ip")
		}
		f.config.PublicIP = ip
		f.logf("  ✓ Detected public IP: %s", ip)
	} else {
		f.logf("  ✓ Using supplied public IP: %s", f.config.PublicIP)
	}

	return nil
}

// Phase3InstallDocker installs the container runtime when missing.
func (f *Flow) Phase3InstallDocker(ctx context.Context) error {
	f.logf("Phase 3: Installing container runtime...")

	if err := compose.Available(ctx); err == nil {
		f.logf("  ✓ Docker already installed")
		return nil
	}

	pm, err := DetectPackageManager()
	if err != nil {
		return err
	}
	f.logf("  ✓ Using package manager: %s", pm)

	if err := NewDockerInstaller(pm).Install(ctx); err != nil {
		return err
	}

	if err := compose.Available(ctx); err != nil {
		return fmt.Errorf("docker installed but not usable: %w", err)
	}
	f.logf("  ✓ Docker installed")
	return nil
}

// Phase4SyncRepository clones or updates the platform checkout.
func (f *Flow) Phase4SyncRepository(ctx context.Context) error {
	f.logf("Phase 4: Syncing platform repository...")

	syncer := NewRepoSyncer(f.config.RepoURL, f.config.Branch, f.config.InstallDir)
	if err := syncer.Sync(ctx); err != nil {
		return err
	}
	f.logf("  ✓ Repository ready at %s (branch %s)", f.config.InstallDir, f.config.Branch)
	return nil
}

// Phase5MaterializeConfig renders the .env file and validates it.
func (f *Flow) Phase5MaterializeConfig() error {
	f.logf("Phase 5: Materializing configuration...")

	templatePath := filepath.Join(f.config.InstallDir, ".env.sample")
	if _, err := envfile.Load(templatePath); err != nil {
		templatePath = "" // fall back to the embedded template
	}

	m := envfile.NewMaterializer(templatePath)
	created, err := m.Materialize(f.EnvFilePath(), envfile.Overrides{
		Domain:        f.config.Domain,
		SIPExternalIP: f.config.PublicIP,
		RTPExternalIP: f.config.PublicIP,
	})
	if err != nil {
		return err
	}
	if created {
		f.logf("  ✓ Configuration created: %s", f.EnvFilePath())
	} else {
		f.logf("  ✓ Configuration already exists, leaving it untouched")
	}

	if err := envfile.ValidateFile(f.EnvFilePath()); err != nil {
		return err
	}
	f.logf("  ✓ Configuration valid")
	return nil
}

// Phase6PullImages pulls all service images.
func (f *Flow) Phase6PullImages(ctx context.Context) error {
	f.logf("Phase 6: Pulling images...")
	return f.driver.Pull(ctx)
}

// Phase7Bootstrap runs the one-shot database bootstrap job. A failing
// job does not abort the flow (the platform may already be bootstrapped)
// but its exit status is reported to the operator rather than swallowed.
func (f *Flow) Phase7Bootstrap(ctx context.Context) error {
	f.logf("Phase 7: Running bootstrap job...")

	output, err := f.driver.RunBootstrap(ctx)
	if err != nil {
		f.logf("  ⚠️  %v", err)
		f.logf("     The platform may already be bootstrapped; continuing.")
	} else {
		f.logf("  ✓ Bootstrap job completed")
	}

	f.Credentials = compose.ExtractCredentials(output)
	return nil
}

// Phase8StartServices starts the long-running services and waits for
// the orchestrator to report them ready.
func (f *Flow) Phase8StartServices(ctx context.Context) error {
	f.logf("Phase 8: Starting services...")
	if err := f.driver.Up(ctx); err != nil {
		return err
	}
	f.logf("  ✓ Services started")
	return nil
}

// Phase9VerifyHealth takes one delayed health snapshot and prints it.
// Best-effort: errors degrade to a warning, never abort.
func (f *Flow) Phase9VerifyHealth(ctx context.Context) compose.HealthReport {
	f.logf("Phase 9: Verifying service health (waiting %s)...", healthSnapshotDelay)

	select {
	case <-time.After(healthSnapshotDelay):
	case <-ctx.Done():
		return compose.HealthReport{}
	}

	statuses, err := f.driver.Ps(ctx)
	if err != nil {
		f.logf("  ⚠️  Could not query service status: %v", err)
		return compose.HealthReport{}
	}

	report := compose.EvaluateHealth(statuses)
	f.logf("%s", report.Summary())
	return report
}

// ConfigureFirewall applies UFW rules (install flow, skippable).
func (f *Flow) ConfigureFirewall() error {
	if f.config.SkipFirewall {
		f.logf("  ⚠️  Skipping firewall setup (--skip-firewall)")
		return nil
	}

	fp := NewFirewallProvisioner(FirewallConfig{})
	if !fp.IsInstalled() {
		f.logf("  ⚠️  ufw not installed, skipping firewall setup")
		return nil
	}
	if err := fp.Apply(); err != nil {
		return err
	}
	f.logf("  ✓ Firewall configured")
	return nil
}

// ReportCredentials prints the bootstrap credentials when any were
// extracted from the job output.
func (f *Flow) ReportCredentials() {
	if f.Credentials.Empty() {
		return
	}
	f.logf("")
	f.logf("Bootstrap credentials (store these somewhere safe):")
	if f.Credentials.AccountSID != "" {
		f.logf("  Account SID:  %s", f.Credentials.AccountSID)
	}
	if f.Credentials.AuthToken != "" {
		f.logf("  Auth token:   %s", f.Credentials.AuthToken)
	}
	if f.Credentials.PhoneNumber != "" {
		f.logf("  Phone number: %s", f.Credentials.PhoneNumber)
	}
}
