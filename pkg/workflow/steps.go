package workflow

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"dotnetup/pkg/dotnet"
	"dotnetup/pkg/env"
	"dotnetup/pkg/pkgmgr"
	"dotnetup/pkg/trust"
)

// Settings are the resolved provisioning parameters.
type Settings struct {
	TrustKeyURL       string
	RepoURL           string
	RepoDir           string
	RepoFileName      string
	DependencyPackage string
	SDKPackage        string
	TargetMajor       int
	OSFamilyToken     string
	OSReleasePath     string

	// AssumeYes skips the pre-existing-installation confirmation.
	AssumeYes bool
}

// Fetcher downloads remote artifacts.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
	FetchFile(ctx context.Context, url, destDir string) (string, error)
}

// Confirmer asks the operator a yes/no question.
type Confirmer interface {
	Confirm(title, description string) (bool, error)
}

// TargetCLI queries the tool whose installation is being automated.
type TargetCLI interface {
	Resolve() (string, error)
	Version(ctx context.Context) (string, error)
	ListSDKs(ctx context.Context) ([]string, error)
	ListRuntimes(ctx context.Context) ([]string, error)
}

// PrivilegedFS performs elevated filesystem mutations.
type PrivilegedFS interface {
	MoveFile(ctx context.Context, src, dst string) error
	ChownRoot(ctx context.Context, path string) error
}

// Installer owns the collaborators of the six workflow steps.
type Installer struct {
	cfg     Settings
	mgr     pkgmgr.Manager
	priv    PrivilegedFS
	fetcher Fetcher
	confirm Confirmer
	target  TargetCLI
	out     io.Writer
	logger  *log.Logger

	// Seams for tests; production defaults are set in NewInstaller.
	isPrivileged  func() bool
	newScratch    func() (string, error)
	removeScratch func(string) error
}

// NewInstaller wires an Installer from its collaborators.
func NewInstaller(cfg Settings, mgr pkgmgr.Manager, priv PrivilegedFS, fetcher Fetcher, confirm Confirmer, target TargetCLI, out io.Writer, logger *log.Logger) *Installer {
	if cfg.OSReleasePath == "" {
		cfg.OSReleasePath = env.DefaultOSReleasePath
	}

	return &Installer{
		cfg:           cfg,
		mgr:           mgr,
		priv:          priv,
		fetcher:       fetcher,
		confirm:       confirm,
		target:        target,
		out:           out,
		logger:        logger,
		isPrivileged:  env.IsPrivileged,
		newScratch:    env.NewScratchDir,
		removeScratch: env.RemoveScratchDir,
	}
}

// Steps returns the provisioning workflow in execution order.
func (in *Installer) Steps() []Step {
	return []Step{
		{Name: "preflight", Run: in.preflight},
		{Name: "dependency", Run: in.ensureDependency},
		{Name: "repository", Run: in.provisionRepository},
		{Name: "install", Run: in.installPackage},
		{Name: "verify", Run: in.verify},
		{Name: "report", Run: in.report},
	}
}

// preflight aborts on a privileged caller or an unsupported host, and asks
// for confirmation when the target tool is already installed.
func (in *Installer) preflight(ctx context.Context, st *State) error {
	if in.isPrivileged() {
		return Fatalf(ExitRunAsRoot, "this tool must not run as root: privileged operations escalate themselves per step via sudo")
	}

	host, err := env.ReadOSRelease(in.cfg.OSReleasePath)
	if err != nil {
		return &FatalError{Code: ExitUnsupportedOS, Err: err}
	}
	if !host.IsFamily(in.cfg.OSFamilyToken) {
		return Fatalf(ExitUnsupportedOS, "unsupported host %q: expected a %s-family distribution", host.Describe(), in.cfg.OSFamilyToken)
	}
	st.Host = host

	fmt.Fprintf(in.out, "🖥️  Host: %s\n", host.Describe())

	if _, err := in.target.Resolve(); err == nil {
		version, verr := in.target.Version(ctx)
		if verr != nil {
			version = "unknown"
		}
		st.ExistingVersion = version

		fmt.Fprintf(in.out, "⚠️  %s %s is already installed\n", dotnet.Command, version)

		if !in.cfg.AssumeYes {
			ok, cerr := in.confirm.Confirm(
				fmt.Sprintf("%s %s is already installed. Continue?", dotnet.Command, version),
				fmt.Sprintf("Continuing installs %s alongside the existing installation.", in.cfg.SDKPackage),
			)
			if cerr != nil {
				return fmt.Errorf("failed to read confirmation: %w", cerr)
			}
			if !ok {
				return ErrCanceled
			}
		}
	}

	return nil
}

// ensureDependency installs the required system library if the package
// index does not already list it. Idempotent: a second run no-ops.
func (in *Installer) ensureDependency(ctx context.Context, st *State) error {
	name := in.cfg.DependencyPackage

	installed, err := in.mgr.QueryInstalled(ctx, name)
	if err != nil {
		return err
	}
	if installed {
		fmt.Fprintf(in.out, "✅ Dependency %s is already installed\n", name)
		return nil
	}

	fmt.Fprintf(in.out, "📦 Installing dependency %s...\n", name)
	return in.mgr.Install(ctx, name)
}

// provisionRepository registers the Microsoft package source: trust key,
// repository descriptor, index refresh. Re-runnable: every sub-step
// overwrites its target.
func (in *Installer) provisionRepository(ctx context.Context, st *State) error {
	keyData, err := in.fetcher.Fetch(ctx, in.cfg.TrustKeyURL)
	if err != nil {
		return err
	}

	keyInfo, err := trust.InspectArmored(keyData)
	if err != nil {
		return &FatalError{Code: ExitBadTrustKey, Err: fmt.Errorf("trust key at %s is not a valid armored key: %w", in.cfg.TrustKeyURL, err)}
	}
	st.TrustKey = keyInfo

	fmt.Fprintf(in.out, "🔑 Importing trust key %s (%s)...\n", keyInfo.Fingerprint, keyInfo.Identity)
	if err := in.mgr.ImportKey(ctx, in.cfg.TrustKeyURL); err != nil {
		return err
	}

	scratch, err := in.newScratch()
	if err != nil {
		return err
	}
	st.ScratchDir = scratch

	fmt.Fprintf(in.out, "⬇️  Downloading repository descriptor from %s...\n", in.cfg.RepoURL)

	// A download error aborts here without removing the scratch
	// directory; only the missing-file and success paths clean it up.
	descriptorPath, err := in.fetcher.FetchFile(ctx, in.cfg.RepoURL, scratch)
	if err != nil {
		return err
	}

	if _, err := os.Stat(descriptorPath); err != nil {
		in.cleanupScratch(st)
		return Fatalf(ExitDescriptorMissing, "repository descriptor was not downloaded: %s is missing", descriptorPath)
	}

	dst := filepath.Join(in.cfg.RepoDir, in.cfg.RepoFileName)
	if err := in.priv.MoveFile(ctx, descriptorPath, dst); err != nil {
		return err
	}
	if err := in.priv.ChownRoot(ctx, dst); err != nil {
		return err
	}
	in.cleanupScratch(st)

	fmt.Fprintf(in.out, "🔄 Refreshing package index...\n")
	return in.mgr.RefreshIndex(ctx)
}

// installPackage performs the single elevated SDK install. Failure
// propagates the package manager's own diagnostics, untranslated.
func (in *Installer) installPackage(ctx context.Context, st *State) error {
	fmt.Fprintf(in.out, "📦 Installing %s...\n", in.cfg.SDKPackage)
	return in.mgr.Install(ctx, in.cfg.SDKPackage)
}

// verify re-queries the installed tool. A wrong major version is a
// warning, not an abort.
func (in *Installer) verify(ctx context.Context, st *State) error {
	path, err := in.target.Resolve()
	if err != nil {
		return Fatalf(ExitToolUnresolved, "%s is not on PATH after install: installation may have failed", dotnet.Command)
	}
	st.InstalledPath = path

	version, err := in.target.Version(ctx)
	if err != nil {
		return err
	}
	st.InstalledVersion = version

	sdks, err := in.target.ListSDKs(ctx)
	if err != nil {
		return err
	}
	st.SDKs = sdks

	runtimes, err := in.target.ListRuntimes(ctx)
	if err != nil {
		return err
	}
	st.Runtimes = runtimes

	major, err := dotnet.MajorVersion(version)
	if err != nil {
		st.Warn(fmt.Sprintf("could not parse installed version %q: %v", version, err))
		return nil
	}
	if major != in.cfg.TargetMajor {
		st.Warn(fmt.Sprintf("installed major version %d does not match the expected version %d", major, in.cfg.TargetMajor))
	}

	return nil
}

func (in *Installer) cleanupScratch(st *State) {
	if st.ScratchDir == "" {
		return
	}
	if err := in.removeScratch(st.ScratchDir); err != nil {
		in.logger.Warn("failed to remove scratch directory", "path", st.ScratchDir, "err", err)
	}
	st.ScratchDir = ""
}
