// Package cli wires the vcv command tree.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vcv-app/vcv/internal/activate"
	"github.com/vcv-app/vcv/internal/config"
	"github.com/vcv-app/vcv/internal/locator"
	"github.com/vcv-app/vcv/internal/models"
	"github.com/vcv-app/vcv/internal/platform"
	"github.com/vcv-app/vcv/internal/render"
	"github.com/vcv-app/vcv/internal/toolset"
)

// Options carries the process-level inputs of a run.
type Options struct {
	Version  string
	Embedded []byte // embedded defaults.yaml
	Stdout   io.Writer
	Stderr   io.Writer
	Environ  []string
	Getenv   func(string) string
	Platform platform.Platform
	HostArch func() (models.Arch, error)

	// NewLogger builds the logger once the configuration is known.
	// Nil discards all log output.
	NewLogger func(cfg *config.Config, stderr io.Writer) (*zap.Logger, error)
}

func (o *Options) defaults() {
	if o.Stdout == nil {
		o.Stdout = os.Stdout
	}
	if o.Stderr == nil {
		o.Stderr = os.Stderr
	}
	if o.Environ == nil {
		o.Environ = os.Environ()
	}
	if o.Getenv == nil {
		o.Getenv = os.Getenv
	}
	if o.Platform == nil {
		o.Platform = platform.New()
	}
	if o.HostArch == nil {
		o.HostArch = platform.HostArch
	}
	if o.NewLogger == nil {
		o.NewLogger = func(*config.Config, io.Writer) (*zap.Logger, error) { return zap.NewNop(), nil }
	}
}

// app holds the state shared by the commands of one invocation.
type app struct {
	opts       Options
	configPath string
	configSet  bool
	cli        config.CLIOverrides
}

// Execute runs the command line args and returns the process exit code.
// Failures are reported on Stderr as a single "Error:" line.
func Execute(ctx context.Context, opts Options, args []string) int {
	opts.defaults()
	root := NewRootCmd(&opts)
	root.SetArgs(args)
	root.SetOut(opts.Stdout)
	root.SetErr(opts.Stderr)

	err := root.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintf(opts.Stderr, "Error: %v\n", err)
	}
	return ExitCode(err)
}

// NewRootCmd builds the command tree. The root command itself prints the
// activation script.
func NewRootCmd(opts *Options) *cobra.Command {
	a := &app{opts: *opts}

	root := &cobra.Command{
		Use:   "vcv",
		Short: "Print the environment of a Visual Studio C/C++ toolchain",
		Long: `vcv locates a Visual Studio installation, resolves its VC++ toolset and
the Windows SDK, and prints the activation script for the calling shell.

  PowerShell:  vcv | Invoke-Expression
  cmd:         vcv -f cmd > %TEMP%\vcv.bat && call %TEMP%\vcv.bat
  Git Bash:    eval "$(vcv)"`,
		Args:          cobra.NoArgs,
		Version:       opts.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			a.configSet = cmd.Flags().Changed("config")
		},
		RunE: a.runActivate,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "config file (default: first of the standard locations)")
	pf.StringVarP(&a.cli.Target, "arch", "a", "", "target architecture: x86, x64, arm64")
	pf.StringVarP(&a.cli.Host, "host", "s", "", "host architecture: auto, x86, x64, arm64")
	pf.StringVarP(&a.cli.VSVersion, "vs", "v", "", "Visual Studio version: 2017, 2019, 2022 or latest")
	pf.BoolVarP(&a.cli.Quiet, "quiet", "q", false, "suppress informational messages")

	f := root.Flags()
	f.StringVarP(&a.cli.Format, "format", "f", "", "output format: auto, ps, cmd, sh, json")
	f.BoolVar(&a.cli.NoValidate, "no-validate", false, "skip the compiler presence check")
	f.BoolVar(&a.cli.Strict, "strict", false, "fail when the compiler is not on the composed PATH")

	root.AddCommand(newListCmd(a))
	root.AddCommand(newConfigCmd(a))
	root.AddCommand(newVersionCmd(a))
	return root
}

// loadConfig applies the configuration layers and validates the result.
func (a *app) loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if a.configSet {
		cfg, err = config.LoadLayered(a.cli, a.opts.Embedded, a.configPath)
	} else {
		cfg, err = config.LoadLayered(a.cli, a.opts.Embedded)
	}
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// setup loads the configuration and builds the logger.
func (a *app) setup() (*config.Config, *zap.Logger, error) {
	cfg, err := a.loadConfig()
	if err != nil {
		return nil, nil, err
	}
	logger, err := a.opts.NewLogger(cfg, a.opts.Stderr)
	if err != nil {
		return nil, nil, fmt.Errorf("initializing logger: %w", err)
	}
	return cfg, logger, nil
}

// newLocator serves configured installations when there are any, and asks
// vswhere otherwise.
func (a *app) newLocator(cfg *config.Config, logger *zap.Logger) locator.Locator {
	if len(cfg.Installations) > 0 {
		return locator.NewStatic(cfg.Installations, logger)
	}
	path := cfg.VsWhere.Path
	if path == "" {
		path = platform.DefaultVsWherePath(a.opts.Platform)
	}
	return locator.NewVsWhere(path, cfg.VsWhere.Prerelease, logger)
}

func (a *app) request(cfg *config.Config) (activate.Request, error) {
	target, err := models.ParseArch(cfg.Target)
	if err != nil {
		return activate.Request{}, err
	}
	var host models.Arch
	if cfg.Host == config.HostAuto {
		if host, err = a.opts.HostArch(); err != nil {
			return activate.Request{}, err
		}
	} else if host, err = models.ParseArch(cfg.Host); err != nil {
		return activate.Request{}, err
	}
	return activate.Request{
		Host:     host,
		Target:   target,
		Year:     cfg.VSVersion,
		Validate: cfg.Check,
		Strict:   cfg.Strict,
	}, nil
}

func (a *app) runActivate(cmd *cobra.Command, args []string) error {
	cfg, logger, err := a.setup()
	if err != nil {
		return err
	}
	defer logger.Sync()

	req, err := a.request(cfg)
	if err != nil {
		return err
	}

	format, err := render.ParseFormat(cfg.Format)
	if err != nil {
		return err
	}
	format = format.Resolve(platform.DetectShell(a.opts.Getenv))

	sdkRoot, ucrtRoot := cfg.Sdk.Root, cfg.Sdk.Root
	if sdkRoot == "" {
		sdkRoot = platform.SDKRoot(a.opts.Platform)
		ucrtRoot = platform.UCRTRoot(a.opts.Platform)
	}

	p := activate.New(
		a.newLocator(cfg, logger),
		toolset.NewResolver(cfg.Toolset.Version, logger),
		toolset.NewSdkResolver(sdkRoot, ucrtRoot, cfg.Sdk.Version, logger),
		logger,
	)
	res, err := p.Run(cmd.Context(), req, models.SnapshotFromEnviron(a.opts.Environ))
	if err != nil {
		return err
	}

	text, err := render.Render(res.Env, format)
	if err != nil {
		return err
	}
	_, err = io.WriteString(cmd.OutOrStdout(), text)
	return err
}
