package locator

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"

	"github.com/goccy/go-json"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/vcv-app/vcv/internal/models"
)

// vsWhereCatalog holds the catalog fields we read from vswhere.
type vsWhereCatalog struct {
	ProductDisplayVersion string `json:"productDisplayVersion"`
	ProductLineVersion    string `json:"productLineVersion"`
}

// vsWhereEntry is one element of `vswhere -format json`.
type vsWhereEntry struct {
	InstanceID          string         `json:"instanceId"`
	InstallationName    string         `json:"installationName"`
	InstallationPath    string         `json:"installationPath"`
	InstallationVersion string         `json:"installationVersion"`
	ProductID           string         `json:"productId"`
	DisplayName         string         `json:"displayName"`
	IsComplete          *bool          `json:"isComplete"`
	Catalog             vsWhereCatalog `json:"catalog"`
}

// runFunc executes vswhere and returns its stdout.
type runFunc func(ctx context.Context, name string, args ...string) ([]byte, error)

func runCommand(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// VsWhere discovers installations with the Visual Studio Locator
// (vswhere.exe). It lists every instance, including Build Tools, and leaves
// filtering to the selector.
type VsWhere struct {
	path       string
	prerelease bool
	logger     *zap.Logger
	run        runFunc
}

// NewVsWhere creates a locator running the vswhere executable at path.
func NewVsWhere(path string, prerelease bool, logger *zap.Logger) *VsWhere {
	return &VsWhere{
		path:       path,
		prerelease: prerelease,
		logger:     logger.Named("locator"),
		run:        runCommand,
	}
}

// Args returns the vswhere command line.
func (v *VsWhere) Args() []string {
	args := []string{"-all", "-products", "*", "-format", "json", "-utf8"}
	if v.prerelease {
		args = append(args, "-prerelease")
	}
	return args
}

// Locate runs vswhere once and parses its output.
func (v *VsWhere) Locate(ctx context.Context) ([]models.Installation, error) {
	if _, err := os.Stat(v.path); err != nil {
		return nil, &models.Error{Op: "locate", Kind: models.ErrNoInstallationFound, Path: v.path, Err: err}
	}

	v.logger.Debug("Running vswhere", zap.String("path", v.path), zap.Strings("args", v.Args()))
	out, err := v.run(ctx, v.path, v.Args()...)
	if err != nil {
		return nil, &models.Error{
			Op:   "locate",
			Kind: models.ErrNoInstallationFound,
			Path: v.path,
			Err:  fmt.Errorf("running vswhere: %w", err),
		}
	}
	return Parse(out, v.logger)
}

// Parse decodes vswhere JSON output. The document must be a JSON array;
// individual elements that do not decode or describe an unusable
// installation are skipped with a warning.
func Parse(data []byte, logger *zap.Logger) ([]models.Installation, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return finish(nil, nil, logger, "vswhere")
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &models.Error{
			Op:   "locate",
			Kind: models.ErrNoInstallationFound,
			Err:  fmt.Errorf("parsing vswhere output: %w", err),
		}
	}

	var (
		result  []models.Installation
		skipped error
	)
	for i, msg := range raw {
		var entry vsWhereEntry
		if err := json.Unmarshal(msg, &entry); err != nil {
			skipped = multierr.Append(skipped, fmt.Errorf("record %d: %w", i, err))
			continue
		}
		inst := entry.installation()
		if err := check(inst); err != nil {
			skipped = multierr.Append(skipped, fmt.Errorf("record %d (%s): %w", i, entry.InstanceID, err))
			continue
		}
		result = append(result, inst)
	}
	return finish(result, skipped, logger, "vswhere")
}

// installation maps the entry; the year comes from the installation version
// major, or from the catalog product line when the version is unknown.
func (e vsWhereEntry) installation() models.Installation {
	year := models.YearFromVersion(e.InstallationVersion)
	if year == 0 {
		if y, err := strconv.Atoi(e.Catalog.ProductLineVersion); err == nil && models.ValidYear(y) {
			year = y
		}
	}
	name := e.DisplayName
	if name == "" {
		name = e.InstallationName
	}
	return models.Installation{
		Year:       year,
		RootPath:   e.InstallationPath,
		Version:    e.InstallationVersion,
		ProductID:  e.ProductID,
		Name:       name,
		IsComplete: e.IsComplete == nil || *e.IsComplete,
	}
}
