// Package locator discovers candidate Visual Studio installations.
// Discovery runs once per invocation; records that cannot be understood are
// skipped with a warning as long as at least one usable record remains.
package locator

import (
	"context"
	"fmt"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/vcv-app/vcv/internal/models"
	"github.com/vcv-app/vcv/internal/winpath"
)

// Locator is the single capability the pipeline needs from discovery.
type Locator interface {
	// Locate returns every usable installation, or an error carrying
	// models.ErrNoInstallationFound when there is none.
	Locate(ctx context.Context) ([]models.Installation, error)
}

// Static serves a fixed list of installations, typically from the
// configuration file. It never touches the host.
type Static struct {
	installations []models.Installation
	logger        *zap.Logger
}

// NewStatic creates a locator over installs.
func NewStatic(installs []models.Installation, logger *zap.Logger) *Static {
	return &Static{
		installations: installs,
		logger:        logger.Named("locator"),
	}
}

// Locate validates and returns a copy of the configured installations.
func (s *Static) Locate(ctx context.Context) ([]models.Installation, error) {
	var (
		result  []models.Installation
		skipped error
	)
	for i, inst := range s.installations {
		if inst.Year == 0 {
			inst.Year = models.YearFromVersion(inst.Version)
		}
		if err := check(inst); err != nil {
			skipped = multierr.Append(skipped, fmt.Errorf("installation %d: %w", i, err))
			continue
		}
		result = append(result, inst)
	}
	return finish(result, skipped, s.logger, "configured installations")
}

// check rejects records the later stages cannot use.
func check(inst models.Installation) error {
	if inst.RootPath == "" {
		return fmt.Errorf("missing installation path")
	}
	if !winpath.IsAbs(inst.RootPath) {
		return fmt.Errorf("installation path %q is not absolute", inst.RootPath)
	}
	if !models.ValidYear(inst.Year) {
		return fmt.Errorf("unsupported version year %d (version %q)", inst.Year, inst.Version)
	}
	return nil
}

// finish logs skipped records and turns an empty result into
// ErrNoInstallationFound.
func finish(result []models.Installation, skipped error, logger *zap.Logger, source string) ([]models.Installation, error) {
	for _, err := range multierr.Errors(skipped) {
		logger.Warn("Skipping installation record", zap.String("source", source), zap.Error(err))
	}
	if len(result) == 0 {
		return nil, &models.Error{
			Op:   "locate",
			Kind: models.ErrNoInstallationFound,
			Err:  skipped,
		}
	}
	logger.Debug("Located installations",
		zap.String("source", source),
		zap.Int("count", len(result)),
		zap.Int("skipped", len(multierr.Errors(skipped))))
	return result, nil
}
