// Package activate runs the resolution pipeline: locate, select, resolve,
// compose, merge and validate. Every stage runs once, in sequence; the first
// failing stage aborts the run.
package activate

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/vcv-app/vcv/internal/composer"
	"github.com/vcv-app/vcv/internal/locator"
	"github.com/vcv-app/vcv/internal/merger"
	"github.com/vcv-app/vcv/internal/models"
	"github.com/vcv-app/vcv/internal/selector"
	"github.com/vcv-app/vcv/internal/validator"
)

// ToolsetResolver resolves the VC++ toolset of an installation.
type ToolsetResolver interface {
	Resolve(inst models.Installation, host, target models.Arch) (models.ToolsetInfo, error)
}

// SdkResolver resolves the Windows SDK and UCRT.
type SdkResolver interface {
	Resolve(host, target models.Arch) (models.SdkInfo, error)
}

// Request describes one activation.
type Request struct {
	Host     models.Arch
	Target   models.Arch
	Year     int  // selector.Any for the newest
	Validate bool // look for the compiler on the composed PATH
	Strict   bool // treat an unreachable compiler as a failure
}

// Result carries every intermediate product of a run.
type Result struct {
	Installation models.Installation
	Toolset      models.ToolsetInfo
	Sdk          models.SdkInfo
	Delta        models.EnvironmentDelta
	Env          models.ResolvedEnvironment

	// Compiler is the compiler found by validation, empty when validation
	// was skipped or failed.
	Compiler string
	// Warning holds a non-fatal validation failure.
	Warning error
}

// Pipeline wires the stages together.
type Pipeline struct {
	locator locator.Locator
	toolset ToolsetResolver
	sdk     SdkResolver
	logger  *zap.Logger
}

// New creates a Pipeline.
func New(loc locator.Locator, ts ToolsetResolver, sdk SdkResolver, logger *zap.Logger) *Pipeline {
	return &Pipeline{
		locator: loc,
		toolset: ts,
		sdk:     sdk,
		logger:  logger,
	}
}

// Run resolves the environment for req on top of current.
func (p *Pipeline) Run(ctx context.Context, req Request, current models.EnvSnapshot) (*Result, error) {
	candidates, err := p.locator.Locate(ctx)
	if err != nil {
		return nil, err
	}

	inst, err := selector.Select(candidates, req.Year)
	if err != nil {
		return nil, err
	}
	p.logger.Debug("Selected installation", zap.Stringer("installation", inst))

	ts, err := p.toolset.Resolve(inst, req.Host, req.Target)
	if err != nil {
		return nil, err
	}
	p.logger.Info(fmt.Sprintf("VS %d (%s) | VC %s", inst.Year, inst.Version, ts.ToolsVersion),
		zap.String("path", inst.RootPath),
		zap.Stringer("host", req.Host),
		zap.Stringer("target", req.Target))

	sdk, err := p.sdk.Resolve(req.Host, req.Target)
	if err != nil {
		return nil, err
	}
	p.logger.Info(fmt.Sprintf("SDK %s | UCRT %s", sdk.SdkVersion, sdk.UcrtVersion),
		zap.String("path", sdk.SdkRoot))

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	delta, err := composer.Compose(ts, sdk, req.Host, req.Target)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Installation: inst,
		Toolset:      ts,
		Sdk:          sdk,
		Delta:        delta,
		Env:          merger.Merge(delta, current),
	}

	if !req.Validate {
		return res, nil
	}
	compiler, err := validator.Validate(res.Env)
	switch {
	case err == nil:
		res.Compiler = compiler
		p.logger.Debug("Compiler reachable", zap.String("path", compiler))
	case req.Strict:
		return nil, err
	case errors.Is(err, models.ErrCompilerUnreachable):
		res.Warning = err
		p.logger.Warn("Compiler not found on PATH", zap.Error(err))
	default:
		return nil, err
	}
	return res, nil
}
