package cli

import (
	"github.com/vcv-app/vcv/internal/models"
)

// Exit codes.
const (
	ExitOK                  = 0
	ExitUsage               = 1
	ExitNoInstallation      = 2
	ExitVersionNotFound     = 3
	ExitToolsetMissing      = 4
	ExitSdkMissing          = 5
	ExitUnsupportedArch     = 6
	ExitCompilerUnreachable = 7
)

var exitCodes = map[error]int{
	models.ErrNoInstallationFound:     ExitNoInstallation,
	models.ErrVersionNotFound:         ExitVersionNotFound,
	models.ErrToolsetMissing:          ExitToolsetMissing,
	models.ErrSdkMissing:              ExitSdkMissing,
	models.ErrUnsupportedArchitecture: ExitUnsupportedArch,
	models.ErrCompilerUnreachable:     ExitCompilerUnreachable,
}

// ExitCode maps err to the process exit code. Errors without a kind, such
// as bad flags or an unreadable config file, are usage errors.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	if code, ok := exitCodes[models.KindOf(err)]; ok {
		return code
	}
	return ExitUsage
}
