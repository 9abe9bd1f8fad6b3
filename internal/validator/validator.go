// Package validator checks that the activated environment can reach the
// compiler.
package validator

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/vcv-app/vcv/internal/models"
	"github.com/vcv-app/vcv/internal/winpath"
)

// Compiler is the driver binary looked up on PATH.
const Compiler = "cl.exe"

// Validate looks for the compiler in the PATH segments of env, in order,
// and returns the first match. It only tests for a regular file; nothing is
// executed.
func Validate(env models.ResolvedEnvironment) (string, error) {
	return validate(env, isFile)
}

func validate(env models.ResolvedEnvironment, exists func(string) bool) (string, error) {
	segs := env.Segments(models.VarPath)
	for _, dir := range segs {
		candidate := filepath.Join(winpath.Native(dir), Compiler)
		if exists(candidate) {
			return winpath.Canonical(dir) + `\` + Compiler, nil
		}
	}
	return "", &models.Error{
		Op:   "validate",
		Kind: models.ErrCompilerUnreachable,
		Err:  fmt.Errorf("%s not found in %d PATH entries", Compiler, len(segs)),
	}
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
