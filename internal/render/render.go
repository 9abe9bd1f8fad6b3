// Package render serialises a resolved environment into shell activation
// text. Rendering is pure: no filesystem or registry access.
package render

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/goccy/go-json"
	"mvdan.cc/sh/v3/syntax"

	"github.com/vcv-app/vcv/internal/models"
	"github.com/vcv-app/vcv/internal/winpath"
)

// Format is an output syntax.
type Format string

const (
	FormatAuto       Format = "auto"
	FormatPowerShell Format = "ps"
	FormatCmd        Format = "cmd"
	FormatPOSIX      Format = "sh"
	FormatJSON       Format = "json"
)

// Formats lists the concrete formats.
var Formats = []Format{FormatPowerShell, FormatCmd, FormatPOSIX, FormatJSON}

var formatAliases = map[string]Format{
	"auto":       FormatAuto,
	"ps":         FormatPowerShell,
	"pwsh":       FormatPowerShell,
	"powershell": FormatPowerShell,
	"cmd":        FormatCmd,
	"bat":        FormatCmd,
	"batch":      FormatCmd,
	"sh":         FormatPOSIX,
	"bash":       FormatPOSIX,
	"zsh":        FormatPOSIX,
	"posix":      FormatPOSIX,
	"json":       FormatJSON,
}

// ParseFormat converts a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	if f, ok := formatAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return f, nil
	}
	return "", fmt.Errorf("unknown output format %q (expected auto, ps, cmd, sh or json)", s)
}

// Resolve replaces FormatAuto with the format of the detected shell.
func (f Format) Resolve(detected string) Format {
	if f != FormatAuto {
		return f
	}
	if g, ok := formatAliases[detected]; ok && g != FormatAuto {
		return g
	}
	return FormatPowerShell
}

// Render writes env in the given concrete format. Variables are emitted in
// env.Keys() order; JSON output is a flat object.
func Render(env models.ResolvedEnvironment, f Format) (string, error) {
	switch f {
	case FormatPowerShell:
		return lines(env, powerShell)
	case FormatCmd:
		return lines(env, cmd)
	case FormatPOSIX:
		return lines(env, posix)
	case FormatJSON:
		data, err := json.MarshalIndent(env, "", "  ")
		if err != nil {
			return "", fmt.Errorf("encode json: %w", err)
		}
		return string(data) + "\n", nil
	case FormatAuto:
		return "", fmt.Errorf("format %q must be resolved before rendering", f)
	default:
		return "", fmt.Errorf("unknown output format %q", f)
	}
}

func lines(env models.ResolvedEnvironment, stmt func(name, value string) (string, error)) (string, error) {
	var b strings.Builder
	for _, name := range env.Keys() {
		line, err := stmt(name, env[name])
		if err != nil {
			return "", err
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String(), nil
}

// psQuotes are the characters PowerShell accepts as a single quote.
var psQuotes = strings.NewReplacer(
	"'", "''",
	"\u2018", "\u2018\u2018",
	"\u2019", "\u2019\u2019",
	"\u201a", "\u201a\u201a",
	"\u201b", "\u201b\u201b",
)

// powerShell emits $env:NAME = '...'. Single-quoted strings are literal;
// the only escape is a doubled quote character.
func powerShell(name, value string) (string, error) {
	return fmt.Sprintf("$env:%s = '%s'", name, psQuotes.Replace(value)), nil
}

// cmdEscapes caret-escapes the batch metacharacters and doubles percent
// signs, so the unquoted set form keeps quotes that are part of the value.
var cmdEscapes = strings.NewReplacer(
	"^", "^^",
	"&", "^&",
	"|", "^|",
	"<", "^<",
	">", "^>",
	"(", "^(",
	")", "^)",
	`"`, `^"`,
	"%", "%%",
)

// cmd emits set NAME=... for use in a batch file. A value holding a line
// break cannot be expressed.
func cmd(name, value string) (string, error) {
	if strings.ContainsAny(value, "\r\n") {
		return "", fmt.Errorf("cmd: value of %s cannot contain line breaks", name)
	}
	return fmt.Sprintf("set %s=%s", name, cmdEscapes.Replace(value)), nil
}

var shellName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// posix emits export NAME=... quoted for a POSIX shell. PATH is rewritten
// to MSYS form so the shell can search it; the remaining list variables
// are read by native tools and keep their Windows form.
func posix(name, value string) (string, error) {
	if !shellName.MatchString(name) {
		return "", fmt.Errorf("sh: %q is not a valid variable name", name)
	}
	if strings.EqualFold(name, models.VarPath) {
		segs := models.SplitList(value)
		for i, s := range segs {
			segs[i] = winpath.ToMSYS(s)
		}
		value = strings.Join(segs, ":")
	}
	quoted, err := syntax.Quote(value, syntax.LangPOSIX)
	if err != nil {
		return "", fmt.Errorf("sh: value of %s: %w", name, err)
	}
	return fmt.Sprintf("export %s=%s", name, quoted), nil
}
