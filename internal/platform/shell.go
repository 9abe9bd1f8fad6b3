package platform

// Shell formats returned by DetectShell.
const (
	ShellPowerShell = "ps"
	ShellCmd        = "cmd"
	ShellPOSIX      = "sh"
)

// DetectShell guesses the calling shell from its environment:
// MSYS2 and Git Bash export MSYSTEM, cmd.exe always defines PROMPT, and
// anything else on Windows is assumed to be PowerShell.
func DetectShell(getenv func(string) string) string {
	if getenv("MSYSTEM") != "" {
		return ShellPOSIX
	}
	if getenv("PROMPT") != "" {
		return ShellCmd
	}
	return ShellPowerShell
}
