package models

// ToolsetInfo is the resolved VC++ toolset for one (installation, host, target).
type ToolsetInfo struct {
	Installation Installation
	Host         Arch
	Target       Arch
	ToolsVersion string   // e.g. 14.38.33130
	VCRoot       string   // <root>\VC\Tools\MSVC\<ToolsVersion>
	BinDir       string   // <VCRoot>\bin\Host<host>\<target>
	AuxBinDirs   []string // host-native bin dir on cross builds, Common7 tools
	IncludeDirs  []string
	LibDirs      []string
}

// SdkInfo is the resolved Windows SDK and Universal CRT.
type SdkInfo struct {
	SdkRoot      string
	SdkVersion   string // e.g. 10.0.22621.0
	UcrtRoot     string
	UcrtVersion  string
	IncludeDirs  []string // ucrt, shared, um, winrt, cppwinrt
	LibDirs      []string // um, ucrt for the target
	BinDirs      []string // host tools
	MetadataDirs []string // UnionMetadata, References
}
