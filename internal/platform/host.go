package platform

import (
	"context"
	"fmt"
	"runtime"
	"strings"

	"github.com/shirou/gopsutil/v3/host"

	"github.com/vcv-app/vcv/internal/models"
)

// HostArch returns the architecture the kernel reports to this process
// (GetNativeSystemInfo on Windows), falling back to GOARCH when that is
// unavailable. An x64 build running emulated on ARM64 sees x64.
func HostArch() (models.Arch, error) {
	kernel, err := host.KernelArch()
	if err != nil || kernel == "" {
		return archFromGOARCH(runtime.GOARCH)
	}
	arch, err := models.ParseArch(kernel)
	if err != nil {
		return 0, fmt.Errorf("host architecture %q: %w", kernel, err)
	}
	return arch, nil
}

func archFromGOARCH(goarch string) (models.Arch, error) {
	arch, err := models.ParseArch(goarch)
	if err != nil {
		return 0, fmt.Errorf("host architecture %q: %w", goarch, err)
	}
	return arch, nil
}

// OSCaption returns a short description of the host OS such as
// "Microsoft Windows 11 Pro 10.0.22631". It never fails; unknown fields
// fall back to GOOS.
func OSCaption(ctx context.Context) string {
	info, err := host.InfoWithContext(ctx)
	if err != nil || info.Platform == "" {
		return runtime.GOOS
	}
	return strings.TrimSpace(info.Platform + " " + info.PlatformVersion)
}
