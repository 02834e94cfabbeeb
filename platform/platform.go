// Package platform identifies the host the compiler runs on.
package platform

import (
	"fmt"
	"runtime"
)

// DetectCurrent returns the current platform as an os_arch target string,
// printed in the build banner so bug reports carry the platform.
func DetectCurrent() (string, error) {
	system := runtime.GOOS
	arch := runtime.GOARCH

	switch system {
	case "darwin":
		if arch == "arm64" {
			return "darwin_arm64", nil
		}
		return "darwin_amd64", nil
	case "linux":
		if arch == "amd64" {
			return "linux_amd64", nil
		}
		return "linux_i386", nil
	case "windows":
		if arch == "amd64" {
			return "windows_amd64", nil
		}
		return "windows_i386", nil
	default:
		return "", fmt.Errorf("unsupported platform: %s/%s", system, arch)
	}
}
