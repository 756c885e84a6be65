package executable

import "runtime"

// Platform names an operating system family that tools are installed for.
type Platform string

// Known platforms.
const (
	PlatformWindows Platform = "Windows"
	PlatformLinux   Platform = "Linux"
	PlatformDarwin  Platform = "Darwin"
)

// CurrentPlatform maps runtime.GOOS to a Platform.
func CurrentPlatform() Platform {
	return PlatformFromGOOS(runtime.GOOS)
}

// PlatformFromGOOS maps a GOOS value to a Platform. Unknown values are
// returned verbatim so that callers can report them.
func PlatformFromGOOS(goos string) Platform {
	switch goos {
	case "windows":
		return PlatformWindows
	case "linux":
		return PlatformLinux
	case "darwin":
		return PlatformDarwin
	}
	return Platform(goos)
}
