package version

// injected via ldflags on release builds
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

var FullVersion = composeVersion()

func composeVersion() string {
	if Commit == "none" {
		return Version
	}
	return Version + " (" + Commit + ", " + Date + ")"
}
