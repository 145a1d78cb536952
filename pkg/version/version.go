// Package version reports the pfchistoryd build stamped in with -ldflags.
package version

//nolint:gochecknoglobals // set with -ldflags "-X .../pkg/version.version=..."
var (
	version = "dev"
	buildID = "dev"
)

func GetVersion() string {
	return version
}

func GetBuildID() string {
	return buildID
}

// GetFullVersion returns "<version> (build: <id>)".
func GetFullVersion() string {
	return version + " (build: " + buildID + ")"
}
