package app

import "fmt"

// Build metadata, overridden at link time:
//
//	go build -ldflags "-X github.com/ntotao/baby-tracker/internal/app.Version=1.2.0 -X github.com/ntotao/baby-tracker/internal/app.Commit=$(git rev-parse --short HEAD)"
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// BuildVersion is the version line logged at startup.
func BuildVersion() string {
	return fmt.Sprintf("%s+%s (%s)", Version, Commit, BuildTime)
}
