// Package buildinfo holds the version stamp, set with
//
//	-ldflags "-X regis3d/internal/buildinfo.Version=v1.2.0 -X regis3d/internal/buildinfo.Commit=..."
//
// Without ldflags the VCS revision recorded by the go tool is used.
package buildinfo

import (
	"fmt"
	"runtime/debug"
)

var (
	Version = "dev"
	Commit  = ""
	Date    = ""
)

func init() {
	if Commit != "" {
		return
	}
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			Commit = s.Value
		case "vcs.time":
			if Date == "" {
				Date = s.Value
			}
		}
	}
}

// Short returns a compact build identifier for titles and logs.
func Short() string {
	if Version != "" && Version != "dev" {
		return Version
	}
	if len(Commit) >= 7 {
		return Commit[:7]
	}
	return "dev"
}

// String is the -version line.
func String() string {
	s := "regis3d " + Version
	if Commit != "" {
		s += fmt.Sprintf(" (%s)", Commit)
	}
	if Date != "" {
		s += " built " + Date
	}
	return s
}
