package buildinfo

import "runtime/debug"

// Injectées via -ldflags, ex:
//
//	-X github.com/Guilhem-Bonnet/Anime-Showcase/internal/buildinfo.Version=v0.1.0
//	-X github.com/Guilhem-Bonnet/Anime-Showcase/internal/buildinfo.Commit=abcdef
var (
	Version = "dev"
	Commit  = ""
	Date    = ""
)

type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit,omitempty"`
	Date      string `json:"date,omitempty"`
	GoVersion string `json:"goVersion,omitempty"`
}

// Current complète les champs absents avec les infos VCS embarquées par le toolchain.
func Current() Info {
	info := Info{Version: Version, Commit: Commit, Date: Date}
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return info
	}
	info.GoVersion = bi.GoVersion
	if info.Version == "dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		info.Version = bi.Main.Version
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if info.Commit == "" {
				info.Commit = s.Value
			}
		case "vcs.time":
			if info.Date == "" {
				info.Date = s.Value
			}
		}
	}
	return info
}
