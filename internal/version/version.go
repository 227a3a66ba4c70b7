package version

// Build information set by ldflags
var (
	Version = "dev"     // Set by goreleaser: -X github.com/Syzzle07/NMS-Mod-Manager/internal/version.Version={{.Version}}
	Commit  = "unknown" // Set by goreleaser: -X github.com/Syzzle07/NMS-Mod-Manager/internal/version.Commit={{.Commit}}
	Date    = "unknown" // Set by goreleaser: -X github.com/Syzzle07/NMS-Mod-Manager/internal/version.Date={{.Date}}
)
