package version

// Version is overridden at build time via -ldflags "-X chaton2api-go/internal/version.Version=...".
var Version = "dev"
