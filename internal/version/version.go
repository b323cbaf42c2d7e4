package version

// Service is the identifier reported by the health endpoint and logs.
const Service = "wallet-service"

// Version is overridden at release time with
// -ldflags "-X github.com/finbase/wallet-service/internal/version.Version=...".
var Version = "0.1.0"
