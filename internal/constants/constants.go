package constants

// MaxAssetSize is the largest static asset (in bytes) served from the asset bucket.
const MaxAssetSize = 10 * 1024 * 1024 // 10 MB

// PasswordUnavailable is reported in place of the administrator password
// while the provider has not generated the encrypted blob yet.
const PasswordUnavailable = "N/A, try again in some minutes"

// DefaultListenAddr is where the HTTP control plane listens unless configured.
const DefaultListenAddr = ":8080"
