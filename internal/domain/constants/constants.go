// Package constants holds values shared across layers.
package constants

// EnvProduction is the env.env value of production deployments.
const EnvProduction = "production"

// Event publisher providers.
const (
	PubSubProviderNoop   = "noop"
	PubSubProviderLocal  = "local"
	PubSubProviderGoogle = "google"
)

// Media key prefixes.
const (
	MediaPrefixAvatar = "avatars"
	MediaPrefixPost   = "posts"
)
