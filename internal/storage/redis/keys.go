package redis

// Key prefix for all application data
const keyPrefix = "showroom"

// userDocKey returns the Redis key holding the credential document
func userDocKey() string {
	return keyPrefix + ":users"
}
