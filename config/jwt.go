package config

import "time"

var JWTSecret []byte
var JWTExpiration time.Duration

func init() {
	// Overridden by Load; these keep tests and tools usable without an environment.
	JWTSecret = []byte("your-secret-key-change-this-in-production")
	JWTExpiration = 24 * time.Hour
}
