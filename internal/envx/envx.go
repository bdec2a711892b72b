// Package envx isolates environment variable access so path expansion and
// tool discovery can be tested without touching the real process environment.
package envx

import "os"

// Provider reads environment variables.
type Provider interface {
	Getenv(key string) string
}

// OS reads from the real process environment.
type OS struct{}

func (OS) Getenv(key string) string { return os.Getenv(key) }

// Map is a fixed environment, mostly useful in tests.
type Map map[string]string

func (m Map) Getenv(key string) string { return m[key] }

var (
	_ Provider = OS{}
	_ Provider = Map(nil)
)
