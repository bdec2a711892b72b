package tools

import (
	"context"
	"os/exec"
	"path/filepath"

	"github.com/rs/zerolog"

	"whatsappmcp/internal/envx"
)

// DefaultUVPath is offered to the operator when no candidate verifies.
const DefaultUVPath = "/usr/local/bin/uv"

// Prober locates a working executable. Candidates are tried in precedence
// order: the cached hint, the bare name through PATH, configured extra paths,
// then the common installation directories for the platform. The first
// functional candidate wins.
type Prober struct {
	Verifier Verifier
	Cache    *Cache
	Env      envx.Provider
	GOOS     string
	Fallback string
	Logger   zerolog.Logger

	// LookPath resolves a bare name to an absolute path once it verifies.
	// Defaults to exec.LookPath.
	LookPath func(string) (string, error)
}

// Discover returns the first functional candidate for tool. When none
// verifies it returns a suggestion with Source == SourceDefault and
// ok == false: the stale cached path if there is one, otherwise the fallback.
func (p *Prober) Discover(ctx context.Context, tool string, extra []string) (Discovery, bool) {
	def, _ := Definition(tool, p.goos())
	result := Discovery{Tool: tool}
	seen := map[string]bool{}

	try := func(candidate string, source Source) bool {
		if candidate == "" || seen[candidate] {
			return false
		}
		seen[candidate] = true
		v := p.Verifier.Verify(ctx, candidate, def.VersionArgs...)
		result.Attempts = append(result.Attempts, v)
		p.Logger.Debug().
			Str("tool", tool).
			Str("candidate", candidate).
			Str("source", string(source)).
			Str("verdict", v.Verdict.String()).
			AnErr("error", v.Err).
			Msg("verify candidate")
		if !v.OK() {
			return false
		}
		result.Path = candidate
		result.Version = v.Version
		result.Source = source
		return true
	}

	var stale string
	if p.Cache != nil {
		if cached, ok := p.Cache.Load(); ok {
			if try(cached, SourceCache) {
				return result, true
			}
			stale = cached
		}
	}

	bare := executableName(def.Executable, p.goos())
	if try(bare, SourcePath) {
		lookPath := p.LookPath
		if lookPath == nil {
			lookPath = exec.LookPath
		}
		if abs, err := lookPath(bare); err == nil {
			result.Path = abs
		}
		return result, true
	}

	for _, candidate := range extra {
		if try(candidate, SourceSearch) {
			return result, true
		}
	}
	for _, candidate := range CommonSearchPaths(def.Executable, p.goos(), p.env()) {
		if try(candidate, SourceSearch) {
			return result, true
		}
	}

	result.Path = stale
	if result.Path == "" {
		result.Path = p.Fallback
	}
	if result.Path == "" {
		result.Path = DefaultUVPath
	}
	result.Source = SourceDefault
	p.Logger.Info().Str("tool", tool).Str("fallback", result.Path).Msg("no functional candidate found")
	return result, false
}

func (p *Prober) goos() string {
	if p.GOOS == "" {
		return runtimeGOOS
	}
	return p.GOOS
}

func (p *Prober) env() envx.Provider {
	if p.Env == nil {
		return envx.OS{}
	}
	return p.Env
}

// CommonSearchPaths lists the usual installation locations for name, in the
// order they should be probed.
func CommonSearchPaths(name, goos string, env envx.Provider) []string {
	exe := executableName(name, goos)
	paths := []string{
		filepath.Join("/usr/local/bin", exe),
		filepath.Join("/usr/bin", exe),
	}
	if goos == "darwin" {
		paths = append(paths, filepath.Join("/opt/homebrew/bin", exe))
	}
	if home := HomeDir(env); home != "" {
		paths = append(paths,
			filepath.Join(home, ".local", "bin", exe),
			filepath.Join(home, ".cargo", "bin", exe),
		)
	}
	if goos == "windows" {
		if appData := env.Getenv("APPDATA"); appData != "" {
			paths = append(paths, filepath.Join(appData, "Python", "Scripts", exe))
		}
	}
	return paths
}

// HomeDir returns HOME, falling back to USERPROFILE.
func HomeDir(env envx.Provider) string {
	if home := env.Getenv("HOME"); home != "" {
		return home
	}
	return env.Getenv("USERPROFILE")
}
