package mcpconfig

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/rs/zerolog"
	"github.com/tailscale/hujson"
	"github.com/tidwall/gjson"
)

const defaultLockTimeout = 2 * time.Second

// Writer persists a Config to a host application's config file.
type Writer struct {
	// Merge upserts the server entries into an existing file, keeping other
	// servers and top-level settings. When false the file is replaced.
	Merge       bool
	LockTimeout time.Duration
	Logger      zerolog.Logger
}

// WriteResult describes what Write did.
type WriteResult struct {
	Path string
	// Merged is true when entries were upserted into existing content.
	Merged bool
	// Replaced lists server names that already existed and were overwritten.
	Replaced []string
}

// Write creates the parent directory of path if needed and writes cfg there.
// The read-modify-write is guarded by a lock file and the final write is
// atomic.
func (w Writer) Write(ctx context.Context, path string, cfg Config) (WriteResult, error) {
	result := WriteResult{Path: path}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return result, fmt.Errorf("create config directory: %w", err)
	}

	err := w.withLock(ctx, path, func() error {
		existing, mode, err := readExisting(path)
		if err != nil {
			return err
		}

		var data []byte
		if w.Merge && len(bytes.TrimSpace(existing)) > 0 {
			data, result.Replaced, err = upsertServers(existing, cfg)
			if err != nil {
				return fmt.Errorf("merge into %s: %w", path, err)
			}
			result.Merged = true
		} else {
			data, err = Encode(cfg)
			if err != nil {
				return err
			}
		}

		return atomicWriteFile(path, data, mode)
	})
	if err != nil {
		return result, err
	}

	w.Logger.Info().
		Str("path", path).
		Bool("merged", result.Merged).
		Strs("replaced", result.Replaced).
		Msg("wrote mcp config")
	return result, nil
}

func (w Writer) withLock(ctx context.Context, path string, fn func() error) error {
	if ctx == nil {
		ctx = context.Background()
	}
	timeout := w.LockTimeout
	if timeout <= 0 {
		timeout = defaultLockTimeout
	}

	lockPath := path + ".lock"
	fileLock := flock.New(lockPath)
	lockCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	locked, err := fileLock.TryLockContext(lockCtx, 50*time.Millisecond)
	if err != nil {
		return fmt.Errorf("acquire lock %s: %w", lockPath, err)
	}
	if !locked {
		return fmt.Errorf("acquire lock %s: timeout after %v", lockPath, timeout)
	}
	defer func() {
		_ = fileLock.Unlock()
		_ = os.Remove(lockPath)
	}()

	return fn()
}

func readExisting(path string) ([]byte, fs.FileMode, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, 0o644, nil
		}
		return nil, 0, fmt.Errorf("stat config: %w", err)
	}
	if info.IsDir() {
		return nil, 0, fmt.Errorf("config path %s is a directory", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, 0, fmt.Errorf("read config: %w", err)
	}
	return data, info.Mode().Perm(), nil
}

// upsertServers patches every server of cfg into the mcpServers object of
// content, creating the object when it is absent.
func upsertServers(content []byte, cfg Config) ([]byte, []string, error) {
	v, err := hujson.Parse(append([]byte(nil), content...))
	if err != nil {
		return nil, nil, fmt.Errorf("parse existing config (rerun with --overwrite to replace it): %w", err)
	}
	std, err := hujson.Standardize(append([]byte(nil), content...))
	if err != nil {
		return nil, nil, fmt.Errorf("parse existing config: %w", err)
	}

	root := gjson.ParseBytes(std)
	if !root.IsObject() {
		return nil, nil, errors.New("existing config is not a JSON object")
	}

	servers := root.Get("mcpServers")
	switch {
	case !servers.Exists():
		if err := v.Patch([]byte(`[{"op":"add","path":"/mcpServers","value":{}}]`)); err != nil {
			return nil, nil, fmt.Errorf("add mcpServers: %w", err)
		}
	case !servers.IsObject():
		return nil, nil, errors.New(`existing "mcpServers" is not an object`)
	}

	names := make([]string, 0, len(cfg.MCPServers))
	for name := range cfg.MCPServers {
		names = append(names, name)
	}
	sort.Strings(names)

	var replaced []string
	for _, name := range names {
		if servers.Get(gjsonEscape(name)).Exists() {
			replaced = append(replaced, name)
		}
		value, err := json.Marshal(cfg.MCPServers[name])
		if err != nil {
			return nil, nil, fmt.Errorf("marshal server %s: %w", name, err)
		}
		patch := fmt.Sprintf(`[{"op":"add","path":"/mcpServers/%s","value":%s}]`, pointerEscape(name), value)
		if err := v.Patch([]byte(patch)); err != nil {
			return nil, nil, fmt.Errorf("patch server %s: %w", name, err)
		}
	}

	expand(&v, false)
	if servers := v.Find("/mcpServers"); servers != nil {
		expand(servers, false)
	}
	for _, name := range names {
		if entry := v.Find("/mcpServers/" + pointerEscape(name)); entry != nil {
			expand(entry, true)
		}
	}

	formatted, err := hujson.Format(v.Pack())
	if err != nil {
		return nil, nil, fmt.Errorf("format config: %w", err)
	}
	return formatted, replaced, nil
}

// expand puts every member of an object or array on its own line when
// formatted. Members that already start on a new line are left alone, along
// with any comments before them.
func expand(v *hujson.Value, recursive bool) {
	switch comp := v.Value.(type) {
	case *hujson.Object:
		for i := range comp.Members {
			comp.Members[i].Name.BeforeExtra = withNewline(comp.Members[i].Name.BeforeExtra)
			if recursive {
				expand(&comp.Members[i].Value, true)
			}
		}
	case *hujson.Array:
		for i := range comp.Elements {
			comp.Elements[i].BeforeExtra = withNewline(comp.Elements[i].BeforeExtra)
			if recursive {
				expand(&comp.Elements[i], true)
			}
		}
	}
}

func withNewline(extra hujson.Extra) hujson.Extra {
	if bytes.Contains(extra, []byte("\n")) {
		return extra
	}
	return append(hujson.Extra("\n"), extra...)
}

// gjsonEscape escapes characters gjson treats as path syntax.
func gjsonEscape(key string) string {
	r := strings.NewReplacer(".", `\.`, "*", `\*`, "?", `\?`)
	return r.Replace(key)
}

// pointerEscape escapes a key for use as a JSON Pointer segment.
func pointerEscape(key string) string {
	return strings.NewReplacer("~", "~0", "/", "~1").Replace(key)
}

func atomicWriteFile(path string, data []byte, mode fs.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+"-*")
	if err != nil {
		return fmt.Errorf("create temp config: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write config temp: %w", err)
	}
	if err := tmp.Chmod(mode); err != nil {
		tmp.Close()
		return fmt.Errorf("chmod config temp: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close config temp: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace config: %w", err)
	}
	return nil
}
