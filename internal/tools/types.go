package tools

import "fmt"

// Source records how a discovered executable was found.
type Source string

const (
	SourceUnknown Source = ""
	SourceCache   Source = "cache"
	SourcePath    Source = "path"
	SourceSearch  Source = "search"
	SourceDefault Source = "default"
)

// Verdict is the outcome of verifying a single candidate executable.
type Verdict int

const (
	// NotFound means the candidate does not exist or could not be located.
	NotFound Verdict = iota
	// NonFunctional means the candidate exists but failed its version query.
	NonFunctional
	// Functional means the version query exited zero.
	Functional
)

func (v Verdict) String() string {
	switch v {
	case NotFound:
		return "not found"
	case NonFunctional:
		return "not functional"
	case Functional:
		return "ok"
	default:
		return fmt.Sprintf("Verdict(%d)", int(v))
	}
}

// Verification captures the result of invoking one candidate.
type Verification struct {
	Path    string  `json:"path"`
	Verdict Verdict `json:"-"`
	Version string  `json:"version,omitempty"`
	Err     error   `json:"-"`
}

// OK reports whether the candidate is usable.
func (v Verification) OK() bool { return v.Verdict == Functional }

// Discovery is the resolved location of a tool.
type Discovery struct {
	Tool     string
	Path     string
	Version  string
	Source   Source
	Attempts []Verification
}

// Status captures the resolved state of a required toolchain for reporting.
type Status struct {
	Tool      string   `json:"tool"`
	Purpose   string   `json:"purpose,omitempty"`
	Version   string   `json:"version,omitempty"`
	Path      string   `json:"path,omitempty"`
	Available bool     `json:"available"`
	Error     string   `json:"error,omitempty"`
	Hints     []string `json:"hints,omitempty"`
}

// ToolDefinition contains what is needed to verify a toolchain.
type ToolDefinition struct {
	Name        string
	Executable  string
	VersionArgs []string
	Purpose     string
}
