// Package mode decides which deployment context fwcheck is running in.
//
// A source checkout nests the framework under framework/, while an installed
// copy puts CLAUDE.md directly in the working directory. The two layouts have
// distinct anchors, so detection needs no configuration.
package mode

import (
	"io/fs"
)

// Kind identifies a deployment context.
type Kind string

const (
	Repository Kind = "repository"
	Installed  Kind = "installed"
)

// Anchor file and directory names used for detection.
const (
	FrameworkDir = "framework"
	RootFile     = "CLAUDE.md"

	repositoryPrefix = FrameworkDir + "/"
)

// ExecutionMode is the detected context. It is a value: copy it freely, it
// never changes after Detect returns.
type ExecutionMode struct {
	Kind   Kind   `json:"kind"`
	Prefix string `json:"prefix"`
}

// String renders the mode for log lines.
func (m ExecutionMode) String() string {
	if m.Prefix == "" {
		return string(m.Kind)
	}
	return string(m.Kind) + " (" + m.Prefix + ")"
}

// Detect inspects the root of fsys (the working directory) and selects the
// active mode. First match wins:
//  1. framework/ is a readable directory containing CLAUDE.md: Repository.
//  2. CLAUDE.md exists directly in the root: Installed.
//
// Anything else is a *DetectionError. Detect never guesses.
func Detect(fsys fs.FS) (ExecutionMode, error) {
	if isReadableDir(fsys, FrameworkDir) && isFile(fsys, repositoryPrefix+RootFile) {
		return ExecutionMode{Kind: Repository, Prefix: repositoryPrefix}, nil
	}
	if isFile(fsys, RootFile) {
		return ExecutionMode{Kind: Installed, Prefix: ""}, nil
	}
	return ExecutionMode{}, &DetectionError{}
}

func isReadableDir(fsys fs.FS, name string) bool {
	info, err := fs.Stat(fsys, name)
	if err != nil || !info.IsDir() {
		return false
	}
	_, err = fs.ReadDir(fsys, name)
	return err == nil
}

func isFile(fsys fs.FS, name string) bool {
	info, err := fs.Stat(fsys, name)
	return err == nil && info.Mode().IsRegular()
}
