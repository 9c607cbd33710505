package layout

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"flowctl/internal/config"
)

// For mocking in tests
var osExecutable = os.Executable

var (
	// ErrExecutableNotFound indicates the packaged backend executable is
	// absent from disk.
	ErrExecutableNotFound = errors.New("backend executable not found")

	// ErrContentRootNotFound indicates the web content directory is absent.
	ErrContentRootNotFound = errors.New("web content root not found")
)

// Command describes how to launch the backend process.
type Command struct {
	Name string   // Executable or interpreter to run
	Args []string // Arguments, e.g. the entry script in dev mode
	Dir  string   // Working directory for the child process
}

// Layout resolves the backend command and the web content root for one
// environment. It is selected once at startup and injected into both
// supervisors, replacing inline dev-vs-packaged branching.
type Layout interface {
	Name() string
	BackendCommand() (Command, error)
	ContentRoot() (string, error)
}

// DevLayout resolves paths against a source tree: the backend runs as
// interpreter+script and the content root is the built frontend directory.
type DevLayout struct {
	SourceRoot  string
	Interpreter string
	Script      string
	ContentDir  string
}

func (d *DevLayout) Name() string { return "dev" }

func (d *DevLayout) BackendCommand() (Command, error) {
	return Command{
		Name: d.Interpreter,
		Args: []string{d.Script},
		Dir:  d.SourceRoot,
	}, nil
}

func (d *DevLayout) ContentRoot() (string, error) {
	root := filepath.Join(d.SourceRoot, d.ContentDir)
	if info, err := os.Stat(root); err != nil || !info.IsDir() {
		return "", fmt.Errorf("%w: %s", ErrContentRootNotFound, root)
	}
	return root, nil
}

// PackagedLayout resolves paths sibling to the installed launcher binary:
// a self-contained backend executable and a content directory next to it.
type PackagedLayout struct {
	BaseDir        string // Directory containing the launcher binary
	ExecutableName string
	ContentDirName string
}

func (p *PackagedLayout) Name() string { return "packaged" }

func (p *PackagedLayout) BackendCommand() (Command, error) {
	exe := filepath.Join(p.BaseDir, p.ExecutableName)
	if _, err := os.Stat(exe); err != nil {
		return Command{}, fmt.Errorf("%w: %s", ErrExecutableNotFound, exe)
	}
	return Command{
		Name: exe,
		Dir:  p.BaseDir,
	}, nil
}

func (p *PackagedLayout) ContentRoot() (string, error) {
	root := filepath.Join(p.BaseDir, p.ContentDirName)
	if info, err := os.Stat(root); err != nil || !info.IsDir() {
		return "", fmt.Errorf("%w: %s", ErrContentRootNotFound, root)
	}
	return root, nil
}

// Select builds the layout for the configured mode. Auto mode picks packaged
// when the sibling backend executable exists next to the launcher binary,
// dev otherwise.
func Select(cfg config.LayoutConfig) (Layout, error) {
	switch cfg.Mode {
	case config.LayoutModeDev:
		return newDevLayout(cfg)
	case config.LayoutModePackaged:
		return newPackagedLayout(cfg)
	case config.LayoutModeAuto, "":
		packaged, err := newPackagedLayout(cfg)
		if err != nil {
			return newDevLayout(cfg)
		}
		if _, cmdErr := packaged.BackendCommand(); cmdErr == nil {
			return packaged, nil
		}
		return newDevLayout(cfg)
	default:
		return nil, fmt.Errorf("unknown layout mode %q", cfg.Mode)
	}
}

func newDevLayout(cfg config.LayoutConfig) (Layout, error) {
	root := cfg.SourceRoot
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("resolving source root: %w", err)
		}
		root = wd
	}
	return &DevLayout{
		SourceRoot:  root,
		Interpreter: cfg.Interpreter,
		Script:      cfg.Script,
		ContentDir:  cfg.DevContentRoot,
	}, nil
}

func newPackagedLayout(cfg config.LayoutConfig) (*PackagedLayout, error) {
	exe, err := osExecutable()
	if err != nil {
		return nil, fmt.Errorf("resolving launcher binary path: %w", err)
	}
	return &PackagedLayout{
		BaseDir:        filepath.Dir(exe),
		ExecutableName: cfg.ExecutableName,
		ContentDirName: cfg.ContentDirName,
	}, nil
}
