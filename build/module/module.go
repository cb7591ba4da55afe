// Copyright 2024 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package module locates the Go module in which einsum code is generated.
package module

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/mod/modfile"
	"golang.org/x/mod/semver"
)

// MinGoVersion is the minimum Go version required by the generated code.
const MinGoVersion = "1.22"

func findModuleRoot(dir string) (roots string) {
	dir = filepath.Clean(dir)
	if dir == "" {
		return ""
	}
	for {
		if fi, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil && !fi.IsDir() {
			return dir
		}
		d := filepath.Dir(dir)
		if d == dir {
			break
		}
		dir = d
	}
	return ""
}

// Module is a Go module read from its go.mod file.
type Module struct {
	root string
	mod  *modfile.File
}

// New returns the module enclosing a directory.
func New(osPath string) (*Module, error) {
	absPath, err := filepath.Abs(osPath)
	if err != nil {
		return nil, errors.Errorf("invalid path %q: %v", osPath, err)
	}
	modRoot := findModuleRoot(absPath)
	if modRoot == "" {
		return nil, errors.Errorf("directory %q is not in a Go module: cannot find go.mod", osPath)
	}
	return Load(filepath.Join(modRoot, "go.mod"))
}

// Load a module given the path to its go.mod file.
func Load(modPath string) (*Module, error) {
	absModPath, err := filepath.Abs(modPath)
	if err != nil {
		return nil, errors.Errorf("invalid path %q: %v", modPath, err)
	}
	modData, err := os.ReadFile(absModPath)
	if err != nil {
		return nil, errors.Errorf("cannot read %s: %v", absModPath, err)
	}
	mod, err := modfile.Parse(absModPath, modData, nil)
	if err != nil {
		return nil, errors.Errorf("cannot parse %s: %v", absModPath, err)
	}
	if mod.Module == nil {
		return nil, errors.Errorf("%s does not declare a module path", absModPath)
	}
	return &Module{root: filepath.Dir(absModPath), mod: mod}, nil
}

// Name of the module as specified in the go.mod file.
func (mod *Module) Name() string {
	return mod.mod.Module.Mod.Path
}

// Root returns the directory of the module on the operating system.
func (mod *Module) Root() string {
	return mod.root
}

// GoVersion returns the Go version declared in the go.mod file.
// It returns an empty string if no version has been declared.
func (mod *Module) GoVersion() string {
	if mod.mod.Go == nil {
		return ""
	}
	return mod.mod.Go.Version
}

// CheckGoVersion returns an error if the module declares a Go version
// older than the version required by the generated code.
func (mod *Module) CheckGoVersion() error {
	version := mod.GoVersion()
	if version == "" {
		return nil
	}
	if semver.Compare("v"+version, "v"+MinGoVersion) < 0 {
		return errors.Errorf("module %s declares go %s but the generated code requires go %s or later", mod.Name(), version, MinGoVersion)
	}
	return nil
}

// ImportPath returns the import path of the package in a directory of the module.
func (mod *Module) ImportPath(osPath string) (string, error) {
	absPath, err := filepath.Abs(osPath)
	if err != nil {
		return "", errors.Errorf("invalid path %q: %v", osPath, err)
	}
	rel, err := filepath.Rel(mod.root, absPath)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", errors.Errorf("directory %q does not belong to module %s in %s", osPath, mod.Name(), mod.root)
	}
	if rel == "." {
		return mod.Name(), nil
	}
	return mod.Name() + "/" + filepath.ToSlash(rel), nil
}

// OSPath converts an import path of a package of the module into a directory on the operating system.
func (mod *Module) OSPath(importPath string) (string, error) {
	if importPath == mod.Name() {
		return mod.root, nil
	}
	rel, ok := strings.CutPrefix(importPath, mod.Name()+"/")
	if !ok {
		return "", errors.Errorf("package %q does not belong to %s", importPath, mod.Name())
	}
	return filepath.Join(mod.root, filepath.FromSlash(rel)), nil
}
