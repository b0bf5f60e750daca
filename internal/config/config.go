// Package config loads a crema.toml project descriptor: the entry source
// file, the IR output path, and a runtime library path round-tripped to an
// external linker. It does not describe a module/import graph -- the project
// it describes is always exactly one translation unit.
package config

import (
	"errors"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml"
)

// tomlProjectFile is the crema.toml file's on-disk shape.
type tomlProjectFile struct {
	Project *tomlProject `toml:"project"`
}

// tomlProject represents the `[project]` table as encoded in TOML.
type tomlProject struct {
	Name        string `toml:"name"`
	Entry       string `toml:"entry"`
	Output      string `toml:"output,omitempty"`
	RuntimePath string `toml:"runtime-path,omitempty"`
}

// Project is the validated, path-resolved form of a crema.toml descriptor.
type Project struct {
	Name string

	// Root is the directory containing the crema.toml file; Entry and
	// Output are resolved relative to it.
	Root string

	EntryPath  string
	OutputPath string

	// RuntimePath is never inspected by the core -- it is only carried
	// through for a downstream native linker.
	RuntimePath string
}

// Load reads and validates the crema.toml file at path, resolving its
// entry/output fields relative to path's containing directory.
func Load(path string) (*Project, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	buf, err := ioutil.ReadAll(f)
	if err != nil {
		return nil, err
	}

	tpf := &tomlProjectFile{}
	if err := toml.Unmarshal(buf, tpf); err != nil {
		return nil, fmt.Errorf("malformed project file %s: %w", path, err)
	}

	if tpf.Project == nil {
		return nil, fmt.Errorf("%s has no [project] table", path)
	}

	root := filepath.Dir(path)
	proj := &Project{Root: root}
	if err := validateAndFill(proj, tpf.Project); err != nil {
		return nil, err
	}

	return proj, nil
}

// validateAndFill checks the required fields and resolves path fields
// relative to proj.Root, applying the entry-stem default for Output.
func validateAndFill(proj *Project, tp *tomlProject) error {
	if tp.Name == "" {
		return errors.New("project must specify a name")
	}
	if tp.Entry == "" {
		return errors.New("project must specify an entry source file")
	}

	proj.Name = tp.Name
	proj.EntryPath = filepath.Join(proj.Root, tp.Entry)

	if tp.Output != "" {
		proj.OutputPath = filepath.Join(proj.Root, tp.Output)
	} else {
		stem := filepath.Base(tp.Entry)
		if ext := filepath.Ext(stem); ext != "" {
			stem = stem[:len(stem)-len(ext)]
		}
		proj.OutputPath = filepath.Join(proj.Root, stem+".ll")
	}

	proj.RuntimePath = tp.RuntimePath

	return nil
}
