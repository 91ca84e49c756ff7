package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	nberr "github.com/ozacod/nbuild/pkg/errors"
	"github.com/pelletier/go-toml"
	"gopkg.in/yaml.v3"
)

// Top-level sections of a targets file, in declaration order.
const (
	SectionStaticLibraries = "static_libraries"
	SectionSharedLibraries = "shared_libraries"
	SectionExecutables     = "executables"
)

// Sections lists the sections in the order their targets are declared.
func Sections() []string {
	return []string{SectionStaticLibraries, SectionSharedLibraries, SectionExecutables}
}

// TargetsFileNames are looked up, in order, by FindTargetsFile.
var TargetsFileNames = []string{"nbuild.yaml", "nbuild.yml", "nbuild.toml"}

// Declaration is one target as written in the targets file.
type Declaration struct {
	Section  string
	Name     string
	Settings map[string]any
}

// Targets is a parsed targets file.
type Targets struct {
	Path         string
	Declarations []Declaration
}

// Format is the syntax of a targets file.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatOf infers the format from the file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	}
	return "", nberr.NewConfigError("targets", "cannot tell the format of "+path, "use a .yaml, .yml or .toml extension")
}

// FindTargetsFile returns the first targets file found in dir.
func FindTargetsFile(dir string) (string, error) {
	for _, name := range TargetsFileNames {
		p := filepath.Join(dir, name)
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p, nil
		}
	}
	return "", nberr.ErrNoTargetsFile
}

// LoadTargets reads and parses the targets file at path.
func LoadTargets(path string) (*Targets, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read targets file: %w", err)
	}
	t, err := ParseTargets(data, format)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}
	t.Path = path
	return t, nil
}

// ParseTargets parses a targets file. Declarations keep file order within a
// section; sections are ordered static, shared, executables regardless of
// where they appear in the file.
func ParseTargets(data []byte, format Format) (*Targets, error) {
	var (
		bySection map[string][]Declaration
		err       error
	)
	switch format {
	case FormatYAML:
		bySection, err = parseYAML(data)
	case FormatTOML:
		bySection, err = parseTOML(data)
	default:
		return nil, nberr.NewConfigError("targets", fmt.Sprintf("unknown format %q", format), "")
	}
	if err != nil {
		return nil, err
	}

	t := &Targets{}
	for _, sec := range Sections() {
		t.Declarations = append(t.Declarations, bySection[sec]...)
	}
	return t, nil
}

func checkSection(name string) error {
	for _, s := range Sections() {
		if s == name {
			return nil
		}
	}
	return nberr.NewConfigError(name, "unknown section", "valid sections: "+strings.Join(Sections(), ", "))
}

func parseYAML(data []byte) (map[string][]Declaration, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	out := make(map[string][]Declaration)
	if len(doc.Content) == 0 {
		return out, nil
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, nberr.NewConfigError("targets", fmt.Sprintf("line %d: expected a mapping of sections", root.Line), "")
	}

	for i := 0; i+1 < len(root.Content); i += 2 {
		key, val := root.Content[i], root.Content[i+1]
		if err := checkSection(key.Value); err != nil {
			return nil, err
		}
		if val.Kind == yaml.ScalarNode && val.Tag == "!!null" {
			continue
		}
		if val.Kind != yaml.MappingNode {
			return nil, nberr.NewConfigError(key.Value,
				fmt.Sprintf("line %d: expected a mapping of target names to settings", val.Line), "")
		}

		for j := 0; j+1 < len(val.Content); j += 2 {
			nameNode, settingsNode := val.Content[j], val.Content[j+1]
			if settingsNode.Kind != yaml.MappingNode {
				return nil, nberr.NewConfigError(nameNode.Value,
					fmt.Sprintf("line %d: expected a mapping of settings", settingsNode.Line), "")
			}
			settings := make(map[string]any)
			if err := settingsNode.Decode(&settings); err != nil {
				return nil, fmt.Errorf("target %s: %w", nameNode.Value, err)
			}
			out[key.Value] = append(out[key.Value], Declaration{
				Section:  key.Value,
				Name:     nameNode.Value,
				Settings: settings,
			})
		}
	}
	return out, nil
}

func parseTOML(data []byte) (map[string][]Declaration, error) {
	tree, err := toml.LoadBytes(data)
	if err != nil {
		return nil, err
	}

	out := make(map[string][]Declaration)
	for _, sec := range sortedKeys(tree) {
		if err := checkSection(sec); err != nil {
			return nil, err
		}
		secTree, ok := tree.GetPath([]string{sec}).(*toml.Tree)
		if !ok {
			return nil, nberr.NewConfigError(sec, "expected a table of target names to settings", "")
		}

		for _, name := range sortedKeys(secTree) {
			settingsTree, ok := secTree.GetPath([]string{name}).(*toml.Tree)
			if !ok {
				return nil, nberr.NewConfigError(name, "expected a table of settings", "")
			}
			out[sec] = append(out[sec], Declaration{
				Section:  sec,
				Name:     name,
				Settings: settingsTree.ToMap(),
			})
		}
	}
	return out, nil
}

// sortedKeys returns the keys of tree in the order they appear in the file.
// Inline tables carry no position and sort after positioned keys, by name.
func sortedKeys(tree *toml.Tree) []string {
	keys := tree.Keys()
	sort.SliceStable(keys, func(i, j int) bool {
		pi := tree.GetPositionPath([]string{keys[i]})
		pj := tree.GetPositionPath([]string{keys[j]})
		if pi.Invalid() != pj.Invalid() {
			return pj.Invalid()
		}
		if pi.Line != pj.Line {
			return pi.Line < pj.Line
		}
		if pi.Col != pj.Col {
			return pi.Col < pj.Col
		}
		return keys[i] < keys[j]
	})
	return keys
}
