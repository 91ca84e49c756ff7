package buildenv

import (
	"fmt"

	"github.com/ozacod/nbuild/internal/pkg/target"
	"github.com/ozacod/nbuild/pkg/config"
	nberr "github.com/ozacod/nbuild/pkg/errors"
)

var sectionKinds = map[string]target.Kind{
	config.SectionStaticLibraries: target.StaticLibrary,
	config.SectionSharedLibraries: target.SharedLibrary,
	config.SectionExecutables:     target.Executable,
}

// Declare builds a target for every declaration and registers it, in order.
func (e *Env) Declare(decls []config.Declaration) error {
	for _, d := range decls {
		kind, ok := sectionKinds[d.Section]
		if !ok {
			return nberr.NewConfigError(d.Section, "unknown section", "")
		}
		t, err := target.New(kind, d.Name, target.Settings(d.Settings), e.TargetContext())
		if err != nil {
			return fmt.Errorf("%s %s: %w", kind.Label(), d.Name, err)
		}
		if err := e.Add(t); err != nil {
			return err
		}
	}
	return nil
}
