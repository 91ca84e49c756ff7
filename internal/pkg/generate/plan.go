// Package generate turns a sealed build environment into a Ninja build plan
// and writes it out.
package generate

import (
	"fmt"

	"github.com/ozacod/nbuild/internal/pkg/buildenv"
	"github.com/ozacod/nbuild/internal/pkg/ninja"
	"github.com/ozacod/nbuild/internal/pkg/target"
	nberr "github.com/ozacod/nbuild/pkg/errors"
)

// Edge is one build statement of the plan.
type Edge struct {
	Outputs         []string
	ImplicitOutputs []string
	Rule            string
	Inputs          []string
	Implicit        []string
	Variables       []ninja.Var
}

// Section is a titled group of edges.
type Section struct {
	Title   string
	Edges   []Edge
	Default []string
}

// Plan is the complete, serializable content of a build file.
type Plan struct {
	RequiredVersion string
	BuildType       string
	Platform        string

	// Globals are written in groups separated by blank lines.
	Globals [][]ninja.Var

	CoreRules    []buildenv.Rule
	UtilityRules []buildenv.Rule

	// Targets holds one section per target in declaration order.
	Targets []Section
	// Utility holds the clean, targets, all and regeneration sections.
	Utility []Section
}

// Emit seals env and builds the plan: targets in declaration order, compile
// edges in source order, then the archive or link edge of the target.
func Emit(env *buildenv.Env) (*Plan, error) {
	opts := env.Options()
	if err := ValidateNinjaVersion(opts.NinjaVersion); err != nil {
		return nil, err
	}
	env.Seal()

	plan := &Plan{
		BuildType:    env.BuildType().String(),
		Platform:     env.Platform().Name(),
		Globals:      globals(env),
		CoreRules:    env.CoreRules(),
		UtilityRules: env.UtilityRules(),
	}

	outputs := newOutputSet()
	var all []string
	needImplicitOutputs := false

	for _, t := range env.Targets() {
		sec := Section{Title: "Building " + t.String()}

		compileVars := env.CompileVars(t)
		objects := env.ObjectPaths(t)
		for i, src := range t.Sources() {
			if err := outputs.claim(objects[i], t.Name(), src); err != nil {
				return nil, err
			}
			sec.Edges = append(sec.Edges, Edge{
				Outputs:   []string{ninja.EscapePath(objects[i])},
				Rule:      t.Tool(),
				Inputs:    []string{ninja.EscapePath(env.RelToBuildDir(src))},
				Variables: compileVars,
			})
		}

		edge, err := artifactEdge(env, t, objects)
		if err != nil {
			return nil, err
		}
		out := env.OutputPath(t)
		if err := outputs.claim(out, t.Name(), ""); err != nil {
			return nil, err
		}
		if imp := env.ImportPath(t); imp != "" {
			if err := outputs.claim(imp, t.Name(), ""); err != nil {
				return nil, err
			}
			needImplicitOutputs = true
		}
		sec.Edges = append(sec.Edges, edge)
		plan.Targets = append(plan.Targets, sec)
		all = append(all, edge.Outputs...)
	}

	floor := ""
	if needImplicitOutputs {
		floor = implicitOutputsVersion
	}
	plan.RequiredVersion = requiredVersion(opts.NinjaVersion, floor)
	plan.Utility = utilitySections(env, all)
	return plan, nil
}

func artifactEdge(env *buildenv.Env, t target.Target, objects []string) (Edge, error) {
	inputs := escapeAll(objects)
	out := []string{ninja.EscapePath(env.OutputPath(t))}

	if t.Kind() == target.StaticLibrary {
		// Archives do not link, so libraries they name are not inputs.
		if _, err := env.Dependencies(t); err != nil {
			return Edge{}, err
		}
		return Edge{Outputs: out, Rule: buildenv.RuleAR, Inputs: inputs}, nil
	}

	deps, err := env.Dependencies(t)
	if err != nil {
		return Edge{}, err
	}
	args, err := env.LinkFlags(t)
	if err != nil {
		return Edge{}, err
	}

	edge := Edge{
		Outputs:  out,
		Rule:     buildenv.RuleLink,
		Inputs:   inputs,
		Implicit: escapeAll(deps),
	}
	if imp := env.ImportPath(t); imp != "" {
		edge.ImplicitOutputs = []string{ninja.EscapePath(imp)}
	}
	if len(args.LDFlags) > 0 {
		edge.Variables = append(edge.Variables, ninja.Var{Name: "ldflags", Value: buildenv.JoinFlags(args.LDFlags)})
	}
	if len(args.Libs) > 0 {
		edge.Variables = append(edge.Variables, ninja.Var{Name: "libs", Value: buildenv.JoinFlags(args.Libs)})
	}
	return edge, nil
}

func globals(env *buildenv.Env) [][]ninja.Var {
	prof := env.Profile()
	e := env.Environment()
	tools := env.Tools()

	// Environment flags were split with shell rules; quote each word again
	// so arguments with spaces stay whole on the host command line.
	flags := func(words []string) string {
		return buildenv.JoinFlags(env.ShellArgs(words))
	}

	return [][]ninja.Var{
		{
			{Name: "gbl_defines", Value: flags(prof.Defines())},
			{Name: "gbl_includes", Value: ""},
			{Name: "gbl_cppflags", Value: flags(e.CPPFlags)},
			{Name: "gbl_cflags", Value: flags(prof.CFlags(e))},
			{Name: "gbl_cxxflags", Value: flags(prof.CXXFlags(e))},
		},
		{
			{Name: "gbl_libs", Value: flags(e.LibFlags)},
			{Name: "gbl_ldflags", Value: flags(prof.LDFlags(e))},
		},
		{
			{Name: "cc", Value: tools.CC},
			{Name: "cxx", Value: tools.CXX},
			{Name: "ar", Value: tools.AR},
			{Name: "ld", Value: tools.LD},
		},
	}
}

func utilitySections(env *buildenv.Env, all []string) []Section {
	regen := Edge{
		Outputs: []string{buildenv.BuildFile},
		Rule:    buildenv.RuleRegenerate,
	}
	if tf := env.Options().TargetsFile; tf != "" {
		regen.Inputs = []string{ninja.EscapePath(env.RelToBuildDir(tf))}
	}

	return []Section{
		{
			Title: "Clean all files",
			Edges: []Edge{{
				Outputs: []string{"clean"},
				Rule:    buildenv.RuleCustom,
				Variables: []ninja.Var{
					{Name: "cmd", Value: "ninja -t clean"},
					{Name: "desc", Value: "Cleaning...."},
				},
			}},
		},
		{
			Title: "Print all primary targets",
			Edges: []Edge{{
				Outputs: []string{"targets"},
				Rule:    buildenv.RuleCustom,
				Variables: []ninja.Var{
					{Name: "cmd", Value: "ninja -t targets depth 2"},
					{Name: "desc", Value: "All primary targets:"},
				},
			}},
		},
		{
			Title:   "Build All",
			Edges:   []Edge{{Outputs: []string{"all"}, Rule: buildenv.RulePhony, Inputs: all}},
			Default: []string{"all"},
		},
		{
			Title: "Regenerate the build file",
			Edges: []Edge{regen},
		},
	}
}

func escapeAll(paths []string) []string {
	if len(paths) == 0 {
		return nil
	}
	out := make([]string, len(paths))
	for i, p := range paths {
		out[i] = ninja.EscapePath(p)
	}
	return out
}

type owner struct {
	target string
	source string
}

// outputSet detects two edges producing the same file, which happens when
// distinct sources flatten to one object name.
type outputSet map[string]owner

func newOutputSet() outputSet { return make(outputSet) }

func (s outputSet) claim(out, targetName, source string) error {
	prev, ok := s[out]
	if !ok {
		s[out] = owner{target: targetName, source: source}
		return nil
	}

	what := fmt.Sprintf("target %q", prev.target)
	if prev.source != "" {
		what = fmt.Sprintf("source %q of target %q", prev.source, prev.target)
	}
	by := "output"
	if source != "" {
		by = fmt.Sprintf("object for source %q", source)
	}
	return nberr.NewConfigError(targetName,
		fmt.Sprintf("%s %q is already produced by %s", by, out, what),
		"rename one of the files; objects are flattened into a single directory")
}
