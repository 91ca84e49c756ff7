package generate

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ozacod/nbuild/internal/pkg/buildenv"
	"github.com/ozacod/nbuild/internal/pkg/ninja"
	nberr "github.com/ozacod/nbuild/pkg/errors"
)

var rulerLine = strings.Repeat("-", 78)

func banner(n *ninja.Writer, lines ...string) {
	n.Comment(rulerLine)
	for _, l := range lines {
		n.Comment(l)
	}
	n.Comment(rulerLine)
}

// WritePlan serializes plan as Ninja syntax.
func WritePlan(w io.Writer, plan *Plan) error {
	n := ninja.NewWriter(w)

	banner(n, "Project build file.", "It is generated by nbuild.")
	n.BlankLine()

	banner(n, "Minimal version of Ninja required by this file")
	n.Variable("ninja_required_version", plan.RequiredVersion)
	n.BlankLine()

	banner(n, "Configuration: "+plan.BuildType, "Platform:      "+plan.Platform)
	n.BlankLine()

	banner(n, "Variables")
	for _, group := range plan.Globals {
		for _, v := range group {
			n.Variable(v.Name, v.Value)
		}
		n.BlankLine()
	}

	banner(n, "Core rules")
	n.BlankLine()
	writeRules(n, plan.CoreRules)

	banner(n, "Other rules")
	n.BlankLine()
	writeRules(n, plan.UtilityRules)

	for _, sec := range plan.Targets {
		writeSection(n, sec)
	}
	for _, sec := range plan.Utility {
		writeSection(n, sec)
	}
	return n.Err()
}

func writeRules(n *ninja.Writer, rules []buildenv.Rule) {
	for _, r := range rules {
		n.Rule(r.Name, r.Vars()...)
		n.BlankLine()
	}
}

func writeSection(n *ninja.Writer, sec Section) {
	banner(n, sec.Title)
	for _, e := range sec.Edges {
		n.Build(ninja.Build{
			Rule:            e.Rule,
			Outputs:         e.Outputs,
			ImplicitOutputs: e.ImplicitOutputs,
			Inputs:          e.Inputs,
			Implicit:        e.Implicit,
			Variables:       e.Variables,
		})
		n.BlankLine()
	}
	if len(sec.Default) > 0 {
		n.Default(sec.Default...)
		n.BlankLine()
	}
}

// WriteFile writes plan to path. The content goes to a temporary file in the
// same directory first and is renamed into place only when complete, so an
// existing build file is never left truncated.
func WriteFile(path string, plan *Plan) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nberr.NewBuildError("write", "cannot create build directory "+dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return nberr.NewBuildError("write", "cannot create temporary file in "+dir, err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	bw := bufio.NewWriter(tmp)
	if err := WritePlan(bw, plan); err != nil {
		return nberr.NewBuildError("write", "cannot write build plan", err)
	}
	if err := bw.Flush(); err != nil {
		return nberr.NewBuildError("write", "cannot write build plan", err)
	}
	if err := tmp.Close(); err != nil {
		return nberr.NewBuildError("write", "cannot close "+tmp.Name(), err)
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return nberr.NewBuildError("write", "cannot set permissions on "+tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return nberr.NewBuildError("write", "cannot replace "+path, err)
	}
	return nil
}

// Generate emits the plan for env and writes it to the environment's build
// file path.
func Generate(env *buildenv.Env) (*Plan, error) {
	plan, err := Emit(env)
	if err != nil {
		return nil, err
	}
	if err := WriteFile(env.BuildFilePath(), plan); err != nil {
		return nil, err
	}
	return plan, nil
}
