package buildenv

import (
	"strings"

	"github.com/kballard/go-shellquote"
	"github.com/ozacod/nbuild/internal/pkg/ninja"
	"github.com/ozacod/nbuild/internal/pkg/target"
)

// Rule names used by build statements.
const (
	RuleCC         = target.ToolCC
	RuleCXX        = target.ToolCXX
	RuleAR         = "ar"
	RuleLink       = "link"
	RuleCustom     = "CUSTOM_COMMAND"
	RuleRegenerate = "REGENERATE_BUILD"
	RulePhony      = "phony"
)

// Rule is a Ninja rule declaration.
type Rule struct {
	Name        string
	Command     string
	Description string
	Depfile     string
	Deps        string
	Pool        string
	Generator   bool
	Restat      bool
}

// Vars returns the rule bindings in a fixed order.
func (r Rule) Vars() []ninja.Var {
	vars := []ninja.Var{{Name: "command", Value: r.Command}}
	if r.Depfile != "" {
		vars = append(vars, ninja.Var{Name: "depfile", Value: r.Depfile})
	}
	if r.Deps != "" {
		vars = append(vars, ninja.Var{Name: "deps", Value: r.Deps})
	}
	if r.Description != "" {
		vars = append(vars, ninja.Var{Name: "description", Value: r.Description})
	}
	if r.Pool != "" {
		vars = append(vars, ninja.Var{Name: "pool", Value: r.Pool})
	}
	if r.Generator {
		vars = append(vars, ninja.Var{Name: "generator", Value: "1"})
	}
	if r.Restat {
		vars = append(vars, ninja.Var{Name: "restat", Value: "1"})
	}
	return vars
}

func gccCompileRule(name, compiler, flags, label string) Rule {
	return Rule{
		Name:        name,
		Command:     compiler + " -MMD -MF $out.d $defines $includes $cppflags " + flags + " -c $in -o $out",
		Depfile:     "$out.d",
		Deps:        "gcc",
		Description: label + " $out",
	}
}

// CoreRules returns the compile, archive and link rules of the family.
func (e *Env) CoreRules() []Rule {
	return e.strategy.coreRules()
}

// UtilityRules returns the custom command and regeneration rules.
func (e *Env) UtilityRules() []Rule {
	return []Rule{
		{
			Name:        RuleCustom,
			Command:     "$cmd",
			Description: "$desc",
			Restat:      true,
		},
		{
			Name:        RuleRegenerate,
			Command:     e.RegenerateCommand(),
			Description: "Regenerating build files.",
			Pool:        "console",
			Generator:   true,
		},
	}
}

// Rules returns every rule of the build file.
func (e *Env) Rules() []Rule {
	return append(e.CoreRules(), e.UtilityRules()...)
}

// DefaultGenerator is the command used when Options.Generator is empty.
var DefaultGenerator = []string{"nbuild", "configure"}

// RegenerateCommand is the shell command that re-runs the generator from the
// project root. The shell syntax follows the host platform, which is where
// ninja runs. The result is escaped for use as a Ninja value.
func (e *Env) RegenerateCommand() string {
	argv := e.opts.Generator
	if len(argv) == 0 {
		argv = DefaultGenerator
	}

	var cmd string
	if e.host.IsWindows() {
		cmd = `cmd /c "cd /d ` + windowsQuote(e.rootDir) + " && " + joinWindows(argv) + `"`
	} else {
		cmd = "cd " + shellquote.Join(e.rootDir) + " && " + shellquote.Join(argv...)
	}
	return ninja.Escape(cmd)
}

func joinWindows(argv []string) string {
	quoted := make([]string, len(argv))
	for i, a := range argv {
		quoted[i] = windowsQuote(a)
	}
	return strings.Join(quoted, " ")
}

// windowsQuote double-quotes an argument for cmd.exe when it contains
// characters that would split or reinterpret it.
func windowsQuote(s string) string {
	if s != "" && !strings.ContainsAny(s, " \t&|<>^\"") {
		return s
	}
	return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
}

// ShellArg quotes arg for the command line ninja runs on the host and escapes
// the result for a Ninja value. POSIX hosts run commands through /bin/sh;
// Windows hosts parse them with the C runtime rules. Plain flags come back
// unchanged.
func (e *Env) ShellArg(arg string) string {
	if e.host.IsWindows() {
		return ninja.Escape(windowsQuote(arg))
	}
	return ninja.Escape(shellquote.Join(arg))
}

// ShellArgs applies ShellArg to every element of args.
func (e *Env) ShellArgs(args []string) []string {
	if len(args) == 0 {
		return nil
	}
	quoted := make([]string, len(args))
	for i, a := range args {
		quoted[i] = e.ShellArg(a)
	}
	return quoted
}

// CompileVars returns the per-edge variables of a compile step of t. Each
// value extends the matching global variable.
func (e *Env) CompileVars(t target.Target) []ninja.Var {
	includes := make([]string, 0, len(t.Includes()))
	for _, dir := range t.Includes() {
		includes = append(includes, e.ShellArg("-I"+e.RelToBuildDir(dir)))
	}

	vars := []ninja.Var{
		{Name: "defines", Value: withGlobal("$gbl_defines", t.Defines())},
		{Name: "includes", Value: withGlobal("$gbl_includes", includes)},
		{Name: "cppflags", Value: withGlobal("$gbl_cppflags", t.CPPFlags())},
	}
	switch t.Tool() {
	case target.ToolCC:
		vars = append(vars, ninja.Var{Name: "cflags", Value: withGlobal("$gbl_cflags", t.CompileFlags(target.ToolCC))})
	case target.ToolCXX:
		vars = append(vars, ninja.Var{Name: "cxxflags", Value: withGlobal("$gbl_cxxflags", t.CompileFlags(target.ToolCXX))})
	}
	return vars
}

func withGlobal(global string, local []string) string {
	if len(local) == 0 {
		return global
	}
	return global + " " + strings.Join(local, " ")
}

// JoinFlags joins flags into a single Ninja value.
func JoinFlags(flags []string) string {
	return strings.Join(flags, " ")
}
