// Copyright 2014 Google Inc. All rights reserved.
// Modifications copyright 2025 The nbuild Authors.
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

// Derived from github.com/google/blueprint ninja_writer.go.

// Package ninja writes Ninja build file syntax.
package ninja

import (
	"io"
	"strings"
	"unicode"
)

const indentWidth = 4

// DefaultLineWidth is the column at which long statements are wrapped.
const DefaultLineWidth = 80

var indentString = strings.Repeat(" ", indentWidth*2)

// Var is a single name = value binding. Bindings are written in slice order.
type Var struct {
	Name  string
	Value string
}

// Build describes one build statement. Output and input paths are written
// as given; use EscapePath for paths that may contain spaces, colons or '$'.
type Build struct {
	Comment         string
	Rule            string
	Outputs         []string
	ImplicitOutputs []string
	Inputs          []string
	Implicit        []string
	OrderOnly       []string
	Variables       []Var
}

// Writer serializes Ninja statements to an underlying writer. The first
// write error is sticky and returned by every later call.
type Writer struct {
	writer io.StringWriter
	width  int

	justDidBlankLine bool
	err              error
}

type stringWriter struct {
	io.Writer
}

func (s stringWriter) WriteString(str string) (int, error) {
	return s.Write([]byte(str))
}

// NewWriter returns a Writer wrapping at DefaultLineWidth.
func NewWriter(w io.Writer) *Writer {
	return NewWriterWidth(w, DefaultLineWidth)
}

// NewWriterWidth returns a Writer wrapping lines at width columns. A width of
// zero or less disables wrapping.
func NewWriterWidth(w io.Writer, width int) *Writer {
	sw, ok := w.(io.StringWriter)
	if !ok {
		sw = stringWriter{w}
	}
	return &Writer{writer: sw, width: width}
}

func (n *Writer) write(s string) {
	if n.err != nil {
		return
	}
	_, n.err = n.writer.WriteString(s)
}

// Comment writes comment as one or more "# " lines, splitting long lines at
// whitespace.
func (n *Writer) Comment(comment string) error {
	n.justDidBlankLine = false

	const lineHeaderLen = len("# ")
	maxLineLen := n.width - lineHeaderLen

	var lineStart, lastSplitPoint int
	for i, r := range comment {
		if unicode.IsSpace(r) {
			lastSplitPoint = i + 1
		}

		var line string
		var writeLine bool
		switch {
		case r == '\n':
			line = strings.TrimRightFunc(comment[lineStart:i], unicode.IsSpace)
			writeLine = true
		case n.width > 0 && i-lineStart > maxLineLen && lastSplitPoint > lineStart:
			line = strings.TrimSpace(comment[lineStart:lastSplitPoint])
			writeLine = true
		}

		if writeLine {
			n.write(strings.TrimSpace("# "+line) + "\n")
			lineStart = lastSplitPoint
		}
	}

	if lineStart < len(comment) {
		n.write("# " + strings.TrimSpace(comment[lineStart:]) + "\n")
	}
	return n.err
}

// Variable writes a top-level binding.
func (n *Writer) Variable(name, value string) error {
	n.justDidBlankLine = false
	n.write(name + " = " + value + "\n")
	return n.err
}

// Rule writes a rule declaration followed by its indented bindings.
func (n *Writer) Rule(name string, vars ...Var) error {
	n.justDidBlankLine = false
	n.write("rule " + name + "\n")
	for _, v := range vars {
		n.scopedVariable(v)
	}
	return n.err
}

func (n *Writer) scopedVariable(v Var) {
	n.write(indentString[:indentWidth] + v.Name + " = " + v.Value + "\n")
}

// Build writes a build statement followed by its indented bindings.
func (n *Writer) Build(b Build) error {
	n.justDidBlankLine = false

	if b.Comment != "" {
		if err := n.Comment(b.Comment); err != nil {
			return err
		}
	}

	const lineWrapLen = len(" $")
	wrapper := wrappingWriter{Writer: n, maxLineLen: n.width - lineWrapLen}

	wrapper.WriteString("build")
	for _, out := range b.Outputs {
		wrapper.WriteStringWithSpace(out)
	}
	if len(b.ImplicitOutputs) > 0 {
		wrapper.WriteStringWithSpace("|")
		for _, out := range b.ImplicitOutputs {
			wrapper.WriteStringWithSpace(out)
		}
	}
	wrapper.WriteString(":")
	wrapper.WriteStringWithSpace(b.Rule)
	for _, in := range b.Inputs {
		wrapper.WriteStringWithSpace(in)
	}
	if len(b.Implicit) > 0 {
		wrapper.WriteStringWithSpace("|")
		for _, dep := range b.Implicit {
			wrapper.WriteStringWithSpace(dep)
		}
	}
	if len(b.OrderOnly) > 0 {
		wrapper.WriteStringWithSpace("||")
		for _, dep := range b.OrderOnly {
			wrapper.WriteStringWithSpace(dep)
		}
	}
	if err := wrapper.Flush(); err != nil {
		return err
	}

	for _, v := range b.Variables {
		n.scopedVariable(v)
	}
	return n.err
}

// Default writes a default statement.
func (n *Writer) Default(targets ...string) error {
	n.justDidBlankLine = false

	const lineWrapLen = len(" $")
	wrapper := wrappingWriter{Writer: n, maxLineLen: n.width - lineWrapLen}
	wrapper.WriteString("default")
	for _, t := range targets {
		wrapper.WriteStringWithSpace(t)
	}
	return wrapper.Flush()
}

// BlankLine writes an empty line unless the previous statement was one.
func (n *Writer) BlankLine() error {
	if !n.justDidBlankLine {
		n.justDidBlankLine = true
		n.write("\n")
	}
	return n.err
}

// Err returns the first write error, if any.
func (n *Writer) Err() error {
	return n.err
}

type wrappingWriter struct {
	*Writer
	maxLineLen int
	writtenLen int
}

func (w *wrappingWriter) writeString(s string, space bool) {
	if w.err != nil {
		return
	}

	spaceLen := 0
	if space {
		spaceLen = 1
	}

	if w.width > 0 && w.writtenLen > 0 && w.writtenLen+len(s)+spaceLen > w.maxLineLen {
		w.write(" $\n" + indentString)
		w.writtenLen = len(indentString)
		s = strings.TrimLeftFunc(s, unicode.IsSpace)
	} else if space {
		w.write(" ")
		w.writtenLen++
	}

	w.write(s)
	w.writtenLen += len(s)
}

func (w *wrappingWriter) WriteString(s string) {
	w.writeString(s, false)
}

func (w *wrappingWriter) WriteStringWithSpace(s string) {
	w.writeString(s, true)
}

func (w *wrappingWriter) Flush() error {
	w.write("\n")
	return w.err
}

var pathEscaper = strings.NewReplacer("$", "$$", " ", "$ ", ":", "$:", "\n", "$\n")

// EscapePath escapes a path for use in the outputs or inputs of a build
// statement.
func EscapePath(p string) string {
	return pathEscaper.Replace(p)
}

// Escape escapes '$' in a literal variable value.
func Escape(s string) string {
	return strings.ReplaceAll(s, "$", "$$")
}
