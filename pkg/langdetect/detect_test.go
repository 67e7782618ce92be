package langdetect_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/grim/pkg/langdetect"
)

func TestDetect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		content  string
		expected string
	}{
		{name: "empty", content: "", expected: "text"},
		{name: "blank", content: "  \n\t", expected: "text"},
		{name: "shebang bash", content: "#!/bin/bash\necho hello", expected: "bash"},
		{name: "shebang python", content: "#!/usr/bin/env python3\nprint('hello')", expected: "python"},
		{name: "go code", content: "package main\n\nfunc main() {}\n", expected: "go"},
		{name: "latex environment", content: "\\begin{align}\na &= b\n\\end{align}", expected: "tex"},
		{name: "python code", content: "def foo():\n    pass\n", expected: "python"},
		{name: "javascript code", content: "const x = () => 42;\nconsole.log(x());", expected: "javascript"},
		{name: "json object", content: `{"key": "value", "number": 123}`, expected: "json"},
		{name: "yaml content", content: "key: value\nother: 123\nlist:\n  - item1", expected: "yaml"},
		{name: "rust code", content: "fn main() {\n    println!(\"hi\");\n}", expected: "rust"},
		{name: "sql", content: "select * from notes;", expected: "sql"},
		{name: "html", content: "<!DOCTYPE html>\n<html></html>", expected: "html"},
		{name: "dockerfile", content: "FROM golang:1.25\nRUN go build", expected: "dockerfile"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, langdetect.Detect([]byte(tt.content)))
		})
	}
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "python", langdetect.Normalize("py"))
	assert.Equal(t, "go", langdetect.Normalize("Go"))
	assert.Equal(t, "bash", langdetect.Normalize("sh"))
	assert.Equal(t, "mermaidish", langdetect.Normalize("MermaidISH"))
}

func TestLabelFor(t *testing.T) {
	t.Parallel()

	assert.Equal(t, langdetect.Label{Language: "python"}, langdetect.LabelFor("py", []byte("x")))
	assert.Equal(t,
		langdetect.Label{Language: "go", Detected: true},
		langdetect.LabelFor("", []byte("package main\n")))
	assert.Equal(t,
		langdetect.Label{Language: "text", Detected: true},
		langdetect.LabelFor("  ", nil))
}
