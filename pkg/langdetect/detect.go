// Package langdetect labels fenced code blocks with a language.
// Info strings are normalized through go-enry's alias table; blocks without
// one are classified from their content.
package langdetect

import (
	"bytes"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Language constants for common detected languages.
const (
	LangText = "text"

	langGo         = "go"
	langPython     = "python"
	langJavaScript = "javascript"
	langJSON       = "json"
	langYAML       = "yaml"
	langHTML       = "html"
	langSQL        = "sql"
	langRust       = "rust"
	langDockerfile = "dockerfile"
	langBash       = "bash"
	langTeX        = "tex"
)

// Label is the language shown for a code block.
type Label struct {
	// Language is the lowercase fence tag, e.g. "go" or "text".
	Language string

	// Detected is true when Language was inferred from the content
	// rather than taken from the info string.
	Detected bool
}

// LabelFor returns the label for a block with the given info language and body.
// An explicit info language always wins over detection.
func LabelFor(info string, body []byte) Label {
	if info = strings.TrimSpace(info); info != "" {
		return Label{Language: Normalize(info)}
	}
	return Label{Language: Detect(body), Detected: true}
}

// Normalize maps an info-string language to its canonical fence tag
// using go-enry aliases ("py" -> "python", "sh" -> "bash").
// Unknown names are lowercased and returned as is.
func Normalize(name string) string {
	if lang, ok := enry.GetLanguageByAlias(name); ok {
		return normalize(lang)
	}
	return strings.ToLower(name)
}

// detector returns a language tag or "" when the content does not match.
type detector func(content []byte, text string) string

// detectors run in order of specificity.
var detectors = []detector{
	detectGo,
	detectTeX,
	detectPython,
	detectHTML,
	detectJSON,
	detectDockerfile,
	detectSQL,
	detectRust,
	detectJavaScript,
	detectYAML,
}

// classifierCandidates limits the go-enry classifier to common fence languages.
var classifierCandidates = []string{
	"Go", "Python", "Shell", "JavaScript", "TypeScript",
	"Ruby", "Rust", "Java", "C", "C++", "SQL", "JSON",
	"YAML", "HTML", "CSS", "Markdown", "Dockerfile", "TeX",
}

// Detect returns the detected language for code content.
// Returns "text" if detection fails or confidence is low.
func Detect(content []byte) string {
	if len(bytes.TrimSpace(content)) == 0 {
		return LangText
	}

	// Shebangs are the most reliable signal.
	if lang, safe := enry.GetLanguageByShebang(content); safe {
		return normalize(lang)
	}

	text := string(content)
	for _, detect := range detectors {
		if lang := detect(content, text); lang != "" {
			return lang
		}
	}

	// Only trust the classifier when it is confident.
	if lang, safe := enry.GetLanguageByClassifier(content, classifierCandidates); safe && lang != "" {
		return normalize(lang)
	}

	return LangText
}

func detectGo(content []byte, _ string) string {
	if bytes.HasPrefix(bytes.TrimSpace(content), []byte("package ")) {
		return langGo
	}
	return ""
}

// detectTeX catches LaTeX documents and environments, common in math notes.
func detectTeX(_ []byte, text string) string {
	for _, marker := range []string{`\documentclass`, `\usepackage`, `\begin{`, `\section{`} {
		if strings.Contains(text, marker) {
			return langTeX
		}
	}
	return ""
}

func detectPython(_ []byte, text string) string {
	// def/class definitions with colon.
	if strings.Contains(text, "def ") && strings.Contains(text, "):") {
		return langPython
	}
	// Python import statements (not Go which uses "import (").
	if strings.Contains(text, "import ") && !strings.Contains(text, "import (") {
		if strings.Contains(text, "from ") || strings.HasPrefix(strings.TrimSpace(text), "import ") {
			return langPython
		}
	}
	if strings.Contains(text, "__name__") || strings.Contains(text, "__main__") {
		return langPython
	}
	return ""
}

func detectHTML(content []byte, _ string) string {
	lower := bytes.ToLower(bytes.TrimSpace(content))
	for _, marker := range []string{"<!doctype html", "<html", "<head>", "<body>"} {
		if bytes.Contains(lower, []byte(marker)) {
			return langHTML
		}
	}
	return ""
}

func detectJSON(content []byte, _ string) string {
	trimmed := bytes.TrimSpace(content)
	if (bytes.HasPrefix(trimmed, []byte("{")) || bytes.HasPrefix(trimmed, []byte("["))) &&
		bytes.Contains(trimmed, []byte(`"`)) {
		return langJSON
	}
	return ""
}

func detectDockerfile(content []byte, _ string) string {
	if bytes.HasPrefix(bytes.TrimSpace(content), []byte("FROM ")) ||
		(bytes.Contains(content, []byte("\nFROM ")) && bytes.Contains(content, []byte("\nRUN "))) ||
		(bytes.Contains(content, []byte("WORKDIR ")) && bytes.Contains(content, []byte("COPY "))) {
		return langDockerfile
	}
	return ""
}

func detectSQL(_ []byte, text string) string {
	upper := strings.TrimSpace(strings.ToUpper(text))
	for _, verb := range []string{"SELECT ", "INSERT ", "UPDATE ", "DELETE ", "CREATE "} {
		if strings.HasPrefix(upper, verb) {
			return langSQL
		}
	}
	return ""
}

func detectRust(_ []byte, text string) string {
	if strings.Contains(text, "fn main()") ||
		strings.Contains(text, "println!") ||
		strings.Contains(text, "let mut ") {
		return langRust
	}
	return ""
}

func detectJavaScript(_ []byte, text string) string {
	if strings.Contains(text, "=>") ||
		strings.Contains(text, "const ") ||
		strings.Contains(text, "let ") ||
		strings.Contains(text, "console.log") {
		return langJavaScript
	}
	return ""
}

// detectYAML counts key: value pairs and root-level list items.
func detectYAML(content []byte, _ string) string {
	keys := 0
	for _, line := range bytes.Split(content, []byte("\n")) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 || bytes.HasPrefix(line, []byte("#")) {
			continue
		}
		if bytes.Contains(line, []byte(": ")) &&
			!bytes.Contains(line, []byte("(")) &&
			!bytes.Contains(line, []byte("{")) &&
			!bytes.HasPrefix(line, []byte(`"`)) {
			keys++
		}
		if bytes.HasPrefix(line, []byte("- ")) {
			keys++
		}
	}

	if keys >= 2 {
		return langYAML
	}
	return ""
}

// normalize converts go-enry language names to fence tags.
func normalize(lang string) string {
	if lang == "Shell" {
		return langBash
	}
	return strings.ToLower(lang)
}
