package reporter_test

import (
	"errors"

	"github.com/yaklabco/grim/pkg/compositor"
	"github.com/yaklabco/grim/pkg/document"
	"github.com/yaklabco/grim/pkg/runner"
)

func outcome(path, text string) runner.FileOutcome {
	doc := document.FromString(1, text)
	return runner.FileOutcome{
		Path:     path,
		Document: doc,
		Result:   compositor.New().Rebuild(compositor.State{Doc: doc}),
	}
}

// createTestResult returns two decorated files (4 decorations, 1 math
// fallback), one plain file and one failed file.
func createTestResult() *runner.Result {
	return runner.NewResult(
		outcome("/work/a.md", "# Title\n\n**bold** $\\nope$\n"),
		outcome("/work/b.md", "```go\nx\n```\n"),
		outcome("/work/plain.md", "nothing here\n"),
		runner.FileOutcome{Path: "/work/gone.md", Error: errors.New("file not found")},
	)
}
