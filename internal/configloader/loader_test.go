package configloader

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yaklabco/grim/pkg/config"
	"github.com/yaklabco/grim/pkg/scanner"
)

func isolated(dir string) LoadOptions {
	return LoadOptions{
		WorkingDir:         dir,
		IgnoreSystemConfig: true,
		IgnoreUserConfig:   true,
		IgnoreEnv:          true,
	}
}

func writeProjectConfig(t *testing.T, dir, content string) string {
	t.Helper()

	path := filepath.Join(dir, ".grim.yml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	result, err := Load(context.Background(), isolated(t.TempDir()))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config == nil {
		t.Fatal("Load() returned nil config")
	}
	if result.Config.SkipCode() {
		t.Error("expected skip_code to default to false")
	}
	if !result.Config.FenceLabels() {
		t.Error("expected fence_labels to default to true")
	}
	if result.Config.Decorate.Flavor != config.FlavorGFM {
		t.Errorf("expected flavor %q, got %q", config.FlavorGFM, result.Config.Decorate.Flavor)
	}
}

func TestLoad_ProjectConfig(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeProjectConfig(t, tmpDir, `
decorate:
  skip_code: true
  viewport_lines: 30
matchers:
  GM001:
    enabled: false
`)

	result, err := Load(context.Background(), isolated(tmpDir))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if !result.Config.SkipCode() {
		t.Error("expected skip_code true from project config")
	}
	if result.Config.Decorate.ViewportLines != 30 {
		t.Errorf("expected viewport_lines 30, got %d", result.Config.Decorate.ViewportLines)
	}
	// Defaults not mentioned in the file survive the merge.
	if !result.Config.FenceLabels() {
		t.Error("expected fence_labels to keep its default")
	}

	gm001, ok := result.Config.Matchers["GM001"]
	if !ok {
		t.Fatal("GM001 not found in config")
	}
	if gm001.Enabled == nil || *gm001.Enabled {
		t.Error("expected GM001 to be disabled")
	}

	if len(result.LoadedFrom) != 1 {
		t.Errorf("expected 1 loaded file, got %d", len(result.LoadedFrom))
	}
}

func TestLoad_SubdirectoryFindsProjectConfig(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeProjectConfig(t, tmpDir, "log_level: debug\n")

	sub := filepath.Join(tmpDir, "notes", "math")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	result, err := Load(context.Background(), isolated(sub))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if result.Config.LogLevel != "debug" {
		t.Errorf("expected log_level debug, got %q", result.Config.LogLevel)
	}
}

func TestLoad_ExplicitConfig(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeProjectConfig(t, tmpDir, "log_level: warn\nmath:\n  strict: false\n")

	customPath := filepath.Join(tmpDir, "custom.yml")
	if err := os.WriteFile(customPath, []byte("math:\n  strict: true\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	opts := isolated(tmpDir)
	opts.ExplicitPath = customPath

	result, err := Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if !result.Config.StrictMath() {
		t.Error("expected explicit config to win over project config")
	}
	if result.Config.LogLevel != "warn" {
		t.Errorf("expected log_level from project config, got %q", result.Config.LogLevel)
	}
	if len(result.LoadedFrom) != 2 || result.LoadedFrom[1] != customPath {
		t.Errorf("unexpected load order: %v", result.LoadedFrom)
	}
}

func TestLoad_CLIOverrides(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeProjectConfig(t, tmpDir, "decorate:\n  skip_code: true\n")

	opts := isolated(tmpDir)
	opts.CLIConfig = &config.Config{
		Jobs:     8,
		Format:   config.FormatJSON,
		Decorate: config.DecorateConfig{SkipCode: config.Bool(false)},
	}

	result, err := Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config.SkipCode() {
		t.Error("expected CLI skip_code=false to override project config")
	}
	if result.Config.Jobs != 8 {
		t.Errorf("expected jobs 8 (CLI override), got %d", result.Config.Jobs)
	}
	if result.Config.Format != config.FormatJSON {
		t.Errorf("expected format json, got %q", result.Config.Format)
	}
}

func TestLoad_Env(t *testing.T) {
	// Not parallel because it modifies the environment.
	tmpDir := t.TempDir()
	writeProjectConfig(t, tmpDir, "decorate:\n  viewport_lines: 5\n")

	t.Setenv("GRIM_VIEWPORT_LINES", "12")
	t.Setenv("GRIM_DISABLE", "math, bold")

	opts := isolated(tmpDir)
	opts.IgnoreEnv = false
	opts.CLIConfig = &config.Config{Jobs: 2}

	result, err := Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config.Decorate.ViewportLines != 12 {
		t.Errorf("expected env to override file, got %d", result.Config.Decorate.ViewportLines)
	}
	want := []string{"GM005", "GM001"}
	if strings.Join(result.Config.DisableMatchers, ",") != strings.Join(want, ",") {
		t.Errorf("expected disabled %v, got %v", want, result.Config.DisableMatchers)
	}
}

func TestLoad_EnvMatcherSelection(t *testing.T) {
	t.Setenv("GRIM_ENABLE", "heading")
	t.Setenv("GRIM_MATCHER_FORMAT", "combined")
	t.Setenv("GRIM_MATH_STRICT", "1")

	opts := isolated(t.TempDir())
	opts.IgnoreEnv = false

	result, err := Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if strings.Join(result.Config.EnableMatchers, ",") != "GM002" {
		t.Errorf("expected GM002 enabled, got %v", result.Config.EnableMatchers)
	}
	if result.Config.MatcherFormat != config.MatcherFormatCombined {
		t.Errorf("expected combined matcher format, got %q", result.Config.MatcherFormat)
	}
	if !result.Config.StrictMath() {
		t.Error("expected strict math from GRIM_MATH_STRICT=1")
	}
}

func TestLoad_EnvInvalid(t *testing.T) {
	tests := []struct {
		name, key, value string
	}{
		{"boolean", "GRIM_SKIP_CODE", "sometimes"},
		{"integer", "GRIM_JOBS", "many"},
		{"format", "GRIM_FORMAT", "sarif"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			opts := isolated(t.TempDir())
			opts.IgnoreEnv = false

			_, err := Load(context.Background(), opts)
			if err == nil {
				t.Fatalf("expected error for %s=%s", tt.key, tt.value)
			}
		})
	}
}

func TestLoad_InvalidConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
	}{
		{"flavor", "decorate:\n  flavor: invalid-flavor\n"},
		{"log level", "log_level: loud\n"},
		{"viewport", "decorate:\n  viewport_lines: -1\n"},
		{"ignore glob", "ignore:\n  - \"[\"\n"},
		{"yaml", "decorate: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tmpDir := t.TempDir()
			writeProjectConfig(t, tmpDir, tt.content)

			if _, err := Load(context.Background(), isolated(tmpDir)); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestLoad_ContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := Load(ctx, isolated(t.TempDir())); err == nil {
		t.Fatal("expected context cancellation error")
	}
}

func TestLoader_NormalizesMatcherKeys(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeProjectConfig(t, tmpDir, `
matchers:
  emphasis:
    enabled: false
  math:
    priority: 0
`)

	result, err := Load(context.Background(), isolated(tmpDir))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if _, hasName := result.Config.Matchers["emphasis"]; hasName {
		t.Error("expected emphasis to be replaced by its ID")
	}
	gm001, ok := result.Config.Matchers["GM001"]
	if !ok || gm001.Enabled == nil || *gm001.Enabled {
		t.Error("expected GM001 disabled after normalization")
	}
	gm005, ok := result.Config.Matchers["GM005"]
	if !ok || gm005.Priority == nil || *gm005.Priority != 0 {
		t.Error("expected GM005 priority 0 after alias normalization")
	}
}

func TestLoader_WarnsDuplicateMatchers(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeProjectConfig(t, tmpDir, `
matchers:
  GM002:
    enabled: false
  heading:
    enabled: true
`)

	result, err := Load(context.Background(), isolated(tmpDir))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	foundWarning := false
	for _, w := range result.Warnings {
		if strings.Contains(w, "duplicate") && strings.Contains(w, "GM002") {
			foundWarning = true
			break
		}
	}
	if !foundWarning {
		t.Errorf("expected warning about duplicate matcher, got warnings: %v", result.Warnings)
	}

	// Which value wins depends on map iteration order.
	if gm002, ok := result.Config.Matchers["GM002"]; !ok || gm002.Enabled == nil {
		t.Error("expected GM002.Enabled to be set")
	}
}

func TestLoader_WarnsUnknownMatcher(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeProjectConfig(t, tmpDir, "matchers:\n  strikethrough:\n    enabled: true\n")

	result, err := Load(context.Background(), isolated(tmpDir))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(result.Warnings) != 1 || !strings.Contains(result.Warnings[0], "strikethrough") {
		t.Errorf("expected unknown matcher warning, got %v", result.Warnings)
	}
}

func TestMergeAll(t *testing.T) {
	t.Parallel()

	base := config.NewConfig()
	base.Matchers["GM001"] = config.MatcherConfig{Enabled: config.Bool(true), Priority: config.Int(1)}

	override := &config.Config{
		Matchers: map[string]config.MatcherConfig{"GM001": {Enabled: config.Bool(false)}},
		Ignore:   []string{"drafts/**"},
	}

	merged := MergeAll(base, override)
	gm001 := merged.Matchers["GM001"]
	if *gm001.Enabled || *gm001.Priority != 1 {
		t.Errorf("unexpected merged matcher config: enabled=%v priority=%v", *gm001.Enabled, *gm001.Priority)
	}
	if len(merged.Ignore) != 1 {
		t.Errorf("expected override ignore list, got %v", merged.Ignore)
	}
	if MergeAll() != nil {
		t.Error("expected nil for no configs")
	}
}

func TestListEnvVars(t *testing.T) {
	t.Parallel()

	vars := ListEnvVars()
	names := make(map[string]bool, len(vars))
	for _, v := range vars {
		if !strings.HasPrefix(v.Name, envVarPrefix) {
			t.Errorf("%s lacks the %s prefix", v.Name, envVarPrefix)
		}
		if v.Description == "" {
			t.Errorf("%s has no description", v.Name)
		}
		names[v.Name] = true
	}
	for _, want := range []string{"GRIM_SKIP_CODE", "GRIM_ENABLE", "GRIM_MATCHER_FORMAT"} {
		if !names[want] {
			t.Errorf("expected %s to be listed", want)
		}
	}

	if got := GetEnvVarName("math.strict"); got != "GRIM_MATH_STRICT" {
		t.Errorf("GetEnvVarName(math.strict) = %q", got)
	}
	if got := GetEnvVarName("nope"); got != "" {
		t.Errorf("GetEnvVarName(nope) = %q, want empty", got)
	}
}

func TestSplitList(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"a", "a"},
		{" a , ,b,", "a|b"},
		{",,,", ""},
	}
	for _, tt := range tests {
		if got := strings.Join(splitList(tt.in), "|"); got != tt.want {
			t.Errorf("splitList(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestLoad_ProjectJSONConfig(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, ".grim.json")
	if err := os.WriteFile(path, []byte(`{"math": {"strict": true}}`), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	result, err := Load(context.Background(), isolated(tmpDir))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if result.Paths.Project != path {
		t.Errorf("expected project config %s, got %q", path, result.Paths.Project)
	}
	if !result.Config.StrictMath() {
		t.Error("expected strict math from .grim.json")
	}
}

func TestFindProjectConfig_StopsAtVCSRoot(t *testing.T) {
	t.Parallel()

	outer := t.TempDir()
	writeProjectConfig(t, outer, "log_level: debug\n")
	repo := filepath.Join(outer, "repo")
	nested := filepath.Join(repo, "docs")
	if err := os.MkdirAll(filepath.Join(repo, ".git"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	found, err := FindProjectConfig(context.Background(), nested)
	if err != nil {
		t.Fatalf("FindProjectConfig() error = %v", err)
	}
	if found != "" {
		t.Errorf("expected the search to stop at the repository root, found %s", found)
	}
}

func TestValidateWith_CollectsEveryError(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.LogLevel = "loud"
	cfg.Format = "sarif"
	cfg.Jobs = -1
	cfg.Ignore = []string{"[", "docs/**"}
	cfg.EnableMatchers = []string{"zeta"}
	cfg.Matchers["beta"] = config.MatcherConfig{}
	cfg.Matchers["alpha"] = config.MatcherConfig{}

	result := ValidateWith(cfg, scanner.NewRegistry())
	if result.Valid() {
		t.Fatal("expected validation errors")
	}

	var fields []string
	for _, e := range result.Errors {
		fields = append(fields, e.Field)
	}
	if got := strings.Join(fields, ","); got != "log_level,format,jobs,ignore[0]" {
		t.Errorf("error fields = %s", got)
	}

	err := result.Err()
	if !strings.Contains(err.Error(), "format: invalid value \"sarif\"") ||
		!strings.Contains(err.Error(), "jobs: must be >= 0") {
		t.Errorf("joined error missing findings: %v", err)
	}

	var warned []string
	for _, w := range result.Warnings {
		warned = append(warned, w.Value.(string))
	}
	if got := strings.Join(warned, ","); got != "alpha,beta,zeta" {
		t.Errorf("warnings = %s, want sorted matcher keys then list entries", got)
	}
}

func TestValidateWith_NilAndDefaults(t *testing.T) {
	t.Parallel()

	if !ValidateWith(nil, scanner.NewRegistry()).Valid() {
		t.Error("nil config should be valid")
	}
	result := ValidateWith(config.NewConfig(), scanner.NewRegistry())
	if err := result.Err(); err != nil {
		t.Errorf("defaults should validate, got %v", err)
	}
}
