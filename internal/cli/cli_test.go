package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/spacelayout/pkg/cache"
	"github.com/matzehuels/spacelayout/pkg/catalog"
	"github.com/matzehuels/spacelayout/pkg/layout"
)

const classroomTOML = `space_type = "aula"

[room]
length = 10
width = 8

[[items]]
item = "pupitre"
quantity = 20

[options]
include_instructor_zone = true
`

func quietCLI() *CLI {
	return New(io.Discard, LogInfo)
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	root := quietCLI().RootCommand()
	want := []string{"layout", "render", "analyze", "catalog", "view", "serve", "cache", "completion"}
	for _, name := range want {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Errorf("subcommand %q not registered", name)
		}
	}
	if root.PersistentFlags().Lookup("catalog") == nil {
		t.Error("--catalog flag missing")
	}
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", []string{"svg"}},
		{"png", []string{"png"}},
		{"svg, png,pdf", []string{"svg", "png", "pdf"}},
	}
	for _, tt := range tests {
		got := parseFormats(tt.in)
		if len(got) != len(tt.want) {
			t.Errorf("parseFormats(%q) = %v, want %v", tt.in, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("parseFormats(%q) = %v, want %v", tt.in, got, tt.want)
			}
		}
	}
}

func TestBasePath(t *testing.T) {
	tests := []struct {
		output, input, want string
	}{
		{"", "rooms/aula.toml", "rooms/aula"},
		{"", "-", "layout"},
		{"out/plan.svg", "aula.toml", "out/plan"},
		{"out/plan", "aula.toml", "out/plan"},
		{"out/plan.v2", "aula.toml", "out/plan.v2"},
	}
	for _, tt := range tests {
		if got := basePath(tt.output, tt.input); got != tt.want {
			t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
		}
	}
}

func TestOutputPaths(t *testing.T) {
	single := outputPaths("plan.png", "aula.toml", []string{"png"})
	if single["png"] != "plan.png" {
		t.Errorf("single = %v", single)
	}

	multi := outputPaths("", "aula.toml", []string{"svg", "pdf"})
	if multi["svg"] != "aula.svg" || multi["pdf"] != "aula.pdf" {
		t.Errorf("multi = %v", multi)
	}

	// a JSON request rendered to JSON must not overwrite itself
	self := outputPaths("", "aula.json", []string{"svg", "json"})
	if self["json"] != "aula.layout.json" {
		t.Errorf("json path = %q, want aula.layout.json", self["json"])
	}
}

func TestEnvOr(t *testing.T) {
	t.Setenv(envPrefix+"ADDR", ":9999")
	if got := envOr("ADDR", defaultAddr); got != ":9999" {
		t.Errorf("envOr = %q, want env value", got)
	}
	if got := envOr("UNSET_FOR_TEST", "fallback"); got != "fallback" {
		t.Errorf("envOr = %q, want fallback", got)
	}
}

func TestLayoutCommand(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "aula.toml")
	if err := os.WriteFile(input, []byte(classroomTOML), 0o644); err != nil {
		t.Fatal(err)
	}
	output := filepath.Join(dir, "result.json")

	root := quietCLI().RootCommand()
	root.SetArgs([]string{"layout", input, "-o", output, "--no-cache", "-q"})
	if err := root.Execute(); err != nil {
		t.Fatalf("layout: %v", err)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatal(err)
	}
	var res layout.Result
	if err := json.Unmarshal(data, &res); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if !res.IsViable || len(res.Placed) != 20 {
		t.Errorf("result viable=%v placed=%d", res.IsViable, len(res.Placed))
	}
}

func TestLayoutCommandErrors(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.toml")
	if err := os.WriteFile(bad, []byte("space_type = \"aula\"\n[room]\nlength = -1\nwidth = 8\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		args []string
	}{
		{"missing file", []string{"layout", filepath.Join(dir, "nope.toml"), "--no-cache"}},
		{"invalid room", []string{"layout", bad, "--no-cache", "-o", filepath.Join(dir, "out.json")}},
		{"no args", []string{"layout"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := quietCLI().RootCommand()
			root.SetArgs(tt.args)
			root.SetOut(io.Discard)
			root.SetErr(io.Discard)
			if err := root.Execute(); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestRenderCommand(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "aula.toml")
	if err := os.WriteFile(input, []byte(classroomTOML), 0o644); err != nil {
		t.Fatal(err)
	}

	root := quietCLI().RootCommand()
	root.SetArgs([]string{"render", input, "-f", "svg,json", "--zoom", "0.5", "--no-cache"})
	if err := root.Execute(); err != nil {
		t.Fatalf("render: %v", err)
	}

	svg, err := os.ReadFile(filepath.Join(dir, "aula.svg"))
	if err != nil {
		t.Fatalf("svg not written: %v", err)
	}
	if !bytes.HasPrefix(svg, []byte("<svg ")) {
		t.Error("svg output malformed")
	}
	if _, err := os.Stat(filepath.Join(dir, "aula.json")); err != nil {
		t.Errorf("json not written: %v", err)
	}
}

func TestRenderCommandRejectsBadOptions(t *testing.T) {
	tests := [][]string{
		{"render", "aula.toml", "-f", "gif"},
		{"render", "aula.toml", "--zoom", "-1"},
	}
	for _, args := range tests {
		root := quietCLI().RootCommand()
		root.SetArgs(args)
		root.SetOut(io.Discard)
		root.SetErr(io.Discard)
		if err := root.Execute(); err == nil {
			t.Errorf("%v: expected error", args)
		}
	}
}

func TestCompletionScripts(t *testing.T) {
	tests := []struct {
		shell string
		want  string
	}{
		{"bash", "__start_spacelayout"},
		{"zsh", "#compdef spacelayout"},
		{"fish", "complete -c spacelayout"},
		{"powershell", "spacelayout"},
	}
	for _, tt := range tests {
		t.Run(tt.shell, func(t *testing.T) {
			var out bytes.Buffer
			root := quietCLI().RootCommand()
			root.SetArgs([]string{"completion", tt.shell})
			root.SetOut(&out)
			if err := root.Execute(); err != nil {
				t.Fatalf("completion %s: %v", tt.shell, err)
			}
			if !strings.Contains(out.String(), tt.want) {
				t.Errorf("completion %s output lacks %q", tt.shell, tt.want)
			}
		})
	}
}

func TestCompletionValues(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []string
	}{
		{"render formats", []string{"render", "--format", ""}, []string{"json", "pdf", "png", "svg"}},
		{"catalog space types", []string{"catalog", ""}, []string{"classroom", "parking", "conference_room"}},
		{"request files", []string{"layout", ""}, []string{"toml", "json"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			root := quietCLI().RootCommand()
			root.SetArgs(append([]string{cobra.ShellCompRequestCmd}, tt.args...))
			root.SetOut(&out)
			root.SetErr(io.Discard)
			if err := root.Execute(); err != nil {
				t.Fatalf("complete %v: %v", tt.args, err)
			}
			lines := strings.Split(out.String(), "\n")
			for _, w := range tt.want {
				if !slices.Contains(lines, w) {
					t.Errorf("completions for %v = %q, missing %q", tt.args, lines, w)
				}
			}
		})
	}
}

func TestCatalogFlag(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.toml")
	if err := os.WriteFile(path, []byte("not = [valid"), 0o644); err != nil {
		t.Fatal(err)
	}

	c := quietCLI()
	c.catalogPath = path
	if _, err := c.newRunner(true); err == nil {
		t.Error("invalid catalog file should fail")
	}

	c.catalogPath = ""
	runner, err := c.newRunner(true)
	if err != nil {
		t.Fatal(err)
	}
	defer runner.Close()
	if runner.Catalog == nil {
		t.Error("runner should fall back to the built-in catalog")
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0 B"},
		{1023, "1023 B"},
		{1536, "1.5 KiB"},
		{5 << 20, "5.0 MiB"},
	}
	for _, tt := range tests {
		if got := formatBytes(tt.in); got != tt.want {
			t.Errorf("formatBytes(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCacheCommands(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(envPrefix+"CACHE_DIR", dir)

	fc, err := cache.NewFileCache(dir)
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	_ = fc.Set(ctx, "live", []byte("{}"), time.Hour)
	_ = fc.Set(ctx, "old", []byte("{}"), time.Millisecond)
	time.Sleep(10 * time.Millisecond)

	var out bytes.Buffer
	root := quietCLI().RootCommand()
	root.SetOut(&out)
	root.SetArgs([]string{"cache", "path"})
	if err := root.Execute(); err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out.String()) != dir {
		t.Errorf("cache path = %q, want %q", out.String(), dir)
	}

	root = quietCLI().RootCommand()
	root.SetArgs([]string{"cache", "clear", "--expired"})
	if err := root.Execute(); err != nil {
		t.Fatal(err)
	}
	if n, _, _ := fc.Usage(); n != 1 {
		t.Errorf("%d entries after clear --expired, want 1", n)
	}

	root = quietCLI().RootCommand()
	root.SetArgs([]string{"cache", "clear"})
	if err := root.Execute(); err != nil {
		t.Fatal(err)
	}
	if n, _, _ := fc.Usage(); n != 0 {
		t.Errorf("%d entries after clear, want 0", n)
	}
}

func TestCatalogExport(t *testing.T) {
	var out bytes.Buffer
	root := quietCLI().RootCommand()
	root.SetOut(&out)
	root.SetArgs([]string{"catalog", "--export"})
	if err := root.Execute(); err != nil {
		t.Fatal(err)
	}

	cat, err := catalog.Load(&out)
	if err != nil {
		t.Fatalf("exported catalog does not load: %v", err)
	}
	if got := len(cat.Spaces()); got != 6 {
		t.Errorf("exported catalog has %d spaces, want 6", got)
	}
}

func TestCatalogUnknownSpace(t *testing.T) {
	root := quietCLI().RootCommand()
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	root.SetArgs([]string{"catalog", "piscina"})
	if err := root.Execute(); err == nil {
		t.Error("expected error for unknown space type")
	}
}
