package docs

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

const (
	bashSetup    = "bash setup"
	bashRun      = "bash run"
	consoleCheck = "console check"
	bashCheck    = "bash check"
)

func TestTopics(t *testing.T) {
	// Every topic of the index can be loaded, and every markdown file of the
	// folder is in the index.
	topics, err := Topics()
	if err != nil {
		t.Fatalf("Topics() error: %v", err)
	}
	listed := make(map[string]bool)
	for _, topic := range topics {
		listed[topic.Name] = true
		t.Run("load_"+topic.Name, func(t *testing.T) {
			if topic.Description == "" {
				t.Errorf("topic %q has no description in %s.md", topic.Name, Index)
			}
			if _, err := GetTopic(topic.Name); err != nil {
				t.Errorf("failed to get topic %q: %v", topic.Name, err)
			}
		})
	}

	files, err := filepath.Glob("*.md")
	if err != nil {
		t.Fatalf("failed to glob *.md: %v", err)
	}
	for _, file := range files {
		name := strings.TrimSuffix(filepath.Base(file), ".md")
		if name != Index && !listed[name] {
			t.Errorf("topic %q is not listed in %s.md", name, Index)
		}
	}
}

func TestGetTopics(t *testing.T) {
	all, err := GetAllTopics()
	if err != nil {
		t.Fatalf("GetAllTopics() error: %v", err)
	}
	if len(all) == 0 || slices.Contains(all, Index) || !slices.IsSorted(all) {
		t.Errorf("GetAllTopics() = %v, want the sorted topics without the index", all)
	}

	star, err := GetTopic("*")
	if err != nil {
		t.Fatalf("GetTopic(*) error: %v", err)
	}
	for _, name := range all {
		content, _ := GetTopic(name)
		if !strings.Contains(star, content) {
			t.Errorf("GetTopic(*) misses topic %q", name)
		}
	}

	if _, err := GetTopics("numbers", "nope"); err == nil {
		t.Errorf("GetTopics() with an unknown topic expected an error")
	}
}

// TestCodeBlocks runs the code blocks of every topic, and of the project README,
// against a freshly built horizon binary.
func TestCodeBlocks(t *testing.T) {
	files, err := filepath.Glob("*.md")
	if err != nil {
		t.Fatal(err)
	}
	files = append(files, "../README.md")

	bin := buildHorizon(t)
	env := append(os.Environ(),
		fmt.Sprintf("PATH=%s%c%s", filepath.Dir(bin), os.PathListSeparator, os.Getenv("PATH")),
		// blocks run against the files of their folder only.
		"HORIZON_CONFIG=", "HORIZON_WORKSPACE=", "DATABASE_URL=",
	)

	for _, file := range files {
		t.Run(filepath.Base(file), func(t *testing.T) {
			content, err := os.ReadFile(file)
			if err != nil {
				t.Fatalf("failed to read %s: %v", file, err)
			}
			s := session{env: env, dir: t.TempDir()}
			for _, b := range exampleBlocks(content) {
				s.run(t, file, b)
			}
		})
	}
}

// block is an example fenced code block of a topic.
type block struct {
	kind    string
	content string
	line    int
}

func buildHorizon(t *testing.T) string {
	t.Helper()
	bin := filepath.Join(t.TempDir(), "horizon")
	out, err := exec.Command("go", "build", "-o", bin, "../horizon/").CombinedOutput()
	if err != nil {
		t.Fatalf("failed to build horizon: %v\n%s", err, out)
	}
	return bin
}

// exampleBlocks returns the fenced code blocks whose info string is one of
// the example kinds, in document order.
func exampleBlocks(source []byte) []block {
	var blocks []block
	root := goldmark.DefaultParser().Parse(text.NewReader(source))
	ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		fcb, ok := n.(*ast.FencedCodeBlock)
		if !entering || !ok || fcb.Info == nil {
			return ast.WalkContinue, nil
		}
		kind := string(fcb.Info.Segment.Value(source))
		switch kind {
		case bashSetup, bashRun, bashCheck, consoleCheck:
		default:
			return ast.WalkContinue, nil
		}
		var b strings.Builder
		lines := fcb.Lines()
		for i := range lines.Len() {
			seg := lines.At(i)
			b.Write(seg.Value(source))
		}
		blocks = append(blocks, block{
			kind:    kind,
			content: b.String(),
			line:    bytes.Count(source[:fcb.Info.Segment.Start], []byte{'\n'}) + 1,
		})
		return ast.WalkContinue, nil
	})
	return blocks
}

// session is the state shared by the blocks of one topic: a setup block
// starts over in a new folder, a console check compares the output of the
// last run block.
type session struct {
	env     []string
	dir     string
	lastRun string
}

func (s *session) run(t *testing.T, file string, b block) {
	t.Helper()
	switch b.kind {
	case consoleCheck:
		s.check(t, file, b)
		return
	case bashSetup:
		s.dir = t.TempDir()
	}

	cmd := exec.Command("bash", "-c", "set -e; "+b.content)
	cmd.Dir = s.dir
	cmd.Env = s.env
	out, err := cmd.CombinedOutput()
	if b.kind == bashRun {
		s.lastRun = string(out)
	}
	if err == nil {
		return
	}
	if b.kind == bashCheck {
		t.Errorf("%s:%d: %s failed: %v\n%s", file, b.line, b.kind, err, out)
		return
	}
	t.Fatalf("%s:%d: %s failed: %v\n%s", file, b.line, b.kind, err, out)
}

func (s *session) check(t *testing.T, file string, b block) {
	t.Helper()
	want := strings.TrimSpace(b.content)
	got := strings.ReplaceAll(strings.TrimSpace(s.lastRun), "\t", "        ")
	if got != want {
		t.Errorf("%s:%d: output mismatch:\ngot:\n%s\nwant:\n%s\n\ngot :%q\nwant:%q", file, b.line, got, want, got, want)
	}
}
