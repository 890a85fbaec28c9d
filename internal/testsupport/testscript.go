package testsupport

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/rogpeppe/go-internal/testscript"
)

var (
	buildOnce sync.Once
	tlPath    string
	buildErr  error
)

// BuildTL builds the tl binary once and returns its path.
func BuildTL(t testing.TB) string {
	t.Helper()

	buildOnce.Do(func() {
		moduleRoot, err := findModuleRoot()
		if err != nil {
			buildErr = err
			return
		}

		binDir, err := os.MkdirTemp("", "tl-bin-")
		if err != nil {
			buildErr = err
			return
		}

		tlPath = filepath.Join(binDir, "tl")
		cmd := exec.Command("go", "build", "-o", tlPath, "./cmd/tl")
		cmd.Dir = moduleRoot
		output, err := cmd.CombinedOutput()
		if err != nil {
			buildErr = fmt.Errorf("build tl: %w: %s", err, strings.TrimSpace(string(output)))
		}
	})

	if buildErr != nil {
		t.Fatalf("%v", buildErr)
	}

	return tlPath
}

// SetupScriptEnv configures common environment variables for testscript.
func SetupScriptEnv(t testing.TB, env *testscript.Env) error {
	t.Helper()

	env.Setenv("TL", BuildTL(t))

	homeDir := filepath.Join(env.WorkDir, "home")
	if err := EnsureHomeDirs(homeDir); err != nil {
		return err
	}
	env.Setenv("HOME", homeDir)
	env.Setenv("TASKLIST_STATE_DIR", filepath.Join(env.WorkDir, "state"))
	env.Setenv("EDITOR", "false")
	env.Setenv("NO_COLOR", "1")
	return nil
}

// CmdEnvSet stores the trimmed contents of a file in an env var.
func CmdEnvSet(ts *testscript.TestScript, neg bool, args []string) {
	if neg {
		ts.Fatalf("envset does not support negation")
	}
	if len(args) != 2 {
		ts.Fatalf("usage: envset VAR FILE")
	}

	value := strings.TrimSpace(ts.ReadFile(args[1]))
	ts.Setenv(args[0], value)
}

type scriptSection struct {
	ID    string       `json:"id"`
	Title string       `json:"title"`
	Tasks []scriptTask `json:"tasks"`
}

type scriptTask struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// CmdTaskID finds a task by title in a `tl list --all --json` dump and
// stores its ID in an env var.
func CmdTaskID(ts *testscript.TestScript, neg bool, args []string) {
	if neg {
		ts.Fatalf("taskid does not support negation")
	}
	if len(args) != 3 {
		ts.Fatalf("usage: taskid FILE TITLE VAR")
	}

	sections := readScriptSections(ts, args[0])
	for _, section := range sections {
		for _, task := range section.Tasks {
			if task.Title == args[1] {
				ts.Setenv(args[2], task.ID)
				return
			}
		}
	}

	ts.Fatalf("task with title %q not found", args[1])
}

// CmdSectionID finds a section by title in a `tl list --all --json` dump and
// stores its ID in an env var.
func CmdSectionID(ts *testscript.TestScript, neg bool, args []string) {
	if neg {
		ts.Fatalf("sectionid does not support negation")
	}
	if len(args) != 3 {
		ts.Fatalf("usage: sectionid FILE TITLE VAR")
	}

	for _, section := range readScriptSections(ts, args[0]) {
		if section.Title == args[1] {
			ts.Setenv(args[2], section.ID)
			return
		}
	}

	ts.Fatalf("section with title %q not found", args[1])
}

func readScriptSections(ts *testscript.TestScript, path string) []scriptSection {
	var sections []scriptSection
	if err := json.Unmarshal([]byte(ts.ReadFile(path)), &sections); err != nil {
		ts.Fatalf("parse task list: %v", err)
	}
	return sections
}

func findModuleRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("could not find module root (go.mod)")
		}
		dir = parent
	}
}
