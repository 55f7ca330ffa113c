package testsupport

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/amonks/tdo/internal/paths"
	"github.com/amonks/tdo/note"
	"github.com/rogpeppe/go-internal/testscript"
)

var (
	buildOnce sync.Once
	tdoPath   string
	buildErr  error
)

// fakeEditorScript replaces the file it is given with the contents of
// $FAKE_EDITOR_FILE when set, or with $FAKE_EDITOR_TEXT.
const fakeEditorScript = `#!/bin/sh
if [ -n "$FAKE_EDITOR_FILE" ]; then
	cat "$FAKE_EDITOR_FILE" > "$1"
else
	printf '%s' "$FAKE_EDITOR_TEXT" > "$1"
fi
`

// BuildTdo builds the tdo binary once and returns its path.
func BuildTdo(t testing.TB) string {
	t.Helper()

	buildOnce.Do(func() {
		moduleRoot, err := findModuleRoot()
		if err != nil {
			buildErr = err
			return
		}

		binDir, err := os.MkdirTemp("", "tdo-bin-")
		if err != nil {
			buildErr = err
			return
		}

		tdoPath = filepath.Join(binDir, "tdo")
		cmd := exec.Command("go", "build", "-o", tdoPath, "./cmd/tdo")
		cmd.Dir = moduleRoot
		output, err := cmd.CombinedOutput()
		if err != nil {
			buildErr = fmt.Errorf("build tdo: %w: %s", err, strings.TrimSpace(string(output)))
		}
	})

	if buildErr != nil {
		t.Fatalf("%v", buildErr)
	}

	return tdoPath
}

// SetupScriptEnv configures common environment variables for testscript.
//
// $TDO is the binary, $TDO_DATA_DIR points at $WORK/data, and $EDITOR is a
// script that writes $FAKE_EDITOR_FILE or $FAKE_EDITOR_TEXT into the file it
// is given.
func SetupScriptEnv(t testing.TB, env *testscript.Env) error {
	t.Helper()

	env.Setenv("TDO", BuildTdo(t))

	homeDir := filepath.Join(env.WorkDir, "home")
	if err := EnsureHomeDirs(homeDir); err != nil {
		return err
	}
	env.Setenv("HOME", homeDir)

	dataDir := filepath.Join(env.WorkDir, "data")
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return err
	}
	env.Setenv(paths.EnvDataDir, dataDir)

	editorPath := filepath.Join(env.WorkDir, "fake-editor")
	if err := os.WriteFile(editorPath, []byte(fakeEditorScript), 0o755); err != nil {
		return err
	}
	env.Setenv("EDITOR", editorPath)
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

// CmdNoteHash stores the content hash of TEXT in an env var.
func CmdNoteHash(ts *testscript.TestScript, neg bool, args []string) {
	if neg {
		ts.Fatalf("notehash does not support negation")
	}
	if len(args) != 2 {
		ts.Fatalf("usage: notehash VAR TEXT")
	}

	ts.Setenv(args[0], note.Hash(args[1]))
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
