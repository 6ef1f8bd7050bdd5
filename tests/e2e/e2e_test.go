package e2e_test

import (
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var binaryPath string

func TestMain(m *testing.M) {
	// Build binary before running tests
	dir, err := os.MkdirTemp("", "testgap-e2e")
	if err != nil {
		panic(err)
	}
	defer os.RemoveAll(dir)

	binaryPath = filepath.Join(dir, "testgap")
	cmd := exec.Command("go", "build", "-o", binaryPath, "../../cmd/testgap")
	if out, err := cmd.CombinedOutput(); err != nil {
		panic("build failed: " + string(out))
	}

	os.Exit(m.Run())
}

// project copies the fixture into a fresh directory so runs never write
// into testdata.
func project(t *testing.T) string {
	t.Helper()
	src, err := filepath.Abs("../../testdata/python-project")
	require.NoError(t, err)

	dst := filepath.Join(t.TempDir(), "doc_forge")
	err = filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, _ := filepath.Rel(src, path)
		target := filepath.Join(dst, rel)
		if d.IsDir() {
			return os.MkdirAll(target, 0755)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		return os.WriteFile(target, data, 0644)
	})
	require.NoError(t, err)
	return dst
}

func run(t *testing.T, dir string, args ...string) (string, int) {
	t.Helper()
	cmd := exec.Command(binaryPath, args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	exitCode := 0
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		}
	}
	return string(out), exitCode
}

func TestE2E_NoArgumentsWritesTODO(t *testing.T) {
	root := project(t)

	out, code := run(t, root)
	assert.Equal(t, 0, code, out)
	assert.Contains(t, out, "✅ Generated test TODO document at:")

	data, err := os.ReadFile(filepath.Join(root, "tests", "doc_forge_todo.md"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "# doc_forge Comprehensive Test TODO"))
}

func TestE2E_All(t *testing.T) {
	root := project(t)

	out, code := run(t, root, "--all")
	assert.Equal(t, 0, code, out)
	assert.Contains(t, out, "✨ Generated test analysis suite:")
	assert.Contains(t, out, "🧪 Test stubs: 2 files")

	for _, name := range []string{
		"doc_forge_todo.md",
		"doc_forge_coverage.md",
		"test_shop_stubs.py",
		"test_utils_stubs.py",
		"coverage_visualization.html",
	} {
		assert.FileExists(t, filepath.Join(root, "tests", name))
	}
}

func TestE2E_StubsCloseTheGap(t *testing.T) {
	root := project(t)

	_, code := run(t, root, "--stubs")
	require.Equal(t, 0, code)

	_, code = run(t, root, "--coverage")
	require.Equal(t, 0, code)

	data, err := os.ReadFile(filepath.Join(root, "tests", "doc_forge_coverage.md"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "100.0%")
}

func TestE2E_UnknownFlagDoesNothing(t *testing.T) {
	root := project(t)

	out, code := run(t, root, "--frobnicate")
	assert.Equal(t, 0, code)
	assert.Empty(t, out)
	assert.NoFileExists(t, filepath.Join(root, "tests", "doc_forge_todo.md"))
}

func TestE2E_InvalidConfigExitsNonZero(t *testing.T) {
	root := project(t)
	require.NoError(t, os.WriteFile(filepath.Join(root, ".testgap.yaml"), []byte("source_dir: /abs/src\n"), 0644))

	out, code := run(t, root, "--coverage")
	assert.Equal(t, 1, code)
	assert.Contains(t, out, "source_dir")
}

func TestE2E_Version(t *testing.T) {
	out, code := run(t, ".", "version")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "testgap")
}
