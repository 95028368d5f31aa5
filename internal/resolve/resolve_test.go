package resolve

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/AntoineGS/tidyfmt/internal/config"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGlobber struct {
	results map[string][]string
	errs    map[string]error
	calls   []string
}

func (f *fakeGlobber) Glob(pattern string) ([]string, error) {
	f.calls = append(f.calls, pattern)
	if err, ok := f.errs[pattern]; ok {
		return nil, err
	}
	return f.results[pattern], nil
}

func writeFiles(t *testing.T, root string, files ...string) {
	t.Helper()
	for _, name := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0750))
		require.NoError(t, os.WriteFile(path, []byte(name), 0600))
	}
}

func TestResolve_GlobsDisabledPreservesInputs(t *testing.T) {
	t.Parallel()

	globber := &fakeGlobber{}
	inputs := []string{"b.txt", "docs/*.md", "a.txt", "b.txt", "[unterminated"}
	settings := config.DefaultSettings().WithAllowGlobs(false)

	got, err := New(globber).Resolve(inputs, settings)
	require.NoError(t, err)

	assert.Equal(t, inputs, got)
	assert.Empty(t, globber.calls, "globber must not be consulted in literal mode")

	got[0] = "mutated"
	assert.Equal(t, "b.txt", inputs[0], "result must not alias the input slice")
}

func TestResolve_InvalidPatternFallsBackToLiteral(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	input := filepath.Join(tmpDir, "[abc")

	got, err := Resolve([]string{input}, config.DefaultSettings())
	require.NoError(t, err)
	assert.Equal(t, []string{input}, got)
}

func TestResolve_WrappedBadPatternFallsBack(t *testing.T) {
	t.Parallel()

	globber := &fakeGlobber{
		errs: map[string]error{
			"weird{": fmt.Errorf("compiling: %w", doublestar.ErrBadPattern),
		},
	}

	got, err := New(globber).Resolve([]string{"weird{"}, config.DefaultSettings())
	require.NoError(t, err)
	assert.Equal(t, []string{"weird{"}, got)
}

func TestResolve_EmptyMatchContributesNothing(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFiles(t, tmpDir, "docs/a.md")

	got, err := Resolve([]string{
		filepath.Join(tmpDir, "docs", "*.txt"),
		filepath.Join(tmpDir, "missing", "**", "*.md"),
	}, config.DefaultSettings())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestResolve_ExpandsInOrderWithoutDedup(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFiles(t, tmpDir, "docs/b.md", "docs/a.md", "docs/c.txt", "notes.txt")

	inputs := []string{
		filepath.Join(tmpDir, "docs", "*.md"),
		filepath.Join(tmpDir, "notes.txt"),
		filepath.Join(tmpDir, "docs", "?.md"),
	}

	got, err := Resolve(inputs, config.DefaultSettings())
	require.NoError(t, err)

	want := []string{
		filepath.Join(tmpDir, "docs", "a.md"),
		filepath.Join(tmpDir, "docs", "b.md"),
		filepath.Join(tmpDir, "notes.txt"),
		filepath.Join(tmpDir, "docs", "a.md"),
		filepath.Join(tmpDir, "docs", "b.md"),
	}
	assert.Equal(t, want, got)
}

func TestResolve_PatternSyntax(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFiles(t, tmpDir,
		"src/main.go",
		"src/pkg/util.go",
		"src/pkg/deep/x.go",
		"src/readme.md",
		"a1.txt",
		"b2.txt",
	)

	tests := []struct {
		name    string
		pattern string
		want    []string
	}{
		{
			name:    "double star recurses",
			pattern: "src/**/*.go",
			want:    []string{"src/main.go", "src/pkg/util.go", "src/pkg/deep/x.go"},
		},
		{
			name:    "character class",
			pattern: "[a]?.txt",
			want:    []string{"a1.txt"},
		},
		{
			name:    "alternatives",
			pattern: "src/{main.go,readme.md}",
			want:    []string{"src/main.go", "src/readme.md"},
		},
		{
			name:    "literal existing path",
			pattern: "b2.txt",
			want:    []string{"b2.txt"},
		},
		{
			name:    "literal missing path",
			pattern: "nope.txt",
			want:    []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Resolve([]string{filepath.Join(tmpDir, filepath.FromSlash(tt.pattern))}, config.DefaultSettings())
			require.NoError(t, err)

			want := make([]string, 0, len(tt.want))
			for _, w := range tt.want {
				want = append(want, filepath.Join(tmpDir, filepath.FromSlash(w)))
			}
			// order across nested directories is up to the walker
			assert.ElementsMatch(t, want, got)
		})
	}
}

func TestResolve_WalkFailureIsPatternError(t *testing.T) {
	t.Parallel()

	globber := &fakeGlobber{
		results: map[string][]string{"ok/*": {"ok/a"}},
		errs:    map[string]error{"locked/**": fs.ErrPermission},
	}

	got, err := New(globber).Resolve([]string{"ok/*", "locked/**", "never/*"}, config.DefaultSettings())
	require.Error(t, err)
	assert.Nil(t, got)

	var patternErr *PatternError
	require.True(t, errors.As(err, &patternErr))
	assert.Equal(t, "locked/**", patternErr.Pattern)
	assert.ErrorIs(t, err, fs.ErrPermission)
	assert.Equal(t, []string{"ok/*", "locked/**"}, globber.calls, "resolution stops at the first failure")
}

func TestResolve_PathThroughFileMatchesNothing(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFiles(t, tmpDir, "file.txt", "src/main.go")

	for _, pattern := range []string{"file.txt/x", "file.txt/*", "src/main.go/x", "src/*.go/x"} {
		t.Run(pattern, func(t *testing.T) {
			t.Parallel()

			got, err := Resolve([]string{filepath.Join(tmpDir, filepath.FromSlash(pattern))}, config.DefaultSettings())
			require.NoError(t, err)
			assert.Empty(t, got)
		})
	}
}

func TestResolve_UnreadableDirectoryIsPatternError(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("directory permissions are not enforced on Windows")
	}
	if os.Getuid() == 0 {
		t.Skip("root ignores directory permissions")
	}
	t.Parallel()

	tmpDir := t.TempDir()
	writeFiles(t, tmpDir, "locked/a.md")
	locked := filepath.Join(tmpDir, "locked")
	require.NoError(t, os.Chmod(locked, 0))
	t.Cleanup(func() { _ = os.Chmod(locked, 0750) })

	for _, pattern := range []string{"locked/*.md", "**/*.md"} {
		t.Run(pattern, func(t *testing.T) {
			input := filepath.Join(tmpDir, filepath.FromSlash(pattern))

			got, err := Resolve([]string{input}, config.DefaultSettings())
			require.Error(t, err)
			assert.Nil(t, got)

			var patternErr *PatternError
			require.True(t, errors.As(err, &patternErr))
			assert.Equal(t, input, patternErr.Pattern)
			assert.ErrorIs(t, err, fs.ErrPermission)
		})
	}
}
