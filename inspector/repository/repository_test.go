package repository

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func memFs(t *testing.T, files map[string]string) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	for name, content := range files {
		require.NoError(t, afero.WriteFile(fs, name, []byte(content), 0644))
	}
	return fs
}

func TestDetector_DetectProject(t *testing.T) {
	fs := memFs(t, map[string]string{
		"/work/ui/package.json":    `{"name": "@acme/ui", "version": "1.0.0"}`,
		"/work/ui/src/app/App.tsx": "",
		"/work/lib/tsconfig.json":  "{}",
		"/work/lib/src/index.ts":   "",
		"/work/.git/config":        "[core]\n[remote \"origin\"]\n\turl = git@github.com:acme/work.git\n",
		"/work/scripts/build.js":   "",
		"/loose/file.ts":           "",
	})
	detector := New(fs)

	var testCases = []struct {
		description string
		path        string
		root        string
		kind        string
		name        string
		relative    string
	}{
		{description: "package.json", path: "/work/ui/src/app/App.tsx", root: "/work/ui", kind: "javascript", name: "@acme/ui", relative: "src/app/App.tsx"},
		{description: "tsconfig.json", path: "/work/lib/src/index.ts", root: "/work/lib", kind: "typescript", name: "lib", relative: "src/index.ts"},
		{description: "git only", path: "/work/scripts/build.js", root: "/work", kind: "git", name: "work", relative: "scripts/build.js"},
		{description: "directory", path: "/work/ui/src", root: "/work/ui", kind: "javascript", name: "@acme/ui", relative: "src"},
		{description: "no marker", path: "/loose/file.ts", root: "/loose", kind: "unknown", name: "loose", relative: "file.ts"},
	}
	for _, testCase := range testCases {
		project, err := detector.DetectProject(testCase.path)
		require.NoError(t, err, testCase.description)
		assert.Equal(t, testCase.root, project.RootPath, testCase.description)
		assert.Equal(t, testCase.kind, project.Type, testCase.description)
		assert.Equal(t, testCase.name, project.Name, testCase.description)
		assert.Equal(t, testCase.relative, project.RelativePath, testCase.description)
	}

	_, err := detector.DetectProject("/missing/file.ts")
	assert.Error(t, err)
}

func TestDetector_DetectRepository(t *testing.T) {
	fs := memFs(t, map[string]string{
		"/work/ui/package.json":    `{"name": "ui"}`,
		"/work/ui/src/App.tsx":     "",
		"/work/.git/config":        "[remote \"upstream\"]\n\turl = other\n[remote \"origin\"]\n\turl = git@github.com:acme/work.git\n",
		"/standalone/package.json": `{}`,
		"/standalone/index.js":     "",
	})
	detector := New(fs)

	repo, err := detector.DetectRepository("/work/ui/src/App.tsx")
	require.NoError(t, err)
	assert.Equal(t, "git", repo.Kind)
	assert.Equal(t, "/work", repo.Root)
	assert.Equal(t, "git@github.com:acme/work.git", repo.Origin)
	assert.Equal(t, "/work/ui", repo.Info.RootPath)

	repo, err = detector.DetectRepository("/standalone/index.js")
	require.NoError(t, err)
	assert.Equal(t, "javascript", repo.Kind)
	assert.Equal(t, "/standalone", repo.Root)
	assert.Equal(t, "standalone", repo.Info.Name)
}

func TestScanner_Scan(t *testing.T) {
	fs := memFs(t, map[string]string{
		"/app/src/index.ts":                  "",
		"/app/src/App.tsx":                   "",
		"/app/src/util/format.js":            "",
		"/app/src/util/format.test.js":       "",
		"/app/src/view/Button.spec.tsx":      "",
		"/app/src/view/Button.jsx":           "",
		"/app/src/styles.css":                "",
		"/app/src/node_modules/pkg/index.js": "",
		"/app/node_modules/react/index.js":   "",
		"/app/dist/bundle.js":                "",
		"/app/scripts/tool.ts":               "",
		"/app/src/types.d.ts":                "",
		"/app/src/legacy/old.mjs":            "",
	})
	scanner, err := NewScanner(fs,
		[]string{"src/**/*.{ts,tsx,js,jsx}"},
		[]string{"**/*.test.*", "**/*.spec.*", "**/node_modules/**", "**/dist/**", "**/*.d.ts"})
	require.NoError(t, err)

	files, err := scanner.Scan("/app")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"/app/src/App.tsx",
		"/app/src/index.ts",
		"/app/src/util/format.js",
		"/app/src/view/Button.jsx",
	}, files)
}

func TestScanner_Match(t *testing.T) {
	scanner, err := NewScanner(afero.NewMemMapFs(), nil, []string{"**/generated/**"})
	require.NoError(t, err)
	assert.True(t, scanner.Match("a/b/c.ts"))
	assert.False(t, scanner.Match("a/generated/c.ts"))
	assert.False(t, scanner.Match("generated/c.ts"))
	assert.False(t, scanner.Match("a/b/c.go"))
	assert.True(t, scanner.IgnoresDir("generated"))
	assert.True(t, scanner.IgnoresDir("a/generated"))
	assert.False(t, scanner.IgnoresDir("."))

	_, err = NewScanner(nil, []string{"src/[a"}, nil)
	assert.Error(t, err)
}

func TestPatternVariants(t *testing.T) {
	assert.Equal(t, []string{"**/a/**/*.ts", "a/**/*.ts", "a/*.ts", "**/a/*.ts", "a/*.ts"}, patternVariants("**/a/**/*.ts"))
	assert.Nil(t, patternVariants(""))
}
