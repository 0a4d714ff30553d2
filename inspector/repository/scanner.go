package repository

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gobwas/glob"
	"github.com/spf13/afero"
	"github.com/viant/i18nkeys/inspector/jsx"
)

// Scanner lists source files under a root matching include patterns and no ignore pattern.
// Patterns use '/' separated paths relative to the root; `**` spans folders, including none.
type Scanner struct {
	fs      afero.Fs
	include []glob.Glob
	ignore  []glob.Glob
}

// NewScanner compiles include and ignore patterns
func NewScanner(fs afero.Fs, include, ignore []string) (*Scanner, error) {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	ret := &Scanner{fs: fs}
	var err error
	if ret.include, err = compilePatterns(include); err != nil {
		return nil, err
	}
	if ret.ignore, err = compilePatterns(ignore); err != nil {
		return nil, err
	}
	return ret, nil
}

func compilePatterns(patterns []string) ([]glob.Glob, error) {
	var result []glob.Glob
	for _, pattern := range patterns {
		for _, variant := range patternVariants(filepath.ToSlash(strings.TrimSpace(pattern))) {
			compiled, err := glob.Compile(variant, '/')
			if err != nil {
				return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
			}
			result = append(result, compiled)
		}
	}
	return result, nil
}

// patternVariants expands `**/` so that it also matches zero folders
func patternVariants(pattern string) []string {
	if pattern == "" {
		return nil
	}
	variants := []string{pattern}
	if strings.HasPrefix(pattern, "**/") {
		variants = append(variants, patternVariants(pattern[3:])...)
	}
	if index := strings.Index(pattern, "/**/"); index != -1 {
		variants = append(variants, patternVariants(pattern[:index]+"/"+pattern[index+4:])...)
	}
	return variants
}

func matchAny(globs []glob.Glob, candidate string) bool {
	for _, g := range globs {
		if g.Match(candidate) {
			return true
		}
	}
	return false
}

// Match returns true if the root relative path is included and not ignored
func (s *Scanner) Match(relative string) bool {
	relative = filepath.ToSlash(relative)
	if !jsx.IsSource(relative) || matchAny(s.ignore, relative) {
		return false
	}
	return len(s.include) == 0 || matchAny(s.include, relative)
}

// IgnoresDir returns true if the root relative folder is ignored as a whole
func (s *Scanner) IgnoresDir(relative string) bool {
	relative = filepath.ToSlash(relative)
	if relative == "." || relative == "" {
		return false
	}
	return matchAny(s.ignore, relative+"/")
}

// Scan returns the sorted absolute paths of the matching files under root
func (s *Scanner) Scan(root string) ([]string, error) {
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	var files []string
	err = afero.Walk(s.fs, root, func(location string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		relative, err := filepath.Rel(root, location)
		if err != nil {
			return err
		}
		if info.IsDir() {
			if s.IgnoresDir(relative) {
				return filepath.SkipDir
			}
			return nil
		}
		if info.Mode().IsRegular() && s.Match(relative) {
			files = append(files, location)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan %v: %w", root, err)
	}
	sort.Strings(files)
	return files, nil
}
