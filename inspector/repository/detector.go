package repository

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// Detector identifies project root folders and provides project-related information
type Detector struct {
	fs afero.Fs
	// Project root marker files/directories, by priority
	markers []string
}

// New creates a new project detector reading from fs, or from the OS file system when fs is nil
func New(fs afero.Fs) *Detector {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Detector{
		fs: fs,
		markers: []string{
			"package.json",  // JavaScript/Node projects
			"tsconfig.json", // TypeScript projects without package.json
			"jsconfig.json", // JavaScript projects with editor config only
			".git",          // Generic VCS marker
		},
	}
}

// DetectProject identifies the project root for the given file path and returns project info
func (d *Detector) DetectProject(filePath string, baseURL ...string) (*Project, error) {
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return nil, err
	}
	startDir, err := d.startDir(absPath)
	if err != nil {
		return nil, err
	}

	rootPath, projectType := d.findProjectRoot(startDir)
	info := &Project{
		Type:     "unknown",
		RootPath: startDir,
	}
	if rootPath == "" && len(baseURL) > 0 && baseURL[0] != "" {
		info.RootPath = baseURL[0]
	} else if rootPath != "" {
		info.RootPath = rootPath
		info.Type = projectType
	}

	relPath, err := filepath.Rel(info.RootPath, absPath)
	if err != nil {
		relPath = filepath.Base(absPath)
	}
	info.RelativePath = filepath.ToSlash(relPath)
	info.Name = d.projectName(info.RootPath)
	return info, nil
}

// DetectRepository identifies the repository containing the given file path
func (d *Detector) DetectRepository(filePath string) (*Repository, error) {
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return nil, err
	}
	startDir, err := d.startDir(absPath)
	if err != nil {
		return nil, err
	}
	info, err := d.DetectProject(filePath)
	if err != nil {
		return nil, err
	}
	if gitRoot := d.findGitRoot(startDir); gitRoot != "" {
		return &Repository{
			Kind:   "git",
			Root:   gitRoot,
			Origin: d.extractGitOrigin(gitRoot),
			Info:   info,
		}, nil
	}
	return &Repository{
		Kind: info.Type,
		Root: info.RootPath,
		Info: info,
	}, nil
}

func (d *Detector) startDir(absPath string) (string, error) {
	fileInfo, err := d.fs.Stat(absPath)
	if err != nil {
		return "", err
	}
	if fileInfo.IsDir() {
		return absPath, nil
	}
	return filepath.Dir(absPath), nil
}

func (d *Detector) exists(location string) bool {
	_, err := d.fs.Stat(location)
	return err == nil
}

// findProjectRoot searches up from the current directory for project markers
func (d *Detector) findProjectRoot(startDir string) (string, string) {
	dir := startDir
	for {
		for _, marker := range d.markers {
			if d.exists(filepath.Join(dir, marker)) {
				return dir, determineProjectType(marker)
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", ""
}

func determineProjectType(marker string) string {
	switch marker {
	case "package.json", "jsconfig.json":
		return "javascript"
	case "tsconfig.json":
		return "typescript"
	case ".git":
		return "git"
	}
	return "unknown"
}

// findGitRoot finds the root of the git repository containing the given directory
func (d *Detector) findGitRoot(startDir string) string {
	dir := startDir
	homeDir := os.Getenv("HOME")
	for {
		if d.exists(filepath.Join(dir, ".git")) {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir || parent == homeDir {
			return ""
		}
		dir = parent
	}
}

// extractGitOrigin extracts the origin URL from git config
func (d *Detector) extractGitOrigin(gitRoot string) string {
	file, err := d.fs.Open(filepath.Join(gitRoot, ".git", "config"))
	if err != nil {
		return ""
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	foundRemote := false
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(line, "[") {
			foundRemote = line == `[remote "origin"]`
			continue
		}
		if foundRemote && strings.HasPrefix(line, "url") {
			if _, value, ok := strings.Cut(line, "="); ok {
				return strings.TrimSpace(value)
			}
		}
	}
	return ""
}

// projectName returns the package.json name, or the root folder name
func (d *Detector) projectName(rootPath string) string {
	data, err := afero.ReadFile(d.fs, filepath.Join(rootPath, "package.json"))
	if err == nil {
		manifest := struct {
			Name string `json:"name"`
		}{}
		if json.Unmarshal(data, &manifest) == nil && manifest.Name != "" {
			return manifest.Name
		}
	}
	return filepath.Base(rootPath)
}
