package repository

// Repository describes the version controlled tree holding a project
type Repository struct {
	Kind   string
	Root   string
	Origin string
	Info   *Project
}

// Project represents information about a detected project
type Project struct {
	RootPath     string // Absolute path to the project root directory
	Type         string // Type of project (javascript, typescript, git)
	Name         string // Name of the project, from package.json when present
	RelativePath string // Path from project root to the specified file
}
