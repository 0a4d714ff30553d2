package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/afs/file"
)

// DefaultConfigFile is the config looked up in the working directory
const DefaultConfigFile = "i18n-pipeline.yaml"

const yamlTemplate = `# Folder scanned for sources; detected from package.json when omitted
projectRoot: /absolute/path/to/your-ui-project
input:
  - src/**/*.{ts,tsx,js,jsx}
locales:
  - en-US
output: .output/{{language}}/{{namespace}}.json
outputMatrixFile: .output/matrix.json
localeFilesByLanguage:
  en-US: /absolute/path/to/your-ui-project/public/locales/en-US/translation.json
  ro-RO: /absolute/path/to/your-ui-project/public/locales/ro-RO/translation.json
  ru-RU: /absolute/path/to/your-ui-project/public/locales/ru-RU/translation.json
`

const tomlTemplate = `# Folder scanned for sources; detected from package.json when omitted
projectRoot = "/absolute/path/to/your-ui-project"
input = ["src/**/*.{ts,tsx,js,jsx}"]
locales = ["en-US"]
output = ".output/{{language}}/{{namespace}}.json"
outputMatrixFile = ".output/matrix.json"

[localeFilesByLanguage]
en-US = "/absolute/path/to/your-ui-project/public/locales/en-US/translation.json"
ro-RO = "/absolute/path/to/your-ui-project/public/locales/ro-RO/translation.json"
ru-RU = "/absolute/path/to/your-ui-project/public/locales/ru-RU/translation.json"
`

// WriteTemplate writes a config template for first time users, in the format matching the extension
func WriteTemplate(ctx context.Context, location string) error {
	content := yamlTemplate
	if strings.ToLower(filepath.Ext(location)) == ".toml" {
		content = tomlTemplate
	}
	fs := afs.New()
	if err := fs.Upload(ctx, location, file.DefaultFileOsMode, strings.NewReader(content)); err != nil {
		return fmt.Errorf("failed to write config template %v: %w", location, err)
	}
	return nil
}
