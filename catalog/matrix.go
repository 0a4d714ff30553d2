package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"golang.org/x/exp/maps"
)

// Row maps a language to the translated value of one key
type Row map[string]string

// Matrix maps a translation key to its row of translations
type Matrix map[string]Row

// Keys returns the sorted matrix keys
func (m Matrix) Keys() []string {
	keys := maps.Keys(m)
	sort.Strings(keys)
	return keys
}

// Languages returns the sorted union of languages used by any row
func (m Matrix) Languages() []string {
	unique := map[string]bool{}
	for _, row := range m {
		for language := range row {
			unique[language] = true
		}
	}
	languages := maps.Keys(unique)
	sort.Strings(languages)
	return languages
}

// Filter returns a matrix holding exactly keys, each row holding exactly languages.
// Missing keys or translations are filled with empty strings.
func (m Matrix) Filter(keys []string, languages []string) Matrix {
	result := make(Matrix, len(keys))
	for _, key := range keys {
		source := m[key]
		row := make(Row, len(languages))
		for _, language := range languages {
			row[language] = source[language]
		}
		result[key] = row
	}
	return result
}

// BuildMatrix reads one nested translation document per language and merges them by flattened key.
// Every row holds a column for every language.
func BuildMatrix(ctx context.Context, fs afs.Service, filesByLanguage map[string]string) (Matrix, error) {
	matrix := Matrix{}
	languages := maps.Keys(filesByLanguage)
	sort.Strings(languages)
	for _, language := range languages {
		location := filesByLanguage[language]
		data, err := fs.DownloadWithURL(ctx, location)
		if err != nil {
			return nil, fmt.Errorf("failed to read %v translations %v: %w", language, location, err)
		}
		value, err := decode(data)
		if err != nil {
			return nil, fmt.Errorf("failed to decode %v translations %v: %w", language, location, err)
		}
		for key, translated := range Flatten(value) {
			row, ok := matrix[key]
			if !ok {
				row = Row{}
				matrix[key] = row
			}
			row[language] = translated
		}
	}
	for _, row := range matrix {
		for _, language := range languages {
			if _, ok := row[language]; !ok {
				row[language] = ""
			}
		}
	}
	return matrix, nil
}

// LoadMatrix reads a matrix JSON document
func LoadMatrix(ctx context.Context, fs afs.Service, location string) (Matrix, error) {
	data, err := fs.DownloadWithURL(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("failed to read matrix %v: %w", location, err)
	}
	matrix := Matrix{}
	if err = json.Unmarshal(data, &matrix); err != nil {
		return nil, fmt.Errorf("failed to decode matrix %v: %w", location, err)
	}
	return matrix, nil
}

// SaveMatrix writes the matrix as indented JSON, creating parent folders as needed
func SaveMatrix(ctx context.Context, fs afs.Service, location string, matrix Matrix) error {
	data, err := json.MarshalIndent(matrix, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode matrix: %w", err)
	}
	if err = fs.Upload(ctx, location, file.DefaultFileOsMode, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to write matrix %v: %w", location, err)
	}
	return nil
}
