package catalog

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/afs/file"
)

// BuildXLS renders the matrix as an HTML table that spreadsheet applications open as .xls.
// The first column holds keys, the remaining ones the sorted languages.
func BuildXLS(matrix Matrix) string {
	languages := matrix.Languages()
	builder := strings.Builder{}
	builder.WriteString("<html>\n<head>\n<meta charset=\"utf-8\" />\n</head>\n<body>\n<table border=\"1\">\n")
	builder.WriteString("<tr>")
	writeCell(&builder, "key")
	for _, language := range languages {
		writeCell(&builder, language)
	}
	builder.WriteString("</tr>")
	for _, key := range matrix.Keys() {
		builder.WriteString("\n<tr>")
		writeCell(&builder, key)
		row := matrix[key]
		for _, language := range languages {
			writeCell(&builder, row[language])
		}
		builder.WriteString("</tr>")
	}
	builder.WriteString("\n</table>\n</body>\n</html>")
	return builder.String()
}

func writeCell(builder *strings.Builder, value string) {
	builder.WriteString("<td>")
	builder.WriteString(html.EscapeString(value))
	builder.WriteString("</td>")
}

// ConvertMatrixToXLS reads a matrix JSON document and writes its spreadsheet table
func ConvertMatrixToXLS(ctx context.Context, fs afs.Service, input, output string) error {
	matrix, err := LoadMatrix(ctx, fs, input)
	if err != nil {
		return err
	}
	content := BuildXLS(matrix)
	if err = fs.Upload(ctx, output, file.DefaultFileOsMode, strings.NewReader(content)); err != nil {
		return fmt.Errorf("failed to write xls %v: %w", output, err)
	}
	return nil
}
