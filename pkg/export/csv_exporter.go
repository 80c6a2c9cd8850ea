package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
)

// CSVExporter renders a Document as CSV. Banner and metadata become
// leading single-column records; blocks are separated by blank records.
type CSVExporter struct{}

// NewCSVExporter builds a CSV exporter.
func NewCSVExporter() *CSVExporter {
	return &CSVExporter{}
}

// Render produces CSV encoded bytes for the document.
func (e *CSVExporter) Render(doc Document) ([]byte, error) {
	buf := &bytes.Buffer{}
	writer := csv.NewWriter(buf)

	for _, line := range doc.Banner {
		if err := writer.Write([]string{line}); err != nil {
			return nil, fmt.Errorf("write banner: %w", err)
		}
	}
	for _, kv := range doc.Meta {
		if err := writer.Write([]string{kv.Key, kv.Value}); err != nil {
			return nil, fmt.Errorf("write metadata: %w", err)
		}
	}
	for _, kv := range doc.Filters {
		if err := writer.Write([]string{kv.Key, kv.Value}); err != nil {
			return nil, fmt.Errorf("write filter: %w", err)
		}
	}

	for _, block := range doc.Blocks {
		if err := writer.Write([]string{}); err != nil {
			return nil, fmt.Errorf("write separator: %w", err)
		}
		if err := writer.Write([]string{block.Title}); err != nil {
			return nil, fmt.Errorf("write block title: %w", err)
		}
		if err := writer.Write(block.Headers); err != nil {
			return nil, fmt.Errorf("write block headers: %w", err)
		}
		for _, row := range block.Rows {
			if err := writer.Write(row); err != nil {
				return nil, fmt.Errorf("write block row: %w", err)
			}
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}
