package summary

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// ExportFormat represents supported export formats
type ExportFormat string

const (
	FormatJSON ExportFormat = "json"
)

// ExportRecords writes product records in the requested format. Records
// already carry the wire field names, so they are encoded as-is.
func ExportRecords(records []ProductRecord, format string, writer io.Writer) error {
	exportFormat := ExportFormat(strings.ToLower(format))

	if exportFormat != FormatJSON {
		return fmt.Errorf("unsupported export format: %s (supported: json)", format)
	}

	if records == nil {
		records = []ProductRecord{}
	}

	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(records)
}
