package outwriter

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/dorascope/dorascope/internal/contract"
)

// writeWithFile handles the common pattern of opening an output file (or stdout),
// running a writer function against it, and reporting success to stderr.
func writeWithFile(outputFile string, writer func(io.Writer) error, successMsg string) error {
	file, err := contract.SelectOutputFile(outputFile)
	if err != nil {
		return err
	}
	if file != os.Stdout {
		defer func() { _ = file.Close() }()
	}

	if err := writer(file); err != nil {
		return err
	}

	if outputFile != "" {
		// Status goes to stderr so piped stdout stays clean
		fmt.Fprintf(os.Stderr, "💾 %s to %s\n", successMsg, outputFile)
	}
	return nil
}

// writeJSON encodes data as indented JSON to the writer.
func writeJSON(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// writeCSVWithHeader writes a header row and then hands the CSV writer to the
// row callback. Flush errors surface through the writer's Error method.
func writeCSVWithHeader(w io.Writer, header []string, writeRows func(*csv.Writer) error) error {
	csvWriter := csv.NewWriter(w)
	if err := csvWriter.Write(header); err != nil {
		return err
	}
	if err := writeRows(csvWriter); err != nil {
		return err
	}
	csvWriter.Flush()
	return csvWriter.Error()
}

// createFormatters returns a float formatter honoring the configured precision
// and the integer format verb used across table and CSV output.
func createFormatters(precision int) (func(float64) string, string) {
	numFmt := fmt.Sprintf("%%.%df", precision)
	fmtFloat := func(v float64) string {
		return fmt.Sprintf(numFmt, v)
	}
	return fmtFloat, "%d"
}
