package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"text/tabwriter"

	"gopkg.in/yaml.v3"
)

// Formatter serializes a spectrum snapshot for output.
type Formatter interface {
	Format(s *Snapshot) ([]byte, error)
}

// NewFormatter returns the formatter for the given output format name.
func NewFormatter(format string) (Formatter, error) {
	switch format {
	case "json":
		return &JSONFormatter{}, nil
	case "yaml":
		return &YAMLFormatter{}, nil
	case "csv":
		return &CSVFormatter{}, nil
	case "table":
		return &TableFormatter{}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

// JSONFormatter emits an indented JSON document.
type JSONFormatter struct{}

func (f *JSONFormatter) Format(s *Snapshot) ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}

// YAMLFormatter emits a YAML document.
type YAMLFormatter struct{}

func (f *YAMLFormatter) Format(s *Snapshot) ([]byte, error) {
	return yaml.Marshal(s)
}

// CSVFormatter emits one header row plus one row per bin.
type CSVFormatter struct{}

func (f *CSVFormatter) Format(s *Snapshot) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"bin", "frequency_hz", "magnitude", "dbfs"}); err != nil {
		return nil, err
	}
	for _, row := range s.Bins {
		record := []string{
			strconv.Itoa(row.Bin),
			strconv.FormatFloat(row.FrequencyHz, 'f', 3, 64),
			strconv.FormatFloat(row.Magnitude, 'f', 6, 64),
			strconv.FormatFloat(row.DBFS, 'f', 2, 64),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

// TableFormatter emits an aligned human-readable table.
type TableFormatter struct{}

func (f *TableFormatter) Format(s *Snapshot) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "Spectrum #%d  fft_size=%d  sample_rate=%.0f Hz  captured_at=%s\n\n",
		s.Sequence, s.FFTSize, s.SampleRate, s.CapturedAt.Format("15:04:05.000"))

	w := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "BIN\tFREQUENCY (Hz)\tMAGNITUDE\tLEVEL (dBFS)")
	for _, row := range s.Bins {
		fmt.Fprintf(w, "%d\t%.3f\t%.6f\t%.2f\n", row.Bin, row.FrequencyHz, row.Magnitude, row.DBFS)
	}
	if err := w.Flush(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
