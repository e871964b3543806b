/*
Package export turns query results into downloadable artifacts.

PURPOSE:
  Encodes a consulta.QueryResult into a serialized document (JSON or CSV)
  and optionally persists it to the export directory. Encoders are behind a
  small interface so a binary renderer (PDF) can be plugged in later without
  touching the handlers.

ENCODERS:
  - JSON: the full envelope (title, summary, columns, rows), indented
  - CSV:  declared column order as the header, one line per data row;
          the summary is not flattened into the table

FAILURE CONTRACT:
  Export failures never modify the result being displayed. Callers surface
  a user-visible message and keep the in-memory result as is.

SEE ALSO:
  - consulta/projection.go: The envelope being encoded
  - api/handlers.go: The HTTP surface that triggers exports
*/
package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/natefinch/atomic"

	"github.com/almacen/consulta-engine/consulta"
)

// Encoder serializes a query result into one artifact format.
type Encoder interface {
	// Encode renders the result. It must not mutate it.
	Encode(res *consulta.QueryResult) ([]byte, error)

	// Ext returns the file extension without the dot.
	Ext() string

	// ContentType returns the MIME type for HTTP responses.
	ContentType() string
}

// For returns the encoder registered for the given format name.
func For(format string) (Encoder, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "":
		return jsonEncoder{}, nil
	case "csv":
		return csvEncoder{}, nil
	default:
		return nil, fmt.Errorf("formato de exportación no soportado: %q", format)
	}
}

// =============================================================================
// JSON
// =============================================================================

type jsonEncoder struct{}

func (jsonEncoder) Ext() string         { return "json" }
func (jsonEncoder) ContentType() string { return "application/json" }

func (jsonEncoder) Encode(res *consulta.QueryResult) ([]byte, error) {
	if res == nil {
		return nil, fmt.Errorf("no hay resultados para exportar")
	}
	return json.MarshalIndent(res, "", "  ")
}

// =============================================================================
// CSV
// =============================================================================

type csvEncoder struct{}

func (csvEncoder) Ext() string         { return "csv" }
func (csvEncoder) ContentType() string { return "text/csv" }

func (csvEncoder) Encode(res *consulta.QueryResult) ([]byte, error) {
	if res == nil {
		return nil, fmt.Errorf("no hay resultados para exportar")
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	columns := res.Columns
	if len(columns) == 0 {
		// No declared order: derive a stable one from the first row.
		if len(res.Data) > 0 {
			for k := range res.Data[0] {
				columns = append(columns, k)
			}
		}
	}
	if err := w.Write(columns); err != nil {
		return nil, err
	}

	line := make([]string, len(columns))
	for _, row := range res.Data {
		for i, col := range columns {
			line[i] = cellText(row[col])
		}
		if err := w.Write(line); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func cellText(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case fmt.Stringer:
		return x.String()
	default:
		b, err := json.Marshal(x)
		if err != nil {
			return fmt.Sprint(x)
		}
		return string(b)
	}
}

// =============================================================================
// DISK WRITER
// =============================================================================

// Writer persists encoded artifacts under a directory. The write is atomic:
// readers of the export directory never observe a half-written file.
type Writer struct {
	Dir string
}

// Write encodes the result and stores it as <type>_<timestamp>.<ext>,
// returning the full path of the written artifact.
func (wr Writer) Write(res *consulta.QueryResult, enc Encoder) (string, error) {
	data, err := enc.Encode(res)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(wr.Dir, 0o755); err != nil {
		return "", err
	}
	name := fmt.Sprintf("%s_%s.%s", res.Type, time.Now().Format("20060102_150405"), enc.Ext())
	path := filepath.Join(wr.Dir, name)
	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return "", err
	}
	return path, nil
}
