package service

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/anthanhphan/go-dataset-preview/internal/domain"
	"github.com/anthanhphan/gosdk/logger"
	"github.com/xuri/excelize/v2"
)

// parseService turns reassembled tabular bytes into a bounded preview.
// Previews keep only the first rows but always report totals computed over
// the whole input.
type parseService struct {
	core *PipelineServiceImpl
}

// newParseService creates the tabular parsing use-case service.
func newParseService(core *PipelineServiceImpl) *parseService {
	return &parseService{core: core}
}

// parsePreview dispatches on extension/MIME and never fails: a broken input
// degrades to a visible one-cell fallback instead of aborting the upload.
func (s *parseService) parsePreview(data []byte, filename, mimeType string) *domain.TabularPreview {
	preview, err := s.parseTabular(data, filename, mimeType)
	if err != nil {
		logger.Warnw("Tabular parse degraded", "file_name", filename, "error", err.Error())
		return degradedPreview()
	}
	return preview
}

func (s *parseService) parseTabular(data []byte, filename, mimeType string) (*domain.TabularPreview, error) {
	switch ext := fileExtension(filename); {
	case ext == "csv" || mimeType == "text/csv":
		return s.parseCSV(data)
	case ext == "json" || mimeType == "application/json":
		return s.parseJSON(data)
	case ext == "xlsx" || ext == "xls":
		return s.parseExcel(data)
	default:
		return nil, fmt.Errorf("unsupported tabular type: %q", ext)
	}
}

// parseCSV streams the whole input to count rows while keeping only the
// preview window. Standard comma/quote/newline semantics come from the
// underlying reader.
func (s *parseService) parseCSV(data []byte) (*domain.TabularPreview, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1

	headers, err := reader.Read()
	if err == io.EOF {
		return &domain.TabularPreview{Headers: []string{}, Rows: [][]domain.Cell{}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("csv header read failed: %w", err)
	}
	for i := range headers {
		headers[i] = trimCell(headers[i])
	}

	limit := s.core.previewRows()
	rows := make([][]domain.Cell, 0, limit)
	totalRows := 0

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csv row read failed: %w", err)
		}

		totalRows++
		if len(rows) >= limit {
			continue
		}

		cells := make([]domain.Cell, len(headers))
		for i := range headers {
			if i < len(record) {
				cells[i] = domain.TextCell(trimCell(record[i]))
			} else {
				cells[i] = domain.TextCell("")
			}
		}
		rows = append(rows, cells)
	}

	return &domain.TabularPreview{
		Headers:      headers,
		Rows:         rows,
		TotalRows:    totalRows,
		TotalColumns: len(headers),
	}, nil
}

// parseJSON accepts a top-level array of objects, deriving headers from the
// first element's keys in document order. Anything else degenerates to a
// single stringified cell.
func (s *parseService) parseJSON(data []byte) (*domain.TabularPreview, error) {
	trimmed := bytes.TrimSpace(data)
	if !json.Valid(trimmed) {
		return nil, fmt.Errorf("invalid json input")
	}
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return degenerateJSONPreview(trimmed), nil
	}

	var elements []json.RawMessage
	if err := json.Unmarshal(trimmed, &elements); err != nil {
		return nil, fmt.Errorf("json array decode failed: %w", err)
	}
	if len(elements) == 0 {
		return degenerateJSONPreview(trimmed), nil
	}

	headers, err := orderedJSONKeys(elements[0])
	if err != nil {
		return nil, fmt.Errorf("json header derivation failed: %w", err)
	}

	limit := s.core.previewRows()
	if limit > len(elements) {
		limit = len(elements)
	}

	rows := make([][]domain.Cell, 0, limit)
	for _, raw := range elements[:limit] {
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.UseNumber()
		var obj map[string]interface{}
		if err := dec.Decode(&obj); err != nil {
			return nil, fmt.Errorf("json row decode failed: %w", err)
		}

		cells := make([]domain.Cell, len(headers))
		for i, header := range headers {
			cells[i] = domain.TextCell(stringifyJSONValue(obj[header]))
		}
		rows = append(rows, cells)
	}

	return &domain.TabularPreview{
		Headers:      headers,
		Rows:         rows,
		TotalRows:    len(elements),
		TotalColumns: len(headers),
	}, nil
}

// parseExcel reads the first worksheet only. Cell coercion (rich text to
// display text, formulas to cached results) is handled by the workbook
// reader's string extraction.
func (s *parseService) parseExcel(data []byte) (*domain.TabularPreview, error) {
	workbook, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("workbook open failed: %w", err)
	}
	defer workbook.Close()

	sheets := workbook.GetSheetList()
	if len(sheets) == 0 {
		return &domain.TabularPreview{Headers: []string{}, Rows: [][]domain.Cell{}}, nil
	}

	allRows, err := workbook.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("worksheet read failed: %w", err)
	}
	if len(allRows) == 0 {
		return &domain.TabularPreview{Headers: []string{}, Rows: [][]domain.Cell{}}, nil
	}

	headers := allRows[0]
	dataRows := allRows[1:]

	limit := s.core.previewRows()
	if limit > len(dataRows) {
		limit = len(dataRows)
	}

	rows := make([][]domain.Cell, 0, limit)
	for _, record := range dataRows[:limit] {
		cells := make([]domain.Cell, len(headers))
		for i := range headers {
			if i < len(record) {
				cells[i] = domain.TextCell(record[i])
			} else {
				cells[i] = domain.TextCell("")
			}
		}
		rows = append(rows, cells)
	}

	return &domain.TabularPreview{
		Headers:      headers,
		Rows:         rows,
		TotalRows:    len(dataRows),
		TotalColumns: len(headers),
	}, nil
}

// degradedPreview is the user-facing fallback for unparseable input.
func degradedPreview() *domain.TabularPreview {
	return &domain.TabularPreview{
		Headers:      []string{"Error"},
		Rows:         [][]domain.Cell{{domain.TextCell("Failed to parse file")}},
		TotalRows:    0,
		TotalColumns: 1,
	}
}

// documentPreview is the placeholder for files with no tabular structure.
func documentPreview() *domain.TabularPreview {
	return &domain.TabularPreview{
		Headers:      []string{"Data"},
		Rows:         [][]domain.Cell{{domain.TextCell("File content preview not available")}},
		TotalRows:    0,
		TotalColumns: 1,
	}
}

// degenerateJSONPreview renders non-array or empty JSON as one compacted cell.
func degenerateJSONPreview(raw []byte) *domain.TabularPreview {
	var compact bytes.Buffer
	cell := string(raw)
	if err := json.Compact(&compact, raw); err == nil {
		cell = compact.String()
	}

	return &domain.TabularPreview{
		Headers:      []string{"Data"},
		Rows:         [][]domain.Cell{{domain.TextCell(cell)}},
		TotalRows:    1,
		TotalColumns: 1,
	}
}

// orderedJSONKeys walks one JSON object's tokens to recover key order, which
// a map decode would destroy.
func orderedJSONKeys(raw json.RawMessage) ([]string, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("array element is not an object")
	}

	var keys []string
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected token %v in object", keyTok)
		}
		keys = append(keys, key)

		if err := skipJSONValue(dec); err != nil {
			return nil, err
		}
	}
	return keys, nil
}

// skipJSONValue consumes one value, tracking nesting depth.
func skipJSONValue(dec *json.Decoder) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	delim, ok := tok.(json.Delim)
	if !ok || (delim != '{' && delim != '[') {
		return nil
	}

	depth := 1
	for depth > 0 {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		if d, ok := tok.(json.Delim); ok {
			switch d {
			case '{', '[':
				depth++
			case '}', ']':
				depth--
			}
		}
	}
	return nil
}

// stringifyJSONValue renders a decoded JSON value the way a cell displays it.
func stringifyJSONValue(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case json.Number:
		return val.String()
	case bool:
		return strconv.FormatBool(val)
	default:
		encoded, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprintf("%v", val)
		}
		return string(encoded)
	}
}

// trimCell matches the whitespace handling of naive delimiter splits.
func trimCell(s string) string {
	return strings.TrimSpace(s)
}
