package authlog

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

//Format identifies how an input file is encoded
type Format int

const (
	//FormatUnknown is returned for unsupported file names
	FormatUnknown Format = iota
	//FormatCSV is comma separated text with a header row
	FormatCSV
	//FormatJSONLines is one JSON object per line
	FormatJSONLines
)

//Compression identifies how an input file is compressed
type Compression int

const (
	//CompressionNone is a plain text file
	CompressionNone Compression = iota
	//CompressionGzip is a .gz file
	CompressionGzip
	//CompressionZstd is a .zst file
	CompressionZstd
)

// utf8BOM is stripped from the start of the header row
const utf8BOM = "\ufeff"

//DetectFormat picks the format and compression of a file from its name
func DetectFormat(path string) (Format, Compression) {
	name := strings.ToLower(path)
	compression := CompressionNone

	if strings.HasSuffix(name, ".gz") {
		compression = CompressionGzip
		name = strings.TrimSuffix(name, ".gz")
	} else if strings.HasSuffix(name, ".zst") {
		compression = CompressionZstd
		name = strings.TrimSuffix(name, ".zst")
	}

	switch {
	case strings.HasSuffix(name, ".csv"):
		return FormatCSV, compression
	case strings.HasSuffix(name, ".json"),
		strings.HasSuffix(name, ".jsonl"),
		strings.HasSuffix(name, ".ndjson"):
		return FormatJSONLines, compression
	}
	return FormatUnknown, compression
}

//ReadFile decodes an authentication log file into a Table
func ReadFile(path string) (*Table, error) {
	format, compression := DetectFormat(path)
	if format == FormatUnknown {
		return nil, fmt.Errorf("%s: unsupported file type", path)
	}

	fileHandle, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fileHandle.Close()

	rdr, err := decompress(fileHandle, compression)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	defer rdr.Close()

	var table *Table
	switch format {
	case FormatCSV:
		table, err = ReadCSV(rdr)
	case FormatJSONLines:
		table, err = ReadJSONLines(rdr)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	table.Source = path
	return table, nil
}

// decompress wraps the reader in the decoder for the given compression
func decompress(rdr io.Reader, compression Compression) (io.ReadCloser, error) {
	switch compression {
	case CompressionGzip:
		return gzip.NewReader(rdr)
	case CompressionZstd:
		dec, err := zstd.NewReader(rdr)
		if err != nil {
			return nil, err
		}
		return dec.IOReadCloser(), nil
	}
	return io.NopCloser(rdr), nil
}

//ReadCSV decodes comma separated text whose first record is the header.
//Rows may have more or fewer cells than the header.
func ReadCSV(rdr io.Reader) (*Table, error) {
	csvReader := csv.NewReader(rdr)
	csvReader.FieldsPerRecord = -1
	csvReader.LazyQuotes = true

	table := &Table{}

	header, err := csvReader.Read()
	if err == io.EOF {
		return table, nil
	}
	if err != nil {
		return nil, err
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], utf8BOM)
	}
	table.Header = header

	for {
		row, err := csvReader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		table.Rows = append(table.Rows, row)
	}
	return table, nil
}

//ReadJSONLines decodes one JSON object per line. The header is taken
//from the keys of the first object in sorted order; keys which only
//appear in later objects are ignored.
func ReadJSONLines(rdr io.Reader) (*Table, error) {
	scanner := bufio.NewScanner(rdr)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	table := &Table{}
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if len(line) == 0 {
			continue
		}

		var obj map[string]interface{}
		if err := json.Unmarshal([]byte(line), &obj); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}

		if table.Header == nil {
			table.Header = make([]string, 0, len(obj))
			for key := range obj {
				table.Header = append(table.Header, key)
			}
			sort.Strings(table.Header)
		}

		row := make([]string, len(table.Header))
		for i, key := range table.Header {
			row[i] = jsonCell(obj[key])
		}
		table.Rows = append(table.Rows, row)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return table, nil
}

// jsonCell renders a decoded JSON value as the text a CSV cell would hold
func jsonCell(val interface{}) string {
	switch v := val.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		encoded, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprint(v)
		}
		return string(encoded)
	}
}
