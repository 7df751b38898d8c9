package record

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// MaxJSONLLineCapacity is the maximum buffer size for reading JSONL lines (1MB per line).
const MaxJSONLLineCapacity = 1024 * 1024

// ReadRawJSONL reads raw publication rows from a JSONL file.
func ReadRawJSONL(path string) ([]Raw, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening records file: %w", err)
	}
	defer f.Close()

	raws, err := DecodeRawJSONL(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return raws, nil
}

// DecodeRawJSONL decodes one Raw per non-empty line.
func DecodeRawJSONL(r io.Reader) ([]Raw, error) {
	scanner := bufio.NewScanner(r)
	buf := make([]byte, MaxJSONLLineCapacity)
	scanner.Buffer(buf, MaxJSONLLineCapacity)

	var raws []Raw
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var raw Raw
		if err := json.Unmarshal(line, &raw); err != nil {
			return nil, fmt.Errorf("parsing line %d: %w", lineNum, err)
		}
		raws = append(raws, raw)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading records: %w", err)
	}

	return raws, nil
}

// WriteRawJSONL writes rows as JSONL, one object per line.
func WriteRawJSONL(w io.Writer, raws []Raw) error {
	enc := json.NewEncoder(w)
	for i, raw := range raws {
		if err := enc.Encode(raw); err != nil {
			return fmt.Errorf("encoding record %d: %w", i, err)
		}
	}
	return nil
}
