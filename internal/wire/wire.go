// Package wire implements the newline-terminated JSON line codec spoken on
// the local socket. One message per line, request then response, UTF-8.
package wire

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// Encode serializes value as a single JSON line, newline-terminated.
func Encode(value any) ([]byte, error) {
	line, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("encode message: %w", err)
	}
	return append(line, '\n'), nil
}

// Decode parses one line (with or without its trailing newline) into out.
func Decode(line []byte, out any) error {
	line = bytes.TrimSpace(line)
	if len(line) == 0 {
		return fmt.Errorf("decode message: empty line")
	}
	if err := json.Unmarshal(line, out); err != nil {
		return fmt.Errorf("decode message: %w", err)
	}
	return nil
}

// ReadLine reads one newline-terminated line. An immediate EOF with no data
// is reported as io.EOF; a partial line followed by EOF is returned as-is.
func ReadLine(reader *bufio.Reader) ([]byte, error) {
	line, err := reader.ReadBytes('\n')
	if len(line) == 0 && err != nil {
		return nil, err
	}
	if err != nil && err != io.EOF {
		return nil, err
	}
	return line, nil
}

// WriteLine encodes value and writes it to writer in one call.
func WriteLine(writer io.Writer, value any) error {
	line, err := Encode(value)
	if err != nil {
		return err
	}
	if _, err := writer.Write(line); err != nil {
		return fmt.Errorf("write message: %w", err)
	}
	return nil
}
