package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/samvad-hq/barcodeapi-go/internal/config"
	"gopkg.in/yaml.v3"
)

// printJSON renders a JSON document in the configured output format.
func printJSON(w io.Writer, format string, raw json.RawMessage) error {
	switch format {
	case config.OutputYAML:
		var doc any
		if err := json.Unmarshal(raw, &doc); err != nil {
			return fmt.Errorf("decode result: %w", err)
		}
		return printYAML(w, doc)
	default:
		var buf bytes.Buffer
		if err := json.Indent(&buf, raw, "", "  "); err != nil {
			return fmt.Errorf("format result: %w", err)
		}
		buf.WriteByte('\n')
		_, err := w.Write(buf.Bytes())
		return err
	}
}

// printValue renders a Go value in the configured output format.
func printValue(w io.Writer, format string, v any) error {
	if format == config.OutputYAML {
		return printYAML(w, v)
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	return printJSON(w, config.OutputJSON, raw)
}

func printYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return enc.Close()
}

// writeBinary saves data to path, or streams it to w when path is empty.
func writeBinary(w io.Writer, path string, data []byte) error {
	if path == "" {
		_, err := w.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
