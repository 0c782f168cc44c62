// Package output provides structured output formatting for the glot CLI.
package output

import (
	"encoding/json"
	"io"
	"os"
)

// Writer handles structured output.
type Writer struct {
	encoder *json.Encoder
	compact bool
}

// Config holds output configuration.
type Config struct {
	Compact bool
	Output  io.Writer
}

// New creates a new output Writer.
func New(cfg Config) *Writer {
	if cfg.Output == nil {
		cfg.Output = os.Stdout
	}

	enc := json.NewEncoder(cfg.Output)
	enc.SetEscapeHTML(false)
	if !cfg.Compact {
		enc.SetIndent("", "  ")
	}

	return &Writer{
		encoder: enc,
		compact: cfg.Compact,
	}
}

// Write outputs a value as JSON.
func (w *Writer) Write(v any) error {
	return w.encoder.Encode(v)
}
