// © 2026 AstroQC Contributors
//
// SPDX-License-Identifier: MIT

package printer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/astroqc/tpfqc/internal/cli/renderer"
	"github.com/astroqc/tpfqc/internal/qc"
	"github.com/astroqc/tpfqc/internal/tpf"
)

type Consumer string

const (
	ConsumerHuman   Consumer = "human"
	ConsumerMachine Consumer = "machine"
)

type MachineReadablePrinter[T any] struct {
	w      io.Writer
	format string
}

func NewMachineReadablePrinter[T any](w io.Writer, format string) *MachineReadablePrinter[T] {
	return &MachineReadablePrinter[T]{
		w:      w,
		format: format,
	}
}

func (p *MachineReadablePrinter[T]) Print(v *T) error {
	var data []byte
	var err error
	switch p.format {
	case "json":
		data, err = json.Marshal(v)
		if err != nil {
			return fmt.Errorf("json marshal: %w", err)
		}
	case "yaml":
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err = enc.Encode(v); err != nil {
			return fmt.Errorf("yaml encode: %w", err)
		}
		data = buf.Bytes()
	default:
		return fmt.Errorf("unsupported format: %s", p.format)
	}
	if !bytes.HasSuffix(data, []byte("\n")) {
		data = append(data, '\n')
	}
	_, err = p.w.Write(data)
	if err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

type HumanReadablePrinter[T any] struct {
	w io.Writer
}

func NewHumanReadablePrinter[T any](w io.Writer) *HumanReadablePrinter[T] {
	return &HumanReadablePrinter[T]{
		w: w,
	}
}

func (p *HumanReadablePrinter[T]) Print(v any) error {
	switch v := any(v).(type) {
	case *qc.Report:
		output, err := renderer.RenderReport(v)
		if err != nil {
			return fmt.Errorf("render report: %w", err)
		}
		_, err = p.w.Write([]byte(output))
		if err != nil {
			return fmt.Errorf("write output: %w", err)
		}
	case *tpf.QualitySummary:
		output, err := renderer.RenderQualitySummary(v)
		if err != nil {
			return fmt.Errorf("render quality summary: %w", err)
		}
		_, err = p.w.Write([]byte(output))
		if err != nil {
			return fmt.Errorf("write output: %w", err)
		}
	default:
		return fmt.Errorf("unsupported type: %T", v)
	}

	return nil
}
