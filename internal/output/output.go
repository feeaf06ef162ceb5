// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

// Package output renders command results as aligned tables or JSON.
package output

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// Format is a rendering mode selectable with --output.
type Format string

const (
	OutputTable Format = "table"
	OutputJSON  Format = "json"
)

// OutputOptions carries the --output flag for a command.
type OutputOptions struct {
	raw      string
	def      Format
	resolved Format
}

// AddOutputFlags registers the --output flag with the given default.
func (o *OutputOptions) AddOutputFlags(cmd *cobra.Command, def Format) {
	o.def = def
	cmd.Flags().StringVarP(&o.raw, "output", "o", string(def), "Output format: table or json")
}

// Resolve validates the flag value. Call it first in RunE.
func (o *OutputOptions) Resolve() error {
	if o.raw == "" {
		o.resolved = o.def
		return nil
	}
	switch Format(strings.ToLower(o.raw)) {
	case OutputTable:
		o.resolved = OutputTable
	case OutputJSON:
		o.resolved = OutputJSON
	default:
		return fmt.Errorf("unknown output format %q (choose table or json)", o.raw)
	}
	return nil
}

// Is reports whether the resolved format matches f.
func (o *OutputOptions) Is(f Format) bool { return o.resolved == f }

// JSON prints v as indented JSON to stdout.
func JSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Table is a minimal aligned-column renderer.
type Table struct {
	headers []string
	rows    [][]string
}

// NewTable creates a table with the given column headers.
func NewTable(headers ...string) *Table {
	return &Table{headers: headers}
}

// AddRow appends one row; values beyond the header count are dropped.
func (t *Table) AddRow(cells ...string) {
	if len(cells) > len(t.headers) {
		cells = cells[:len(t.headers)]
	}
	t.rows = append(t.rows, cells)
}

// Render writes the table to stdout.
func (t *Table) Render() {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join(t.headers, "\t"))
	for _, row := range t.rows {
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	w.Flush()
}
