// Package exporter renders dashboard views into files: CSV tables for
// downstream tooling and a multi-sheet Excel workbook for analysts.
// cmd/report drives both from the CLI; the web server streams the
// workbook from the export endpoint.
package exporter
