// Package render prints dispatcher tables and dispatch results.
//
// Output comes in several formats: rich terminal output styled with
// lipgloss, plain text, and the structured formats JSON, TOML and YAML.
// FormatAuto picks terminal or text from the output's capabilities.
//
// In terminal output, error and info lines carry pterm's prefix blocks
// (ERROR, INFO); everything else is styled with lipgloss.
package render
