// Package render assembles post output from a content-type layout and the
// values held in a form session. Two contracts share the same layout:
//
//   - Canonical produces the exact text copied to the clipboard. Missing or
//     empty text fields render as the empty string, multi-line fields are
//     interpolated verbatim and media fields contribute their marker only
//     when a preview exists.
//   - Preview produces display blocks. Missing text fields render as the
//     field's preview label and multi-line fields are split into one
//     decorated line per entry.
//
// Both walk the same blocks in the same order with the same connective text,
// so the two outputs can only differ in default substitution and line
// decoration.
package render
