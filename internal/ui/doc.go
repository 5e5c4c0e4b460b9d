// Package ui holds the small set of styled output helpers used by the
// non-dashboard commands: status symbols, the ANSI palette and plain tables.
//
// Colors are ANSI codes rather than hex so output stays readable on 16-color
// terminals. Call DisableColors for --no-color.
package ui
