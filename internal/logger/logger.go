package logger

import (
	"github.com/fatih/color"
)

// Colorized printing functions for console status lines. These are package-level
// variables holding functions that behave like fmt.Printf, colored per level.

// Info prints progress messages in cyan (e.g. "Installing htop...").
var Info = color.New(color.FgCyan).PrintfFunc()

// Success prints success confirmations in green.
var Success = color.New(color.FgGreen).PrintfFunc()

// Warn prints warnings in bright magenta.
var Warn = color.New(color.FgHiMagenta).PrintfFunc()

// Error prints failures in red.
var Error = color.New(color.FgRed).PrintfFunc()

// Debug prints diagnostic messages in faint white when enabled, otherwise is a no-op.
// It is assigned during Init based on the debug flag.
var Debug func(format string, a ...any)

func init() {
	// Keep Debug callable even if Init was never run (library use, tests).
	Debug = func(format string, a ...any) {}
}

// Init enables or disables debug output. When disabled, Debug silently drops messages.
func Init(enableDebug bool) {
	if enableDebug {
		Debug = color.New(color.Faint).PrintfFunc()
	} else {
		Debug = func(format string, a ...any) {}
	}
}
