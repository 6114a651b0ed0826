package kspl

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// formatCodeFrame renders the offending source line with a caret under
// its first non-blank column. KSPL positions are line-granular, so the
// caret marks where the construct starts rather than an exact column.
func formatCodeFrame(source string, line int) string {
	if source == "" || line <= 0 {
		return ""
	}
	lines := strings.Split(source, "\n")
	if line > len(lines) {
		return ""
	}
	lineText := lines[line-1]
	indent := lineText[:len(lineText)-len(strings.TrimLeft(lineText, " \t"))]

	lineLabel := strconv.Itoa(line)
	gutterPad := strings.Repeat(" ", len(lineLabel))

	return fmt.Sprintf(
		"  --> line %d\n %s | %s\n %s | %s^",
		line,
		lineLabel,
		lineText,
		gutterPad,
		indent,
	)
}

// FormatErrorWithSource renders err for terminal display, pointing a
// code frame at the failing line of source. The library never prints
// this itself; command front ends call it before writing to stderr.
func FormatErrorWithSource(err error, source string) string {
	if err == nil {
		return ""
	}
	var scriptErr *ScriptError
	if errors.As(err, &scriptErr) {
		var b strings.Builder
		b.WriteString(scriptErr.Err.Error())
		if frame := formatCodeFrame(source, errorLine(scriptErr.Err)); frame != "" {
			b.WriteString("\n")
			b.WriteString(frame)
		}
		renderStackFrames(&b, scriptErr.Frames)
		return b.String()
	}
	msg := err.Error()
	if frame := formatCodeFrame(source, errorLine(err)); frame != "" {
		return msg + "\n" + frame
	}
	return msg
}
