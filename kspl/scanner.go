package kspl

import (
	"regexp"
	"strings"
)

var (
	classLineRe  = regexp.MustCompile(`^class\s+([A-Za-z_]\w*)\s*\{$`)
	fnLineRe     = regexp.MustCompile(`^fn\s+([A-Za-z_]\w*)\s*\(([^)]*)\)\s*\{$`)
	fieldLineRe  = regexp.MustCompile(`^field\s+([A-Za-z_]\w*)\s*=\s*(.+)$`)
	letLineRe    = regexp.MustCompile(`^let\s+([A-Za-z_]\w*)\s*=\s*(.+)$`)
	assignLineRe = regexp.MustCompile(`^([A-Za-z_][\w.]*)\s*=\s*(.*)$`)
	returnLineRe = regexp.MustCompile(`^return(?:\s+(.+))?$`)
	ifLineRe     = regexp.MustCompile(`^if\s+(.+?)\s*\{$`)
	elseLineRe   = regexp.MustCompile(`^\}\s*else\s*\{$`)
)

// Scan splits source into lines and classifies each non-blank,
// non-comment line as one construct token. Header lines additionally
// emit a BLOCK_OPEN, and "} else {" expands to BLOCK_CLOSE, ELSE,
// BLOCK_OPEN. Scan is total: a line matching no construct becomes a
// generic STMT token and any malformed expression text inside it is
// rejected later by the parser.
func Scan(source string) []Token {
	lines := strings.Split(source, "\n")
	tokens := make([]Token, 0, len(lines)+1)
	for i, raw := range lines {
		line := strings.TrimSpace(raw)
		n := i + 1
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}
		if m := classLineRe.FindStringSubmatch(line); m != nil {
			tokens = append(tokens,
				Token{Type: TokenClass, Text: m[1], Line: n},
				Token{Type: TokenBlockOpen, Line: n})
			continue
		}
		if m := fnLineRe.FindStringSubmatch(line); m != nil {
			tokens = append(tokens,
				Token{Type: TokenFn, Text: m[1], Expr: strings.TrimSpace(m[2]), Line: n},
				Token{Type: TokenBlockOpen, Line: n})
			continue
		}
		if m := fieldLineRe.FindStringSubmatch(line); m != nil {
			tokens = append(tokens, Token{Type: TokenField, Text: m[1], Expr: m[2], Line: n})
			continue
		}
		if m := letLineRe.FindStringSubmatch(line); m != nil {
			tokens = append(tokens, Token{Type: TokenLet, Text: m[1], Expr: m[2], Line: n})
			continue
		}
		// A right-hand side starting with "=" came from a "==" comparison,
		// which is a generic statement rather than an assignment.
		if m := assignLineRe.FindStringSubmatch(line); m != nil && !strings.HasPrefix(m[2], "=") {
			tokens = append(tokens, Token{Type: TokenAssign, Text: m[1], Expr: m[2], Line: n})
			continue
		}
		if m := returnLineRe.FindStringSubmatch(line); m != nil {
			tokens = append(tokens, Token{Type: TokenReturn, Expr: m[1], Line: n})
			continue
		}
		if m := ifLineRe.FindStringSubmatch(line); m != nil {
			tokens = append(tokens,
				Token{Type: TokenIf, Expr: m[1], Line: n},
				Token{Type: TokenBlockOpen, Line: n})
			continue
		}
		if elseLineRe.MatchString(line) {
			tokens = append(tokens,
				Token{Type: TokenBlockClose, Line: n},
				Token{Type: TokenElse, Line: n},
				Token{Type: TokenBlockOpen, Line: n})
			continue
		}
		if line == "}" {
			tokens = append(tokens, Token{Type: TokenBlockClose, Line: n})
			continue
		}
		tokens = append(tokens, Token{Type: TokenStmt, Expr: line, Line: n})
	}
	tokens = append(tokens, Token{Type: TokenEOF, Line: len(lines) + 1})
	return tokens
}
