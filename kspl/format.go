package kspl

import "strings"

// Format renders source in canonical form: two-space indentation, one
// construct per line, normalized parameter lists, blank and comment
// lines dropped. Expression text inside constructs is preserved
// verbatim. Formatting is total for the same reason scanning is, and
// canonical source round-trips unchanged.
func Format(source string) string {
	tokens := Scan(source)
	var b strings.Builder
	depth := 0
	i := 0
	for i < len(tokens) {
		tok := tokens[i]
		switch tok.Type {
		case TokenClass:
			writeIndent(&b, depth)
			b.WriteString("class ")
			b.WriteString(tok.Text)
			b.WriteString(" {\n")
			depth++
			i += 2
		case TokenFn:
			writeIndent(&b, depth)
			b.WriteString("fn ")
			b.WriteString(tok.Text)
			b.WriteString("(")
			b.WriteString(normalizeParams(tok.Expr))
			b.WriteString(") {\n")
			depth++
			i += 2
		case TokenIf:
			writeIndent(&b, depth)
			b.WriteString("if ")
			b.WriteString(tok.Expr)
			b.WriteString(" {\n")
			depth++
			i += 2
		case TokenBlockClose:
			if tokens[i+1].Type == TokenElse {
				writeIndent(&b, depth-1)
				b.WriteString("} else {\n")
				i += 3
				continue
			}
			if depth > 0 {
				depth--
			}
			writeIndent(&b, depth)
			b.WriteString("}\n")
			i++
		case TokenField:
			writeIndent(&b, depth)
			b.WriteString("field ")
			b.WriteString(tok.Text)
			b.WriteString(" = ")
			b.WriteString(tok.Expr)
			b.WriteString("\n")
			i++
		case TokenLet:
			writeIndent(&b, depth)
			b.WriteString("let ")
			b.WriteString(tok.Text)
			b.WriteString(" = ")
			b.WriteString(tok.Expr)
			b.WriteString("\n")
			i++
		case TokenAssign:
			writeIndent(&b, depth)
			b.WriteString(tok.Text)
			b.WriteString(" = ")
			b.WriteString(tok.Expr)
			b.WriteString("\n")
			i++
		case TokenReturn:
			writeIndent(&b, depth)
			if tok.Expr == "" {
				b.WriteString("return\n")
			} else {
				b.WriteString("return ")
				b.WriteString(tok.Expr)
				b.WriteString("\n")
			}
			i++
		case TokenStmt:
			writeIndent(&b, depth)
			b.WriteString(tok.Expr)
			b.WriteString("\n")
			i++
		default:
			// EOF, plus ELSE and BLOCK_OPEN not owned by a header,
			// which Scan never produces on their own.
			i++
		}
	}
	return b.String()
}

func writeIndent(b *strings.Builder, depth int) {
	for ; depth > 0; depth-- {
		b.WriteString("  ")
	}
}

func normalizeParams(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}
	parts := strings.Split(raw, ",")
	for i, part := range parts {
		parts[i] = strings.TrimSpace(part)
	}
	return strings.Join(parts, ", ")
}
