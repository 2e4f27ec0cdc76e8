package overlay

import (
	"strings"
	"unicode"
)

var texSymbols = map[string]string{
	"times":  "*",
	"cdot":   "*",
	"ast":    "*",
	"div":    "/",
	"pm":     "+/-",
	"le":     "<=",
	"leq":    "<=",
	"ge":     ">=",
	"geq":    ">=",
	"ne":     "!=",
	"neq":    "!=",
	"approx": "~",
	"infty":  "inf",
	"to":     "->",
	"pi":     "pi",
	"theta":  "theta",
	"alpha":  "alpha",
	"beta":   "beta",
	"gamma":  "gamma",
	"delta":  "delta",
	"lambda": "lambda",
	"mu":     "mu",
	"sigma":  "sigma",
	"omega":  "omega",
	"sin":    "sin",
	"cos":    "cos",
	"tan":    "tan",
	"log":    "log",
	"ln":     "ln",
	"exp":    "exp",
	"lim":    "lim",
	"sum":    "sum",
	"int":    "int",
}

// Commands whose single argument is emitted unchanged.
var texWrappers = map[string]bool{
	"text":         true,
	"textrm":       true,
	"mathrm":       true,
	"mathbf":       true,
	"mathit":       true,
	"operatorname": true,
	"boxed":        true,
	"LARGE":        true,
	"Large":        true,
	"large":        true,
	"huge":         true,
	"Huge":         true,
}

// Commands that take no argument and print nothing.
var texIgnored = map[string]bool{
	"displaystyle": true,
	"left":         true,
	"right":        true,
	"quad":         true,
	"qquad":        true,
}

// TeX converts a LaTeX math fragment into plain text that the bitmap fonts
// can draw, e.g. `\frac{x}{2}` becomes "x/2".
func TeX(s string) string {
	s = strings.TrimSpace(s)
	for _, d := range [][2]string{{`\(`, `\)`}, {`\[`, `\]`}, {"$$", "$$"}, {"$", "$"}} {
		if len(s) >= len(d[0])+len(d[1]) && strings.HasPrefix(s, d[0]) && strings.HasSuffix(s, d[1]) {
			s = s[len(d[0]) : len(s)-len(d[1])]
			break
		}
	}
	return strings.Join(strings.Fields(texConvert(s)), " ")
}

func texConvert(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); {
		c := s[i]
		switch {
		case c == '\\':
			name, next := texCommand(s, i+1)
			i = next
			switch {
			case name == "":
			case name == "frac" || name == "dfrac" || name == "tfrac":
				var num, den string
				num, i = texArg(s, i)
				den, i = texArg(s, i)
				b.WriteString(texParen(texConvert(num)))
				b.WriteByte('/')
				b.WriteString(texParen(texConvert(den)))
			case name == "sqrt":
				var root, arg string
				i = texSkipSpace(s, i)
				if i < len(s) && s[i] == '[' {
					if end := strings.IndexByte(s[i:], ']'); end >= 0 {
						root = s[i+1 : i+end]
						i += end + 1
					}
				}
				arg, i = texArg(s, i)
				if root != "" {
					b.WriteString("root" + root)
				} else {
					b.WriteString("sqrt")
				}
				b.WriteString("(" + texConvert(arg) + ")")
			case texWrappers[name]:
				var arg string
				arg, i = texArg(s, i)
				b.WriteString(texConvert(arg))
			case texIgnored[name]:
				if (name == "left" || name == "right") && i < len(s) && s[i] == '.' {
					i++
				}
			case name == "," || name == ";" || name == ":" || name == " " || name == "!":
				b.WriteByte(' ')
			case name == "{" || name == "}" || name == "%" || name == "$" || name == "&" || name == "#" || name == "_":
				b.WriteString(name)
			case name == "\\":
				b.WriteByte(' ')
			default:
				if sym, ok := texSymbols[name]; ok {
					b.WriteString(sym)
					if i < len(s) && isLetter(s[i]) {
						b.WriteByte(' ')
					}
				} else {
					b.WriteString(name)
				}
			}
		case c == '{':
			var arg string
			arg, i = texArg(s, i)
			b.WriteString(texConvert(arg))
		case c == '}':
			i++
		case c == '^' || c == '_':
			var arg string
			arg, i = texArg(s, i+1)
			conv := texConvert(arg)
			b.WriteByte(c)
			if len([]rune(conv)) > 1 {
				b.WriteString("(" + conv + ")")
			} else {
				b.WriteString(conv)
			}
		case c == '~':
			b.WriteByte(' ')
			i++
		default:
			b.WriteByte(c)
			i++
		}
	}
	return b.String()
}

// texCommand reads a command name starting at i (just after the backslash).
func texCommand(s string, i int) (string, int) {
	if i >= len(s) {
		return "", i
	}
	if !isLetter(s[i]) {
		return s[i : i+1], i + 1
	}
	j := i
	for j < len(s) && isLetter(s[j]) {
		j++
	}
	return s[i:j], j
}

// texArg reads a braced group or a single token starting at i.
func texArg(s string, i int) (string, int) {
	i = texSkipSpace(s, i)
	if i >= len(s) {
		return "", i
	}
	if s[i] == '{' {
		depth := 0
		for j := i; j < len(s); j++ {
			switch s[j] {
			case '\\':
				j++
			case '{':
				depth++
			case '}':
				depth--
				if depth == 0 {
					return s[i+1 : j], j + 1
				}
			}
		}
		return s[i+1:], len(s)
	}
	if s[i] == '\\' {
		_, next := texCommand(s, i+1)
		return s[i:next], next
	}
	return s[i : i+1], i + 1
}

func texSkipSpace(s string, i int) int {
	for i < len(s) && s[i] == ' ' {
		i++
	}
	return i
}

func texParen(s string) string {
	s = strings.TrimSpace(s)
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '.' {
			return "(" + s + ")"
		}
	}
	return s
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
