package engine

import "strings"

// kwPrefix is the marker prepended to keyword names by preprocessSource.
const kwPrefix = "__kw_"

// preprocessSource rewrites catalog source into something zygomys accepts:
//
//  1. :keyword becomes the string literal "__kw_keyword", so keywords never
//     collide with user variables of the same name.
//  2. kebab-case identifiers become snake_case (shelf-row -> shelf_row);
//     zygomys reads a hyphen as subtraction.
//  3. ; comments become // comments.
//
// String literals are copied untouched, so template dimension expressions
// keep their spacing and operators.
func preprocessSource(source string) string {
	s := scanner{src: source}
	s.out.Grow(len(source) + len(source)/4)
	for s.i < len(s.src) {
		c := s.src[s.i]
		switch {
		case c == '"':
			s.copyQuoted('"', true)
		case c == '`':
			s.copyQuoted('`', false)
		case c == ';':
			s.comment()
		case c == ':' && s.peek(1) == '=':
			s.copyN(2)
		case c == ':' && isLetter(s.peek(1)):
			s.keyword()
		case c == '-' && s.i > 0 && isIdentChar(s.src[s.i-1]) && isIdentStartChar(s.peek(1)):
			s.out.WriteByte('_')
			s.i++
		default:
			s.copyN(1)
		}
	}
	return s.out.String()
}

type scanner struct {
	src string
	i   int
	out strings.Builder
}

func (s *scanner) peek(n int) byte {
	if s.i+n < len(s.src) {
		return s.src[s.i+n]
	}
	return 0
}

func (s *scanner) copyN(n int) {
	end := min(s.i+n, len(s.src))
	s.out.WriteString(s.src[s.i:end])
	s.i = end
}

func (s *scanner) copyQuoted(q byte, escapes bool) {
	s.copyN(1)
	for s.i < len(s.src) && s.src[s.i] != q {
		if escapes && s.src[s.i] == '\\' {
			s.copyN(2)
			continue
		}
		s.copyN(1)
	}
	s.copyN(1)
}

func (s *scanner) comment() {
	s.out.WriteString("//")
	for s.i < len(s.src) && s.src[s.i] == ';' {
		s.i++
	}
	for s.i < len(s.src) && s.src[s.i] != '\n' {
		s.copyN(1)
	}
}

func (s *scanner) keyword() {
	j := s.i + 1
	for j < len(s.src) && isKWChar(s.src[j]) {
		j++
	}
	s.out.WriteByte('"')
	s.out.WriteString(kwPrefix)
	s.out.WriteString(s.src[s.i+1 : j])
	s.out.WriteByte('"')
	s.i = j
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isKWChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '-' || c == '_'
}

func isIdentChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_'
}

func isIdentStartChar(c byte) bool {
	return isLetter(c)
}
