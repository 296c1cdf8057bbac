package frag

import (
	"regexp"
	"strings"
)

var closingDelimiter = map[byte]byte{'(': ')', '{': '}', '[': ']', '<': '>'}

// compilePattern compiles a PHP-style delimited pattern such as /a(b)/i.
// The first character is the delimiter, the text after the closing
// delimiter is the modifier list.
func compilePattern(pattern string) (*regexp.Regexp, error) {
	if len(pattern) < 2 {
		return nil, &Error{Kind: RegexError, Detail: pattern, Help: "patterns need delimiters, e.g. '/[0-9]+/'"}
	}
	open := pattern[0]
	if isAlnum(open) || open == '\\' || open == ' ' {
		return nil, &Error{Kind: RegexError, Detail: pattern, Help: "the delimiter must not be alphanumeric, a backslash or a space"}
	}
	closer := open
	if c, ok := closingDelimiter[open]; ok {
		closer = c
	}
	end := strings.LastIndexByte(pattern[1:], closer) + 1
	if end == 0 {
		return nil, &Error{Kind: RegexError, Detail: pattern, Help: "no ending delimiter " + string(closer)}
	}
	body, modifiers := pattern[1:end], pattern[end+1:]

	var flags strings.Builder
	for i := 0; i < len(modifiers); i++ {
		switch m := modifiers[i]; m {
		case 'i', 'm', 's', 'U':
			flags.WriteByte(m)
		case 'u':
			// patterns are always matched as UTF-8
		default:
			return nil, &Error{Kind: RegexError, Detail: pattern, Help: "unsupported modifier " + string(m)}
		}
	}
	if flags.Len() > 0 {
		body = "(?" + flags.String() + ")" + body
	}
	re, err := regexp.Compile(body)
	if err != nil {
		return nil, &Error{Kind: RegexError, Detail: pattern, Help: err.Error(), Err: err}
	}
	return re, nil
}

func isAlnum(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}
