package asm

import (
	"iter"
	"regexp"
	"strings"
)

// Rule is a lexical category of a token.
type Rule int

//go:generate go tool stringer -linecomment -type=Rule
const (
	RULE_STRING      = Rule(0)  // String
	RULE_COMMENT     = Rule(1)  // Comment
	RULE_NEWLINE     = Rule(2)  // NewLine
	RULE_SPACE       = Rule(3)  // Space
	RULE_COMMA       = Rule(4)  // Comma
	RULE_MUL         = Rule(5)  // Mul
	RULE_DIV         = Rule(6)  // Div
	RULE_ADD         = Rule(7)  // Add
	RULE_SUB         = Rule(8)  // Sub
	RULE_OPEN_PAREN  = Rule(9)  // OpenParen
	RULE_CLOSE_PAREN = Rule(10) // CloseParen
	RULE_LABEL       = Rule(11) // Label
	RULE_ID          = Rule(12) // Id
	RULE_UNDEFINED   = Rule(13) // Undefined
)

// Token is a lexeme of the source text and its position.
// Line and Start are zero based, End is exclusive.
type Token struct {
	Rule   Rule
	Lexeme string
	Line   int
	Start  int
	End    int
}

// Pattern matches a rule at the start of the remaining text.
type Pattern struct {
	Rule   Rule
	Regexp *regexp.Regexp
}

// Rules of the assembler, in match priority order.
var Rules = []Pattern{
	{RULE_STRING, regexp.MustCompile(`^'[^'\n]*'`)},
	{RULE_COMMENT, regexp.MustCompile(`^;[^\n]*`)},
	{RULE_NEWLINE, regexp.MustCompile(`^\n`)},
	{RULE_SPACE, regexp.MustCompile(`^[ \t\r]+`)},
	{RULE_COMMA, regexp.MustCompile(`^,`)},
	{RULE_MUL, regexp.MustCompile(`^\*`)},
	{RULE_DIV, regexp.MustCompile(`^/`)},
	{RULE_ADD, regexp.MustCompile(`^\+`)},
	{RULE_SUB, regexp.MustCompile(`^-`)},
	{RULE_OPEN_PAREN, regexp.MustCompile(`^\(`)},
	{RULE_CLOSE_PAREN, regexp.MustCompile(`^\)`)},
	{RULE_LABEL, regexp.MustCompile(`^[?@]?\w+:`)},
	{RULE_ID, regexp.MustCompile(`^(?:\w+|\$)`)},
	{RULE_UNDEFINED, regexp.MustCompile(`^.+`)},
}

// undefinedLength is the extent of the fallback token when no pattern matches:
// the rest of the line, or the single character under the cursor.
func undefinedLength(text string) int {
	n := strings.IndexByte(text, '\n')
	if n <= 0 {
		if n == 0 {
			return 1
		}
		return len(text)
	}
	return n
}

// Scan splits text into tokens using the first pattern, in order, that
// matches a non-empty prefix of the remaining text.
//
// Example, for the text "MVI A, 1":
//
//	{Id "MVI" 0:0-3} {Space " " 0:3-4} {Id "A" 0:4-5} {Comma "," 0:5-6}
//	{Space " " 0:6-7} {Id "1" 0:7-8}
//
// The lexemes of the sequence always concatenate back to text.
func Scan(text string, rules []Pattern) iter.Seq[Token] {
	return func(yield func(Token) bool) {
		var line, start int

		for len(text) > 0 {
			token := Token{Rule: RULE_UNDEFINED, Line: line, Start: start}
			length := 0
			for _, pattern := range rules {
				loc := pattern.Regexp.FindStringIndex(text)
				if loc == nil || loc[1] == 0 {
					continue
				}
				token.Rule = pattern.Rule
				length = loc[1]
				break
			}
			if length == 0 {
				length = undefinedLength(text)
			}

			token.Lexeme = text[:length]
			token.End = start + length
			if !yield(token) {
				return
			}

			start += length
			if lines := strings.Count(token.Lexeme, "\n"); lines != 0 {
				line += lines
				start = 0
			}

			text = text[length:]
		}
	}
}
