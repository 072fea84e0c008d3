package asm

import (
	"iter"
)

// Instruction is one logical source line: its labels, mnemonic and operands.
type Instruction struct {
	Labels   []Token
	Mnemonic Token
	Operands []Token
}

// Line is the zero based source line of the instruction.
func (inst Instruction) Line() int {
	if inst.Mnemonic.Lexeme == "" && len(inst.Labels) > 0 {
		return inst.Labels[0].Line
	}
	return inst.Mnemonic.Line
}

type syntaxState int

const (
	stateAfterNewline = syntaxState(iota)
	stateAfterLabel
	stateOperands
	stateAfterComma
	stateCount

	stateKeep = syntaxState(-1)
)

const ruleCount = int(RULE_UNDEFINED) + 1

// parser holds the pending instruction.
type parser struct {
	state    syntaxState
	labels   []Token
	mnemonic Token
	operands []Token
}

func (p *parser) flush() (inst Instruction) {
	inst = Instruction{
		Labels:   p.labels,
		Mnemonic: p.mnemonic,
		Operands: p.operands,
	}
	p.labels = nil
	p.mnemonic = Token{}
	p.operands = nil
	return
}

// action updates the pending instruction, and reports when it is complete.
type action func(p *parser, token Token) (emit bool)

type transition struct {
	next   syntaxState
	action action
}

var (
	anyState = []syntaxState{stateAfterNewline, stateAfterLabel, stateOperands, stateAfterComma}
	lineHead = []syntaxState{stateAfterNewline, stateAfterLabel}
	lineTail = []syntaxState{stateOperands, stateAfterComma}
)

var grammar = []struct {
	states []syntaxState
	rules  []Rule
	next   syntaxState
	action action
}{
	{anyState, []Rule{RULE_COMMENT, RULE_SPACE}, stateKeep, nil},
	{lineHead, []Rule{RULE_NEWLINE}, stateKeep, nil},
	{lineHead, []Rule{RULE_LABEL}, stateAfterLabel, func(p *parser, token Token) bool {
		p.labels = append(p.labels, token)
		return false
	}},
	{lineHead, []Rule{RULE_ID}, stateOperands, func(p *parser, token Token) bool {
		p.mnemonic = token
		return false
	}},
	{[]syntaxState{stateOperands}, []Rule{RULE_ID, RULE_STRING}, stateAfterComma, func(p *parser, token Token) bool {
		p.operands = append(p.operands, token)
		return false
	}},
	{[]syntaxState{stateAfterComma}, []Rule{RULE_COMMA}, stateOperands, nil},
	{lineTail, []Rule{RULE_NEWLINE}, stateAfterNewline, func(p *parser, token Token) bool {
		return true
	}},
}

// transitions is indexed by the current state and the token rule.
// A nil entry is a syntax error.
var transitions [stateCount][ruleCount]*transition

func init() {
	for _, g := range grammar {
		for _, state := range g.states {
			for _, rule := range g.rules {
				next := g.next
				if next == stateKeep {
					next = state
				}
				transitions[state][rule] = &transition{next: next, action: g.action}
			}
		}
	}
}

// Parse groups a token stream into instructions, one per logical line.
// Parsing stops at the first unexpected token.
// A final line without a trailing newline is still emitted, as are labels
// pending at the end of the text (as an instruction with no mnemonic).
func Parse(tokens iter.Seq[Token]) iter.Seq2[Instruction, error] {
	return func(yield func(Instruction, error) bool) {
		p := &parser{state: stateAfterNewline}

		for token := range tokens {
			var tr *transition
			if token.Rule >= 0 && int(token.Rule) < ruleCount {
				tr = transitions[p.state][token.Rule]
			}
			if tr == nil {
				yield(Instruction{}, errToken(token, ErrUnexpectedSymbol))
				return
			}

			p.state = tr.next
			if tr.action == nil || !tr.action(p, token) {
				continue
			}

			if !yield(p.flush(), nil) {
				return
			}
		}

		switch p.state {
		case stateOperands, stateAfterComma, stateAfterLabel:
			yield(p.flush(), nil)
		}
	}
}
