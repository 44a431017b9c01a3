package ccg

import (
	"strings"

	"github.com/pkg/errors"
)

// categoryParser is a recursive descent parser for category strings
type categoryParser struct {
	text string
	pos  int
}

// ParseCategory parses a category from its slash notation, like
//     NP
//     (S\NP)/NP
//     S[dcl]/(S[dcl]\NP)
// Slashes are left associative, so S\NP/NP is the same as (S\NP)/NP.
func ParseCategory(text string) (Category, error) {
	p := &categoryParser{text: text}
	category, err := p.parseCategory()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos != len(p.text) {
		return nil, errors.Errorf(
			"ParseCategory: unexpected '%c' at %d in '%s'",
			p.text[p.pos],
			p.pos,
			text)
	}
	return category, nil
}

// MustParseCategory is like ParseCategory but panics on malformed input
func MustParseCategory(text string) Category {
	category, err := ParseCategory(text)
	if err != nil {
		panic(err)
	}
	return category
}

func (p *categoryParser) skipSpace() {
	for p.pos < len(p.text) && (p.text[p.pos] == ' ' || p.text[p.pos] == '\t') {
		p.pos++
	}
}

func (p *categoryParser) parseCategory() (Category, error) {
	category, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for {
		p.skipSpace()
		if p.pos >= len(p.text) {
			return category, nil
		}

		var direction Direction
		switch p.text[p.pos] {
		case '/':
			direction = Forward
		case '\\':
			direction = Backward
		default:
			return category, nil
		}
		p.pos++

		argument, err := p.parsePrimary()
		if err != nil {
			return nil, err
		}
		category = NewFunctor(category, direction, argument)
	}
}

func (p *categoryParser) parsePrimary() (Category, error) {
	p.skipSpace()
	if p.pos >= len(p.text) {
		return nil, errors.Errorf("ParseCategory: unexpected end of '%s'", p.text)
	}

	if p.text[p.pos] == '(' {
		p.pos++
		category, err := p.parseCategory()
		if err != nil {
			return nil, err
		}
		p.skipSpace()
		if p.pos >= len(p.text) || p.text[p.pos] != ')' {
			return nil, errors.Errorf("ParseCategory: missing ')' in '%s'", p.text)
		}
		p.pos++
		return category, nil
	}

	start := p.pos
	for p.pos < len(p.text) && !strings.ContainsRune("/\\() \t", rune(p.text[p.pos])) {
		p.pos++
	}
	if p.pos == start {
		return nil, errors.Errorf(
			"ParseCategory: category name expected but '%c' found in '%s'",
			p.text[p.pos],
			p.text)
	}
	return NewAtomic(p.text[start:p.pos]), nil
}
