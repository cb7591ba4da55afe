// Copyright 2025 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package subscripts

import (
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/gx-org/einsum/build/fmterr"
)

// Grammar:
//
//	subscripts = group { "," group } [ "->" [ group ] ]
//	group      = label { label }
//	label      = "a" | ... | "z"
//
// Whitespace between tokens is ignored.

const ellipsis = "..."

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokLabel
	tokComma
	tokArrow
)

type token struct {
	kind tokenKind
	pos  int
	lit  Label
}

type scanner struct {
	src string
	pos int
}

func (s *scanner) errorf(span fmterr.Span, format string, a ...any) error {
	return fmterr.Errorf(fmterr.MalformedSubscripts, s.src, span, format, a...)
}

func (s *scanner) next() (token, error) {
	for s.pos < len(s.src) {
		r, w := utf8.DecodeRuneInString(s.src[s.pos:])
		start := s.pos
		s.pos += w
		switch {
		case unicode.IsSpace(r):
			continue
		case IsLabel(r):
			return token{kind: tokLabel, pos: start, lit: Label(r)}, nil
		case r == ',':
			return token{kind: tokComma, pos: start}, nil
		case r == '-':
			if !strings.HasPrefix(s.src[s.pos:], ">") {
				return token{}, s.errorf(fmterr.At(start, 1), "expected '>' after '-'")
			}
			s.pos++
			return token{kind: tokArrow, pos: start}, nil
		default:
			return token{}, s.errorf(fmterr.At(start, w), "invalid character %q: labels are lowercase letters a to z", r)
		}
	}
	return token{kind: tokEOF, pos: len(s.src)}, nil
}

type parser struct {
	scanner
	ss *Subscripts
}

// Parse einsum subscripts.
// If the output is not declared with "->", the output is the sorted set
// of labels appearing exactly once across all input groups.
func Parse(src string) (*Subscripts, error) {
	if i := strings.Index(src, ellipsis); i >= 0 {
		return nil, fmterr.Errorf(fmterr.UnsupportedFeature, src, fmterr.At(i, len(ellipsis)), "ellipsis (...) is not supported")
	}
	p := &parser{
		scanner: scanner{src: src},
		ss:      &Subscripts{src: src},
	}
	if err := p.parse(); err != nil {
		return nil, err
	}
	if !p.ss.explicit {
		p.ss.Output = implicitOutput(p.ss.Inputs)
	}
	if err := p.checkOutput(); err != nil {
		return nil, err
	}
	return p.ss, nil
}

// MustParse parses subscripts and panics if there is an error.
func MustParse(src string) *Subscripts {
	ss, err := Parse(src)
	if err != nil {
		panic(err)
	}
	return ss
}

func (p *parser) parse() error {
	current := Group{}
	for {
		tok, err := p.next()
		if err != nil {
			return err
		}
		switch tok.kind {
		case tokLabel:
			if p.ss.explicit {
				p.ss.Output = append(p.ss.Output, tok.lit)
				p.ss.outputPos = append(p.ss.outputPos, tok.pos)
				continue
			}
			current = append(current, tok.lit)
		case tokComma:
			if p.ss.explicit {
				return p.errorf(fmterr.At(tok.pos, 1), "the output is a single group: unexpected ','")
			}
			if len(current) == 0 {
				return p.errorf(fmterr.At(tok.pos, 1), "empty input group before ','")
			}
			p.ss.Inputs = append(p.ss.Inputs, current)
			current = Group{}
		case tokArrow:
			if p.ss.explicit {
				return p.errorf(fmterr.At(tok.pos, 2), "'->' declared more than once")
			}
			if len(current) == 0 {
				return p.errorf(fmterr.At(tok.pos, 2), "empty input group before '->'")
			}
			p.ss.Inputs = append(p.ss.Inputs, current)
			current = nil
			p.ss.explicit = true
			p.ss.Output = Group{}
		case tokEOF:
			if p.ss.explicit {
				return nil
			}
			if len(current) == 0 {
				return p.errorf(fmterr.At(tok.pos, 0), "empty input group at the end of the subscripts")
			}
			p.ss.Inputs = append(p.ss.Inputs, current)
			return nil
		}
	}
}

func (p *parser) checkOutput() error {
	for i, l := range p.ss.Output {
		found := false
		for _, in := range p.ss.Inputs {
			if in.Contains(l) {
				found = true
				break
			}
		}
		if !found {
			return p.errorf(p.ss.OutputSpan(i), "output label %s does not appear in any input", l)
		}
	}
	return nil
}

func implicitOutput(inputs []Group) Group {
	count := make(map[Label]int)
	for _, in := range inputs {
		for _, l := range in {
			count[l]++
		}
	}
	output := Group{}
	for l, n := range count {
		if n == 1 {
			output = append(output, l)
		}
	}
	slices.Sort(output)
	return output
}
