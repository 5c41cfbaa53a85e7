package parser

import (
	"slr-hq/atlas/pkg/annotation/ast"
	"slr-hq/atlas/pkg/annotation/errors"
)

// scanState is the state of the block extractor.
type scanState int

const (
	stateOutside scanState = iota // between blocks
	stateInBlock                  // inside a top-level block
)

// rawBlock is a top-level bracket group before key/value analysis.
type rawBlock struct {
	content string
	offset  int
}

// blockScanner walks a cell left to right and emits top-level blocks.
// Brackets nested inside a block only move the depth counter.
type blockScanner struct {
	cell   string
	state  scanState
	depth  int
	start  int
	blocks []rawBlock
	diags  *errors.ErrorList
	loc    ast.Location
}

func newBlockScanner(cell string, loc ast.Location) *blockScanner {
	return &blockScanner{
		cell:  cell,
		state: stateOutside,
		diags: errors.NewErrorList(),
		loc:   loc,
	}
}

// scan runs the state machine to the end of the cell. It returns the blocks
// and whether the cell ended inside an unterminated block.
func (s *blockScanner) scan() ([]rawBlock, bool) {
	for i := 0; i < len(s.cell); i++ {
		switch c := s.cell[i]; s.state {
		case stateOutside:
			switch c {
			case '[':
				s.state = stateInBlock
				s.depth = 1
				s.start = i
			case ']':
				s.diags.AddErrorWithSuggestion(errors.ErrorTypeSyntax, errors.SeverityWarning,
					"closing bracket without a matching opening bracket", s.loc.At(i),
					"Remove the stray ']' or add the missing '['")
			}

		case stateInBlock:
			switch c {
			case '[':
				s.depth++
			case ']':
				s.depth--
				if s.depth == 0 {
					s.blocks = append(s.blocks, rawBlock{
						content: s.cell[s.start+1 : i],
						offset:  s.start,
					})
					s.state = stateOutside
				}
			}
		}
	}

	return s.blocks, s.state == stateInBlock
}
