package parser

import (
	"fmt"
	"log/slog"
	"strings"

	"slr-hq/atlas/pkg/annotation/ast"
	"slr-hq/atlas/pkg/annotation/errors"
)

// Parser decodes annotation cells. A Parser is immutable once configured
// and safe for concurrent use.
type Parser struct {
	opts   Options
	logger *slog.Logger
}

// Result is the outcome of inspecting a single cell.
type Result struct {
	// Value is the parsed cell.
	Value ast.Value

	// Blocks are the top-level blocks that survived block-level filtering.
	Blocks []ast.Block

	// Diagnostics describe everything that was dropped or repaired.
	Diagnostics *errors.ErrorList
}

// NewParser creates a parser with DefaultOptions.
func NewParser() *Parser {
	return NewParserWithOptions(DefaultOptions())
}

// NewParserWithOptions creates a parser with the given policy.
// Empty policy names fall back to the defaults.
func NewParserWithOptions(opts Options) *Parser {
	if opts.Mixed == "" {
		opts.Mixed = MixedKeyed
	}
	if opts.Unbalanced == "" {
		opts.Unbalanced = UnbalancedDrop
	}
	return &Parser{
		opts:   opts,
		logger: slog.Default().With("component", "annotation.parser"),
	}
}

// WithSkipInvalidKey returns a copy of the parser with the key policy changed.
func (p *Parser) WithSkipInvalidKey(skip bool) *Parser {
	c := *p
	c.opts.SkipInvalidKey = skip
	return &c
}

// WithSkipInvalidValue returns a copy of the parser with the value policy changed.
func (p *Parser) WithSkipInvalidValue(skip bool) *Parser {
	c := *p
	c.opts.SkipInvalidValue = skip
	return &c
}

// WithMixedPolicy returns a copy of the parser with the mixed-shape policy changed.
func (p *Parser) WithMixedPolicy(policy MixedPolicy) *Parser {
	c := *p
	c.opts.Mixed = policy
	return &c
}

// WithUnbalancedPolicy returns a copy of the parser with the unterminated-block policy changed.
func (p *Parser) WithUnbalancedPolicy(policy UnbalancedPolicy) *Parser {
	c := *p
	c.opts.Unbalanced = policy
	return &c
}

// WithWorkers returns a copy of the parser with the column concurrency changed.
func (p *Parser) WithWorkers(n int) *Parser {
	c := *p
	c.opts.Workers = n
	return &c
}

// WithLogger returns a copy of the parser logging diagnostics to logger.
func (p *Parser) WithLogger(logger *slog.Logger) *Parser {
	c := *p
	if logger != nil {
		c.logger = logger.With("component", "annotation.parser")
	}
	return &c
}

// Options returns the parser's policy.
func (p *Parser) Options() Options {
	return p.opts
}

// Parse decodes a single cell. It only returns an error when the parser uses
// UnbalancedError and the cell has an unterminated block; in that case the
// value is empty and the error is an *errors.ErrorList.
func (p *Parser) Parse(cell string) (ast.Value, error) {
	res := p.inspect(cell, ast.Location{})
	p.logDiagnostics(res.Diagnostics)
	if err := p.strictError(res.Diagnostics); err != nil {
		return ast.Empty(), err
	}
	return res.Value, nil
}

// Inspect decodes a single cell and returns the value with its blocks and
// diagnostics. Inspect never fails; strictness only affects Parse and the
// column functions.
func (p *Parser) Inspect(cell string) Result {
	return p.inspect(cell, ast.Location{})
}

func (p *Parser) inspect(cell string, loc ast.Location) Result {
	diags := errors.NewErrorList()

	if !Eligible(cell) {
		p.checkLoneBracket(cell, loc, diags)
		return Result{Value: ast.Empty(), Diagnostics: diags}
	}

	scanner := newBlockScanner(cell, loc)
	raw, open := scanner.scan()
	diags.Merge(scanner.diags)
	if open {
		severity := errors.SeverityWarning
		message := "unterminated block; text after the last complete block is discarded"
		if p.opts.Unbalanced == UnbalancedError {
			severity = errors.SeverityError
			message = "unterminated block"
		}
		diags.AddErrorWithSuggestion(errors.ErrorTypeSyntax, severity, message,
			loc.At(scanner.start), errors.SuggestClose(scanner.depth))
	}

	blocks := p.analyze(raw, loc, diags)
	value := p.classify(blocks, loc, diags)

	diags.AddContext(cell)

	return Result{Value: value, Blocks: blocks, Diagnostics: diags}
}

// checkLoneBracket reports cells that look like annotations but only carry
// one kind of bracket.
func (p *Parser) checkLoneBracket(cell string, loc ast.Location, diags *errors.ErrorList) {
	openAt := strings.Index(cell, "[")
	closeAt := strings.Index(cell, "]")
	switch {
	case openAt >= 0 && closeAt < 0:
		diags.AddErrorWithSuggestion(errors.ErrorTypeSyntax, errors.SeverityWarning,
			"cell has '[' but no ']' and is treated as empty", loc.At(openAt), errors.SuggestClose(1))
	case closeAt >= 0 && openAt < 0:
		diags.AddError(errors.ErrorTypeSyntax, errors.SeverityWarning,
			"cell has ']' but no '[' and is treated as empty", loc.At(closeAt))
	}
	diags.AddContext(cell)
}

// analyze applies block-level filtering and splits each block into key and
// value tokens.
func (p *Parser) analyze(raw []rawBlock, loc ast.Location, diags *errors.ErrorList) []ast.Block {
	blocks := make([]ast.Block, 0, len(raw))

	for _, rb := range raw {
		if p.opts.SkipInvalidKey && IsSentinel(rb.content) {
			diags.AddError(errors.ErrorTypeSentinel, errors.SeverityInfo,
				"un-specified block dropped", loc.At(rb.offset))
			continue
		}

		tokens, unterminated := lexContent(rb.content, rb.offset+1)
		for _, off := range unterminated {
			diags.AddErrorWithSuggestion(errors.ErrorTypeEscape, errors.SeverityWarning,
				"'<' without a closing '>' is kept as text", loc.At(off),
				"Close the comment with '>' on the same line")
		}

		block := ast.Block{Content: rb.content, Offset: rb.offset}
		if sep := keySeparator(tokens); sep >= 0 {
			block.Keyed = true
			block.Key = strings.TrimSpace(joinText(tokens[:sep]))
			block.Values = smartSplit(tokens[sep+1:])
		} else {
			block.Values = smartSplit(tokens)
			if len(block.Values) == 0 {
				diags.AddError(errors.ErrorTypeStructural, errors.SeverityInfo,
					"empty block", loc.At(rb.offset))
			}
		}

		blocks = append(blocks, block)
	}

	return blocks
}

// classify decides the shape of the cell in one pass over its blocks.
func (p *Parser) classify(blocks []ast.Block, loc ast.Location, diags *errors.ErrorList) ast.Value {
	var keyed, bare []ast.Block
	for _, b := range blocks {
		if b.Keyed {
			keyed = append(keyed, b)
		} else {
			bare = append(bare, b)
		}
	}

	switch {
	case len(keyed) == 0 && len(bare) == 0:
		return ast.Empty()

	case len(keyed) == 0:
		return ast.NewList(p.collectTags(bare, loc, diags)...)

	case len(bare) == 0:
		return p.collectMapping(keyed, loc, diags)
	}

	mapping := p.collectMapping(keyed, loc, diags)

	if p.opts.Mixed != MixedPreserve {
		for _, b := range bare {
			diags.AddErrorWithSuggestion(errors.ErrorTypeStructural, errors.SeverityWarning,
				"bare block dropped from a cell with keyed blocks", loc.At(b.Offset),
				errors.SuggestColon(b.Content))
		}
		return mapping
	}

	tags := p.collectTags(bare, loc, diags)
	switch {
	case mapping.IsEmpty():
		return ast.NewList(tags...)
	case len(tags) == 0:
		return mapping
	}
	mapping.Kind = ast.KindMixed
	mapping.Tags = tags
	return mapping
}

// collectMapping builds the keyed part of a cell, applying key and value
// sentinel filtering.
func (p *Parser) collectMapping(keyed []ast.Block, loc ast.Location, diags *errors.ErrorList) ast.Value {
	v := ast.Value{Kind: ast.KindMapping}

	for _, b := range keyed {
		if p.opts.SkipInvalidKey && IsSentinel(b.Key) {
			diags.AddError(errors.ErrorTypeSentinel, errors.SeverityInfo,
				fmt.Sprintf("block with un-specified key dropped (%d value(s))", len(b.Values)), loc.At(b.Offset))
			continue
		}

		values := b.Values
		if p.opts.SkipInvalidValue {
			values = p.dropSentinels(values, b, loc, diags)
			if len(values) == 0 {
				if len(b.Values) == 0 {
					diags.AddError(errors.ErrorTypeStructural, errors.SeverityInfo,
						fmt.Sprintf("key %q has no values", b.Key), loc.At(b.Offset))
				}
				continue
			}
		}

		v.Add(b.Key, values...)
	}

	if len(v.Entries) == 0 {
		return ast.Empty()
	}
	return v
}

// collectTags flattens bare blocks into tokens.
func (p *Parser) collectTags(bare []ast.Block, loc ast.Location, diags *errors.ErrorList) []string {
	var tags []string
	for _, b := range bare {
		values := b.Values
		if p.opts.SkipInvalidValue {
			values = p.dropSentinels(values, b, loc, diags)
		}
		tags = append(tags, values...)
	}
	return tags
}

func (p *Parser) dropSentinels(values []string, b ast.Block, loc ast.Location, diags *errors.ErrorList) []string {
	kept := make([]string, 0, len(values))
	for _, v := range values {
		if IsSentinel(v) {
			msg := "un-specified value dropped"
			if b.Keyed {
				msg = fmt.Sprintf("un-specified value dropped from key %q", b.Key)
			}
			diags.AddError(errors.ErrorTypeSentinel, errors.SeverityInfo, msg, loc.At(b.Offset))
			continue
		}
		kept = append(kept, v)
	}
	return kept
}

// strictError returns the diagnostics as an error when strict parsing
// applies and an error-level diagnostic was produced.
func (p *Parser) strictError(diags *errors.ErrorList) error {
	if p.opts.Unbalanced != UnbalancedError {
		return nil
	}
	failures := diags.BySeverity(errors.SeverityError)
	if len(failures) == 0 {
		return nil
	}
	return &errors.ErrorList{Errors: failures}
}

func (p *Parser) logDiagnostics(diags *errors.ErrorList) {
	for _, d := range diags.Errors {
		p.logger.Debug("annotation diagnostic",
			"type", d.Type,
			"severity", d.Severity,
			"location", d.Location.String(),
			"message", d.Message,
		)
	}
}
