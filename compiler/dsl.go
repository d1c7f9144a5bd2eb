package compiler

import (
	"strconv"
	"strings"

	"github.com/sbl8/wick/contract"
	"github.com/sbl8/wick/core"
)

// Parse compiles .wick DSL source. Errors are *SyntaxError values carrying
// the 1-based line number.
func Parse(src []byte) (*Program, error) {
	lines := strings.Split(string(src), "\n")
	p := &dslParser{
		prog:  newProgram(),
		stats: core.FermiDirac,
		mode:  contract.ModeGeneral,
	}

	for i := 0; i < len(lines); i++ {
		line := stripComment(lines[i])
		if line == "" {
			continue
		}

		var err error
		i, err = p.parseLine(lines, i)
		if err != nil {
			return nil, err
		}
	}
	return p.prog, nil
}

// dslParser holds the directives in effect while parsing.
type dslParser struct {
	prog  *Program
	stats core.Statistics
	mode  contract.Mode
}

// sourceLine is a block line with its source line number.
type sourceLine struct {
	text string
	no   int
}

func stripComment(line string) string {
	if i := strings.IndexByte(line, '#'); i >= 0 {
		line = line[:i]
	}
	return strings.TrimSpace(line)
}

// parseLine processes a single line and returns the index of the last line consumed
func (p *dslParser) parseLine(lines []string, idx int) (int, error) {
	fields := strings.Fields(stripComment(lines[idx]))

	switch fields[0] {
	case "iterate":
		return p.parseIterateBlock(lines, idx, fields)
	default:
		return idx, p.processSimpleLine(idx+1, fields)
	}
}

// parseIterateBlock handles iterate VAR START END { ... }
func (p *dslParser) parseIterateBlock(lines []string, idx int, fields []string) (int, error) {
	lineNo := idx + 1
	if len(fields) < 4 {
		return idx, syntaxf(lineNo, "invalid iterate header: %s", strings.Join(fields, " "))
	}

	varName, start, end, err := parseIterateParams(fields)
	if err != nil {
		return idx, wrapAt(lineNo, "invalid iterate header", err)
	}
	if start > end {
		return idx, syntaxf(lineNo, "iterate range %d..%d is empty", start, end)
	}

	// Find opening brace
	blockStart := idx
	if fields[len(fields)-1] != "{" {
		blockStart++
		for blockStart < len(lines) && stripComment(lines[blockStart]) == "" {
			blockStart++
		}
		if blockStart >= len(lines) || stripComment(lines[blockStart]) != "{" {
			return idx, syntaxf(lineNo, "missing '{' after iterate")
		}
	}

	block, blockEnd, err := collectBlockLines(lines, blockStart)
	if err != nil {
		return idx, wrapAt(lineNo, "invalid iterate block", err)
	}

	if err := p.expandIterateBlock(block, varName, start, end); err != nil {
		return idx, err
	}
	return blockEnd, nil
}

// processSimpleLine handles every directive except iterate
func (p *dslParser) processSimpleLine(lineNo int, fields []string) error {
	switch fields[0] {
	case "statistics":
		return p.parseStatisticsLine(lineNo, fields)
	case "mode":
		return p.parseModeLine(lineNo, fields)
	case "index":
		return p.parseIndexLine(lineNo, fields)
	case "term":
		return p.parseTermLine(lineNo, fields)
	case "iterate":
		return syntaxf(lineNo, "nested iterate is not supported")
	default:
		return syntaxf(lineNo, "unknown directive: %s", fields[0])
	}
}

func (p *dslParser) parseStatisticsLine(lineNo int, fields []string) error {
	if len(fields) != 2 {
		return syntaxf(lineNo, "usage: statistics fermi|bose|arbitrary")
	}
	s, err := core.ParseStatistics(fields[1])
	if err != nil {
		return wrapAt(lineNo, "invalid statistics", err)
	}
	p.stats = s
	return nil
}

func (p *dslParser) parseModeLine(lineNo int, fields []string) error {
	if len(fields) != 2 {
		return syntaxf(lineNo, "usage: mode full|general")
	}
	m, err := contract.ParseMode(fields[1])
	if err != nil {
		return wrapAt(lineNo, "invalid mode", err)
	}
	p.mode = m
	return nil
}

// parseIndexLine parses index NAME SPACE VACUUM
func (p *dslParser) parseIndexLine(lineNo int, fields []string) error {
	if len(fields) != 4 {
		return syntaxf(lineNo, "usage: index NAME SPACE VACUUM")
	}
	idx, err := parseIndex(fields[1], fields[2], fields[3])
	if err != nil {
		return wrapAt(lineNo, "invalid index", err)
	}
	if err := p.prog.declare(fields[1], idx); err != nil {
		return wrapAt(lineNo, "invalid index", err)
	}
	return nil
}

// parseTermLine parses term NAME COEFF OP...
func (p *dslParser) parseTermLine(lineNo int, fields []string) error {
	if len(fields) < 3 {
		return syntaxf(lineNo, "usage: term NAME COEFF OP...")
	}
	coeff, err := strconv.ParseFloat(fields[2], 64)
	if err != nil {
		return wrapAt(lineNo, "invalid coefficient", err)
	}

	ops := make([]core.Operator, 0, len(fields)-3)
	for _, tok := range fields[3:] {
		op, err := parseOperator(tok, p.prog.Indices)
		if err != nil {
			return wrapAt(lineNo, "invalid term", err)
		}
		ops = append(ops, op)
	}

	entry := Entry{
		Name: fields[1],
		Mode: p.mode,
		Term: core.NewTerm(coeff, ops...).WithStatistics(p.stats),
		Line: lineNo,
	}
	if err := p.prog.add(entry); err != nil {
		return wrapAt(lineNo, "invalid term", err)
	}
	return nil
}

// parseIterateParams extracts iterate parameters
func parseIterateParams(fields []string) (varName string, start, end int, err error) {
	varName = fields[1]
	start, err = strconv.Atoi(fields[2])
	if err != nil {
		return "", 0, 0, err
	}
	end, err = strconv.Atoi(fields[3])
	if err != nil {
		return "", 0, 0, err
	}
	return varName, start, end, nil
}

// collectBlockLines gathers lines within braces
func collectBlockLines(lines []string, startIdx int) ([]sourceLine, int, error) {
	var block []sourceLine
	i := startIdx + 1

	for i < len(lines) {
		line := stripComment(lines[i])
		if line == "}" {
			return block, i, nil
		}
		if line != "" {
			block = append(block, sourceLine{text: line, no: i + 1})
		}
		i++
	}

	return nil, i, syntaxf(startIdx+1, "unterminated iterate block")
}

// expandIterateBlock processes iterate expansion
func (p *dslParser) expandIterateBlock(block []sourceLine, varName string, start, end int) error {
	for v := start; v <= end; v++ {
		for _, line := range block {
			fields := strings.Fields(expandVariable(line.text, varName, v))
			if err := p.processSimpleLine(line.no, fields); err != nil {
				return err
			}
		}
	}
	return nil
}

// expandVariable replaces $varName with value in line
func expandVariable(line, varName string, value int) string {
	return strings.ReplaceAll(line, "$"+varName, strconv.Itoa(value))
}
