package circuit

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/striprouter/striprouter/board"
)

// Grounded on original_source/src/circuit_parser.rs: one compiled regexp
// per line grammar, tried in the same order (connection first, since it is
// the most common line in a real circuit file).
var (
	reAlias       = regexp.MustCompile(`^([\w.]+) = ([\w.]+)$`)
	reCommentOrEmpty = regexp.MustCompile(`^(#.*)?$`)
	reBoard       = regexp.MustCompile(`^board (\d+),(\d+)$`)
	reOffset      = regexp.MustCompile(`^offset (-?\d+),(-?\d+)$`)
	rePkgName     = regexp.MustCompile(`^(\w+)\s(.*)`)
	rePkgPos      = regexp.MustCompile(`(-?\d+),(-?\d+)`)
	reComponent   = regexp.MustCompile(`^(\w+) (\w+) (-?\d+),(-?\d+)$`)
	reConnection  = regexp.MustCompile(`^(\w+)\.(\d+) (\w+)\.(\d+)$`)
	reDontCare    = regexp.MustCompile(`^(\w+) (\d+(,\d+)*)$`)
	reDontCarePin = regexp.MustCompile(`(\d+)`)
)

type parser struct {
	circuit *Circuit
	offset  board.Via
	aliases []aliasPair
}

type aliasPair struct{ from, to string }

// Parse reads a `.circuit` file from r, returning the resulting Circuit.
// Parse errors are accumulated on circuit.ParserErrors; a non-empty error
// list disables routing (spec.md §7), a decision left to the caller.
func Parse(r io.Reader) *Circuit {
	c := New()
	p := &parser{circuit: c}

	scanner := bufio.NewScanner(r)
	lineIdx := 0
	for scanner.Scan() {
		lineIdx++
		raw := normalizeLine(scanner.Text())
		if err := p.parseLine(raw); err != nil {
			c.ParserErrors = append(c.ParserErrors,
				fmt.Sprintf("Error on line %d: %s: %s", lineIdx, raw, err))
		}
	}
	return c
}

// normalizeLine collapses internal whitespace and trims the line, then
// collapses ", " separators down to a bare comma, matching the original's
// "split_whitespace().join(' ')" pass followed by its
// "split(', ').join(',')" pass.
func normalizeLine(s string) string {
	fields := strings.Fields(s)
	joined := strings.TrimSpace(strings.Join(fields, " "))
	return strings.Join(strings.Split(joined, ", "), ",")
}

func (p *parser) parseLine(line string) error {
	for _, a := range p.aliases {
		line = strings.ReplaceAll(line, a.from, a.to)
	}

	switch {
	case p.parseConnection(line):
		return nil
	case reCommentOrEmpty.MatchString(line):
		return nil
	case p.parseBoard(line):
		return nil
	case p.parseOffset(line):
		return nil
	case p.parsePackage(line):
		return nil
	case p.parseComponent(line):
		return nil
	case p.parseDontCare(line):
		return nil
	case p.parseAlias(line):
		return nil
	default:
		return fmt.Errorf("invalid line")
	}
}

func (p *parser) parseAlias(line string) bool {
	m := reAlias.FindStringSubmatch(line)
	if m == nil {
		return false
	}
	p.aliases = append(p.aliases, aliasPair{from: m[1], to: m[2]})
	return true
}

func (p *parser) parseBoard(line string) bool {
	m := reBoard.FindStringSubmatch(line)
	if m == nil {
		return false
	}
	w, _ := strconv.Atoi(m[1])
	h, _ := strconv.Atoi(m[2])
	p.circuit.Board = board.New(w, h)
	return true
}

func (p *parser) parseOffset(line string) bool {
	m := reOffset.FindStringSubmatch(line)
	if m == nil {
		return false
	}
	x, _ := strconv.Atoi(m[1])
	y, _ := strconv.Atoi(m[2])
	p.offset = board.Via{X: x, Y: y}
	return true
}

func (p *parser) parsePackage(line string) bool {
	m := rePkgName.FindStringSubmatch(line)
	if m == nil {
		return false
	}
	name, rest := m[1], m[2]
	// Package lines are tried before component and don't-care lines, so
	// reject those in disguise: a don't-care line names an already defined
	// component ("U1 2,3"), and a component line has a package-name field
	// that is not an x,y pair (rejected by the loop below).
	if _, isComponent := p.circuit.Components[name]; isComponent {
		return false
	}
	fields := strings.Fields(rest)
	if len(fields) == 0 {
		return false
	}
	offsets := make([]board.Via, 0, len(fields))
	for _, f := range fields {
		pm := rePkgPos.FindStringSubmatch(f)
		if pm == nil {
			return false
		}
		x, _ := strconv.Atoi(pm[1])
		y, _ := strconv.Atoi(pm[2])
		offsets = append(offsets, board.Via{X: x, Y: y})
	}
	p.circuit.Packages[name] = Package{Name: name, Offsets: offsets}
	return true
}

func (p *parser) parseComponent(line string) bool {
	m := reComponent.FindStringSubmatch(line)
	if m == nil {
		return false
	}
	compName, pkgName := m[1], m[2]
	x, _ := strconv.Atoi(m[3])
	y, _ := strconv.Atoi(m[4])
	if _, ok := p.circuit.Packages[pkgName]; !ok {
		return false
	}
	pos0 := board.Via{X: x, Y: y}.Add(p.offset)
	if _, exists := p.circuit.Components[compName]; !exists {
		p.circuit.ComponentOrder = append(p.circuit.ComponentOrder, compName)
	}
	p.circuit.Components[compName] = Component{
		Name:        compName,
		PackageName: pkgName,
		Pos0:        pos0,
		DontCare:    make(map[int]struct{}),
	}
	return true
}

func (p *parser) parseDontCare(line string) bool {
	m := reDontCare.FindStringSubmatch(line)
	if m == nil {
		return false
	}
	compName := m[1]
	comp, ok := p.circuit.Components[compName]
	if !ok {
		return false
	}
	for _, pm := range reDontCarePin.FindAllStringSubmatch(m[2], -1) {
		idx, _ := strconv.Atoi(pm[1])
		if idx < 1 {
			return false
		}
		comp.DontCare[idx-1] = struct{}{}
	}
	p.circuit.Components[compName] = comp
	return true
}

func (p *parser) parseConnection(line string) bool {
	m := reConnection.FindStringSubmatch(line)
	if m == nil {
		return false
	}
	compA, idxA := m[1], m[2]
	compB, idxB := m[3], m[4]
	pinA, _ := strconv.Atoi(idxA)
	pinB, _ := strconv.Atoi(idxB)
	if compA == compB && pinA == pinB {
		// Self-loop to the same pin is silently dropped (spec.md §6).
		return true
	}
	conn := Connection{
		A: ConnectionPoint{Component: compA, PinIndex: pinA - 1},
		B: ConnectionPoint{Component: compB, PinIndex: pinB - 1},
	}
	if _, _, ok := p.circuit.ConnectionVia(conn); !ok {
		// Unknown component or pin index out of range.
		return false
	}
	p.circuit.Connections = append(p.circuit.Connections, conn)
	return true
}
