package motif

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/atomcore/atomcore/latticemath"
	"github.com/atomcore/atomcore/structure"
)

// bondOrderNames maps a bond multiplicity to its text-grammar name. Numeric
// strings "1".."7" are also accepted on parse as synonyms.
var bondOrderNames = map[int32]string{
	1: "single",
	2: "double",
	3: "triple",
	4: "quadruple",
	5: "aromatic",
	6: "dative",
	7: "metallic",
}

var bondOrderValues = map[string]int32{
	"single": 1, "1": 1,
	"double": 2, "2": 2,
	"triple": 3, "3": 3,
	"quadruple": 4, "4": 4,
	"aromatic": 5, "5": 5,
	"dative": 6, "6": 6,
	"metallic": 7, "7": 7,
}

// ParseAtomDiffText parses the atom-edit diff grammar (§4.8):
//
//	+El @ (x, y, z)                    addition
//	~El @ (x, y, z)                    replacement (anchor == position)
//	~El @ (x, y, z) [from (ox, oy, oz)] move (anchor == from position)
//	- @ (x, y, z)                      delete marker
//	bond A-B order_name                bond between 1-indexed atom lines
//	unbond A-B                         bond delete marker
//
// Blank lines and lines starting with '#' are skipped.
func ParseAtomDiffText(text string) (structure.Diff, error) {
	var d structure.Diff

	for i, raw := range strings.Split(text, "\n") {
		lineNumber := i + 1
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		switch {
		case strings.HasPrefix(line, "+"):
			element, pos, err := parseElementAndPosition(line[1:], lineNumber)
			if err != nil {
				return structure.Diff{}, err
			}
			atomicNumber, ok := ChemicalElements[element]
			if !ok {
				return structure.Diff{}, newParseError(lineNumber, "unknown element %q", element)
			}
			d.Atoms = append(d.Atoms, structure.AtomDiffEntry{
				Kind:         structure.DiffAddition,
				AtomicNumber: atomicNumber,
				Position:     pos,
			})

		case strings.HasPrefix(line, "~"):
			element, pos, anchor, hasAnchor, err := parseModification(line[1:], lineNumber)
			if err != nil {
				return structure.Diff{}, err
			}
			atomicNumber, ok := ChemicalElements[element]
			if !ok {
				return structure.Diff{}, newParseError(lineNumber, "unknown element %q", element)
			}
			if !hasAnchor {
				anchor = pos
			}
			d.Atoms = append(d.Atoms, structure.AtomDiffEntry{
				Kind:           structure.DiffModify,
				AtomicNumber:   atomicNumber,
				Position:       pos,
				AnchorPosition: anchor,
			})

		case strings.HasPrefix(line, "- "), line == "-":
			rest := strings.TrimSpace(strings.TrimPrefix(line, "-"))
			rest = strings.TrimPrefix(rest, "@")
			pos, err := parsePosition(strings.TrimSpace(rest), lineNumber)
			if err != nil {
				return structure.Diff{}, err
			}
			d.Atoms = append(d.Atoms, structure.AtomDiffEntry{
				Kind:     structure.DiffDelete,
				Position: pos,
			})

		case strings.HasPrefix(line, "bond "):
			a, b, order, err := parseBondLine(strings.TrimSpace(line[len("bond "):]), lineNumber)
			if err != nil {
				return structure.Diff{}, err
			}
			if err := checkAtomIndex(a, len(d.Atoms), lineNumber); err != nil {
				return structure.Diff{}, err
			}
			if err := checkAtomIndex(b, len(d.Atoms), lineNumber); err != nil {
				return structure.Diff{}, err
			}
			d.Bonds = append(d.Bonds, structure.BondDiffEntry{AtomIndex1: a, AtomIndex2: b, Order: order})

		case strings.HasPrefix(line, "unbond "):
			a, b, err := parseAtomPair(strings.TrimSpace(line[len("unbond "):]), lineNumber)
			if err != nil {
				return structure.Diff{}, err
			}
			if err := checkAtomIndex(a, len(d.Atoms), lineNumber); err != nil {
				return structure.Diff{}, err
			}
			if err := checkAtomIndex(b, len(d.Atoms), lineNumber); err != nil {
				return structure.Diff{}, err
			}
			d.Bonds = append(d.Bonds, structure.BondDiffEntry{AtomIndex1: a, AtomIndex2: b, Order: 0})

		default:
			return structure.Diff{}, newParseError(lineNumber, "unrecognized diff entry: %q", line)
		}
	}

	return d, nil
}

func checkAtomIndex(idx, numAtoms, line int) error {
	if idx < 1 || idx > numAtoms {
		return newParseError(line, "atom index %d out of range", idx)
	}
	return nil
}

// parseElementAndPosition parses "El @ (x, y, z)".
func parseElementAndPosition(text string, line int) (string, latticemath.DVec3, error) {
	atIdx := strings.IndexByte(text, '@')
	if atIdx < 0 {
		return "", latticemath.DVec3{}, newParseError(line, "expected '@'")
	}
	element := strings.TrimSpace(text[:atIdx])
	if element == "" {
		return "", latticemath.DVec3{}, newParseError(line, "missing element symbol")
	}
	pos, err := parsePosition(strings.TrimSpace(text[atIdx+1:]), line)
	if err != nil {
		return "", latticemath.DVec3{}, err
	}
	return element, pos, nil
}

// parseModification parses "El @ (x, y, z) [from (ox, oy, oz)]", the
// "[from ...]" suffix being optional.
func parseModification(text string, line int) (element string, pos, anchor latticemath.DVec3, hasAnchor bool, err error) {
	atIdx := strings.IndexByte(text, '@')
	if atIdx < 0 {
		return "", latticemath.DVec3{}, latticemath.DVec3{}, false, newParseError(line, "expected '@'")
	}
	element = strings.TrimSpace(text[:atIdx])
	if element == "" {
		return "", latticemath.DVec3{}, latticemath.DVec3{}, false, newParseError(line, "missing element symbol")
	}

	rest := strings.TrimSpace(text[atIdx+1:])
	if fromIdx := strings.Index(rest, "[from"); fromIdx >= 0 {
		posStr := strings.TrimSpace(rest[:fromIdx])
		pos, err = parsePosition(posStr, line)
		if err != nil {
			return "", latticemath.DVec3{}, latticemath.DVec3{}, false, err
		}
		fromStr := strings.TrimSpace(rest[fromIdx:])
		fromStr = strings.TrimPrefix(fromStr, "[from")
		fromStr = strings.TrimSpace(fromStr)
		if !strings.HasSuffix(fromStr, "]") {
			return "", latticemath.DVec3{}, latticemath.DVec3{}, false, newParseError(line, "expected closing ']'")
		}
		fromStr = strings.TrimSpace(strings.TrimSuffix(fromStr, "]"))
		anchor, err = parsePosition(fromStr, line)
		if err != nil {
			return "", latticemath.DVec3{}, latticemath.DVec3{}, false, err
		}
		return element, pos, anchor, true, nil
	}

	pos, err = parsePosition(rest, line)
	if err != nil {
		return "", latticemath.DVec3{}, latticemath.DVec3{}, false, err
	}
	return element, pos, latticemath.DVec3{}, false, nil
}

// parsePosition parses "(x, y, z)".
func parsePosition(text string, line int) (latticemath.DVec3, error) {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "(") || !strings.HasSuffix(text, ")") {
		return latticemath.DVec3{}, newParseError(line, "expected '(x, y, z)' position, got %q", text)
	}
	inner := text[1 : len(text)-1]
	parts := strings.Split(inner, ",")
	if len(parts) != 3 {
		return latticemath.DVec3{}, newParseError(line, "expected 3 components in position, got %d", len(parts))
	}
	coords := make([]float64, 3)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return latticemath.DVec3{}, newParseError(line, "invalid coordinate %q", strings.TrimSpace(p))
		}
		coords[i] = v
	}
	return latticemath.DVec3{X: coords[0], Y: coords[1], Z: coords[2]}, nil
}

// parseBondLine parses "A-B order_name".
func parseBondLine(text string, line int) (a, b int, order int32, err error) {
	fields := strings.Fields(text)
	if len(fields) != 2 {
		return 0, 0, 0, newParseError(line, "expected format: A-B order_name")
	}
	a, b, err = parseAtomPair(fields[0], line)
	if err != nil {
		return 0, 0, 0, err
	}
	order, ok := bondOrderValues[strings.ToLower(fields[1])]
	if !ok {
		return 0, 0, 0, newParseError(line, "unknown bond order %q", fields[1])
	}
	return a, b, order, nil
}

// parseAtomPair parses "A-B" into 1-indexed atom line numbers.
func parseAtomPair(text string, line int) (a, b int, err error) {
	dashIdx := strings.IndexByte(text, '-')
	if dashIdx < 0 {
		return 0, 0, newParseError(line, "expected '-' between atom indices")
	}
	a, errA := strconv.Atoi(strings.TrimSpace(text[:dashIdx]))
	b, errB := strconv.Atoi(strings.TrimSpace(text[dashIdx+1:]))
	if errA != nil || errB != nil {
		return 0, 0, newParseError(line, "invalid atom index in %q", text)
	}
	if a <= 0 || b <= 0 {
		return 0, 0, newParseError(line, "atom indices are 1-based")
	}
	return a, b, nil
}

// formatFloat matches the host editor's compact float rendering: no
// trailing zeros beyond three decimal places.
func formatFloat(v float64) string {
	s := strconv.FormatFloat(v, 'f', 3, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	return s
}

func formatPosition(p latticemath.DVec3) string {
	return fmt.Sprintf("(%s, %s, %s)", formatFloat(p.X), formatFloat(p.Y), formatFloat(p.Z))
}

// SerializeAtomDiffText renders d back into the §4.8 text grammar, in
// atom-entry order followed by bond entries. It is the inverse of
// ParseAtomDiffText.
func SerializeAtomDiffText(d structure.Diff) string {
	var lines []string

	for _, a := range d.Atoms {
		pos := formatPosition(a.Position)
		switch a.Kind {
		case structure.DiffDelete:
			lines = append(lines, fmt.Sprintf("- @ %s", pos))
		case structure.DiffAddition:
			el := ElementSymbol(a.AtomicNumber)
			lines = append(lines, fmt.Sprintf("+%s @ %s", el, pos))
		case structure.DiffModify:
			el := ElementSymbol(a.AtomicNumber)
			if a.AnchorPosition == a.Position {
				lines = append(lines, fmt.Sprintf("~%s @ %s", el, pos))
			} else {
				lines = append(lines, fmt.Sprintf("~%s @ %s [from %s]", el, pos, formatPosition(a.AnchorPosition)))
			}
		}
	}

	for _, b := range d.Bonds {
		if b.Order == 0 {
			lines = append(lines, fmt.Sprintf("unbond %d-%d", b.AtomIndex1, b.AtomIndex2))
		} else {
			lines = append(lines, fmt.Sprintf("bond %d-%d %s", b.AtomIndex1, b.AtomIndex2, bondOrderNames[b.Order]))
		}
	}

	return strings.Join(lines, "\n")
}
