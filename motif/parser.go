package motif

import (
	"strconv"
	"strings"

	"github.com/atomcore/atomcore/latticemath"
)

// isValidIdentifier reports whether s is a non-empty run of alphanumerics
// and underscores (it may start with a digit, unlike a Go identifier).
func isValidIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !(r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')) {
			return false
		}
	}
	return true
}

func cellCharToInt(c byte) int64 {
	switch c {
	case '+':
		return 1
	case '-':
		return -1
	default:
		return 0
	}
}

// parseSiteSpecifier parses a site reference such as "site1", "2", or
// "+..site1" (a 3-character relative-cell prefix of +/-/. followed by a
// site id).
func parseSiteSpecifier(spec string, line int) (SiteSpecifier, error) {
	if spec == "" {
		return SiteSpecifier{}, newParseError(line, "site specifier cannot be empty")
	}
	if len(spec) >= 4 {
		prefix := spec[:3]
		isCellPrefix := true
		for i := 0; i < 3; i++ {
			if prefix[i] != '+' && prefix[i] != '-' && prefix[i] != '.' {
				isCellPrefix = false
				break
			}
		}
		if isCellPrefix {
			id := spec[3:]
			if !isValidIdentifier(id) {
				return SiteSpecifier{}, newParseError(line, "%q is not a valid site id in specifier %q", id, spec)
			}
			return SiteSpecifier{
				ID: id,
				RelativeCell: latticemath.IVec3{
					X: cellCharToInt(prefix[0]),
					Y: cellCharToInt(prefix[1]),
					Z: cellCharToInt(prefix[2]),
				},
			}, nil
		}
	}
	if !isValidIdentifier(spec) {
		return SiteSpecifier{}, newParseError(line, "%q is not a valid site id", spec)
	}
	return SiteSpecifier{ID: spec}, nil
}

func tokenizeLine(line string) []string {
	return strings.Fields(line)
}

func parseParamCommand(tokens []string, line int) (ParameterElement, error) {
	if len(tokens) < 2 {
		return ParameterElement{}, newParseError(line, "param command requires at least a parameter name")
	}
	if len(tokens) > 3 {
		return ParameterElement{}, newParseError(line, "param command takes at most 2 arguments")
	}
	name := tokens[1]
	if !isValidIdentifier(name) {
		return ParameterElement{}, newParseError(line, "%q is not a valid parameter name", name)
	}
	defaultAtomicNumber := int32(6) // Carbon
	if len(tokens) == 3 {
		n, ok := ChemicalElements[tokens[2]]
		if !ok {
			return ParameterElement{}, newParseError(line, "unknown chemical element %q", tokens[2])
		}
		defaultAtomicNumber = n
	}
	return ParameterElement{Name: name, DefaultAtomicNumber: defaultAtomicNumber}, nil
}

func parseSiteCommand(tokens []string, line int, parameters []ParameterElement) (string, Site, error) {
	if len(tokens) != 6 {
		return "", Site{}, newParseError(line, "site command requires exactly 5 arguments: site ID ELEMENT X Y Z")
	}
	id := tokens[1]
	if !isValidIdentifier(id) {
		return "", Site{}, newParseError(line, "%q is not a valid site id", id)
	}
	x, err := strconv.ParseFloat(tokens[3], 64)
	if err != nil {
		return "", Site{}, newParseError(line, "invalid X coordinate %q", tokens[3])
	}
	y, err := strconv.ParseFloat(tokens[4], 64)
	if err != nil {
		return "", Site{}, newParseError(line, "invalid Y coordinate %q", tokens[4])
	}
	z, err := strconv.ParseFloat(tokens[5], 64)
	if err != nil {
		return "", Site{}, newParseError(line, "invalid Z coordinate %q", tokens[5])
	}

	elementName := tokens[2]
	if !isValidIdentifier(elementName) {
		return "", Site{}, newParseError(line, "%q is not a valid element or parameter name", elementName)
	}
	atomicNumber, ok := ChemicalElements[elementName]
	if !ok {
		paramIndex := -1
		for i, p := range parameters {
			if p.Name == elementName {
				paramIndex = i
				break
			}
		}
		if paramIndex < 0 {
			return "", Site{}, newParseError(line, "unknown element or parameter %q", elementName)
		}
		atomicNumber = -(int32(paramIndex) + 1)
	}

	return id, Site{AtomicNumber: atomicNumber, Position: latticemath.DVec3{X: x, Y: y, Z: z}}, nil
}

func parseBondCommand(tokens []string, line int) (MotifBond, error) {
	if len(tokens) < 3 {
		return MotifBond{}, newParseError(line, "bond command requires at least 2 site specifiers")
	}
	if len(tokens) > 4 {
		return MotifBond{}, newParseError(line, "bond command takes at most 3 arguments")
	}
	s1, err := parseSiteSpecifier(tokens[1], line)
	if err != nil {
		return MotifBond{}, err
	}
	s2, err := parseSiteSpecifier(tokens[2], line)
	if err != nil {
		return MotifBond{}, err
	}
	multiplicity := int64(1)
	if len(tokens) == 4 {
		multiplicity, err = strconv.ParseInt(tokens[3], 10, 32)
		if err != nil {
			return MotifBond{}, newParseError(line, "invalid multiplicity %q", tokens[3])
		}
	}
	if multiplicity <= 0 {
		return MotifBond{}, newParseError(line, "multiplicity must be positive, got %d", multiplicity)
	}
	return MotifBond{Site1: s1, Site2: s2, Multiplicity: int32(multiplicity)}, nil
}

// ParseMotif parses a complete motif definition: one param/site/bond
// command per non-empty, non-comment ('#') line.
func ParseMotif(text string) (Motif, error) {
	var parameters []ParameterElement
	sites := make(map[string]Site)
	var bonds []MotifBond

	for i, line := range strings.Split(text, "\n") {
		lineNumber := i + 1
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		tokens := tokenizeLine(trimmed)
		if len(tokens) == 0 {
			continue
		}
		switch strings.ToLower(tokens[0]) {
		case "param":
			p, err := parseParamCommand(tokens, lineNumber)
			if err != nil {
				return Motif{}, err
			}
			parameters = append(parameters, p)
		case "site":
			id, site, err := parseSiteCommand(tokens, lineNumber, parameters)
			if err != nil {
				return Motif{}, err
			}
			sites[id] = site
		case "bond":
			b, err := parseBondCommand(tokens, lineNumber)
			if err != nil {
				return Motif{}, err
			}
			bonds = append(bonds, b)
		default:
			return Motif{}, newParseError(lineNumber, "unknown command %q", tokens[0])
		}
	}

	return Motif{Parameters: parameters, Sites: sites, Bonds: bonds}, nil
}
