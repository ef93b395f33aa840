package layout

import (
	"fmt"
	"strings"

	"github.com/atomcore/atomcore/node"
)

// ParseNetwork parses text in the §4.8 grammar back into a NodeNetwork
// resolved against registry. parse(serialize(net)) reproduces net's
// wiring and data for any net with no dangling references and no
// duplicate custom names.
func ParseNetwork(text string, registry *node.Registry) (*node.NodeNetwork, error) {
	net := node.NewNetwork(registry, "")
	nameToID := make(map[string]node.NodeId)

	var outputName string
	haveOutput := false

	for i, raw := range strings.Split(text, "\n") {
		lineNumber := i + 1
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, "output ") {
			outputName = strings.TrimSpace(line[len("output "):])
			haveOutput = true
			continue
		}

		name, typeName, fieldsInner, err := splitNodeLine(line)
		if err != nil {
			return nil, fmt.Errorf("layout: line %d: %w", lineNumber, err)
		}
		if _, exists := nameToID[name]; exists {
			return nil, fmt.Errorf("layout: line %d: %w: %s", lineNumber, ErrNameCollision, name)
		}

		id, err := net.AddNode(typeName, 0, 0)
		if err != nil {
			return nil, fmt.Errorf("layout: line %d: %w: %s", lineNumber, ErrUnknownNodeType, typeName)
		}
		nameToID[name] = id

		nt, _ := registry.Lookup(typeName)
		paramsByName := make(map[string]int, len(nt.Parameters))
		for pi, p := range nt.Parameters {
			paramsByName[p.Name] = pi
		}
		propsByName := make(map[string]property)
		for _, p := range propertiesForType(typeName) {
			propsByName[p.name] = p
		}

		visible := false
		fieldsInner = strings.TrimSpace(fieldsInner)
		if fieldsInner != "" {
			for _, chunk := range splitTopLevel(fieldsInner, ',') {
				chunk = strings.TrimSpace(chunk)
				if chunk == "" {
					continue
				}
				colon := strings.IndexByte(chunk, ':')
				if colon < 0 {
					return nil, fmt.Errorf("layout: line %d: %w", lineNumber, ErrMalformedLine)
				}
				fieldName := strings.TrimSpace(chunk[:colon])
				valueText := strings.TrimSpace(chunk[colon+1:])

				if fieldName == "visible" {
					visible = valueText == "true"
					continue
				}

				if pi, isParam := paramsByName[fieldName]; isParam && isConnectionSyntax(valueText) {
					if err := bindParam(net, id, pi, nt.Parameters[pi], valueText, nameToID); err != nil {
						return nil, fmt.Errorf("layout: line %d: %w", lineNumber, err)
					}
					continue
				}

				p, ok := propsByName[fieldName]
				if !ok {
					return nil, fmt.Errorf("layout: line %d: %w: %s", lineNumber, ErrUnknownProperty, fieldName)
				}
				n, _ := net.Node(id)
				if n.Data == nil {
					return nil, fmt.Errorf("layout: line %d: node type %s carries no data", lineNumber, typeName)
				}
				if err := p.decode(n.Data, valueText); err != nil {
					return nil, fmt.Errorf("layout: line %d: %w", lineNumber, err)
				}
			}
		}
		if visible {
			_ = net.SetDisplayed(id, true)
		}
	}

	if haveOutput {
		id, ok := nameToID[outputName]
		if !ok {
			return nil, ErrUnknownReturnRef
		}
		if err := net.SetReturnNode(id); err != nil {
			return nil, err
		}
	}
	return net, nil
}

// splitNodeLine parses "name = type { fields }" into its three parts.
func splitNodeLine(line string) (name, typeName, fieldsInner string, err error) {
	eq := strings.Index(line, "=")
	if eq < 0 {
		return "", "", "", ErrMalformedLine
	}
	name = strings.TrimSpace(line[:eq])
	rest := strings.TrimSpace(line[eq+1:])
	brace := strings.Index(rest, "{")
	if brace < 0 || !strings.HasSuffix(rest, "}") {
		return "", "", "", ErrMalformedLine
	}
	typeName = strings.TrimSpace(rest[:brace])
	fieldsInner = rest[brace+1 : len(rest)-1]
	return name, typeName, fieldsInner, nil
}

// isConnectionSyntax reports whether valueText denotes a wiring reference
// (a bare node name, a "@name" function pin, or a "[a, b, ...]" multi
// list) rather than a literal stored value. Literal values always start
// with a digit, '-', '(', '"', or are exactly "true"/"false"; node names
// are plain identifiers, which never collide with that set.
func isConnectionSyntax(valueText string) bool {
	if valueText == "" {
		return false
	}
	if strings.HasPrefix(valueText, "@") || strings.HasPrefix(valueText, "[") {
		return true
	}
	if valueText == "true" || valueText == "false" {
		return false
	}
	c := valueText[0]
	if c == '-' || c == '(' || c == '"' || (c >= '0' && c <= '9') {
		return false
	}
	return true
}

func bindParam(net *node.NodeNetwork, dstID node.NodeId, dstParam int, param node.Parameter, valueText string, nameToID map[string]node.NodeId) error {
	resolve := func(name string) (node.NodeId, error) {
		id, ok := nameToID[strings.TrimSpace(name)]
		if !ok {
			return 0, fmt.Errorf("%w: %s", ErrDanglingName, name)
		}
		return id, nil
	}

	if param.Multi {
		if !strings.HasPrefix(valueText, "[") || !strings.HasSuffix(valueText, "]") {
			return ErrMalformedLine
		}
		inner := strings.TrimSpace(valueText[1 : len(valueText)-1])
		if inner == "" {
			return nil
		}
		for _, part := range splitTopLevel(inner, ',') {
			srcID, err := resolve(part)
			if err != nil {
				return err
			}
			if err := net.Connect(srcID, 0, dstID, dstParam); err != nil {
				return err
			}
		}
		return nil
	}

	if strings.HasPrefix(valueText, "@") {
		srcID, err := resolve(valueText[1:])
		if err != nil {
			return err
		}
		return net.Connect(srcID, node.FunctionPin, dstID, dstParam)
	}

	srcID, err := resolve(valueText)
	if err != nil {
		return err
	}
	return net.Connect(srcID, 0, dstID, dstParam)
}

// splitTopLevel splits s on sep, ignoring separators nested inside
// (), [], {} or a "quoted string".
func splitTopLevel(s string, sep byte) []string {
	var parts []string
	depth := 0
	inQuote := false
	start := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '"' && (i == 0 || s[i-1] != '\\'):
			inQuote = !inQuote
		case inQuote:
		case c == '(' || c == '[' || c == '{':
			depth++
		case c == ')' || c == ']' || c == '}':
			depth--
		case c == sep && depth == 0:
			parts = append(parts, s[start:i])
			start = i + 1
		}
	}
	parts = append(parts, s[start:])
	return parts
}
