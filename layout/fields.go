package layout

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/atomcore/atomcore/catalog"
	"github.com/atomcore/atomcore/latticemath"
)

// property describes one text-format field of a node type: its name, the
// NodeType.Parameters index it shadows when wired (-1 if the field has no
// corresponding wireable parameter and is always a stored value), and the
// codec for reading/writing it against the node's NodeData.
type property struct {
	name       string
	paramIndex int
	encode     func(data interface{}) (string, bool)
	decode     func(data interface{}, text string) error
}

// propertiesForType returns the ordered text-format fields of typeName, or
// nil if the type carries none (parameter, booleans, atom_edit's base
// input, ...).
func propertiesForType(typeName string) []property {
	return propertyTable[typeName]
}

var propertyTable = map[string][]property{
	"constant_bool": {
		{name: "value", paramIndex: -1,
			encode: func(d interface{}) (string, bool) { return strconv.FormatBool(d.(*catalog.ConstBoolData).Value), true },
			decode: func(d interface{}, s string) error {
				v, err := strconv.ParseBool(s)
				if err != nil {
					return err
				}
				d.(*catalog.ConstBoolData).Value = v
				return nil
			}},
	},
	"constant_int": {
		{name: "value", paramIndex: -1,
			encode: func(d interface{}) (string, bool) { return strconv.FormatInt(d.(*catalog.ConstIntData).Value, 10), true },
			decode: func(d interface{}, s string) error {
				v, err := strconv.ParseInt(s, 10, 64)
				if err != nil {
					return err
				}
				d.(*catalog.ConstIntData).Value = v
				return nil
			}},
	},
	"constant_float": {
		{name: "value", paramIndex: -1,
			encode: func(d interface{}) (string, bool) { return formatFloat(d.(*catalog.ConstFloatData).Value), true },
			decode: func(d interface{}, s string) error {
				v, err := strconv.ParseFloat(s, 64)
				if err != nil {
					return err
				}
				d.(*catalog.ConstFloatData).Value = v
				return nil
			}},
	},
	"constant_string": {
		{name: "value", paramIndex: -1,
			encode: func(d interface{}) (string, bool) { return strconv.Quote(d.(*catalog.ConstStringData).Value), true },
			decode: func(d interface{}, s string) error {
				v, err := strconv.Unquote(s)
				if err != nil {
					return err
				}
				d.(*catalog.ConstStringData).Value = v
				return nil
			}},
	},
	"unit_cell": {
		{name: "a", paramIndex: 0,
			encode: func(d interface{}) (string, bool) { return formatVec3(d.(*catalog.UnitCellData).A), true },
			decode: func(d interface{}, s string) error {
				v, err := parseVec3(s)
				if err != nil {
					return err
				}
				d.(*catalog.UnitCellData).A = v
				return nil
			}},
		{name: "b", paramIndex: 1,
			encode: func(d interface{}) (string, bool) { return formatVec3(d.(*catalog.UnitCellData).B), true },
			decode: func(d interface{}, s string) error {
				v, err := parseVec3(s)
				if err != nil {
					return err
				}
				d.(*catalog.UnitCellData).B = v
				return nil
			}},
		{name: "c", paramIndex: 2,
			encode: func(d interface{}) (string, bool) { return formatVec3(d.(*catalog.UnitCellData).C), true },
			decode: func(d interface{}, s string) error {
				v, err := parseVec3(s)
				if err != nil {
					return err
				}
				d.(*catalog.UnitCellData).C = v
				return nil
			}},
	},
	"sphere": {
		{name: "center", paramIndex: 0,
			encode: func(d interface{}) (string, bool) { return formatVec3(d.(*catalog.SphereData).Center), true },
			decode: func(d interface{}, s string) error {
				v, err := parseVec3(s)
				if err != nil {
					return err
				}
				d.(*catalog.SphereData).Center = v
				return nil
			}},
		{name: "radius", paramIndex: 1,
			encode: func(d interface{}) (string, bool) { return formatFloat(d.(*catalog.SphereData).Radius), true },
			decode: func(d interface{}, s string) error {
				v, err := strconv.ParseFloat(s, 64)
				if err != nil {
					return err
				}
				d.(*catalog.SphereData).Radius = v
				return nil
			}},
	},
	"cuboid": {
		{name: "min_corner", paramIndex: 0,
			encode: func(d interface{}) (string, bool) { return formatVec3(d.(*catalog.CuboidData).MinCorner), true },
			decode: func(d interface{}, s string) error {
				v, err := parseVec3(s)
				if err != nil {
					return err
				}
				d.(*catalog.CuboidData).MinCorner = v
				return nil
			}},
		{name: "extent", paramIndex: 1,
			encode: func(d interface{}) (string, bool) { return formatVec3(d.(*catalog.CuboidData).Extent), true },
			decode: func(d interface{}, s string) error {
				v, err := parseVec3(s)
				if err != nil {
					return err
				}
				d.(*catalog.CuboidData).Extent = v
				return nil
			}},
	},
	"half_space": {
		{name: "miller_index", paramIndex: 1,
			encode: func(d interface{}) (string, bool) { return formatIVec3(d.(*catalog.HalfSpaceData).MillerIndex), true },
			decode: func(d interface{}, s string) error {
				v, err := parseIVec3(s)
				if err != nil {
					return err
				}
				d.(*catalog.HalfSpaceData).MillerIndex = v
				return nil
			}},
		{name: "shift", paramIndex: 2,
			encode: func(d interface{}) (string, bool) { return strconv.FormatInt(d.(*catalog.HalfSpaceData).Shift, 10), true },
			decode: func(d interface{}, s string) error {
				v, err := strconv.ParseInt(s, 10, 64)
				if err != nil {
					return err
				}
				d.(*catalog.HalfSpaceData).Shift = v
				return nil
			}},
		{name: "center", paramIndex: 3,
			encode: func(d interface{}) (string, bool) { return formatIVec3(d.(*catalog.HalfSpaceData).Center), true },
			decode: func(d interface{}, s string) error {
				v, err := parseIVec3(s)
				if err != nil {
					return err
				}
				d.(*catalog.HalfSpaceData).Center = v
				return nil
			}},
	},
	"geo_trans": {
		{name: "rotation", paramIndex: -1,
			encode: func(d interface{}) (string, bool) { return formatQuaternion(d.(*catalog.TransformData).Rotation), true },
			decode: func(d interface{}, s string) error {
				v, err := parseQuaternion(s)
				if err != nil {
					return err
				}
				d.(*catalog.TransformData).Rotation = v
				return nil
			}},
		{name: "translation", paramIndex: -1,
			encode: func(d interface{}) (string, bool) { return formatVec3(d.(*catalog.TransformData).Translation), true },
			decode: func(d interface{}, s string) error {
				v, err := parseVec3(s)
				if err != nil {
					return err
				}
				d.(*catalog.TransformData).Translation = v
				return nil
			}},
	},
	"extrude": {
		{name: "height", paramIndex: -1,
			encode: func(d interface{}) (string, bool) { return formatFloat(d.(*catalog.ExtrudeData).Height), true },
			decode: func(d interface{}, s string) error {
				v, err := strconv.ParseFloat(s, 64)
				if err != nil {
					return err
				}
				d.(*catalog.ExtrudeData).Height = v
				return nil
			}},
		{name: "direction", paramIndex: -1,
			encode: func(d interface{}) (string, bool) { return formatVec3(d.(*catalog.ExtrudeData).Direction), true },
			decode: func(d interface{}, s string) error {
				v, err := parseVec3(s)
				if err != nil {
					return err
				}
				d.(*catalog.ExtrudeData).Direction = v
				return nil
			}},
		{name: "infinite", paramIndex: -1,
			encode: func(d interface{}) (string, bool) { return strconv.FormatBool(d.(*catalog.ExtrudeData).Infinite), true },
			decode: func(d interface{}, s string) error {
				v, err := strconv.ParseBool(s)
				if err != nil {
					return err
				}
				d.(*catalog.ExtrudeData).Infinite = v
				return nil
			}},
	},
	"atom_edit": {
		{name: "diff_text", paramIndex: -1,
			encode: func(d interface{}) (string, bool) { return encodeMultiline(d.(*catalog.AtomEditData).DiffText), true },
			decode: func(d interface{}, s string) error {
				d.(*catalog.AtomEditData).DiffText = decodeMultiline(s)
				return nil
			}},
	},
	"motif_fill": {
		{name: "motif_text", paramIndex: -1,
			encode: func(d interface{}) (string, bool) { return encodeMultiline(d.(*catalog.MotifFillData).MotifText), true },
			decode: func(d interface{}, s string) error {
				d.(*catalog.MotifFillData).MotifText = decodeMultiline(s)
				return nil
			}},
		{name: "bindings", paramIndex: -1,
			encode: func(d interface{}) (string, bool) { return formatBindings(d.(*catalog.MotifFillData).Bindings), true },
			decode: func(d interface{}, s string) error {
				v, err := parseBindings(s)
				if err != nil {
					return err
				}
				d.(*catalog.MotifFillData).Bindings = v
				return nil
			}},
	},
}

func formatFloat(v float64) string {
	s := strconv.FormatFloat(v, 'f', 3, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	return s
}

func formatVec3(v latticemath.DVec3) string {
	return fmt.Sprintf("(%s, %s, %s)", formatFloat(v.X), formatFloat(v.Y), formatFloat(v.Z))
}

func formatIVec3(v latticemath.IVec3) string {
	return fmt.Sprintf("(%d, %d, %d)", v.X, v.Y, v.Z)
}

func formatQuaternion(q latticemath.Quaternion) string {
	return fmt.Sprintf("(%s, %s, %s, %s)", formatFloat(q.X), formatFloat(q.Y), formatFloat(q.Z), formatFloat(q.W))
}

func parseTriple(s string) ([]string, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "(") || !strings.HasSuffix(s, ")") {
		return nil, fmt.Errorf("layout: expected parenthesized tuple, got %q", s)
	}
	inner := s[1 : len(s)-1]
	parts := strings.Split(inner, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts, nil
}

func parseVec3(s string) (latticemath.DVec3, error) {
	parts, err := parseTriple(s)
	if err != nil || len(parts) != 3 {
		return latticemath.DVec3{}, fmt.Errorf("layout: malformed vec3 %q", s)
	}
	x, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return latticemath.DVec3{}, err
	}
	y, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return latticemath.DVec3{}, err
	}
	z, err := strconv.ParseFloat(parts[2], 64)
	if err != nil {
		return latticemath.DVec3{}, err
	}
	return latticemath.DVec3{X: x, Y: y, Z: z}, nil
}

func parseIVec3(s string) (latticemath.IVec3, error) {
	parts, err := parseTriple(s)
	if err != nil || len(parts) != 3 {
		return latticemath.IVec3{}, fmt.Errorf("layout: malformed ivec3 %q", s)
	}
	x, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return latticemath.IVec3{}, err
	}
	y, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return latticemath.IVec3{}, err
	}
	z, err := strconv.ParseInt(parts[2], 10, 64)
	if err != nil {
		return latticemath.IVec3{}, err
	}
	return latticemath.IVec3{X: x, Y: y, Z: z}, nil
}

func parseQuaternion(s string) (latticemath.Quaternion, error) {
	parts, err := parseTriple(s)
	if err != nil || len(parts) != 4 {
		return latticemath.Quaternion{}, fmt.Errorf("layout: malformed quaternion %q", s)
	}
	vals := make([]float64, 4)
	for i, p := range parts {
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return latticemath.Quaternion{}, err
		}
		vals[i] = v
	}
	return latticemath.Quaternion{X: vals[0], Y: vals[1], Z: vals[2], W: vals[3]}, nil
}

// encodeMultiline/decodeMultiline let a stored multi-line string (diff
// text, motif text) survive as one text-format property value.
func encodeMultiline(s string) string {
	return strconv.Quote(strings.ReplaceAll(s, "\n", "\\n"))
}

func decodeMultiline(s string) string {
	unquoted, err := strconv.Unquote(s)
	if err != nil {
		unquoted = s
	}
	return strings.ReplaceAll(unquoted, "\\n", "\n")
}

func formatBindings(b map[string]int32) string {
	keys := make([]string, 0, len(b))
	for k := range b {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %d", k, b[k]))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func parseBindings(s string) (map[string]int32, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "{") || !strings.HasSuffix(s, "}") {
		return nil, fmt.Errorf("layout: malformed bindings %q", s)
	}
	inner := strings.TrimSpace(s[1 : len(s)-1])
	out := make(map[string]int32)
	if inner == "" {
		return out, nil
	}
	for _, entry := range strings.Split(inner, ",") {
		kv := strings.SplitN(entry, ":", 2)
		if len(kv) != 2 {
			return nil, fmt.Errorf("layout: malformed binding entry %q", entry)
		}
		key := strings.TrimSpace(kv[0])
		val, err := strconv.ParseInt(strings.TrimSpace(kv[1]), 10, 32)
		if err != nil {
			return nil, err
		}
		out[key] = int32(val)
	}
	return out, nil
}
