package parser

// axisTable is the fixed, process-wide axis-name-to-index mapping.
// The identifier set is closed: no other names, no other casings.
var axisTable = map[string]int{
	"x": 0,
	"y": 1,
	"z": 2,
	"w": 3,
}

// ResolveAxis maps a single identifier to its bound index. The match is
// exact and case-sensitive; ok is false for anything that is not one of
// x, y, z, w, which the caller must then treat as an opaque term. This
// is classification, not failure: there is no "unknown axis" error.
func ResolveAxis(name string) (index int, ok bool) {
	index, ok = axisTable[name]
	return index, ok
}

// AxisNames returns the four axis identifiers in index order
func AxisNames() []string {
	return []string{"x", "y", "z", "w"}
}
