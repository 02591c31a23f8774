package scene

// PropertyValue is a user property payload: a string, bool, int64, float32/64,
// or a pool handle stored as uint64. Comparison is plain interface equality.
type PropertyValue any

// Property is one name+value pair on a node. The property list is
// order-significant: editor commands address entries by index.
type Property struct {
	Name  string
	Value PropertyValue
}
