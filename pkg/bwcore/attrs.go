package bwcore

// Attributes is the attribute map of a <block> tag. Duplicate keys seen
// during scanning resolve last-value-wins before the map reaches here.
type Attributes map[string]string

// Get returns the value for name and whether it was present.
func (a Attributes) Get(name string) (string, bool) {
	v, ok := a[name]
	return v, ok
}

// GetOr returns the value for name, or def if absent.
func (a Attributes) GetOr(name, def string) string {
	if v, ok := a[name]; ok {
		return v
	}
	return def
}
