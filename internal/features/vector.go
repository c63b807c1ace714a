package features

// FeatureVector is an ordered, fixed-schema set of numeric features. It holds
// exactly the names it was built from, in that order, and cannot gain keys.
type FeatureVector struct {
	names  []string
	values []float64
	index  map[string]int
}

// NewVector returns a vector with one 0.0 entry per schema name. Unset
// features are assumed neutral.
func NewVector(schema []string) FeatureVector {
	v := FeatureVector{
		names:  append([]string(nil), schema...),
		values: make([]float64, len(schema)),
		index:  make(map[string]int, len(schema)),
	}
	for i, name := range schema {
		if _, ok := v.index[name]; !ok {
			v.index[name] = i
		}
	}
	return v
}

// Len returns the number of features.
func (v FeatureVector) Len() int {
	return len(v.names)
}

// Names returns a copy of the feature names in schema order.
func (v FeatureVector) Names() []string {
	return append([]string(nil), v.names...)
}

// Values returns a copy of the values in schema order.
func (v FeatureVector) Values() []float64 {
	return append([]float64(nil), v.values...)
}

// Has reports whether name is part of the schema.
func (v FeatureVector) Has(name string) bool {
	_, ok := v.index[name]
	return ok
}

// Get returns the value for name and whether name is part of the schema.
func (v FeatureVector) Get(name string) (float64, bool) {
	i, ok := v.index[name]
	if !ok {
		return 0, false
	}
	return v.values[i], true
}

// Map returns the vector as a name → value map.
func (v FeatureVector) Map() map[string]float64 {
	m := make(map[string]float64, len(v.names))
	for i, name := range v.names {
		m[name] = v.values[i]
	}
	return m
}

// MatchesSchema reports whether the vector has exactly these names in this order.
func (v FeatureVector) MatchesSchema(schema []string) bool {
	if len(schema) != len(v.names) {
		return false
	}
	for i, name := range schema {
		if v.names[i] != name {
			return false
		}
	}
	return true
}

// set assigns value only when name is part of the schema.
func (v FeatureVector) set(name string, value float64) {
	if i, ok := v.index[name]; ok {
		v.values[i] = value
	}
}
