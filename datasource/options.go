package datasource

// Options is a merged reader-option map. Values come from YAML or Go
// literals, so numeric lookups tolerate int, int64 and float64.
type Options map[string]interface{}

// mergeOptions merges option maps in order, last write wins.
func mergeOptions(layers ...map[string]interface{}) Options {
	out := Options{}
	for _, layer := range layers {
		for k, v := range layer {
			out[k] = v
		}
	}
	return out
}

// String returns the string option for key, or def when absent.
func (o Options) String(key, def string) string {
	v, ok := o[key]
	if !ok {
		return def
	}
	if s, ok := v.(string); ok {
		return s
	}
	return def
}

// Int returns the integer option for key, or def when absent.
func (o Options) Int(key string, def int) int {
	v, ok := o[key]
	if !ok {
		return def
	}
	switch x := v.(type) {
	case int:
		return x
	case int64:
		return int(x)
	case float64:
		return int(x)
	}
	return def
}

// Bool returns the boolean option for key, or def when absent.
func (o Options) Bool(key string, def bool) bool {
	v, ok := o[key]
	if !ok {
		return def
	}
	if b, ok := v.(bool); ok {
		return b
	}
	return def
}

// Has reports whether key is present.
func (o Options) Has(key string) bool {
	_, ok := o[key]
	return ok
}
