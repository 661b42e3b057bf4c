package format

import "strings"

// Options is a decoded formatter config file. Keys are read at the top level
// first and then under a "formatter" object, so both flat configs and
// nested ones work.
type Options map[string]any

func (o Options) lookup(key string) (any, bool) {
	if v, ok := o[key]; ok {
		return v, true
	}
	if nested, ok := o["formatter"].(map[string]any); ok {
		v, ok := nested[key]
		return v, ok
	}
	return nil, false
}

// Bool returns a boolean option.
func (o Options) Bool(key string) (bool, bool) {
	v, ok := o.lookup(key)
	if !ok {
		return false, false
	}
	b, ok := v.(bool)
	return b, ok
}

// Int returns a numeric option truncated to an int.
func (o Options) Int(key string) (int, bool) {
	v, ok := o.lookup(key)
	if !ok {
		return 0, false
	}
	f, ok := v.(float64)
	return int(f), ok
}

// Text returns a string option.
func (o Options) Text(key string) (string, bool) {
	v, ok := o.lookup(key)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// indentUnit resolves the indentation string from useTabs/indentStyle and
// tabWidth/indentWidth, falling back to def.
func (o Options) indentUnit(def string) string {
	useTabs, ok := o.Bool("useTabs")
	if !ok {
		if style, ok := o.Text("indentStyle"); ok {
			useTabs = style == "tab"
		} else {
			useTabs = def == "\t"
		}
	}
	if useTabs {
		return "\t"
	}

	width, ok := o.Int("indentWidth")
	if !ok {
		width, ok = o.Int("tabWidth")
	}
	if !ok || width <= 0 {
		if def == "\t" {
			return "  "
		}
		return def
	}
	return strings.Repeat(" ", width)
}
