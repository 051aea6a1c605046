package value

import "sort"

// Arguments holds the coerced argument values of one field invocation.
// Omitted arguments without a default are absent, not Null.
type Arguments map[string]InputValue

// Get returns the argument and whether it was supplied (or defaulted).
func (a Arguments) Get(name string) (InputValue, bool) {
	v, ok := a[name]
	return v, ok
}

// Has reports whether the argument is present.
func (a Arguments) Has(name string) bool {
	_, ok := a[name]
	return ok
}

// String returns a String or Enum argument, "" if absent.
func (a Arguments) String(name string) string {
	s, _ := AsString(a[name])
	return s
}

// Int returns an Int argument, 0 if absent.
func (a Arguments) Int(name string) int64 {
	i, _ := AsInt(a[name])
	return i
}

// Bool returns a Boolean argument, false if absent.
func (a Arguments) Bool(name string) bool {
	b, _ := a[name].Bool()
	return b
}

// Decode converts one argument into target. An absent argument is left
// untouched.
func (a Arguments) Decode(name string, target any) error {
	v, ok := a[name]
	if !ok {
		return nil
	}
	if err := Decode(v, target); err != nil {
		if de, ok := err.(*DecodeError); ok {
			path := name
			switch {
			case de.Path == "":
			case de.Path[0] == '[':
				path += de.Path
			default:
				path += "." + de.Path
			}
			return &DecodeError{Path: path, Msg: de.Msg}
		}
		return err
	}
	return nil
}

// Names lists the argument names in sorted order.
func (a Arguments) Names() []string {
	names := make([]string, 0, len(a))
	for n := range a {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// ToGo converts all arguments to plain Go data.
func (a Arguments) ToGo() map[string]any {
	out := make(map[string]any, len(a))
	for k, v := range a {
		out[k] = v.ToGo()
	}
	return out
}
