package domain

// Option pairs a system code with its display label.
type Option struct {
	Code  string
	Label string
}

// FindOption returns the first option whose code equals code.
func FindOption(opts []Option, code string) (Option, bool) {
	for _, o := range opts {
		if o.Code == code {
			return o, true
		}
	}
	return Option{}, false
}

// ContainsCode reports whether code is present in opts.
func ContainsCode(opts []Option, code string) bool {
	_, ok := FindOption(opts, code)
	return ok
}
