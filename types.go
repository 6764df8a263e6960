package mkconfgen

// Buffer limits of the loader, in characters.
const (
	MaxKeyLength   = 63
	MaxValueLength = 511
)

// LoadOpt bundles loader options. Zero fields select the defaults.
type LoadOpt struct {
	MaxKeyLength   int
	MaxValueLength int
}

func normalizeLoadOpt(opts []LoadOpt) LoadOpt {
	var opt LoadOpt
	if len(opts) > 0 {
		opt = opts[len(opts)-1]
	}
	if opt.MaxKeyLength <= 0 {
		opt.MaxKeyLength = MaxKeyLength
	}
	if opt.MaxValueLength <= 0 {
		opt.MaxValueLength = MaxValueLength
	}
	return opt
}

// ValueParser converts the raw value of key index and stores it in the
// configuration record. quoted reports whether the value was a quoted string.
// On failure it returns the error kind to record and false.
type ValueParser func(index int, raw string, quoted bool) (ErrorKind, bool)
