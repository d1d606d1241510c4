package generator

const (
	lowercaseChars = "abcdefghijklmnopqrstuvwxyz"
	uppercaseChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digitChars     = "0123456789"
	symbolChars    = "!@#$%^&*()_+"
)

// Class identifies one of the character classes a password can draw from.
type Class int

const (
	Lowercase Class = iota
	Uppercase
	Digits
	Symbols
)

// ClassInfo describes a character class and its fixed alphabet.
type ClassInfo struct {
	Class    Class
	Name     string
	Alphabet string
}

var classes = []ClassInfo{
	{Class: Lowercase, Name: "lowercase", Alphabet: lowercaseChars},
	{Class: Uppercase, Name: "uppercase", Alphabet: uppercaseChars},
	{Class: Digits, Name: "digits", Alphabet: digitChars},
	{Class: Symbols, Name: "symbols", Alphabet: symbolChars},
}

// Classes returns the character classes in alphabet order.
func Classes() []ClassInfo {
	out := make([]ClassInfo, len(classes))
	copy(out, classes)
	return out
}

func (c Class) String() string {
	if c < Lowercase || c > Symbols {
		return "unknown"
	}
	return classes[c].Name
}

// Selection holds which character classes are enabled.
type Selection struct {
	Lowercase bool
	Uppercase bool
	Digits    bool
	Symbols   bool
}

// Has reports whether class c is enabled.
func (s Selection) Has(c Class) bool {
	switch c {
	case Lowercase:
		return s.Lowercase
	case Uppercase:
		return s.Uppercase
	case Digits:
		return s.Digits
	case Symbols:
		return s.Symbols
	}
	return false
}

// With returns a copy of s with class c set to on.
func (s Selection) With(c Class, on bool) Selection {
	switch c {
	case Lowercase:
		s.Lowercase = on
	case Uppercase:
		s.Uppercase = on
	case Digits:
		s.Digits = on
	case Symbols:
		s.Symbols = on
	}
	return s
}

// Empty reports whether no class is enabled.
func (s Selection) Empty() bool {
	return !s.Lowercase && !s.Uppercase && !s.Digits && !s.Symbols
}

// BuildAlphabet concatenates the alphabets of the enabled classes in the
// order lowercase, uppercase, digits, symbols. An empty selection yields "".
func BuildAlphabet(sel Selection) string {
	var alphabet string
	for _, ci := range classes {
		if sel.Has(ci.Class) {
			alphabet += ci.Alphabet
		}
	}
	return alphabet
}
