package coders

// Kind tags the variant held by a Value.
type Kind uint8

const (
	// KindFixed holds a literal value that is emitted verbatim.
	KindFixed Kind = iota
	// KindAuto leaves the decision to the engine; the related flag is omitted.
	KindAuto
	// KindInherit takes the value from the source stream.
	KindInherit
	// KindNone disables the related feature; the related flag is omitted.
	KindNone
	// KindDefault keeps the encoder's built-in behavior; the related flag is omitted.
	KindDefault
)

// Sentinel spellings as stored in Settings.
const (
	SentinelAuto    = "auto"
	SentinelInherit = "inherit"
	SentinelNone    = "none"
	SentinelDefault = "default"
)

var sentinels = map[string]Kind{
	SentinelAuto:    KindAuto,
	SentinelInherit: KindInherit,
	SentinelNone:    KindNone,
	SentinelDefault: KindDefault,
}

// Value is one setting field: either a fixed literal or a sentinel.
type Value struct {
	kind    Kind
	literal string
}

// Fixed returns a literal value.
func Fixed(s string) Value {
	return Value{kind: KindFixed, literal: s}
}

// Auto returns the auto sentinel.
func Auto() Value { return Value{kind: KindAuto} }

// Inherit returns the inherit sentinel.
func Inherit() Value { return Value{kind: KindInherit} }

// None returns the none sentinel.
func None() Value { return Value{kind: KindNone} }

// Default returns the default sentinel.
func Default() Value { return Value{kind: KindDefault} }

// ParseValue reads a stored setting. Only the sentinels listed in accept are
// recognized; any other string, including a sentinel spelling the field
// does not accept, is a fixed literal.
func ParseValue(raw string, accept ...Kind) Value {
	if k, ok := sentinels[raw]; ok {
		for _, a := range accept {
			if a == k {
				return Value{kind: k}
			}
		}
	}
	return Fixed(raw)
}

// Kind returns the variant tag.
func (v Value) Kind() Kind { return v.kind }

// Is reports whether v holds the given variant.
func (v Value) Is(k Kind) bool { return v.kind == k }

// Literal returns the fixed literal, or "" for sentinels.
func (v Value) Literal() string {
	if v.kind != KindFixed {
		return ""
	}
	return v.literal
}

// Or returns the literal, or inherited when v is the inherit sentinel.
func (v Value) Or(inherited string) string {
	if v.kind == KindInherit {
		return inherited
	}
	return v.Literal()
}

// String returns the stored spelling of v.
func (v Value) String() string {
	switch v.kind {
	case KindAuto:
		return SentinelAuto
	case KindInherit:
		return SentinelInherit
	case KindNone:
		return SentinelNone
	case KindDefault:
		return SentinelDefault
	default:
		return v.literal
	}
}
