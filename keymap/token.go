package keymap

import "strings"

// Token identifies one output key: a letter, digit, symbol, or a named
// modifier. The backend decides how a token reaches the OS.
type Token string

// Named modifier tokens.
const (
	Shift Token = "shift"
	Ctrl  Token = "ctrl"
	Alt   Token = "alt"
	Space Token = "space"
)

// shiftSymbols are the symbol keys produced by holding shift on the key one
// semitone below. Matches the set the mapping tables use for sharps.
const shiftSymbols = "!@$%^*("

// Lower returns the lowercase form of the token.
func (t Token) Lower() Token {
	return Token(strings.ToLower(string(t)))
}

// IsUpper reports whether the token is an uppercase letter form, i.e. it
// changes under lowercasing.
func (t Token) IsUpper() bool {
	s := string(t)
	return s != strings.ToLower(s)
}

// IsShiftSymbol reports whether the token contains one of the symbols that
// must be typed as shift plus the base key one semitone below.
func (t Token) IsShiftSymbol() bool {
	return strings.ContainsAny(string(t), shiftSymbols)
}
