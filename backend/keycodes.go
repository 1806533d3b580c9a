package backend

import (
	"strings"

	"mid2vk/keymap"
)

// keycodes maps key tokens to Linux input event codes, the vocabulary both
// adapters speak. Shifted symbols share the code of their digit key; the
// modifier that distinguishes them is pressed separately by the
// translator.
var keycodes = map[string]int{
	// letters
	"a": 30, "b": 48, "c": 46, "d": 32, "e": 18, "f": 33, "g": 34, "h": 35,
	"i": 23, "j": 36, "k": 37, "l": 38, "m": 50, "n": 49, "o": 24, "p": 25,
	"q": 16, "r": 19, "s": 31, "t": 20, "u": 22, "v": 47, "w": 17, "x": 45,
	"y": 21, "z": 44,
	// digits
	"0": 11, "1": 2, "2": 3, "3": 4, "4": 5, "5": 6, "6": 7, "7": 8, "8": 9, "9": 10,
	// shifted symbols on the digit row
	"!": 2, "@": 3, "#": 4, "$": 5, "%": 6, "^": 7, "&": 8, "*": 9, "(": 10, ")": 11,
	// punctuation
	";": 39, "'": 40, ",": 51, ".": 52, "/": 53,
	// modifiers
	"space": 57, "shift": 42, "ctrl": 29, "alt": 56,
}

// Keycode resolves a token to its Linux input code. Uppercase letters fold
// to their base key; the shift press around them is the translator's job.
func Keycode(tok keymap.Token) (int, bool) {
	code, ok := keycodes[strings.ToLower(string(tok))]
	return code, ok
}
