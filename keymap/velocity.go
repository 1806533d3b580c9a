package keymap

import (
	"errors"
	"sort"
)

// ErrEmptyVelocityMap is returned when a velocity map has no thresholds.
// That is a configuration problem, reported once, never retried.
var ErrEmptyVelocityMap = errors.New("keymap: velocity map has no thresholds")

// VelocityMap buckets MIDI velocities into modifier tokens by ascending
// thresholds. Thresholds are sorted once at construction; lookups are pure.
type VelocityMap struct {
	thresholds []int
	tokens     map[int]Token
}

// NewVelocityMap builds a velocity map from threshold -> token pairs.
func NewVelocityMap(m map[int]Token) (*VelocityMap, error) {
	if len(m) == 0 {
		return nil, ErrEmptyVelocityMap
	}
	vm := &VelocityMap{tokens: make(map[int]Token, len(m))}
	for th, tok := range m {
		vm.thresholds = append(vm.thresholds, th)
		vm.tokens[th] = tok
	}
	sort.Ints(vm.thresholds)
	return vm, nil
}

// Classify resolves a velocity to the token of the closest threshold not
// exceeding it, clamped to the table bounds. Bisection with an explicit
// early exit at the two boundary indices so 1- and 2-element tables
// terminate: a midpoint strictly below the velocity moves the search right,
// anything else moves it left.
func (vm *VelocityMap) Classify(velocity uint8) Token {
	minimum, maximum := 0, len(vm.thresholds)-1
	index := 0
	for minimum <= maximum {
		index = (minimum + maximum) / 2
		if index == 0 || index == len(vm.thresholds)-1 {
			break
		}
		if vm.thresholds[index] < int(velocity) {
			minimum = index + 1
		} else {
			maximum = index - 1
		}
	}
	return vm.tokens[vm.thresholds[index]]
}
