// Package netclass maps network-class tokens to IPv4 prefix lengths.
//
// A class is shorthand for a prefix length: a classful letter code
// (A/B/C), HOST for a single address, a bare number, or a /n CIDR
// suffix. All forms are case-insensitive.
package netclass

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidClass reports a class token that matches no recognized form
// or names a prefix length outside [0,32].
var ErrInvalidClass = errors.New("invalid network class")

// Resolve returns the IPv4 prefix length for a class token.
//
// Recognized forms: "A" (8), "B" (16), "C" (24), "HOST" (32), a bare
// integer "n" in [0,32], or "/n" with n in [0,32].
func Resolve(token string) (int, error) {
	switch strings.ToUpper(strings.TrimSpace(token)) {
	case "A":
		return 8, nil
	case "B":
		return 16, nil
	case "C":
		return 24, nil
	case "HOST":
		return 32, nil
	}

	num := strings.TrimPrefix(strings.TrimSpace(token), "/")
	if num == "" || strings.IndexFunc(num, func(r rune) bool { return r < '0' || r > '9' }) >= 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClass, token)
	}
	bits, err := strconv.Atoi(num)
	if err != nil || bits > 32 {
		return 0, fmt.Errorf("%w: %q is outside /0-/32", ErrInvalidClass, token)
	}
	return bits, nil
}
