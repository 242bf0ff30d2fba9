// Package wgconf rewrites the AllowedIPs value of a WireGuard
// configuration without disturbing anything else in the file.
//
// The document is treated as opaque lines; only the first AllowedIPs
// line inside a [Peer] section is touched, and even there the text up
// to and including the "=" is preserved. Everything else round-trips
// byte for byte.
package wgconf

import (
	"errors"
	"net/netip"
	"strings"
)

// ErrFieldNotFound reports a template with no AllowedIPs line inside a
// [Peer] section.
var ErrFieldNotFound = errors.New("no AllowedIPs line found in a [Peer] section")

// Mode selects how new routes combine with the existing value.
type Mode int

const (
	// Append keeps the existing entries and adds new routes after them.
	Append Mode = iota
	// Overwrite discards the existing value entirely.
	Overwrite
)

// scanState tracks where the line scan is relative to the target field.
type scanState int

const (
	beforePeer scanState = iota
	inPeer
	done
)

// Merge rewrites the first AllowedIPs line found inside a [Peer]
// section with the given routes ("a.b.c.d/n" strings), deduplicated
// preserving first occurrence. All other lines are returned unchanged.
func Merge(lines []string, routes []string, mode Mode) ([]string, error) {
	out := make([]string, len(lines))
	copy(out, lines)

	state := beforePeer
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		isSection := strings.HasPrefix(trimmed, "[")

		switch state {
		case beforePeer:
			if isSection && strings.EqualFold(trimmed, "[Peer]") {
				state = inPeer
			}
		case inPeer:
			if isSection {
				if !strings.EqualFold(trimmed, "[Peer]") {
					state = beforePeer
				}
				continue
			}
			head, value, ok := splitAllowedIPs(line)
			if !ok {
				continue
			}
			out[i] = head + " " + mergeValue(value, routes, mode)
			if strings.HasSuffix(line, "\r") {
				out[i] += "\r"
			}
			state = done
		case done:
		}
	}

	if state != done {
		return nil, ErrFieldNotFound
	}
	return out, nil
}

// splitAllowedIPs matches a line whose trimmed content starts with
// "AllowedIPs" followed by "=". It returns the original text up to and
// including the "=" and the raw value after it.
func splitAllowedIPs(line string) (head, value string, ok bool) {
	const key = "AllowedIPs"

	start := len(line) - len(strings.TrimLeft(line, " \t"))
	rest := line[start:]
	if len(rest) < len(key) || !strings.EqualFold(rest[:len(key)], key) {
		return "", "", false
	}

	i := start + len(key)
	for i < len(line) && (line[i] == ' ' || line[i] == '\t') {
		i++
	}
	if i >= len(line) || line[i] != '=' {
		return "", "", false
	}
	return line[:i+1], line[i+1:], true
}

// mergeValue builds the new comma-joined field value. Existing entries
// are kept verbatim in Append mode; new routes are appended in order,
// with duplicates (by canonical address/prefix) dropped.
func mergeValue(existing string, routes []string, mode Mode) string {
	seen := make(map[string]struct{})
	var parts []string

	add := func(entry string) {
		key := canonical(entry)
		if _, dup := seen[key]; dup {
			return
		}
		seen[key] = struct{}{}
		parts = append(parts, entry)
	}

	if mode == Append {
		for _, entry := range strings.Split(existing, ",") {
			entry = strings.TrimSpace(entry)
			if entry == "" {
				continue
			}
			add(entry)
		}
	}
	for _, route := range routes {
		add(route)
	}

	return strings.Join(parts, ", ")
}

// canonical normalizes a route for duplicate comparison. Parseable
// prefixes compare by their canonical text; anything else compares
// case-insensitively as written.
func canonical(entry string) string {
	if p, err := netip.ParsePrefix(entry); err == nil {
		return p.String()
	}
	return strings.ToLower(entry)
}
