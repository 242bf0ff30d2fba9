// Package domainlist parses the domains argument into resolvable entries.
//
// The argument is either a path to a list file (one domain per line,
// optional ",<class>" suffix, "#" and "//" comment lines) or a single
// literal domain.
package domainlist

import (
	"bufio"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
)

// ErrMalformedEntry reports a list line with no usable domain name.
var ErrMalformedEntry = errors.New("malformed domain entry")

// Entry is one domain to resolve. Class is the per-entry class override
// token, verbatim and unvalidated; empty means the run's default class
// applies.
type Entry struct {
	Name  string
	Class string
}

// Parse turns the domains argument into an ordered list of entries.
// If arg names an existing regular file it is read as a list file;
// otherwise arg itself is taken as a single entry.
func Parse(arg string) ([]Entry, error) {
	if info, err := os.Stat(arg); err == nil && info.Mode().IsRegular() {
		return parseFile(arg)
	}

	entry, err := parseLine(arg)
	if err != nil {
		return nil, err
	}
	return []Entry{entry}, nil
}

func parseFile(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open domains file: %w", err)
	}
	defer f.Close()

	var entries []Entry
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//") {
			continue
		}

		entry, err := parseLine(line)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, lineNo, err)
		}
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read domains file: %w", err)
	}
	return entries, nil
}

// parseLine splits "name[,class]" and normalizes URL-shaped names down
// to their hostname.
func parseLine(line string) (Entry, error) {
	name, class, _ := strings.Cut(line, ",")
	name = strings.TrimSpace(name)
	class = strings.TrimSpace(class)

	if name == "" {
		return Entry{}, fmt.Errorf("%w: %q", ErrMalformedEntry, line)
	}
	return Entry{Name: hostOf(name), Class: class}, nil
}

// hostOf strips scheme, path and port from URL-shaped input, so a list
// may carry pasted URLs alongside bare domains.
func hostOf(name string) string {
	if !strings.Contains(name, "://") {
		return name
	}
	u, err := url.Parse(name)
	if err != nil || u.Hostname() == "" {
		return name
	}
	return u.Hostname()
}
