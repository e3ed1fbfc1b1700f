package menu

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// ParseLines reads a plain-text menu: one item per line, an optional hint
// after a tab, and "## Heading" lines starting a new group. Blank lines are
// skipped.
func ParseLines(r io.Reader) (Menu, error) {
	var m Menu
	current := -1
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		if heading, ok := strings.CutPrefix(line, "## "); ok {
			m.Groups = append(m.Groups, Group{Heading: strings.TrimSpace(heading)})
			current = len(m.Groups) - 1
			continue
		}
		label, hint, _ := strings.Cut(line, "\t")
		item := Item{Label: strings.TrimSpace(label), Hint: strings.TrimSpace(hint)}
		if current >= 0 {
			m.Groups[current].Items = append(m.Groups[current].Items, item)
		} else {
			m.Items = append(m.Items, item)
		}
	}
	if err := scanner.Err(); err != nil {
		return Menu{}, fmt.Errorf("read lines: %w", err)
	}
	return m, nil
}

// ReaderSource reads r once up front; the returned source serves the parsed
// menu on every call.
func ReaderSource(name string, r io.Reader) (Source, error) {
	m, err := ParseLines(r)
	if err != nil {
		return Source{}, err
	}
	return Source{
		Name: name,
		Load: func(context.Context, Context) (Menu, error) { return m, nil },
	}, nil
}
