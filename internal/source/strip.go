// Package source prepares function source text for generated scripts.
package source

import (
	"regexp"
	"strings"
)

// decoratorLine matches a tagging decorator such as `@fp.data_loader("loads csv")`.
var decoratorLine = regexp.MustCompile(`^[ \t]*@\w+\.[a-z_]+\(.*\)[ \t]*\r?\n?$`)

// IsDecorator reports whether line is a tagging decorator line.
func IsDecorator(line string) bool {
	return decoratorLine.MatchString(line)
}

func startsDefinition(line string) bool {
	trimmed := strings.TrimLeft(line, " \t")

	return strings.HasPrefix(trimmed, "def ") || strings.HasPrefix(trimmed, "async def ")
}

func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}

func isAnyDecorator(line string) bool {
	return strings.HasPrefix(strings.TrimLeft(line, " \t"), "@")
}

// decorates reports whether the line after lines[i] that is neither blank nor
// another decorator starts a function definition.
func decorates(lines []string, i int) bool {
	for _, line := range lines[i+1:] {
		if isBlank(line) || isAnyDecorator(line) {
			continue
		}

		return startsDefinition(line)
	}

	return false
}

// StripDecorator removes the first tagging decorator line that belongs to a
// function definition. Other decorators of that function are kept. Source without
// one is returned unchanged.
func StripDecorator(src string) string {
	lines := strings.SplitAfter(src, "\n")

	for i, line := range lines {
		if IsDecorator(line) && decorates(lines, i) {
			return strings.Join(lines[:i], "") + strings.Join(lines[i+1:], "")
		}
	}

	return src
}
