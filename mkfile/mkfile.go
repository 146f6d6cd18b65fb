//
// mkfile - helpers for generated vendor makefiles
//
// Copyright (c) 2024 The LineageOS Project
//

// Package mkfile renders and parses the small pieces of GNU make syntax
// used by generated vendor makefiles.
package mkfile

// This program is free software: you can redistribute it and/or modify it
// under the terms of the GNU General Public License version 3, as published
// by the Free Software Foundation.
//
// This program is distributed in the hope that it will be useful, but
// WITHOUT ANY WARRANTY; without even the implied warranties of
// MERCHANTABILITY, SATISFACTORY QUALITY, or FITNESS FOR A PARTICULAR
// PURPOSE.  See the GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License along
// with this program.  If not, see <http://www.gnu.org/licenses/>.

import (
	"fmt"
	"regexp"
	"strings"
)

const indent = "    "

// Header is the banner placed on top of every generated makefile. generator
// is the command line that wrote it.
func Header(vendor, device, generator string) string {
	return fmt.Sprintf(`# Automatically generated file. DO NOT MODIFY
#
# This file is generated by %s for %s/%s
`, generator, vendor, device)
}

// List renders "variable += \" followed by one item per line. Every line but
// the last ends with a continuation marker. No items renders nothing.
func List(variable string, items []string) string {
	if len(items) == 0 {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s += \\\n", variable)
	for i, item := range items {
		b.WriteString(indent)
		b.WriteString(item)
		if i < len(items)-1 {
			b.WriteString(" \\")
		}
		b.WriteString("\n")
	}
	return b.String()
}

// Span locates an appending list assignment inside a makefile.
type Span struct {
	// Start and End are byte offsets; End includes the final newline.
	Start, End int
	Items      []string
}

func listStart(variable string) *regexp.Regexp {
	return regexp.MustCompile(`(?m)^` + regexp.QuoteMeta(variable) + `[ \t]*\+=`)
}

// FindList finds the first "variable += ..." assignment in content and
// collects its items, following continuation lines. A blank line also ends
// the list, which makes a stray trailing marker harmless.
func FindList(content, variable string) (Span, bool) {
	loc := listStart(variable).FindStringIndex(content)
	if loc == nil {
		return Span{}, false
	}

	span := Span{Start: loc[0]}
	pos := loc[1]
	first := true
	for {
		end := strings.IndexByte(content[pos:], '\n')
		var line string
		if end < 0 {
			line = content[pos:]
			end = len(content)
		} else {
			line = content[pos : pos+end]
			end = pos + end + 1
		}

		if !first && strings.TrimSpace(line) == "" {
			break
		}
		first = false

		trimmed := strings.TrimSpace(line)
		continued := strings.HasSuffix(trimmed, "\\")
		trimmed = strings.TrimSuffix(trimmed, "\\")
		span.Items = append(span.Items, strings.Fields(trimmed)...)
		span.End = end
		pos = end

		if !continued || pos >= len(content) {
			break
		}
	}

	return span, true
}

// Replace substitutes the span in content with a freshly rendered list.
func (s Span) Replace(content, variable string, items []string) string {
	return content[:s.Start] + List(variable, items) + content[s.End:]
}
