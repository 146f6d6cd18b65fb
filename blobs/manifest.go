//
// blobs - extraction jobs over a device manifest
//
// Copyright (c) 2024 The LineageOS Project
//

// Package blobs extracts the proprietary files listed in a device manifest
// from a donor image into the vendor tree and generates the makefile that
// installs them.
package blobs

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
	"bufio"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path"
	"strings"
)

// Blob is one manifest entry.
type Blob struct {
	// Src is the path inside the donor image, Dst the path below the
	// proprietary directory. They only differ for "src:dst" entries.
	Src, Dst string
	Section  string
	// Module marks entries prefixed with "-", which the build packages as
	// a prebuilt module instead of copying.
	Module bool
	Args   []string
	// SHA1 pins the blob to a known checksum.
	SHA1 string
}

func (b Blob) Pinned() bool {
	return b.SHA1 != ""
}

// Manifest is the ordered list of blobs from a proprietary-files.txt.
type Manifest []Blob

// ErrSyntax reports an unparsable manifest line.
type ErrSyntax struct {
	line int
	text string
	msg  string
}

func (e ErrSyntax) Error() string {
	return fmt.Sprintf("line %d: %s: %q", e.line, e.msg, e.text)
}

// ParseManifest reads manifest entries of the form
//
//	[-]src[:dst][;ARG...][|sha1]
//
// Comment lines name the section the following entries belong to.
func ParseManifest(r io.Reader) (Manifest, error) {
	var (
		m       Manifest
		section string
		lineNo  int
	)
	seen := make(map[string]int)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "#") {
			if name := strings.TrimSpace(strings.TrimLeft(line, "#")); name != "" {
				section = name
			}
			continue
		}

		b, err := parseEntry(line)
		if err != nil {
			return nil, ErrSyntax{line: lineNo, text: line, msg: err.Error()}
		}
		if prev, ok := seen[b.Dst]; ok {
			return nil, ErrSyntax{line: lineNo, text: line,
				msg: fmt.Sprintf("destination already listed on line %d", prev)}
		}
		seen[b.Dst] = lineNo

		b.Section = section
		m = append(m, b)
	}

	return m, scanner.Err()
}

func parseEntry(line string) (b Blob, err error) {
	if strings.HasPrefix(line, "-") {
		b.Module = true
		line = line[1:]
	}

	if i := strings.LastIndex(line, "|"); i >= 0 {
		b.SHA1 = strings.ToLower(line[i+1:])
		line = line[:i]
		if sum, err := hex.DecodeString(b.SHA1); err != nil || len(sum) != 20 {
			return b, fmt.Errorf("bad sha1 pin %q", b.SHA1)
		}
	}

	fields := strings.Split(line, ";")
	b.Args = fields[1:]

	b.Src = fields[0]
	b.Dst = fields[0]
	if i := strings.Index(fields[0], ":"); i >= 0 {
		b.Src, b.Dst = fields[0][:i], fields[0][i+1:]
	}

	for _, p := range []string{b.Src, b.Dst} {
		if p == "" {
			return b, fmt.Errorf("empty path")
		}
		if path.IsAbs(p) || path.Clean(p) != p || strings.HasPrefix(p, "../") {
			return b, fmt.Errorf("path %q is not a clean relative path", p)
		}
	}

	return b, nil
}

func LoadManifest(filename string) (Manifest, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, err := ParseManifest(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %s", filename, err)
	}
	return m, nil
}

// Section returns the entries of the named section. Names compare without
// regard to case.
func (m Manifest) Section(name string) Manifest {
	var out Manifest
	for _, b := range m {
		if strings.EqualFold(b.Section, name) {
			out = append(out, b)
		}
	}
	return out
}

// Sections lists section names in manifest order.
func (m Manifest) Sections() []string {
	var names []string
	for i, b := range m {
		if b.Section == "" || (i > 0 && m[i-1].Section == b.Section) {
			continue
		}
		names = append(names, b.Section)
	}
	return names
}
