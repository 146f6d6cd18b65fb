//
// firmware - radio image import
//
// Copyright (c) 2024 The LineageOS Project
//

// Package firmware imports radio images from an extracted ROM into the
// vendor tree and declares them to the build.
package firmware

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
	"io"
	"os"
	"path"
	"strings"
)

// ParseList reads a firmware list. Each line names an image by its first
// whitespace separated field; only the basename of that field is kept.
// Comments and blank lines are skipped, as are repeated names.
func ParseList(r io.Reader) ([]string, error) {
	var names []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		name := path.Base(strings.Fields(line)[0])
		if seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}

	return names, scanner.Err()
}

func LoadList(filename string) ([]string, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return ParseList(f)
}
