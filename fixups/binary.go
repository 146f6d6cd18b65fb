//
// fixups - post-copy patches applied to proprietary blobs
//
// Copyright (c) 2024 The LineageOS Project
//
package fixups

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

	"github.com/numanmushtaq01/android-device-xiaomi-pipa/sysutils"
)

// ReplaceBytes overwrites a byte sequence with another of the same length,
// leaving every offset in the binary where it was.
type ReplaceBytes struct {
	Old, New []byte
}

// PaddedReplace builds a ReplaceBytes whose replacement is padded with NUL
// bytes up to the length of old. It panics if replacement is longer.
func PaddedReplace(old, replacement string) ReplaceBytes {
	if len(replacement) > len(old) {
		panic(fmt.Sprintf("replacement %q longer than %q", replacement, old))
	}
	repl := make([]byte, len(old))
	copy(repl, replacement)
	return ReplaceBytes{Old: []byte(old), New: repl}
}

func (f ReplaceBytes) Apply(path string) (Result, error) {
	n, err := sysutils.ReplaceInPlace(path, f.Old, f.New)
	if notExist(err) {
		return Unchanged, nil
	} else if err != nil {
		return Failed, err
	}

	if n == 0 {
		return Unchanged, nil
	}
	return Patched, nil
}

// ReplaceAny tries each of Patterns in turn and replaces the first one found
// with New. All patterns must have the length of New.
type ReplaceAny struct {
	Patterns [][]byte
	New      []byte
}

func (f ReplaceAny) Apply(path string) (Result, error) {
	for _, pattern := range f.Patterns {
		r, err := ReplaceBytes{Old: pattern, New: f.New}.Apply(path)
		if err != nil || r != Unchanged {
			return r, err
		}
	}
	return Unchanged, nil
}
