//
// sysutils - helpers shared by the blob and firmware extraction tools
//
// Copyright (c) 2024 The LineageOS Project
//
package sysutils

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
	"bytes"
	"fmt"
	"os"

	"github.com/edsrzf/mmap-go"
	"github.com/pkg/errors"
)

// ReplaceInPlace maps path read-write and overwrites every occurrence of
// old with repl. Both patterns must be the same length so no offset in the
// file moves. It returns the number of replaced occurrences.
func ReplaceInPlace(path string, old, repl []byte) (n int, err error) {
	if len(old) != len(repl) {
		return 0, fmt.Errorf("replacement for %q is %d bytes, want %d", old, len(repl), len(old))
	}
	if len(old) == 0 {
		return 0, errors.New("empty pattern")
	}

	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return 0, err
	}
	// zero length files cannot be mapped
	if stat.Size() < int64(len(old)) {
		return 0, nil
	}

	m, err := mmap.Map(f, mmap.RDWR, 0)
	if err != nil {
		return 0, errors.Wrapf(err, "cannot map %s", path)
	}
	defer func() {
		if uerr := m.Unmap(); uerr != nil && err == nil {
			err = uerr
		}
	}()

	for off := 0; off <= len(m)-len(old); {
		i := bytes.Index(m[off:], old)
		if i < 0 {
			break
		}
		copy(m[off+i:], repl)
		off += i + len(old)
		n++
	}

	if n > 0 {
		if err := m.Flush(); err != nil {
			return n, errors.Wrapf(err, "cannot flush %s", path)
		}
	}

	return n, nil
}

// Contains reports whether pattern occurs anywhere in the file at path.
func Contains(path string, pattern []byte) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return false, err
	}
	if stat.Size() < int64(len(pattern)) || len(pattern) == 0 {
		return false, nil
	}

	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return false, errors.Wrapf(err, "cannot map %s", path)
	}
	defer m.Unmap()

	return bytes.Contains(m, pattern), nil
}
