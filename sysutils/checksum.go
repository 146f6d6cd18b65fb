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
	"crypto/sha1"
	"encoding/hex"
	"io"
	"os"
)

const checksumChunk = 64 * 1024

// SHA1File returns the hex encoded SHA-1 of the file at path. The file is
// read in fixed size chunks and never loaded whole.
func SHA1File(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha1.New()
	buf := make([]byte, checksumChunk)
	for {
		n, err := f.Read(buf)
		h.Write(buf[:n])
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}

// SHA1Matches reports whether the file at path exists and hashes to sum.
func SHA1Matches(path, sum string) bool {
	got, err := SHA1File(path)
	if err != nil {
		return false
	}
	return got == sum
}
