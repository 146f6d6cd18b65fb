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
	"bytes"

	"github.com/numanmushtaq01/android-device-xiaomi-pipa/sysutils"
)

// RemoveLine deletes every occurrence of Line (including its newline) from
// a text file such as an init script.
type RemoveLine struct {
	Line string
}

func (f RemoveLine) Apply(path string) (Result, error) {
	line := []byte(f.Line)
	changed, err := sysutils.RewriteFile(path, func(b []byte) ([]byte, bool) {
		if !bytes.Contains(b, line) {
			return b, false
		}
		return bytes.Replace(b, line, nil, -1), true
	})
	if notExist(err) {
		return Unchanged, nil
	} else if err != nil {
		return Failed, err
	}

	if changed {
		return Patched, nil
	}
	return Unchanged, nil
}
