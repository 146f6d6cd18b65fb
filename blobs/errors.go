//
// blobs - extraction jobs over a device manifest
//
// Copyright (c) 2024 The LineageOS Project
//
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
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// ErrMissingBlob is returned by a Source that does not have the file.
type ErrMissingBlob struct {
	Path string
}

func (e ErrMissingBlob) Error() string {
	return fmt.Sprintf("%s not found in source", e.Path)
}

// ErrWrongDevice is returned when the device on adb is not the one being
// extracted for.
type ErrWrongDevice struct {
	want, got string
}

func (e ErrWrongDevice) Error() string {
	return fmt.Sprintf("connected device is %q, not %q", e.got, e.want)
}

// ErrIncomplete reports the required blobs a job could not extract.
type ErrIncomplete struct {
	Device  string
	Missing []string
}

func (e ErrIncomplete) Error() string {
	return fmt.Sprintf("%s: %d required blobs missing: %s",
		e.Device, len(e.Missing), strings.Join(e.Missing, ", "))
}

// IsMissing reports whether err is, or wraps, an ErrMissingBlob or an
// ErrIncomplete.
func IsMissing(err error) bool {
	var missing ErrMissingBlob
	var incomplete ErrIncomplete
	return errors.As(err, &missing) || errors.As(err, &incomplete)
}
