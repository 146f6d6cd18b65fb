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
	"os"
	"path/filepath"

	"github.com/numanmushtaq01/android-device-xiaomi-pipa/devices"
	"github.com/numanmushtaq01/android-device-xiaomi-pipa/sysutils"
	"github.com/pkg/errors"
)

// Source hands out files from a donor image.
type Source interface {
	// Fetch copies the image file src to the local path dst. It returns
	// ErrMissingBlob when the image does not contain src.
	Fetch(src, dst string) error
}

// DirSource is an image extracted to a directory. Blobs are looked up both
// at the top and below system/, which covers dumps taken with and without
// the system-as-root layout.
type DirSource struct {
	Root string
}

func (s DirSource) Fetch(src, dst string) error {
	for _, dir := range []string{s.Root, filepath.Join(s.Root, "system")} {
		err := sysutils.CopyFile(filepath.Join(dir, filepath.FromSlash(src)), dst)
		if err == nil {
			return nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return err
		}
	}
	return ErrMissingBlob{Path: src}
}

// AdbSource pulls blobs from a running device.
type AdbSource struct {
	adb devices.AndroidDebugBridge
}

// NewAdbSource starts adb and tries to switch adbd to root. A device that
// refuses root still serves world readable files. The connected device must
// report device as its ro.product.device.
func NewAdbSource(serial, device string) (*AdbSource, error) {
	adb, err := devices.NewAndroidDebugBridge()
	if err != nil {
		return nil, err
	}
	if serial != "" {
		adb.SetSerial(serial)
	}

	adb.Root()
	if err := adb.WaitForDevice(); err != nil {
		return nil, err
	}

	name, err := adb.GetDevice()
	if err != nil {
		return nil, errors.Wrap(err, "cannot query the connected device")
	}
	if name != device {
		return nil, ErrWrongDevice{want: device, got: name}
	}

	return &AdbSource{adb: adb}, nil
}

func (s *AdbSource) Fetch(src, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return err
	}

	err := s.adb.Pull("/"+src, dst)
	if err == devices.ErrRemoteMissing {
		return ErrMissingBlob{Path: src}
	}
	return err
}
