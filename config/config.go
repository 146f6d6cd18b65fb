//
// config - per-device extraction settings
//
// Copyright (c) 2024 The LineageOS Project
//

// Package config describes the device the tools operate on. Values come
// from built-in defaults, optionally overridden by a YAML file kept in the
// device tree.
package config

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
	"strings"

	"github.com/pkg/errors"
	yaml "gopkg.in/yaml.v2"
)

const (
	// FileName is the configuration file looked up in the device tree.
	FileName = "extract.yaml"

	defaultDevice       = "pipa"
	defaultVendor       = "xiaomi"
	defaultCommonDevice = "sm8250-common"
	defaultManifest     = "proprietary-files.txt"
	defaultFirmwareList = "proprietary-firmware.txt"
)

// Device holds everything the extraction tools need to know about a device.
type Device struct {
	Device       string `yaml:"device"`
	Vendor       string `yaml:"vendor"`
	CommonDevice string `yaml:"common_device"`
	Manifest     string `yaml:"manifest"`
	FirmwareList string `yaml:"firmware_list"`

	// OptionalBlobs are substrings of the destination paths of blobs that
	// only ship on some firmware variants. OptionalSections name manifest
	// sections made of such blobs. Missing optional blobs are not an error.
	OptionalBlobs    []string `yaml:"optional_blobs"`
	OptionalSections []string `yaml:"optional_sections"`
}

func Default() Device {
	return Device{
		Device:       defaultDevice,
		Vendor:       defaultVendor,
		CommonDevice: defaultCommonDevice,
		Manifest:     defaultManifest,
		FirmwareList: defaultFirmwareList,
	}
}

// Load reads the configuration at path over the defaults. A missing file is
// not an error and yields the defaults.
func Load(path string) (Device, error) {
	d := Default()

	contents, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return d, nil
	} else if err != nil {
		return d, err
	}

	if err := yaml.UnmarshalStrict(contents, &d); err != nil {
		return d, errors.Wrapf(err, "cannot parse %s", path)
	}

	if d.Device == "" || d.Vendor == "" {
		return d, errors.Errorf("%s: device and vendor must not be empty", path)
	}

	return d, nil
}

// AndroidRoot resolves the top of the Android source tree: dir when given,
// then $ANDROID_BUILD_TOP, then the working directory.
func AndroidRoot(dir string) (string, error) {
	if dir == "" {
		dir = os.Getenv("ANDROID_BUILD_TOP")
	}
	if dir == "" {
		dir = "."
	}
	return filepath.Abs(dir)
}

func (d Device) DeviceDir(root string) string {
	return filepath.Join(root, "device", d.Vendor, d.Device)
}

func (d Device) VendorDir(root string) string {
	return filepath.Join(root, "vendor", d.Vendor, d.Device)
}

func (d Device) CommonDeviceDir(root string) string {
	return filepath.Join(root, "device", d.Vendor, d.CommonDevice)
}

func (d Device) CommonVendorDir(root string) string {
	return filepath.Join(root, "vendor", d.Vendor, d.CommonDevice)
}

func (d Device) ManifestPath(root string) string {
	return filepath.Join(d.DeviceDir(root), d.Manifest)
}

func (d Device) CommonManifestPath(root string) string {
	return filepath.Join(d.CommonDeviceDir(root), d.Manifest)
}

func (d Device) FirmwareListPath(root string) string {
	return filepath.Join(d.DeviceDir(root), d.FirmwareList)
}

// IsOptional reports whether a missing blob may be tolerated, given its
// destination path and the manifest section it is listed in. Both compare
// without regard to case.
func (d Device) IsOptional(path, section string) bool {
	path = strings.ToLower(filepath.ToSlash(path))
	for _, pattern := range d.OptionalBlobs {
		if pattern != "" && strings.Contains(path, strings.ToLower(pattern)) {
			return true
		}
	}

	section = strings.ToLower(section)
	for _, name := range d.OptionalSections {
		if name != "" && section != "" && strings.Contains(section, strings.ToLower(name)) {
			return true
		}
	}
	return false
}
