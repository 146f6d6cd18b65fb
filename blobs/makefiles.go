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
	"path"
	"path/filepath"
	"strings"

	"github.com/numanmushtaq01/android-device-xiaomi-pipa/mkfile"
	"github.com/pkg/errors"
)

const generator = "pipa-extract files"

// partitionVars maps the first component of a destination path to the
// build variable naming that partition in the output image.
var partitionVars = map[string]string{
	"vendor":     "$(TARGET_COPY_OUT_VENDOR)",
	"product":    "$(TARGET_COPY_OUT_PRODUCT)",
	"system_ext": "$(TARGET_COPY_OUT_SYSTEM_EXT)",
	"odm":        "$(TARGET_COPY_OUT_ODM)",
	"system":     "$(TARGET_COPY_OUT_SYSTEM)",
}

func installPath(dst string) string {
	parts := strings.SplitN(dst, "/", 2)
	if v, ok := partitionVars[parts[0]]; ok && len(parts) == 2 {
		return v + "/" + parts[1]
	}
	return partitionVars["system"] + "/" + dst
}

func moduleName(dst string) string {
	base := path.Base(dst)
	return strings.TrimSuffix(base, path.Ext(base))
}

// VendorMkPath is where WriteMakefiles puts the product makefile.
func (j *Job) VendorMkPath() string {
	return filepath.Join(j.OutDir, j.Device+"-vendor.mk")
}

// WriteMakefiles generates <device>-vendor.mk for the blobs of the
// manifest that are present in the proprietary directory, so it can run
// after a partial extraction.
func (j *Job) WriteMakefiles() error {
	prefix := path.Join("vendor", j.Vendor, j.Device, "proprietary")

	var copies, packages []string
	for _, b := range j.Manifest {
		if _, err := os.Stat(j.path(b)); err != nil {
			continue
		}
		if b.Module {
			packages = append(packages, moduleName(b.Dst))
			continue
		}
		copies = append(copies, prefix+"/"+b.Dst+":"+installPath(b.Dst))
	}

	var mk strings.Builder
	mk.WriteString(mkfile.Header(j.Vendor, j.Device, generator))
	if len(copies) > 0 {
		mk.WriteString("\n")
		mk.WriteString(mkfile.List("PRODUCT_COPY_FILES", copies))
	}
	if len(packages) > 0 {
		mk.WriteString("\n")
		mk.WriteString(mkfile.List("PRODUCT_PACKAGES", packages))
	}

	if err := os.MkdirAll(j.OutDir, 0755); err != nil {
		return err
	}
	if err := os.WriteFile(j.VendorMkPath(), []byte(mk.String()), 0644); err != nil {
		return errors.Wrapf(err, "cannot write %s", j.VendorMkPath())
	}

	j.log().WithField("device", j.Device).Infof("wrote %s", j.VendorMkPath())
	return nil
}
