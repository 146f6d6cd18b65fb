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

// Pipa returns the fixups for the Xiaomi Pad 6 blobs.
func Pipa() Table {
	return Table{
		"vendor/etc/init/init.batterysecret.rc": RemoveLine{
			Line: "seclabel u:r:batterysecret:s0\n",
		},
		"vendor/lib/hw/audio.primary.pipa.so": PaddedReplace(
			"/vendor/lib/liba2dpoffload.so",
			"liba2dpoffload_pipa.so",
		),
		"vendor/lib64/vendor.qti.hardware.camera.postproc@1.0-service-impl.so": SigScan{
			Pattern:     []byte{0x9A, 0x0A, 0x00, 0x94},
			Replacement: []byte{0x1F, 0x20, 0x03, 0xD5},
		},
		"vendor/lib64/hw/camera.qcom.so": ReplaceAny{
			Patterns: [][]byte{
				[]byte("st_license.lic"),
				// older camera stacks spell it this way
				[]byte("st_licence.lic"),
			},
			New: []byte("camera_cnf.txt"),
		},
		"vendor/lib64/camera/components/com.mi.node.watermark.so": AddNeeded{
			Library: "libpiex_shim.so",
		},
	}
}
