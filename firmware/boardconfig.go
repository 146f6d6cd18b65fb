//
// firmware - radio image import
//
// Copyright (c) 2024 The LineageOS Project
//
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
	"os"
	"sort"
	"strings"

	"github.com/numanmushtaq01/android-device-xiaomi-pipa/mkfile"
	"github.com/pkg/errors"
)

const abPartitions = "AB_OTA_PARTITIONS"

func mergePartitions(existing, added []string) (merged []string, grew bool) {
	set := make(map[string]bool, len(existing)+len(added))
	for _, p := range existing {
		set[p] = true
	}
	for _, p := range added {
		if !set[p] {
			set[p] = true
			grew = true
		}
	}

	for p := range set {
		merged = append(merged, p)
	}
	sort.Strings(merged)
	return merged, grew
}

// UpdateBoardConfig adds partitions to the AB_OTA_PARTITIONS list of the
// BoardConfigVendor.mk at path. The list is kept sorted and free of
// duplicates. It reports whether the file changed.
func UpdateBoardConfig(path, device, vendor string, partitions []string) (changed bool, err error) {
	contents, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return false, err
	}
	content := string(contents)

	var updated string
	if span, ok := mkfile.FindList(content, abPartitions); ok {
		merged, grew := mergePartitions(span.Items, partitions)
		if !grew {
			return false, nil
		}
		updated = span.Replace(content, abPartitions, merged)
	} else {
		merged, _ := mergePartitions(nil, partitions)
		if content == "" {
			updated = mkfile.Header(vendor, device, generator) + "\n" + mkfile.List(abPartitions, merged)
		} else {
			if !strings.HasSuffix(content, "\n") {
				content += "\n"
			}
			updated = content + "\n" + mkfile.List(abPartitions, merged)
		}
	}

	if err := os.WriteFile(path, []byte(updated), 0644); err != nil {
		return false, errors.Wrapf(err, "cannot write %s", path)
	}
	return true, nil
}
