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
	"fmt"
	"os"
	"strings"

	"github.com/numanmushtaq01/android-device-xiaomi-pipa/mkfile"
	"github.com/pkg/errors"
)

const generator = "pipa-extract firmware"

func deviceCond(device string) string {
	return fmt.Sprintf("ifeq ($(TARGET_DEVICE),%s)", device)
}

func radioDirective(name, sha1 string) string {
	return fmt.Sprintf("$(call add-radio-file-sha1-checked,radio/%s,%s)", name, sha1)
}

func isRadioDirective(line, name string) bool {
	return strings.HasPrefix(strings.TrimSpace(line),
		"$(call add-radio-file-sha1-checked,radio/"+name+",")
}

func freshAndroidMk(device, vendor string, records []Record) string {
	var b strings.Builder
	b.WriteString(mkfile.Header(vendor, device, generator))
	b.WriteString("\nLOCAL_PATH := $(call my-dir)\n\n")
	b.WriteString(deviceCond(device))
	b.WriteString("\n\n")
	for _, r := range records {
		b.WriteString(radioDirective(r.Name, r.SHA1))
		b.WriteString("\n")
	}
	b.WriteString("\nendif\n")
	return b.String()
}

// UpdateAndroidMk declares records as checksummed radio files in the
// Android.mk at path. The directives go right after the opening line of the
// device's conditional block, replacing any older directive for the same
// image. A missing file, one without the block, or one whose block is never
// closed is written from scratch. It reports whether the file was created
// fresh.
func UpdateAndroidMk(path, device, vendor string, records []Record) (fresh bool, err error) {
	contents, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return false, err
	}

	updated, ok := insertDirectives(string(contents), device, records)
	if !ok {
		fresh = true
		updated = freshAndroidMk(device, vendor, records)
	}

	if err := os.WriteFile(path, []byte(updated), 0644); err != nil {
		return fresh, errors.Wrapf(err, "cannot write %s", path)
	}
	return fresh, nil
}

func insertDirectives(content, device string, records []Record) (string, bool) {
	lines := strings.Split(content, "\n")
	cond := deviceCond(device)

	start, end := -1, -1
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if start < 0 && trimmed == cond {
			start = i
		} else if start >= 0 && trimmed == "endif" {
			end = i
			break
		}
	}
	if start < 0 || end < 0 {
		return "", false
	}

	var kept []string
body:
	for _, line := range lines[start+1 : end] {
		for _, r := range records {
			if isRadioDirective(line, r.Name) {
				continue body
			}
		}
		kept = append(kept, line)
	}
	for len(kept) > 0 && strings.TrimSpace(kept[0]) == "" {
		kept = kept[1:]
	}
	for len(kept) > 0 && strings.TrimSpace(kept[len(kept)-1]) == "" {
		kept = kept[:len(kept)-1]
	}

	block := []string{""}
	for _, r := range records {
		block = append(block, radioDirective(r.Name, r.SHA1))
	}
	block = append(block, kept...)
	block = append(block, "")

	out := append([]string{}, lines[:start+1]...)
	out = append(out, block...)
	out = append(out, lines[end:]...)
	return strings.Join(out, "\n"), true
}
