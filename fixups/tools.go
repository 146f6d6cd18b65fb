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
	"fmt"
	"strings"

	"github.com/numanmushtaq01/android-device-xiaomi-pipa/sysutils"
)

const (
	sigscanEnv      = "SIGSCAN"
	sigscanDefault  = "sigscan"
	patchelfEnv     = "PATCHELF"
	patchelfDefault = "patchelf"
)

// SigScan swaps one instruction sequence for another using the external
// sigscan tool. When the tool is missing or fails the bytes are replaced
// directly; when that finds nothing either the file is left alone.
type SigScan struct {
	Pattern, Replacement []byte
}

func (f SigScan) Apply(path string) (Result, error) {
	if len(f.Pattern) != len(f.Replacement) {
		return Failed, fmt.Errorf("signature %s and replacement %s differ in length",
			hexSignature(f.Pattern), hexSignature(f.Replacement))
	}

	found, err := sysutils.Contains(path, f.Pattern)
	if notExist(err) {
		return Unchanged, nil
	} else if err != nil {
		return Failed, err
	}
	if !found {
		return Unchanged, nil
	}

	tool := sysutils.ToolPath(sigscanEnv, sigscanDefault)
	err = sysutils.RunTool(tool,
		"-p", hexSignature(f.Pattern),
		"-P", hexSignature(f.Replacement),
		"-f", path)
	if err == nil {
		return Patched, nil
	}

	n, err := sysutils.ReplaceInPlace(path, f.Pattern, f.Replacement)
	if err != nil || n == 0 {
		return Unchanged, nil
	}
	return Patched, nil
}

// hexSignature formats b the way sigscan expects: "9A 0A 00 94".
func hexSignature(b []byte) string {
	parts := make([]string, len(b))
	for i := range b {
		parts[i] = fmt.Sprintf("%02X", b[i])
	}
	return strings.Join(parts, " ")
}

// AddNeeded adds a DT_NEEDED entry for Library with patchelf unless the
// library name already appears in the file. A missing patchelf skips it.
type AddNeeded struct {
	Library string
}

func (f AddNeeded) Apply(path string) (Result, error) {
	found, err := sysutils.Contains(path, []byte(f.Library))
	if notExist(err) {
		return Unchanged, nil
	} else if err != nil {
		return Failed, err
	}
	if found {
		return Unchanged, nil
	}

	tool := sysutils.ToolPath(patchelfEnv, patchelfDefault)
	err = sysutils.RunTool(tool, "--add-needed", f.Library, path)
	if sysutils.IsToolUnavailable(err) {
		return Skipped, nil
	} else if err != nil {
		return Failed, err
	}
	return Patched, nil
}
