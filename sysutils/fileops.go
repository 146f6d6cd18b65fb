//
// sysutils - helpers shared by the blob and firmware extraction tools
//
// Copyright (c) 2013-2015 Canonical Ltd.
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
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/otiai10/copy"
	"github.com/pkg/errors"
)

// CopyFile copies src to dst, creating the parent directories of dst. The
// mode and the access/modification times of src are carried over.
func CopyFile(src, dst string) error {
	return CopyFileWrapped(src, dst, nil)
}

// CopyFileWrapped is CopyFile with the source reader passed through wrap,
// which is how callers hook progress reporting into the copy.
func CopyFileWrapped(src, dst string, wrap func(io.Reader) io.Reader) error {
	srcStat, err := os.Stat(src)
	if err != nil {
		return err
	}
	if !srcStat.Mode().IsRegular() {
		return fmt.Errorf("%s is not a regular file", src)
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return errors.Wrapf(err, "cannot create directory for %s", dst)
	}

	opts := copy.Options{
		PreserveTimes: true,
		WrapReader:    wrap,
	}
	if err := copy.Copy(src, dst, opts); err != nil {
		return errors.Wrapf(err, "cannot copy %s to %s", src, dst)
	}

	return nil
}

// RewriteFile reads path, hands its contents to edit and writes the result
// back in place when edit reports a change. The file mode is kept.
func RewriteFile(path string, edit func([]byte) ([]byte, bool)) (changed bool, err error) {
	stat, err := os.Stat(path)
	if err != nil {
		return false, err
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}

	out, changed := edit(contents)
	if !changed {
		return false, nil
	}

	if err := os.WriteFile(path, out, stat.Mode().Perm()); err != nil {
		return false, errors.Wrapf(err, "cannot rewrite %s", path)
	}

	return true, nil
}
