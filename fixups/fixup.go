//
// fixups - post-copy patches applied to proprietary blobs
//
// Copyright (c) 2024 The LineageOS Project
//
package fixups

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

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

// Result tells what a fixup did to its file.
type Result int

const (
	// Unchanged means the pattern was not there, either because this
	// firmware variant lacks it or because the file is already patched.
	Unchanged Result = iota
	Patched
	// Skipped means the external tool needed was not installed.
	Skipped
	// Failed means an unexpected error left the file unpatched.
	Failed
)

func (r Result) String() string {
	switch r {
	case Unchanged:
		return "unchanged"
	case Patched:
		return "patched"
	case Skipped:
		return "skipped"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("Result(%d)", int(r))
	}
}

// Fixup patches the file at path in place.
type Fixup interface {
	Apply(path string) (Result, error)
}

// Func adapts a plain function to the Fixup interface.
type Func func(path string) (Result, error)

func (f Func) Apply(path string) (Result, error) {
	return f(path)
}

// Table binds fixups to blob destination paths, relative to the
// proprietary tree (e.g. "vendor/lib64/hw/camera.qcom.so").
type Table map[string]Fixup

// Run applies the fixup bound to relPath, if any, to the file at path. It
// never fails the caller: errors and panics are logged and turned into
// Failed. bound is false when no fixup exists for relPath.
func (t Table) Run(relPath, path string, log logrus.FieldLogger) (r Result, bound bool) {
	f, ok := t[relPath]
	if !ok {
		return Unchanged, false
	}

	defer func() {
		if p := recover(); p != nil {
			log.WithField("blob", relPath).Warnf("fixup panicked: %v", p)
			r, bound = Failed, true
		}
	}()

	r, err := f.Apply(path)
	if err != nil {
		log.WithField("blob", relPath).Warnf("fixup left file unpatched: %s", err)
		return Failed, true
	}

	log.WithField("blob", relPath).Debugf("fixup %s", r)
	return r, true
}

// notExist reports whether err means the target file is absent, in which
// case there is nothing to patch.
func notExist(err error) bool {
	return errors.Is(err, os.ErrNotExist)
}
