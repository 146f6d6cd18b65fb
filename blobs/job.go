//
// blobs - extraction jobs over a device manifest
//
// Copyright (c) 2024 The LineageOS Project
//
package blobs

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/numanmushtaq01/android-device-xiaomi-pipa/fixups"
	"github.com/numanmushtaq01/android-device-xiaomi-pipa/sysutils"
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

// Job extracts the manifest of one device.
type Job struct {
	Device, Vendor string
	Manifest       Manifest
	// OutDir is vendor/<vendor>/<device> inside the Android tree.
	OutDir string
	Source Source
	Fixups fixups.Table

	// Optional reports whether a missing blob may be skipped.
	Optional func(b Blob) bool
	// Kang copies pinned blobs even when the existing copy matches its
	// pin. Clean empties the proprietary directory first.
	Kang, Clean bool

	Log logrus.FieldLogger
}

// Report is what a Run did, blob by blob. Paths are manifest destinations.
type Report struct {
	Copied    []string
	Pinned    []string
	Tolerated []string
	Missing   []string
	Fixups    map[string]fixups.Result
	// Bytes is the size of everything copied.
	Bytes int64
}

func (j *Job) ProprietaryDir() string {
	return filepath.Join(j.OutDir, "proprietary")
}

func (j *Job) log() logrus.FieldLogger {
	if j.Log == nil {
		return logrus.StandardLogger()
	}
	return j.Log
}

// Run extracts every blob of the manifest and applies the bound fixups.
// Missing required blobs do not stop the run; they are collected and
// returned as ErrIncomplete once everything else is in place.
func (j *Job) Run() (*Report, error) {
	log := j.log().WithField("device", j.Device)
	report := &Report{Fixups: make(map[string]fixups.Result)}

	keep := make(map[string]bool)
	for _, b := range j.Manifest {
		if b.Pinned() && !j.Kang && sysutils.SHA1Matches(j.path(b), b.SHA1) {
			keep[j.path(b)] = true
		}
	}

	if j.Clean {
		if err := j.clean(keep); err != nil {
			return report, err
		}
	}

	for _, b := range j.Manifest {
		dst := j.path(b)
		if keep[dst] {
			log.WithField("blob", b.Dst).Debug("pinned blob up to date")
			report.Pinned = append(report.Pinned, b.Dst)
			continue
		}

		err := j.Source.Fetch(b.Src, dst)
		var missing ErrMissingBlob
		if errors.As(err, &missing) {
			if j.Optional != nil && j.Optional(b) {
				log.WithField("blob", b.Dst).Warn("optional blob not in source, skipping")
				report.Tolerated = append(report.Tolerated, b.Dst)
			} else {
				log.WithField("blob", b.Dst).Warn("blob not in source")
				report.Missing = append(report.Missing, b.Dst)
			}
			continue
		} else if err != nil {
			return report, errors.Wrapf(err, "cannot extract %s", b.Src)
		}

		if r, bound := j.Fixups.Run(b.Dst, dst, log); bound {
			report.Fixups[b.Dst] = r
		}

		if b.Pinned() && !sysutils.SHA1Matches(dst, b.SHA1) {
			log.WithField("blob", b.Dst).Warn("extracted blob does not match its pinned sha1")
		}

		if stat, err := os.Stat(dst); err == nil {
			report.Bytes += stat.Size()
		}
		report.Copied = append(report.Copied, b.Dst)
	}

	if len(report.Missing) > 0 {
		return report, ErrIncomplete{Device: j.Device, Missing: report.Missing}
	}
	return report, nil
}

func (j *Job) path(b Blob) string {
	return filepath.Join(j.ProprietaryDir(), filepath.FromSlash(b.Dst))
}

// clean removes every file below the proprietary directory that is not in
// keep, then the directories left empty.
func (j *Job) clean(keep map[string]bool) error {
	root := j.ProprietaryDir()
	var dirs []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if errors.Is(err, fs.ErrNotExist) && path == root {
			return filepath.SkipDir
		} else if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root {
				dirs = append(dirs, path)
			}
			return nil
		}
		if keep[path] {
			return nil
		}
		return os.Remove(path)
	})
	if err != nil {
		return errors.Wrapf(err, "cannot clean %s", root)
	}

	// deepest first
	for i := len(dirs) - 1; i >= 0; i-- {
		os.Remove(dirs[i])
	}
	return nil
}
