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
	"io/fs"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// Locate searches root for files with the given basenames. When a name
// appears more than once in the tree the first one reached by the walk is
// used; which one that is depends on the directory layout, not on any
// preference between them. Names not found are returned in list order.
//
// Subdirectories that cannot be read are skipped with a warning; only an
// unreadable root fails the search.
func Locate(root string, names []string, log logrus.FieldLogger) (found map[string]string, missing []string, err error) {
	l := newLocator(root, names, log)
	if err := filepath.WalkDir(root, l.visit); err != nil {
		return nil, nil, err
	}

	for _, name := range names {
		if _, ok := l.found[name]; !ok {
			missing = append(missing, name)
		}
	}
	return l.found, missing, nil
}

type locator struct {
	root   string
	wanted map[string]bool
	found  map[string]string
	log    logrus.FieldLogger
}

func newLocator(root string, names []string, log logrus.FieldLogger) *locator {
	if log == nil {
		log = logrus.StandardLogger()
	}
	l := &locator{
		root:   root,
		wanted: make(map[string]bool, len(names)),
		found:  make(map[string]string),
		log:    log,
	}
	for _, name := range names {
		l.wanted[name] = true
	}
	return l
}

func (l *locator) visit(path string, d fs.DirEntry, err error) error {
	if err != nil {
		if path == l.root {
			return err
		}
		l.log.WithError(err).Warnf("Skipping %s", path)
		if d != nil && d.IsDir() {
			return filepath.SkipDir
		}
		return nil
	}
	if !d.Type().IsRegular() {
		return nil
	}
	name := d.Name()
	if _, ok := l.found[name]; l.wanted[name] && !ok {
		l.found[name] = path
	}
	return nil
}
