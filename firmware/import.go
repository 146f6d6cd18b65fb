//
// firmware - radio image import
//
// Copyright (c) 2024 The LineageOS Project
//
package firmware

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/cheggaaa/pb"
	"github.com/dustin/go-humanize"
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

var (
	ErrNoFirmwareListed = errors.New("no firmware listed")
	ErrNoFirmwareFound  = errors.New("none of the listed firmware was found")
)

// Images smaller than this are copied without a progress bar.
const progressThreshold = 1 << 20

// Record is one imported image.
type Record struct {
	Name string
	// Path is the copy inside the radio directory.
	Path string
	SHA1 string
	Size int64
}

// Partition is the A/B partition the image is flashed to, its name
// without the extension.
func (r Record) Partition() string {
	return strings.TrimSuffix(r.Name, filepath.Ext(r.Name))
}

type Result struct {
	Records []Record
	// Missing lists the names that were not found in the source.
	Missing []string
}

type Options struct {
	Source string
	// RadioDir receives the images, vendor/<vendor>/<device>/radio.
	RadioDir string
	Names    []string
	Quiet    bool
	Log      logrus.FieldLogger
}

// Checksum is the lowercase hex SHA-1 of the file at path.
func Checksum(path string) (string, error) {
	return sysutils.SHA1File(path)
}

// Import copies the listed images found below opts.Source into
// opts.RadioDir and checksums the copies. Missing images are reported in
// the result; it only fails when none could be found.
func Import(opts Options) (*Result, error) {
	log := opts.Log
	if log == nil {
		log = logrus.StandardLogger()
	}

	if len(opts.Names) == 0 {
		return nil, ErrNoFirmwareListed
	}

	found, missing, err := Locate(opts.Source, opts.Names, log)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot search %s", opts.Source)
	}
	for _, name := range missing {
		log.WithField("image", name).Warn("firmware image not found in source")
	}
	if len(found) == 0 {
		return nil, ErrNoFirmwareFound
	}

	if err := os.MkdirAll(opts.RadioDir, 0755); err != nil {
		return nil, err
	}

	result := &Result{Missing: missing}
	for _, name := range opts.Names {
		src, ok := found[name]
		if !ok {
			continue
		}

		rec := Record{Name: name, Path: filepath.Join(opts.RadioDir, name)}
		if err := copyImage(src, rec.Path, opts.Quiet); err != nil {
			return result, err
		}
		if rec.SHA1, err = Checksum(rec.Path); err != nil {
			return result, errors.Wrapf(err, "cannot checksum %s", rec.Path)
		}
		if stat, err := os.Stat(rec.Path); err == nil {
			rec.Size = stat.Size()
		}

		log.WithField("image", name).Infof("copied %s", humanize.Bytes(uint64(rec.Size)))
		result.Records = append(result.Records, rec)
	}

	return result, nil
}

func copyImage(src, dst string, quiet bool) error {
	stat, err := os.Stat(src)
	if err != nil {
		return err
	}
	if quiet || stat.Size() < progressThreshold {
		return sysutils.CopyFile(src, dst)
	}

	bar := pb.New64(stat.Size())
	bar.ShowSpeed = true
	bar.Units = pb.U_BYTES
	bar.Prefix(filepath.Base(src) + " ")
	bar.Start()
	defer bar.Finish()

	return sysutils.CopyFileWrapped(src, dst, func(r io.Reader) io.Reader {
		return bar.NewProxyReader(r)
	})
}

// Partitions lists the partitions of records.
func Partitions(records []Record) []string {
	parts := make([]string, len(records))
	for i := range records {
		parts[i] = records[i].Partition()
	}
	return parts
}
