//
// pipa-extract - extract proprietary blobs and firmware for the Xiaomi Pad 6
//
// Copyright (c) 2024 The LineageOS Project
//
package main

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

	"github.com/dustin/go-humanize"
	"github.com/numanmushtaq01/android-device-xiaomi-pipa/blobs"
	"github.com/numanmushtaq01/android-device-xiaomi-pipa/fixups"
	"github.com/pkg/errors"
)

func init() {
	parser.AddCommand("files",
		"Extract proprietary blobs",
		"Copies the blobs listed in proprietary-files.txt from an extracted ROM "+
			"or a connected device, patches them and generates the vendor makefiles",
		&filesCmd)
}

type FilesCmd struct {
	Section        string `short:"s" long:"section" description:"Extract only the named manifest section"`
	Path           string `short:"p" long:"path" description:"Extracted ROM directory, or adb to pull from a device" default:"adb"`
	Serial         string `long:"serial" description:"Serial of the device to pull from"`
	Kang           bool   `short:"k" long:"kang" description:"Extract pinned blobs even when the current copy matches"`
	NoCleanup      bool   `short:"n" long:"no-cleanup" description:"Keep the existing proprietary directory contents"`
	SkipCommon     bool   `long:"skip-common" description:"Do not extract the common device blobs"`
	DeviceOnly     bool   `long:"device-only" description:"Extract only the device specific blobs"`
	CommonOnly     bool   `long:"common-only" description:"Extract only the common device blobs"`
	DolbyMissingOk bool   `long:"dolby-missing-ok" description:"Do not fail when Dolby blobs are absent from the source"`
}

var filesCmd FilesCmd

// Dolby blobs are named after the vendor only sometimes; the libraries
// use the dlb, dap and dax prefixes.
var (
	dolbyBlobs    = []string{"dolby", "/libdlb", "/libdap", "/libdax", "/dax-"}
	dolbySections = []string{"dolby"}
)

func (filesCmd *FilesCmd) Execute(args []string) error {
	if filesCmd.DeviceOnly && filesCmd.CommonOnly {
		return errors.New("--device-only and --common-only cannot be combined")
	}

	env, err := newEnvironment(globalArgs)
	if err != nil {
		return err
	}
	if filesCmd.DolbyMissingOk {
		env.dev.OptionalBlobs = append(env.dev.OptionalBlobs, dolbyBlobs...)
		env.dev.OptionalSections = append(env.dev.OptionalSections, dolbySections...)
	}

	source, err := filesCmd.source(env)
	if err != nil {
		return err
	}

	if !filesCmd.CommonOnly {
		if err := filesCmd.extractDevice(env, source); err != nil {
			return err
		}
	}

	if filesCmd.wantCommon(env) {
		err := filesCmd.extractCommon(env, source)
		if err != nil && filesCmd.CommonOnly {
			return err
		} else if err != nil {
			env.log.WithField("device", env.dev.CommonDevice).Warnf("common extraction failed: %s", err)
		}
	}

	if filesCmd.wantFirmware(env) {
		if err := importFirmware(env, filesCmd.Path, env.dev.FirmwareListPath(env.root), true); err != nil {
			env.log.Warnf("firmware import failed: %s", err)
		}
	}

	return nil
}

func (filesCmd *FilesCmd) source(env *environment) (blobs.Source, error) {
	if filesCmd.Path == "" || filesCmd.Path == "adb" {
		return blobs.NewAdbSource(filesCmd.Serial, env.dev.Device)
	}

	stat, err := os.Stat(filesCmd.Path)
	if err != nil {
		return nil, err
	}
	if !stat.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", filesCmd.Path)
	}
	return blobs.DirSource{Root: filesCmd.Path}, nil
}

func (filesCmd *FilesCmd) wantCommon(env *environment) bool {
	if filesCmd.CommonOnly {
		return true
	}
	if filesCmd.SkipCommon || filesCmd.DeviceOnly || filesCmd.Section != "" {
		return false
	}
	_, err := os.Stat(env.dev.CommonManifestPath(env.root))
	return err == nil
}

// Firmware only comes from extracted ROMs and only on full runs.
func (filesCmd *FilesCmd) wantFirmware(env *environment) bool {
	if filesCmd.Section != "" || filesCmd.CommonOnly {
		return false
	}
	if filesCmd.Path == "" || filesCmd.Path == "adb" {
		return false
	}
	_, err := os.Stat(env.dev.FirmwareListPath(env.root))
	return err == nil
}

func (filesCmd *FilesCmd) job(env *environment, device, manifest, outDir string, source blobs.Source) (*blobs.Job, error) {
	m, err := blobs.LoadManifest(manifest)
	if err != nil {
		return nil, err
	}
	if filesCmd.Section != "" {
		m = m.Section(filesCmd.Section)
		if len(m) == 0 {
			return nil, fmt.Errorf("no section %q in %s", filesCmd.Section, manifest)
		}
	}

	return &blobs.Job{
		Device:   device,
		Vendor:   env.dev.Vendor,
		Manifest: m,
		OutDir:   outDir,
		Source:   source,
		Optional: func(b blobs.Blob) bool {
			return env.dev.IsOptional(b.Dst, b.Section)
		},
		Kang:     filesCmd.Kang,
		// a single section must not wipe the blobs of the others
		Clean: !filesCmd.NoCleanup && filesCmd.Section == "",
		Log:   env.log,
	}, nil
}

func (filesCmd *FilesCmd) extractDevice(env *environment, source blobs.Source) error {
	job, err := filesCmd.job(env, env.dev.Device, env.dev.ManifestPath(env.root),
		env.dev.VendorDir(env.root), source)
	if err != nil {
		return err
	}
	job.Fixups = fixups.Pipa()

	report, err := job.Run()
	if blobs.IsMissing(err) {
		fmt.Println("Error:", err)
		fmt.Println("Some files could not be found in the source.")
		if filesCmd.Section == "" {
			return err
		}

		fmt.Printf("Section %q may not be fully available, writing makefiles for the files present\n",
			filesCmd.Section)
		if err := job.WriteMakefiles(); err != nil {
			return errors.Wrap(err, "cannot write makefiles")
		}
		printReport(env, job.Device, report)
		return nil
	} else if err != nil {
		return err
	}

	if err := job.WriteMakefiles(); err != nil {
		return err
	}
	printReport(env, job.Device, report)
	return nil
}

func (filesCmd *FilesCmd) extractCommon(env *environment, source blobs.Source) error {
	job, err := filesCmd.job(env, env.dev.CommonDevice, env.dev.CommonManifestPath(env.root),
		env.dev.CommonVendorDir(env.root), source)
	if err != nil {
		return err
	}

	report, err := job.Run()
	if err != nil {
		return err
	}
	if err := job.WriteMakefiles(); err != nil {
		return err
	}
	printReport(env, job.Device, report)
	return nil
}

func printReport(env *environment, device string, report *blobs.Report) {
	if env.quiet {
		return
	}

	fmt.Printf("%s: extracted %d blobs (%s)", device, len(report.Copied), humanize.Bytes(uint64(report.Bytes)))
	if len(report.Pinned) > 0 {
		fmt.Printf(", %d pinned blobs kept", len(report.Pinned))
	}
	if len(report.Tolerated) > 0 {
		fmt.Printf(", %d optional blobs absent", len(report.Tolerated))
	}
	fmt.Println()

	for blob, r := range report.Fixups {
		if r == fixups.Failed || r == fixups.Skipped {
			env.log.WithField("blob", blob).Warnf("fixup %s", r)
		}
	}
}
