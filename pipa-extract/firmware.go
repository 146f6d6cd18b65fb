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
	"path/filepath"

	"github.com/numanmushtaq01/android-device-xiaomi-pipa/firmware"
	"github.com/pkg/errors"
)

func init() {
	parser.AddCommand("firmware",
		"Import firmware images",
		"Copies the images listed in proprietary-firmware.txt from an extracted ROM "+
			"into the radio directory and declares them in Android.mk and BoardConfigVendor.mk",
		&firmwareCmd)
}

type FirmwareCmd struct {
	NoMkUpdate bool   `long:"no-mk-update" description:"Do not update Android.mk and BoardConfigVendor.mk"`
	List       string `long:"list" description:"Firmware list, defaults to device/<vendor>/<device>/proprietary-firmware.txt"`
	Positional struct {
		Source string `positional-arg-name:"source" description:"Extracted ROM directory"`
	} `positional-args:"yes" required:"yes"`
}

var firmwareCmd FirmwareCmd

func (firmwareCmd *FirmwareCmd) Execute(args []string) error {
	env, err := newEnvironment(globalArgs)
	if err != nil {
		return err
	}

	list := firmwareCmd.List
	if list == "" {
		list = env.dev.FirmwareListPath(env.root)
	}

	return importFirmware(env, firmwareCmd.Positional.Source, list, !firmwareCmd.NoMkUpdate)
}

func importFirmware(env *environment, source, list string, updateMk bool) error {
	source, err := filepath.Abs(source)
	if err != nil {
		return err
	}
	if stat, err := os.Stat(source); err != nil {
		return err
	} else if !stat.IsDir() {
		return fmt.Errorf("%s is not a directory", source)
	}

	names, err := firmware.LoadList(list)
	if err != nil {
		return errors.Wrap(err, "cannot read firmware list")
	}

	vendorDir := env.dev.VendorDir(env.root)
	result, err := firmware.Import(firmware.Options{
		Source:   source,
		RadioDir: filepath.Join(vendorDir, "radio"),
		Names:    names,
		Quiet:    env.quiet,
		Log:      env.log,
	})
	if err != nil {
		return errors.Wrapf(err, "%s", source)
	}

	if !env.quiet {
		fmt.Printf("Copied %d firmware files:\n", len(result.Records))
		for _, r := range result.Records {
			fmt.Printf("  - %s\n", r.Name)
		}
	}

	if !updateMk {
		return nil
	}

	androidMk := filepath.Join(vendorDir, "Android.mk")
	fresh, err := firmware.UpdateAndroidMk(androidMk, env.dev.Device, env.dev.Vendor, result.Records)
	if err != nil {
		return err
	}
	if fresh {
		env.log.Infof("created %s", androidMk)
	} else {
		env.log.Infof("updated %s", androidMk)
	}

	boardConfig := filepath.Join(vendorDir, "BoardConfigVendor.mk")
	changed, err := firmware.UpdateBoardConfig(boardConfig, env.dev.Device, env.dev.Vendor,
		firmware.Partitions(result.Records))
	if err != nil {
		return err
	}
	if changed {
		env.log.Infof("updated AB_OTA_PARTITIONS in %s", boardConfig)
	}

	return nil
}
