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
	"os"
	"path/filepath"

	"github.com/numanmushtaq01/android-device-xiaomi-pipa/config"
	"github.com/sirupsen/logrus"
)

// environment is what every command works with: the resolved Android tree,
// the device description and a logger.
type environment struct {
	root  string
	dev   config.Device
	log   *logrus.Logger
	quiet bool
}

func newLogger(quiet bool) *logrus.Logger {
	log := logrus.New()
	log.Out = os.Stderr
	log.Formatter = &logrus.TextFormatter{DisableTimestamp: true}
	log.Level = logrus.InfoLevel
	if quiet {
		log.Level = logrus.WarnLevel
	}
	return log
}

func newEnvironment(opts globalOptions) (*environment, error) {
	root, err := config.AndroidRoot(opts.AndroidRoot)
	if err != nil {
		return nil, err
	}

	dev := config.Default()
	if opts.Device != "" {
		dev.Device = opts.Device
	}
	if opts.Vendor != "" {
		dev.Vendor = opts.Vendor
	}

	path := opts.Config
	if path == "" {
		path = filepath.Join(dev.DeviceDir(root), config.FileName)
	}
	dev, err = config.Load(path)
	if err != nil {
		return nil, err
	}
	// flags win over the file
	if opts.Device != "" {
		dev.Device = opts.Device
	}
	if opts.Vendor != "" {
		dev.Vendor = opts.Vendor
	}

	return &environment{
		root:  root,
		dev:   dev,
		log:   newLogger(opts.Quiet),
		quiet: opts.Quiet,
	}, nil
}
