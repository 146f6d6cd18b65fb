//
// pipa-extract - extract proprietary blobs and firmware for the Xiaomi Pad 6
//
// Copyright (c) 2013-2015 Canonical Ltd.
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

	flags "github.com/jessevdk/go-flags"
)

type globalOptions struct {
	Device      string `long:"device" description:"Device codename (default: pipa)"`
	Vendor      string `long:"vendor" description:"Device vendor (default: xiaomi)"`
	AndroidRoot string `long:"android-root" description:"Top of the Android tree, defaults to $ANDROID_BUILD_TOP or the current directory"`
	Config      string `long:"config" description:"Device configuration, defaults to device/<vendor>/<device>/extract.yaml"`
	Quiet       bool   `short:"q" long:"quiet" description:"Only report warnings and errors"`
}

var globalArgs globalOptions
var parser = flags.NewParser(&globalArgs, flags.Default)

func main() {
	execute(os.Args)
}

func execute(args []string) {
	if _, err := parser.ParseArgs(args[1:]); err != nil {
		if e, ok := err.(*flags.Error); ok {
			switch e.Type {
			case flags.ErrHelp:
				os.Exit(0)
			case flags.ErrRequired, flags.ErrCommandRequired:
				parser.WriteHelp(os.Stderr)
			}
		}
		os.Exit(1)
	}
}
