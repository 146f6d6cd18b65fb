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

	"github.com/sirupsen/logrus"
	. "gopkg.in/check.v1"
)

type EnvTestSuite struct {
	root string
}

var _ = Suite(&EnvTestSuite{})

func (s *EnvTestSuite) SetUpTest(c *C) {
	s.root = c.MkDir()
}

func (s *EnvTestSuite) TestQuiet(c *C) {
	env, err := newEnvironment(globalOptions{AndroidRoot: s.root, Quiet: true})
	c.Assert(err, IsNil)
	c.Assert(env.quiet, Equals, true)
	c.Assert(env.log.Level, Equals, logrus.WarnLevel)

	env, err = newEnvironment(globalOptions{AndroidRoot: s.root})
	c.Assert(err, IsNil)
	c.Assert(env.quiet, Equals, false)
	c.Assert(env.log.Level, Equals, logrus.InfoLevel)
}

func (s *EnvTestSuite) TestFlagsOverrideConfig(c *C) {
	conf := filepath.Join(s.root, "device", "xiaomi", "pipa", "extract.yaml")
	c.Assert(os.MkdirAll(filepath.Dir(conf), 0755), IsNil)
	c.Assert(os.WriteFile(conf, []byte("common_device: sm8250\noptional_sections: [Dolby]\n"), 0644), IsNil)

	env, err := newEnvironment(globalOptions{AndroidRoot: s.root})
	c.Assert(err, IsNil)
	c.Assert(env.dev.CommonDevice, Equals, "sm8250")
	c.Assert(env.dev.OptionalSections, DeepEquals, []string{"Dolby"})

	env, err = newEnvironment(globalOptions{AndroidRoot: s.root, Config: conf, Device: "elish"})
	c.Assert(err, IsNil)
	c.Assert(env.dev.Device, Equals, "elish")
	c.Assert(env.dev.CommonDevice, Equals, "sm8250")
}
