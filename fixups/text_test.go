//
// fixups - post-copy patches applied to proprietary blobs
//
// Copyright (c) 2024 The LineageOS Project
//
package fixups_test

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
	"strings"

	"github.com/numanmushtaq01/android-device-xiaomi-pipa/fixups"
	. "gopkg.in/check.v1"
)

type TextTestSuite struct {
	path string
}

var _ = Suite(&TextTestSuite{})

const batterysecretRc = `service batterysecret /vendor/bin/batterysecret
    class last_start
    user root
    group system system wakelock
    disabled
    seclabel u:r:batterysecret:s0

on charger
    start batterysecret
`

func (s *TextTestSuite) SetUpTest(c *C) {
	s.path = filepath.Join(c.MkDir(), "init.batterysecret.rc")
}

func (s *TextTestSuite) TestRemoveLine(c *C) {
	c.Assert(os.WriteFile(s.path, []byte(batterysecretRc), 0644), IsNil)
	f := fixups.Pipa()["vendor/etc/init/init.batterysecret.rc"]

	r, err := f.Apply(s.path)
	c.Assert(err, IsNil)
	c.Assert(r, Equals, fixups.Patched)

	contents, err := os.ReadFile(s.path)
	c.Assert(err, IsNil)
	c.Assert(string(contents), Equals,
		strings.Replace(batterysecretRc, "seclabel u:r:batterysecret:s0\n", "", 1))
	c.Assert(string(contents), Not(Matches), "(?s).*seclabel.*")

	r, err = f.Apply(s.path)
	c.Assert(err, IsNil)
	c.Assert(r, Equals, fixups.Unchanged)

	again, err := os.ReadFile(s.path)
	c.Assert(err, IsNil)
	c.Assert(again, DeepEquals, contents)
}

func (s *TextTestSuite) TestRemoveLineMissingFile(c *C) {
	r, err := fixups.RemoveLine{Line: "x\n"}.Apply(s.path)
	c.Assert(err, IsNil)
	c.Assert(r, Equals, fixups.Unchanged)
}
