//
// blobs - extraction jobs over a device manifest
//
// Copyright (c) 2024 The LineageOS Project
//
package blobs

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

	. "gopkg.in/check.v1"
)

type SourceTestSuite struct {
	root string
	out  string
}

var _ = Suite(&SourceTestSuite{})

func (s *SourceTestSuite) SetUpTest(c *C) {
	s.root = c.MkDir()
	s.out = c.MkDir()
}

func writeFile(c *C, path, contents string) {
	c.Assert(os.MkdirAll(filepath.Dir(path), 0755), IsNil)
	c.Assert(os.WriteFile(path, []byte(contents), 0644), IsNil)
}

func (s *SourceTestSuite) TestDirSourceTop(c *C) {
	writeFile(c, filepath.Join(s.root, "vendor/lib/a.so"), "a")
	dst := filepath.Join(s.out, "a.so")

	c.Assert(DirSource{Root: s.root}.Fetch("vendor/lib/a.so", dst), IsNil)

	contents, err := os.ReadFile(dst)
	c.Assert(err, IsNil)
	c.Assert(string(contents), Equals, "a")
}

func (s *SourceTestSuite) TestDirSourceSystemAsRoot(c *C) {
	writeFile(c, filepath.Join(s.root, "system/etc/b.xml"), "b")
	dst := filepath.Join(s.out, "b.xml")

	c.Assert(DirSource{Root: s.root}.Fetch("etc/b.xml", dst), IsNil)

	contents, err := os.ReadFile(dst)
	c.Assert(err, IsNil)
	c.Assert(string(contents), Equals, "b")
}

func (s *SourceTestSuite) TestDirSourceMissing(c *C) {
	err := DirSource{Root: s.root}.Fetch("vendor/lib/none.so", filepath.Join(s.out, "none.so"))
	c.Assert(err, Equals, ErrMissingBlob{Path: "vendor/lib/none.so"})
	c.Assert(IsMissing(err), Equals, true)
}

// fakeAdb logs every invocation to $ADB_LOG and serves pulls from
// $DEVICE_ROOT. Until wait-for-device has run after root, the device is
// offline.
const fakeAdb = `#!/bin/sh
echo "$@" >> "$ADB_LOG"
while [ "$1" = "-s" ]; do shift 2; done
case "$1" in
root)
	touch "$ADB_LOG.restarting";;
wait-for-device)
	rm -f "$ADB_LOG.restarting";;
shell)
	[ -f "$ADB_LOG.restarting" ] && { echo "adb: device offline"; exit 1; }
	echo "$DEVICE_NAME";;
pull)
	[ -f "$ADB_LOG.restarting" ] && { echo "adb: error: device offline"; exit 1; }
	if [ -f "$DEVICE_ROOT$2" ]; then cp "$DEVICE_ROOT$2" "$3"; exit 0; fi
	echo "adb: error: remote object '$2' does not exist"; exit 1;;
esac
exit 0
`

func (s *SourceTestSuite) setUpAdb(c *C, deviceName string) (deviceRoot, adbLog string) {
	dir := c.MkDir()
	deviceRoot = filepath.Join(dir, "device")
	adbLog = filepath.Join(dir, "adb.log")

	adb := filepath.Join(dir, "adb")
	c.Assert(os.WriteFile(adb, []byte(fakeAdb), 0755), IsNil)
	c.Assert(os.Setenv("ADB", adb), IsNil)
	c.Assert(os.Setenv("ADB_LOG", adbLog), IsNil)
	c.Assert(os.Setenv("DEVICE_ROOT", deviceRoot), IsNil)
	c.Assert(os.Setenv("DEVICE_NAME", deviceName), IsNil)
	return deviceRoot, adbLog
}

func (s *SourceTestSuite) TearDownTest(c *C) {
	for _, v := range []string{"ADB", "ADB_LOG", "DEVICE_ROOT", "DEVICE_NAME"} {
		os.Unsetenv(v)
	}
}

func (s *SourceTestSuite) TestAdbSource(c *C) {
	deviceRoot, adbLog := s.setUpAdb(c, "pipa")
	writeFile(c, filepath.Join(deviceRoot, "vendor/lib/a.so"), "a")

	src, err := NewAdbSource("abcdef", "pipa")
	c.Assert(err, IsNil)

	dst := filepath.Join(s.out, "vendor/lib/a.so")
	c.Assert(src.Fetch("vendor/lib/a.so", dst), IsNil)
	contents, err := os.ReadFile(dst)
	c.Assert(err, IsNil)
	c.Assert(string(contents), Equals, "a")

	err = src.Fetch("vendor/lib/none.so", filepath.Join(s.out, "none.so"))
	c.Assert(err, Equals, ErrMissingBlob{Path: "vendor/lib/none.so"})

	calls, err := os.ReadFile(adbLog)
	c.Assert(err, IsNil)
	c.Assert(string(calls), Equals, `start-server
-s abcdef root
-s abcdef wait-for-device
-s abcdef shell getprop ro.product.device
-s abcdef pull /vendor/lib/a.so `+dst+`
-s abcdef pull /vendor/lib/none.so `+filepath.Join(s.out, "none.so")+`
`)
}

func (s *SourceTestSuite) TestAdbSourceWrongDevice(c *C) {
	s.setUpAdb(c, "elish")

	_, err := NewAdbSource("", "pipa")
	c.Assert(err, Equals, ErrWrongDevice{want: "pipa", got: "elish"})
	c.Assert(err, ErrorMatches, `connected device is "elish", not "pipa"`)
}
