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
	"bytes"
	"os"
	"path/filepath"

	"github.com/numanmushtaq01/android-device-xiaomi-pipa/fixups"
	. "gopkg.in/check.v1"
)

type ToolsTestSuite struct {
	dir     string
	path    string
	argsLog string
}

var _ = Suite(&ToolsTestSuite{})

var (
	postprocBefore = []byte("\x7fELF....\x9A\x0A\x00\x94....")
	postprocAfter  = []byte("\x7fELF....\x1F\x20\x03\xD5....")
)

func (s *ToolsTestSuite) SetUpTest(c *C) {
	s.dir = c.MkDir()
	s.path = filepath.Join(s.dir, "lib.so")
	s.argsLog = filepath.Join(s.dir, "args")
}

func (s *ToolsTestSuite) TearDownTest(c *C) {
	os.Unsetenv(fixups.SigscanEnv)
	os.Unsetenv(fixups.PatchelfEnv)
}

// fakeTool installs a shell script as the tool selected by envVar. The
// script logs its arguments and exits with status.
func (s *ToolsTestSuite) fakeTool(c *C, envVar, status string) {
	tool := filepath.Join(s.dir, envVar)
	script := "#!/bin/sh\nprintf '%s\\n' \"$*\" >> " + s.argsLog + "\nexit " + status + "\n"
	c.Assert(os.WriteFile(tool, []byte(script), 0755), IsNil)
	c.Assert(os.Setenv(envVar, tool), IsNil)
}

func (s *ToolsTestSuite) missingTool(c *C, envVar string) {
	c.Assert(os.Setenv(envVar, filepath.Join(s.dir, "not-installed")), IsNil)
}

func (s *ToolsTestSuite) toolArgs(c *C) string {
	args, err := os.ReadFile(s.argsLog)
	if os.IsNotExist(err) {
		return ""
	}
	c.Assert(err, IsNil)
	return string(args)
}

func (s *ToolsTestSuite) postproc() fixups.Fixup {
	return fixups.Pipa()["vendor/lib64/vendor.qti.hardware.camera.postproc@1.0-service-impl.so"]
}

func (s *ToolsTestSuite) TestHexSignature(c *C) {
	c.Assert(fixups.HexSignature([]byte{0x9A, 0x0A, 0x00, 0x94}), Equals, "9A 0A 00 94")
}

func (s *ToolsTestSuite) TestSigScanRunsTool(c *C) {
	c.Assert(os.WriteFile(s.path, postprocBefore, 0644), IsNil)
	s.fakeTool(c, fixups.SigscanEnv, "0")

	r, err := s.postproc().Apply(s.path)
	c.Assert(err, IsNil)
	c.Assert(r, Equals, fixups.Patched)
	c.Assert(s.toolArgs(c), Equals, "-p 9A 0A 00 94 -P 1F 20 03 D5 -f "+s.path+"\n")
}

func (s *ToolsTestSuite) TestSigScanFallbackWhenToolMissing(c *C) {
	c.Assert(os.WriteFile(s.path, postprocBefore, 0644), IsNil)
	s.missingTool(c, fixups.SigscanEnv)

	r, err := s.postproc().Apply(s.path)
	c.Assert(err, IsNil)
	c.Assert(r, Equals, fixups.Patched)

	contents, err := os.ReadFile(s.path)
	c.Assert(err, IsNil)
	c.Assert(bytes.Equal(contents, postprocAfter), Equals, true)

	r, err = s.postproc().Apply(s.path)
	c.Assert(err, IsNil)
	c.Assert(r, Equals, fixups.Unchanged)
}

func (s *ToolsTestSuite) TestSigScanFallbackWhenToolFails(c *C) {
	c.Assert(os.WriteFile(s.path, postprocBefore, 0644), IsNil)
	s.fakeTool(c, fixups.SigscanEnv, "1")

	r, err := s.postproc().Apply(s.path)
	c.Assert(err, IsNil)
	c.Assert(r, Equals, fixups.Patched)

	contents, err := os.ReadFile(s.path)
	c.Assert(err, IsNil)
	c.Assert(bytes.Equal(contents, postprocAfter), Equals, true)
}

func (s *ToolsTestSuite) TestSigScanPatternAbsent(c *C) {
	c.Assert(os.WriteFile(s.path, postprocAfter, 0644), IsNil)
	s.fakeTool(c, fixups.SigscanEnv, "0")

	r, err := s.postproc().Apply(s.path)
	c.Assert(err, IsNil)
	c.Assert(r, Equals, fixups.Unchanged)
	c.Assert(s.toolArgs(c), Equals, "")
}

func (s *ToolsTestSuite) TestSigScanMissingFile(c *C) {
	r, err := s.postproc().Apply(s.path)
	c.Assert(err, IsNil)
	c.Assert(r, Equals, fixups.Unchanged)
}

func (s *ToolsTestSuite) watermark() fixups.Fixup {
	return fixups.Pipa()["vendor/lib64/camera/components/com.mi.node.watermark.so"]
}

func (s *ToolsTestSuite) TestAddNeededRunsPatchelf(c *C) {
	c.Assert(os.WriteFile(s.path, []byte("\x7fELF\x00libc.so\x00"), 0644), IsNil)
	s.fakeTool(c, fixups.PatchelfEnv, "0")

	r, err := s.watermark().Apply(s.path)
	c.Assert(err, IsNil)
	c.Assert(r, Equals, fixups.Patched)
	c.Assert(s.toolArgs(c), Equals, "--add-needed libpiex_shim.so "+s.path+"\n")
}

func (s *ToolsTestSuite) TestAddNeededAlreadyPresent(c *C) {
	c.Assert(os.WriteFile(s.path, []byte("\x7fELF\x00libpiex_shim.so\x00"), 0644), IsNil)
	s.fakeTool(c, fixups.PatchelfEnv, "0")

	r, err := s.watermark().Apply(s.path)
	c.Assert(err, IsNil)
	c.Assert(r, Equals, fixups.Unchanged)
	c.Assert(s.toolArgs(c), Equals, "")
}

func (s *ToolsTestSuite) TestAddNeededToolMissing(c *C) {
	c.Assert(os.WriteFile(s.path, []byte("\x7fELF\x00libc.so\x00"), 0644), IsNil)
	s.missingTool(c, fixups.PatchelfEnv)

	r, err := s.watermark().Apply(s.path)
	c.Assert(err, IsNil)
	c.Assert(r, Equals, fixups.Skipped)
}

func (s *ToolsTestSuite) TestAddNeededToolFails(c *C) {
	c.Assert(os.WriteFile(s.path, []byte("\x7fELF\x00libc.so\x00"), 0644), IsNil)
	s.fakeTool(c, fixups.PatchelfEnv, "1")

	r, err := s.watermark().Apply(s.path)
	c.Assert(err, NotNil)
	c.Assert(r, Equals, fixups.Failed)
}
