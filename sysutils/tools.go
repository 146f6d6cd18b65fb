//
// sysutils - helpers shared by the blob and firmware extraction tools
//
// Copyright (c) 2024 The LineageOS Project
//
package sysutils

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
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

type ErrToolUnavailable struct {
	tool string
	err  error
}

func (e ErrToolUnavailable) Error() string {
	return fmt.Sprintf("%s is not available: %s", e.tool, e.err)
}

type ErrToolFailed struct {
	tool string
	args []string
	out  []byte
}

func (e ErrToolFailed) Error() string {
	return fmt.Sprintf("%s %s failed: %s", e.tool, strings.Join(e.args, " "), strings.TrimSpace(string(e.out)))
}

// ToolPath returns the command to run for an external tool: the value of
// envVar when set, fallback otherwise.
func ToolPath(envVar, fallback string) string {
	if v := os.Getenv(envVar); v != "" {
		return v
	}
	return fallback
}

// RunTool runs tool with args and waits for it. A tool that cannot be found
// yields ErrToolUnavailable, a non zero exit ErrToolFailed.
func RunTool(tool string, args ...string) error {
	path, err := exec.LookPath(tool)
	if err != nil {
		return ErrToolUnavailable{tool: tool, err: err}
	}

	if out, err := exec.Command(path, args...).CombinedOutput(); err != nil {
		return ErrToolFailed{tool: tool, args: args, out: out}
	}

	return nil
}

// IsToolUnavailable reports whether err comes from a missing external tool.
func IsToolUnavailable(err error) bool {
	_, ok := err.(ErrToolUnavailable)
	return ok
}
