//
// devices - drive Android devices connected over adb
//
// Copyright (c) 2013 Canonical Ltd.
// Copyright (c) 2024 The LineageOS Project
//
package devices

import (
	"errors"
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

// adbCommand is the adb binary, taken from $ADB when set.
func adbCommand() string {
	if v := os.Getenv("ADB"); v != "" {
		return v
	}
	return "adb"
}

// ErrRemoteMissing is returned by Pull when the file does not exist on the
// device.
var ErrRemoteMissing = errors.New("remote file does not exist")

type AndroidDebugBridge struct {
	command    string
	serial     string
	params     []string
	deviceName string
}

func NewAndroidDebugBridge() (adb AndroidDebugBridge, err error) {
	adb.command = adbCommand()
	if out, err := exec.Command(adb.command, "start-server").CombinedOutput(); err != nil {
		return adb, fmt.Errorf("cannot start adb server: %s", strings.TrimSpace(string(out)))
	}
	return adb, nil
}

func (adb *AndroidDebugBridge) SetSerial(serial string) {
	adb.serial = serial
	adb.params = append(adb.params, []string{"-s", serial}...)
}

func (adb *AndroidDebugBridge) GetDevice() (deviceName string, err error) {
	cmd := append(adb.params, []string{"shell", "getprop", "ro.product.device"}...)
	out, err := exec.Command(adb.command, cmd...).Output()
	if err != nil {
		return deviceName, err
	}
	// This will fail if a device name ever leaves ASCII
	adb.deviceName = strings.TrimSpace(string(out))
	return adb.deviceName, err
}

// Root restarts adbd as root so vendor files become readable. Production
// builds refuse, which callers may ignore.
func (adb AndroidDebugBridge) Root() error {
	cmd := append(adb.params, "root")
	if out, err := exec.Command(adb.command, cmd...).CombinedOutput(); err != nil {
		return fmt.Errorf("adb root failed: %s", strings.TrimSpace(string(out)))
	}
	return nil
}

// WaitForDevice blocks until the device is back online, as it is for a
// moment after Root.
func (adb AndroidDebugBridge) WaitForDevice() error {
	cmd := append(adb.params, "wait-for-device")
	if out, err := exec.Command(adb.command, cmd...).CombinedOutput(); err != nil {
		return fmt.Errorf("adb wait-for-device failed: %s", strings.TrimSpace(string(out)))
	}
	return nil
}

func (adb AndroidDebugBridge) Pull(src, dst string) error {
	cmd := append(adb.params, []string{"pull", src, dst}...)
	out, err := exec.Command(adb.command, cmd...).CombinedOutput()
	if err == nil {
		return nil
	}

	msg := string(out)
	if strings.Contains(msg, "does not exist") || strings.Contains(msg, "No such file") {
		return ErrRemoteMissing
	}
	return fmt.Errorf("adb pull %s failed: %s", src, strings.TrimSpace(msg))
}
