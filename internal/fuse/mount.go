//go:build !linux
// +build !linux

package fuse

import (
	"fmt"

	"github.com/ostafen/digif/gif89a"
)

func Mount(mountpoint string, result *gif89a.Result) error {
	return fmt.Errorf("FUSE mount is only supported on Linux")
}
