// Copyright (c) 2025 Stefano Scafiti
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.
package cmd

import (
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ostafen/digif/gif89a"
	"github.com/ostafen/digif/internal/fuse"
)

func DefineMountCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mount <path>",
		Short: "Mount a GIF's decoded frames as a directory of PNG files",
		Long: `The 'mount' command decodes a GIF file and exposes every resulting
animation frame as a frame-%04d.png file under a FUSE mountpoint, so any
image viewer or file manager can page through the animation.`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE:         RunMountGIF,
	}

	cmd.Flags().StringP("mountpoint", "m", "", "directory to mount at (default: derived from the input path)")
	cmd.Flags().Bool("mmap", false, "memory-map the input file instead of reading it")
	cmd.Flags().Bool("strict", false, "fail on the first malformed image instead of mounting the frames decoded so far")
	return cmd
}

func RunMountGIF(cmd *cobra.Command, args []string) error {
	mountpoint, _ := cmd.Flags().GetString("mountpoint")
	useMmap, _ := cmd.Flags().GetBool("mmap")
	strict, _ := cmd.Flags().GetBool("strict")

	if mountpoint == "" {
		mountpoint = defaultMountpoint(args[0])
	}

	data, err := readInput(args[0], useMmap)
	if err != nil {
		return err
	}

	result, err := gif89a.Decode(data, gif89a.WithStrict(strict))
	if result == nil {
		return err
	}

	return fuse.Mount(mountpoint, result)
}

// defaultMountpoint derives a mountpoint name from an input path by
// stripping its extension and appending "_mnt".
func defaultMountpoint(inputPath string) string {
	base := filepath.Base(inputPath)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return base + "_mnt"
}
