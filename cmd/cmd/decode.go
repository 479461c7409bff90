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
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ostafen/digif/gif89a"
	"github.com/ostafen/digif/internal/logger"
	osutils "github.com/ostafen/digif/pkg/util/os"
	"github.com/ostafen/digif/pkg/util/render"
)

func DefineDecodeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decode <path> [path...]",
		Short: "Decode one or more GIF files to PNG frames",
		Long: `The 'decode' command parses and composites one or more GIF files, writing
every resulting animation frame as a numbered PNG file in an output
directory. Paths that are directories are expanded to their regular files.`,
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		RunE:         RunDecode,
	}

	cmd.Flags().StringP("output-dir", "o", "", "directory frames are written to (default: <input name>-frames in the current directory)")
	cmd.Flags().Bool("mmap", false, "memory-map input files instead of reading them")
	cmd.Flags().Bool("strict", false, "fail the whole decode on the first malformed image instead of keeping prior frames")
	cmd.Flags().Int("max-canvas-width", 0, "override the maximum accepted logical screen width (0 = default)")
	cmd.Flags().Int("max-canvas-height", 0, "override the maximum accepted logical screen height (0 = default)")
	cmd.Flags().Bool("no-log", false, "disable progress logging")

	return cmd
}

func RunDecode(cmd *cobra.Command, args []string) error {
	outDirFlag, _ := cmd.Flags().GetString("output-dir")
	useMmap, _ := cmd.Flags().GetBool("mmap")
	strict, _ := cmd.Flags().GetBool("strict")
	maxW, _ := cmd.Flags().GetInt("max-canvas-width")
	maxH, _ := cmd.Flags().GetInt("max-canvas-height")
	disableLog, _ := cmd.Flags().GetBool("no-log")

	var paths []string
	for _, arg := range args {
		expanded, err := osutils.ListFiles(arg)
		if err != nil {
			return err
		}
		paths = append(paths, expanded...)
	}

	log := logger.New(os.Stdout, logger.InfoLevel)
	if disableLog {
		log = logger.New(os.Stdout, logger.ErrorLevel)
	}

	opts := []gif89a.Option{gif89a.WithStrict(strict)}
	if maxW > 0 || maxH > 0 {
		opts = append(opts, gif89a.WithMaxCanvas(maxW, maxH))
	}

	for _, path := range paths {
		outDir := outDirFlag
		if outDir == "" {
			base := filepath.Base(path)
			name := strings.TrimSuffix(base, filepath.Ext(base))
			outDir = name + "-frames"
		}

		if err := decodeOne(log, path, outDir, useMmap, opts); err != nil {
			log.Errorf("decoding %s: %s", path, err)
		}
	}
	return nil
}

func decodeOne(log *logger.Logger, path, outDir string, useMmap bool, opts []gif89a.Option) error {
	data, err := readInput(path, useMmap)
	if err != nil {
		return err
	}

	result, err := gif89a.Decode(data, opts...)
	if result == nil {
		return err
	}
	if err != nil {
		log.Warnf("%s: decoded %d of its frames before a failure: %s", path, len(result.Frames), err)
	}

	if _, err := osutils.EnsureDir(outDir, false); err != nil {
		return err
	}

	log.Infof("writing %d frame(s) from %s to %s", len(result.Frames), path, outDir)
	for i, frame := range result.Frames {
		framePath := filepath.Join(outDir, fmt.Sprintf("frame-%04d.png", i))
		if err := writeFramePNG(framePath, frame); err != nil {
			return fmt.Errorf("writing %s: %w", framePath, err)
		}
	}
	return nil
}

func writeFramePNG(path string, frame gif89a.Frame) error {
	data, err := render.PNG(frame)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
