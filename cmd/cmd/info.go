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
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ostafen/digif/gif89a"
	"github.com/ostafen/digif/pkg/util/format"
)

func DefineInfoCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info <path>",
		Short: "Print the block structure of a GIF file",
		Long: `The 'info' command parses a GIF file without compositing its pixel data
and prints its logical screen, palette, and block sequence.`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE:         RunInfo,
	}

	cmd.Flags().Bool("mmap", false, "memory-map the input file instead of reading it")
	return cmd
}

func RunInfo(cmd *cobra.Command, args []string) error {
	useMmap, _ := cmd.Flags().GetBool("mmap")

	data, err := readInput(args[0], useMmap)
	if err != nil {
		return err
	}

	stream, err := gif89a.Parse(data)
	if err != nil {
		return err
	}

	fmt.Printf("version:       %s\n", stream.Version)
	fmt.Printf("file size:     %s\n", format.FormatBytes(int64(len(data))))
	fmt.Printf("canvas:        %dx%d\n", stream.Screen.Width, stream.Screen.Height)
	fmt.Printf("global table:  %t\n", stream.Screen.HasGlobalColorTable())
	fmt.Printf("pixel data:    %s compressed\n", format.FormatBytes(compressedPixelBytes(stream)))
	if stream.LoopCount >= 0 {
		fmt.Printf("loop count:    %d\n", stream.LoopCount)
	} else {
		fmt.Printf("loop count:    (not specified)\n")
	}
	fmt.Println()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "BLOCK\tDETAIL")
	for _, block := range stream.Blocks {
		printBlock(w, block)
	}
	return w.Flush()
}

func compressedPixelBytes(stream *gif89a.Stream) int64 {
	var total int64
	for _, block := range stream.Blocks {
		if block.TableBasedImage == nil {
			continue
		}
		for _, db := range block.TableBasedImage.DataBlocks {
			total += int64(len(db))
		}
	}
	return total
}

func printBlock(w *tabwriter.Writer, block gif89a.Block) {
	switch {
	case block.GraphicControl != nil:
		gc := block.GraphicControl
		fmt.Fprintf(w, "graphic-control\tdisposal=%d delay=%dcs transparent=%t\n",
			gc.DisposalMethod(), gc.DelayTimeCs, gc.TransparentColorFlag())
	case block.TableBasedImage != nil:
		d := block.TableBasedImage.Descriptor
		fmt.Fprintf(w, "image\t%dx%d at (%d,%d) local-table=%t interlaced=%t\n",
			d.Width, d.Height, d.Left, d.Top, d.HasLocalColorTable(), d.Interlace())
	case block.PlainTextExtension != nil:
		pt := block.PlainTextExtension
		fmt.Fprintf(w, "plain-text\t%d byte(s), grid %dx%d text=%q\n", len(pt.Text), pt.GridWidth, pt.GridHeight, pt.Text)
	case block.ApplicationExtension != nil:
		ext := block.ApplicationExtension
		fmt.Fprintf(w, "application\tidentifier=%q\n", string(ext.Identifier[:]))
	case block.CommentExtension != nil:
		fmt.Fprintf(w, "comment\t%d byte(s)\n", len(block.CommentExtension.Data))
	}
}
