//go:build linux
// +build linux

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
package fuse

import (
	"context"
	"fmt"
	"os"
	"sort"
	"time"

	"bazil.org/fuse"
	"bazil.org/fuse/fs"

	"github.com/ostafen/digif/gif89a"
	"github.com/ostafen/digif/pkg/util/render"
)

// frameEntry is one frame, PNG-encoded up front at mount time.
type frameEntry struct {
	name string
	png  []byte
}

// FrameFS exposes a decoded animation's frames as a flat read-only
// directory of frame-%04d.png files, so any image viewer can page through
// an animation without the caller linking against this module at all.
type FrameFS struct {
	entries map[string]frameEntry
}

// NewFrameFS renders every frame of result to PNG up front.
func NewFrameFS(result *gif89a.Result) (*FrameFS, error) {
	entries := make(map[string]frameEntry, len(result.Frames))
	for i, frame := range result.Frames {
		name := fmt.Sprintf("frame-%04d.png", i)
		data, err := render.PNG(frame)
		if err != nil {
			return nil, fmt.Errorf("fuse: encoding %s: %w", name, err)
		}
		entries[name] = frameEntry{name: name, png: data}
	}
	return &FrameFS{entries: entries}, nil
}

func (fsys *FrameFS) Root() (fs.Node, error) {
	return &Dir{fs: fsys}, nil
}

// Dir implements both fs.Node and fs.HandleReadDirAller.
type Dir struct {
	fs *FrameFS
}

func (*Dir) Attr(ctx context.Context, a *fuse.Attr) error {
	a.Mode = os.ModeDir | 0555
	return nil
}

func (d *Dir) Lookup(ctx context.Context, name string) (fs.Node, error) {
	if e, ok := d.fs.entries[name]; ok {
		return &File{data: e.png}, nil
	}
	return nil, fuse.ENOENT
}

func (d *Dir) ReadDirAll(ctx context.Context) ([]fuse.Dirent, error) {
	dirEntries := make([]fuse.Dirent, 0, len(d.fs.entries))
	for name := range d.fs.entries {
		dirEntries = append(dirEntries, fuse.Dirent{Name: name, Type: fuse.DT_File})
	}
	sort.Slice(dirEntries, func(i, j int) bool {
		return dirEntries[i].Name < dirEntries[j].Name
	})
	for i := range dirEntries {
		dirEntries[i].Inode = uint64(i + 1)
	}
	return dirEntries, nil
}

// File implements both fs.Node and fs.HandleReader, serving one already
// PNG-encoded frame.
type File struct {
	data []byte
}

func (f *File) Attr(ctx context.Context, a *fuse.Attr) error {
	a.Mode = 0444
	a.Size = uint64(len(f.data))
	a.Mtime = time.Now()
	return nil
}

func (f *File) Read(ctx context.Context, req *fuse.ReadRequest, resp *fuse.ReadResponse) error {
	off := req.Offset
	if off >= int64(len(f.data)) {
		resp.Data = []byte{}
		return nil
	}

	end := off + int64(req.Size)
	if end > int64(len(f.data)) {
		end = int64(len(f.data))
	}
	resp.Data = f.data[off:end]
	return nil
}
