package fs

import "os"

// Open opens path for reading. GIF inputs are always regular files or
// stdin-backed temp files; the raw block-device opening the original
// tool needed for disk images has no analogue here.
func Open(path string) (File, error) {
	return os.Open(path)
}
