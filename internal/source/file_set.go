package source

import (
	"crypto/sha256"
	"fmt"
	"sort"

	"fortio.org/safecast"
)

// File captures metadata and content for a single source file.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32
	Hash    [32]byte
}

// FileSet manages a collection of source files. Bodies reference files only
// through spans, so the set stays append-only and ids stay stable.
type FileSet struct {
	files []File
	index map[string]FileID
}

// NewFileSet creates a new empty FileSet.
func NewFileSet() *FileSet {
	return &FileSet{
		index: make(map[string]FileID),
	}
}

// Add stores a file, computes its line index and content hash, and returns a
// fresh FileID (1-based; 0 stays the invalid sentinel).
func (fs *FileSet) Add(path string, content []byte) FileID {
	lenFiles, err := safecast.Conv[uint32](len(fs.files))
	if err != nil {
		panic(fmt.Errorf("len files overflow: %w", err))
	}
	id := FileID(lenFiles + 1)
	fs.files = append(fs.files, File{
		ID:      id,
		Path:    path,
		Content: content,
		LineIdx: buildLineIndex(content),
		Hash:    sha256.Sum256(content),
	})
	fs.index[path] = id
	return id
}

// Get returns the file for an id, or nil if the id is invalid.
func (fs *FileSet) Get(id FileID) *File {
	if !id.IsValid() || int(id) > len(fs.files) {
		return nil
	}
	return &fs.files[id-1]
}

// Lookup finds a file by path.
func (fs *FileSet) Lookup(path string) (FileID, bool) {
	id, ok := fs.index[path]
	return id, ok
}

func (fs *FileSet) Len() int {
	return len(fs.files)
}

// Position resolves a byte offset in the file to a 1-based line/column pair.
func (f *File) Position(offset uint32) LineCol {
	if f == nil || len(f.LineIdx) == 0 {
		return LineCol{Line: 1, Col: 1}
	}
	line := sort.Search(len(f.LineIdx), func(i int) bool {
		return f.LineIdx[i] > offset
	})
	var lineStart uint32
	if line > 0 {
		lineStart = f.LineIdx[line-1]
	}
	return LineCol{
		Line: uint32(line) + 1,
		Col:  offset - lineStart + 1,
	}
}

// Line returns the raw bytes of the 1-based line, without the newline.
func (f *File) Line(line uint32) []byte {
	if f == nil || line == 0 || int(line) > len(f.LineIdx)+1 {
		return nil
	}
	var start uint32
	if line > 1 {
		start = f.LineIdx[line-2]
	}
	end := uint32(len(f.Content))
	if int(line) <= len(f.LineIdx) {
		end = f.LineIdx[line-1] - 1
	}
	if end < start {
		end = start
	}
	return f.Content[start:end]
}

// buildLineIndex records the byte offset just past every '\n'.
func buildLineIndex(content []byte) []uint32 {
	idx := make([]uint32, 0, 16)
	for i, b := range content {
		if b == '\n' {
			idx = append(idx, uint32(i)+1)
		}
	}
	return idx
}
