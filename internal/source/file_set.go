package source

import (
	"bytes"
	"fmt"
	"os"
	"sort"

	"fortio.org/safecast"
)

// FileSet owns every source buffer loaded in one compilation and provides
// offset <-> (file, line, column) resolution. Offset 0 (NoFileID) is
// reserved so a zero Span can never alias a real location.
type FileSet struct {
	files   []File
	byPath  map[string]FileID
	baseDir string
}

// NewFileSet returns an empty FileSet with the reserved invalid file at index 0.
func NewFileSet() *FileSet {
	fs := &FileSet{byPath: make(map[string]FileID)}
	fs.files = append(fs.files, File{ID: NoFileID}) // reserve NoFileID
	return fs
}

// SetBaseDir sets the directory used to render relative paths.
func (fs *FileSet) SetBaseDir(dir string) { fs.baseDir = dir }

// BaseDir returns the directory used to render relative paths.
func (fs *FileSet) BaseDir() string { return fs.baseDir }

// Add registers content under path and returns a new FileID. A new id is
// always minted, even if path was previously added, so stale FileIDs from
// an earlier version keep resolving to their original bytes.
func (fs *FileSet) Add(path string, content []byte, flags FileFlags) FileID {
	n, err := safecast.Conv[uint32](len(fs.files))
	if err != nil {
		panic(fmt.Errorf("source: file table overflow: %w", err))
	}
	id := FileID(n)
	fs.files = append(fs.files, File{
		ID:      id,
		Path:    path,
		Content: content,
		LineIdx: buildLineIndex(content),
		Flags:   flags,
	})
	fs.byPath[path] = id
	return id
}

// Load reads path from disk, normalizes a leading BOM and CRLF endings, and
// registers the result. A missing file returns NoFileID and the os error.
func (fs *FileSet) Load(path string) (FileID, error) {
	content, err := os.ReadFile(path) // #nosec G304 -- path comes from the driver invocation
	if err != nil {
		return NoFileID, err
	}
	content, hadBOM := stripBOM(content)
	content, hadCRLF := normalizeCRLF(content)
	flags := FileFlags(0)
	if hadBOM {
		flags |= FileHadBOM
	}
	if hadCRLF {
		flags |= FileNormalizedCRLF
	}
	return fs.Add(path, content, flags), nil
}

// AddVirtual registers an in-memory buffer (stdin, tests, generated code).
func (fs *FileSet) AddVirtual(name string, content []byte) FileID {
	return fs.Add(name, content, FileVirtual)
}

// Get returns the file metadata for id. Looking up NoFileID returns the
// reserved empty sentinel file.
func (fs *FileSet) Get(id FileID) *File {
	return &fs.files[id]
}

// GetByPath returns the most recently added file registered under path.
func (fs *FileSet) GetByPath(path string) (*File, bool) {
	id, ok := fs.byPath[path]
	if !ok {
		return nil, false
	}
	return &fs.files[id], true
}

// Resolve converts a span into its start and end line/column positions.
// A span on NoFileID resolves to the zero LineCol, per spec §4.1.
func (fs *FileSet) Resolve(span Span) (start, end LineCol) {
	if !span.Valid() {
		return LineCol{}, LineCol{}
	}
	f := &fs.files[span.File]
	return toLineCol(f.LineIdx, span.Start), toLineCol(f.LineIdx, span.End)
}

// Line returns the text of the given 1-based line, without its line
// terminator. An out-of-range line returns the empty string.
func (f *File) Line(lineNum uint32) string {
	if lineNum == 0 {
		return ""
	}
	var start uint32
	if lineNum == 1 {
		start = 0
	} else if int(lineNum-2) < len(f.LineIdx) {
		start = f.LineIdx[lineNum-2] + 1
	} else {
		return ""
	}
	total := safecastLen(f.Content)
	end := total
	if int(lineNum-1) < len(f.LineIdx) {
		end = f.LineIdx[lineNum-1]
	}
	if start > total {
		return ""
	}
	if end > total {
		end = total
	}
	if start >= end {
		return ""
	}
	return string(f.Content[start:end])
}

func safecastLen(b []byte) uint32 {
	n, err := safecast.Conv[uint32](len(b))
	if err != nil {
		panic(fmt.Errorf("source: length overflow: %w", err))
	}
	return n
}

// buildLineIndex records the byte offset of every line-terminating '\n'
// (after CRLF/CR normalization upstream, but tolerant of bare '\r' too).
func buildLineIndex(content []byte) []uint32 {
	var idx []uint32
	for i, b := range content {
		if b == '\n' {
			off, err := safecast.Conv[uint32](i)
			if err != nil {
				panic(fmt.Errorf("source: offset overflow: %w", err))
			}
			idx = append(idx, off)
		}
	}
	return idx
}

// toLineCol resolves a byte offset against a precomputed line index using
// binary search, producing a 1-based (line, column) pair.
func toLineCol(lineIdx []uint32, offset uint32) LineCol {
	line := sort.Search(len(lineIdx), func(i int) bool { return lineIdx[i] >= offset })
	var lineStart uint32
	if line > 0 {
		lineStart = lineIdx[line-1] + 1
	}
	lineNum, err := safecast.Conv[uint32](line + 1)
	if err != nil {
		panic(fmt.Errorf("source: line number overflow: %w", err))
	}
	return LineCol{
		Line: lineNum,
		Col:  offset - lineStart + 1,
	}
}

func stripBOM(b []byte) ([]byte, bool) {
	const bom = "\xef\xbb\xbf"
	if bytes.HasPrefix(b, []byte(bom)) {
		return b[len(bom):], true
	}
	return b, false
}

func normalizeCRLF(b []byte) ([]byte, bool) {
	if !bytes.Contains(b, []byte("\r")) {
		return b, false
	}
	out := make([]byte, 0, len(b))
	for i := 0; i < len(b); i++ {
		if b[i] == '\r' {
			out = append(out, '\n')
			if i+1 < len(b) && b[i+1] == '\n' {
				i++
			}
			continue
		}
		out = append(out, b[i])
	}
	return out, true
}
