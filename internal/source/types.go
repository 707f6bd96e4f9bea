// Package source owns source file buffers and maps compact byte offsets to
// (file, line, column) positions.
package source

type (
	// FileID uniquely identifies a loaded file within a FileSet.
	FileID uint32
	// FileFlags records metadata discovered while normalizing a file's bytes.
	FileFlags uint8
)

// NoFileID is the reserved invalid file id; offset 0 in any Span referring
// to it is never a valid location.
const NoFileID FileID = 0

const (
	// FileVirtual marks a file added from an in-memory buffer rather than disk.
	FileVirtual FileFlags = 1 << iota
	// FileHadBOM marks a file whose leading UTF-8 BOM was stripped on load.
	FileHadBOM
	// FileNormalizedCRLF marks a file whose CRLF line endings were normalized to LF.
	FileNormalizedCRLF
)

// File holds the content and precomputed line index for one source file.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	// LineIdx[i] is the byte offset of the newline ending line i+1 (0-based).
	LineIdx []uint32
	Flags   FileFlags
}

// LineCol is a 1-based human-readable position.
type LineCol struct {
	Line uint32
	Col  uint32
}
