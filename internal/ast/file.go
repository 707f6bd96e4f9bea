package ast

import "yuanc/internal/source"

// File is one parsed compilation unit: its top-level declarations in
// source order.
type File struct {
	ID    source.FileID
	Decls []DeclID
}
