package source

// StringID is a deduplicated handle to an interned identifier or literal text.
type StringID uint32

// NoStringID is the reserved empty-string handle.
const NoStringID StringID = 0

// Interner deduplicates strings (identifiers, string-literal payloads) so
// that AST and symbol-table structures can compare names by StringID
// instead of repeatedly hashing/comparing byte slices.
type Interner struct {
	strings []string
	index   map[string]StringID
}

// NewInterner returns an interner with the empty string pre-registered at NoStringID.
func NewInterner() *Interner {
	in := &Interner{index: make(map[string]StringID, 256)}
	in.strings = append(in.strings, "")
	in.index[""] = NoStringID
	return in
}

// Intern returns s's stable StringID, registering it on first use.
func (in *Interner) Intern(s string) StringID {
	if id, ok := in.index[s]; ok {
		return id
	}
	id := StringID(len(in.strings))
	in.strings = append(in.strings, s)
	in.index[s] = id
	return id
}

// Lookup returns the text behind id.
func (in *Interner) Lookup(id StringID) string {
	return in.strings[id]
}
