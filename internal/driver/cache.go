package driver

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"yuanc/internal/source"
	"yuanc/internal/token"
)

// cacheSchemaVersion guards against decoding a payload written by an
// incompatible earlier build; bump it whenever cachedTokens changes shape.
const cacheSchemaVersion uint16 = 1

// cachedTokens is the on-disk shape of one file's cached token dump,
// keyed externally by the sha256 of its content (see TokenCache.pathFor).
type cachedTokens struct {
	Schema uint16
	Tokens []cachedToken
}

// cachedToken mirrors token.Token in a form msgpack can round-trip without
// reaching into source.Span's packed representation directly.
type cachedToken struct {
	Kind  uint8
	File  uint32
	Start uint32
	End   uint32
	Text  string
	Doc   string
}

// TokenCache persists lexed token dumps under --cache <dir>, keyed by the
// sha256 of the file's content, so an unchanged file skips re-lexing on
// the next invocation. Concurrent-safe: Get and Put hold a mutex, so one
// TokenCache may be shared across goroutines; CompileProject itself
// consults it from a single goroutine, after its concurrent file reads.
type TokenCache struct {
	mu  sync.Mutex
	dir string
}

// OpenTokenCache returns a TokenCache rooted at dir, creating it if needed.
func OpenTokenCache(dir string) (*TokenCache, error) {
	if dir == "" {
		return nil, errors.New("driver: empty cache directory")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &TokenCache{dir: dir}, nil
}

func contentDigest(content []byte) [32]byte {
	return sha256.Sum256(content)
}

func (c *TokenCache) pathFor(digest [32]byte) string {
	return filepath.Join(c.dir, hex.EncodeToString(digest[:])+".mp")
}

// Get looks up the cached token dump for content, if present.
func (c *TokenCache) Get(content []byte) ([]token.Token, bool) {
	if c == nil {
		return nil, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	digest := contentDigest(content)
	f, err := os.Open(c.pathFor(digest))
	if err != nil {
		return nil, false
	}
	defer f.Close()

	var payload cachedTokens
	if err := msgpack.NewDecoder(f).Decode(&payload); err != nil || payload.Schema != cacheSchemaVersion {
		return nil, false
	}
	toks := make([]token.Token, len(payload.Tokens))
	for i, ct := range payload.Tokens {
		toks[i] = token.Token{
			Kind: token.Kind(ct.Kind),
			Span: source.Span{File: source.FileID(ct.File), Start: ct.Start, End: ct.End},
			Text: ct.Text,
			Doc:  ct.Doc,
		}
	}
	return toks, true
}

// Put stores toks under content's digest, replacing any existing entry.
func (c *TokenCache) Put(content []byte, toks []token.Token) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	payload := cachedTokens{Schema: cacheSchemaVersion, Tokens: make([]cachedToken, len(toks))}
	for i, t := range toks {
		payload.Tokens[i] = cachedToken{
			Kind:  uint8(t.Kind),
			File:  uint32(t.Span.File),
			Start: t.Span.Start,
			End:   t.Span.End,
			Text:  t.Text,
			Doc:   t.Doc,
		}
	}

	digest := contentDigest(content)
	target := c.pathFor(digest)
	tmp, err := os.CreateTemp(c.dir, "tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := msgpack.NewEncoder(tmp).Encode(&payload); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), target)
}

func loadCachedTokens(c *TokenCache, file *source.File) ([]token.Token, bool) {
	if c == nil || file == nil {
		return nil, false
	}
	return c.Get(file.Content)
}

func storeCachedTokens(c *TokenCache, file *source.File, toks []token.Token) {
	if c == nil || file == nil {
		return
	}
	_ = c.Put(file.Content, toks)
}
