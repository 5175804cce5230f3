package umbf

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/samber/lo"
)

// Target references an asset stored elsewhere instead of carrying its
// bytes: the expected header of the remote resource, its URL, and the
// checksum consumers verify after fetching. Fetching itself is outside
// this package.
type Target struct {
	Header   Header
	URL      string
	Checksum uint32
}

func (t *Target) Signature() uint32 { return SigTarget }

var targetCodec = BlockCodec{
	Encode: func(ec *EncodeContext, w *Writer, b Block) error {
		t, ok := b.(*Target)
		if !ok {
			return fmt.Errorf("%w: expected *Target", ErrInvalidBlock)
		}
		w.header(t.Header)
		w.String(t.URL)
		w.Uint32(t.Checksum)
		return nil
	},
	Decode: func(dc *DecodeContext, r *Reader) (Block, error) {
		t := &Target{
			Header:   r.header(),
			URL:      r.String(),
			Checksum: r.Uint32(),
		}
		if err := r.Err(); err != nil {
			return nil, err
		}
		return t, nil
	},
}

// LibraryNode is one entry of a library's file tree. Folders carry
// children; leaves carry an embedded asset, which is either a full
// container or a Target-typed container holding only a reference.
type LibraryNode struct {
	Name     string
	IsFolder bool
	Children []LibraryNode
	Asset    File
}

// Find walks the tree by slash-separated path and returns the matching
// node, or nil when any path element is missing.
func (n *LibraryNode) Find(path string) *LibraryNode {
	current := n
	for _, part := range strings.Split(path, "/") {
		if part == "" {
			continue
		}
		_, idx, ok := lo.FindIndexOf(current.Children, func(c LibraryNode) bool {
			return c.Name == part
		})
		if !ok {
			return nil
		}
		current = &current.Children[idx]
	}
	return current
}

// Library is an asset storage block: a named tree of folders whose
// leaves are embedded assets or target references.
type Library struct {
	Tree LibraryNode
}

func (l *Library) Signature() uint32 { return SigLibrary }

var libraryCodec = BlockCodec{
	Encode: func(ec *EncodeContext, w *Writer, b Block) error {
		l, ok := b.(*Library)
		if !ok {
			return fmt.Errorf("%w: expected *Library", ErrInvalidBlock)
		}
		return writeLibraryNode(ec, w, &l.Tree)
	},
	Decode: func(dc *DecodeContext, r *Reader) (Block, error) {
		l := &Library{}
		if err := readLibraryNode(dc, r, &l.Tree); err != nil {
			return nil, err
		}
		return l, nil
	},
}

// writeLibraryNode recursively serializes a tree node: name, child
// count, then either the children or the leaf fields. A leaf that is
// not a folder must carry a valid embedded asset; a typeless asset
// there marks a corrupted tree and aborts the whole encode.
func writeLibraryNode(ec *EncodeContext, w *Writer, n *LibraryNode) error {
	w.String(n.Name)
	w.count16(len(n.Children))
	if len(n.Children) > 0 {
		for i := range n.Children {
			if err := writeLibraryNode(ec, w, &n.Children[i]); err != nil {
				return err
			}
		}
		return nil
	}
	w.Bool(n.IsFolder)
	if !n.IsFolder {
		if n.Asset.Header.TypeSign == FormatNone {
			return fmt.Errorf("%w: leaf %q has no valid asset", ErrCorruptTree, n.Name)
		}
		return writeFile(ec, w, n.Asset)
	}
	return nil
}

func readLibraryNode(dc *DecodeContext, r *Reader, n *LibraryNode) error {
	child, err := dc.descend()
	if err != nil {
		return err
	}
	n.Name = r.String()
	childCount := int(r.Uint16())
	if err := r.Err(); err != nil {
		return err
	}
	if childCount > 0 {
		n.IsFolder = true
		n.Children = make([]LibraryNode, childCount)
		for i := range n.Children {
			if err := readLibraryNode(child, r, &n.Children[i]); err != nil {
				return err
			}
		}
		return nil
	}
	n.IsFolder = r.Bool()
	if err := r.Err(); err != nil {
		return err
	}
	if !n.IsFolder {
		asset, err := readFile(child, r)
		if err != nil {
			return err
		}
		if asset.Header.TypeSign == FormatNone {
			return fmt.Errorf("%w: leaf %q has no valid asset", ErrCorruptTree, n.Name)
		}
		n.Asset = asset
	}
	return nil
}

// LibraryExt is the filename extension LoadLibraries scans for.
const LibraryExt = ".umbf"

// LoadLibraries reads every library container in dir and returns them
// keyed by their tree's root name. Entries that fail to load or are not
// library-typed are skipped with a warning; only the directory listing
// itself can fail the call.
func LoadLibraries(dir string, opts ...DecodeOption) (map[string]*Library, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	cfg := decodeConfig{logger: slog.Default()}
	for _, opt := range opts {
		opt(&cfg)
	}
	log := cfg.logger

	libraries := make(map[string]*Library)
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != LibraryExt {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		f, err := Load(path, opts...)
		if err != nil {
			log.Warn("failed to load library", "path", path, "error", err)
			continue
		}
		if f.Header.TypeSign != FormatLibrary || len(f.Blocks) == 0 {
			log.Warn("not a library container", "path", path)
			continue
		}
		lib, ok := f.Blocks[0].(*Library)
		if !ok {
			log.Warn("library container has no library block", "path", path)
			continue
		}
		libraries[lib.Tree.Name] = lib
	}
	return libraries, nil
}
