package trie

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"fts-radix/internal/plp"
)

// magic/version tag written at the head of a trie file; Load rejects a
// file that does not start with it. It is a fixed constant, so it does not
// detect a trie file paired with a PLP file from a different save
// (spec §9's cross-file atomicity gap).
const fileMagic uint32 = 0x54524931 // "TRI1"

// Save persists the trie rooted at t in pre-order: each node emits a
// header {external?, key, handle-or(-1), rank, child-count} followed
// immediately by its children. Strings are length-prefixed; no
// host-specific object serialization is used, per spec §9.
func (t *Trie) Save(path string) error {
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("trie: save: %w: %w", plp.ErrPersistIO, err)
	}

	w := bufio.NewWriter(f)
	if err := binary.Write(w, binary.LittleEndian, fileMagic); err != nil {
		f.Close()
		return fmt.Errorf("trie: save: %w: %w", plp.ErrPersistIO, err)
	}
	if err := writeNode(w, t.root); err != nil {
		f.Close()
		return fmt.Errorf("trie: save: %w: %w", plp.ErrPersistIO, err)
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("trie: save: %w: %w", plp.ErrPersistIO, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("trie: save: %w: %w", plp.ErrPersistIO, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("trie: save: rename: %w: %w", plp.ErrPersistIO, err)
	}
	return nil
}

func writeNode(w *bufio.Writer, n *node) error {
	var externalByte byte
	if n.external {
		externalByte = 1
	}
	if err := w.WriteByte(externalByte); err != nil {
		return err
	}
	if err := writeString(w, n.key); err != nil {
		return err
	}
	handle := int32(noHandle)
	if n.external {
		handle = int32(n.handle)
	}
	if err := binary.Write(w, binary.LittleEndian, handle); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, n.rank); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(len(n.children))); err != nil {
		return err
	}
	for _, c := range n.children {
		if err := writeNode(w, c); err != nil {
			return err
		}
	}
	return nil
}

func writeString(w *bufio.Writer, s string) error {
	if err := binary.Write(w, binary.LittleEndian, uint32(len(s))); err != nil {
		return err
	}
	_, err := w.WriteString(s)
	return err
}

// Load reconstructs a trie from path, allocating into pool. load(save(t))
// observationally equals t, including ranks (spec §6).
func Load(path string, pool *plp.Pool) (*Trie, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("trie: load: %w", err)
	}
	defer f.Close()

	r := bufio.NewReader(f)
	var magic uint32
	if err := binary.Read(r, binary.LittleEndian, &magic); err != nil {
		return nil, fmt.Errorf("trie: load: %w", err)
	}
	if magic != fileMagic {
		return nil, fmt.Errorf("trie: load: %w", ErrCorruptTrie)
	}

	root, err := readNode(r)
	if err != nil {
		return nil, fmt.Errorf("trie: load: %w", err)
	}
	return &Trie{root: root, pool: pool}, nil
}

func readNode(r *bufio.Reader) (*node, error) {
	externalByte, err := r.ReadByte()
	if err != nil {
		return nil, err
	}
	key, err := readString(r)
	if err != nil {
		return nil, err
	}
	var handle int32
	if err := binary.Read(r, binary.LittleEndian, &handle); err != nil {
		return nil, err
	}
	var rank uint64
	if err := binary.Read(r, binary.LittleEndian, &rank); err != nil {
		return nil, err
	}
	var childCount uint32
	if err := binary.Read(r, binary.LittleEndian, &childCount); err != nil {
		return nil, err
	}

	n := &node{
		key:      key,
		external: externalByte == 1,
		handle:   plp.Handle(handle),
		rank:     rank,
	}
	if childCount > 0 {
		n.children = make([]*node, childCount)
		for i := range n.children {
			child, err := readNode(r)
			if err != nil {
				return nil, err
			}
			n.children[i] = child
		}
	}
	return n, nil
}

func readString(r *bufio.Reader) (string, error) {
	var n uint32
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return "", err
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", err
	}
	return string(buf), nil
}
