package dom

import (
	"encoding/binary"
	"encoding/hex"

	"github.com/zeebo/blake3"
)

// Fingerprint returns the BLAKE3 digest of a canonical encoding of the tree.
// Trees that are Equal have the same fingerprint; attribute map iteration
// order does not affect it.
func Fingerprint(root *Node) [32]byte {
	h := blake3.New()
	var scratch [binary.MaxVarintLen64]byte
	writeString := func(s string) {
		n := binary.PutUvarint(scratch[:], uint64(len(s)))
		_, _ = h.Write(scratch[:n])
		_, _ = h.Write([]byte(s))
	}
	writeCount := func(c int) {
		n := binary.PutUvarint(scratch[:], uint64(c))
		_, _ = h.Write(scratch[:n])
	}

	Walk(root, func(node *Node, depth int) bool {
		writeCount(depth)
		_, _ = h.Write([]byte{byte(node.Type)})
		switch node.Type {
		case TextNode:
			writeString(node.Text)
		case ElementNode:
			writeString(node.TagName())
			names := node.Element.Attributes.SortedNames()
			writeCount(len(names))
			for _, name := range names {
				writeString(name)
				writeString(node.Element.Attributes[name])
			}
		}
		writeCount(len(node.Children))
		return true
	})

	var sum [32]byte
	copy(sum[:], h.Sum(nil))
	return sum
}

// FingerprintHex returns Fingerprint as a lowercase hex string.
func FingerprintHex(root *Node) string {
	sum := Fingerprint(root)
	return hex.EncodeToString(sum[:])
}
