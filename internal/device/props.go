package device

import (
	"encoding/binary"
	"strings"
	"unicode/utf16"
)

// Properties decodes registry-backed device properties, optionally falling
// back through the node's ancestor chain. Storage-class nodes frequently
// lack SPDRP_LOCATION_INFORMATION and SPDRP_BUSNUMBER; their hub carries
// them instead.
type Properties struct {
	store PropertyStore
	topo  *Topology
}

func NewProperties(store PropertyStore, topo *Topology) *Properties {
	return &Properties{store: store, topo: topo}
}

// String reads a property as a UTF-16LE string with the trailing NUL
// trimmed. Nil when absent or empty after trimming.
func (p *Properties) String(instanceID string, code PropertyCode) *string {
	raw, ok := p.store.ReadProperty(instanceID, code)
	if !ok {
		return nil
	}
	return decodeUTF16String(raw)
}

// Dword reads a property as a little-endian unsigned 32-bit value. Nil
// when absent or shorter than four bytes.
func (p *Properties) Dword(instanceID string, code PropertyCode) *uint32 {
	raw, ok := p.store.ReadProperty(instanceID, code)
	if !ok {
		return nil
	}
	return decodeDword(raw)
}

// StringWithAncestors returns the first present string value along
// [self, ancestors...].
func (p *Properties) StringWithAncestors(instanceID string, code PropertyCode) *string {
	v, ok := resolveFirst(p.topo.WithSelfThenAncestors(instanceID), func(id string) (*string, bool) {
		s := p.String(id, code)
		return s, s != nil
	})
	if !ok {
		return nil
	}
	return v
}

// DwordWithAncestors returns the first present dword value along
// [self, ancestors...].
func (p *Properties) DwordWithAncestors(instanceID string, code PropertyCode) *uint32 {
	v, ok := resolveFirst(p.topo.WithSelfThenAncestors(instanceID), func(id string) (*uint32, bool) {
		d := p.Dword(id, code)
		return d, d != nil
	})
	if !ok {
		return nil
	}
	return v
}

func decodeUTF16String(raw []byte) *string {
	units := make([]uint16, 0, len(raw)/2)
	for i := 0; i+1 < len(raw); i += 2 {
		units = append(units, binary.LittleEndian.Uint16(raw[i:]))
	}
	s := strings.TrimRight(string(utf16.Decode(units)), "\x00")
	if s == "" {
		return nil
	}
	return &s
}

func decodeDword(raw []byte) *uint32 {
	if len(raw) < 4 {
		return nil
	}
	v := binary.LittleEndian.Uint32(raw)
	return &v
}
