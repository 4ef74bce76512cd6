package rrm

import "encoding/binary"

// DecodeIndices reads the index stream starting at off. The format stores no
// index count; the stream ends at the first value above sentinel or at the
// end of the buffer. The result is truncated to whole triangles.
func DecodeIndices(data []byte, off uint32, sentinel uint32) []uint32 {
	var indices []uint32
	for pos := int(off); pos+4 <= len(data); pos += 4 {
		v := binary.LittleEndian.Uint32(data[pos:])
		if v > sentinel {
			break
		}
		indices = append(indices, v)
	}
	return indices[:len(indices)/3*3]
}
