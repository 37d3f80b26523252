package format

// List descriptors are three consecutive uint32 fields: element count, first
// element and last element. Pages and records share the encoding.

// PutList writes a list descriptor at off.
func PutList(b []byte, off int, count, first, last uint32) {
	PutU32(b, off+ListCountOffset, count)
	PutU32(b, off+ListFirstOffset, first)
	PutU32(b, off+ListLastOffset, last)
}

// ReadList reads the list descriptor at off.
func ReadList(b []byte, off int) (count, first, last uint32) {
	return ReadU32(b, off+ListCountOffset),
		ReadU32(b, off+ListFirstOffset),
		ReadU32(b, off+ListLastOffset)
}
