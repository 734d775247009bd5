package pkpass

import "encoding/binary"

// ZIP record signatures and fixed sizes for the stored-only layout.
const (
	localHeaderSignature   uint32 = 0x04034b50
	centralHeaderSignature uint32 = 0x02014b50
	endOfCentralSignature  uint32 = 0x06054b50

	localHeaderSize   = 30
	centralHeaderSize = 46
	endOfCentralSize  = 22

	zipVersion uint16 = 20
)

// File is an in-memory archive entry. Name must be ASCII.
type File struct {
	Name string
	Data []byte
}

// BuildZip serialises files into an uncompressed ("stored") ZIP archive.
//
// Entries are written in the given order, followed by the central directory
// and a single end-of-central-directory record. Timestamps, flags, extra
// fields and comments are all zero, so identical input always yields
// identical bytes.
//
// ZIP64 is not supported: archives larger than 4 GiB or with more than 65535
// entries overflow the 32/16-bit header fields.
func BuildZip(files []File) []byte {
	size := endOfCentralSize
	for _, f := range files {
		size += localHeaderSize + centralHeaderSize + 2*len(f.Name) + len(f.Data)
	}

	out := make([]byte, 0, size)
	central := make([]byte, 0, len(files)*centralHeaderSize)

	le := binary.LittleEndian
	var offset uint32
	for _, f := range files {
		crc := Checksum(f.Data)
		n := uint32(len(f.Data))

		local := make([]byte, localHeaderSize, localHeaderSize+len(f.Name))
		le.PutUint32(local[0:], localHeaderSignature)
		le.PutUint16(local[4:], zipVersion)
		le.PutUint32(local[14:], crc)
		le.PutUint32(local[18:], n)
		le.PutUint32(local[22:], n)
		le.PutUint16(local[26:], uint16(len(f.Name)))
		local = append(local, f.Name...)

		header := make([]byte, centralHeaderSize, centralHeaderSize+len(f.Name))
		le.PutUint32(header[0:], centralHeaderSignature)
		le.PutUint16(header[4:], zipVersion)
		le.PutUint16(header[6:], zipVersion)
		le.PutUint32(header[16:], crc)
		le.PutUint32(header[20:], n)
		le.PutUint32(header[24:], n)
		le.PutUint16(header[28:], uint16(len(f.Name)))
		le.PutUint32(header[42:], offset)
		header = append(header, f.Name...)

		out = append(out, local...)
		out = append(out, f.Data...)
		central = append(central, header...)

		offset += uint32(len(local)) + n
	}

	out = append(out, central...)

	eocd := make([]byte, endOfCentralSize)
	le.PutUint32(eocd[0:], endOfCentralSignature)
	le.PutUint16(eocd[8:], uint16(len(files)))
	le.PutUint16(eocd[10:], uint16(len(files)))
	le.PutUint32(eocd[12:], uint32(len(central)))
	le.PutUint32(eocd[16:], offset)

	return append(out, eocd...)
}
