// Package pkpass builds unsigned (or externally signed) Apple Wallet pass
// containers: the pass.json payload, its SHA-1 manifest and the stored-only
// ZIP archive that wraps them.
package pkpass

// crcPolynomial is the reflected ISO 3309 / PKZIP CRC-32 polynomial.
const crcPolynomial uint32 = 0xEDB88320

// crcTable is computed once at package initialisation and only read afterwards.
var crcTable = makeCRCTable()

func makeCRCTable() [256]uint32 {
	var table [256]uint32
	for i := range table {
		c := uint32(i)
		for j := 0; j < 8; j++ {
			if c&1 == 1 {
				c = crcPolynomial ^ (c >> 1)
			} else {
				c >>= 1
			}
		}
		table[i] = c
	}
	return table
}

// Checksum returns the PKZIP CRC-32 of data.
func Checksum(data []byte) uint32 {
	crc := uint32(0xFFFFFFFF)
	for _, b := range data {
		crc = crcTable[byte(crc)^b] ^ (crc >> 8)
	}
	return crc ^ 0xFFFFFFFF
}
