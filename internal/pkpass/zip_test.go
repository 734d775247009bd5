package pkpass

import (
	"archive/zip"
	"bytes"
	"encoding/binary"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type walkedEntry struct {
	name        string
	size        uint32
	crc         uint32
	localOffset uint32
}

// walkZip re-parses an archive produced by BuildZip without using archive/zip:
// local headers first, then the central directory, then the EOCD.
func walkZip(t *testing.T, b []byte) (locals, central []walkedEntry, eocdCount uint16) {
	t.Helper()
	le := binary.LittleEndian

	require.GreaterOrEqual(t, len(b), endOfCentralSize)
	eocd := b[len(b)-endOfCentralSize:]
	require.Equal(t, endOfCentralSignature, le.Uint32(eocd[0:]))
	require.Equal(t, le.Uint16(eocd[8:]), le.Uint16(eocd[10:]))
	eocdCount = le.Uint16(eocd[10:])
	cdSize := le.Uint32(eocd[12:])
	cdOffset := le.Uint32(eocd[16:])
	require.Equal(t, len(b)-endOfCentralSize, int(cdOffset+cdSize), "central directory must end at EOCD")

	pos := uint32(0)
	for pos < cdOffset {
		h := b[pos:]
		require.Equal(t, localHeaderSignature, le.Uint32(h[0:]))
		require.Equal(t, zipVersion, le.Uint16(h[4:]))
		require.Equal(t, uint16(0), le.Uint16(h[6:]), "flags")
		require.Equal(t, uint16(0), le.Uint16(h[8:]), "method")
		compressed := le.Uint32(h[18:])
		uncompressed := le.Uint32(h[22:])
		require.Equal(t, compressed, uncompressed)
		nameLen := uint32(le.Uint16(h[26:]))
		name := string(h[localHeaderSize : localHeaderSize+nameLen])
		data := h[localHeaderSize+nameLen : localHeaderSize+nameLen+uncompressed]
		crc := le.Uint32(h[14:])
		require.Equal(t, Checksum(data), crc, "crc of %s", name)

		locals = append(locals, walkedEntry{name: name, size: uncompressed, crc: crc, localOffset: pos})
		pos += localHeaderSize + nameLen + uncompressed
	}
	require.Equal(t, cdOffset, pos, "central directory offset must follow the last entry")

	for pos < cdOffset+cdSize {
		h := b[pos:]
		require.Equal(t, centralHeaderSignature, le.Uint32(h[0:]))
		require.Equal(t, zipVersion, le.Uint16(h[4:]))
		require.Equal(t, zipVersion, le.Uint16(h[6:]))
		nameLen := uint32(le.Uint16(h[28:]))
		central = append(central, walkedEntry{
			name:        string(h[centralHeaderSize : centralHeaderSize+nameLen]),
			size:        le.Uint32(h[24:]),
			crc:         le.Uint32(h[16:]),
			localOffset: le.Uint32(h[42:]),
		})
		require.Equal(t, le.Uint32(h[20:]), le.Uint32(h[24:]))
		pos += centralHeaderSize + nameLen
	}
	return locals, central, eocdCount
}

func sampleFiles() []File {
	return []File{
		{Name: "pass.json", Data: []byte(`{"formatVersion":1}`)},
		{Name: "manifest.json", Data: []byte(`{"pass.json":"abc"}`)},
		{Name: "empty.txt", Data: nil},
		{Name: "blob.bin", Data: bytes.Repeat([]byte{0, 1, 2, 0xff}, 300)},
	}
}

func TestBuildZip_Deterministic(t *testing.T) {
	a := BuildZip(sampleFiles())
	b := BuildZip(sampleFiles())
	assert.Equal(t, a, b)
}

func TestBuildZip_OffsetsAndDirectory(t *testing.T) {
	files := sampleFiles()
	out := BuildZip(files)

	locals, central, count := walkZip(t, out)

	require.Len(t, locals, len(files))
	require.Len(t, central, len(files))
	assert.Equal(t, uint16(len(files)), count)

	for i, f := range files {
		assert.Equal(t, f.Name, locals[i].name)
		assert.Equal(t, uint32(len(f.Data)), locals[i].size)
		assert.Equal(t, Checksum(f.Data), locals[i].crc)
		assert.Equal(t, locals[i], central[i], "central entry %d must mirror its local header", i)
	}
}

func TestBuildZip_Empty(t *testing.T) {
	out := BuildZip(nil)
	require.Len(t, out, endOfCentralSize)

	_, _, count := walkZip(t, out)
	assert.Equal(t, uint16(0), count)
}

func TestBuildZip_ExactSize(t *testing.T) {
	files := []File{{Name: "a", Data: []byte("xyz")}}
	out := BuildZip(files)
	assert.Len(t, out, localHeaderSize+1+3+centralHeaderSize+1+endOfCentralSize)
}

func TestBuildZip_ReadableByArchiveZip(t *testing.T) {
	files := sampleFiles()
	out := BuildZip(files)

	r, err := zip.NewReader(bytes.NewReader(out), int64(len(out)))
	require.NoError(t, err)
	require.Len(t, r.File, len(files))

	for i, zf := range r.File {
		assert.Equal(t, files[i].Name, zf.Name)
		assert.Equal(t, zip.Store, zf.Method)

		rc, err := zf.Open()
		require.NoError(t, err)
		got, err := io.ReadAll(rc)
		require.NoError(t, err, "reading %s must pass CRC verification", zf.Name)
		require.NoError(t, rc.Close())

		assert.Equal(t, len(files[i].Data), len(got))
		if len(files[i].Data) > 0 {
			assert.Equal(t, files[i].Data, got)
		}
	}
}
