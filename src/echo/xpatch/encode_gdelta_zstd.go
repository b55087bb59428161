package xpatch

import (
	"github.com/DataDog/zstd"

	"github.com/amarbel-llc/xpatch/src/alfa/errors"
	"github.com/amarbel-llc/xpatch/src/bravo/varint"
	"github.com/amarbel-llc/xpatch/src/charlie/xpatchconfig"
)

// encodeGDeltaZstd pipes the GDelta instruction stream through zstd.
// It reruns encodeGDeltaWithTunables with the same default tunables as
// encodeGDelta, so it compresses the same instruction stream. Body: varint(new_len) || varint(len(compressed)) || compressed.
func encodeGDeltaZstd(cs changeSet, base, new []byte, enableZstd bool) (body []byte, ok bool) {
	if !enableZstd {
		return nil, false
	}

	gdeltaBody := encodeGDeltaWithTunables(base, new, xpatchconfig.Default().GDelta)

	newLen, n, err := varint.Decode(gdeltaBody)
	if err != nil {
		return nil, false
	}

	instructions := gdeltaBody[n:]

	compressed, err := zstd.Compress(nil, instructions)
	if err != nil {
		return nil, false
	}

	body = varint.Append(nil, newLen)
	body = varint.Append(body, uint64(len(compressed)))
	body = append(body, compressed...)

	return body, true
}

func decodeGDeltaZstd(base, body []byte) (out []byte, err error) {
	newLen, n, err := varint.Decode(body)
	if err != nil {
		return nil, err
	}

	compressedLen, n2, err := varint.Decode(body[n:])
	if err != nil {
		return nil, err
	}
	n += n2

	if uint64(len(body)-n) < compressedLen {
		return nil, errTruncatedBody()
	}

	compressed := body[n : n+int(compressedLen)]

	instructions, err := zstd.Decompress(nil, compressed)
	if err != nil {
		return nil, errors.ErrMalformedDelta(errors.ReasonCompressedFrame)
	}

	reassembled := varint.Append(nil, newLen)
	reassembled = append(reassembled, instructions...)

	return decodeGDelta(base, reassembled)
}
