package endpoint

import "github.com/doytsujin/of-protocol/ofp"

// buildHello constructs the outbound HELLO for a connection attempt:
// header version is the highest configured version; for version 4 and
// above the body carries one versionbitmap element listing every
// configured version, otherwise the body is empty.
func buildHello(versions []ofp.Version) *ofp.Hello {
	max := sortedDesc(versions)[0]
	if !max.SupportsVersionBitmap() {
		return &ofp.Hello{}
	}

	var words []uint32
	for _, v := range versions {
		word, bit := int(v)/32, uint(v)%32
		for len(words) <= word {
			words = append(words, 0)
		}
		words[word] |= 1 << bit
	}

	return &ofp.Hello{
		Elements: ofp.HelloElems{
			&ofp.HelloElemVersionBitmap{Bitmaps: words},
		},
	}
}
