package endpoint

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/doytsujin/of-protocol/ofp"
)

func TestNegotiateBasicV4(t *testing.T) {
	version, err := negotiateVersion([]ofp.Version{ofp.Version4}, ofp.Version4, &ofp.Hello{})
	require.NoError(t, err)
	require.Equal(t, ofp.Version4, version)
}

func TestNegotiateBitmapIntersection(t *testing.T) {
	hello := &ofp.Hello{
		Elements: ofp.HelloElems{
			&ofp.HelloElemVersionBitmap{Bitmaps: []uint32{(1 << 3) | (1 << 4)}},
		},
	}

	version, err := negotiateVersion([]ofp.Version{ofp.Version4, 5}, ofp.Version4, hello)
	require.NoError(t, err)
	require.Equal(t, ofp.Version4, version)
}

func TestNegotiateNoCommonVersion(t *testing.T) {
	hello := &ofp.Hello{
		Elements: ofp.HelloElems{
			&ofp.HelloElemVersionBitmap{Bitmaps: []uint32{(1 << 1) | (1 << 2) | (1 << 3)}},
		},
	}

	_, err := negotiateVersion([]ofp.Version{ofp.Version4}, ofp.Version3, hello)
	require.Error(t, err)

	var nc *NoCommonVersionError
	require.ErrorAs(t, err, &nc)
	require.Equal(t, []ofp.Version{ofp.Version4}, nc.Client)
	require.Equal(t, []ofp.Version{3, 2, 1}, nc.Server)
}

func TestNegotiatePreV4Exact(t *testing.T) {
	version, err := negotiateVersion([]ofp.Version{ofp.Version1, ofp.Version3}, ofp.Version3, &ofp.Hello{})
	require.NoError(t, err)
	require.Equal(t, ofp.Version3, version)
}

func TestNegotiatePreV4Unsupported(t *testing.T) {
	_, err := negotiateVersion([]ofp.Version{ofp.Version1}, ofp.Version3, &ofp.Hello{})
	require.Error(t, err)

	var uv *UnsupportedVersionError
	require.ErrorAs(t, err, &uv)
	require.Equal(t, ofp.Version3, uv.Version)
}

func TestGreatestCommonVersion(t *testing.T) {
	v, ok := greatestCommonVersion([]ofp.Version{5, 4}, []ofp.Version{4, 3, 1})
	require.True(t, ok)
	require.Equal(t, ofp.Version4, v)

	_, ok = greatestCommonVersion([]ofp.Version{5}, []ofp.Version{1, 2})
	require.False(t, ok)
}
