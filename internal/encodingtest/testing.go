// Package encodingtest provides table-driven helpers for exercising the
// WriterTo/ReaderFrom pairs that make up the wire codec.
package encodingtest

import (
	"bytes"
	"encoding/gob"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

// M is a single marshaling test case.
type M struct {
	Writer io.WriterTo
	Bytes  []byte
}

// RunM checks that each Writer produces exactly the expected bytes.
func RunM(t *testing.T, tests []M) {
	for _, test := range tests {
		var buf bytes.Buffer
		n, err := test.Writer.WriteTo(&buf)
		require.NoError(t, err)
		require.Equal(t, int64(len(test.Bytes)), n)
		require.Equal(t, test.Bytes, buf.Bytes())
	}
}

// U is a single unmarshaling test case.
type U struct {
	Reader io.ReaderFrom
	Bytes  []byte
}

// RunU checks that each Reader consumes all given bytes and that
// re-encoding the decoded value with encoding/gob is stable, a cheap
// proxy for "decoding didn't leave the receiver half-populated".
func RunU(t *testing.T, tests []U) {
	for _, test := range tests {
		var before bytes.Buffer
		require.NoError(t, gob.NewEncoder(&before).Encode(test.Reader))

		n, err := test.Reader.ReadFrom(bytes.NewBuffer(test.Bytes))
		require.NoError(t, err)
		require.Equal(t, int64(len(test.Bytes)), n)

		var after bytes.Buffer
		require.NoError(t, gob.NewEncoder(&after).Encode(test.Reader))
		require.Equal(t, before.Bytes(), after.Bytes())
	}
}

// MU is a round-trip marshal/unmarshal test case.
type MU struct {
	ReadWriter interface {
		io.ReaderFrom
		io.WriterTo
	}

	Bytes []byte
}

// RunMU exercises both directions for each case.
func RunMU(t *testing.T, tests []MU) {
	for _, test := range tests {
		RunM(t, []M{{test.ReadWriter, test.Bytes}})
		RunU(t, []U{{test.ReadWriter, test.Bytes}})
	}
}
