package lanp2p

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"nearby-chat/domain"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIdentity_RoundTripFlattensSeparators(t *testing.T) {
	req := require.New(t)
	var buf bytes.Buffer

	req.NoError(writeIdentity(&buf, domain.PeerIdentity{ID: "p-1", DisplayName: "Ann\tMarie\nB"}))
	got, err := readIdentity(bufio.NewReader(&buf))

	req.NoError(err)
	req.Equal(domain.PeerIdentity{ID: "p-1", DisplayName: "Ann Marie B"}, got)
}

func TestIdentity_MalformedLine(t *testing.T) {
	req := require.New(t)

	_, err := readIdentity(bufio.NewReader(strings.NewReader("no-separator\n")))
	req.Error(err)

	_, err = readIdentity(bufio.NewReader(strings.NewReader("\tname\n")))
	req.Error(err)
}

func TestFrame_BoundariesArePreserved(t *testing.T) {
	req := require.New(t)
	var buf bytes.Buffer

	// Given three frames written back to back, one of them empty
	for _, frame := range []string{"hello", "", "wörld"} {
		req.NoError(writeFrame(&buf, []byte(frame)))
	}

	// Then they are read back one by one
	r := bufio.NewReader(&buf)
	for _, want := range []string{"hello", "", "wörld"} {
		got, err := readFrame(r)
		req.NoError(err)
		req.Equal(want, string(got))
	}
	_, err := readFrame(r)
	req.Error(err)
}

func TestFrame_OversizedIsRejected(t *testing.T) {
	req := require.New(t)
	var size [4]byte
	binary.LittleEndian.PutUint32(size[:], maxFrameSize+1)

	_, err := readFrame(bytes.NewReader(size[:]))

	req.ErrorContains(err, "invalid frame size")
}
