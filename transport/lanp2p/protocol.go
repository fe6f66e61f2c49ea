package lanp2p

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"nearby-chat/domain"
	"strings"

	"github.com/libp2p/go-libp2p/core/protocol"
)

const (
	helloProtocol  protocol.ID = "/nearby-chat/hello/1.0.0"
	inviteProtocol protocol.ID = "/nearby-chat/invite/1.1.0"
	frameProtocol  protocol.ID = "/nearby-chat/frame/1.0.0"

	maxFrameSize    = 1 << 20
	maxIdentitySize = 512

	accepted byte = 1
	rejected byte = 0
)

// writeIdentity sends "<id>\t<display name>\n".
func writeIdentity(w io.Writer, identity domain.PeerIdentity) error {
	name := strings.NewReplacer("\t", " ", "\n", " ").Replace(identity.DisplayName)
	_, err := fmt.Fprintf(w, "%s\t%s\n", identity.ID, name)
	return err
}

func readIdentity(r *bufio.Reader) (domain.PeerIdentity, error) {
	line, err := r.ReadString('\n')
	if err != nil {
		return domain.PeerIdentity{}, err
	}
	if len(line) > maxIdentitySize {
		return domain.PeerIdentity{}, fmt.Errorf("identity line too long: %d bytes", len(line))
	}
	id, name, ok := strings.Cut(strings.TrimSuffix(line, "\n"), "\t")
	if !ok || id == "" {
		return domain.PeerIdentity{}, fmt.Errorf("malformed identity line %q", line)
	}
	return domain.PeerIdentity{ID: domain.PeerID(id), DisplayName: name}, nil
}

// writeFrame writes a length-prefixed frame (u32 LE) so boundaries survive the stream.
func writeFrame(w io.Writer, data []byte) error {
	var size [4]byte
	binary.LittleEndian.PutUint32(size[:], uint32(len(data)))
	if _, err := w.Write(size[:]); err != nil {
		return err
	}
	_, err := w.Write(data)
	return err
}

func readFrame(r io.Reader) ([]byte, error) {
	var size [4]byte
	if _, err := io.ReadFull(r, size[:]); err != nil {
		return nil, err
	}
	n := binary.LittleEndian.Uint32(size[:])
	if n > maxFrameSize {
		return nil, fmt.Errorf("invalid frame size %d", n)
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, err
	}
	return buf, nil
}
