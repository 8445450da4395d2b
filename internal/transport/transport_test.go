package transport

import (
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEndpointAcceptsUDPMulticastURI(t *testing.T) {
	ep, err := ParseEndpoint("udp://239.1.1.2:9001")
	require.NoError(t, err)
	assert.Equal(t, net.ParseIP("239.1.1.2").String(), ep.IP.String())
	assert.Equal(t, 9001, ep.Port)
	assert.Equal(t, "udp://239.1.1.2:9001", ep.String())
}

func TestParseEndpointRejectsBadScheme(t *testing.T) {
	_, err := ParseEndpoint("tcp://239.1.1.2:9001")
	assert.Error(t, err)
}

func TestParseEndpointRejectsMissingPort(t *testing.T) {
	_, err := ParseEndpoint("udp://239.1.1.2")
	assert.Error(t, err)
}

func TestParseEndpointRejectsBadHost(t *testing.T) {
	_, err := ParseEndpoint("udp://not-an-ip:9001")
	assert.Error(t, err)
}

func TestTagRoundTrip(t *testing.T) {
	payload := []byte{1, 2, 3, 4}
	tagged, err := encodeTag("ExtrapTrackData", payload)
	require.NoError(t, err)

	group, rest, err := decodeTag(tagged)
	require.NoError(t, err)
	assert.Equal(t, "ExtrapTrackData", group)
	assert.Equal(t, payload, rest)
}

func TestEncodeTagRejectsOversizedGroup(t *testing.T) {
	_, err := encodeTag("ThisGroupNameIsWayTooLongForTheTag", []byte{1})
	assert.Error(t, err)
}

func TestEncodeTagRejectsEmptyGroup(t *testing.T) {
	_, err := encodeTag("", []byte{1})
	assert.Error(t, err)
}

func TestDecodeTagRejectsEmptyDatagram(t *testing.T) {
	_, _, err := decodeTag(nil)
	assert.Error(t, err)
}

func TestDecodeTagRejectsTruncatedGroup(t *testing.T) {
	_, _, err := decodeTag([]byte{5, 'a', 'b'})
	assert.Error(t, err)
}
