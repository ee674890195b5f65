package nats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"doc-assistant-be/pkg/events"
)

func TestEnvelopeCarriesTypeAndData(t *testing.T) {
	in := events.MemberInvited(1, 2, 3, "ADMIN", true)

	data, err := encode(in)
	require.NoError(t, err)

	out, err := decode(data)
	require.NoError(t, err)
	assert.Equal(t, events.TypeMemberInvited, out.EventType())
	assert.Equal(t, "ADMIN", out.Payload()["role"])
	assert.Equal(t, true, out.Payload()["created"])
	assert.True(t, in.Timestamp().Equal(out.Timestamp()))

	assert.Equal(t, "events.MEMBER_INVITED", Subject(in.EventType()))
}

func TestDecodeRejectsGarbage(t *testing.T) {
	_, err := decode([]byte("not json"))
	assert.Error(t, err)
}
