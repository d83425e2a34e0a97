package corgi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestHeader0(t *testing.T) {
	assert.Equal(t, byte(0x40), header0(0x04, 0x00))
	assert.Equal(t, byte(0x4f), header0(0x04, 0x0f))
	assert.Equal(t, byte(0xff), header0(0x0f, 0x0f))
}

func TestPingEncoding(t *testing.T) {
	var drv = &test_driver{acks: map[byte]bool{0x88: true}}

	assert.True(t, cec_ping(drv, 0x08))
	assert.False(t, cec_ping(drv, 0x04))

	require.Len(t, drv.sent, 2)
	assert.Equal(t, []byte{0x88}, drv.sent[0], "A ping is addressed from and to the probed address")
	assert.Equal(t, []byte{0x44}, drv.sent[1])
}

func TestOutboundHeaderNibble(t *testing.T) {
	// Whatever the responder sends, the high nibble of octet 0 is
	// always our own logical address.
	rapid.Check(t, func(t *rapid.T) {
		var laddr = rapid.Uint8Range(0x0, 0xe).Draw(t, "laddr")
		var initiator = rapid.Uint8Range(0x0, 0xe).Draw(t, "initiator")

		var drv = &test_driver{acks: map[byte]bool{}}
		var st = new_cec_state(DefaultConfig(), drv, nil)
		st.laddr = laddr
		st.paddr = 0x3000

		var directed = []uint8{
			CEC_ID_SYSTEM_AUDIO_MODE_REQUEST,
			CEC_ID_GIVE_AUDIO_STATUS,
			CEC_ID_GIVE_SYSTEM_AUDIO_MODE_STATUS,
			CEC_ID_GIVE_DEVICE_VENDOR_ID,
			CEC_ID_GIVE_DEVICE_POWER_STATUS,
			CEC_ID_GET_CEC_VERSION,
			CEC_ID_GIVE_OSD_NAME,
			CEC_ID_GIVE_PHYSICAL_ADDRESS,
			CEC_ID_ABORT,
			0xa9, // unrecognized
		}
		var opcode = rapid.SampledFrom(directed).Draw(t, "opcode")

		st.dispatch([]byte{header0(initiator, laddr), opcode})

		for _, frame := range drv.sent {
			assert.Equal(t, laddr, frame[0]>>4)
		}
	})
}

func TestDirectedResponsesEchoInitiator(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		var initiator = rapid.Uint8Range(0x0, 0xe).Draw(t, "initiator")

		var st, drv = new_test_state(nil)
		st.dispatch([]byte{header0(initiator, st.laddr), CEC_ID_GET_CEC_VERSION})

		require.Len(t, drv.sent, 1)
		assert.Equal(t, initiator, drv.sent[0][0]&0x0f)
	})
}

func TestFramesForOthersLeaveNoTrace(t *testing.T) {
	// Anything directed elsewhere must neither answer nor disturb
	// our state, except for the bus-wide opcodes.
	rapid.Check(t, func(t *rapid.T) {
		var opcode = rapid.Uint8().Filter(func(op uint8) bool {
			switch op {
			case CEC_ID_ROUTING_CHANGE, CEC_ID_ACTIVE_SOURCE, CEC_ID_REQUEST_ACTIVE_SOURCE,
				CEC_ID_SET_STREAM_PATH, CEC_ID_REPORT_PHYSICAL_ADDRESS, CEC_ID_DEVICE_VENDOR_ID:
				return false
			}
			return true
		}).Draw(t, "opcode")

		var st, drv = new_test_state(nil)
		var before = *st

		st.dispatch([]byte{header0(0x00, 0x05), opcode, 0x00, 0x00, 0x00, 0x00})

		assert.Empty(t, drv.sent)
		assert.Equal(t, before, *st)
	})
}

func TestActiveSourceAlwaysBroadcast(t *testing.T) {
	var drv = &test_driver{acks: map[byte]bool{}}

	active_source(drv, 0x04, 0x1234)

	require.Len(t, drv.sent, 1)
	assert.Equal(t, []byte{0x4f, 0x82, 0x12, 0x34}, drv.sent[0])
}

func TestReportPhysicalAddressEncoding(t *testing.T) {
	var drv = &test_driver{acks: map[byte]bool{}}

	report_physical_address(drv, 0x04, 0x0f, 0x2100, CEC_DEVICE_PLAYBACK)

	require.Len(t, drv.sent, 1)
	assert.Equal(t, []byte{0x4f, 0x84, 0x21, 0x00, 0x04}, drv.sent[0])
}

func TestDeviceVendorIDEncoding(t *testing.T) {
	var drv = &test_driver{acks: map[byte]bool{}}

	device_vendor_id(drv, 0x04, 0x0f, CEC_VENDOR_ID)

	require.Len(t, drv.sent, 1)
	assert.Equal(t, []byte{0x4f, 0x87, 0x00, 0x10, 0xfa}, drv.sent[0], "Vendor ID is big endian 24 bit")
}
