package corgi

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatFrameArrows(t *testing.T) {
	var frame = []byte{0x04, CEC_ID_GIVE_OSD_NAME}

	assert.Equal(t, "[0000000000] 04 <- 00: [Give OSD Name]",
		FormatFrame(Frame{Data: frame, Ack: true}, true, 0))
	assert.Equal(t, "[0000000000] 04 <~ 00: [Give OSD Name]",
		FormatFrame(Frame{Data: frame, Ack: false}, true, 0))
	assert.Equal(t, "[0000000000] 00 -> 04: [Give OSD Name]",
		FormatFrame(Frame{Data: frame, Ack: true}, false, 0))
	assert.Equal(t, "[0000000000] 00 ~> 04: [Give OSD Name]",
		FormatFrame(Frame{Data: frame, Ack: false}, false, 0))
}

func TestFormatFrameUptime(t *testing.T) {
	var line = FormatFrame(Frame{Data: []byte{0x04, 0x9e, 0x04}, Ack: true}, true, 12345)

	assert.Equal(t, "[0000012345] 04 <- 00: [CEC Version]", line)
}

func TestFormatPollingMessage(t *testing.T) {
	var line = FormatFrame(Frame{Data: []byte{0x44}, Ack: true}, false, 0)

	assert.Equal(t, "[0000000000] 04 -> 04: [Polling Message]", line)
}

func TestFormatFrameOperands(t *testing.T) {
	var cases = []struct {
		data []byte
		body string
	}{
		{[]byte{0x04, 0x00, 0xaa, 0x00}, "[Feature Abort][aa][Unrecognized opcode]"},
		{[]byte{0x04, 0x00, 0x44, 0x04}, "[Feature Abort][44][Refused]"},
		{[]byte{0x0f, 0x36}, "[Standby][Display OFF]"},
		{[]byte{0x0f, 0x80, 0x10, 0x00, 0x30, 0x00}, "[Routing Change][1000 -> 3000]"},
		{[]byte{0x4f, 0x82, 0x30, 0x00}, "[Active Source][3000 Display ON]"},
		{[]byte{0x0f, 0x84, 0x30, 0x00, 0x04}, "[Report Physical Address] 3000"},
		{[]byte{0x04, 0x44, 0x41}, "[User Control Pressed][Volume Up]"},
		{[]byte{0x04, 0x44, 0xfe}, "[User Control Pressed] Unknown command: 0xfe"},
		{[]byte{0x04, 0x90, 0x00}, "[Report Power Status][On]"},
		{[]byte{0x04, 0x90, 0x01}, "[Report Power Status][Standby]"},
		{[]byte{0x04, 0x90, 0x02}, "[Report Power Status][In transition Standby to On]"},
		{[]byte{0x04, 0x90, 0x03}, "[Report Power Status][In transition On to Standby]"},
		{[]byte{0x04, 0x8e, 0x01}, "[Menu Status][01]"},
		{[]byte{0x04, 0x8d, 0x02}, "[Menu Request][02]"},
		{[]byte{0x04, 0xa0, 0x00, 0x10, 0xfa}, "[Vendor Command With ID] 04 a0 00 10 fa"},
		{[]byte{0x04, 0xaa}, "[aa] (undecoded)"},
		{[]byte{0x04, 0x46}, "[Give OSD Name]"},
	}

	for _, c := range cases {
		var line = FormatFrame(Frame{Data: c.data, Ack: true}, true, 0)
		// The whole line, decoded body included, is cut at
		// LOG_LINE_LENGTH.
		var want = fmt.Sprintf("[0000000000] %02x <- %02x: %s", c.data[0]&0x0f, c.data[0]>>4, c.body)
		if len(want) > LOG_LINE_LENGTH {
			want = want[:LOG_LINE_LENGTH]
		}
		assert.Equalf(t, want, line, "opcode 0x%02x", c.data[1])
	}
}

func TestFormatFrameShortOperands(t *testing.T) {
	// Operands shorter than the decode expects degrade to the bare
	// mnemonic instead of reading past the end.
	assert.Contains(t, FormatFrame(Frame{Data: []byte{0x04, 0x00}, Ack: true}, true, 0),
		"[Feature Abort]")
	assert.Contains(t, FormatFrame(Frame{Data: []byte{0x0f, 0x80, 0x10}, Ack: true}, true, 0),
		"[Routing Change]")
	assert.Contains(t, FormatFrame(Frame{Data: []byte{0x4f, 0x82}, Ack: true}, true, 0),
		"[Active Source]")
	assert.Contains(t, FormatFrame(Frame{Data: []byte{0x04, 0x90}, Ack: true}, true, 0),
		"[Report Power Status]")
}

func TestFormatFrameTruncates(t *testing.T) {
	// A full length vendor command overflows the line limit; it is
	// cut, not grown.
	var data = make([]byte, CEC_FRAME_MAX)
	data[0] = 0x04
	data[1] = CEC_ID_VENDOR_COMMAND_WITH_ID

	var line = FormatFrame(Frame{Data: data, Ack: true}, true, 0)

	assert.Len(t, line, LOG_LINE_LENGTH)
}

func TestFormatFrameStable(t *testing.T) {
	var frame = Frame{Data: []byte{0x0f, 0x80, 0x10, 0x00, 0x30, 0x00}, Ack: true}

	var first = FormatFrame(frame, true, 7)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, FormatFrame(frame, true, 7))
	}
}

func TestLogEmitter(t *testing.T) {
	var lines = make(chan string, LOG_QUEUE_LENGTH)
	CecLogInit(func(line string) { lines <- line })
	defer CecLogDisable()

	cec_log_submit("dropped while disabled")
	assert.False(t, CecLogEnabled())

	CecLogEnable()
	cec_log_submitf("hello %d", 7)

	select {
	case line := <-lines:
		assert.Equal(t, "hello 7", line)
	case <-time.After(time.Second):
		t.Fatal("emitter never delivered the line")
	}

	assert.Empty(t, lines, "the disabled submission must not surface")
}

func TestLogSubmitTruncates(t *testing.T) {
	var lines = make(chan string, LOG_QUEUE_LENGTH)
	CecLogInit(func(line string) { lines <- line })
	CecLogEnable()
	defer CecLogDisable()

	var long = make([]byte, 3*LOG_LINE_LENGTH)
	for i := range long {
		long[i] = 'x'
	}
	cec_log_submit(string(long))

	select {
	case line := <-lines:
		require.Len(t, line, LOG_LINE_LENGTH)
	case <-time.After(time.Second):
		t.Fatal("emitter never delivered the line")
	}
}

func TestLogOverflowDrops(t *testing.T) {
	// No emitter draining: fill the buffer and keep submitting.
	// Every extra line must come back within the bounded wait
	// instead of hanging the caller.
	log_mb = make(chan string, LOG_QUEUE_LENGTH)
	CecLogEnable()
	defer CecLogDisable()

	var start = time.Now()
	for i := 0; i < LOG_QUEUE_LENGTH+3; i++ {
		cec_log_submit("line")
	}
	var elapsed = time.Since(start)

	assert.Len(t, log_mb, LOG_QUEUE_LENGTH)
	assert.Less(t, elapsed, time.Second, "submitters are bounded, not blocked")
}
