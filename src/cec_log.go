package corgi

/*------------------------------------------------------------------
 *
 * Purpose:   	Protocol-aware frame logging.
 *
 * Description:	Two halves.  The emitter is a task draining a bounded
 *		buffer of preformatted lines into whatever sink the
 *		daemon installed, so slow serial consoles never stall
 *		the responder.  The formatter turns a frame into one
 *		line with enough operand decoding to follow the bus by
 *		eye:
 *
 *		[0000012345] 00 <- 04: [Give OSD Name]
 *
 *		The arrow encodes direction and acknowledgement:
 *		"->" sent and acked, "~>" sent without ack,
 *		"<-" received and acked, "<~" received without ack.
 *
 *		Submission is fire and forget.  When logging is
 *		disabled lines are dropped before formatting; when the
 *		buffer is full they are dropped after a short bounded
 *		wait.  Nothing on the protocol path ever depends on a
 *		log line arriving.
 *
 *---------------------------------------------------------------*/

import (
	"fmt"
	"sync/atomic"
	"time"
)

const LOG_LINE_LENGTH = 64
const LOG_QUEUE_LENGTH = 16

/* How long a submitter may wait on a full buffer. */
const log_submit_timeout = 20 * time.Millisecond

var log_mb chan string

var log_enabled atomic.Bool

var log_epoch = time.Now()

// uptime_ms is the monotonic time since process start.  The firmware
// counted from power-on; same idea.
func uptime_ms() uint64 {
	return uint64(time.Since(log_epoch).Milliseconds())
}

/*------------------------------------------------------------------
 *
 * Name:	CecLogInit
 *
 * Purpose:	Create the message buffer and start the emitter task.
 *
 * Inputs:	sink - Called once per dequeued line.  Must not
 *		       re-enter logging.
 *
 * Description:	Logging starts disabled.  Submitters check the enable
 *		flag before formatting so a disabled log costs one
 *		atomic load per frame.
 *
 *------------------------------------------------------------------*/

func CecLogInit(sink func(line string)) {
	log_mb = make(chan string, LOG_QUEUE_LENGTH)
	log_enabled.Store(false)

	go func() {
		for line := range log_mb {
			sink(line)
		}
	}()
}

func CecLogEnable() {
	log_enabled.Store(true)
}

func CecLogDisable() {
	log_enabled.Store(false)
}

func CecLogEnabled() bool {
	return log_enabled.Load()
}

// cec_log_submit queues one line, truncating to the line limit and
// dropping on timeout.  Silent in both cases.
func cec_log_submit(line string) {
	if !log_enabled.Load() || log_mb == nil {
		return
	}

	if len(line) > LOG_LINE_LENGTH {
		line = line[:LOG_LINE_LENGTH]
	}

	var timeout = time.NewTimer(log_submit_timeout)
	defer timeout.Stop()

	select {
	case log_mb <- line:
	case <-timeout.C:
	}
}

func cec_log_submitf(format string, a ...any) {
	if !log_enabled.Load() {
		return
	}

	cec_log_submit(fmt.Sprintf(format, a...))
}

/*------------------------------------------------------------------
 *
 * Name:	FormatFrame
 *
 * Purpose:	Render one frame as a log line.
 *
 * Inputs:	frame  - Payload and ack flag.
 *		recv   - True for an inbound frame.
 *		uptime - Milliseconds to stamp the line with.
 *
 * Description:	Shared by the live frame logger and the offline
 *		cec-decode tool.  Operand decoding follows the opcode
 *		tables in cec_id.go; an opcode without an entry is
 *		printed as raw hex.  Operands shorter than the decode
 *		expects degrade to the bare mnemonic rather than being
 *		read past the reported length.
 *
 *------------------------------------------------------------------*/

func FormatFrame(frame Frame, recv bool, uptime uint64) string {
	var data = frame.Data
	if len(data) == 0 {
		return ""
	}

	var initiator = (data[0] & 0xf0) >> 4
	var destination = data[0] & 0x0f

	var arrow string
	if recv {
		if frame.Ack {
			arrow = "<-"
		} else {
			arrow = "<~"
		}
	} else {
		if frame.Ack {
			arrow = "->"
		} else {
			arrow = "~>"
		}
	}

	// Receive lines lead with us, transmit lines lead with the
	// initiator, so the local address is always on the left.
	var left, right = initiator, destination
	if recv {
		left, right = destination, initiator
	}

	var prefix = fmt.Sprintf("[%010d] %02x %s %02x", uptime, left, arrow, right)

	var line = fmt.Sprintf("%s: %s", prefix, format_frame_body(data))
	if len(line) > LOG_LINE_LENGTH {
		line = line[:LOG_LINE_LENGTH]
	}
	return line
}

func format_frame_body(data []byte) string {
	if len(data) < 2 {
		return "[Polling Message]"
	}

	var cmd = data[1]
	var name = cec_message[cmd]

	switch cmd {
	case CEC_ID_FEATURE_ABORT:
		if len(data) < 4 || data[3] >= uint8(len(cec_feature_abort_reason)) {
			break
		}
		return fmt.Sprintf("[%s][%x][%s]", name, data[2], cec_feature_abort_reason[data[3]])

	case CEC_ID_STANDBY:
		return fmt.Sprintf("[%s][%s]", name, "Display OFF")

	case CEC_ID_ROUTING_CHANGE:
		if len(data) < 6 {
			break
		}
		return fmt.Sprintf("[%s][%02x%02x -> %02x%02x]", name, data[2], data[3], data[4], data[5])

	case CEC_ID_ACTIVE_SOURCE:
		if len(data) < 4 {
			break
		}
		return fmt.Sprintf("[%s][%02x%02x Display ON]", name, data[2], data[3])

	case CEC_ID_REPORT_PHYSICAL_ADDRESS:
		if len(data) < 4 {
			break
		}
		return fmt.Sprintf("[%s] %02x%02x", name, data[2], data[3])

	case CEC_ID_USER_CONTROL_PRESSED:
		if len(data) < 3 {
			break
		}
		var key_name = cec_user_control_name[data[2]]
		if key_name == "" {
			return fmt.Sprintf("[%s] Unknown command: 0x%02x", name, data[2])
		}
		return fmt.Sprintf("[%s][%s]", name, key_name)

	case CEC_ID_VENDOR_COMMAND_WITH_ID:
		var body = "[" + name + "]"
		for _, octet := range data {
			body += fmt.Sprintf(" %02x", octet)
		}
		return body

	case CEC_ID_REPORT_POWER_STATUS:
		if len(data) < 3 {
			break
		}
		var status = "unknown"
		switch data[2] {
		case 0x00:
			status = "On"
		case 0x01:
			status = "Standby"
		case 0x02:
			status = "In transition Standby to On"
		case 0x03:
			status = "In transition On to Standby"
		}
		return fmt.Sprintf("[%s][%s]", name, status)

	case CEC_ID_MENU_STATUS, CEC_ID_MENU_REQUEST:
		if len(data) < 3 {
			break
		}
		return fmt.Sprintf("[%s][%02x]", name, data[2])
	}

	if name == "" {
		return fmt.Sprintf("[%x] (undecoded)", cmd)
	}
	return fmt.Sprintf("[%s]", name)
}

// cec_log_frame logs one frame on the protocol log channel.
func cec_log_frame(frame Frame, recv bool) {
	if !log_enabled.Load() {
		return
	}

	cec_log_submit(FormatFrame(frame, recv, uptime_ms()))
}
