package corgi

/*------------------------------------------------------------------
 *
 * Purpose:   	CEC line driver spoken over a serial port.
 *
 * Description:	The bit timing a CEC bus needs (microsecond sampling of
 *		an open drain wire) is no job for a multitasking host,
 *		so it stays on a small MCU exactly as it did in the
 *		original hardware.  The MCU ships whole frames to us
 *		over a serial link and we ship frames back, using good
 *		old KISS style framing:
 *
 *			FEND (0xC0)
 *			command byte
 *			data - FEND/FESC escaped
 *			FEND
 *
 *		Commands from the MCU:
 *
 *			0x00	Received CEC frame, payload attached.
 *			0x02	Transmit status, one byte, 1 = acked.
 *			0x04	Physical address report, two bytes,
 *				big endian, read from the EDID.
 *
 *		Commands to the MCU:
 *
 *			0x01	Transmit CEC frame, payload attached.
 *			0x03	Physical address query.
 *			0x05	Listen address, one byte.  The MCU
 *				acknowledges directed frames for this
 *				logical address on the wire.
 *
 *---------------------------------------------------------------*/

import (
	"fmt"
	"time"

	"github.com/pkg/term"
)

const FEND = 0xc0
const FESC = 0xdb
const TFEND = 0xdc
const TFESC = 0xdd

const (
	SERIAL_CMD_FRAME_RX   = 0x00
	SERIAL_CMD_FRAME_TX   = 0x01
	SERIAL_CMD_TX_STATUS  = 0x02
	SERIAL_CMD_PADDR_GET  = 0x03
	SERIAL_CMD_PADDR      = 0x04
	SERIAL_CMD_SET_LISTEN = 0x05
)

/* How long to wait for the MCU to report a transmit result. */
const serial_tx_timeout = 500 * time.Millisecond

/* And for an EDID read. */
const serial_paddr_timeout = 2 * time.Second

// SerialDriver is a FrameDriver backed by an external line driver MCU
// on a serial port.  It also answers DDC physical address queries by
// asking the MCU, which sits on the HDMI connector and can read the
// downstream EDID.
type SerialDriver struct {
	port *term.Term

	rx_frames chan []byte
	tx_status chan byte
	paddr     chan uint16

	listen uint8 /* Listen address last pushed to the MCU. */
}

/*------------------------------------------------------------------
 *
 * Name:	OpenSerialDriver
 *
 * Purpose:	Open the serial port to the line driver MCU.
 *
 * Inputs:	device - e.g. /dev/ttyACM0.
 *		baud   - Speed, or 0 to leave the port alone.
 *
 *------------------------------------------------------------------*/

func OpenSerialDriver(device string, baud int) (*SerialDriver, error) {
	port, err := term.Open(device, term.RawMode)
	if err != nil {
		return nil, fmt.Errorf("could not open serial port %s: %w", device, err)
	}

	switch baud {
	case 0: /* Leave it alone. */
	case 1200, 2400, 4800, 9600, 19200, 38400, 57600, 115200:
		port.SetSpeed(baud)
	default:
		port.Close()
		return nil, fmt.Errorf("unsupported serial speed %d", baud)
	}

	var drv = &SerialDriver{
		port:      port,
		rx_frames: make(chan []byte, 4),
		tx_status: make(chan byte, 1),
		paddr:     make(chan uint16, 1),
		listen:    0x0f,
	}
	return drv, nil
}

// Init starts the reader task that demultiplexes MCU traffic.
func (drv *SerialDriver) Init() error {
	go drv.reader()
	return nil
}

// write_command sends one escaped, FEND delimited command.
func (drv *SerialDriver) write_command(cmd byte, data []byte) error {
	var out = []byte{FEND, cmd}

	for _, b := range data {
		switch b {
		case FEND:
			out = append(out, FESC, TFEND)
		case FESC:
			out = append(out, FESC, TFESC)
		default:
			out = append(out, b)
		}
	}
	out = append(out, FEND)

	_, err := drv.port.Write(out)
	return err
}

// reader accumulates bytes into frames and routes each completed
// command to its consumer.  Runs until the port dies.
func (drv *SerialDriver) reader() {
	var frame []byte
	var escaped bool

	var one = make([]byte, 1)
	for {
		n, err := drv.port.Read(one)
		if n != 1 {
			if err != nil {
				cec_log_submitf("serial line driver read failed: %v", err)
				return
			}
			continue
		}

		var b = one[0]
		switch {
		case b == FEND:
			if len(frame) > 0 {
				drv.route(frame[0], frame[1:])
			}
			frame = frame[:0]
			escaped = false
		case b == FESC:
			escaped = true
		case escaped:
			escaped = false
			switch b {
			case TFEND:
				frame = append(frame, FEND)
			case TFESC:
				frame = append(frame, FESC)
			default:
				// Malformed escape.  Drop the frame.
				frame = frame[:0]
			}
		default:
			frame = append(frame, b)
		}
	}
}

func (drv *SerialDriver) route(cmd byte, data []byte) {
	switch cmd {
	case SERIAL_CMD_FRAME_RX:
		if len(data) == 0 || len(data) > CEC_FRAME_MAX {
			return
		}
		var pld = make([]byte, len(data))
		copy(pld, data)
		select {
		case drv.rx_frames <- pld:
		default:
			// Responder has fallen behind; losing a frame here
			// is no different from losing it on the wire.
		}

	case SERIAL_CMD_TX_STATUS:
		if len(data) < 1 {
			return
		}
		select {
		case drv.tx_status <- data[0]:
		default:
		}

	case SERIAL_CMD_PADDR:
		if len(data) < 2 {
			return
		}
		select {
		case drv.paddr <- uint16(data[0])<<8 | uint16(data[1]):
		default:
		}
	}
}

// Recv blocks for the next frame addressed to laddr or broadcast.  The
// MCU does the address filtering and wire acking once told which
// address to listen on.
func (drv *SerialDriver) Recv(pld []byte, laddr uint8) int {
	if laddr != drv.listen {
		drv.listen = laddr
		drv.write_command(SERIAL_CMD_SET_LISTEN, []byte{laddr})
	}

	var frame = <-drv.rx_frames
	return copy(pld, frame)
}

// Send pushes one frame to the MCU and waits for the transmit report.
// No report within the timeout counts as not acked.
func (drv *SerialDriver) Send(pld []byte) bool {
	if err := drv.write_command(SERIAL_CMD_FRAME_TX, pld); err != nil {
		return false
	}

	var timeout = time.NewTimer(serial_tx_timeout)
	defer timeout.Stop()

	select {
	case status := <-drv.tx_status:
		return status == 1
	case <-timeout.C:
		return false
	}
}

// PhysicalAddress asks the MCU for the EDID derived physical address.
// 0x0000 when it has none or does not answer.
func (drv *SerialDriver) PhysicalAddress() uint16 {
	if err := drv.write_command(SERIAL_CMD_PADDR_GET, nil); err != nil {
		return 0x0000
	}

	var timeout = time.NewTimer(serial_paddr_timeout)
	defer timeout.Stop()

	select {
	case paddr := <-drv.paddr:
		return paddr
	case <-timeout.C:
		return 0x0000
	}
}

// Close shuts the port.  The reader task exits on the resulting read
// error.
func (drv *SerialDriver) Close() {
	drv.port.Close()
}
