package corgi

/*------------------------------------------------------------------
 *
 * Purpose:   	The CEC responder task.
 *
 * Description:	Masquerade as an HDMI playback device.  The task claims
 *		a logical address on the bus, then loops forever:
 *		receive a frame, dispatch on the opcode, emit whatever
 *		responses the protocol calls for, and turn user control
 *		presses into keystrokes for the HID task.
 *
 *		Ported from the RT4K-CEC / Pico-CEC firmware family,
 *		which in turn grew out of Szymon Slupik's CEC-Tiny-Pro
 *		and Thomas Sowell's AVR volume bridge.
 *
 *---------------------------------------------------------------*/

import (
	"time"
)

const NUM_LADDRESS = 4
const NUM_TYPES = 6

// Candidate logical addresses per device type.  0x0f terminates a row:
// probing it is a broadcast poll which nobody acks, so allocation
// always ends, worst case as the unregistered address.
//
// The TV, Reserved and Audio System rows look odd (all zeros, all
// 0x0f, all 0x05) but they are what the firmware shipped and a TV or
// audio system has exactly one address to be anyway.
var laddress = [NUM_TYPES][NUM_LADDRESS]uint8{
	{0x00, 0x00, 0x00, 0x00}, // TV
	{0x01, 0x02, 0x09, 0x0f}, // Recording Device
	{0x0f, 0x0f, 0x0f, 0x0f}, // Reserved
	{0x03, 0x06, 0x07, 0x0f}, // Tuner
	{0x04, 0x08, 0x0b, 0x0f}, // Playback Device
	{0x05, 0x05, 0x05, 0x05}, // Audio System
}

/* How long a keystroke may wait on a full HID queue. */
const hid_send_timeout = 10 * time.Millisecond

// cec_state is everything the responder owns.  It is touched only by
// the responder task, so none of it is locked.
type cec_state struct {
	config *CecConfig
	drv    FrameDriver
	keyq   chan<- uint8

	laddr        uint8  /* Our logical address; 0x0f until allocated. */
	paddr        uint16 /* Our physical address. */
	active_addr  uint16 /* Last seen active source. */
	audio_status bool   /* System Audio Mode. */
	menu_state   bool   /* Device menu active. */
	no_active    uint8  /* Tie-break counter for active source elections. */
}

func new_cec_state(config *CecConfig, drv FrameDriver, keyq chan<- uint8) *cec_state {
	return &cec_state{
		config: config,
		drv:    drv,
		keyq:   keyq,
		laddr:  0x0f,
	}
}

/*------------------------------------------------------------------
 *
 * Name:	allocate_logical_address
 *
 * Purpose:	Pick our logical address.
 *
 * Description:	A configured address other than 0x00/0x0f is used
 *		verbatim.  Otherwise walk the candidate row for our
 *		device type and ping each one; the first address nobody
 *		acknowledges is free and becomes ours.
 *
 *------------------------------------------------------------------*/

func (st *cec_state) allocate_logical_address() uint8 {
	if st.config.LogicalAddress != 0x00 && st.config.LogicalAddress != 0x0f {
		return st.config.LogicalAddress
	}

	var a uint8
	for i := 0; i < NUM_LADDRESS; i++ {
		a = laddress[st.config.DeviceType][i]
		cec_log_submitf("Attempting to allocate logical address 0x%01x", a)
		if !cec_ping(st.drv, a) {
			break
		}
	}

	cec_log_submitf("Allocated logical address 0x%02x", a)
	return a
}

// get_physical_address prefers the configured address, falling back to
// whatever the line driver can read from the downstream EDID.
func (st *cec_state) get_physical_address() uint16 {
	if st.config.PhysicalAddress != 0x0000 {
		return st.config.PhysicalAddress
	}
	if ddc, ok := st.drv.(DDC); ok {
		return ddc.PhysicalAddress()
	}
	return 0x0000
}

// startup brings the responder onto the bus: wait out the EDID settle
// time, initialise the line driver, then address ourselves.
func (st *cec_state) startup() error {
	time.Sleep(time.Duration(st.config.EDIDDelayMS) * time.Millisecond)

	if err := st.drv.Init(); err != nil {
		return err
	}

	st.paddr = st.get_physical_address()
	st.laddr = st.allocate_logical_address()
	return nil
}

// hid_key_send pushes one HID usage code to the HID task, waiting
// briefly and dropping on overflow.  A dropped keystroke beats a
// stalled bus.
func (st *cec_state) hid_key_send(key uint8) {
	if st.keyq == nil {
		return
	}

	var timeout = time.NewTimer(hid_send_timeout)
	defer timeout.Stop()

	select {
	case st.keyq <- key:
	case <-timeout.C:
	}
}

/*------------------------------------------------------------------
 *
 * Name:	dispatch
 *
 * Purpose:	Act on one received frame.
 *
 * Inputs:	pld - Full payload including the header octet,
 *		      at least 2 octets (polls are handled upstream).
 *
 * Description:	The big opcode switch.  Most opcodes only act when the
 *		frame was directed at us; a few are bus-wide
 *		notifications we track regardless.  Operands are never
 *		read past the reported length: a frame too short for
 *		its opcode has already been logged and is simply not
 *		acted on.
 *
 *------------------------------------------------------------------*/

func (st *cec_state) dispatch(pld []byte) {
	var initiator = (pld[0] & 0xf0) >> 4
	var destination = pld[0] & 0x0f

	var directed = destination == st.laddr
	var broadcast = destination == 0x0f

	switch pld[1] {
	case CEC_ID_IMAGE_VIEW_ON:
	case CEC_ID_TEXT_VIEW_ON:

	case CEC_ID_STANDBY:
		if directed || broadcast {
			st.active_addr = 0x0000
			blink_set_blink(BLINK_STATE_BLUE_2HZ)
		}

	case CEC_ID_SYSTEM_AUDIO_MODE_REQUEST:
		if directed {
			set_system_audio_mode(st.drv, st.laddr, initiator, st.audio_status)
		}

	case CEC_ID_GIVE_AUDIO_STATUS:
		if directed {
			report_audio_status(st.drv, st.laddr, initiator, 0x32) // volume 50%, mute off
		}

	case CEC_ID_SET_SYSTEM_AUDIO_MODE:
		if (directed || broadcast) && len(pld) > 2 {
			st.audio_status = pld[2] == 1
		}

	case CEC_ID_GIVE_SYSTEM_AUDIO_MODE_STATUS:
		if directed {
			system_audio_mode_status(st.drv, st.laddr, initiator, st.audio_status)
		}

	case CEC_ID_SYSTEM_AUDIO_MODE_STATUS:

	case CEC_ID_ROUTING_CHANGE:
		if len(pld) < 6 {
			break
		}
		st.active_addr = uint16(pld[4])<<8 | uint16(pld[5])
		st.paddr = st.get_physical_address()
		st.laddr = st.allocate_logical_address()
		if st.paddr == st.active_addr {
			image_view_on(st.drv, st.laddr, 0x00)
			active_source(st.drv, st.laddr, st.paddr)
			st.no_active = 0
		}

	case CEC_ID_ACTIVE_SOURCE:
		if len(pld) < 4 {
			break
		}
		st.active_addr = uint16(pld[2])<<8 | uint16(pld[3])
		st.no_active = 0

	case CEC_ID_REPORT_PHYSICAL_ADDRESS:
		// A fresh report from the TV means the topology may have
		// moved under us; re-derive our own addresses and
		// re-announce.
		if initiator == 0x00 && destination == 0x0f {
			st.paddr = st.get_physical_address()
			st.laddr = st.allocate_logical_address()
			if st.paddr != 0x0000 {
				report_physical_address(st.drv, st.laddr, 0x0f, st.paddr, st.config.DeviceType)
			}
		}

	case CEC_ID_REQUEST_ACTIVE_SOURCE:
		st.no_active++
		if st.paddr == st.active_addr || st.no_active > 2 {
			image_view_on(st.drv, st.laddr, 0x00)
			active_source(st.drv, st.laddr, st.paddr)
			st.no_active = 0
		}

	case CEC_ID_SET_STREAM_PATH:
		if len(pld) < 4 {
			break
		}
		if st.paddr == uint16(pld[2])<<8|uint16(pld[3]) {
			st.active_addr = st.paddr
			image_view_on(st.drv, st.laddr, 0x00)
			active_source(st.drv, st.laddr, st.paddr)
			st.menu_state = true
			menu_status(st.drv, st.laddr, 0x00, st.menu_state)
			st.no_active = 0
			blink_set_blink(BLINK_STATE_GREEN_2HZ)
		}

	case CEC_ID_DEVICE_VENDOR_ID:
		// The TV announcing itself; announce back.
		if initiator == 0x00 && destination == 0x0f {
			device_vendor_id(st.drv, st.laddr, 0x0f, CEC_VENDOR_ID)
		}

	case CEC_ID_GIVE_DEVICE_VENDOR_ID:
		if directed {
			device_vendor_id(st.drv, st.laddr, 0x0f, CEC_VENDOR_ID)
		}

	case CEC_ID_MENU_STATUS:

	case CEC_ID_MENU_REQUEST:
		if directed && len(pld) > 2 {
			switch pld[2] {
			case CEC_MENU_ACTIVATE:
				st.menu_state = true
			case CEC_MENU_DEACTIVATE:
				st.menu_state = false
			case CEC_MENU_QUERY:
			}
			menu_status(st.drv, st.laddr, initiator, st.menu_state)
		}

	case CEC_ID_GIVE_DEVICE_POWER_STATUS:
		if directed {
			var status uint8
			if st.active_addr != st.paddr {
				status = 0x01 // standby
			}
			report_power_status(st.drv, st.laddr, initiator, status)
		}

	case CEC_ID_REPORT_POWER_STATUS:
	case CEC_ID_GET_MENU_LANGUAGE:
	case CEC_ID_INACTIVE_SOURCE:
	case CEC_ID_CEC_VERSION:

	case CEC_ID_GET_CEC_VERSION:
		if directed {
			report_cec_version(st.drv, st.laddr, initiator)
		}

	case CEC_ID_GIVE_OSD_NAME:
		if directed {
			set_osd_name(st.drv, st.laddr, initiator)
		}

	case CEC_ID_SET_OSD_NAME:

	case CEC_ID_GIVE_PHYSICAL_ADDRESS:
		if directed && st.paddr != 0x0000 {
			report_physical_address(st.drv, st.laddr, 0x0f, st.paddr, st.config.DeviceType)
		}

	case CEC_ID_USER_CONTROL_PRESSED:
		if directed && len(pld) > 2 {
			blink_set(BLINK_STATE_GREEN_ON)
			var command = st.config.Keymap[pld[2]]
			if command.Name != "" {
				st.hid_key_send(command.Key)
			}
		}

	case CEC_ID_USER_CONTROL_RELEASED:
		if directed {
			blink_set(BLINK_STATE_OFF)
			st.hid_key_send(HID_KEY_NONE)
		}

	case CEC_ID_ABORT:
		if directed {
			cec_feature_abort(st.drv, st.laddr, initiator, pld[1], CEC_ABORT_REFUSED)
		}

	case CEC_ID_FEATURE_ABORT:
	case CEC_ID_VENDOR_COMMAND_WITH_ID:

	default:
		if directed {
			cec_feature_abort(st.drv, st.laddr, initiator, pld[1], CEC_ABORT_UNRECOGNIZED)
		}
	}
}

/*------------------------------------------------------------------
 *
 * Name:	CecTask
 *
 * Purpose:	Run the responder.  Never returns under normal
 *		operation.
 *
 * Inputs:	config - Configuration snapshot, ours to read forever.
 *		drv    - The line driver.
 *		keyq   - HID usage codes go here; the HID task is the
 *		         only consumer.
 *
 *------------------------------------------------------------------*/

func CecTask(config *CecConfig, drv FrameDriver, keyq chan<- uint8) error {
	var st = new_cec_state(config, drv, keyq)

	if err := st.startup(); err != nil {
		return err
	}

	for {
		var pld [CEC_FRAME_MAX]byte

		var pldcnt = st.drv.Recv(pld[:], st.laddr)
		if pldcnt == 0 || pldcnt > CEC_FRAME_MAX {
			continue
		}

		var frame = pld[:pldcnt]

		// The driver acks directed traffic for us; broadcasts
		// are never acked on the wire.
		var acked = frame[0]&0x0f != 0x0f
		cec_log_frame(Frame{Data: frame, Ack: acked}, true)

		if pldcnt > 1 {
			st.dispatch(frame)
		}
	}
}
