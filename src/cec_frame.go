package corgi

/*------------------------------------------------------------------
 *
 * Purpose:   	CEC frame type, the line driver contract, and the
 *		outbound frame constructors.
 *
 * Description:	A CEC frame is 1 to 16 octets.  Octet 0 is the address
 *		header: initiator in the high nibble, destination in
 *		the low nibble.  Octet 1, when present, is the opcode
 *		and the rest are operands.  A one octet frame is a
 *		polling message.
 *
 *		The bit timing lives behind the FrameDriver interface.
 *		On the original hardware that was a GPIO sampling loop;
 *		here it is whatever the daemon wired up (see the serial
 *		line driver).
 *
 *		Constructors build the exact octet sequences from the
 *		CEC 1.3a tables and hand them to the driver.  There are
 *		no retries at this level: if the wire loses a frame
 *		that is the driver's problem to report, not ours to
 *		repair.
 *
 *---------------------------------------------------------------*/

// Longest legal CEC frame.
const CEC_FRAME_MAX = 16

// Frame is one CEC frame as seen on the wire plus whether the
// destination acknowledged it.
type Frame struct {
	Data []byte
	Ack  bool
}

// FrameDriver shifts frames on and off the CEC wire.
type FrameDriver interface {
	// Init performs one-time bring-up of the line driver.
	Init() error

	// Recv blocks until a frame arrives addressed to laddr or to
	// the broadcast address 0xf, and copies it into pld including
	// the header octet.  Directed frames are acknowledged by the
	// driver before Recv returns.  The result is the number of
	// octets, 0 on a line error.
	Recv(pld []byte, laddr uint8) int

	// Send transmits one frame, arbitrating for the bus, and
	// reports whether the destination acknowledged it.  A single
	// octet frame is a polling message.
	Send(pld []byte) bool
}

// DDC is implemented by line drivers that can read the HDMI physical
// address from the downstream EDID.  0x0000 means none could be read.
type DDC interface {
	PhysicalAddress() uint16
}

// header0 packs the frame address header octet.
func header0(iaddr uint8, daddr uint8) byte {
	return byte(iaddr<<4 | daddr&0x0f)
}

// frame_send transmits and logs one outbound frame.
func frame_send(drv FrameDriver, pld []byte) bool {
	var ack = drv.Send(pld)
	cec_log_frame(Frame{Data: pld, Ack: ack}, false)
	return ack
}

// cec_ping sends a polling message to probe whether a logical address
// is claimed.  True when somebody acknowledged, i.e. the address is
// taken.
func cec_ping(drv FrameDriver, destination uint8) bool {
	var pld = []byte{header0(destination, destination)}

	return frame_send(drv, pld)
}

func cec_feature_abort(drv FrameDriver, initiator uint8, destination uint8, msg uint8, reason uint8) {
	var pld = []byte{header0(initiator, destination), CEC_ID_FEATURE_ABORT, msg, reason}

	frame_send(drv, pld)
}

func device_vendor_id(drv FrameDriver, initiator uint8, destination uint8, vendor_id uint32) {
	var pld = []byte{header0(initiator, destination), CEC_ID_DEVICE_VENDOR_ID,
		byte(vendor_id >> 16), byte(vendor_id >> 8), byte(vendor_id)}

	frame_send(drv, pld)
}

func report_power_status(drv FrameDriver, initiator uint8, destination uint8, power_status uint8) {
	var pld = []byte{header0(initiator, destination), CEC_ID_REPORT_POWER_STATUS, power_status}

	frame_send(drv, pld)
}

func set_system_audio_mode(drv FrameDriver, initiator uint8, destination uint8, mode bool) {
	var pld = []byte{header0(initiator, destination), CEC_ID_SET_SYSTEM_AUDIO_MODE, bool_operand(mode)}

	frame_send(drv, pld)
}

func report_audio_status(drv FrameDriver, initiator uint8, destination uint8, status uint8) {
	var pld = []byte{header0(initiator, destination), CEC_ID_REPORT_AUDIO_STATUS, status}

	frame_send(drv, pld)
}

func system_audio_mode_status(drv FrameDriver, initiator uint8, destination uint8, mode bool) {
	var pld = []byte{header0(initiator, destination), CEC_ID_SYSTEM_AUDIO_MODE_STATUS, bool_operand(mode)}

	frame_send(drv, pld)
}

// The OSD name is fixed.  Keeping the firmware's string means the TV
// shows the same device label whichever build is plugged in.
var osd_name = []byte("Pico-CEC")

func set_osd_name(drv FrameDriver, initiator uint8, destination uint8) {
	var pld = append([]byte{header0(initiator, destination), CEC_ID_SET_OSD_NAME}, osd_name...)

	frame_send(drv, pld)
}

func report_physical_address(drv FrameDriver, initiator uint8, destination uint8, physical_address uint16, device_type uint8) {
	var pld = []byte{header0(initiator, destination), CEC_ID_REPORT_PHYSICAL_ADDRESS,
		byte(physical_address >> 8), byte(physical_address), device_type}

	frame_send(drv, pld)
}

func report_cec_version(drv FrameDriver, initiator uint8, destination uint8) {
	var pld = []byte{header0(initiator, destination), CEC_ID_CEC_VERSION, CEC_VERSION_1_3A}

	frame_send(drv, pld)
}

func image_view_on(drv FrameDriver, initiator uint8, destination uint8) {
	var pld = []byte{header0(initiator, destination), CEC_ID_IMAGE_VIEW_ON}

	frame_send(drv, pld)
}

func active_source(drv FrameDriver, initiator uint8, physical_address uint16) {
	var pld = []byte{header0(initiator, 0x0f), CEC_ID_ACTIVE_SOURCE,
		byte(physical_address >> 8), byte(physical_address)}

	frame_send(drv, pld)
}

func menu_status(drv FrameDriver, initiator uint8, destination uint8, menu_state bool) {
	var pld = []byte{header0(initiator, destination), CEC_ID_MENU_STATUS, bool_operand(menu_state)}

	frame_send(drv, pld)
}

func bool_operand(b bool) byte {
	if b {
		return 1
	}
	return 0
}
