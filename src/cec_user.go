package corgi

/*------------------------------------------------------------------
 *
 * Purpose:   	CEC user control codes: names and the default keymap.
 *
 * Description:	The operand of User Control Pressed is a "UI Command"
 *		from the CEC remote control tables.  Two sparse
 *		256-entry tables live here: one maps the code to its
 *		CEC name for the frame log, the other maps it to the
 *		USB HID keyboard usage code pushed to the HID task.
 *
 *		The default HID assignments suit a media player (Kodi
 *		style).  Individual entries can be overridden from the
 *		configuration file.
 *
 *---------------------------------------------------------------*/

// USB HID keyboard usage codes used by the default keymap.
const (
	HID_KEY_NONE        = 0x00
	HID_KEY_C           = 0x06
	HID_KEY_F           = 0x09
	HID_KEY_I           = 0x0c
	HID_KEY_R           = 0x15
	HID_KEY_X           = 0x1b
	HID_KEY_1           = 0x1e
	HID_KEY_2           = 0x1f
	HID_KEY_3           = 0x20
	HID_KEY_4           = 0x21
	HID_KEY_5           = 0x22
	HID_KEY_6           = 0x23
	HID_KEY_7           = 0x24
	HID_KEY_8           = 0x25
	HID_KEY_9           = 0x26
	HID_KEY_0           = 0x27
	HID_KEY_ENTER       = 0x28
	HID_KEY_ESCAPE      = 0x29
	HID_KEY_BACKSPACE   = 0x2a
	HID_KEY_SPACE       = 0x2c
	HID_KEY_F1          = 0x3a
	HID_KEY_F2          = 0x3b
	HID_KEY_F3          = 0x3c
	HID_KEY_F4          = 0x3d
	HID_KEY_HOME        = 0x4a
	HID_KEY_PAGE_UP     = 0x4b
	HID_KEY_PAGE_DOWN   = 0x4e
	HID_KEY_ARROW_RIGHT = 0x4f
	HID_KEY_ARROW_LEFT  = 0x50
	HID_KEY_ARROW_DOWN  = 0x51
	HID_KEY_ARROW_UP    = 0x52
	HID_KEY_MUTE        = 0x7f
	HID_KEY_VOLUME_UP   = 0x80
	HID_KEY_VOLUME_DOWN = 0x81
)

// cec_user_control_name is the UI Command to name table, indexed by
// the User Control Pressed operand.  Absent entries are "".
var cec_user_control_name = [256]string{
	0x00: "Select",
	0x01: "Up",
	0x02: "Down",
	0x03: "Left",
	0x04: "Right",
	0x05: "Right-Up",
	0x06: "Right-Down",
	0x07: "Left-Up",
	0x08: "Left-Down",
	0x09: "Root Menu",
	0x0a: "Setup Menu",
	0x0b: "Contents Menu",
	0x0c: "Favorite Menu",
	0x0d: "Exit",
	0x20: "Number 0",
	0x21: "Number 1",
	0x22: "Number 2",
	0x23: "Number 3",
	0x24: "Number 4",
	0x25: "Number 5",
	0x26: "Number 6",
	0x27: "Number 7",
	0x28: "Number 8",
	0x29: "Number 9",
	0x2a: "Dot",
	0x2b: "Enter",
	0x2c: "Clear",
	0x2f: "Next Favorite",
	0x30: "Channel Up",
	0x31: "Channel Down",
	0x32: "Previous Channel",
	0x33: "Sound Select",
	0x34: "Input Select",
	0x35: "Display Information",
	0x36: "Help",
	0x37: "Page Up",
	0x38: "Page Down",
	0x40: "Power",
	0x41: "Volume Up",
	0x42: "Volume Down",
	0x43: "Mute",
	0x44: "Play",
	0x45: "Stop",
	0x46: "Pause",
	0x47: "Record",
	0x48: "Rewind",
	0x49: "Fast Forward",
	0x4a: "Eject",
	0x4b: "Forward",
	0x4c: "Backward",
	0x50: "Angle",
	0x51: "Sub Picture",
	0x52: "Video on Demand",
	0x53: "Electronic Program Guide",
	0x54: "Timer Programming",
	0x55: "Initial Configuration",
	0x60: "Play Function",
	0x61: "Pause-Play Function",
	0x62: "Record Function",
	0x64: "Stop Function",
	0x65: "Mute Function",
	0x66: "Restore Volume Function",
	0x67: "Tune Function",
	0x68: "Select Media Function",
	0x69: "Select A/V Input Function",
	0x6a: "Select Audio Input Function",
	0x6b: "Power Toggle Function",
	0x6c: "Power Off Function",
	0x6d: "Power On Function",
	0x71: "F1 (Blue)",
	0x72: "F2 (Red)",
	0x73: "F3 (Green)",
	0x74: "F4 (Yellow)",
	0x75: "F5",
	0x76: "Data",
}

// default_keymap builds the built-in UI Command to HID usage table.
// An entry with an empty name is ignored by the responder.
func default_keymap() [256]Command {
	var keymap [256]Command

	var set = func(code int, key uint8) {
		keymap[code] = Command{Name: cec_user_control_name[code], Key: key}
	}

	set(0x00, HID_KEY_ENTER)       /* Select */
	set(0x01, HID_KEY_ARROW_UP)    /* Up */
	set(0x02, HID_KEY_ARROW_DOWN)  /* Down */
	set(0x03, HID_KEY_ARROW_LEFT)  /* Left */
	set(0x04, HID_KEY_ARROW_RIGHT) /* Right */
	set(0x09, HID_KEY_C)           /* Root Menu */
	set(0x0b, HID_KEY_C)           /* Contents Menu */
	set(0x0d, HID_KEY_ESCAPE)      /* Exit */

	set(0x20, HID_KEY_0)
	set(0x21, HID_KEY_1)
	set(0x22, HID_KEY_2)
	set(0x23, HID_KEY_3)
	set(0x24, HID_KEY_4)
	set(0x25, HID_KEY_5)
	set(0x26, HID_KEY_6)
	set(0x27, HID_KEY_7)
	set(0x28, HID_KEY_8)
	set(0x29, HID_KEY_9)

	set(0x2b, HID_KEY_ENTER)     /* Enter */
	set(0x2c, HID_KEY_BACKSPACE) /* Clear */

	set(0x30, HID_KEY_PAGE_UP)   /* Channel Up */
	set(0x31, HID_KEY_PAGE_DOWN) /* Channel Down */
	set(0x35, HID_KEY_I)         /* Display Information */
	set(0x37, HID_KEY_PAGE_UP)   /* Page Up */
	set(0x38, HID_KEY_PAGE_DOWN) /* Page Down */

	set(0x41, HID_KEY_VOLUME_UP)
	set(0x42, HID_KEY_VOLUME_DOWN)
	set(0x43, HID_KEY_MUTE)

	set(0x44, HID_KEY_SPACE) /* Play */
	set(0x45, HID_KEY_X)     /* Stop */
	set(0x46, HID_KEY_SPACE) /* Pause */
	set(0x48, HID_KEY_R)     /* Rewind */
	set(0x49, HID_KEY_F)     /* Fast Forward */

	set(0x71, HID_KEY_F1) /* F1 (Blue) */
	set(0x72, HID_KEY_F2) /* F2 (Red) */
	set(0x73, HID_KEY_F3) /* F3 (Green) */
	set(0x74, HID_KEY_F4) /* F4 (Yellow) */

	return keymap
}
