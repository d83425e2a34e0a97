package corgi

/*------------------------------------------------------------------
 *
 * Purpose:   	CEC opcode identifiers and their decode tables.
 *
 * Description:	One table file shared by the responder dispatch and the
 *		frame logger so the two can never disagree about what an
 *		opcode is called.
 *
 *		Only the subset of CEC 1.3a that a playback device needs
 *		is decoded.  Everything else shows up in the log as
 *		"(undecoded)" and, when addressed to us, earns a
 *		Feature Abort.
 *
 *---------------------------------------------------------------*/

// CEC opcodes, from the CEC 1.3a tables.
const (
	CEC_ID_FEATURE_ABORT                 = 0x00
	CEC_ID_IMAGE_VIEW_ON                 = 0x04
	CEC_ID_TEXT_VIEW_ON                  = 0x0d
	CEC_ID_STANDBY                       = 0x36
	CEC_ID_USER_CONTROL_PRESSED          = 0x44
	CEC_ID_USER_CONTROL_RELEASED         = 0x45
	CEC_ID_GIVE_OSD_NAME                 = 0x46
	CEC_ID_SET_OSD_NAME                  = 0x47
	CEC_ID_SYSTEM_AUDIO_MODE_REQUEST     = 0x70
	CEC_ID_GIVE_AUDIO_STATUS             = 0x71
	CEC_ID_SET_SYSTEM_AUDIO_MODE         = 0x72
	CEC_ID_REPORT_AUDIO_STATUS           = 0x7a
	CEC_ID_GIVE_SYSTEM_AUDIO_MODE_STATUS = 0x7d
	CEC_ID_SYSTEM_AUDIO_MODE_STATUS      = 0x7e
	CEC_ID_ROUTING_CHANGE                = 0x80
	CEC_ID_ACTIVE_SOURCE                 = 0x82
	CEC_ID_GIVE_PHYSICAL_ADDRESS         = 0x83
	CEC_ID_REPORT_PHYSICAL_ADDRESS       = 0x84
	CEC_ID_REQUEST_ACTIVE_SOURCE         = 0x85
	CEC_ID_SET_STREAM_PATH               = 0x86
	CEC_ID_DEVICE_VENDOR_ID              = 0x87
	CEC_ID_GIVE_DEVICE_VENDOR_ID         = 0x8c
	CEC_ID_MENU_REQUEST                  = 0x8d
	CEC_ID_MENU_STATUS                   = 0x8e
	CEC_ID_GIVE_DEVICE_POWER_STATUS      = 0x8f
	CEC_ID_REPORT_POWER_STATUS           = 0x90
	CEC_ID_GET_MENU_LANGUAGE             = 0x91
	CEC_ID_INACTIVE_SOURCE               = 0x9d
	CEC_ID_CEC_VERSION                   = 0x9e
	CEC_ID_GET_CEC_VERSION               = 0x9f
	CEC_ID_VENDOR_COMMAND_WITH_ID        = 0xa0
	CEC_ID_REQUEST_ARC_INITIATION        = 0xc3
	CEC_ID_ABORT                         = 0xff
)

// Feature Abort reason codes.
const (
	CEC_ABORT_UNRECOGNIZED   = 0x00
	CEC_ABORT_INCORRECT_MODE = 0x01
	CEC_ABORT_NO_SOURCE      = 0x02
	CEC_ABORT_INVALID        = 0x03
	CEC_ABORT_REFUSED        = 0x04
	CEC_ABORT_UNDETERMINED   = 0x05
)

// Menu Request operand values.
const (
	CEC_MENU_ACTIVATE   = 0x00
	CEC_MENU_DEACTIVATE = 0x01
	CEC_MENU_QUERY      = 0x02
)

// CEC version reported by Get CEC Version.  0x04 = 1.3a.
const CEC_VERSION_1_3A = 0x04

// Vendor ID sent in Device Vendor ID broadcasts.
const CEC_VENDOR_ID = 0x0010fa

// cec_message is a sparse opcode to mnemonic table, indexed by opcode.
// Absent entries are the empty string and callers must check before
// using one.
var cec_message = [256]string{
	CEC_ID_FEATURE_ABORT:                 "Feature Abort",
	CEC_ID_IMAGE_VIEW_ON:                 "Image View On",
	CEC_ID_TEXT_VIEW_ON:                  "Text View On",
	CEC_ID_STANDBY:                       "Standby",
	CEC_ID_USER_CONTROL_PRESSED:          "User Control Pressed",
	CEC_ID_USER_CONTROL_RELEASED:         "User Control Released",
	CEC_ID_GIVE_OSD_NAME:                 "Give OSD Name",
	CEC_ID_SET_OSD_NAME:                  "Set OSD Name",
	CEC_ID_SYSTEM_AUDIO_MODE_REQUEST:     "System Audio Mode Request",
	CEC_ID_GIVE_AUDIO_STATUS:             "Give Audio Status",
	CEC_ID_SET_SYSTEM_AUDIO_MODE:         "Set System Audio Mode",
	CEC_ID_REPORT_AUDIO_STATUS:           "Report Audio Status",
	CEC_ID_GIVE_SYSTEM_AUDIO_MODE_STATUS: "Give System Audio Mode",
	CEC_ID_SYSTEM_AUDIO_MODE_STATUS:      "System Audio Mode Status",
	CEC_ID_ROUTING_CHANGE:                "Routing Change",
	CEC_ID_ACTIVE_SOURCE:                 "Active Source",
	CEC_ID_GIVE_PHYSICAL_ADDRESS:         "Give Physical Address",
	CEC_ID_REPORT_PHYSICAL_ADDRESS:       "Report Physical Address",
	CEC_ID_REQUEST_ACTIVE_SOURCE:         "Request Active Source",
	CEC_ID_SET_STREAM_PATH:               "Set Stream Path",
	CEC_ID_DEVICE_VENDOR_ID:              "Device Vendor ID",
	CEC_ID_GIVE_DEVICE_VENDOR_ID:         "Give Device Vendor ID",
	CEC_ID_MENU_REQUEST:                  "Menu Request",
	CEC_ID_MENU_STATUS:                   "Menu Status",
	CEC_ID_GIVE_DEVICE_POWER_STATUS:      "Give Device Power Status",
	CEC_ID_REPORT_POWER_STATUS:           "Report Power Status",
	CEC_ID_GET_MENU_LANGUAGE:             "Get Menu Language",
	CEC_ID_INACTIVE_SOURCE:               "Inactive Source",
	CEC_ID_CEC_VERSION:                   "CEC Version",
	CEC_ID_GET_CEC_VERSION:               "Get CEC Version",
	CEC_ID_VENDOR_COMMAND_WITH_ID:        "Vendor Command With ID",
	CEC_ID_REQUEST_ARC_INITIATION:        "Request ARC Initiation",
	CEC_ID_ABORT:                         "Abort",
}

// cec_feature_abort_reason maps abort reason codes to text.
var cec_feature_abort_reason = [6]string{
	CEC_ABORT_UNRECOGNIZED:   "Unrecognized opcode",
	CEC_ABORT_INCORRECT_MODE: "Not in correct mode to respond",
	CEC_ABORT_NO_SOURCE:      "Cannot provide source",
	CEC_ABORT_INVALID:        "Invalid operand",
	CEC_ABORT_REFUSED:        "Refused",
	CEC_ABORT_UNDETERMINED:   "Undetermined",
}
