package corgi

/*------------------------------------------------------------------
 *
 * Purpose:   	USB HID keyboard task.
 *
 * Description:	Single consumer of the keystroke queue.  Each usage
 *		code becomes an 8 byte boot keyboard input report
 *		written to a USB gadget device node, typically
 *		/dev/hidg0 on a board with the HID gadget function
 *		configured.
 *
 *		HID_KEY_NONE is the release sentinel: it produces the
 *		all zero report that lifts every key.
 *
 *---------------------------------------------------------------*/

import (
	"golang.org/x/sys/unix"
)

// hid_report builds a boot keyboard input report: modifier, reserved,
// then six key slots of which we only ever use the first.
func hid_report(key uint8) [8]byte {
	var report [8]byte
	report[2] = key
	return report
}

/*------------------------------------------------------------------
 *
 * Name:	HidTask
 *
 * Purpose:	Drain the keystroke queue into the HID gadget device.
 *
 * Inputs:	device - Gadget device node, e.g. /dev/hidg0.
 *		keyq   - Usage codes from the responder, press then
 *		         release order.
 *
 * Description:	A write failure is logged and the keystroke lost; the
 *		host replugging the gadget mid-keypress is not worth
 *		more machinery than that.  Returns the error if the
 *		device cannot be opened, otherwise only once the queue
 *		is closed.
 *
 *------------------------------------------------------------------*/

func HidTask(device string, keyq <-chan uint8) error {
	fd, err := unix.Open(device, unix.O_WRONLY, 0)
	if err != nil {
		return err
	}
	defer unix.Close(fd)

	for key := range keyq {
		var report = hid_report(key)
		if _, err := unix.Write(fd, report[:]); err != nil {
			cec_log_submitf("HID report write failed: %v", err)
		}
	}
	return nil
}
