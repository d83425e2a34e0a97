// Package corgi is a Go port of the Pico-CEC family of HDMI-CEC to
// USB HID keyboard bridges: it sits on the CEC bus as a playback
// device and turns TV remote presses into keystrokes for a host.
package corgi
