package corgi

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHidReport(t *testing.T) {
	assert.Equal(t, [8]byte{0, 0, HID_KEY_VOLUME_UP, 0, 0, 0, 0, 0}, hid_report(HID_KEY_VOLUME_UP))
}

func TestHidReportRelease(t *testing.T) {
	assert.Equal(t, [8]byte{}, hid_report(HID_KEY_NONE), "The release sentinel lifts every key")
}
