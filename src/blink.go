package corgi

/*------------------------------------------------------------------
 *
 * Purpose:   	Status LED task.
 *
 * Description:	Two LEDs on GPIO lines show what the bridge is up to:
 *		blue blinking for standby, green blinking while we are
 *		the selected source, green solid while a key is held.
 *
 *		Signalling is fire and forget.  The responder pokes a
 *		state into a small channel and moves on; if nobody ever
 *		called BlinkInit, or the channel is momentarily full,
 *		the poke is dropped.  LEDs are decoration, not protocol.
 *
 *---------------------------------------------------------------*/

import (
	"time"

	"github.com/warthog618/go-gpiocdev"
)

type blink_state int

const (
	BLINK_STATE_OFF blink_state = iota
	BLINK_STATE_GREEN_ON
	BLINK_STATE_GREEN_2HZ
	BLINK_STATE_BLUE_2HZ
)

var blink_ch chan blink_state

/*------------------------------------------------------------------
 *
 * Name:	BlinkInit
 *
 * Purpose:	Claim the LED lines and start the blinker task.
 *
 * Inputs:	chip  - GPIO chip name, e.g. "gpiochip0".
 *		blue  - Line offset of the blue LED.
 *		green - Line offset of the green LED.
 *
 *------------------------------------------------------------------*/

func BlinkInit(chip string, blue int, green int) error {
	blue_led, err := gpiocdev.RequestLine(chip, blue, gpiocdev.AsOutput(0))
	if err != nil {
		return err
	}
	green_led, err := gpiocdev.RequestLine(chip, green, gpiocdev.AsOutput(0))
	if err != nil {
		blue_led.Close()
		return err
	}

	blink_ch = make(chan blink_state, 4)

	go blink_task(blue_led, green_led)
	return nil
}

// blink_set switches to a steady state.
func blink_set(state blink_state) {
	if blink_ch == nil {
		return
	}
	select {
	case blink_ch <- state:
	default:
	}
}

// blink_set_blink switches to a blinking pattern.  Same plumbing as
// blink_set; the split mirrors the firmware API the responder was
// written against.
func blink_set_blink(state blink_state) {
	blink_set(state)
}

func blink_task(blue_led *gpiocdev.Line, green_led *gpiocdev.Line) {
	var state = BLINK_STATE_OFF
	var phase int

	// 2 Hz blink = toggle every quarter second.
	var tick = time.NewTicker(250 * time.Millisecond)
	defer tick.Stop()

	for {
		select {
		case state = <-blink_ch:
			phase = 0
		case <-tick.C:
			phase ^= 1
		}

		var blue, green int
		switch state {
		case BLINK_STATE_GREEN_ON:
			green = 1
		case BLINK_STATE_GREEN_2HZ:
			green = phase
		case BLINK_STATE_BLUE_2HZ:
			blue = phase
		}

		blue_led.SetValue(blue)
		green_led.SetValue(green)
	}
}
