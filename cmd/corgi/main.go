package main

/*-------------------------------------------------------------------
 *
 * Name:        main
 *
 * Purpose:     HDMI CEC to USB HID keyboard bridge daemon.
 *
 * Description:	Wires the pieces together: load the configuration,
 *		pick a protocol log sink, open the serial line driver
 *		and the HID gadget, then hand control to the CEC
 *		responder task.
 *
 *		The protocol log is separate from this daemon's own
 *		logging on purpose: the frame log is a bounded,
 *		drop-on-overflow channel that the responder can feed
 *		without ever blocking on I/O.
 *
 *--------------------------------------------------------------------*/

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"

	corgi "github.com/doismellburning/corgi/src"
)

func main() {
	var configFileName = pflag.StringP("config-file", "c", "", "Configuration file name.  Default is to search the usual locations.")
	var writeConfig = pflag.String("write-config", "", "Write the effective configuration (defaults plus overrides) to this file and exit.")

	var cecPort = pflag.StringP("cec-port", "p", "/dev/ttyACM0", "Serial port of the CEC line driver.")
	var cecSpeed = pflag.IntP("cec-speed", "s", 115200, "Serial port speed of the CEC line driver, bps.")

	var hidDevice = pflag.StringP("hid-device", "H", "/dev/hidg0", "USB HID gadget device for keyboard reports.")

	var quiet = pflag.BoolP("quiet", "q", false, "Disable the CEC frame log.")
	var logFile = pflag.StringP("log-file", "L", "", "Write the CEC frame log to this file.")
	var logDir = pflag.StringP("log-dir", "l", "", "Write the CEC frame log to daily files in this directory.")
	var logSerial = pflag.String("log-serial", "", "Write the CEC frame log to this serial console.")
	var logSerialSpeed = pflag.Int("log-serial-speed", 115200, "Serial console speed, bps.")

	var gpioChip = pflag.String("gpio-chip", "", "GPIO chip for the status LEDs, e.g. gpiochip0.  Empty disables them.")
	var ledBlue = pflag.Int("led-blue", 23, "GPIO line offset of the blue status LED.")
	var ledGreen = pflag.Int("led-green", 24, "GPIO line offset of the green status LED.")

	pflag.Parse()

	config, err := corgi.LoadConfig(*configFileName)
	if err != nil {
		log.Warn("Using built-in configuration defaults", "reason", err)
	}

	if *writeConfig != "" {
		if err := corgi.SaveConfig(config, *writeConfig); err != nil {
			log.Fatal("Could not write configuration", "path", *writeConfig, "err", err)
		}
		log.Info("Wrote configuration", "path", *writeConfig)
		return
	}

	var sink = corgi.StderrSink()
	switch {
	case *logFile != "":
		sink, err = corgi.FileSink(*logFile)
	case *logDir != "":
		sink, err = corgi.DailyFileSink(*logDir)
	case *logSerial != "":
		sink, err = corgi.SerialSink(*logSerial, *logSerialSpeed)
	}
	if err != nil {
		log.Fatal("Could not open CEC frame log sink", "err", err)
	}

	corgi.CecLogInit(sink)
	if !*quiet {
		corgi.CecLogEnable()
	}

	if *gpioChip != "" {
		if err := corgi.BlinkInit(*gpioChip, *ledBlue, *ledGreen); err != nil {
			// LEDs are decoration; carry on without them.
			log.Warn("Status LEDs unavailable", "chip", *gpioChip, "err", err)
		}
	}

	drv, err := corgi.OpenSerialDriver(*cecPort, *cecSpeed)
	if err != nil {
		log.Fatal("Could not open CEC line driver", "port", *cecPort, "err", err)
	}

	var keyq = make(chan uint8, 8)
	go func() {
		if err := corgi.HidTask(*hidDevice, keyq); err != nil {
			log.Error("HID task stopped", "device", *hidDevice, "err", err)
		}
	}()

	log.Info("Starting CEC responder", "port", *cecPort, "hid", *hidDevice)
	if err := corgi.CecTask(config, drv, keyq); err != nil {
		log.Fatal("CEC responder failed", "err", err)
	}

	os.Exit(0)
}
