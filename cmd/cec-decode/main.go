package main

/*-------------------------------------------------------------------
 *
 * Name:        main
 *
 * Purpose:     Decode CEC frames from hex on standard input.
 *
 * Description:	One frame per line, octets in hex, separated by
 *		spaces or colons or nothing at all:
 *
 *			04:46
 *			0f 86 30 00
 *			4f823000
 *
 *		Each frame is printed the way the bridge's frame log
 *		would print it.  Handy for reading captures or bug
 *		reports without the hardware.
 *
 *--------------------------------------------------------------------*/

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"

	corgi "github.com/doismellburning/corgi/src"
)

func main() {
	var sent = pflag.BoolP("sent", "s", false, "Treat frames as transmitted by us rather than received.")
	var noack = pflag.BoolP("no-ack", "n", false, "Treat frames as not acknowledged.")

	pflag.Parse()

	var scanner = bufio.NewScanner(os.Stdin)
	var lineno int
	for scanner.Scan() {
		lineno++

		var text = strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		text = strings.ReplaceAll(text, ":", "")
		text = strings.ReplaceAll(text, " ", "")

		data, err := hex.DecodeString(text)
		if err != nil || len(data) == 0 || len(data) > corgi.CEC_FRAME_MAX {
			fmt.Fprintf(os.Stderr, "line %d: not a CEC frame\n", lineno)
			continue
		}

		var frame = corgi.Frame{Data: data, Ack: !*noack}
		fmt.Println(corgi.FormatFrame(frame, !*sent, 0))
	}
}
