package corgi

/*------------------------------------------------------------------
 *
 * Purpose:   	Sinks for the protocol log.
 *
 * Description:	The log emitter does not care where lines go; the
 *		daemon picks one of these at startup.  Choices are
 *		stderr, a fixed log file, a directory of daily files,
 *		or a serial console for the case where the bridge is a
 *		headless box and the log is read over a debug cable.
 *
 *		Sinks run on the emitter task only, so none of them
 *		lock anything.
 *
 *---------------------------------------------------------------*/

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/lestrrat-go/strftime"
	"github.com/pkg/term"
)

// StderrSink logs to standard error.
func StderrSink() func(string) {
	return func(line string) {
		fmt.Fprintln(os.Stderr, line)
	}
}

// FileSink appends lines to one fixed file.
func FileSink(path string) (func(string), error) {
	fp, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}

	return func(line string) {
		fmt.Fprintln(fp, line)
	}, nil
}

/* Daily file name pattern under the log directory. */
const daily_log_pattern = "corgi-%Y-%m-%d.log"

/*------------------------------------------------------------------
 *
 * Name:	DailyFileSink
 *
 * Purpose:	Append lines to automatically named daily files.
 *
 * Inputs:	dir - Existing directory to create the files in.
 *
 * Description:	The file stays open between lines; it is reopened only
 *		when the date rolls over and the generated name
 *		changes.
 *
 *------------------------------------------------------------------*/

func DailyFileSink(dir string) (func(string), error) {
	stat, err := os.Stat(dir)
	if err != nil {
		return nil, err
	}
	if !stat.IsDir() {
		return nil, fmt.Errorf("log location %s is not a directory", dir)
	}

	pattern, err := strftime.New(daily_log_pattern)
	if err != nil {
		return nil, err
	}

	var fp *os.File
	var open_fname string

	return func(line string) {
		var fname = filepath.Join(dir, pattern.FormatString(time.Now()))

		if fname != open_fname {
			if fp != nil {
				fp.Close()
				fp = nil
			}
			var err error
			fp, err = os.OpenFile(fname, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
			if err != nil {
				return
			}
			open_fname = fname
		}

		fmt.Fprintln(fp, line)
	}, nil
}

// SerialSink writes lines to a serial console.
func SerialSink(device string, baud int) (func(string), error) {
	port, err := term.Open(device, term.RawMode)
	if err != nil {
		return nil, fmt.Errorf("could not open serial console %s: %w", device, err)
	}

	if baud != 0 {
		port.SetSpeed(baud)
	}

	return func(line string) {
		port.Write([]byte(line + "\r\n"))
	}, nil
}
