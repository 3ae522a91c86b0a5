/* ipp-print - IPP print client with PWG Raster payload generation
 *
 * The main function
 */

package main

import (
	"errors"
	"fmt"
	"os"
	"os/user"
	"strconv"
	"strings"
)

const usageText = `Usage:
    %s mode [options] [arguments]

Modes are:
    print file    - render the image file and submit it as a
                    print job
    attrs         - query printer attributes
    jobs          - list jobs the printer has queued
    cancel job-id - cancel a job
    discover      - browse the local network for IPP printers
    decode in out - unpack a raster stream into netpbm images

Options are
    -p uri        - printer URI: ipp://, ipps://, http://, https://,
                    or usb:[vid:pid] for IPP-over-USB printers
    -m mode       - color mode: srgb, gray or bw
    -r dpi        - raster resolution, dots per inch
    -s name       - media size, by self-describing name
    -n copies     - number of copies
    -d            - print on both sides of the sheet
    -t title      - job name; the file name, when not given
    -u name       - requesting user name
    -c path       - additional configuration file
    -v            - log debug messages
    -vv           - log debug messages and protocol traces

Media sizes are
    %s
`

// RunMode represents the program run mode
type RunMode int

// Run modes:
//
//	RunPrint    - render an image file and submit it as a print job
//	RunAttrs    - query printer attributes
//	RunJobs     - list jobs the printer has queued
//	RunCancel   - cancel a job
//	RunDiscover - browse the local network for IPP printers
//	RunDecode   - unpack a raster stream into netpbm images
const (
	RunDefault RunMode = iota
	RunPrint
	RunAttrs
	RunJobs
	RunCancel
	RunDiscover
	RunDecode
)

// String returns RunMode name
func (m RunMode) String() string {
	switch m {
	case RunDefault:
		return "default"
	case RunPrint:
		return "print"
	case RunAttrs:
		return "attrs"
	case RunJobs:
		return "jobs"
	case RunCancel:
		return "cancel"
	case RunDiscover:
		return "discover"
	case RunDecode:
		return "decode"
	}

	return fmt.Sprintf("unknown (%d)", int(m))
}

// options represents the program invocation parameters
type options struct {
	mode    RunMode // Run mode
	file    string  // Input file (print, decode)
	out     string  // Output file (decode)
	jobID   int     // Job to cancel
	uri     string  // -p: printer URI
	color   string  // -m: color mode
	res     int     // -r: resolution
	media   string  // -s: media size name
	copies  int     // -n: number of copies
	duplex  bool    // -d: print on both sides
	title   string  // -t: job name
	user    string  // -u: requesting user name
	conf    string  // -c: additional configuration file
	verbose int     // -v / -vv
}

// usage prints detailed usage and exits
func usage() {
	fmt.Printf(usageText, os.Args[0],
		strings.Join(MediaNames(), "\n    "))
	os.Exit(0)
}

// usageError prints usage error and exits
func usageError(format string, args ...interface{}) {
	if format != "" {
		fmt.Printf(format+"\n", args...)
	}

	fmt.Printf("Try %s -h for more information\n", os.Args[0])
	os.Exit(1)
}

// die prints an error message and exits
func die(format string, args ...interface{}) {
	Log.Error(format, args...)
	os.Exit(1)
}

// parseArgv parses the program invocation parameters
func parseArgv(argv []string) (*options, error) {
	opts := &options{
		res:    -1,
		copies: -1,
	}

	var positional []string

	for i := 0; i < len(argv); i++ {
		arg := argv[i]

		switch arg {
		case "-h", "-help", "--help":
			usage()

		case "-p", "-m", "-r", "-s", "-n", "-t", "-u", "-c":
			if i+1 == len(argv) {
				return nil, fmt.Errorf(
					"option %s requires an argument", arg)
			}

			i++
			value := argv[i]

			switch arg {
			case "-p":
				opts.uri = value
			case "-m":
				opts.color = value
			case "-r":
				n, err := strconv.Atoi(value)
				if err != nil {
					return nil, fmt.Errorf(
						"-r: invalid number %q", value)
				}
				opts.res = n
			case "-s":
				opts.media = value
			case "-n":
				n, err := strconv.Atoi(value)
				if err != nil {
					return nil, fmt.Errorf(
						"-n: invalid number %q", value)
				}
				opts.copies = n
			case "-t":
				opts.title = value
			case "-u":
				opts.user = value
			case "-c":
				opts.conf = value
			}

		case "-d":
			opts.duplex = true

		case "-v":
			opts.verbose = 1

		case "-vv":
			opts.verbose = 2

		default:
			if strings.HasPrefix(arg, "-") {
				return nil, fmt.Errorf("invalid option %s", arg)
			}

			positional = append(positional, arg)
		}
	}

	if len(positional) == 0 {
		return nil, errors.New("run mode expected")
	}

	mode := positional[0]
	positional = positional[1:]

	switch mode {
	case "print":
		opts.mode = RunPrint
	case "attrs":
		opts.mode = RunAttrs
	case "jobs":
		opts.mode = RunJobs
	case "cancel":
		opts.mode = RunCancel
	case "discover":
		opts.mode = RunDiscover
	case "decode":
		opts.mode = RunDecode
	default:
		return nil, fmt.Errorf("invalid mode %q", mode)
	}

	switch opts.mode {
	case RunPrint:
		if len(positional) != 1 {
			return nil, errors.New("print: file expected")
		}
		opts.file = positional[0]

	case RunCancel:
		if len(positional) != 1 {
			return nil, errors.New("cancel: job-id expected")
		}

		id, err := strconv.Atoi(positional[0])
		if err != nil || id <= 0 {
			return nil, fmt.Errorf(
				"cancel: invalid job-id %q", positional[0])
		}
		opts.jobID = id

	case RunDecode:
		if len(positional) != 2 {
			return nil, errors.New(
				"decode: input and output files expected")
		}
		opts.file = positional[0]
		opts.out = positional[1]

	default:
		if len(positional) != 0 {
			return nil, fmt.Errorf("%s: unexpected argument %q",
				mode, positional[0])
		}
	}

	return opts, nil
}

// apply merges command line options over the configuration
func (opts *options) apply() error {
	if opts.uri != "" {
		Conf.PrinterURI = opts.uri
	}

	if opts.color != "" {
		if _, ok := rasterModes[opts.color]; !ok {
			return errors.New("-m: must be srgb, gray or bw")
		}
		Conf.ColorMode = opts.color
	}

	if opts.res != -1 {
		if opts.res < 72 || opts.res > 2400 {
			return errors.New("-r: must be in range 72...2400")
		}
		Conf.Resolution = opts.res
	}

	if opts.media != "" {
		if _, ok := MediaByName(opts.media); !ok {
			return fmt.Errorf("-s: unknown media size %q", opts.media)
		}
		Conf.Media = opts.media
	}

	if opts.copies != -1 {
		if opts.copies < 1 || opts.copies > 999 {
			return errors.New("-n: must be in range 1...999")
		}
		Conf.Copies = opts.copies
	}

	if opts.duplex {
		Conf.Duplex = true
	}

	if opts.user != "" {
		Conf.UserName = opts.user
	}

	switch opts.verbose {
	case 1:
		Conf.LogLevel = LogDebug
	case 2:
		Conf.LogLevel = LogTrace
	}

	return nil
}

// The main function
func main() {
	opts, err := parseArgv(os.Args[1:])
	if err != nil {
		usageError("%s", err)
	}

	err = ConfLoad(opts.conf)
	if err != nil {
		die("%s", err)
	}

	err = opts.apply()
	if err != nil {
		usageError("%s", err)
	}

	Log.SetLevel(Conf.LogLevel)

	if Conf.UserName == "" {
		if u, err := user.Current(); err == nil {
			Conf.UserName = u.Username
		}
	}

	Log.Debug(' ', "started in %q mode", opts.mode)

	switch opts.mode {
	case RunPrint:
		err = cmdPrint(opts)
	case RunAttrs:
		err = cmdAttrs(opts)
	case RunJobs:
		err = cmdJobs(opts)
	case RunCancel:
		err = cmdCancel(opts)
	case RunDiscover:
		err = cmdDiscover(opts)
	case RunDecode:
		err = cmdDecode(opts)
	}

	if err != nil {
		die("%s", err)
	}
}
