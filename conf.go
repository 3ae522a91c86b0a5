/* ipp-print - IPP print client with PWG Raster payload generation
 *
 * Program configuration
 */

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/ini.v1"
)

// Configuration represents a program configuration
type Configuration struct {
	PrinterURI  string        // Default printer URI
	ColorMode   string        // Color mode: srgb, gray or bw
	Resolution  int           // Raster resolution, DPI
	Media       string        // Self-describing media size name
	Copies      int           // Number of copies
	Duplex      bool          // Print on both sides of the sheet
	UserName    string        // requesting-user-name value
	Language    string        // attributes-natural-language value
	HTTPTimeout time.Duration // Whole-exchange timeout
	TLSVerify   bool          // Verify printer TLS certificates
	LogLevel    LogLevel      // Console log level
}

// Conf contains a global instance of program configuration
var Conf = Configuration{
	ColorMode:   "srgb",
	Resolution:  300,
	Media:       "iso_a4_210x297mm",
	Copies:      1,
	Language:    "en",
	HTTPTimeout: HTTPTimeoutDefault,
	LogLevel:    LogInfo,
}

// ConfLoad loads the program configuration.
//
// The system-wide file is read first, then the per-user file, then
// the explicitly given one; later files override earlier settings.
// A missing default file is not an error, a missing explicit file is
func ConfLoad(explicit string) error {
	files := []string{
		filepath.Join(PathConfDir, ConfFileName),
	}

	if dir, err := os.UserConfigDir(); err == nil {
		files = append(files, filepath.Join(dir, ConfFileName))
	}

	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return fmt.Errorf("conf: %s", err)
		}
		files = append(files, explicit)
	}

	for _, file := range files {
		err := confLoadInternal(file)
		if err != nil {
			return fmt.Errorf("conf: %s", err)
		}
	}

	return nil
}

// Load the program configuration -- internal version
func confLoadInternal(path string) error {
	inifile, err := ini.LooseLoad(path)
	if err != nil {
		return err
	}

	for _, section := range inifile.Sections() {
		for _, key := range section.Keys() {
			err = confLoadKey(section.Name(), key)
			if err != nil {
				return fmt.Errorf("%s: [%s] %s",
					path, section.Name(), err)
			}
		}
	}

	return nil
}

// Load a single configuration key. Unknown sections and keys are
// ignored
func confLoadKey(section string, key *ini.Key) error {
	switch section {
	case "printer":
		switch key.Name() {
		case "uri":
			Conf.PrinterURI = key.String()
		}

	case "print":
		switch key.Name() {
		case "color-mode":
			return confLoadKeywordKey(&Conf.ColorMode, key,
				"srgb", "gray", "bw")
		case "resolution":
			return confLoadIntKeyRange(&Conf.Resolution, key, 72, 2400)
		case "media":
			return confLoadMediaKey(&Conf.Media, key)
		case "copies":
			return confLoadIntKeyRange(&Conf.Copies, key, 1, 999)
		case "duplex":
			return confLoadBinaryKey(&Conf.Duplex, key,
				"disable", "enable")
		}

	case "job":
		switch key.Name() {
		case "user-name":
			Conf.UserName = key.String()
		case "language":
			Conf.Language = key.String()
		}

	case "network":
		switch key.Name() {
		case "timeout":
			return confLoadTimeoutKey(&Conf.HTTPTimeout, key)
		case "tls":
			return confLoadBinaryKey(&Conf.TLSVerify, key,
				"trust", "verify")
		}

	case "logging":
		switch key.Name() {
		case "log-level":
			return confLoadLogLevelKey(&Conf.LogLevel, key)
		}
	}

	return nil
}

// Create "bad value" error
func confBadValue(key *ini.Key, format string, args ...interface{}) error {
	return fmt.Errorf(key.Name()+": "+format, args...)
}

// Load the binary key
func confLoadBinaryKey(out *bool, key *ini.Key, vFalse, vTrue string) error {
	switch key.String() {
	case vFalse:
		*out = false
		return nil
	case vTrue:
		*out = true
		return nil
	default:
		return confBadValue(key, "must be %s or %s", vFalse, vTrue)
	}
}

// Load integer key within the range
func confLoadIntKeyRange(out *int, key *ini.Key, min, max int) error {
	num, err := key.Int()
	if err != nil {
		return confBadValue(key, "%q: invalid number", key.String())
	}

	if num < min || num > max {
		return confBadValue(key, "must be in range %d...%d", min, max)
	}

	*out = num
	return nil
}

// Load keyword key. The value must be one of the given keywords
func confLoadKeywordKey(out *string, key *ini.Key, keywords ...string) error {
	val := key.String()
	for _, kw := range keywords {
		if val == kw {
			*out = val
			return nil
		}
	}

	return confBadValue(key, "must be %s", strings.Join(keywords, " or "))
}

// Load media size key
func confLoadMediaKey(out *string, key *ini.Key) error {
	val := key.String()
	if _, ok := MediaByName(val); !ok {
		return confBadValue(key, "unknown media size %q", val)
	}

	*out = val
	return nil
}

// Load timeout key, in seconds
func confLoadTimeoutKey(out *time.Duration, key *ini.Key) error {
	secs := 0
	err := confLoadIntKeyRange(&secs, key, 1, 3600)
	if err == nil {
		*out = time.Duration(secs) * time.Second
	}

	return err
}

// Load LogLevel key
func confLoadLogLevelKey(out *LogLevel, key *ini.Key) error {
	switch key.String() {
	case "error":
		*out = LogError
	case "info":
		*out = LogInfo
	case "debug":
		*out = LogDebug
	case "trace":
		*out = LogTrace
	default:
		return confBadValue(key, "invalid log level %q", key.String())
	}

	return nil
}
