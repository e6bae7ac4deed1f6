/* ippwire - IPP wire format codec (RFC 2910, RFC 3382)
 *
 * Copyright (C) 2020 and up by Alexander Pevzner (pzz@apevzner.com)
 * See LICENSE for license terms and conditions
 *
 * Program configuration
 */

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/OpenPrinting/ippwire"
	"golang.org/x/term"
	"gopkg.in/ini.v1"
)

const (
	// ConfFileName defines a name of ippdump configuration file
	ConfFileName = "ippdump.conf"
)

// Color modes
type colorMode int

const (
	colorAuto colorMode = iota
	colorDisable
	colorEnable
)

// Configuration represents a program configuration
type Configuration struct {
	Charset      string           // Initial charset
	Dictionary   string           // Path to dictionary file, "" for built-in
	LogConsole   ippwire.LogLevel // Console LogLevel mask
	ColorConsole colorMode        // ANSI colors on console
}

// DefaultConfiguration returns configuration with default values
func DefaultConfiguration() Configuration {
	return Configuration{
		Charset:      ippwire.DefaultCharset,
		LogConsole:   ippwire.LogError | ippwire.LogInfo,
		ColorConsole: colorAuto,
	}
}

// ConfLoad loads the program configuration. Files are loaded in
// order, the later files override the earlier ones. Missing files
// are silently ignored
func ConfLoad(conf *Configuration, files ...string) error {
	for _, file := range files {
		err := confLoadInternal(conf, file)
		if err != nil {
			return fmt.Errorf("conf: %s", err)
		}
	}

	return nil
}

// ConfFiles returns the default list of configuration files:
// one in the user configuration directory, one next to executable
func ConfFiles() []string {
	var files []string

	if dir, err := os.UserConfigDir(); err == nil {
		files = append(files, filepath.Join(dir, ConfFileName))
	}

	if exepath, err := os.Executable(); err == nil {
		files = append(files, filepath.Join(filepath.Dir(exepath),
			ConfFileName))
	}

	return files
}

// Color reports whether console output should be colored
func (conf *Configuration) Color(f *os.File) bool {
	switch conf.ColorConsole {
	case colorEnable:
		return true
	case colorDisable:
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// Create "bad value" error
func confBadValue(key *ini.Key, format string, args ...interface{}) error {
	return fmt.Errorf(key.Name()+": "+format, args...)
}

// Load the program configuration -- internal version
func confLoadInternal(conf *Configuration, path string) error {
	inifile, err := ini.Load(path)
	if err != nil {
		if os.IsNotExist(err) {
			err = nil
		}
		return err
	}

	if section, _ := inifile.GetSection("codec"); section != nil {
		for _, key := range section.Keys() {
			switch key.Name() {
			case "charset":
				err = confLoadCharsetKey(&conf.Charset, key)
			case "dictionary":
				err = confLoadPathKey(&conf.Dictionary, key, path)
			}

			if err != nil {
				return err
			}
		}
	}

	if section, _ := inifile.GetSection("logging"); section != nil {
		for _, key := range section.Keys() {
			switch key.Name() {
			case "console-log":
				err = confLoadLogLevelKey(&conf.LogConsole, key)
			case "console-color":
				err = confLoadColorKey(&conf.ColorConsole, key)
			}

			if err != nil {
				return err
			}
		}
	}

	return nil
}

// Load charset key
func confLoadCharsetKey(out *string, key *ini.Key) error {
	cs, err := ippwire.LookupCharset(key.String())
	if err != nil {
		return confBadValue(key, "%s", err)
	}

	*out = cs.Name()
	return nil
}

// Load path key. Relative paths are relative to the
// configuration file directory
func confLoadPathKey(out *string, key *ini.Key, confpath string) error {
	path := key.String()
	if path != "" && !filepath.IsAbs(path) {
		path = filepath.Join(filepath.Dir(confpath), path)
	}

	*out = path
	return nil
}

// Load color mode key
func confLoadColorKey(out *colorMode, key *ini.Key) error {
	switch key.String() {
	case "auto":
		*out = colorAuto
	case "disable":
		*out = colorDisable
	case "enable":
		*out = colorEnable
	default:
		return confBadValue(key, "must be enable, disable or auto")
	}
	return nil
}

// Load LogLevel key
func confLoadLogLevelKey(out *ippwire.LogLevel, key *ini.Key) error {
	var mask ippwire.LogLevel
	for _, s := range strings.Split(key.String(), ",") {
		s = strings.TrimSpace(s)
		switch s {
		case "":
		case "error":
			mask |= ippwire.LogError
		case "info":
			mask |= ippwire.LogInfo | ippwire.LogError
		case "debug":
			mask |= ippwire.LogDebug | ippwire.LogInfo | ippwire.LogError
		case "trace-ipp", "all", "trace-all":
			mask |= ippwire.LogAll
		default:
			return confBadValue(key, "invalid log level %q", s)
		}
	}

	*out = mask
	return nil
}
