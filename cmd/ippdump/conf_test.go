/* ippwire - IPP wire format codec (RFC 2910, RFC 3382)
 *
 * Copyright (C) 2020 and up by Alexander Pevzner (pzz@apevzner.com)
 * See LICENSE for license terms and conditions
 *
 * Configuration tests
 */

package main

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/OpenPrinting/ippwire"
)

// Test configuration loading
func TestConfLoad(t *testing.T) {
	conf := DefaultConfiguration()
	err := ConfLoad(&conf, "testdata/ippdump.conf")
	if err != nil {
		t.Fatalf("ConfLoad: %s", err)
	}

	if conf.Charset != ippwire.CharsetUTF8 {
		t.Errorf("charset: expected %q, present %q",
			ippwire.CharsetUTF8, conf.Charset)
	}

	dict := filepath.Join("testdata", "dict.toml")
	if conf.Dictionary != dict {
		t.Errorf("dictionary: expected %q, present %q",
			dict, conf.Dictionary)
	}

	levels := ippwire.LogError | ippwire.LogInfo | ippwire.LogDebug
	if conf.LogConsole != levels {
		t.Errorf("console-log: expected %x, present %x",
			levels, conf.LogConsole)
	}

	if conf.ColorConsole != colorDisable {
		t.Errorf("console-color: expected %d, present %d",
			colorDisable, conf.ColorConsole)
	}

	// The dictionary file referenced by configuration must load
	table, err := ippwire.LoadDictionary(conf.Dictionary)
	if err != nil {
		t.Fatalf("LoadDictionary: %s", err)
	}

	def, found := table.Lookup(ippwire.DelimiterPrinter, "sides-supported")
	if !found || def.Syntax != ippwire.TagKeyword {
		t.Errorf("sides-supported: found=%v syntax=%s", found, def.Syntax)
	}
}

// Test that missing files are ignored
func TestConfLoadMissing(t *testing.T) {
	conf := DefaultConfiguration()
	err := ConfLoad(&conf, "testdata/no-such-file.conf")
	if err != nil {
		t.Errorf("ConfLoad: %s", err)
	}

	if conf != DefaultConfiguration() {
		t.Errorf("configuration modified: %+v", conf)
	}
}

// Test configuration errors
func TestConfLoadErrors(t *testing.T) {
	testData := []struct {
		file string
		err  string
	}{
		{"testdata/bad-log.conf", `console-log: invalid log level "verbose"`},
		{"testdata/bad-charset.conf", "charset: "},
	}

	for _, data := range testData {
		conf := DefaultConfiguration()
		err := ConfLoad(&conf, data.file)
		if err == nil {
			t.Errorf("%s: error not detected", data.file)
			continue
		}

		if !strings.Contains(err.Error(), data.err) {
			t.Errorf("%s: expected %q, present %q",
				data.file, data.err, err)
		}
	}
}
