/* ippwire - IPP wire format codec (RFC 2910, RFC 3382)
 *
 * Copyright (C) 2020 and up by Alexander Pevzner (pzz@apevzner.com)
 * See LICENSE for license terms and conditions
 *
 * The main function
 */

package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/OpenPrinting/ippwire"
)

const usageText = `Usage:
    %s [options] file...

Decodes captured IPP messages and prints them

Options are
    -request      - messages are requests (default)
    -response     - messages are responses
    -chunk N      - use streaming parser, feeding N bytes at once
    -reencode     - encode decoded groups and compare with input
    -conf file    - load configuration from file
`

// RunParameters represents the program run parameters
type RunParameters struct {
	Files    []string // Files to dump
	Response bool     // Files contain responses
	Chunk    int      // Chunk size for streaming mode, 0 for bulk
	Reencode bool     // Check encode/decode round trip
	ConfFile string   // Explicit configuration file
}

// usage prints detailed usage and exits
func usage() {
	fmt.Printf(usageText, os.Args[0])
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

// parseArgv parses program parameters. In a case of usage error,
// it prints a error message and exits
func parseArgv() (params RunParameters) {
	args := os.Args[1:]

	for len(args) > 0 {
		arg := args[0]
		args = args[1:]

		switch arg {
		case "-h", "-help", "--help":
			usage()
		case "-request":
			params.Response = false
		case "-response":
			params.Response = true
		case "-reencode":
			params.Reencode = true
		case "-chunk", "-conf":
			if len(args) == 0 {
				usageError("Option %s requires argument", arg)
			}

			val := args[0]
			args = args[1:]

			if arg == "-conf" {
				params.ConfFile = val
				break
			}

			n, err := strconv.Atoi(val)
			if err != nil || n < 1 {
				usageError("Invalid chunk size %s", val)
			}
			params.Chunk = n

		default:
			if len(arg) > 1 && arg[0] == '-' {
				usageError("Invalid argument %s", arg)
			}
			params.Files = append(params.Files, arg)
		}
	}

	if len(params.Files) == 0 {
		usageError("No input files")
	}

	return
}

// Dumper dumps IPP messages
type Dumper struct {
	params RunParameters          // Run parameters
	opt    ippwire.DecoderOptions // Decoder options
	log    *ippwire.Logger        // Logger
	out    io.Writer              // Output
	f      *ippwire.Formatter     // Formatter, reused between files
}

// Dump decodes and prints a single file
func (d *Dumper) Dump(file string) error {
	data, err := os.ReadFile(file)
	if err != nil {
		return err
	}

	var msg *ippwire.Message
	if d.params.Chunk > 0 {
		msg, err = d.decodeStreaming(data)
	} else {
		msg, err = ippwire.DecodeMessage(data, d.opt)
	}

	if err != nil {
		return fmt.Errorf("%s: %s", file, err)
	}

	if d.f == nil {
		d.f = ippwire.NewFormatter()
	}

	d.f.Reset()
	if d.params.Response {
		d.f.FmtResponse(msg)
	} else {
		d.f.FmtRequest(msg)
	}

	fmt.Fprintf(d.out, "%s:\n", file)
	d.f.WriteTo(d.out)

	for _, size := range MediaSizes(msg.Groups) {
		d.log.Info("%s: media-size %s", file, size)
	}

	if d.params.Reencode {
		err = d.reencode(msg, data)
		if err != nil {
			return fmt.Errorf("%s: %s", file, err)
		}
		d.log.Info("%s: round trip OK", file)
	}

	return nil
}

// decodeStreaming decodes message with the streaming parser
func (d *Dumper) decodeStreaming(data []byte) (*ippwire.Message, error) {
	msg := &ippwire.Message{}
	var errs []error

	p := ippwire.NewParser(ippwire.HandlerFuncs{
		Header: func(hdr ippwire.Header) {
			msg.Header = hdr
		},
		Group: func(g ippwire.Group) {
			msg.Groups.Add(g)
		},
		Exception: func(err error) {
			errs = append(errs, err)
		},
	}, d.opt)

	off := 0
	for off < len(data) && !p.Done() {
		end := off + d.params.Chunk
		if end > len(data) {
			end = len(data)
		}
		off += p.Feed(data[off:end])
	}

	switch {
	case len(errs) != 0:
		for _, err := range errs[1:] {
			d.log.Error("%s", err)
		}
		return nil, errs[0]
	case !p.Done():
		return nil, ippwire.ErrMalformedLength
	}

	if off < len(data) {
		msg.Data = data[off:]
	}

	return msg, nil
}

// reencode encodes the message and compares it with the original
func (d *Dumper) reencode(msg *ippwire.Message, data []byte) error {
	data2, err := msg.EncodeBytes(ippwire.EncoderOptions{
		Charset: d.opt.Charset,
		Logger:  d.log,
	})

	if err != nil {
		return err
	}

	if bytes.Equal(data, data2) {
		return nil
	}

	// Encoding may differ (i.e., attributes and collections order),
	// so compare decoded models
	msg2, err := ippwire.DecodeMessage(data2, d.opt)
	if err != nil {
		return fmt.Errorf("reencode: %s", err)
	}

	if msg.Header != msg2.Header || !msg.Groups.Equal(msg2.Groups) ||
		!bytes.Equal(msg.Data, msg2.Data) {
		d.log.Begin().
			Dump(data, "original:").
			Dump(data2, "reencoded:").
			Commit()
		return fmt.Errorf("reencode: messages differ")
	}

	return nil
}

// The main function
func main() {
	params := parseArgv()

	// Load configuration
	conf := DefaultConfiguration()
	files := ConfFiles()
	if params.ConfFile != "" {
		files = []string{params.ConfFile}
	}

	log := ippwire.NewLogger(os.Stderr, ippwire.LogAll, conf.Color(os.Stderr))
	err := ConfLoad(&conf, files...)
	if err != nil {
		log.Error("%s", err)
		os.Exit(1)
	}

	log = ippwire.NewLogger(os.Stderr, conf.LogConsole, conf.Color(os.Stderr))

	// Load dictionary
	var dict ippwire.Dictionary = ippwire.DefaultDictionary()
	if conf.Dictionary != "" {
		dict, err = ippwire.LoadDictionary(conf.Dictionary)
		if err != nil {
			log.Error("dictionary: %s", err)
			os.Exit(1)
		}
	}

	d := &Dumper{
		params: params,
		opt: ippwire.DecoderOptions{
			Charset:    conf.Charset,
			Dictionary: dict,
			Logger:     log,
		},
		log: log,
		out: os.Stdout,
	}

	// Dump files
	status := 0
	for _, file := range params.Files {
		err = d.Dump(file)
		if err != nil {
			log.Error("%s", err)
			status = 1
		}
	}

	os.Exit(status)
}
