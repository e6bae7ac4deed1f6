/* ippwire - IPP wire format codec (RFC 2910, RFC 3382)
 *
 * Copyright (C) 2020 and up by Alexander Pevzner (pzz@apevzner.com)
 * See LICENSE for license terms and conditions
 *
 * Built-in dictionary of common attributes (RFC 8011, PWG 5100.x)
 */

package ippwire

// DefaultDictionary returns a new Table, filled with the
// commonly used attributes. The caller may extend it.
func DefaultDictionary() *Table {
	t := NewTable()

	for _, g := range builtinDictionary {
		for _, def := range g.defs {
			t.Add(g.group, def.Name, def.Syntax)
		}
	}

	return t
}

// builtinDictionary contains built-in attribute definitions,
// per group
var builtinDictionary = []struct {
	group DelimiterTag
	defs  []AttributeDef
}{
	{DelimiterOperation, []AttributeDef{
		{"attributes-charset", TagCharset},
		{"attributes-natural-language", TagNaturalLanguage},
		{"printer-uri", TagURI},
		{"job-uri", TagURI},
		{"job-id", TagInteger},
		{"requesting-user-name", TagName},
		{"job-name", TagName},
		{"document-name", TagName},
		{"document-format", TagMimeMediaType},
		{"ipp-attribute-fidelity", TagBoolean},
		{"requested-attributes", TagKeyword},
		{"which-jobs", TagKeyword},
		{"my-jobs", TagBoolean},
		{"limit", TagInteger},
		{"last-document", TagBoolean},
		{"compression", TagKeyword},
		{"status-message", TagText},
		{"detailed-status-message", TagText},
		{"document-uri", TagURI},
		{"first-index", TagInteger},
	}},

	{DelimiterJob, []AttributeDef{
		{"copies", TagInteger},
		{"finishings", TagEnum},
		{"job-priority", TagInteger},
		{"job-hold-until", TagKeyword},
		{"job-sheets", TagKeyword},
		{"media", TagKeyword},
		{"media-col", TagBeginCollection},
		{"multiple-document-handling", TagKeyword},
		{"number-up", TagInteger},
		{"orientation-requested", TagEnum},
		{"output-bin", TagKeyword},
		{"page-ranges", TagRangeOfInteger},
		{"print-color-mode", TagKeyword},
		{"print-quality", TagEnum},
		{"printer-resolution", TagResolution},
		{"sides", TagKeyword},
		{"job-id", TagInteger},
		{"job-uri", TagURI},
		{"job-name", TagName},
		{"job-state", TagEnum},
		{"job-state-reasons", TagKeyword},
		{"job-state-message", TagText},
		{"job-printer-uri", TagURI},
		{"job-originating-user-name", TagName},
		{"job-impressions-completed", TagInteger},
		{"time-at-creation", TagInteger},
		{"time-at-processing", TagInteger},
		{"time-at-completed", TagInteger},
		{"date-time-at-creation", TagDateTime},
		{"date-time-at-processing", TagDateTime},
		{"date-time-at-completed", TagDateTime},
	}},

	{DelimiterPrinter, []AttributeDef{
		{"printer-uri-supported", TagURI},
		{"uri-security-supported", TagKeyword},
		{"uri-authentication-supported", TagKeyword},
		{"printer-name", TagName},
		{"printer-location", TagText},
		{"printer-info", TagText},
		{"printer-make-and-model", TagText},
		{"printer-more-info", TagURI},
		{"printer-state", TagEnum},
		{"printer-state-reasons", TagKeyword},
		{"printer-state-message", TagText},
		{"printer-is-accepting-jobs", TagBoolean},
		{"printer-up-time", TagInteger},
		{"printer-current-time", TagDateTime},
		{"printer-uuid", TagURI},
		{"printer-device-id", TagText},
		{"printer-icons", TagURI},
		{"printer-resolution-default", TagResolution},
		{"printer-resolution-supported", TagResolution},
		{"queued-job-count", TagInteger},
		{"charset-configured", TagCharset},
		{"charset-supported", TagCharset},
		{"natural-language-configured", TagNaturalLanguage},
		{"generated-natural-language-supported", TagNaturalLanguage},
		{"document-format-default", TagMimeMediaType},
		{"document-format-supported", TagMimeMediaType},
		{"ipp-versions-supported", TagKeyword},
		{"operations-supported", TagEnum},
		{"color-supported", TagBoolean},
		{"pdl-override-supported", TagKeyword},
		{"compression-supported", TagKeyword},
		{"copies-default", TagInteger},
		{"copies-supported", TagRangeOfInteger},
		{"finishings-default", TagEnum},
		{"finishings-supported", TagEnum},
		{"job-priority-default", TagInteger},
		{"job-priority-supported", TagInteger},
		{"media-col-default", TagBeginCollection},
		{"media-col-ready", TagBeginCollection},
		{"media-col-database", TagBeginCollection},
		{"media-default", TagKeyword},
		{"media-ready", TagKeyword},
		{"media-size-supported", TagBeginCollection},
		{"number-up-default", TagInteger},
		{"number-up-supported", TagInteger},
		{"orientation-requested-default", TagEnum},
		{"orientation-requested-supported", TagEnum},
		{"pages-per-minute", TagInteger},
		{"pages-per-minute-color", TagInteger},
		{"print-quality-default", TagEnum},
		{"print-quality-supported", TagEnum},
		{"printer-firmware-version", TagOctetString},
		{"*-default", TagKeyword},
		{"*-supported", TagKeyword},
	}},

	{DelimiterUnsupported, []AttributeDef{
		{"*", TagUnsupported},
	}},

	{DelimiterSubscription, []AttributeDef{
		{"notify-events", TagKeyword},
		{"notify-lease-duration", TagInteger},
		{"notify-pull-method", TagKeyword},
		{"notify-recipient-uri", TagURI},
		{"notify-subscription-id", TagInteger},
		{"notify-time-interval", TagInteger},
		{"notify-user-data", TagOctetString},
	}},

	{DelimiterEventNotification, []AttributeDef{
		{"notify-subscription-id", TagInteger},
		{"notify-sequence-number", TagInteger},
		{"notify-subscribed-event", TagKeyword},
		{"notify-text", TagText},
		{"notify-charset", TagCharset},
		{"notify-natural-language", TagNaturalLanguage},
		{"printer-up-time", TagInteger},
		{"printer-state", TagEnum},
		{"job-id", TagInteger},
		{"job-state", TagEnum},
	}},
}
