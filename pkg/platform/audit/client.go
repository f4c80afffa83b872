package audit

import (
	"context"

	"github.com/mssola/useragent"

	"veriport/pkg/requestcontext"
)

// WithRequestContext fills request, client IP and parsed browser/OS details
// from ctx. Fields already set on the event are kept.
func (e Event) WithRequestContext(ctx context.Context) Event {
	if e.RequestID == "" {
		e.RequestID = requestcontext.RequestID(ctx)
	}
	if e.ClientIP == "" {
		e.ClientIP = requestcontext.ClientIP(ctx)
	}
	if raw := requestcontext.UserAgent(ctx); raw != "" && e.Browser == "" && e.OS == "" {
		e.Browser, e.OS = ParseUserAgent(raw)
	}
	return e
}

// ParseUserAgent returns "Name Version" for the browser and the OS name.
func ParseUserAgent(raw string) (browser, os string) {
	ua := useragent.New(raw)
	name, version := ua.Browser()
	switch {
	case name == "":
		browser = "Unknown"
	case version == "":
		browser = name
	default:
		browser = name + " " + version
	}
	os = ua.OS()
	if os == "" {
		os = "Unknown"
	}
	return browser, os
}
