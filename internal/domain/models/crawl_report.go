package models

import (
	"fmt"
)

// FetchErrorKind classifies why a page fetch failed.
type FetchErrorKind string

const (
	FetchTimeout    FetchErrorKind = "timeout"
	FetchConnection FetchErrorKind = "connection_error"
	FetchHTTPError  FetchErrorKind = "http_error"
	FetchUnknown    FetchErrorKind = "unknown"
)

// FetchError is the typed failure of a single page fetch. A homepage fetch
// error aborts the whole crawl; subpage fetch errors are swallowed by the
// fallback search.
type FetchError struct {
	Kind       FetchErrorKind
	StatusCode int
	URL        string
	Err        error
}

func (e *FetchError) Error() string {
	if e.Kind == FetchHTTPError {
		return fmt.Sprintf("fetch %s: http status %d", e.URL, e.StatusCode)
	}
	if e.Err != nil {
		return fmt.Sprintf("fetch %s: %s: %v", e.URL, e.Kind, e.Err)
	}
	return fmt.Sprintf("fetch %s: %s", e.URL, e.Kind)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// CrawlRequest describes one crawl. Immutable once created.
type CrawlRequest struct {
	URL            string
	TimeoutSeconds int
	MaxSubpages    int
}

// PageFetchResult is the outcome of a single successful GET.
type PageFetchResult struct {
	FinalURL       string
	StatusCode     int
	Body           []byte
	ResponseTimeMS int64
}

// DetectionMethod names the structural location a chatbot signature was
// found in. Method priority is script-src > inline-script > iframe-src.
type DetectionMethod string

const (
	MethodScriptSrc    DetectionMethod = "script-src"
	MethodInlineScript DetectionMethod = "inline-script"
	MethodIframeSrc    DetectionMethod = "iframe-src"
)

// ChatbotDetectionResult reports at most one detected live-chat vendor per
// page, with the signature and method that matched.
type ChatbotDetectionResult struct {
	Detected  bool            `json:"detected"`
	Vendor    string          `json:"vendor,omitempty"`
	Signature string          `json:"signature,omitempty"`
	Method    DetectionMethod `json:"method,omitempty"`
}

// RoomCountResult carries the extracted room/unit count, the pattern that
// supplied it and the page it came from. Value, when set, lies in [1, 500].
type RoomCountResult struct {
	Value      *int   `json:"value"`
	Pattern    string `json:"pattern,omitempty"`
	SourcePage string `json:"source_page,omitempty"`
}

// FormField is one named input of a lead form.
type FormField struct {
	Type string `json:"type"`
	Name string `json:"name"`
}

// LeadForm describes a form that collects visitor data.
type LeadForm struct {
	Action        string      `json:"action"`
	Method        string      `json:"method"`
	Fields        []FormField `json:"fields"`
	CollectsEmail bool        `json:"collects_email"`
	CollectsName  bool        `json:"collects_name"`
}

// ContactInfo holds deduplicated contact data, each list capped to a small
// top-N to bound report size.
type ContactInfo struct {
	Emails  []string `json:"emails"`
	Phones  []string `json:"phones"`
	Socials []string `json:"social_links"`
}

// CrawlReport is the terminal aggregate of one crawl. Immutable after
// construction; owned by the caller.
type CrawlReport struct {
	URL              string                 `json:"url"`
	FinalURL         string                 `json:"final_url"`
	StatusCode       int                    `json:"status_code"`
	Title            string                 `json:"title"`
	MetaDescription  string                 `json:"meta_description"`
	Languages        []string               `json:"languages"`
	Chatbot          ChatbotDetectionResult `json:"chatbot"`
	RoomCount        RoomCountResult        `json:"room_count"`
	LeadForms        []LeadForm             `json:"lead_forms"`
	ContactInfo      ContactInfo            `json:"contact_info"`
	MobileResponsive bool                   `json:"mobile_responsive"`
	PagesCount       int                    `json:"pages_count"`
	ResponseTimeMS   int64                  `json:"response_time_ms"`
}
