package validation

import (
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/language"

	"github.com/nijaru/yt-transcript/errors"
	"github.com/nijaru/yt-transcript/subtitles"
)

var videoIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`[?&]v=([^&?#/]+)`),
	regexp.MustCompile(`youtu\.be/([^?&#/]+)`),
	regexp.MustCompile(`/(?:shorts|embed|live)/([^?&#/]+)`),
}

type Validator struct {
	structs *validator.Validate
}

func NewValidator() *Validator {
	return &Validator{structs: validator.New(validator.WithRequiredStructEnabled())}
}

// ValidateURL performs URL validation
func (v *Validator) ValidateURL(urlStr string) error {
	const op = "Validator.ValidateURL"

	urlStr = strings.TrimSpace(urlStr)
	if urlStr == "" {
		return errors.InvalidInput(op, nil, "URL is required")
	}

	parsedURL, err := url.Parse(urlStr)
	if err != nil {
		return errors.InvalidInput(op, err, "Invalid URL format")
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return errors.InvalidInput(op, nil, "URL must use HTTP or HTTPS")
	}

	if !IsYouTubeHost(parsedURL.Hostname()) {
		return errors.InvalidInput(op, nil, "Only YouTube URLs are supported")
	}

	return nil
}

func IsYouTubeHost(host string) bool {
	host = strings.ToLower(host)
	return host == "youtube.com" ||
		strings.HasSuffix(host, ".youtube.com") ||
		host == "youtu.be"
}

// ExtractVideoID pulls the video identifier out of watch, youtu.be, shorts
// and embed URLs.
func ExtractVideoID(rawURL string) (string, error) {
	const op = "validation.ExtractVideoID"

	for _, re := range videoIDPatterns {
		if m := re.FindStringSubmatch(rawURL); len(m) == 2 && m[1] != "" {
			return m[1], nil
		}
	}
	return "", errors.InvalidInput(op, nil, "Unable to extract the video identifier")
}

// ValidateLanguage accepts "auto" or any well-formed BCP 47 tag.
func (v *Validator) ValidateLanguage(tag string) error {
	const op = "Validator.ValidateLanguage"

	tag = strings.TrimSpace(tag)
	if tag == "" {
		return errors.InvalidInput(op, nil, "Language is required")
	}
	if strings.EqualFold(tag, subtitles.AutoLanguage) {
		return nil
	}
	if _, err := language.Parse(tag); err != nil {
		// yt-dlp emits well-formed private tags such as "en-orig".
		if _, unknown := err.(language.ValueError); unknown {
			return nil
		}
		return errors.InvalidInput(op, err, fmt.Sprintf("Unsupported language tag %q", tag))
	}
	return nil
}

// ValidateStruct runs the `validate` struct tags on s.
func (v *Validator) ValidateStruct(s interface{}) error {
	const op = "Validator.ValidateStruct"

	err := v.structs.Struct(s)
	if err == nil {
		return nil
	}

	if fieldErrs, ok := err.(validator.ValidationErrors); ok && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return errors.InvalidInput(op, err, fmt.Sprintf("Invalid field %s: failed %s", fe.Namespace(), fe.Tag()))
	}
	return errors.InvalidInput(op, err, "Invalid request")
}

// RequestValidationOpts holds options for request validation
type RequestValidationOpts struct {
	MaxContentLength int64
	AllowedMethods   []string
	RequireJSON      bool
}

// ValidateRequest validates HTTP requests
func (v *Validator) ValidateRequest(r *http.Request, opts RequestValidationOpts) error {
	const op = "Validator.ValidateRequest"

	if len(opts.AllowedMethods) > 0 {
		methodAllowed := false
		for _, method := range opts.AllowedMethods {
			if r.Method == method {
				methodAllowed = true
				break
			}
		}
		if !methodAllowed {
			return errors.E(op, nil, fmt.Sprintf("Method %s not allowed", r.Method), http.StatusMethodNotAllowed)
		}
	}

	if opts.RequireJSON {
		if contentType := r.Header.Get("Content-Type"); !strings.Contains(contentType, "application/json") {
			return errors.InvalidInput(op, nil, "Content-Type must be application/json")
		}
	}

	if opts.MaxContentLength > 0 && r.ContentLength > opts.MaxContentLength {
		return errors.E(op, nil, "Request body too large", http.StatusRequestEntityTooLarge)
	}

	return nil
}
