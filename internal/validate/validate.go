// Package validate checks and cleans the fields of a card request before any
// image work starts.
package validate

import (
	"bytes"
	"fmt"
	"html"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"net/http"
	"sort"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
	_ "golang.org/x/image/bmp"

	imagepkg "github.com/youruser/hexcard/internal/image"
)

const (
	FieldName  = "name"
	FieldPhone = "phone"
	FieldPhoto = "photo"

	DefaultMaxNameRunes  = 40
	DefaultMaxPhotoBytes = 10 << 20
	// decoded size caps; a small compressed file can declare a huge canvas
	DefaultMaxPhotoPixels = 40_000_000
	DefaultMaxPhotoSide   = 12000

	minPhoneDigits = 7
	maxPhoneDigits = 15
)

// Input is a card request as received.
type Input struct {
	Name      string
	Phone     string
	Photo     []byte
	PhotoName string
}

type Options struct {
	MaxNameRunes   int
	MaxPhotoBytes  int64
	MaxPhotoPixels int64
	MaxPhotoSide   int
}

func (o Options) withDefaults() Options {
	if o.MaxNameRunes <= 0 {
		o.MaxNameRunes = DefaultMaxNameRunes
	}
	if o.MaxPhotoBytes <= 0 {
		o.MaxPhotoBytes = DefaultMaxPhotoBytes
	}
	if o.MaxPhotoPixels <= 0 {
		o.MaxPhotoPixels = DefaultMaxPhotoPixels
	}
	if o.MaxPhotoSide <= 0 {
		o.MaxPhotoSide = DefaultMaxPhotoSide
	}
	return o
}

// Errors maps a field to its failure messages.
type Errors map[string][]string

func (e Errors) add(field, format string, args ...any) {
	e[field] = append(e[field], fmt.Sprintf(format, args...))
}

func (e Errors) Error() string {
	fields := make([]string, 0, len(e))
	for field := range e {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, field+": "+strings.Join(e[field], "; "))
	}
	return "invalid input: " + strings.Join(parts, ", ")
}

var supportedPhotoTypes = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
	"image/gif":  true,
	"image/bmp":  true,
}

var (
	policyOnce sync.Once
	policy     *bluemonday.Policy
)

func strictPolicy() *bluemonday.Policy {
	policyOnce.Do(func() {
		policy = bluemonday.StrictPolicy()
	})
	return policy
}

// Validate returns the cleaned card text, or Errors describing every field
// that failed.
func Validate(in Input, opts Options) (imagepkg.Card, error) {
	opts = opts.withDefaults()
	errs := Errors{}

	name := collapseSpaces(stripMarkup(in.Name))
	switch {
	case name == "":
		errs.add(FieldName, "is required")
	case utf8.RuneCountInString(name) > opts.MaxNameRunes:
		errs.add(FieldName, "must be at most %d characters", opts.MaxNameRunes)
	}

	phone, err := Phone(in.Phone)
	if perr, ok := err.(Errors); ok {
		errs[FieldPhone] = perr[FieldPhone]
	}

	checkPhoto(in.Photo, opts, errs)

	if len(errs) > 0 {
		return imagepkg.Card{}, errs
	}
	return imagepkg.Card{Name: name, Phone: phone}, nil
}

// Phone cleans and checks a phone number on its own.
func Phone(raw string) (string, error) {
	phone := collapseSpaces(stripMarkup(raw))
	errs := Errors{}
	if phone == "" {
		errs.add(FieldPhone, "is required")
	} else if msg := checkPhone(phone); msg != "" {
		errs.add(FieldPhone, "%s", msg)
	}
	if len(errs) > 0 {
		return "", errs
	}
	return phone, nil
}

func checkPhone(phone string) string {
	digits := 0
	for i, r := range phone {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == '+':
			if i != 0 {
				return "may only start with +"
			}
		case r == ' ' || r == '-' || r == '(' || r == ')' || r == '.':
		default:
			return fmt.Sprintf("contains invalid character %q", r)
		}
	}
	if digits < minPhoneDigits || digits > maxPhoneDigits {
		return fmt.Sprintf("must have %d to %d digits", minPhoneDigits, maxPhoneDigits)
	}
	return ""
}

func checkPhoto(photo []byte, opts Options, errs Errors) {
	maxBytes := opts.MaxPhotoBytes
	if len(photo) == 0 {
		errs.add(FieldPhoto, "is required")
		return
	}
	if int64(len(photo)) > maxBytes {
		errs.add(FieldPhoto, "must be at most %d bytes", maxBytes)
		return
	}
	if ct := http.DetectContentType(photo); !supportedPhotoTypes[ct] {
		errs.add(FieldPhoto, "unsupported type %s", ct)
		return
	}

	// header only; the full decode happens later under the load deadline
	cfg, _, err := image.DecodeConfig(bytes.NewReader(photo))
	if err != nil {
		errs.add(FieldPhoto, "unreadable image header: %v", err)
		return
	}
	if cfg.Width > opts.MaxPhotoSide || cfg.Height > opts.MaxPhotoSide {
		errs.add(FieldPhoto, "must be at most %dpx per side, got %dx%d", opts.MaxPhotoSide, cfg.Width, cfg.Height)
		return
	}
	if int64(cfg.Width)*int64(cfg.Height) > opts.MaxPhotoPixels {
		errs.add(FieldPhoto, "must be at most %d pixels, got %dx%d", opts.MaxPhotoPixels, cfg.Width, cfg.Height)
	}
}

func stripMarkup(s string) string {
	return html.UnescapeString(strictPolicy().Sanitize(s))
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
