package validate

import (
	"bytes"
	"encoding/binary"
	"errors"
	"hash/crc32"
	"image/color"
	"strings"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/require"

	imagepkg "github.com/youruser/hexcard/internal/image"
)

func photoPNG(t *testing.T) []byte {
	t.Helper()
	buf := new(bytes.Buffer)
	require.NoError(t, imaging.Encode(buf, imaging.New(4, 4, color.White), imaging.PNG))
	return buf.Bytes()
}

func fieldErrors(t *testing.T, err error) Errors {
	t.Helper()
	var errs Errors
	require.True(t, errors.As(err, &errs), "expected validation errors, got %v", err)
	return errs
}

func TestValidateCleansFields(t *testing.T) {
	card, err := Validate(Input{
		Name:  "  <b>Ada</b>   Lovelace ",
		Phone: " +44 (20) 7946-0018 ",
		Photo: photoPNG(t),
	}, Options{})
	require.NoError(t, err)
	require.Equal(t, imagepkg.Card{Name: "Ada Lovelace", Phone: "+44 (20) 7946-0018"}, card)
}

func TestValidateKeepsPlainAmpersand(t *testing.T) {
	card, err := Validate(Input{Name: "Tom & Jerry", Phone: "555 010 0100", Photo: photoPNG(t)}, Options{})
	require.NoError(t, err)
	require.Equal(t, "Tom & Jerry", card.Name)
}

func TestValidateRequired(t *testing.T) {
	_, err := Validate(Input{Name: " ", Phone: "<i></i>"}, Options{})
	errs := fieldErrors(t, err)
	require.Equal(t, []string{"is required"}, errs[FieldName])
	require.Equal(t, []string{"is required"}, errs[FieldPhone])
	require.Equal(t, []string{"is required"}, errs[FieldPhoto])
	require.Equal(t, "invalid input: name: is required, phone: is required, photo: is required", err.Error())
}

func TestValidateName(t *testing.T) {
	_, err := Validate(Input{Name: strings.Repeat("é", 41), Phone: "5550100100", Photo: photoPNG(t)}, Options{})
	errs := fieldErrors(t, err)
	require.Equal(t, []string{"must be at most 40 characters"}, errs[FieldName])

	_, err = Validate(Input{Name: strings.Repeat("é", 12), Phone: "5550100100", Photo: photoPNG(t)}, Options{MaxNameRunes: 10})
	require.Contains(t, fieldErrors(t, err), FieldName)

	_, err = Validate(Input{Name: strings.Repeat("é", 40), Phone: "5550100100", Photo: photoPNG(t)}, Options{})
	require.NoError(t, err)
}

func TestValidatePhone(t *testing.T) {
	tests := []struct {
		phone string
		msg   string
	}{
		{"555 0100", ""},
		{"+1 (555) 010-0100", ""},
		{"555.010.0100", ""},
		{"123456", "must have 7 to 15 digits"},
		{"+1234567890123456", "must have 7 to 15 digits"},
		{"555 010 0100 ext 2", `contains invalid character 'e'`},
		{"555+0100100", "may only start with +"},
	}
	for _, tt := range tests {
		_, err := Validate(Input{Name: "Ada", Phone: tt.phone, Photo: photoPNG(t)}, Options{})
		if tt.msg == "" {
			require.NoError(t, err, tt.phone)
			continue
		}
		require.Equal(t, []string{tt.msg}, fieldErrors(t, err)[FieldPhone], tt.phone)
	}
}

func TestValidatePhoto(t *testing.T) {
	_, err := Validate(Input{Name: "Ada", Phone: "5550100100", Photo: []byte("just some text")}, Options{})
	msgs := fieldErrors(t, err)[FieldPhoto]
	require.Len(t, msgs, 1)
	require.True(t, strings.HasPrefix(msgs[0], "unsupported type text/plain"), msgs[0])

	_, err = Validate(Input{Name: "Ada", Phone: "5550100100", Photo: photoPNG(t)}, Options{MaxPhotoBytes: 8})
	require.Equal(t, []string{"must be at most 8 bytes"}, fieldErrors(t, err)[FieldPhoto])
}

// pngHeader returns a PNG signature and IHDR chunk declaring a w×h grayscale
// image with no pixel data behind it.
func pngHeader(w, h uint32) []byte {
	ihdr := make([]byte, 13)
	binary.BigEndian.PutUint32(ihdr[0:4], w)
	binary.BigEndian.PutUint32(ihdr[4:8], h)
	ihdr[8] = 8 // bit depth; color type, compression, filter, interlace stay 0

	buf := new(bytes.Buffer)
	buf.WriteString("\x89PNG\r\n\x1a\n")
	_ = binary.Write(buf, binary.BigEndian, uint32(len(ihdr)))
	chunk := append([]byte("IHDR"), ihdr...)
	buf.Write(chunk)
	_ = binary.Write(buf, binary.BigEndian, crc32.ChecksumIEEE(chunk))
	return buf.Bytes()
}

func TestValidatePhotoDimensions(t *testing.T) {
	huge := pngHeader(20000, 20000)
	require.Less(t, len(huge), 100)

	_, err := Validate(Input{Name: "Ada", Phone: "5550100100", Photo: huge}, Options{})
	msgs := fieldErrors(t, err)[FieldPhoto]
	require.Len(t, msgs, 1)
	require.Equal(t, "must be at most 12000px per side, got 20000x20000", msgs[0])

	// under the side cap, over the pixel cap
	_, err = Validate(Input{Name: "Ada", Phone: "5550100100", Photo: pngHeader(8000, 8000)}, Options{})
	require.Equal(t, []string{"must be at most 40000000 pixels, got 8000x8000"}, fieldErrors(t, err)[FieldPhoto])

	_, err = Validate(Input{Name: "Ada", Phone: "5550100100", Photo: photoPNG(t)}, Options{MaxPhotoPixels: 15})
	require.Contains(t, fieldErrors(t, err)[FieldPhoto][0], "must be at most 15 pixels")

	_, err = Validate(Input{Name: "Ada", Phone: "5550100100", Photo: pngHeader(3000, 2000)}, Options{})
	require.NoError(t, err)
}

func TestValidatePhotoUnreadableHeader(t *testing.T) {
	broken := append([]byte("\x89PNG\r\n\x1a\n"), bytes.Repeat([]byte{0}, 64)...)

	_, err := Validate(Input{Name: "Ada", Phone: "5550100100", Photo: broken}, Options{})
	msgs := fieldErrors(t, err)[FieldPhoto]
	require.Len(t, msgs, 1)
	require.True(t, strings.HasPrefix(msgs[0], "unreadable image header"), msgs[0])
}

func TestPhone(t *testing.T) {
	phone, err := Phone(" <b>+1 555</b> 010 0100 ")
	require.NoError(t, err)
	require.Equal(t, "+1 555 010 0100", phone)

	_, err = Phone("")
	require.Equal(t, []string{"is required"}, fieldErrors(t, err)[FieldPhone])
}
