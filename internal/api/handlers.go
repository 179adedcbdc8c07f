package api

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"unicode"

	"github.com/gin-gonic/gin"

	imagepkg "github.com/youruser/hexcard/internal/image"
	"github.com/youruser/hexcard/internal/validate"
)

// room for the multipart envelope and the text fields around the photo
const multipartOverhead = 1 << 20

// health
func health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Service) index(c *gin.Context) {
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	if err := indexPage.Execute(c.Writer, pageData{MaxUploadMB: s.cfg.MaxUploadBytes >> 20}); err != nil {
		log.Printf("[%s] render index: %s", reqID(c), err)
	}
}

func (s *Service) backgroundHandler(c *gin.Context) {
	bg, err := s.Background(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	b, err := imagepkg.EncodePNG(bg)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.Data(http.StatusOK, "image/png", b)
}

// compose accepts a multipart form with photo, name, phone and optional qr,
// and answers with the card PNG
func (s *Service) composeHandler(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.cfg.MaxUploadBytes+multipartOverhead)

	photo, err := s.readPhoto(c)
	if err != nil {
		s.fail(c, err)
		return
	}

	qr := s.cfg.QR
	if v := c.PostForm("qr"); v != "" {
		if qr, err = strconv.ParseBool(v); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("qr: %s", err)})
			return
		}
	}

	in := validate.Input{
		Name:  c.PostForm("name"),
		Phone: c.PostForm("phone"),
		Photo: photo,
	}
	card, b, err := s.Compose(c.Request.Context(), in, qr)
	if err != nil {
		s.fail(c, err)
		return
	}

	if download, _ := strconv.ParseBool(c.Query("download")); download {
		c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.png"`, slug(card.Name)))
	}
	c.Data(http.StatusOK, "image/png", b)
}

const (
	defaultQRSize = 256
	minQRSize     = 64
	maxQRSize     = 1024
)

// qr endpoint returns a PNG of a tel: QR code for the "phone" query param
func qrHandler(c *gin.Context) {
	phone, err := validate.Phone(c.Query("phone"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "fields": err})
		return
	}
	size := defaultQRSize
	if sizeStr := c.Query("size"); sizeStr != "" {
		if v, err := strconv.Atoi(sizeStr); err == nil {
			size = min(max(v, minQRSize), maxQRSize)
		}
	}
	b, err := imagepkg.GenerateQRPNG(imagepkg.TelURI(phone), size)
	if err != nil {
		log.Printf("[%s] qr: %s", reqID(c), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "image/png", b)
}

var errPhotoTooLarge = errors.New("photo too large")

// readPhoto returns nil without error when no photo was sent so validation
// can report it alongside the other fields.
func (s *Service) readPhoto(c *gin.Context) ([]byte, error) {
	fh, err := c.FormFile("photo")
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if fh.Size > s.cfg.MaxUploadBytes {
		return nil, errPhotoTooLarge
	}

	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	b, err := io.ReadAll(io.LimitReader(f, s.cfg.MaxUploadBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if int64(len(b)) > s.cfg.MaxUploadBytes {
		return nil, errPhotoTooLarge
	}
	return b, nil
}

func (s *Service) fail(c *gin.Context, err error) {
	status := statusFor(err)
	body := gin.H{"error": err.Error()}
	var fields validate.Errors
	if errors.As(err, &fields) {
		body["fields"] = fields
	}
	if status >= http.StatusInternalServerError {
		log.Printf("[%s] %s %s: %s", reqID(c), c.Request.Method, c.Request.URL.Path, err)
	}
	c.AbortWithStatusJSON(status, body)
}

func statusFor(err error) int {
	var (
		fields  validate.Errors
		loadErr *imagepkg.LoadError
		tooBig  *http.MaxBytesError
	)
	switch {
	case errors.As(err, &fields):
		return http.StatusBadRequest
	case errors.Is(err, errPhotoTooLarge), errors.As(err, &tooBig):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, http.ErrNotMultipart), errors.Is(err, http.ErrMissingBoundary):
		return http.StatusBadRequest
	case errors.Is(err, imagepkg.ErrLoadTimeout):
		return http.StatusRequestTimeout
	case errors.As(err, &loadErr) && loadErr.Which == "photo" && errors.Is(err, imagepkg.ErrDecode):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// slug makes a download file name from the card name.
func slug(name string) string {
	var sb strings.Builder
	dash := false
	for _, r := range strings.ToLower(name) {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			sb.WriteRune(r)
			dash = false
			continue
		}
		if !dash && sb.Len() > 0 {
			sb.WriteByte('-')
			dash = true
		}
	}
	out := strings.TrimSuffix(sb.String(), "-")
	if out == "" {
		return "hexcard"
	}
	return out
}
