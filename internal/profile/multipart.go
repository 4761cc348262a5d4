package profile

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// WriteMultipart writes p to w as a multipart/form-data body and returns
// the content type to send with it. The resume, if any, is read here.
func (p Payload) WriteMultipart(w io.Writer) (string, error) {
	mw := multipart.NewWriter(w)

	for _, f := range p.Fields {
		if err := mw.WriteField(f.Name, f.Value); err != nil {
			return "", fmt.Errorf("write field %s: %w", f.Name, err)
		}
	}

	if p.ResumePath != "" {
		if err := writeResume(mw, p.ResumePath); err != nil {
			return "", err
		}
	}

	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("close multipart body: %w", err)
	}
	return mw.FormDataContentType(), nil
}

func writeResume(mw *multipart.Writer, path string) error {
	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		return fmt.Errorf("read resume: %w", err)
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open resume: %w", err)
	}
	defer f.Close()

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
		FieldResume, quoteEscaper.Replace(filepath.Base(path))))
	h.Set("Content-Type", mtype.String())

	part, err := mw.CreatePart(h)
	if err != nil {
		return fmt.Errorf("create resume part: %w", err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return fmt.Errorf("copy resume: %w", err)
	}
	return nil
}
