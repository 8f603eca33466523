package handler

import (
	"fmt"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/shipdocs/invoicegen/internal/session"
)

const sessionCookieName = "session_id"

// resolveSession returns the caller's session, creating one (and
// setting the cookie) when none exists or the old one expired.
func resolveSession(c echo.Context, store *session.Store) *session.Session {
	if cookie, err := c.Cookie(sessionCookieName); err == nil {
		if sess, ok := store.Get(cookie.Value); ok {
			return sess
		}
	}

	sess := store.Create()
	c.SetCookie(&http.Cookie{
		Name:     sessionCookieName,
		Value:    sess.ID,
		Path:     "/",
		HttpOnly: true,
	})
	return sess
}

// readUpload reads the multipart "file" field, bounded by maxBytes.
func readUpload(c echo.Context, maxBytes int64) ([]byte, error) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return nil, fmt.Errorf("missing file upload: %w", err)
	}
	if maxBytes > 0 && fileHeader.Size > maxBytes {
		return nil, fmt.Errorf("upload of %d bytes exceeds the %d byte limit", fileHeader.Size, maxBytes)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("opening upload: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("reading upload: %w", err)
	}
	return data, nil
}
