// Package embeds builds the references for the two third-party panels of a
// lesson page. Nothing here fetches or observes the embedded content.
package embeds

import (
	"net/http"
	"net/url"
	"strings"
)

// NotebookURL is the fixed interactive notebook shown next to every lesson.
const NotebookURL = "https://jupyter.org/try-jupyter/lab/"

const (
	videoEmbedBase = "https://www.youtube-nocookie.com/embed/"
	thumbnailBase  = "https://img.youtube.com/vi/"
)

// VideoURL returns the privacy-enhanced player URL for a YouTube video id.
// origin is passed through for the player JS API and omitted when empty.
func VideoURL(youtubeID, origin string) string {
	q := url.Values{}
	q.Set("autoplay", "1")
	q.Set("modestbranding", "1")
	q.Set("rel", "0")
	q.Set("enablejsapi", "1")
	if origin != "" {
		q.Set("origin", origin)
	}
	return videoEmbedBase + url.PathEscape(youtubeID) + "?" + q.Encode()
}

// ThumbnailURL returns the max-resolution still for a YouTube video id.
func ThumbnailURL(youtubeID string) string {
	return thumbnailBase + url.PathEscape(youtubeID) + "/maxresdefault.jpg"
}

// Origin returns the scheme and host the page was served from. A non-empty
// publicURL wins over the request.
func Origin(r *http.Request, publicURL string) string {
	if publicURL != "" {
		u, err := url.Parse(publicURL)
		if err == nil && u.Scheme != "" && u.Host != "" {
			return u.Scheme + "://" + u.Host
		}
	}

	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = strings.ToLower(strings.TrimSpace(strings.Split(proto, ",")[0]))
	}
	if r.Host == "" {
		return ""
	}
	return scheme + "://" + r.Host
}
