package staging

import (
	"net/http"
	"strings"
)

// ResolveMIME picks the media type: explicit declaration first, then content
// sniffing, with a jpeg fallback for empty payloads.
func ResolveMIME(explicit string, data []byte) string {
	if m := strings.TrimSpace(explicit); m != "" && m != "application/octet-stream" {
		return m
	}
	if len(data) > 0 {
		return http.DetectContentType(data)
	}
	return "image/jpeg"
}

// ExtensionFor gives synthetic filenames (handoff captures) a sane suffix.
func ExtensionFor(mime string) string {
	switch mime {
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	case "image/gif":
		return ".gif"
	case "video/mp4":
		return ".mp4"
	case "video/webm":
		return ".webm"
	default:
		return ".jpg"
	}
}
