package gatekeeper

import (
	"crypto/sha256"
	"encoding/hex"
	stderrors "errors"
	"strings"

	"github.com/valyala/bytebufferpool"
)

func isCircuitFailure(err error) bool {
	return stderrors.Is(err, errGatekeeperTransient)
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func buildURL(baseURL, path string) string {
	baseURL = strings.TrimSuffix(strings.TrimSpace(baseURL), "/")
	path = strings.TrimSpace(path)
	if path == "" {
		return baseURL
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	return baseURL + path
}

// buildIntrospectCurlPreview renders a copy-pasteable curl line with every
// secret redacted, for debugging introspection wiring.
func buildIntrospectCurlPreview(introspectURL string, withAdminKey bool) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	appendPart := func(part string) {
		if buf.Len() > 0 {
			_ = buf.WriteByte(' ')
		}
		_, _ = buf.WriteString(part)
	}

	appendPart("curl")
	appendPart("-X")
	appendPart("POST")
	appendPart(shellQuote(introspectURL))
	appendPart("-H")
	appendPart(shellQuote("Content-Type: application/json"))
	if withAdminKey {
		appendPart("-H")
		appendPart(shellQuote("x-admin-key: ***"))
	}
	appendPart("-d")
	appendPart(shellQuote(`{"token":"***"}`))

	return buf.String()
}

func shellQuote(value string) string {
	return "'" + strings.ReplaceAll(value, "'", "'\"'\"'") + "'"
}
