// Package network resolves network stream sources: it classifies
// addresses, injects credentials, builds ingest addresses and the input
// options for pulled or pushed streams.
package network

import (
	"net/url"
	"regexp"
	"strings"
)

// Protocol classes with dedicated handling.
const (
	ClassRTMP = "rtmp"
	ClassHTTP = "http"
	ClassMMS  = "mms"
	ClassRTSP = "rtsp"
)

var schemeRe = regexp.MustCompile(`(?i)^([a-z][a-z0-9.+-:]*)://`)

var classes = map[string]string{
	"rtmp":  ClassRTMP,
	"rtmpe": ClassRTMP,
	"rtmps": ClassRTMP,
	"rtmpt": ClassRTMP,
	"http":  ClassHTTP,
	"https": ClassHTTP,
	"mmst":  ClassMMS,
	"mmsh":  ClassMMS,
}

var authCapable = map[string]bool{
	"amqp":    true,
	"ftp":     true,
	"http":    true,
	"icecast": true,
	"mms":     true,
	"rtmp":    true,
	"sftp":    true,
	"rtsp":    true,
}

// Scheme returns the URI scheme of address in lower case, or "" if the
// address has none.
func Scheme(address string) string {
	m := schemeRe.FindStringSubmatch(address)
	if m == nil {
		return ""
	}
	return strings.ToLower(m[1])
}

// ClassifyProtocol maps an address to its protocol class. RTMP variants,
// HTTP(S) and MMS over TCP or HTTP are folded into one class each; other
// schemes are returned as they are. An address without a scheme has the
// empty class.
func ClassifyProtocol(address string) string {
	scheme := Scheme(address)
	if class, ok := classes[scheme]; ok {
		return class
	}
	return scheme
}

// IsAuthCapable reports whether a protocol class carries credentials in
// the address.
func IsAuthCapable(class string) bool {
	return authCapable[class]
}

// IsValidAddress reports whether the address can be classified.
func IsValidAddress(address string) bool {
	return ClassifyProtocol(address) != ""
}

// InjectCredentials sets the user and password of an address. Empty values
// leave the existing part alone. Addresses of protocols without
// credentials are returned unchanged. Only the userinfo is rewritten, the
// rest of the address is kept as written even when it does not parse.
func InjectCredentials(address, username, password string) string {
	if username == "" && password == "" {
		return address
	}
	if !IsAuthCapable(ClassifyProtocol(address)) {
		return address
	}

	start := strings.Index(address, "://") + len("://")
	authority := address[start:]
	if end := strings.IndexAny(authority, "/?#"); end >= 0 {
		authority = authority[:end]
	}

	host := start
	user := username
	pass, hasPass := password, password != ""
	if at := strings.LastIndex(authority, "@"); at >= 0 {
		host = start + at + 1
		oldUser, oldPass, oldHasPass := strings.Cut(authority[:at], ":")
		if user == "" {
			user = unescapeUserinfo(oldUser)
		}
		if !hasPass && oldHasPass {
			pass, hasPass = unescapeUserinfo(oldPass), true
		}
	}

	info := url.User(user)
	if hasPass {
		info = url.UserPassword(user, pass)
	}

	return address[:start] + info.String() + "@" + address[host:]
}

// unescapeUserinfo decodes one userinfo part, keeping it as written when
// it holds an invalid escape.
func unescapeUserinfo(s string) string {
	if v, err := url.PathUnescape(s); err == nil {
		return v
	}
	return s
}
