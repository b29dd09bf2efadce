package network

import (
	"encoding/json"
	"fmt"
	"strings"
)

// RTMPConfig describes the server's RTMP ingest.
type RTMPConfig struct {
	Enabled bool   `json:"enabled" toml:"enabled"`
	Secure  bool   `json:"secure" toml:"secure"`
	Host    string `json:"host" toml:"host"`
	Local   string `json:"local" toml:"local"`
	App     string `json:"app" toml:"app"`
	Token   string `json:"token" toml:"token"`
	Name    string `json:"name" toml:"name"`
}

// HLSConfig describes the server's HLS ingest.
type HLSConfig struct {
	Secure      bool   `json:"secure" toml:"secure"`
	Host        string `json:"host" toml:"host"`
	Local       string `json:"local" toml:"local"`
	Credentials string `json:"credentials" toml:"credentials"`
	Name        string `json:"name" toml:"name"`
}

// ServerConfig holds the ingest endpoints used to build addresses. Host is
// the publicly advertised host, Local the one reachable on the same
// machine.
type ServerConfig struct {
	RTMP RTMPConfig `json:"rtmp" toml:"rtmp"`
	HLS  HLSConfig  `json:"hls" toml:"hls"`
}

// DefaultServerConfig returns the ingest configuration of a local server.
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		RTMP: RTMPConfig{
			Host:  "localhost",
			Local: "localhost",
			Name:  "external",
		},
		HLS: HLSConfig{
			Host:  "localhost",
			Local: "localhost",
			Name:  "external",
		},
	}
}

// InitConfig decodes a partial JSON document onto the default config.
func InitConfig(data []byte) (ServerConfig, error) {
	config := DefaultServerConfig()
	if len(data) == 0 {
		return config, nil
	}
	if err := json.Unmarshal(data, &config); err != nil {
		return ServerConfig{}, fmt.Errorf("failed to decode server config: %w", err)
	}
	return config, nil
}

// BuildRTMPAddress returns rtmp[s]://<host><app>/<name>.stream with the
// token appended as a query parameter when set.
func BuildRTMPAddress(host, app, name, token string, secure bool) string {
	scheme := "rtmp"
	if secure {
		scheme = "rtmps"
	}

	address := scheme + "://" + host + app + "/" + name + ".stream"
	if token != "" {
		address += "?token=" + escapeComponent(token)
	}
	return address
}

// BuildHLSAddress returns http[s]://[<credentials>@]<host>/memfs/ingest/<name>.m3u8.
func BuildHLSAddress(host, credentials, name string, secure bool) string {
	scheme := "http"
	if secure {
		scheme = "https"
	}

	address := scheme + "://"
	if credentials != "" {
		address += credentials + "@"
	}
	return address + host + "/memfs/ingest/" + name + ".m3u8"
}

// PublicRTMPAddresses returns the addresses a publisher pushes RTMP to.
func PublicRTMPAddresses(config ServerConfig) []string {
	c := config.RTMP
	return []string{BuildRTMPAddress(c.Host, c.App, c.Name, c.Token, c.Secure)}
}

// LocalRTMPAddress returns the RTMP ingest address on the local host.
func LocalRTMPAddress(config ServerConfig) string {
	c := config.RTMP
	return BuildRTMPAddress(c.Local, c.App, c.Name, c.Token, c.Secure)
}

// PublicHLSAddresses returns the addresses a publisher pushes HLS to.
func PublicHLSAddresses(config ServerConfig) []string {
	c := config.HLS
	return []string{BuildHLSAddress(c.Host, c.Credentials, c.Name, c.Secure)}
}

// LocalHLSAddress returns the HLS ingest address on the local host. It
// never carries credentials and is never secure.
func LocalHLSAddress(config ServerConfig) string {
	c := config.HLS
	return BuildHLSAddress(c.Local, "", c.Name, false)
}

// escapeComponent percent-encodes s like a URI component: letters, digits
// and -_.!~*'() are kept, every other byte is escaped.
func escapeComponent(s string) string {
	const hex = "0123456789ABCDEF"

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isComponentByte(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hex[c>>4])
		b.WriteByte(hex[c&0x0f])
	}
	return b.String()
}

func isComponentByte(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	return strings.IndexByte("-_.!~*'()", c) >= 0
}
