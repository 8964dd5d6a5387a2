// Package urlbuild rewrites parts of a URL, typically a DSN taken from
// configuration whose host or credentials differ per deployment.
package urlbuild

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
)

// Overrides holds the URL components to replace. Nil fields keep the value
// parsed from the original URL.
type Overrides struct {
	Scheme   *string
	Username *string
	Password *string
	Hostname *string
	Port     *int
	Path     *string
}

// String returns a pointer to s, for use in Overrides.
func String(s string) *string { return &s }

// Int returns a pointer to i, for use in Overrides.
func Int(i int) *int { return &i }

// Build parses raw and returns it with the components in o replaced.
// Components that are not overridden keep their original escaping. Query
// strings and fragments are dropped.
func Build(raw string, o Overrides) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("parse url: %w", err)
	}

	out := &url.URL{
		Scheme:  u.Scheme,
		User:    u.User,
		Path:    u.Path,
		RawPath: u.RawPath,
	}
	if o.Scheme != nil {
		out.Scheme = *o.Scheme
	}
	if o.Username != nil || o.Password != nil {
		out.User = userinfo(u.User, o)
	}
	if o.Path != nil {
		out.Path = *o.Path
		out.RawPath = ""
	}

	hostname := u.Hostname()
	if o.Hostname != nil {
		hostname = *o.Hostname
	}
	port := u.Port()
	if o.Port != nil {
		port = strconv.Itoa(*o.Port)
	}
	switch {
	case port != "":
		out.Host = net.JoinHostPort(hostname, port)
	case strings.Contains(hostname, ":"):
		out.Host = "[" + hostname + "]"
	default:
		out.Host = hostname
	}

	return out.String(), nil
}

// userinfo merges credential overrides with the parsed credentials
func userinfo(orig *url.Userinfo, o Overrides) *url.Userinfo {
	var username, password string
	var hasPassword bool
	if orig != nil {
		username = orig.Username()
		password, hasPassword = orig.Password()
	}
	if o.Username != nil {
		username = *o.Username
	}
	if o.Password != nil {
		password, hasPassword = *o.Password, true
	}

	if hasPassword {
		return url.UserPassword(username, password)
	}
	return url.User(username)
}
