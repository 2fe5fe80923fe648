package utils

import (
	"net/http"
	"time"
)

// SessionCookieNames are the credential cookies set at login, one per role
// surface.
var SessionCookieNames = []string{"token", "admin_token", "vendor_token"}

// ExpiredSessionCookies builds the full matrix of expired cookie writes for
// the session cookies: path "/", with and without secure/samesite=strict, and
// with no domain, the bare host, and the dot-prefixed host. The login cookie
// is set with different attribute combinations depending on environment, and
// a cookie only clears when the clearing attributes match how it was set, so
// every plausible combination is written.
func ExpiredSessionCookies(host string) []*http.Cookie {
	expired := time.Unix(0, 0)
	domains := []string{"", host, "." + host}

	var cookies []*http.Cookie
	for _, name := range SessionCookieNames {
		for _, secure := range []bool{false, true} {
			for _, domain := range domains {
				c := &http.Cookie{
					Name:    name,
					Value:   "",
					Path:    "/",
					Domain:  domain,
					Expires: expired,
					MaxAge:  -1,
				}
				if secure {
					c.Secure = true
					c.SameSite = http.SameSiteStrictMode
				}
				cookies = append(cookies, c)
			}
		}
	}
	return cookies
}

// ExpireSessionCookies writes the whole matrix onto the response.
func ExpireSessionCookies(w http.ResponseWriter, host string) {
	for _, c := range ExpiredSessionCookies(host) {
		http.SetCookie(w, c)
	}
}
