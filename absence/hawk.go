/*
hawk.go - Hawk request signing

PURPOSE:
  The absence service authenticates every call with a Hawk authorization
  header: a keyed MAC binding method, path+query, host, port, timestamp and
  a per-request nonce. This file builds that header.

SCHEME:
  mac = base64(HMAC-SHA256(key, normalized))
  normalized = "hawk.1.header" \n ts \n nonce \n METHOD \n path?query \n
               host \n port \n "" \n "" \n

  Payload hashing and the optional ext field are not used by the service and
  are left empty.
*/
package absence

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Credentials identify the caller to the absence service. The ID doubles as
// the user's remote identity.
type Credentials struct {
	ID  string
	Key string
}

// hawkHeader builds the Authorization header value for one request.
func hawkHeader(method string, u *url.URL, creds Credentials, ts int64, nonce string) string {
	mac := hawkMAC(creds.Key, normalizedRequestString(method, u, ts, nonce))
	return fmt.Sprintf(`Hawk id=%q, ts="%d", nonce=%q, mac=%q`, creds.ID, ts, nonce, mac)
}

func hawkMAC(key, normalized string) string {
	h := hmac.New(sha256.New, []byte(key))
	h.Write([]byte(normalized))
	return base64.StdEncoding.EncodeToString(h.Sum(nil))
}

// normalizedRequestString assembles the hawk.1.header signing base.
// Trailing empty lines stand in for the unused payload hash and ext fields.
func normalizedRequestString(method string, u *url.URL, ts int64, nonce string) string {
	query := ""
	if u.RawQuery != "" {
		query = "?" + u.RawQuery
	}

	port := u.Port()
	if port == "" {
		if u.Scheme == "https" {
			port = "443"
		} else {
			port = "80"
		}
	}

	lines := []string{
		"hawk.1.header",
		strconv.FormatInt(ts, 10),
		nonce,
		strings.ToUpper(method),
		u.Path + query,
		strings.ToLower(u.Hostname()),
		port,
		"",
		"",
	}
	return strings.Join(lines, "\n") + "\n"
}
