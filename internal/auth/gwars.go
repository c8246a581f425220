package auth

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"math"
	"net/url"
	"time"
)

// GWars cross-server login signatures. Each sign is an md5 over the shared
// password concatenated with request fields; the game computes sign over the
// display name BEFORE url-encoding, so every check is tried against both the
// decoded name and the raw encoded value from the query string.

func md5Hex(s string) string {
	sum := md5.Sum([]byte(s))
	return hex.EncodeToString(sum[:])
}

// VerifySign checks md5(password + name + user_id) against the decoded name,
// the raw encoded name, and a latin1-style re-decode of the encoded name.
func VerifySign(password, name, nameEncoded string, userID int64, sign string) bool {
	variants := []string{name}
	if nameEncoded != "" && nameEncoded != name {
		variants = append(variants, nameEncoded)
		if decoded, err := url.QueryUnescape(nameEncoded); err == nil && decoded != name {
			variants = append(variants, decoded)
		}
	}

	for _, v := range variants {
		if md5Hex(fmt.Sprintf("%s%s%d", password, v, userID)) == sign {
			return true
		}
	}
	return false
}

// VerifySign2 checks md5(password + level + round(synd) + user_id). The
// game rounds the syndicate half-to-even before signing, so a .5 value
// must round the same way here or the hashes diverge.
func VerifySign2(password string, level int, synd float64, userID int64, sign2 string) bool {
	rounded := int64(math.RoundToEven(synd))
	return md5Hex(fmt.Sprintf("%s%d%d%d", password, level, rounded, userID)) == sign2
}

// VerifySign3 checks the first 10 hex chars of
// md5(password + name + user_id + has_passport + has_mobile + old_passport)
func VerifySign3(password, name string, userID int64, hasPassport, hasMobile, oldPassport int, sign3 string) bool {
	full := md5Hex(fmt.Sprintf("%s%s%d%d%d%d", password, name, userID, hasPassport, hasMobile, oldPassport))
	return full[:10] == sign3
}

// VerifySign4 checks the first 10 hex chars of md5(today + sign3 + password).
// Binding sign3 to today's date makes a captured login URL expire at midnight.
func VerifySign4(password, sign3, sign4 string, now time.Time) bool {
	today := now.Format("2006-01-02")
	full := md5Hex(today + sign3 + password)
	return full[:10] == sign4
}

// LoginRedirectURL builds the GWars cross-server login URL the browser is
// sent to when it arrives without signed parameters.
func LoginRedirectURL(siteID int, callbackURL string) string {
	return fmt.Sprintf("https://www.gwars.io/cross-server-login.php?site_id=%d&url=%s", siteID, callbackURL)
}
