package backend

import (
	"strconv"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

var saleIDPaths = []string{"id", "sale_id", "data.id", "data.sale_id"}

// saleIDOf extracts the id of a created sale from the API reply, falling
// back to TXN-<unix millis>.
func saleIDOf(raw []byte, now time.Time) string {
	if gjson.ValidBytes(raw) {
		root := gjson.ParseBytes(raw)
		for _, path := range saleIDPaths {
			if id := idString(root.Get(path)); id != "" {
				return id
			}
		}
	}
	return "TXN-" + strconv.FormatInt(now.UnixMilli(), 10)
}

// idString renders numeric ids without an exponent or fraction
func idString(v gjson.Result) string {
	switch v.Type {
	case gjson.Number:
		if v.Num == float64(int64(v.Num)) {
			return strconv.FormatInt(int64(v.Num), 10)
		}
		return v.Raw
	case gjson.String:
		return strings.TrimSpace(v.Str)
	}
	return ""
}
