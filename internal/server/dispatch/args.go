package dispatch

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/paintmap/internal/common"
)

// Args are the flat named string arguments of a request. An empty value
// counts as absent.
type Args map[string]string

// ArgsFromValues keeps the first value of every key.
func ArgsFromValues(v url.Values) Args {
	a := make(Args, len(v))
	for k, vs := range v {
		if len(vs) > 0 {
			a[k] = vs[0]
		}
	}
	return a
}

func (a Args) Get(key string) string {
	return a[key]
}

// Has reports whether every key is present and non-empty.
func (a Args) Has(keys ...string) bool {
	for _, k := range keys {
		if a[k] == "" {
			return false
		}
	}
	return true
}

// Int parses the leading integer of the value the way a lenient client
// would ("2", " 3 ", "4px"); anything else yields 0.
func (a Args) Int(key string) int {
	s := strings.TrimSpace(a[key])
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}

// MapType returns the type argument, defaulting to the city map.
func (a Args) MapType() string {
	if t := a[common.ArgType]; t != "" {
		return t
	}
	return common.DefaultMapType
}

// MapID normalises a shared map id. Integers are rendered canonically,
// other non-empty strings (such as UUIDs) pass through unchanged. Zero and
// blank ids are rejected.
func (a Args) MapID() (string, bool) {
	raw := strings.TrimSpace(a[common.ArgID])
	if raw == "" {
		return "", false
	}
	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		if n == 0 {
			return "", false
		}
		return strconv.FormatInt(n, 10), true
	}
	return raw, true
}
