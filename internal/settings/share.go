package settings

import "net/url"

// Share links carry the settings as query parameters so a plan can be
// handed to someone else. The lines parameter is always written explicitly
// as on or off.

// EncodeQuery returns the share parameters for s.
func EncodeQuery(s Settings) url.Values {
	v := url.Values{}
	v.Set("sonnet", s.Sonnet)
	v.Set("start", s.Start.Format(DateLayout))
	v.Set("theme", s.Theme)
	v.Set("lines", onOff(s.LineNumbers))
	return v
}

// ShareURL renders the share link for s. An empty base yields a bare query
// string that can be appended to any page.
func ShareURL(base string, s Settings) string {
	return base + "?" + EncodeQuery(s).Encode()
}

// DecodeQuery overlays recognized share parameters onto base. Values that
// do not validate are ignored so a mangled link still renders something;
// unknown sonnet or theme keys are left for Normalize to resolve.
func DecodeQuery(q url.Values, base Settings) Settings {
	s := base
	if v := q.Get("sonnet"); v != "" {
		s.Sonnet = v
	}
	if v := q.Get("start"); v != "" {
		if start, ok := ParseDate(v); ok {
			s.Start = start
		}
	}
	if v := q.Get("theme"); v != "" {
		s.Theme = v
	}
	switch q.Get("lines") {
	case "on":
		s.LineNumbers = true
	case "off":
		s.LineNumbers = false
	}
	return s
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}
