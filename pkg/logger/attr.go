package logger

import (
	"log/slog"
	"strconv"
)

// Group creates a slog group attribute from the provided attributes.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// Errors groups multiple non-nil errors under the key "errors".
// If all errors are nil, it returns an empty Attr.
func Errors(errs ...error) slog.Attr {
	as := make([]slog.Attr, 0, len(errs))
	for i, err := range errs {
		if err != nil {
			as = append(as, slog.Any(strconv.Itoa(i), err))
		}
	}
	if len(as) == 0 {
		return slog.Attr{}
	}
	return slog.Attr{Key: "errors", Value: slog.GroupValue(as...)}
}

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// CookieName records the cookie name under test under the key "cookie_name".
func CookieName(name string) slog.Attr {
	return slog.String("cookie_name", name)
}

// Secret records a candidate or discovered secret under the key "secret".
func Secret(secret string) slog.Attr {
	return slog.String("secret", secret)
}

// RunID records the search run identifier under the key "run_id".
// If id is nil, it returns an empty Attr.
func RunID(id any) slog.Attr {
	if id == nil {
		return slog.Attr{}
	}
	return slog.Any("run_id", id)
}

// Origin records where a sample was captured under the key "origin".
// Nil parts are omitted; if both are nil it returns an empty Attr.
func Origin(ip *string, port *int) slog.Attr {
	attrs := make([]slog.Attr, 0, 2)
	if ip != nil {
		attrs = append(attrs, slog.String("ip", *ip))
	}
	if port != nil {
		attrs = append(attrs, slog.Int("port", *port))
	}
	if len(attrs) == 0 {
		return slog.Attr{}
	}
	return Group("origin", attrs...)
}

// Count records a number of items under the key "count".
func Count(n int) slog.Attr {
	return slog.Int("count", n)
}

// Duration records a duration under the key "duration".
func Duration(d any) slog.Attr {
	return slog.Any("duration", d)
}

// Target records an output location under the key "target".
func Target(target string) slog.Attr {
	return slog.String("target", target)
}
