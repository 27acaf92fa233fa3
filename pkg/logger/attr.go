package logger

import (
	"log/slog"
	"time"
)

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Language records a language code under the key "lang".
func Language(lang string) slog.Attr {
	return slog.String("lang", lang)
}

// Languages records a language chain under the key "langs".
func Languages(langs []string) slog.Attr {
	return slog.Any("langs", langs)
}

// Key records a translation key under the key "key".
func Key(key string) slog.Attr {
	return slog.String("key", key)
}

// Keys records how many translation keys an operation touched.
func Keys(n int) slog.Attr {
	return slog.Int("keys", n)
}

// Subscription records a subscription identifier under the key "subscription_id".
func Subscription(id string) slog.Attr {
	return slog.String("subscription_id", id)
}

// Duration records a duration under the key "duration".
func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}
