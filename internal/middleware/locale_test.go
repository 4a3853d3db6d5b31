package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestDetectLocale(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(r *http.Request)
		fallback string
		country  string
		want     string
	}{
		{
			name: "x-locale overrides",
			setup: func(r *http.Request) {
				r.Header.Set("X-Locale", "ID")
			},
			country: "US",
			want:    "id",
		},
		{
			name: "accept-language used",
			setup: func(r *http.Request) {
				r.Header.Set("Accept-Language", "en-US,en;q=0.9")
			},
			want: "en",
		},
		{
			name: "accept-language id preference",
			setup: func(r *http.Request) {
				r.Header.Set("Accept-Language", "id-ID,en;q=0.8")
			},
			want: "id",
		},
		{
			name:    "country id maps to id",
			country: "ID",
			want:    "id",
		},
		{
			name:    "other country maps to en",
			country: "SG",
			want:    "en",
		},
		{
			name:     "fallback wins without signals",
			fallback: "id",
			want:     "id",
		},
		{
			name: "nothing at all defaults to en",
			want: "en",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.setup != nil {
				tt.setup(r)
			}
			got := detectLocale(r, tt.fallback, tt.country)
			if got != tt.want {
				t.Fatalf("detectLocale mismatch: got %q want %q", got, tt.want)
			}
		})
	}
}

func TestLocaleMiddlewareUsesCountryLookup(t *testing.T) {
	lookup := func(ip string) (string, error) {
		if ip != "203.0.113.7" {
			return "", errors.New("unexpected ip " + ip)
		}
		return "id", nil
	}

	var gotLocale, gotCountry string
	handler := Locale("en", lookup)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotLocale = LocaleFromContext(r.Context())
		gotCountry = CountryFromContext(r.Context())
	}))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("X-Forwarded-For", "203.0.113.7")
	handler.ServeHTTP(httptest.NewRecorder(), r)

	if gotLocale != "id" {
		t.Fatalf("locale mismatch: got %q", gotLocale)
	}
	if gotCountry != "ID" {
		t.Fatalf("country mismatch: got %q", gotCountry)
	}
}

func TestLocaleMiddlewarePrefersCountryHeader(t *testing.T) {
	var gotCountry string
	handler := Locale("en", nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotCountry = CountryFromContext(r.Context())
	}))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("CF-IPCountry", "sg")
	handler.ServeHTTP(httptest.NewRecorder(), r)

	if gotCountry != "SG" {
		t.Fatalf("country mismatch: got %q", gotCountry)
	}
}

func TestClientIP(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "192.0.2.10:4321"
	if got := ClientIP(r); got != "192.0.2.10" {
		t.Fatalf("ClientIP mismatch: got %q", got)
	}

	r.Header.Set("X-Forwarded-For", "198.51.100.1, 10.0.0.1")
	if got := ClientIP(r); got != "198.51.100.1" {
		t.Fatalf("ClientIP must prefer first forwarded hop: got %q", got)
	}
}

func TestLocaleFromContextDefault(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	if got := LocaleFromContext(r.Context()); got != "en" {
		t.Fatalf("default locale mismatch: got %q", got)
	}
}
