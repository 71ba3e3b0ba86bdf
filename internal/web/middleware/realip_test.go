package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func remoteAddrHandler(got *string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*got = r.RemoteAddr
	})
}

func TestTrustedRealIP(t *testing.T) {
	tests := []struct {
		name       string
		trusted    []string
		remoteAddr string
		headers    map[string]string
		want       string
	}{
		{
			name:       "no trusted proxies keeps remote addr",
			remoteAddr: "203.0.113.7:1234",
			headers:    map[string]string{"X-Real-IP": "10.0.0.1"},
			want:       "203.0.113.7:1234",
		},
		{
			name:       "trusted proxy with X-Real-IP",
			trusted:    []string{"192.168.0.0/16"},
			remoteAddr: "192.168.1.1:5555",
			headers:    map[string]string{"X-Real-IP": "203.0.113.7"},
			want:       "203.0.113.7",
		},
		{
			name:       "trusted proxy with X-Forwarded-For chain",
			trusted:    []string{"192.168.0.0/16"},
			remoteAddr: "192.168.1.1:5555",
			headers:    map[string]string{"X-Forwarded-For": "203.0.113.7, 192.168.1.1"},
			want:       "203.0.113.7",
		},
		{
			name:       "untrusted client cannot spoof",
			trusted:    []string{"192.168.0.0/16"},
			remoteAddr: "203.0.113.7:1234",
			headers:    map[string]string{"X-Real-IP": "10.0.0.1"},
			want:       "203.0.113.7:1234",
		},
		{
			name:       "single IP accepted as trusted proxy",
			trusted:    []string{"127.0.0.1"},
			remoteAddr: "127.0.0.1:9999",
			headers:    map[string]string{"X-Real-IP": "203.0.113.7"},
			want:       "203.0.113.7",
		},
		{
			name:       "garbage header value ignored",
			trusted:    []string{"127.0.0.1"},
			remoteAddr: "127.0.0.1:9999",
			headers:    map[string]string{"X-Real-IP": "not-an-ip"},
			want:       "127.0.0.1:9999",
		},
		{
			name:       "invalid CIDR entries skipped",
			trusted:    []string{"bogus", ""},
			remoteAddr: "192.168.1.1:5555",
			headers:    map[string]string{"X-Real-IP": "203.0.113.7"},
			want:       "192.168.1.1:5555",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got string
			handler := TrustedRealIP(tt.trusted)(remoteAddrHandler(&got))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			handler.ServeHTTP(httptest.NewRecorder(), req)

			if got != tt.want {
				t.Errorf("RemoteAddr = %q, want %q", got, tt.want)
			}
		})
	}
}
