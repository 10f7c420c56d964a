package httpclient

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

// Options は genai SDK に渡す HTTP クライアントの設定です。
type Options struct {
	// PreferIPv4 が true なら IPv4 だけで接続します（IPv6 経路が不安定な環境向け）。
	PreferIPv4 bool
	// Timeout は1リクエスト全体の上限です。0 なら上限なし（生成は完了するまで待つ）。
	Timeout time.Duration
}

// New は Gemini 呼び出し用の *http.Client を返します。
// 各リクエストの所要時間とステータスを debug レベルで記録します。
func New(opts Options) *http.Client {
	return &http.Client{
		Timeout:   opts.Timeout,
		Transport: &loggingTransport{next: newTransport(opts.PreferIPv4)},
	}
}

func newTransport(preferIPv4 bool) *http.Transport {
	dialer := &net.Dialer{
		Timeout:   15 * time.Second,
		KeepAlive: 30 * time.Second,
	}
	network := func(requested string) string {
		if preferIPv4 {
			return "tcp4"
		}
		return requested
	}

	return &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: func(ctx context.Context, nw, addr string) (net.Conn, error) {
			return dialer.DialContext(ctx, network(nw), addr)
		},
		ForceAttemptHTTP2:     true,
		MaxIdleConnsPerHost:   4,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   15 * time.Second,
		ExpectContinueTimeout: time.Second,
	}
}

// loggingTransport はリクエストごとの結果をログに残します。URL のクエリは記録しません。
type loggingTransport struct {
	next http.RoundTripper
}

func (t *loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := t.next.RoundTrip(req)

	ev := log.Debug().
		Str("method", req.Method).
		Str("host", req.URL.Host).
		Str("path", req.URL.Path).
		Dur("duration", time.Since(start))
	if err != nil {
		ev.Err(err).Msg("outbound request failed")
		return nil, err
	}
	ev.Int("status", resp.StatusCode).Msg("outbound request")
	return resp, nil
}
