package auth

import (
	"context"
	"time"

	"github.com/guonaihong/gout"
)

const requestTimeout = 15 * time.Second

// post sends a JSON body to the provider and returns the raw response
func (c *Client) post(ctx context.Context, path string, body []byte) ([]byte, int, error) {
	rctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	var (
		raw  []byte
		code int
	)
	err := gout.POST(c.cfg.Url + path).
		WithContext(rctx).
		SetHeader(gout.H{
			"apikey":       c.cfg.Apikey,
			"Content-Type": "application/json",
		}).
		SetBody(body).
		Code(&code).
		BindBody(&raw).
		Do()
	if err != nil {
		return nil, 0, err
	}
	return raw, code, nil
}
