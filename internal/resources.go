package internal

import (
	"context"
	"net/http"
	neturl "net/url"

	"github.com/rm-hull/clawdash/internal/models"
)

// maxPages stops runaway pagination when a server keeps handing out next links.
const maxPages = 100

// listAll fetches a list endpoint, following DRF next links until exhausted.
func listAll[T any](ctx context.Context, c *Client, path string, query neturl.Values) ([]T, error) {
	all := make([]T, 0)
	req := &Request{Method: http.MethodGet, Path: path, Query: query}

	for pageNo := 1; ; pageNo++ {
		resp, err := c.Do(ctx, req)
		if err != nil {
			return nil, err
		}

		page, err := models.DecodeList[T](resp.Body)
		if err != nil {
			return nil, err
		}
		all = append(all, page.Results...)

		if page.Next == nil || *page.Next == "" || pageNo >= maxPages {
			break
		}
		nextPath, nextQuery, err := c.relativeLink(*page.Next)
		if err != nil {
			return nil, err
		}
		req = &Request{Method: http.MethodGet, Path: nextPath, Query: nextQuery}
	}

	return all, nil
}

func getOne[T any](ctx context.Context, c *Client, path string) (*T, error) {
	var out T
	if err := c.Get(ctx, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func postOne[T any](ctx context.Context, c *Client, path string, body any) (*T, error) {
	var out T
	if err := c.Post(ctx, path, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
