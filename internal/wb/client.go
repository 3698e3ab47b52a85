package wb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sethvargo/go-retry"
)

const (
	// Дата-маячок для проверочного запроса: сам ответ не важен,
	// важен только статус.
	validateSentinelDate = "2024-01-01"

	requestTimeout = 10 * time.Second
	pageLimit      = 100000
	fetchAttempts  = 3
	backoffBase    = 500 * time.Millisecond
)

var (
	// ErrAuth — API отклонил ключ; повторять запрос бессмысленно.
	ErrAuth = errors.New("wb: api key rejected")
	// ErrNetwork — таймаут или сетевой сбой; имеет смысл повторить позже.
	ErrNetwork = errors.New("wb: network failure")
)

// Client обращается к statistics-api Wildberries.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: requestTimeout},
	}
}

// ValidateKey делает один запрос к /api/v1/supplier/sales с фиксированной
// ранней датой. 200 — ключ рабочий, 401/403 — ключ неверный, всё прочее —
// сетевая проблема; пользователю об этих случаях говорится по-разному.
func (c *Client) ValidateKey(ctx context.Context, apiKey string) error {
	q := url.Values{"dateFrom": {validateSentinelDate}}
	req, err := c.newRequest(ctx, "/api/v1/supplier/sales", apiKey, q)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer func() { _ = resp.Body.Close() }()
	_, _ = io.Copy(io.Discard, resp.Body)

	switch resp.StatusCode {
	case http.StatusOK:
		return nil
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrAuth
	default:
		return fmt.Errorf("%w: unexpected status %s", ErrNetwork, resp.Status)
	}
}

// FetchReport выгружает все строки reportDetailByPeriod за период,
// пролистывая страницы по курсору rrdid до пустого ответа. Временные
// сбои (таймауты, 5xx) повторяются с экспоненциальной задержкой,
// 4xx считается ошибкой ключа и не повторяется.
func (c *Client) FetchReport(ctx context.Context, apiKey string, from, to time.Time) ([]SalesRecord, error) {
	var all []SalesRecord
	var cursor int64
	for {
		page, err := c.fetchPage(ctx, apiKey, from, to, cursor)
		if err != nil {
			return nil, err
		}
		if len(page) == 0 {
			return all, nil
		}
		all = append(all, page...)
		cursor = page[len(page)-1].RRDID
	}
}

func (c *Client) fetchPage(ctx context.Context, apiKey string, from, to time.Time, cursor int64) ([]SalesRecord, error) {
	q := url.Values{
		"dateFrom": {from.Format("2006-01-02")},
		"dateTo":   {to.Format("2006-01-02")},
		"limit":    {strconv.Itoa(pageLimit)},
		"rrdid":    {strconv.FormatInt(cursor, 10)},
	}

	var records []SalesRecord
	backoff := retry.WithMaxRetries(fetchAttempts-1, retry.NewExponential(backoffBase))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		req, err := c.newRequest(ctx, "/api/v5/supplier/reportDetailByPeriod", apiKey, q)
		if err != nil {
			return err
		}

		resp, err := c.http.Do(req)
		if err != nil {
			return retry.RetryableError(fmt.Errorf("%w: %v", ErrNetwork, err))
		}
		defer func() { _ = resp.Body.Close() }()

		switch {
		case resp.StatusCode >= http.StatusInternalServerError:
			_, _ = io.Copy(io.Discard, resp.Body)
			return retry.RetryableError(fmt.Errorf("%w: status %s", ErrNetwork, resp.Status))
		case resp.StatusCode >= http.StatusBadRequest:
			_, _ = io.Copy(io.Discard, resp.Body)
			return fmt.Errorf("%w: status %s", ErrAuth, resp.Status)
		}

		records = records[:0]
		if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
			return fmt.Errorf("wb: decode report: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (c *Client) newRequest(ctx context.Context, path, apiKey string, q url.Values) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("wb: build request: %w", err)
	}
	req.Header.Set("Authorization", apiKey)
	return req, nil
}
