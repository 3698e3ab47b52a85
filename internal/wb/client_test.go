package wb_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Spok95/wb-sales-bot/internal/wb"
)

func TestValidateKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/supplier/sales", r.URL.Path)
		require.Equal(t, "2024-01-01", r.URL.Query().Get("dateFrom"))

		switch r.Header.Get("Authorization") {
		case "good-key":
			w.WriteHeader(http.StatusOK)
		case "bad-key":
			w.WriteHeader(http.StatusUnauthorized)
		default:
			w.WriteHeader(http.StatusBadGateway)
		}
	}))
	defer srv.Close()

	c := wb.NewClient(srv.URL)
	ctx := context.Background()

	require.NoError(t, c.ValidateKey(ctx, "good-key"))
	require.ErrorIs(t, c.ValidateKey(ctx, "bad-key"), wb.ErrAuth)
	require.ErrorIs(t, c.ValidateKey(ctx, "whatever"), wb.ErrNetwork)
}

func TestValidateKeyConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // адрес свободен, соединение не установится

	c := wb.NewClient(srv.URL)
	require.ErrorIs(t, c.ValidateKey(context.Background(), "key"), wb.ErrNetwork)
}

func TestFetchReportDrainsPages(t *testing.T) {
	var cursors []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v5/supplier/reportDetailByPeriod", r.URL.Path)
		require.Equal(t, "secret", r.Header.Get("Authorization"))
		require.Equal(t, "2024-03-01", r.URL.Query().Get("dateFrom"))
		require.Equal(t, "2024-03-09", r.URL.Query().Get("dateTo"))

		cursor := r.URL.Query().Get("rrdid")
		cursors = append(cursors, cursor)
		switch cursor {
		case "0":
			fmt.Fprint(w, `[{"rrd_id":10,"quantity":2,"retail_price":100},{"rrd_id":20,"quantity":3,"retail_price":50.5}]`)
		case "20":
			fmt.Fprint(w, `[{"rrd_id":30,"quantity":1,"retail_price":10}]`)
		default:
			fmt.Fprint(w, `[]`)
		}
	}))
	defer srv.Close()

	c := wb.NewClient(srv.URL)
	from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC)

	records, err := c.FetchReport(context.Background(), "secret", from, to)
	require.NoError(t, err)
	require.Len(t, records, 3)
	require.Equal(t, []string{"0", "20", "30"}, cursors)
	require.Equal(t, 3, records[1].Quantity)
	require.Equal(t, "50.5", records[1].RetailPrice.String())
}

func TestFetchReportRetriesTransient(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		fmt.Fprint(w, `[]`)
	}))
	defer srv.Close()

	c := wb.NewClient(srv.URL)
	records, err := c.FetchReport(context.Background(), "key", time.Now(), time.Now())
	require.NoError(t, err)
	require.Empty(t, records)
	require.Equal(t, 2, calls)
}

func TestFetchReportAuthNotRetried(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := wb.NewClient(srv.URL)
	_, err := c.FetchReport(context.Background(), "key", time.Now(), time.Now())
	require.ErrorIs(t, err, wb.ErrAuth)
	require.Equal(t, 1, calls)
}

func TestFetchReportGivesUpAfterRetries(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := wb.NewClient(srv.URL)
	_, err := c.FetchReport(context.Background(), "key", time.Now(), time.Now())
	require.ErrorIs(t, err, wb.ErrNetwork)
	require.Equal(t, 3, calls)
}
