// Package coingecko reads the public markets listing that feeds the ticker.
package coingecko

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	common "github.com/usa-trezo/en-us/internal/app/common/exception_handler"
	"github.com/usa-trezo/en-us/internal/app/common/logger"
	"github.com/usa-trezo/en-us/internal/app/constants"
	"github.com/usa-trezo/en-us/internal/app/models"

	"github.com/sirupsen/logrus"
)

type Client struct {
	url        string
	httpClient *http.Client
	logger     *logrus.Logger
}

func New(marketsURL string, timeout time.Duration) *Client {
	return &Client{
		url: marketsURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger.GetLogger(),
	}
}

// FetchSnapshot returns the top assets by market capitalization in the order
// the upstream ranks them. Any failure leaves nothing to apply.
func (c *Client) FetchSnapshot(ctx context.Context) ([]models.MarketEntry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, common.NewCustomError(common.ErrFetch, "Failed to build markets request", err)
	}
	q := req.URL.Query()
	q.Set("vs_currency", constants.VsCurrency)
	q.Set("order", constants.Order)
	q.Set("per_page", strconv.Itoa(constants.PerPage))
	q.Set("sparkline", constants.Sparkline)
	req.URL.RawQuery = q.Encode()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", constants.UserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, common.NewCustomError(common.ErrFetch, "Markets request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, common.NewCustomError(common.ErrUpstreamStatus,
			fmt.Sprintf("Markets API returned %s", resp.Status), fmt.Errorf("%s", body))
	}

	var entries []models.MarketEntry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, common.NewCustomError(common.ErrDecode, "Failed to decode markets payload", err)
	}

	if len(entries) > constants.MaxEntries {
		c.logger.WithField("received", len(entries)).Debug("Markets payload longer than requested, truncating")
		entries = entries[:constants.MaxEntries]
	}
	for i := range entries {
		if err := entries[i].Validate(); err != nil {
			return nil, common.NewCustomError(common.ErrInvalidEntry, "Invalid market entry", err)
		}
	}
	return entries, nil
}
