package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	bk "github.com/hanksha/strajk-bowling-booking/booking"
	"github.com/patrickmn/go-cache"
)

const DefaultBaseURL = "http://localhost:5000"

// StatusError is returned for any response outside the expected status.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("request failed with status '%v' and body:\n%v", e.StatusCode, e.Body)
}

type Client struct {
	baseURL string
	client  *http.Client
	cache   *cache.Cache
}

type Option func(*Client)

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.client = httpClient
	}
}

// WithLookupTTL sets how long fetched bookings stay cached.
func WithLookupTTL(ttl time.Duration) Option {
	return func(c *Client) {
		c.cache = cache.New(ttl, 2*ttl)
	}
}

func NewClient(baseURL string, opts ...Option) *Client {
	if len(strings.TrimSpace(baseURL)) == 0 {
		baseURL = DefaultBaseURL
	}

	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		cache: cache.New(5*time.Minute, 10*time.Minute),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

func (c *Client) CreateBooking(ctx context.Context, req bk.NewBooking) (bk.Booking, error) {
	bookingsURL, err := c.getURL("api", "bookings")

	if err != nil {
		return bk.Booking{}, err
	}

	body, err := json.Marshal(req)

	if err != nil {
		return bk.Booking{}, fmt.Errorf("failed to marshal body: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, bookingsURL, bytes.NewReader(body))

	if err != nil {
		return bk.Booking{}, fmt.Errorf("failed create new request: %w", err)
	}

	c.setHeaders(httpReq)

	var created bk.Booking
	if err := c.do(httpReq, http.StatusCreated, &created); err != nil {
		return bk.Booking{}, err
	}

	c.cache.Set(created.BookingNumber, created.Clone(), cache.DefaultExpiration)

	return created, nil
}

// GetBooking fetches a booking by number. Bookings never change once
// created, so results are served from the cache when possible.
func (c *Client) GetBooking(ctx context.Context, number string) (bk.Booking, error) {
	if err := bk.ValidateBookingNumber(number); err != nil {
		return bk.Booking{}, err
	}

	if cached, found := c.cache.Get(number); found {
		return cached.(bk.Booking).Clone(), nil
	}

	bookingURL, err := c.getURL("api", "bookings", number)

	if err != nil {
		return bk.Booking{}, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, bookingURL, http.NoBody)

	if err != nil {
		return bk.Booking{}, fmt.Errorf("failed create new request: %w", err)
	}

	c.setHeaders(httpReq)

	var booking bk.Booking
	if err := c.do(httpReq, http.StatusOK, &booking); err != nil {
		var statusErr *StatusError
		if errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusNotFound {
			return bk.Booking{}, fmt.Errorf("%w: %v", bk.ErrBookingNotFound, number)
		}
		return bk.Booking{}, err
	}

	c.cache.Set(number, booking.Clone(), cache.DefaultExpiration)

	return booking, nil
}

func (c *Client) Health(ctx context.Context) error {
	healthURL, err := c.getURL("api", "health")

	if err != nil {
		return err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, healthURL, http.NoBody)

	if err != nil {
		return fmt.Errorf("failed create new request: %w", err)
	}

	c.setHeaders(httpReq)

	var status struct {
		Status string `json:"status"`
	}

	if err := c.do(httpReq, http.StatusOK, &status); err != nil {
		return err
	}

	if status.Status != "ok" {
		return fmt.Errorf("unexpected health status %q", status.Status)
	}

	return nil
}

func (c *Client) do(req *http.Request, expected int, out any) error {
	res, err := c.client.Do(req)

	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}

	defer res.Body.Close()

	bodyBytes, readErr := io.ReadAll(res.Body)

	if res.StatusCode != expected {
		if readErr != nil {
			return fmt.Errorf("request failed with status %d; also failed reading body: %w", res.StatusCode, readErr)
		}
		return &StatusError{StatusCode: res.StatusCode, Body: string(bodyBytes)}
	}

	if readErr != nil {
		return fmt.Errorf("failed to read body: %w", readErr)
	}

	if err := json.Unmarshal(bodyBytes, out); err != nil {
		return fmt.Errorf("failed reading body: %w", err)
	}

	return nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
}

func (c *Client) getURL(elem ...string) (string, error) {
	clientURL, err := url.JoinPath(c.baseURL, elem...)
	if err != nil {
		return "", fmt.Errorf("failed to create URL: %w", err)
	}

	return clientURL, nil
}
