package bungie

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/kpango/glg"
)

// RequestTimeout is the per-request deadline applied to every outbound call
// (§4.1, §5).
const RequestTimeout = 10 * time.Second

const maxThrottleRetries = 5

// ClientPool provides round-robin access to a collection of Clients, the way
// outbound requests get spread across distinct local addresses under load.
type ClientPool struct {
	Clients []*Client
	current int
	mu      sync.Mutex
}

// NewClientPool builds a pool from the addresses listed in local_clients.txt,
// falling back to a single default-transport Client when that file is
// absent or empty.
func NewClientPool(apiKey string) (*ClientPool, error) {
	if apiKey == "" {
		return nil, newError(KindInvalidParameters, "api key must not be empty", nil)
	}

	addresses := readClientAddresses()
	clients := make([]*Client, 0, len(addresses)+1)
	for _, addr := range addresses {
		client, err := newCustomAddrClient(addr, apiKey)
		if err != nil {
			glg.Errorf("Error creating custom address client: %s", err.Error())
			continue
		}
		clients = append(clients, client)
	}
	if len(clients) == 0 {
		clients = append(clients, &Client{HTTPClient: http.DefaultClient, APIKey: apiKey})
	}

	return &ClientPool{Clients: clients}, nil
}

// Get returns the next Client in round-robin order.
func (pool *ClientPool) Get() *Client {
	pool.mu.Lock()
	defer pool.mu.Unlock()

	c := pool.Clients[pool.current]
	if pool.current == len(pool.Clients)-1 {
		pool.current = 0
	} else {
		pool.current++
	}
	return c
}

func readClientAddresses() []string {
	result := make([]string, 0, 8)

	in, err := os.OpenFile("local_clients.txt", os.O_RDONLY, 0644)
	if err != nil {
		return result
	}
	defer in.Close()

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		addr := scanner.Text()
		if addr != "" {
			result = append(result, addr)
		}
	}

	return result
}

// Client wraps an *http.Client with the API key applied to every request.
type Client struct {
	HTTPClient *http.Client
	Address    string
	APIKey     string
}

func newCustomAddrClient(address, apiKey string) (*Client, error) {
	localAddr, err := net.ResolveIPAddr("ip", address)
	if err != nil {
		return nil, err
	}

	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			LocalAddr: &net.TCPAddr{IP: localAddr.IP},
			Timeout:   30 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
	}

	return &Client{HTTPClient: &http.Client{Transport: transport}, Address: address, APIKey: apiKey}, nil
}

// Get issues an authenticated GET and returns the raw response body.
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	return c.do(ctx, http.MethodGet, url, nil)
}

// Post issues an authenticated POST with a JSON body and returns the raw
// response body.
func (c *Client) Post(ctx context.Context, url string, body []byte) ([]byte, error) {
	return c.do(ctx, http.MethodPost, url, body)
}

func (c *Client) do(ctx context.Context, method, url string, body []byte) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, RequestTimeout)
	defer cancel()

	var lastBody []byte
	for attempt := 0; attempt < maxThrottleRetries; attempt++ {
		var reader io.Reader
		if body != nil {
			reader = strings.NewReader(string(body))
		}

		req, err := http.NewRequestWithContext(ctx, method, url, reader)
		if err != nil {
			return nil, newError(KindTransport, "failed to build request", err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-API-Key", c.APIKey)
		req.Header.Set("Connection", "keep-alive")

		resp, err := c.HTTPClient.Do(req)
		if err != nil {
			return nil, newError(KindTransport, fmt.Sprintf("request to %s failed", url), err)
		}

		data, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return nil, newError(KindTransport, "failed reading response body", err)
		}
		lastBody = data

		var probe envelope
		if jsonErr := json.Unmarshal(data, &probe); jsonErr == nil {
			if probe.ErrorCode == 36 || probe.ErrorStatus == "ThrottleLimitExceededMomentarily" {
				glg.Warnf("throttled calling %s, attempt %d", url, attempt+1)
				time.Sleep(time.Second)
				continue
			}
		}

		return data, nil
	}

	return lastBody, nil
}

// decodeEnvelope validates the uniform envelope and maps any failure code to
// the package Kind taxonomy (§4.1).
func decodeEnvelope(body []byte, env *envelope) error {
	if err := json.Unmarshal(body, env); err != nil {
		return newError(KindParse, "failed decoding response envelope", err)
	}

	if kind, isErr := errorKindForCode(env.ErrorCode); isErr {
		return newError(kind, fmt.Sprintf("%s (%d): %s", env.ErrorStatus, env.ErrorCode, env.Message), nil)
	}

	return nil
}

var errResponseMissing = errors.New("envelope succeeded but Response was absent")
