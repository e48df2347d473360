package esplora

import (
	"fmt"
	"net/http"

	"github.com/pegin-network/pegin-daemon/pkg/explorer"
	"github.com/pegin-network/pegin-daemon/pkg/util"
	"go.uber.org/ratelimit"
)

// requestsPerSecond caps the rate of calls against the esplora endpoint.
// Fetching the prevout script of every utxo costs one extra request each, so
// unspent listings can fan out quickly on well funded addresses.
const requestsPerSecond = 20

type esplora struct {
	apiURL  string
	limiter ratelimit.Limiter
}

// NewService returns a new esplora service as an explorer.Service interface
func NewService(apiURL string) (explorer.Service, error) {
	service := &esplora{
		apiURL:  apiURL,
		limiter: ratelimit.New(requestsPerSecond),
	}

	if err := service.healthCheck(); err != nil {
		return nil, fmt.Errorf("health check: %w", err)
	}

	return service, nil
}

func (e *esplora) healthCheck() error {
	url := fmt.Sprintf("%s/blocks/tip/height", e.apiURL)
	status, resp, err := e.httpGet(url)
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return fmt.Errorf(resp)
	}
	return nil
}

func (e *esplora) httpGet(url string) (int, string, error) {
	e.limiter.Take()
	return util.NewHTTPRequest("GET", url, "", nil)
}

func (e *esplora) httpPost(
	url, body string, headers map[string]string,
) (int, string, error) {
	e.limiter.Take()
	return util.NewHTTPRequest("POST", url, body, headers)
}
