package ordinals

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/pegin-network/pegin-daemon/pkg/util"
)

type ordService struct {
	apiURL string
}

// NewService returns a client for an ord server rest API as an
// ordinals.Service interface.
func NewService(apiURL string) (Service, error) {
	service := &ordService{apiURL}

	if err := service.healthCheck(); err != nil {
		return nil, fmt.Errorf("health check: %w", err)
	}

	return service, nil
}

func (o *ordService) healthCheck() error {
	url := fmt.Sprintf("%s/blockcount", o.apiURL)
	status, resp, err := util.NewHTTPRequest(
		"GET", url, "", map[string]string{"Accept": "application/json"},
	)
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return fmt.Errorf(resp)
	}
	return nil
}

type outputResponse struct {
	Indexed      bool                   `json:"indexed"`
	Spent        bool                   `json:"spent"`
	Value        uint64                 `json:"value"`
	Inscriptions []string               `json:"inscriptions"`
	Runes        map[string]RuneBalance `json:"runes"`
}

func (o *ordService) GetOutput(txid string, vout uint32) (Output, error) {
	url := fmt.Sprintf("%s/output/%s:%d", o.apiURL, txid, vout)
	status, resp, err := util.NewHTTPRequest(
		"GET", url, "", map[string]string{"Accept": "application/json"},
	)
	if err != nil {
		return Output{}, err
	}
	if status != http.StatusOK {
		return Output{}, fmt.Errorf(resp)
	}

	out := outputResponse{}
	if err := json.Unmarshal([]byte(resp), &out); err != nil {
		return Output{}, fmt.Errorf("error on retrieving output: %s", err)
	}

	return Output{
		Indexed:      out.Indexed,
		Spent:        out.Spent,
		Value:        out.Value,
		Inscriptions: out.Inscriptions,
		Runes:        out.Runes,
	}, nil
}
