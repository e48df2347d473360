package coordinator

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/pegin-network/pegin-daemon/pkg/util"
)

type coordService struct {
	apiURL string
}

// NewService returns a client for the peg coordinator rest API as a
// coordinator.Service interface.
func NewService(apiURL string) Service {
	return &coordService{apiURL}
}

func (c *coordService) RegisterDeposit(
	args RegisterDepositArgs,
) (DepositInfo, error) {
	url := fmt.Sprintf("%s/deposits", c.apiURL)
	body, err := json.Marshal(args)
	if err != nil {
		return DepositInfo{}, err
	}
	headers := map[string]string{
		"Content-Type": "application/json",
	}

	status, resp, err := util.NewHTTPRequest("POST", url, string(body), headers)
	if err != nil {
		return DepositInfo{}, err
	}
	if status != http.StatusOK && status != http.StatusCreated {
		return DepositInfo{}, fmt.Errorf(
			"deposit registration refused with status %d: %s", status, resp,
		)
	}

	info := DepositInfo{}
	if err := json.Unmarshal([]byte(resp), &info); err != nil {
		return DepositInfo{}, fmt.Errorf("invalid registration response: %s", err)
	}

	return info, nil
}

func (c *coordService) GetDeposit(txid string, vout uint32) (DepositInfo, error) {
	url := fmt.Sprintf("%s/deposits/%s/%d", c.apiURL, txid, vout)

	status, resp, err := util.NewHTTPRequest("GET", url, "", nil)
	if err != nil {
		return DepositInfo{}, err
	}
	if status == http.StatusNotFound {
		return DepositInfo{}, ErrDepositNotFound
	}
	if status != http.StatusOK {
		return DepositInfo{}, fmt.Errorf(
			"deposit lookup failed with status %d: %s", status, resp,
		)
	}

	info := DepositInfo{}
	if err := json.Unmarshal([]byte(resp), &info); err != nil {
		return DepositInfo{}, fmt.Errorf("invalid deposit response: %s", err)
	}

	return info, nil
}
