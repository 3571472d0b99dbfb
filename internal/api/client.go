package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"everpay-go/internal/types"
	"everpay-go/internal/xerr"

	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/go-zero/rest/httpc"
)

// Everpay is the request/response boundary of the everpay ledger and its satellite services.
type Everpay interface {
	Info(ctx context.Context) (types.EverpayInfo, error)
	ExpressInfo(ctx context.Context) (types.ExpressInfo, error)
	DexInfo(ctx context.Context) (types.DexInfo, error)
	Balance(ctx context.Context, tokenTag, account string) (*types.BalanceResult, error)
	Balances(ctx context.Context, account string) (*types.BalancesResult, error)
	Txs(ctx context.Context, filter types.TxsFilter) (*types.TxsResult, error)
	TxByHash(ctx context.Context, everHash string) (*types.EverpayTransaction, error)
	MintedTxByChainTxHash(ctx context.Context, chainTxHash string) (*types.EverpayTransaction, error)
	PostTx(ctx context.Context, tx *types.EverpayTx) (*types.PostTxResult, error)
}

// Hosts are the base URLs of the three services.
type Hosts struct {
	Everpay string
	Express string
	Dex     string
}

// Client talks to everpay over HTTP. It never retries; failures surface as ErrNetworkUnavailable.
type Client struct {
	hosts   Hosts
	service httpc.Service
}

// NewClient creates a Client. A zero timeout leaves the transport's default in place.
func NewClient(hosts Hosts, timeout time.Duration) *Client {
	cli := &http.Client{Timeout: timeout}
	return &Client{
		hosts: Hosts{
			Everpay: strings.TrimRight(hosts.Everpay, "/"),
			Express: strings.TrimRight(hosts.Express, "/"),
			Dex:     strings.TrimRight(hosts.Dex, "/"),
		},
		service: httpc.NewServiceWithClient("everpay-api", cli),
	}
}

func (c *Client) Info(ctx context.Context) (types.EverpayInfo, error) {
	var info types.EverpayInfo
	err := c.get(ctx, c.hosts.Everpay+"/info", &info)
	return info, err
}

func (c *Client) ExpressInfo(ctx context.Context) (types.ExpressInfo, error) {
	var info types.ExpressInfo
	err := c.get(ctx, c.hosts.Express+"/withdraw/info", &info)
	return info, err
}

func (c *Client) DexInfo(ctx context.Context) (types.DexInfo, error) {
	var info types.DexInfo
	err := c.get(ctx, c.hosts.Dex+"/info", &info)
	return info, err
}

func (c *Client) Balance(ctx context.Context, tokenTag, account string) (*types.BalanceResult, error) {
	var out types.BalanceResult
	u := fmt.Sprintf("%s/balance/%s/%s", c.hosts.Everpay, url.PathEscape(tokenTag), url.PathEscape(account))
	if err := c.get(ctx, u, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Balances(ctx context.Context, account string) (*types.BalancesResult, error) {
	var out types.BalancesResult
	if err := c.get(ctx, c.hosts.Everpay+"/balances/"+url.PathEscape(account), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Txs(ctx context.Context, filter types.TxsFilter) (*types.TxsResult, error) {
	u := c.hosts.Everpay + "/txs"
	if filter.Account != "" {
		u += "/" + url.PathEscape(filter.Account)
	}
	query := url.Values{}
	if filter.Page > 0 {
		query.Set("page", strconv.Itoa(filter.Page))
	}
	if filter.TokenID != "" {
		query.Set("tokenId", filter.TokenID)
	}
	if filter.Action != "" {
		query.Set("action", filter.Action)
	}
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var out types.TxsResult
	if err := c.get(ctx, u, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// everpay wraps single transaction lookups in {"tx": {...}}
type txWrapper struct {
	Tx types.EverpayTransaction `json:"tx"`
}

func (c *Client) TxByHash(ctx context.Context, everHash string) (*types.EverpayTransaction, error) {
	var out txWrapper
	if err := c.get(ctx, c.hosts.Everpay+"/tx/"+url.PathEscape(everHash), &out); err != nil {
		return nil, err
	}
	return &out.Tx, nil
}

func (c *Client) MintedTxByChainTxHash(ctx context.Context, chainTxHash string) (*types.EverpayTransaction, error) {
	var out txWrapper
	if err := c.get(ctx, c.hosts.Everpay+"/minted/"+url.PathEscape(chainTxHash), &out); err != nil {
		return nil, err
	}
	return &out.Tx, nil
}

func (c *Client) PostTx(ctx context.Context, tx *types.EverpayTx) (*types.PostTxResult, error) {
	body, err := json.Marshal(tx)
	if err != nil {
		return nil, fmt.Errorf("marshal everpay tx: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.hosts.Everpay+"/tx", bytes.NewReader(body))
	if err != nil {
		return nil, xerr.Wrap(xerr.ErrNetworkUnavailable, err, "build post tx request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.service.DoRequest(req)
	if err != nil {
		logx.WithContext(ctx).Errorf("post tx failed: %v", err)
		return nil, xerr.Wrap(xerr.ErrNetworkUnavailable, err, "post tx")
	}

	var out types.PostTxResult
	if err := decode(resp, &out); err != nil {
		logx.WithContext(ctx).Errorf("post tx rejected: %v", err)
		return nil, err
	}
	return &out, nil
}

func (c *Client) get(ctx context.Context, u string, val any) error {
	resp, err := c.service.Do(ctx, http.MethodGet, u, nil)
	if err != nil {
		logx.WithContext(ctx).Errorf("GET %s failed: %v", u, err)
		return xerr.Wrap(xerr.ErrNetworkUnavailable, err, "GET %s", u)
	}
	if err := decode(resp, val); err != nil {
		logx.WithContext(ctx).Errorf("GET %s: %v", u, err)
		return err
	}
	return nil
}

// ErrorBody is the error payload everpay returns with non-2xx statuses.
type ErrorBody struct {
	Err string `json:"error"`
}

func decode(resp *http.Response, val any) error {
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return xerr.Wrap(xerr.ErrNetworkUnavailable, err, "read response body")
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		var eb ErrorBody
		msg := strings.TrimSpace(string(body))
		if json.Unmarshal(body, &eb) == nil && eb.Err != "" {
			msg = eb.Err
		}
		return xerr.New(xerr.ErrNetworkUnavailable, "status %d: %s", resp.StatusCode, msg)
	}

	if err := json.Unmarshal(body, val); err != nil {
		return xerr.Wrap(xerr.ErrNetworkUnavailable, err, "decode response")
	}
	return nil
}
