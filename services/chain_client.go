package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// balanceOf(address,uint256) function selector.
const balanceOfSelector = "00fdd58e"

// ChainClient performs read-only token balance queries.
type ChainClient interface {
	BalanceOf(ctx context.Context, address string, tokenID uint64) (uint64, error)
}

// JSONRPCChainClient issues eth_call requests against a JSON-RPC endpoint.
type JSONRPCChainClient struct {
	rpcURL     string
	contract   string
	httpClient *http.Client
}

func NewJSONRPCChainClient(rpcURL, contract string) *JSONRPCChainClient {
	return &JSONRPCChainClient{
		rpcURL:   rpcURL,
		contract: contract,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type rpcRequest struct {
	JSONRPC string        `json:"jsonrpc"`
	ID      int           `json:"id"`
	Method  string        `json:"method"`
	Params  []interface{} `json:"params"`
}

type rpcCallParams struct {
	To   string `json:"to"`
	Data string `json:"data"`
}

type rpcResponse struct {
	Result string `json:"result"`
	Error  *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// BalanceOf encodes a balanceOf(address,uint256) call and decodes the
// returned 32-byte word.
func (c *JSONRPCChainClient) BalanceOf(ctx context.Context, address string, tokenID uint64) (uint64, error) {
	data, err := EncodeBalanceOfCall(address, tokenID)
	if err != nil {
		return 0, err
	}

	reqBody, err := json.Marshal(rpcRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  "eth_call",
		Params:  []interface{}{rpcCallParams{To: c.contract, Data: data}, "latest"},
	})
	if err != nil {
		return 0, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.rpcURL, bytes.NewReader(reqBody))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("rpc returned status %d", resp.StatusCode)
	}

	var rpcResp rpcResponse
	if err := json.NewDecoder(resp.Body).Decode(&rpcResp); err != nil {
		return 0, fmt.Errorf("failed to decode rpc response: %w", err)
	}
	if rpcResp.Error != nil {
		return 0, fmt.Errorf("rpc error %d: %s", rpcResp.Error.Code, rpcResp.Error.Message)
	}

	return decodeUint256Word(rpcResp.Result)
}

// EncodeBalanceOfCall builds the ABI-encoded calldata for
// balanceOf(address,uint256): 4-byte selector plus two 32-byte words.
func EncodeBalanceOfCall(address string, tokenID uint64) (string, error) {
	addr := strings.ToLower(strings.TrimPrefix(address, "0x"))
	if len(addr) != 40 {
		return "", fmt.Errorf("invalid address %q", address)
	}
	paddedAddr := strings.Repeat("0", 64-len(addr)) + addr
	return fmt.Sprintf("0x%s%s%064x", balanceOfSelector, paddedAddr, tokenID), nil
}

func decodeUint256Word(result string) (uint64, error) {
	hexVal := strings.TrimLeft(strings.TrimPrefix(result, "0x"), "0")
	if hexVal == "" {
		return 0, nil
	}
	// Membership only asks whether the balance is positive; anything
	// wider than 64 bits is clamped rather than rejected.
	if len(hexVal) > 16 {
		return math.MaxUint64, nil
	}
	balance, err := strconv.ParseUint(hexVal, 16, 64)
	if err != nil {
		return 0, fmt.Errorf("malformed balance %q: %w", result, err)
	}
	return balance, nil
}
