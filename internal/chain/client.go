package chain

import (
	"context"
	"fmt"
	"math/big"
	"strings"

	"github.com/blues/cls/internal/config"
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
)

// ERC-1155合约ABI定义（仅所有权查询部分）
const contractABI = `[
	{
		"constant": true,
		"inputs": [
			{"name": "account", "type": "address"},
			{"name": "id", "type": "uint256"}
		],
		"name": "balanceOf",
		"outputs": [{"name": "", "type": "uint256"}],
		"stateMutability": "view",
		"type": "function"
	}
]`

// Client 链上所有权查询客户端。只读：本服务从不发起交易，
// 铸造和认领都由外部钱包协作方完成。
type Client struct {
	client       *ethclient.Client
	contractAddr common.Address
	contractABI  abi.ABI
}

func Init(cfg config.ChainConfig) (*Client, error) {
	// 连接以太坊客户端
	client, err := ethclient.Dial(cfg.RpcUrl)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to ethereum client: %w", err)
	}

	// 解析合约地址
	if !common.IsHexAddress(cfg.ContractAddr) {
		return nil, fmt.Errorf("invalid contract address: %s", cfg.ContractAddr)
	}
	contractAddr := common.HexToAddress(cfg.ContractAddr)

	// 解析ABI
	parsedABI, err := abi.JSON(strings.NewReader(contractABI))
	if err != nil {
		return nil, fmt.Errorf("failed to parse contract ABI: %w", err)
	}

	return &Client{
		client:       client,
		contractAddr: contractAddr,
		contractABI:  parsedABI,
	}, nil
}

// BalanceOf 查询holder地址当前持有指定token的数量，
// 实现 logic.OwnershipQuery；超时由调用方通过ctx控制
func (c *Client) BalanceOf(ctx context.Context, holder string, tokenId string) (*big.Int, error) {
	if !common.IsHexAddress(holder) {
		return nil, fmt.Errorf("invalid holder address: %s", holder)
	}

	id, ok := new(big.Int).SetString(tokenId, 10)
	if !ok {
		return nil, fmt.Errorf("invalid token id: %s", tokenId)
	}

	data, err := c.contractABI.Pack("balanceOf", common.HexToAddress(holder), id)
	if err != nil {
		return nil, fmt.Errorf("failed to pack balanceOf call: %w", err)
	}

	result, err := c.client.CallContract(ctx, ethereum.CallMsg{
		To:   &c.contractAddr,
		Data: data,
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("balanceOf call failed: %w", err)
	}

	values, err := c.contractABI.Unpack("balanceOf", result)
	if err != nil {
		return nil, fmt.Errorf("failed to unpack balanceOf result: %w", err)
	}
	if len(values) != 1 {
		return nil, fmt.Errorf("unexpected balanceOf result length: %d", len(values))
	}

	balance, ok := values[0].(*big.Int)
	if !ok {
		return nil, fmt.Errorf("unexpected balanceOf result type: %T", values[0])
	}

	return balance, nil
}

// Close 关闭底层RPC连接
func (c *Client) Close() {
	c.client.Close()
}
