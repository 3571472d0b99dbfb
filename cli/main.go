package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"

	"github.com/zeromicro/go-zero/rest/httpc"
)

const usage = `usage: cli [-server http://localhost:8888] <command> [flags]

commands:
  wallet_init  -chain ethereum -name NAME [-phone P] [-email E]
  info
  balance      -symbol USDT [-account ADDR]
  balances     [-account ADDR]
  transfer     -symbol USDT -amount 1.5 -to ADDR [-account ADDR]
  withdraw     -symbol USDT -amount 100 [-to ADDR] [-chain CHAIN] [-fee FEE] [-quick] [-account ADDR]
  deposit      -symbol ETH -amount 0.01 [-account ADDR]
  deposit_status -hash CHAIN_TX_HASH
  tx           -hash EVERHASH
`

func main() {
	server := flag.String("server", "http://localhost:8888", "everpay-api 服务地址")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()
	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(2)
	}

	// 1. 解析子命令参数
	cmd, args := flag.Arg(0), flag.Args()[1:]
	fs := flag.NewFlagSet(cmd, flag.ExitOnError)
	account := fs.String("account", "", "everpay 账户 (默认使用服务端配置的账户)")
	symbol := fs.String("symbol", "", "代币符号, 例如 USDT")
	amount := fs.String("amount", "", "数量 (人类可读单位)")
	to := fs.String("to", "", "接收地址")
	chain := fs.String("chain", "", "链类型, 例如 ethereum")
	fee := fs.String("fee", "", "自定义手续费 (可选)")
	quick := fs.Bool("quick", false, "使用快速提现")
	hash := fs.String("hash", "", "everHash 或链上交易哈希")
	name := fs.String("name", "My-CLI-Wallet", "为钱包自定义的名称")
	phone := fs.String("phone", "", "用户的手机号 (可选)")
	email := fs.String("email", "", "用户的邮箱地址 (可选)")
	if err := fs.Parse(args); err != nil {
		log.Fatalf("错误: 参数解析失败: %v", err)
	}

	// 2. 准备请求
	var (
		method = http.MethodPost
		path   string
		body   map[string]any
	)
	switch cmd {
	case "wallet_init":
		path = "/api/wallet_init"
		body = map[string]any{"chain_type": *chain, "name": *name, "phone_number": *phone, "email": *email}
	case "info":
		method, path = http.MethodGet, "/api/everpay/info"
	case "balance":
		path = "/api/everpay/balance"
		body = map[string]any{"account": *account, "symbol": *symbol}
	case "balances":
		path = "/api/everpay/balances"
		body = map[string]any{"account": *account}
	case "transfer":
		path = "/api/everpay/transfer"
		body = map[string]any{"account": *account, "symbol": *symbol, "amount": *amount, "to": *to}
	case "withdraw":
		path = "/api/everpay/withdraw"
		body = map[string]any{"account": *account, "symbol": *symbol, "amount": *amount, "to": *to,
			"chain_type": *chain, "fee": *fee, "quick_mode": *quick}
	case "deposit":
		path = "/api/everpay/deposit"
		body = map[string]any{"account": *account, "symbol": *symbol, "amount": *amount}
	case "deposit_status":
		path = "/api/everpay/deposit_status"
		body = map[string]any{"chain_tx_hash": *hash}
	case "tx":
		path = "/api/everpay/tx"
		body = map[string]any{"ever_hash": *hash}
	default:
		flag.Usage()
		os.Exit(2)
	}

	var reader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			log.Fatalf("错误: 无法打包 JSON 数据: %v", err)
		}
		fmt.Printf("请求体: %s\n", string(jsonData))
		reader = bytes.NewReader(jsonData)
	}

	url := *server + path
	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		log.Fatalf("错误: 无法创建请求: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	// 3. 发送请求
	fmt.Printf("正向 %s 发送请求...\n", url)
	resp, err := httpc.DoRequest(req)
	if err != nil {
		log.Fatalf("错误: 发送请求失败: %v", err)
	}
	defer resp.Body.Close()

	// 4. 读取并打印响应结果
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Fatalf("错误: 读取响应体失败: %v", err)
	}

	fmt.Println("\n--- 响应结果 ---")
	fmt.Printf("HTTP 状态码: %d\n", resp.StatusCode)
	var pretty bytes.Buffer
	if json.Indent(&pretty, respBody, "", "  ") == nil {
		fmt.Printf("响应体:\n%s\n", pretty.String())
	} else {
		fmt.Printf("响应体: %s\n", string(respBody))
	}
}
