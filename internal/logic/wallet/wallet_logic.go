package wallet

import (
	"context"
	"database/sql"
	"encoding/hex"
	"fmt"
	"strings"

	"everpay-go/internal/constant"
	"everpay-go/internal/model"
	"everpay-go/internal/svc"
	"everpay-go/internal/types"
	"everpay-go/internal/xerr"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/zeromicro/go-zero/core/logx"
)

type WalletLogic struct {
	ctx    context.Context
	svcCtx *svc.ServiceContext
	logx.Logger
}

func NewWalletLogic(ctx context.Context, svcCtx *svc.ServiceContext) *WalletLogic {
	return &WalletLogic{
		ctx:    ctx,
		svcCtx: svcCtx,
		Logger: logx.WithContext(ctx),
	}
}

// WalletInit generates a new secp256k1 key, stores it and returns the everpay account it controls.
func (l *WalletLogic) WalletInit(req *types.WalletInitReq) (*types.WalletInitResp, error) {
	l.Infof("--- 开始处理 /wallet_init 请求, name: %s, chain: %s ---", req.Name, req.ChainType)

	// 1. 校验请求的链是否受支持
	chainType := strings.ToLower(req.ChainType)
	if chainType == "" {
		chainType = string(constant.ChainTypeEthereum)
	}
	if !constant.IsChainSupported(chainType) {
		return nil, xerr.New(xerr.ErrInvalidRequest, "unsupported chain: %s", req.ChainType)
	}
	if l.svcCtx.WalletsDao == nil {
		return nil, xerr.New(xerr.ErrWalletNotFound, "no wallet store configured")
	}

	// 2. 生成密钥和地址，所有支持的链都是 EVM 兼容的
	l.Infof("步骤 1: 生成密钥...")
	privateKey, err := crypto.GenerateKey()
	if err != nil {
		return nil, fmt.Errorf("failed to generate private key for %s: %v", chainType, err)
	}
	address := crypto.PubkeyToAddress(privateKey.PublicKey).Hex()

	// 3. 存入数据库
	// !!! 警告: 在生产环境中，私钥在存入数据库前必须经过强加密 !!!
	l.Infof("步骤 2: 保存钱包 %s...", address)
	newWallet := &model.Wallets{
		Address:             address,
		ChainType:           chainType,
		Name:                req.Name,
		EncryptedPrivateKey: hex.EncodeToString(crypto.FromECDSA(privateKey)),
		PhoneNumber:         sql.NullString{String: req.PhoneNumber, Valid: req.PhoneNumber != ""},
		Email:               sql.NullString{String: req.Email, Valid: req.Email != ""},
	}
	if err := l.svcCtx.WalletsDao.Insert(l.ctx, newWallet); err != nil {
		return nil, fmt.Errorf("failed to save wallet to database: %v", err)
	}

	l.Infof("--- /wallet_init 请求处理完成, account: %s ---", address)
	return &types.WalletInitResp{
		ChainType: chainType,
		Address:   address,
	}, nil
}

// Wallets lists the stored accounts without their keys.
func (l *WalletLogic) Wallets() ([]types.WalletInitResp, error) {
	if l.svcCtx.WalletsDao == nil {
		return nil, xerr.New(xerr.ErrWalletNotFound, "no wallet store configured")
	}
	rows, err := l.svcCtx.WalletsDao.FindAll(l.ctx)
	if err != nil {
		return nil, err
	}
	out := make([]types.WalletInitResp, 0, len(rows))
	for _, w := range rows {
		out = append(out, types.WalletInitResp{ChainType: w.ChainType, Address: w.Address})
	}
	return out, nil
}
