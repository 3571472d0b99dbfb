package svc

import (
	"context"
	"crypto/ecdsa"
	"log"
	"strings"
	"time"

	"everpay-go/internal/api"
	"everpay-go/internal/chain"
	"everpay-go/internal/config"
	"everpay-go/internal/constant"
	"everpay-go/internal/infocache"
	"everpay-go/internal/model"
	"everpay-go/internal/nonce"
	"everpay-go/internal/signer"
	"everpay-go/internal/xerr"

	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/zeromicro/go-zero/core/logx"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type ServiceContext struct {
	Config    config.Config
	Everpay   api.Everpay
	InfoCache *infocache.Cache
	Nonce     nonce.Source

	// Nil when no DSN is configured; wallet_init and stored-key signing are then unavailable.
	WalletsDao model.WalletsDao
	DB         *gorm.DB

	// Nil when no deposit chain is configured.
	ChainBackend chain.Backend
	ChainReader  chain.ReceiptReader
	DepositChain config.ChainConf

	// Nil when no private key is configured.
	DefaultSigner *signer.KeySigner
}

func NewServiceContext(c config.Config) *ServiceContext {
	svcCtx := &ServiceContext{
		Config:    c,
		Everpay:   api.NewClient(EverpayHosts(c.Everpay), c.Everpay.Timeout),
		InfoCache: infocache.New(infocache.WithTTL(c.Everpay.InfoTTL)),
		Nonce:     nonce.NewMillis(),
	}

	if c.Postgres.DSN != "" {
		db, err := initDB(c.Postgres.DSN)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		if err := model.Migrate(db); err != nil {
			log.Fatalf("failed to migrate wallets table: %v", err)
		}
		svcCtx.DB = db
		svcCtx.WalletsDao = model.NewWalletsDao(db)
	}

	if c.Everpay.PrivateKey != "" {
		s, err := signer.NewKeySigner(c.Everpay.PrivateKey)
		if err != nil {
			log.Fatalf("failed to load everpay private key: %v", err)
		}
		if c.Everpay.Account != "" && !strings.EqualFold(c.Everpay.Account, s.Address()) {
			log.Fatalf("everpay account %s does not match private key address %s", c.Everpay.Account, s.Address())
		}
		svcCtx.DefaultSigner = s
		svcCtx.Config.Everpay.Account = s.Address()
	}

	if name := c.Everpay.DepositChain; name != "" {
		chainConf, ok := c.Chains[name]
		if !ok {
			log.Fatalf("deposit chain %s not found in Chains", name)
		}
		client, err := ethclient.Dial(chainConf.RpcUrl)
		if err != nil {
			log.Fatalf("failed to connect to %s rpc: %v", name, err)
		}
		if chainConf.ChainType == "" {
			chainConf.ChainType = string(constant.ChainTypeEthereum)
		}
		svcCtx.ChainBackend = client
		svcCtx.ChainReader = client
		svcCtx.DepositChain = chainConf
		logx.Infof("deposit chain %s (%s, chainId %d) connected", name, chainConf.ChainType, chainConf.ChainId)
	}

	return svcCtx
}

// EverpayHosts resolves the service endpoints, falling back to the public ones for the network Debug selects.
func EverpayHosts(c config.EverpayConf) api.Hosts {
	hosts := api.Hosts{
		Everpay: constant.EverpayHost,
		Express: constant.ExpressHost,
		Dex:     constant.DexHost,
	}
	if c.Debug {
		hosts = api.Hosts{
			Everpay: constant.EverpayDevHost,
			Express: constant.ExpressDevHost,
			Dex:     constant.DexDevHost,
		}
	}
	if c.ApiHost != "" {
		hosts.Everpay = c.ApiHost
	}
	if c.ExpressHost != "" {
		hosts.Express = c.ExpressHost
	}
	if c.DexHost != "" {
		hosts.Dex = c.DexHost
	}
	return hosts
}

// DefaultAccount is the account used when a request names none.
func (s *ServiceContext) DefaultAccount() string {
	return s.Config.Everpay.Account
}

// AccountSigner returns the signer for address: the configured key when it matches,
// otherwise the key stored by wallet_init.
func (s *ServiceContext) AccountSigner(address string) signer.Signer {
	if s.DefaultSigner != nil && strings.EqualFold(address, s.DefaultSigner.Address()) {
		return s.DefaultSigner
	}
	return signer.NewWalletSigner(s.WalletsDao, address)
}

// AccountBroadcaster returns a deposit broadcaster for address on the configured deposit chain.
func (s *ServiceContext) AccountBroadcaster(ctx context.Context, address string) (chain.Broadcaster, error) {
	if s.ChainBackend == nil {
		return nil, xerr.New(xerr.ErrBroadcastUnavailable, "no deposit chain configured")
	}

	var key *ecdsa.PrivateKey
	if s.DefaultSigner != nil && strings.EqualFold(address, s.DefaultSigner.Address()) {
		key = s.DefaultSigner.PrivateKey()
	} else {
		k, err := signer.LoadKey(ctx, s.WalletsDao, address)
		if err != nil {
			return nil, err
		}
		key = k
	}
	return chain.NewEthBroadcaster(s.ChainBackend, key, s.DepositChain.ChainId, s.DepositChain.ChainType), nil
}

func initDB(dsn string) (*gorm.DB, error) {
	newLogger := logger.New(
		log.New(log.Writer(), "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Silent,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: newLogger,
	})
	if err != nil {
		return nil, err
	}

	// 设置连接池
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	return db, nil
}
