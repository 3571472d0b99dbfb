package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"everpay-go/internal/config"
	"everpay-go/internal/handler"
	"everpay-go/internal/svc"

	"github.com/zeromicro/go-zero/core/conf"
	"github.com/zeromicro/go-zero/rest"
	"github.com/zeromicro/go-zero/rest/httpx"
)

var configFile = flag.String("f", "etc/everpay.yaml", "the config file")

func main() {
	flag.Parse()

	var c config.Config
	conf.MustLoad(*configFile, &c)

	server := rest.MustNewServer(c.RestConf)
	defer server.Stop()

	ctx := svc.NewServiceContext(c)
	handler.RegisterHandlers(server, ctx)
	httpx.SetErrorHandlerCtx(handler.ErrorHandler)

	// 设置优雅退出
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	hosts := svc.EverpayHosts(c.Everpay)
	fmt.Printf("Starting server at %s:%d...\n", c.Host, c.Port)
	fmt.Printf("🔗 everpay api: %s, express: %s, dex: %s\n", hosts.Everpay, hosts.Express, hosts.Dex)
	if account := ctx.DefaultAccount(); account != "" {
		fmt.Printf("👛 默认账户: %s\n", account)
	}

	// 在独立的goroutine中启动服务器
	go func() {
		server.Start()
	}()

	// 等待退出信号
	<-quit
	fmt.Println("\n🛑 收到退出信号，正在优雅关闭服务...")
	fmt.Println("✅ 服务已安全退出")
}
