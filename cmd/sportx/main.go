// Command sportx is a small read-only console for the relayer: it loads
// credentials from the environment, initializes a client, and prints
// metadata, sports, leagues, or active markets as indented JSON.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/sportx-bet/go-sportx/pkg/config"
	"github.com/sportx-bet/go-sportx/pkg/logger"
	"github.com/sportx-bet/go-sportx/sportx/client"
	"github.com/sportx-bet/go-sportx/sportx/types"
)

var (
	configFile = flag.String("config", "", "optional YAML config file")
	env        = flag.String("env", "", "override environment (production, mumbai, rinkeby)")
	timeout    = flag.Duration("timeout", 30*time.Second, "overall command deadline")
)

func usage() {
	fmt.Fprintf(os.Stderr, "usage: sportx [flags] <metadata|sports|leagues|markets|orders>\n")
	flag.PrintDefaults()
}

func main() {
	flag.Usage = usage
	flag.Parse()
	if flag.NArg() != 1 {
		usage()
		os.Exit(2)
	}
	command := flag.Arg(0)

	var (
		cfg *config.Config
		err error
	)
	if *configFile != "" {
		cfg, err = config.LoadFile(*configFile)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	if *env != "" {
		cfg.Environment = *env
	}

	log := logger.New(logger.Config{Level: cfg.LogLevel, OutputFile: cfg.LogFile})

	opts := []client.Option{client.WithLogger(logger.Component(log, "cli"))}
	if cfg.PrivateKey != "" {
		opts = append(opts, client.WithPrivateKey(cfg.PrivateKey))
	} else {
		opts = append(opts, client.WithWallet(cfg.WalletRPC, cfg.WalletAddr))
	}
	if cfg.EthereumRPC != "" {
		opts = append(opts, client.WithEthereumRPC(cfg.EthereumRPC))
	}

	c, err := client.New(types.Environment(cfg.Environment), opts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "client: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	if err := c.Init(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "init: %v\n", err)
		os.Exit(1)
	}
	defer c.Close()

	var result interface{}
	switch command {
	case "metadata":
		result, err = c.Metadata()
	case "sports":
		result, err = c.Sports(ctx)
	case "leagues":
		result, err = c.Leagues(ctx)
	case "markets":
		result, err = c.ActiveMarkets(ctx)
	case "orders":
		result, err = c.ActiveOrders(ctx, c.Address())
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", command, err)
		os.Exit(1)
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "encode: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(out))
}
