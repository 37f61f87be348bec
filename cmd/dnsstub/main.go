// Command dnsstub looks up the IPv4 addresses of one domain name.
//
//	dnsstub [flags] NAME
//
// The nameserver comes from -server, the config file, $DNSSTUB_NAMESERVER
// or the first nameserver in /etc/resolv.conf, in that order. Addresses
// are printed one per line in answer order.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/jroosing/dnsstub/internal/config"
	"github.com/jroosing/dnsstub/internal/logging"
	"github.com/jroosing/dnsstub/internal/resolver"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes the command and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("dnsstub", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		configPath = fs.String("config", "", "Path to YAML configuration file (or set DNSSTUB_CONFIG)")
		server     = fs.String("server", "", "Nameserver HOST[:PORT] (default: first nameserver in resolv.conf)")
		timeout    = fs.Duration("timeout", 0, "Maximum wait for a reply (default 5s)")
		recvSize   = fs.Int("recv-size", 0, "UDP receive buffer size in bytes (default 512)")
		debug      = fs.Bool("debug", false, "Enable debug logging")
		jsonLogs   = fs.Bool("json-logs", false, "Enable JSON structured logging")
		noVerify   = fs.Bool("no-verify", false, "Accept the first reply without checking ID and question")
	)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "usage: dnsstub [flags] NAME\n\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 1
	}
	if fs.NArg() != 1 {
		fmt.Fprintf(stderr, "dnsstub: expected exactly one domain name, got %d arguments\n", fs.NArg())
		fs.Usage()
		return 1
	}
	name := fs.Arg(0)

	cfg, err := config.Load(config.ResolveConfigPath(*configPath))
	if err != nil {
		fmt.Fprintf(stderr, "dnsstub: %v\n", err)
		return 1
	}
	if *server != "" {
		cfg.Resolver.Nameserver = *server
	}
	if *timeout != 0 {
		cfg.Resolver.Timeout = timeout.String()
	}
	if *recvSize != 0 {
		cfg.Resolver.RecvSize = *recvSize
	}
	if *noVerify {
		cfg.Resolver.VerifyResponse = false
	}
	if *jsonLogs {
		cfg.Logging.Structured = true
		cfg.Logging.StructuredFormat = "json"
	}
	if *debug {
		cfg.Logging.Level = "DEBUG"
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "dnsstub: %v\n", err)
		return 1
	}

	logger := logging.Configure(logging.Config{
		Level:            cfg.Logging.Level,
		Structured:       cfg.Logging.Structured,
		StructuredFormat: cfg.Logging.StructuredFormat,
		IncludePID:       cfg.Logging.IncludePID,
		ExtraFields:      cfg.Logging.ExtraFields,
		Output:           stderr,
	})

	nameserver, err := cfg.NameserverAddr()
	if err != nil {
		fmt.Fprintf(stderr, "dnsstub: %v\n", err)
		return 1
	}
	opts := resolver.DefaultOptions(nameserver)
	opts.Timeout = cfg.TimeoutDuration()
	opts.RecvSize = cfg.Resolver.RecvSize
	opts.VerifyResponse = cfg.Resolver.VerifyResponse
	opts.SocketReceiveBuffer = cfg.Resolver.SocketReceiveBuffer
	opts.Logger = logger
	r, err := resolver.New(opts)
	if err != nil {
		fmt.Fprintf(stderr, "dnsstub: %v\n", err)
		return 1
	}
	logger.Debug("resolving", "name", name, "nameserver", r.Nameserver(), "timeout", cfg.Resolver.Timeout)

	addrs, err := r.Query(ctx, name)
	if err != nil {
		fmt.Fprintf(stderr, "dnsstub: %v\n", err)
		return 1
	}
	for _, ip := range addrs {
		fmt.Fprintln(stdout, ip.String())
	}
	return 0
}
