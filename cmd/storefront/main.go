package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"

	"github.com/common-nighthawk/go-figure"
	"github.com/jrsteele09/go-storefront-client/apiclient"
	"github.com/jrsteele09/go-storefront-client/authapi"
	"github.com/jrsteele09/go-storefront-client/credentials"
	"github.com/jrsteele09/go-storefront-client/internal/config"
	"github.com/jrsteele09/go-storefront-client/internal/logger"
	"github.com/jrsteele09/go-storefront-client/internal/metrics"
	"github.com/jrsteele09/go-storefront-client/orders"
	"github.com/jrsteele09/go-storefront-client/products"
	"github.com/jrsteele09/go-storefront-client/session"
	"github.com/jrsteele09/go-storefront-client/token"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

func main() {
	metricsAddr := flag.String("metrics-addr", "", "serve Prometheus metrics on this address, e.g. :9100")
	guard := flag.Bool("guard", false, "discard sign ins overtaken by a later sign in or sign out")
	flag.Parse()

	if err := run(*metricsAddr, *guard); err != nil {
		fmt.Fprintf(os.Stderr, "storefront: %s\n", err)
		os.Exit(1)
	}
}

func run(metricsAddr string, guard bool) error {
	ctx := context.Background()

	c := config.New()
	logger.InitWithWriter(c.GetEnv(), c.GetLogLevel(), os.Stderr)
	displayAppname(c.GetAppName())

	if metricsAddr != "" {
		serveMetrics(metricsAddr)
	}

	store, closeStore, err := newStore(c)
	if err != nil {
		return err
	}
	defer closeStore()

	client, err := apiclient.New(c.GetAPIBaseURL(), apiclient.TokenSourceFor(ctx, c, store))
	if err != nil {
		return err
	}
	auth := authapi.New(client)

	var opts []session.Option
	if guard {
		opts = append(opts, session.WithGenerationGuard())
	}
	sess, err := session.New(auth, store, token.NewDecoder(), opts...)
	if err != nil {
		return err
	}
	defer sess.Close()

	if c.GetRehydrateSession() {
		if ok, err := sess.Restore(ctx); err != nil {
			log.Warn().Err(err).Msg("stored session could not be restored")
		} else if ok {
			log.Info().Msg("session restored from stored credentials")
		}
	}

	sh := newShell(os.Stdout, sess, auth, products.New(client), orders.New(client))
	fmt.Println(`Type "help" for commands.`)
	return sh.run(ctx, os.Stdin)
}

// newStore builds the configured credential backend and its cleanup func.
func newStore(c config.Config) (credentials.Store, func(), error) {
	opts := credentials.OptionsFromConfig(c)
	switch c.GetCredentialBackend() {
	case config.BackendRedis:
		rdb := redis.NewClient(&redis.Options{
			Addr:     c.GetRedisAddr(),
			Password: c.GetRedisPassword(),
		})
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			_ = rdb.Close()
			return nil, nil, fmt.Errorf("[newStore] redis %s: %w", c.GetRedisAddr(), err)
		}
		log.Debug().Str("addr", c.GetRedisAddr()).Str("scope", c.GetCredentialScope()).Msg("using redis credential store")
		return credentials.NewRedisStore(rdb, c.GetCredentialScope(), opts), func() { _ = rdb.Close() }, nil
	default:
		return credentials.NewCookieStore(opts), func() {}, nil
	}
}

func serveMetrics(addr string) {
	reg := prometheus.NewRegistry()
	metrics.RegisterCollectors(reg)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	go func() {
		if err := http.ListenAndServe(addr, mux); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Str("addr", addr).Msg("metrics server stopped")
		}
	}()
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
