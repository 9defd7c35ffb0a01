package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	logging "github.com/inconshreveable/log15"
	"github.com/mattn/go-isatty"
	"github.com/oklog/run"
	"github.com/spf13/cobra"
	"github.com/ulule/limiter"
	"golang.org/x/net/http2"

	"boscoin.io/minidao/cmd/minidao/common"
	minicommon "boscoin.io/minidao/lib/common"
	"boscoin.io/minidao/lib/contract"
	"boscoin.io/minidao/lib/metrics"
	"boscoin.io/minidao/lib/network/api"
	"boscoin.io/minidao/lib/network/httpcache"
	"boscoin.io/minidao/lib/node/runner"
	"boscoin.io/minidao/lib/storage"
)

const (
	defaultNetwork  string      = "http"
	defaultPort     int         = minicommon.DefaultPort
	defaultHost     string      = "0.0.0.0"
	defaultLogLevel logging.Lvl = logging.LvlInfo
)

var (
	flagNetworkID      string = minicommon.GetENVValue("MINIDAO_NETWORK_ID", "")
	flagLogLevel       string = minicommon.GetENVValue("MINIDAO_LOG_LEVEL", defaultLogLevel.String())
	flagLogOutput      string = minicommon.GetENVValue("MINIDAO_LOG_OUTPUT", "")
	flagVerbose        bool   = minicommon.GetENVValue("MINIDAO_VERBOSE", "0") == "1"
	flagEndpointString string = minicommon.GetENVValue(
		"MINIDAO_ENDPOINT",
		fmt.Sprintf("%s://%s:%d", defaultNetwork, defaultHost, defaultPort),
	)
	flagStorageConfigString string
	flagTLSCertFile         string = minicommon.GetENVValue("MINIDAO_TLS_CERT", "minidao.crt")
	flagTLSKeyFile          string = minicommon.GetENVValue("MINIDAO_TLS_KEY", "minidao.key")
	flagRequestTimeout      string = minicommon.GetENVValue("MINIDAO_REQUEST_TIMEOUT", "10s")
	flagShutdownTimeout     string = minicommon.GetENVValue("MINIDAO_SHUTDOWN_TIMEOUT", "5s")
	flagKeypairCacheSize    string = minicommon.GetENVValue("MINIDAO_KEYPAIR_CACHE_SIZE", strconv.Itoa(minicommon.DefaultKeypairCacheSize))
	flagHTTPCacheAdapter    string = minicommon.GetENVValue("MINIDAO_HTTP_CACHE_ADAPTER", "")
	flagHTTPCachePoolSize   string = minicommon.GetENVValue("MINIDAO_HTTP_CACHE_POOL_SIZE", strconv.Itoa(minicommon.HTTPCachePoolSize))
	flagHTTPCacheRedisAddrs string = minicommon.GetENVValue("MINIDAO_HTTP_CACHE_REDIS_ADDRS", "")
	flagHTTPCacheTTL        string = minicommon.GetENVValue("MINIDAO_HTTP_CACHE_TTL", minicommon.HTTPCacheTTL.String())
	flagRateLimitAPI        string = minicommon.GetENVValue("MINIDAO_RATE_LIMIT_API", "")
)

var (
	nodeCmd *cobra.Command

	nodeEndpoint  *minicommon.Endpoint
	serverConfig  runner.ServerConfig
	storageConfig *storage.Config
	nodeConfig    minicommon.Config
	logLevel      logging.Lvl
	logHandler    logging.Handler
	log           logging.Logger = logging.New("module", "main")
)

func init() {
	nodeCmd = &cobra.Command{
		Use:   "node",
		Short: "Run minidao node",
		Run: func(c *cobra.Command, args []string) {
			if err := parseFlagsNode(); err != nil {
				common.PrintFlagsError(c, err.flag, err.err)
			}

			runNode()
		},
	}

	currentDirectory, err := os.Getwd()
	if err == nil {
		currentDirectory, err = filepath.Abs(currentDirectory)
	}
	if err != nil {
		common.PrintFlagsError(nodeCmd, "--storage", err)
	}
	flagStorageConfigString = minicommon.GetENVValue("MINIDAO_STORAGE", fmt.Sprintf("file://%s/db", currentDirectory))

	nodeCmd.Flags().StringVar(&flagNetworkID, "network-id", flagNetworkID, "network id")
	nodeCmd.Flags().StringVar(&flagLogLevel, "log-level", flagLogLevel, "log level, {crit, error, warn, info, debug}")
	nodeCmd.Flags().StringVar(&flagLogOutput, "log-output", flagLogOutput, "set log output file")
	nodeCmd.Flags().BoolVar(&flagVerbose, "verbose", flagVerbose, "verbose")
	nodeCmd.Flags().StringVar(&flagEndpointString, "endpoint", flagEndpointString, "endpoint uri to listen on")
	nodeCmd.Flags().StringVar(&flagStorageConfigString, "storage", flagStorageConfigString, "storage uri, {file:///<path>, memory://}")
	nodeCmd.Flags().StringVar(&flagTLSCertFile, "tls-cert", flagTLSCertFile, "tls certificate file, used for https endpoint")
	nodeCmd.Flags().StringVar(&flagTLSKeyFile, "tls-key", flagTLSKeyFile, "tls key file, used for https endpoint")
	nodeCmd.Flags().StringVar(&flagRequestTimeout, "request-timeout", flagRequestTimeout, "timeout of the json-rpc requests")
	nodeCmd.Flags().StringVar(&flagShutdownTimeout, "shutdown-timeout", flagShutdownTimeout, "timeout for the graceful shutdown")
	nodeCmd.Flags().StringVar(&flagKeypairCacheSize, "keypair-cache-size", flagKeypairCacheSize, "number of the parsed public addresses kept")
	nodeCmd.Flags().StringVar(&flagHTTPCacheAdapter, "http-cache-adapter", flagHTTPCacheAdapter, "http cache adapter, {mem, redis}; empty disables the cache")
	nodeCmd.Flags().StringVar(&flagHTTPCachePoolSize, "http-cache-pool-size", flagHTTPCachePoolSize, "number of responses kept by the mem adapter")
	nodeCmd.Flags().StringVar(&flagHTTPCacheRedisAddrs, "http-cache-redis-addrs", flagHTTPCacheRedisAddrs, "redis addresses, '<name>=<host:port>,...'")
	nodeCmd.Flags().StringVar(&flagHTTPCacheTTL, "http-cache-ttl", flagHTTPCacheTTL, "lifetime of a cached response")
	nodeCmd.Flags().StringVar(&flagRateLimitAPI, "rate-limit-api", flagRateLimitAPI, "per-ip limit of api requests, like '100-S'; empty is unlimited")

	rootCmd.AddCommand(nodeCmd)
}

type flagError struct {
	flag string
	err  error
}

func parseDurationFlag(name, v string) (time.Duration, *flagError) {
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, &flagError{name, err}
	}
	if d < 0 {
		return 0, &flagError{name, errors.New("must not be negative")}
	}
	return d, nil
}

func parseIntFlag(name, v string) (int, *flagError) {
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, &flagError{name, err}
	}
	if i < 1 {
		return 0, &flagError{name, errors.New("must be greater than 0")}
	}
	return i, nil
}

func parseFlagsNode() *flagError {
	var err error
	var ferr *flagError

	if len(flagNetworkID) < 1 {
		return &flagError{"--network-id", errors.New("must be given")}
	}

	nodeConfig = minicommon.NewConfig([]byte(flagNetworkID))

	if nodeEndpoint, err = minicommon.ParseEndpoint(flagEndpointString); err != nil {
		return &flagError{"--endpoint", err}
	}

	if nodeEndpoint.Scheme == "https" {
		if _, err = os.Stat(flagTLSCertFile); os.IsNotExist(err) {
			return &flagError{"--tls-cert", err}
		}
		if _, err = os.Stat(flagTLSKeyFile); os.IsNotExist(err) {
			return &flagError{"--tls-key", err}
		}

		queries := nodeEndpoint.Query()
		queries.Set("TLSCertFile", flagTLSCertFile)
		queries.Set("TLSKeyFile", flagTLSKeyFile)
		nodeEndpoint.RawQuery = queries.Encode()
	}
	flagEndpointString = nodeEndpoint.String()

	if serverConfig, err = runner.NewServerConfigFromEndpoint(nodeEndpoint); err != nil {
		return &flagError{"--endpoint", err}
	}

	if storageConfig, err = storage.NewConfigFromString(flagStorageConfigString); err != nil {
		return &flagError{"--storage", err}
	}

	if nodeConfig.RequestTimeout, ferr = parseDurationFlag("--request-timeout", flagRequestTimeout); ferr != nil {
		return ferr
	}
	if nodeConfig.ShutdownTimeout, ferr = parseDurationFlag("--shutdown-timeout", flagShutdownTimeout); ferr != nil {
		return ferr
	}
	if nodeConfig.KeypairCacheSize, ferr = parseIntFlag("--keypair-cache-size", flagKeypairCacheSize); ferr != nil {
		return ferr
	}

	switch flagHTTPCacheAdapter {
	case "":
	case minicommon.HTTPCacheMemoryAdapterName:
		if nodeConfig.HTTPCachePoolSize, ferr = parseIntFlag("--http-cache-pool-size", flagHTTPCachePoolSize); ferr != nil {
			return ferr
		}
	case minicommon.HTTPCacheRedisAdapterName:
		if nodeConfig.HTTPCacheRedisAddrs, err = common.ParseRedisAddrs(flagHTTPCacheRedisAddrs); err != nil {
			return &flagError{"--http-cache-redis-addrs", err}
		} else if len(nodeConfig.HTTPCacheRedisAddrs) < 1 {
			return &flagError{"--http-cache-redis-addrs", errors.New("must be given for redis adapter")}
		}
	default:
		return &flagError{"--http-cache-adapter", fmt.Errorf("unknown adapter, %q", flagHTTPCacheAdapter)}
	}
	nodeConfig.HTTPCacheAdapter = flagHTTPCacheAdapter

	if nodeConfig.HTTPCacheTTL, ferr = parseDurationFlag("--http-cache-ttl", flagHTTPCacheTTL); ferr != nil {
		return ferr
	}

	if len(flagRateLimitAPI) > 0 {
		if _, err = limiter.NewRateFromFormatted(flagRateLimitAPI); err != nil {
			return &flagError{"--rate-limit-api", err}
		}
	}
	nodeConfig.RateLimitAPI = flagRateLimitAPI

	if logLevel, err = logging.LvlFromString(flagLogLevel); err != nil {
		return &flagError{"--log-level", err}
	}

	var formatter logging.Format
	if isatty.IsTerminal(os.Stdout.Fd()) {
		formatter = logging.TerminalFormat()
	} else {
		formatter = minicommon.JsonFormatEx(false, true)
	}
	logHandler = logging.StreamHandler(os.Stdout, formatter)

	if len(flagLogOutput) < 1 {
		flagLogOutput = "<stdout>"
	} else if logHandler, err = logging.FileHandler(flagLogOutput, minicommon.JsonFormatEx(false, true)); err != nil {
		return &flagError{"--log-output", err}
	}

	logHandler = logging.CallerFileHandler(logHandler)

	log.SetHandler(logging.LvlFilterHandler(logLevel, logHandler))
	runner.SetLogging(logLevel, logHandler)
	api.SetLogging(logLevel, logHandler)
	httpcache.SetLogging(logLevel, logHandler)
	contract.SetLogging(logLevel, logHandler)
	storage.SetLogging(logLevel, logHandler)

	log.Info("Starting minidao")

	log.Debug(
		"parsed flags:",
		"\n\tnetwork-id", flagNetworkID,
		"\n\tendpoint", flagEndpointString,
		"\n\tstorage", flagStorageConfigString,
		"\n\tlog-level", flagLogLevel,
		"\n\tlog-output", flagLogOutput,
		"\n\trequest-timeout", flagRequestTimeout,
		"\n\tshutdown-timeout", flagShutdownTimeout,
		"\n\tkeypair-cache-size", flagKeypairCacheSize,
		"\n\thttp-cache-adapter", flagHTTPCacheAdapter,
		"\n\thttp-cache-ttl", flagHTTPCacheTTL,
		"\n\trate-limit-api", flagRateLimitAPI,
	)

	if flagVerbose {
		http2.VerboseLogs = true
	}

	return nil
}

func runNode() {
	metrics.InitPrometheusMetrics()

	st := &storage.LevelDBBackend{}
	if err := st.Init(storageConfig); err != nil {
		log.Crit("failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer st.Close()

	nr, err := runner.NewNodeRunner(st, nodeConfig)
	if err != nil {
		log.Crit("failed to create node", "error", err)
		os.Exit(1)
	}

	if _, err = nr.Ready(); err != nil {
		log.Crit("failed to prepare node", "error", err)
		os.Exit(1)
	}

	var g run.Group
	{
		g.Add(func() error {
			if err := nr.Start(serverConfig); err != nil {
				log.Crit("failed to start node", "error", err)
				return err
			}
			return nil
		}, func(error) {
			nr.Stop()
		})
	}
	{
		cancel := make(chan struct{})
		g.Add(func() error {
			return common.Interrupt(cancel)
		}, func(error) {
			close(cancel)
		})
	}

	if err := g.Run(); err != nil {
		log.Info("node finished", "reason", err)
	}
}
