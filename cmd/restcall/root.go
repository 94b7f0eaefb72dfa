package main

import (
	"net/http"

	"github.com/spf13/cobra"

	"github.com/seb7887/simplerest/cfgmng"
	"github.com/seb7887/simplerest/rest"
	"github.com/seb7887/simplerest/rest/processor"
)

type rootFlags struct {
	configDir string
	host      string
	port      int
	token     string
	logLevel  string
	logFormat string
}

// newRootCmd builds the command tree. A nil client uses http.DefaultClient.
func newRootCmd(client *http.Client) *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "restcall",
		Short:         "Call JSON REST endpoints",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&flags.configDir, "config", "", "directory containing restcall.yaml")
	pf.StringVar(&flags.host, "host", "", "API hostname (overrides config)")
	pf.IntVar(&flags.port, "port", 0, "API port (overrides config)")
	pf.StringVar(&flags.token, "token", "", "bearer token (overrides config)")
	pf.StringVar(&flags.logLevel, "log-level", "", "log level (overrides config)")
	pf.StringVar(&flags.logFormat, "log-format", "", "log format: console or json")

	build := func(cmd *cobra.Command) (rest.Transport, error) {
		return newTransport(cmd, flags, client)
	}

	cmd.AddCommand(
		newGetCmd(build),
		newDeleteCmd(build),
		newSendCmd(rest.MethodPost, build),
		newSendCmd(rest.MethodPut, build),
	)

	return cmd
}

func newTransport(cmd *cobra.Command, flags *rootFlags, client *http.Client) (rest.Transport, error) {
	cfg, err := cfgmng.Load(flags.configDir, "restcall")
	if err != nil {
		return nil, err
	}

	if flags.host != "" {
		cfg.Environment.Host = flags.host
	}
	if flags.port != 0 {
		cfg.Environment.Port = flags.port
	}
	if flags.token != "" {
		cfg.Auth.Token = flags.token
	}
	if flags.logLevel != "" {
		cfg.Log.Level = flags.logLevel
	}
	if flags.logFormat != "" {
		cfg.Log.Format = flags.logFormat
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := cfgmng.NewLogger(cfg.Log, cmd.ErrOrStderr())

	processors := []rest.RequestProcessor{
		processor.RequestID(processor.UUID),
		processor.Logging(logger),
	}
	if cfg.Auth.Token != "" {
		processors = append(processors, processor.Bearer(cfg.Auth.Token))
	}

	opts := []rest.NetworkOption{
		rest.WithProcessors(processors...),
		rest.WithLogger(logger.With().Str("component", "transport").Logger()),
	}
	if client != nil {
		opts = append(opts, rest.WithHTTPClient(client))
	}

	logger.Debug().
		Str("hostname", cfg.Environment.Hostname()).
		Int("port", cfg.Environment.Port).
		Bool("auth", cfg.Auth.Token != "").
		Msg("environment loaded")

	return rest.NewNetworkTransport(cfg.Environment, opts...), nil
}
