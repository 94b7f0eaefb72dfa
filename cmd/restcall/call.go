package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/seb7887/simplerest/rest"
	"github.com/seb7887/simplerest/wp"
)

type transportBuilder func(cmd *cobra.Command) (rest.Transport, error)

func newGetCmd(build transportBuilder) *cobra.Command {
	var workers int

	cmd := &cobra.Command{
		Use:   "get <path>...",
		Short: "GET one or more paths, expecting 200",
		Long: "GET one or more paths, expecting 200. Several paths are fetched concurrently\n" +
			"and printed in argument order.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			routes := make([]rest.Route, len(args))
			for i, arg := range args {
				route, err := parseRoute(arg)
				if err != nil {
					return err
				}
				routes[i] = route
			}
			transport, err := build(cmd)
			if err != nil {
				return err
			}

			if len(routes) == 1 {
				body, err := transport.Get(cmd.Context(), routes[0])
				if err != nil {
					return err
				}
				return writeBody(cmd.OutOrStdout(), body)
			}
			return getAll(cmd, transport, args, routes, workers)
		},
	}

	cmd.Flags().IntVarP(&workers, "workers", "w", 4, "concurrent requests when several paths are given")

	return cmd
}

// getAll fetches routes on a worker pool keyed by path, then prints every body
// that was fetched and returns the joined failures.
func getAll(cmd *cobra.Command, transport rest.Transport, args []string, routes []rest.Route, workers int) error {
	ctx := cmd.Context()
	pool := wp.NewPool(workers, len(routes))

	bodies := make([][]byte, len(routes))
	errs := make([]error, len(routes))
	for i, route := range routes {
		err := pool.Submit(ctx, route.Path, func() {
			bodies[i], errs[i] = transport.Get(ctx, route)
		})
		if err != nil {
			errs[i] = err
		}
	}
	pool.Stop()

	for i, body := range bodies {
		if errs[i] != nil {
			errs[i] = fmt.Errorf("%s: %w", args[i], errs[i])
			continue
		}
		if err := writeBody(cmd.OutOrStdout(), body); err != nil {
			return err
		}
	}
	return errors.Join(errs...)
}

func newDeleteCmd(build transportBuilder) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <path>",
		Short: "DELETE a path, expecting 200 or 204",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			endpoint, err := parseRoute(args[0])
			if err != nil {
				return err
			}
			transport, err := build(cmd)
			if err != nil {
				return err
			}
			body, err := transport.Delete(cmd.Context(), endpoint)
			if err != nil {
				return err
			}
			return writeBody(cmd.OutOrStdout(), body)
		},
	}
}

func newSendCmd(method string, build transportBuilder) *cobra.Command {
	var data, dataFile string

	cmd := &cobra.Command{
		Use:   strings.ToLower(method) + " <path>",
		Short: method + " a JSON body to a path, expecting 200, 201 or 204",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			endpoint, err := parseRoute(args[0])
			if err != nil {
				return err
			}
			payload, err := readPayload(data, dataFile, cmd.InOrStdin())
			if err != nil {
				return err
			}
			transport, err := build(cmd)
			if err != nil {
				return err
			}

			var body []byte
			if method == rest.MethodPut {
				body, err = transport.Put(cmd.Context(), endpoint, payload)
			} else {
				body, err = transport.Post(cmd.Context(), endpoint, payload)
			}
			if err != nil {
				return err
			}
			return writeBody(cmd.OutOrStdout(), body)
		},
	}

	cmd.Flags().StringVarP(&data, "data", "d", "", "JSON request body")
	cmd.Flags().StringVarP(&dataFile, "data-file", "f", "", "read the JSON request body from a file, - for stdin")

	return cmd
}

// parseRoute turns "/api/users?page=2" into a rest.Route.
func parseRoute(raw string) (rest.Route, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return rest.Route{}, fmt.Errorf("invalid path %q: %w", raw, err)
	}
	if u.IsAbs() {
		return rest.Route{}, fmt.Errorf("invalid path %q: use --host instead of an absolute URL", raw)
	}

	route := rest.Route{Path: u.Path}
	for name, values := range u.Query() {
		for _, v := range values {
			route.Query = append(route.Query, rest.StringParam(name, &v))
		}
	}
	return route, nil
}

func readPayload(data, dataFile string, stdin io.Reader) ([]byte, error) {
	var payload []byte
	switch {
	case data != "" && dataFile != "":
		return nil, errors.New("use only one of --data and --data-file")
	case data != "":
		payload = []byte(data)
	case dataFile == "-":
		b, err := io.ReadAll(stdin)
		if err != nil {
			return nil, err
		}
		payload = b
	case dataFile != "":
		b, err := os.ReadFile(dataFile)
		if err != nil {
			return nil, err
		}
		payload = b
	}

	if len(payload) > 0 && !json.Valid(payload) {
		return nil, errors.New("request body is not valid JSON")
	}
	return payload, nil
}

// writeBody prints JSON bodies indented and anything else as is.
func writeBody(w io.Writer, body []byte) error {
	if len(body) == 0 {
		return nil
	}

	var out bytes.Buffer
	if err := json.Indent(&out, body, "", "  "); err != nil {
		_, err = w.Write(body)
		return err
	}
	out.WriteByte('\n')
	_, err := out.WriteTo(w)
	return err
}

// Exit codes.
const (
	exitError     = 1
	exitHTTPError = 2
	exitTransport = 3
)

func exitCode(err error) int {
	switch {
	case rest.IsHTTPError(err):
		return exitHTTPError
	case rest.IsTransportError(err):
		return exitTransport
	default:
		return exitError
	}
}
