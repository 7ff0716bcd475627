package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Guilhem-Bonnet/Anime-Showcase/internal/config"
)

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(out io.Writer) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix(config.EnvPrefix)
	v.SetEnvKeyReplacer(config.EnvKeyReplacer)
	v.AutomaticEnv()
	v.SetDefault("server_url", "http://127.0.0.1:8080")
	v.SetDefault("timeout", 10*time.Second)

	root := &cobra.Command{
		Use:          "showcase",
		Short:        "Client for a running showcase-server",
		SilenceUsage: true,
	}
	pf := root.PersistentFlags()
	pf.String("server", "", "URL du serveur (ex: http://127.0.0.1:8080)")
	pf.Duration("timeout", 0, "Timeout HTTP")
	lo.Must0(v.BindPFlag("server_url", pf.Lookup("server")))
	lo.Must0(v.BindPFlag("timeout", pf.Lookup("timeout")))

	call := func(method, path string) error {
		client := &http.Client{Timeout: v.GetDuration("timeout")}
		base := strings.TrimRight(v.GetString("server_url"), "/")
		return run(client, out, method, base+path)
	}
	get := func(path string) func(*cobra.Command, []string) error {
		return func(*cobra.Command, []string) error { return call(http.MethodGet, path) }
	}

	root.AddCommand(
		&cobra.Command{Use: "health", Short: "Check server health", Args: cobra.NoArgs, RunE: get("/api/v1/health")},
		&cobra.Command{Use: "version", Short: "Print server build info", Args: cobra.NoArgs, RunE: get("/api/v1/version")},
		&cobra.Command{Use: "home", Short: "Print the current home page snapshot", Args: cobra.NoArgs, RunE: get("/api/v1/home")},
		&cobra.Command{
			Use:   "reload",
			Short: "Rebuild the home page and restart the hero rotation",
			Args:  cobra.NoArgs,
			RunE: func(*cobra.Command, []string) error {
				return call(http.MethodPost, "/api/v1/home/reload")
			},
		},
		&cobra.Command{
			Use:     "list <endpoint>",
			Short:   "Fetch an anime list by endpoint path (ex: top/anime, seasons/now)",
			Example: "  showcase list top/anime?limit=5",
			Args:    cobra.ExactArgs(1),
			RunE: func(_ *cobra.Command, args []string) error {
				return call(http.MethodGet, "/api/v1/list?endpoint="+url.QueryEscape(args[0]))
			},
		},
		&cobra.Command{
			Use:   "search <query>",
			Short: "Search the catalog",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(_ *cobra.Command, args []string) error {
				return call(http.MethodGet, "/api/v1/search?q="+url.QueryEscape(strings.Join(args, " ")))
			},
		},
		&cobra.Command{
			Use:   "anime <id>",
			Short: "Show anime details and streaming links",
			Args:  cobra.ExactArgs(1),
			RunE: func(_ *cobra.Command, args []string) error {
				return call(http.MethodGet, "/api/v1/anime/"+url.PathEscape(args[0]))
			},
		},
	)
	return root
}

// run affiche la réponse (JSON indenté si possible); un statut >= 400 est une erreur.
func run(client *http.Client, out io.Writer, method, url string) error {
	req, err := http.NewRequest(method, url, nil)
	if err != nil {
		return err
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	var pretty any
	if err := json.Unmarshal(b, &pretty); err == nil {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		_ = enc.Encode(pretty)
	} else {
		_, _ = out.Write(b)
		_, _ = out.Write([]byte("\n"))
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("%s %s: %s", method, url, resp.Status)
	}
	return nil
}
