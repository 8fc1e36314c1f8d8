package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	gelbooru "github.com/dictor/gelbooru-client"
)

const (
	envAPIKey  = "GELBOORU_API_KEY"
	envUserID  = "GELBOORU_USER_ID"
	envBaseURL = "GELBOORU_BASE_URL"
)

type config struct {
	apiKey    string
	userID    string
	baseURL   string
	apiFormat string
	output    string
	debug     bool
}

type app struct {
	cfg    config
	log    *logrus.Logger
	client *gelbooru.Client
}

func newRootCmd(log *logrus.Logger) *cobra.Command {
	a := &app{log: log}

	cmd := &cobra.Command{
		Use:   "gelbooru",
		Short: "Search posts and tags on Gelbooru compatible boards",
		Long: `gelbooru queries the read-only dapi endpoints of a Gelbooru compatible board.

Credentials are optional. They are read from --api-key and --user-id, or from
GELBOORU_API_KEY and GELBOORU_USER_ID (a .env file in the working directory is
loaded first).`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// .env is optional
			_ = godotenv.Load()
			return a.setup()
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&a.cfg.apiKey, "api-key", "", "API key (env "+envAPIKey+")")
	flags.StringVar(&a.cfg.userID, "user-id", "", "user id belonging to the API key (env "+envUserID+")")
	flags.StringVar(&a.cfg.baseURL, "base-url", "", "dapi endpoint of the board (env "+envBaseURL+", default "+gelbooru.DefaultBaseURL+")")
	flags.StringVar(&a.cfg.apiFormat, "api-format", "json", "response format requested from the board: json or xml")
	flags.StringVarP(&a.cfg.output, "output", "o", outputText, "output format: text, json or yaml")
	flags.BoolVar(&a.cfg.debug, "debug", false, "print debug log")

	cmd.AddCommand(newPostCmd(a), newSearchCmd(a), newTagsCmd(a))

	return cmd
}

func (a *app) setup() error {
	if a.cfg.debug {
		a.log.SetLevel(logrus.DebugLevel)
	}

	if a.cfg.apiKey == "" {
		a.cfg.apiKey = os.Getenv(envAPIKey)
	}
	if a.cfg.userID == "" {
		a.cfg.userID = os.Getenv(envUserID)
	}
	if a.cfg.baseURL == "" {
		a.cfg.baseURL = os.Getenv(envBaseURL)
	}

	if err := validateOutput(a.cfg.output); err != nil {
		return err
	}
	format, err := gelbooru.ParseFormat(a.cfg.apiFormat)
	if err != nil {
		return err
	}

	opts := []gelbooru.Option{
		gelbooru.WithLogger(a.log),
		gelbooru.WithFormat(format),
	}
	if a.cfg.baseURL != "" {
		opts = append(opts, gelbooru.WithBaseURL(a.cfg.baseURL))
	}
	a.client = gelbooru.NewClient(a.cfg.apiKey, a.cfg.userID, opts...)

	a.log.WithFields(logrus.Fields{
		"format":   format,
		"base_url": a.cfg.baseURL,
		"api_key":  a.cfg.apiKey != "",
	}).Debugln("client configured")
	return nil
}

func validateOutput(output string) error {
	switch output {
	case outputText, outputJSON, outputYAML:
		return nil
	default:
		return fmt.Errorf("unknown output format: %s", output)
	}
}
