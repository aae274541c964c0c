package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/jrsteele09/go-profile-optimizer/content"
	"github.com/jrsteele09/go-profile-optimizer/internal/config"
	"github.com/jrsteele09/go-profile-optimizer/internal/logging"
	"github.com/jrsteele09/go-profile-optimizer/internal/utils"
	"github.com/jrsteele09/go-profile-optimizer/server"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	v := viper.New()
	var configFile string

	root := &cobra.Command{
		Use:           "profile-optimizer",
		Short:         "LinkedIn profile optimizer backend",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := config.ReadFile(v, configFile); err != nil {
				return err
			}
			c := config.Load(v)
			logging.Setup(c.GetLogLevel(), c.GetLogFormat(), c.GetEnv())
			return nil
		},
	}
	root.PersistentFlags().StringVar(&configFile, "config", "", "YAML config file")
	root.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")
	root.PersistentFlags().String("env", "", "environment name (DEV, PROD)")
	mustBind(v, "log_level", root.PersistentFlags().Lookup("log-level"))
	mustBind(v, "env", root.PersistentFlags().Lookup("env"))

	root.AddCommand(newServeCmd(v), newGenerateCmd(v))
	return root
}

func newServeCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := config.Load(v)
			if err := config.Validate(c); err != nil {
				return err
			}
			return run(c)
		},
	}
	cmd.Flags().String("port", "", "listen port")
	cmd.Flags().String("session-store", "", "session store (memory, sqlite)")
	cmd.Flags().String("templates", "", "YAML file overriding the built-in content templates")
	mustBind(v, "port", cmd.Flags().Lookup("port"))
	mustBind(v, "session.store", cmd.Flags().Lookup("session-store"))
	mustBind(v, "content.templates_file", cmd.Flags().Lookup("templates"))
	return cmd
}

func newGenerateCmd(v *viper.Viper) *cobra.Command {
	var req content.Request
	var noHashtags, noEmojis, asJSON bool

	cmd := &cobra.Command{
		Use:   "generate [topic]",
		Short: "Generate a post from the content templates and print it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req.Topic = args[0]
			req.IncludeHashtags = utils.Ptr(!noHashtags)
			req.IncludeEmojis = utils.Ptr(!noEmojis)

			// No simulated latency on the command line
			v.Set("content.latency", 0)
			v.Set("content.latency_jitter", 0)
			engine, err := server.NewContentEngine(cmd.Context(), config.Load(v))
			if err != nil {
				return err
			}
			generated, err := engine.Generate(cmd.Context(), req)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(generated)
			}
			fmt.Fprintln(out, generated.Content)
			fmt.Fprintf(out, "\nscore %d/100 · %d characters · template %s\n", generated.Score, generated.CharacterCount, generated.TemplateID)
			for _, tip := range generated.Improvements {
				fmt.Fprintf(out, "  - %s\n", tip)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&req.Audience, "audience", "", "target audience")
	cmd.Flags().StringVar((*string)(&req.Tone), "tone", "", "professional, casual, inspirational or educational")
	cmd.Flags().StringVar((*string)(&req.Length), "length", "", "short, medium or long")
	cmd.Flags().StringVar(&req.TemplateID, "template", "", "template id")
	cmd.Flags().StringVar(&req.Prompt, "prompt", "", "free-form guidance for the AI writer")
	cmd.Flags().BoolVar(&noHashtags, "no-hashtags", false, "omit hashtags")
	cmd.Flags().BoolVar(&noEmojis, "no-emojis", false, "omit emoji")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the full result as JSON")
	return cmd
}

func mustBind(v *viper.Viper, key string, flag *pflag.Flag) {
	if err := v.BindPFlag(key, flag); err != nil {
		panic(err)
	}
}

func run(c config.Config) (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Bytes("stack", debug.Stack()).Msg("Recovered from panic")
			returnError = errors.New("panic recovered")
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	displayAppname(c.GetAppName())

	sys, err := server.InitialiseSystem(ctx, c)
	if err != nil {
		return err
	}
	defer func() {
		if err := sys.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close session store")
		}
	}()

	handler, err := server.New(c, sys.Deps)
	if err != nil {
		return err
	}
	go handler.RunJanitor(ctx, server.DefaultJanitorInterval)

	srv := &http.Server{
		Addr:              c.GetPort(),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errs := make(chan error, 1)
	go func() { errs <- listenAndServe(srv) }()

	select {
	case err := <-errs:
		return err
	case <-waitForStopSignal():
	}
	returnError = shutdown(srv)
	log.Info().Msg("Server stopped")
	return returnError
}

func listenAndServe(server *http.Server) error {
	log.Info().Str("addr", server.Addr).Msg("Server listening")
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server.ListenAndServe %w", err)
	}
	return nil
}

func waitForStopSignal() <-chan os.Signal {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	return stop
}

func shutdown(server *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
