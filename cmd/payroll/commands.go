package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"payroll/internal/app/batch"
	"payroll/internal/app/server"
	"payroll/internal/auth"
	"payroll/internal/domain/payroll"
	"payroll/internal/platform/config"
	"payroll/internal/platform/crypto"
	"payroll/internal/platform/files"
	"payroll/internal/platform/logging"
)

type rootOptions struct {
	cfg    config.Config
	stdout io.Writer
	stderr io.Writer
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &rootOptions{cfg: config.Load(), stdout: stdout, stderr: stderr}

	root := &cobra.Command{
		Use:           "payroll",
		Short:         "Compute statutory payroll deductions from a payroll file",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.runBatch(cmd.Context())
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	flags := root.PersistentFlags()
	flags.StringVar(&opts.cfg.PolicyFile, "policy", opts.cfg.PolicyFile, "YAML tax policy file")
	flags.StringVar(&opts.cfg.Company, "company", opts.cfg.Company, "company name in report headers")
	flags.StringVar(&opts.cfg.LogLevel, "log-level", opts.cfg.LogLevel, "log level (debug, info, warn, error)")
	flags.StringVar(&opts.cfg.LogFormat, "log-format", opts.cfg.LogFormat, "log format (text, json)")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Process the payroll file and write the report and error files",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.runBatch(cmd.Context())
		},
	}
	for _, c := range []*cobra.Command{root, runCmd} {
		f := c.Flags()
		f.StringVar(&opts.cfg.InputFile, "input", opts.cfg.InputFile, "payroll input file")
		f.StringVar(&opts.cfg.ErrorFile, "errors", opts.cfg.ErrorFile, "error file")
		f.StringVar(&opts.cfg.ReportFile, "report", opts.cfg.ReportFile, "report file")
		f.StringVar(&opts.cfg.RegisterFile, "register", opts.cfg.RegisterFile, "optional payroll register CSV")
		f.StringVar(&opts.cfg.PDFFile, "pdf", opts.cfg.PDFFile, "optional PDF report")
		f.BoolVar(&opts.cfg.EchoOutput, "echo", opts.cfg.EchoOutput, "echo progress and the report to stdout")
	}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the deduction calculator over HTTP",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.serve(cmd.Context())
		},
	}
	serveCmd.Flags().StringVar(&opts.cfg.Addr, "addr", opts.cfg.Addr, "listen address")

	var subject, role string
	var ttl time.Duration
	tokenCmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a bearer token for the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.cfg.JWTSecret == "" {
				return errors.New("JWT_SECRET is required to mint tokens")
			}
			token, err := auth.GenerateToken(opts.cfg.JWTSecret, subject, role, ttl)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(opts.stdout, token)
			return err
		},
	}
	tokenCmd.Flags().StringVar(&subject, "subject", "payroll-operator", "token subject")
	tokenCmd.Flags().StringVar(&role, "role", auth.RoleOperator, "token role (viewer, operator)")
	tokenCmd.Flags().DurationVar(&ttl, "ttl", opts.cfg.TokenTTL, "token lifetime")

	policyCmd := &cobra.Command{
		Use:   "policy",
		Short: "Print the effective tax policy as YAML",
		RunE: func(cmd *cobra.Command, _ []string) error {
			policy, _, err := opts.loadPolicy()
			if err != nil {
				return err
			}
			raw, err := policy.YAML()
			if err != nil {
				return err
			}
			_, err = opts.stdout.Write(raw)
			return err
		},
	}

	var decryptOut string
	decryptCmd := &cobra.Command{
		Use:   "decrypt <file>",
		Short: "Decrypt an exported register or PDF written with PAYROLL_ENCRYPTION_KEY",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.decrypt(args[0], decryptOut)
		},
	}
	decryptCmd.Flags().StringVar(&decryptOut, "out", "", "plaintext destination (defaults to the name without "+batch.EncryptedSuffix+")")

	root.AddCommand(runCmd, serveCmd, tokenCmd, policyCmd, decryptCmd)
	return root
}

func (o *rootOptions) logger() *slog.Logger {
	return logging.New(o.cfg.LogLevel, o.cfg.LogFormat, o.stderr)
}

func (o *rootOptions) loadPolicy() (config.Policy, *payroll.Service, error) {
	policy, err := config.LoadPolicy(o.cfg.PolicyFile)
	if err != nil {
		return config.Policy{}, nil, err
	}
	deductions, err := policy.Build()
	if err != nil {
		return config.Policy{}, nil, err
	}
	return policy, payroll.NewService(policy.MinimumWage, deductions), nil
}

func (o *rootOptions) runBatch(ctx context.Context) error {
	if err := o.cfg.Validate(); err != nil {
		return err
	}
	logger := o.logger()
	_, service, err := o.loadPolicy()
	if err != nil {
		return err
	}
	cipher, err := crypto.New(o.cfg.EncryptionKey)
	if err != nil {
		return err
	}

	runner := batch.New(o.cfg, service, cipher, logger, o.stdout)
	_, err = runner.Run(ctx)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, payroll.ErrInputNotFound):
		fmt.Fprintln(o.stdout, "Payroll not found.")
		return nil
	case errors.Is(err, payroll.ErrOutputWrite):
		fmt.Fprintln(o.stdout, "Error: Unable to write to file.")
		return exitError{code: 1, err: err}
	default:
		return err
	}
}

func (o *rootOptions) serve(ctx context.Context) error {
	if err := o.cfg.ValidateServer(); err != nil {
		return err
	}
	logger := o.logger()
	slog.SetDefault(logger)
	_, service, err := o.loadPolicy()
	if err != nil {
		return err
	}
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	return server.New(o.cfg, logger, service).Run(ctx)
}

func (o *rootOptions) decrypt(path, out string) error {
	cipher, err := crypto.New(o.cfg.EncryptionKey)
	if err != nil {
		return err
	}
	if !cipher.Configured() {
		return errors.New("PAYROLL_ENCRYPTION_KEY is required to decrypt")
	}
	sealed, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	plain, err := cipher.Decrypt(sealed)
	if err != nil {
		return fmt.Errorf("decrypt %s: %w", path, err)
	}
	if out == "" {
		out = strings.TrimSuffix(path, batch.EncryptedSuffix)
	}
	if out == path {
		return fmt.Errorf("refusing to overwrite %s; pass --out", path)
	}
	return files.WriteAtomic(out, 0o600, func(w io.Writer) error {
		_, err := w.Write(plain)
		return err
	})
}
