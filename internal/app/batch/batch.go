package batch

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"payroll/internal/domain/payroll"
	"payroll/internal/domain/reports"
	"payroll/internal/platform/config"
	"payroll/internal/platform/crypto"
	"payroll/internal/platform/files"
)

// EncryptedSuffix is appended to register and PDF paths when an encryption
// key is configured.
const EncryptedSuffix = ".enc"

// Runner executes one payroll batch: read the input file, write the error
// file, compute deductions and write the report plus optional exports.
type Runner struct {
	Config  config.Config
	Service *payroll.Service
	Crypto  *crypto.Service
	Logger  *slog.Logger
	Out     io.Writer
	Now     func() time.Time
}

type Outcome struct {
	RunID        string
	Batch        payroll.Batch
	Results      []payroll.Result
	Summary      payroll.Summary
	ErrorDigest  string
	ReportDigest string
	Written      []string
}

func New(cfg config.Config, service *payroll.Service, cipher *crypto.Service, logger *slog.Logger, out io.Writer) *Runner {
	return &Runner{Config: cfg, Service: service, Crypto: cipher, Logger: logger, Out: out, Now: time.Now}
}

// Run returns an error wrapping payroll.ErrInputNotFound when the input
// cannot be opened and payroll.ErrOutputWrite when any output cannot be
// written. Nothing is written in the first case.
func (r *Runner) Run(ctx context.Context) (Outcome, error) {
	out := Outcome{RunID: uuid.NewString()}
	logger := r.logger().With("runId", out.RunID)
	echo := r.echo()

	echo.println("Opening file payroll...")
	f, err := os.Open(r.Config.InputFile)
	if err != nil {
		logger.Warn("payroll input unavailable", "path", r.Config.InputFile, "err", err)
		return out, fmt.Errorf("%w: %s: %v", payroll.ErrInputNotFound, r.Config.InputFile, err)
	}
	defer f.Close()

	echo.println("Reading file payroll...")
	batch, err := r.Service.Ingest(ctx, f)
	if err != nil {
		return out, err
	}
	out.Batch = batch
	logger.Info("payroll input read", "path", r.Config.InputFile, "linesRead", batch.LinesRead, "rejected", len(batch.Rejections))

	errorLines := reports.ErrorLines(batch.Rejections)
	echo.println("\nErrors found in file payroll:")
	echo.lines(errorLines)
	echo.printf("\n%d lines read from payroll file.\n", batch.LinesRead)

	if err := r.writeLines(r.Config.ErrorFile, errorLines); err != nil {
		return out, err
	}
	out.ErrorDigest = files.Digest(files.JoinLines(errorLines))
	out.Written = append(out.Written, r.Config.ErrorFile)
	echo.printf("%d lines written to error file.\n\n", len(errorLines))

	echo.println("Calculating deductions...")
	results, summary := r.Service.Compute(batch)
	out.Results = results
	out.Summary = summary

	echo.println("Writing report file...\n")
	reportLines := reports.ReportLines(r.Config.Company, results)
	if err := r.writeLines(r.Config.ReportFile, reportLines); err != nil {
		return out, err
	}
	out.ReportDigest = files.Digest(files.JoinLines(reportLines))
	out.Written = append(out.Written, r.Config.ReportFile)
	echo.lines(reportLines)

	if r.Config.RegisterFile != "" {
		var buf bytes.Buffer
		if err := reports.WriteRegister(&buf, results); err != nil {
			return out, fmt.Errorf("build payroll register: %w", err)
		}
		path, err := r.writeExport(r.Config.RegisterFile, buf.Bytes())
		if err != nil {
			return out, err
		}
		out.Written = append(out.Written, path)
	}

	if r.Config.PDFFile != "" {
		var buf bytes.Buffer
		doc := reports.Document{Company: r.Config.Company, GeneratedAt: r.now(), Results: results, Summary: summary}
		if err := reports.WritePDF(&buf, doc); err != nil {
			return out, fmt.Errorf("build payroll pdf: %w", err)
		}
		path, err := r.writeExport(r.Config.PDFFile, buf.Bytes())
		if err != nil {
			return out, err
		}
		out.Written = append(out.Written, path)
	}

	logger.Info("payroll run complete",
		"employees", summary.EmployeeCount,
		"rejected", summary.Rejected,
		"totalGross", summary.TotalGross,
		"totalDeductions", summary.TotalDeductions,
		"errorDigest", out.ErrorDigest,
		"reportDigest", out.ReportDigest,
		"files", out.Written,
	)
	return out, nil
}

func (r *Runner) writeLines(path string, lines []string) error {
	if err := files.WriteLines(path, lines); err != nil {
		r.logger().Error("payroll output failed", "path", path, "err", err)
		return fmt.Errorf("%w: %v", payroll.ErrOutputWrite, err)
	}
	return nil
}

// writeExport writes data to path, or its ciphertext to path+EncryptedSuffix
// when a key is configured, and returns the path written.
func (r *Runner) writeExport(path string, data []byte) (string, error) {
	if r.Crypto != nil && r.Crypto.Configured() {
		sealed, err := r.Crypto.Encrypt(data)
		if err != nil {
			return "", fmt.Errorf("encrypt %s: %w", path, err)
		}
		data = sealed
		path += EncryptedSuffix
	}
	err := files.WriteAtomic(path, 0o600, func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	})
	if err != nil {
		r.logger().Error("payroll export failed", "path", path, "err", err)
		return "", fmt.Errorf("%w: %v", payroll.ErrOutputWrite, err)
	}
	return path, nil
}

func (r *Runner) logger() *slog.Logger {
	if r.Logger == nil {
		return slog.Default()
	}
	return r.Logger
}

func (r *Runner) now() time.Time {
	if r.Now == nil {
		return time.Now()
	}
	return r.Now()
}

func (r *Runner) echo() console {
	if r.Out == nil || !r.Config.EchoOutput {
		return console{w: io.Discard}
	}
	return console{w: r.Out}
}

type console struct {
	w io.Writer
}

func (c console) println(s string) {
	_, _ = fmt.Fprintln(c.w, s)
}

func (c console) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(c.w, format, args...)
}

func (c console) lines(lines []string) {
	for _, line := range lines {
		c.println(line)
	}
}
