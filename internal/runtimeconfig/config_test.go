package runtimeconfig

import (
	"errors"
	"testing"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
}

func TestValidateRequiresBasePath(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Corpus.BasePath = "  "
	if err := cfg.Validate(); !errors.Is(err, ErrCorpusBasePathRequired) {
		t.Fatalf("expected base path error, got %v", err)
	}
}

func TestValidateIndexDSN(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Index.DSN = ""
	if err := cfg.Validate(); !errors.Is(err, ErrIndexDSNRequired) {
		t.Fatalf("expected DSN error, got %v", err)
	}

	cfg.Features.Index = false
	if err := cfg.Validate(); err != nil {
		t.Fatalf("disabled index should not require a DSN: %v", err)
	}
}

func TestValidateGeneratorSettings(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Generator.OutputDir = ""
	if err := cfg.Validate(); !errors.Is(err, ErrGeneratorOutputDirRequired) {
		t.Fatalf("expected output dir error, got %v", err)
	}

	cfg = DefaultConfig()
	cfg.Generator.BaseURL = ""
	if err := cfg.Validate(); !errors.Is(err, ErrGeneratorBaseURLRequired) {
		t.Fatalf("expected base URL error, got %v", err)
	}

	cfg = DefaultConfig()
	cfg.Generator.FeedLimit = -1
	if err := cfg.Validate(); !errors.Is(err, ErrFeedLimitInvalid) {
		t.Fatalf("expected feed limit error, got %v", err)
	}
}

func TestValidateLintFailOn(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Lint.FailOn = "info"
	if err := cfg.Validate(); !errors.Is(err, ErrLintFailOnInvalid) {
		t.Fatalf("expected fail_on error, got %v", err)
	}
}

func TestValidateLoggingProvider(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Features.Logger = true
	cfg.Logging.Provider = ""
	if err := cfg.Validate(); !errors.Is(err, ErrLoggingProviderRequired) {
		t.Fatalf("expected provider error, got %v", err)
	}

	cfg.Logging.Provider = "syslog"
	if err := cfg.Validate(); !errors.Is(err, ErrLoggingProviderUnknown) {
		t.Fatalf("expected unknown provider error, got %v", err)
	}

	cfg.Logging.Provider = "gologger"
	cfg.Logging.Level = "verbose"
	if err := cfg.Validate(); !errors.Is(err, ErrLoggingLevelInvalid) {
		t.Fatalf("expected level error, got %v", err)
	}

	cfg.Logging.Level = "debug"
	cfg.Logging.Format = "xml"
	if err := cfg.Validate(); !errors.Is(err, ErrLoggingFormatInvalid) {
		t.Fatalf("expected format error, got %v", err)
	}

	cfg.Logging.Format = "pretty"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("valid gologger config rejected: %v", err)
	}
}
