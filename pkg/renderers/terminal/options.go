package terminal

import "io"

// DefaultWidth is the wrap width used when none is configured.
const DefaultWidth = 80

// Option configures the renderer and prompter.
type Option func(*config)

type config struct {
	driver PromptDriver
	width  int
	out    io.Writer
}

// WithPromptDriver swaps the interactive driver, mostly for tests.
func WithPromptDriver(driver PromptDriver) Option {
	return func(cfg *config) {
		if driver != nil {
			cfg.driver = driver
		}
	}
}

// WithWidth sets the wrap width for paragraphs and rules.
func WithWidth(width int) Option {
	return func(cfg *config) {
		if width > 0 {
			cfg.width = width
		}
	}
}

// WithOutput sets where the survey driver prints info messages.
func WithOutput(out io.Writer) Option {
	return func(cfg *config) {
		if out != nil {
			cfg.out = out
		}
	}
}

func applyOptions(options []Option) config {
	cfg := config{width: DefaultWidth}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
