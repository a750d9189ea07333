package tui

// Theme captures optional formatting hints applied to informational
// messages.
type Theme struct {
	TitlePrefix string
}

// Option configures the terminal collector.
type Option func(*Collector)

// WithPromptDriver overrides the prompt driver used by the collector.
func WithPromptDriver(driver PromptDriver) Option {
	return func(c *Collector) {
		if driver != nil {
			c.driver = driver
		}
	}
}

// WithTheme applies optional message prefixes.
func WithTheme(theme Theme) Option {
	return func(c *Collector) {
		c.theme = theme
	}
}

// WithPageSize limits how many options a select prompt shows at once.
func WithPageSize(size int) Option {
	return func(c *Collector) {
		if size > 0 {
			c.pageSize = size
		}
	}
}

// WithRequired rejects empty answers for text fields without a default.
func WithRequired(required bool) Option {
	return func(c *Collector) {
		c.required = required
	}
}
